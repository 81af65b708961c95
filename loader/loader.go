// Package loader maps branch trace files into memory for the simulator.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sarchlab/bpsim/trace"
)

// Trace is a trace file mapped read-only into memory.
type Trace struct {
	// Path is the file the trace was loaded from.
	Path string
	// Data is the raw trace. It must not be modified.
	Data []byte

	unmap func() error
}

// Name returns the base name of the trace file.
func (t *Trace) Name() string {
	return filepath.Base(t.Path)
}

// Records returns the number of records in the trace.
func (t *Trace) Records() int {
	return trace.NumRecords(t.Data)
}

// Close releases the mapping. Data must not be used afterward.
func (t *Trace) Close() error {
	if t.unmap == nil {
		return nil
	}

	err := t.unmap()
	t.unmap = nil
	t.Data = nil
	return err
}

// Options control how a trace is loaded.
type Options struct {
	// Validate decodes every record after mapping. Alignment is always
	// checked.
	Validate bool
}

// Load maps the trace file at path. The file length must be a multiple of
// trace.RecordSize.
func Load(path string, opts Options) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not stat the trace file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	data, unmap, err := mapFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("could not memory map the trace file: %w", err)
	}

	t := &Trace{Path: path, Data: data, unmap: unmap}

	check := trace.CheckAligned
	if opts.Validate {
		check = trace.Validate
	}
	if err := check(t.Data); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("invalid trace %s: %w", path, err)
	}

	return t, nil
}

// LoadDir loads every regular file in dir, in lexical order. Nothing is
// returned if any file fails to load.
func LoadDir(dir string, opts Options) ([]*Trace, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read the trace directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no trace files in %s", dir)
	}

	traces := make([]*Trace, 0, len(names))
	for _, name := range names {
		t, err := Load(filepath.Join(dir, name), opts)
		if err != nil {
			_ = CloseAll(traces)
			return nil, err
		}
		traces = append(traces, t)
	}

	return traces, nil
}

// CloseAll closes every trace and returns the errors joined.
func CloseAll(traces []*Trace) error {
	var errs []error
	for _, t := range traces {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
