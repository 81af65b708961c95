package cli

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"
)

// Exit runs the registered exit handlers and exits. A non-nil err is
// printed to stderr and exits with status 1.
func Exit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// OnExit registers fn to run when the program exits through Exit.
func OnExit(fn func()) {
	atexit.Register(fn)
}
