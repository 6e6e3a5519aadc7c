package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitRecognition = 1 // recognition ran but missed at least one labeled item with --strict
	ExitError       = 2
)

// missError reports recognition errors under --strict.
type missError struct {
	errors int
	total  int
}

func (e *missError) Error() string {
	return fmt.Sprintf("%d of %d items misrecognized", e.errors, e.total)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var miss *missError
		if errors.As(err, &miss) {
			os.Exit(ExitRecognition)
		}
		os.Exit(ExitError)
	}
}
