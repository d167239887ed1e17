// Package testutil holds helpers shared by pagser tests.
package testutil

import (
	"bytes"
	"io"
	"os"
)

// StdoutOutputForFunc runs f with os.Stdout redirected and returns everything written to it.
func StdoutOutputForFunc(f func()) string {
	return captureOutput(&os.Stdout, f)
}

// StderrOutputForFunc runs f with os.Stderr redirected and returns everything written to it.
func StderrOutputForFunc(f func()) string {
	return captureOutput(&os.Stderr, f)
}

func captureOutput(target **os.File, f func()) string {
	old := *target

	r, w, _ := os.Pipe()
	*target = w

	done := make(chan string)

	go func() {
		var buf bytes.Buffer

		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() { *target = old }()

	f()

	_ = w.Close()

	return <-done
}
