package testhelpers

import (
	"bytes"
	"io"
	"testing"
)

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// NewWriter returns a log sink that forwards every line to tb.Log so that output only shows up for failing tests.
func NewWriter(tb testing.TB) io.Writer {
	return testWriter{tb: tb}
}
