// Package baoio provides the OS-facing collaborators the Bao core
// deliberately has no knowledge of: opening "-" or an omitted path as
// standard input/output, and adapting *os.File to bao.Source with a seek
// that actually seeks instead of discarding bytes.
package baoio

import (
	"io"
	"os"

	"github.com/baoformat/bao/pkg/bao"
)

// OpenInput opens path for reading, treating "" and "-" as standard
// input. For those two paths the result is os.Stdin itself; for any other
// path the caller is responsible for closing the opened file.
func OpenInput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// OpenOutput opens path for writing, treating "" and "-" as standard
// output. Existing files are truncated.
func OpenOutput(path string) (*os.File, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

// fileSource adapts *os.File to bao.Source, using File.Seek for forward
// seeks rather than discarding the skipped bytes by reading them.
type fileSource struct {
	f *os.File
}

// NewFileSource wraps f as a bao.Source with a real seek. Use this for
// any seekable input (regular files); for non-seekable input (stdin,
// pipes), use bao.NewReaderSource instead, which falls back to
// discard-by-reading.
func NewFileSource(f *os.File) bao.Source {
	return &fileSource{f: f}
}

func (s *fileSource) ReadExact(p []byte) error {
	_, err := io.ReadFull(s.f, p)
	return err
}

func (s *fileSource) SeekForward(n int64) error {
	_, err := s.f.Seek(n, io.SeekCurrent)
	return err
}
