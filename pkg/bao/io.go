package bao

import "io"

// Source is the sequential byte source the core consumes: read-exact, and
// (for slice production only) seek-forward-by-n. It deliberately does not
// expose arbitrary seeking or a position query, matching the streaming,
// non-seekable nature of decode and slice-verify.
type Source interface {
	// ReadExact reads exactly len(p) bytes into p, or returns an error
	// (typically io.ErrUnexpectedEOF or io.EOF wrapped by the caller) if
	// the source is exhausted first.
	ReadExact(p []byte) error
	// SeekForward advances the source by n bytes without returning them.
	// Only called by the slice producer.
	SeekForward(n int64) error
}

// Sink is the sequential byte sink the core consumes.
type Sink interface {
	Write(p []byte) error
}

// readerSource adapts an io.Reader to Source using io.ReadFull for exact
// reads and io.CopyN (discarding the result) for forward seeking. This is
// the fallback used whenever the caller's underlying stream is not
// separately seekable (e.g. stdin, or a network connection); package
// baoio provides a faster path for *os.File that seeks without reading.
type readerSource struct {
	r io.Reader
}

// NewReaderSource wraps an io.Reader as a Source. Forward seeks are
// implemented by discarding bytes, which is always correct but not
// necessarily fast; callers with a seekable underlying stream should use
// baoio.NewFileSource instead.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{r: r}
}

func (s *readerSource) ReadExact(p []byte) error {
	_, err := io.ReadFull(s.r, p)
	return err
}

func (s *readerSource) SeekForward(n int64) error {
	_, err := io.CopyN(io.Discard, s.r, n)
	return err
}

// writerSink adapts an io.Writer to Sink.
type writerSink struct {
	w io.Writer
}

// NewWriterSink wraps an io.Writer as a Sink.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) Write(p []byte) error {
	_, err := s.w.Write(p)
	return err
}
