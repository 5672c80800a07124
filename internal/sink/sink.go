package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec names accepted by Build.
const (
	CodecNone = "none"
	CodecGzip = "gzip"
	CodecZstd = "zstd"
)

const bufferSize = 64 * 1024

// Sink is a buffered, optionally compressed line destination. It counts the
// payload bytes written into it, before compression.
type Sink struct {
	buf     *bufio.Writer
	closers []io.Closer
	bytes   int64
	file    bool
}

// Build opens the destination described by path and codec. A path of "" or
// "-" means stdout (written through the given writer, which lets callers
// capture it); anything else is created as a file. The returned sink must be
// closed to flush the buffer and any compression trailer.
func Build(path, codec string, stdout io.Writer) (*Sink, error) {
	switch codec {
	case "", CodecNone, CodecGzip, CodecZstd:
	default:
		return nil, fmt.Errorf("%w: unknown codec %q", ErrOpenSink, codec)
	}

	s := &Sink{}

	var dst io.Writer
	switch path {
	case "", "-":
		dst = stdout
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenSink, err)
		}
		dst = f
		s.file = true
		s.closers = append(s.closers, f)
	}

	switch codec {
	case "", CodecNone:
	case CodecGzip:
		gw := gzip.NewWriter(dst)
		dst = gw
		s.closers = append([]io.Closer{gw}, s.closers...)
	case CodecZstd:
		zw, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpenSink, err)
		}
		dst = zw
		s.closers = append([]io.Closer{zw}, s.closers...)
	}

	s.buf = bufio.NewWriterSize(dst, bufferSize)
	return s, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.buf.Write(p)
	s.bytes += int64(n)
	return n, err
}

// Bytes reports the payload bytes accepted so far.
func (s *Sink) Bytes() int64 { return s.bytes }

// IsFile reports whether the sink writes to a file rather than stdout.
func (s *Sink) IsFile() bool { return s.file }

// Close flushes the buffer, then closes the compressor and file in order.
func (s *Sink) Close() error {
	err := s.buf.Flush()
	for _, c := range s.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
