package pipeio

import (
	"errors"
	"io"
	"syscall"

	"golang.org/x/sys/unix"
)

// fdWriter is implemented by *os.File; PageWriter uses it to poll for
// writability when the destination is a non-blocking descriptor.
type fdWriter interface {
	Fd() uintptr
}

// PageWriter writes raw bytes to an underlying writer, retrying instead of
// busy-looping when a non-blocking descriptor returns EAGAIN. This is the
// Go counterpart to oggcorrect.c's writeAll, which does the same thing with
// a blocking select() on the destination descriptor.
type PageWriter struct {
	w     io.Writer
	fd    int
	hasFd bool
}

// NewPageWriter wraps w. If w exposes an Fd() uintptr method (as *os.File
// does), EAGAIN on Write triggers a poll-based wait instead of being
// returned to the caller.
func NewPageWriter(w io.Writer) *PageWriter {
	pw := &PageWriter{w: w}
	if fder, ok := w.(fdWriter); ok {
		pw.fd = int(fder.Fd())
		pw.hasFd = true
	}
	return pw
}

// Write writes all of data, retrying on EAGAIN.
func (pw *PageWriter) Write(data []byte) (int, error) {
	written := 0
	for written < len(data) {
		n, err := pw.w.Write(data[written:])
		if n > 0 {
			written += n
		}
		if err != nil {
			if pw.hasFd && errors.Is(err, syscall.EAGAIN) {
				if werr := pw.waitWritable(); werr != nil {
					return written, werr
				}
				continue
			}
			return written, err
		}
	}
	return written, nil
}

// waitWritable blocks until pw.fd is ready for writing.
func (pw *PageWriter) waitWritable() error {
	fds := []unix.PollFd{{Fd: int32(pw.fd), Events: unix.POLLOUT}}
	for {
		n, err := unix.Poll(fds, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if n > 0 {
			return nil
		}
	}
}
