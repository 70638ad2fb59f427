package completion

import (
	"bytes"
	"io"
)

var dataPrefix = []byte("data: ")

// framer extracts "data: " payloads from a server-sent event byte
// stream. It reads incrementally, so a payload split across reads (or
// a read split inside the prefix itself) is reassembled before being
// returned.
type framer struct {
	r       io.Reader
	buf     []byte
	readErr error
}

func newFramer(r io.Reader) *framer {
	return &framer{r: r}
}

// Next returns the payload of the next data line. Lines without the
// data prefix (comments, blank keep-alives) are skipped. io.EOF is
// returned only when the underlying stream is cleanly exhausted.
func (f *framer) Next() (string, error) {
	for {
		if i := bytes.IndexByte(f.buf, '\n'); i >= 0 {
			line := f.buf[:i]
			f.buf = f.buf[i+1:]
			if payload, ok := cutDataLine(line); ok {
				return payload, nil
			}
			continue
		}

		if f.readErr != nil {
			// A trailing data line without a final newline still
			// counts once the stream is done.
			if f.readErr == io.EOF && len(f.buf) > 0 {
				line := f.buf
				f.buf = nil
				if payload, ok := cutDataLine(line); ok {
					return payload, nil
				}
			}
			return "", f.readErr
		}

		chunk := make([]byte, 4096)
		n, err := f.r.Read(chunk)
		if n > 0 {
			f.buf = append(f.buf, chunk[:n]...)
		}
		if err != nil {
			f.readErr = err
		}
	}
}

func cutDataLine(line []byte) (string, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, dataPrefix) {
		return "", false
	}
	return string(bytes.TrimSpace(line[len(dataPrefix):])), true
}
