// package chunked decodes the chunked transfer coding of RFC 9112 section 7.1.
// only the reading side exists, requests always carry a Content-Length.
package chunked

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const maxLineLength = 4096

var (
	errLineTooLong  = errors.New("http: chunk header line too long")
	errChunkLength  = errors.New("http: invalid byte in chunk length")
	errChunkTooLong = errors.New("http: chunk length too large")
	errMalformed    = errors.New("http: malformed chunked encoding")
)

func NewReader(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &reader{r: br}
}

type reader struct {
	r         *bufio.Reader
	remaining uint64 // bytes left in the current chunk
	inChunk   bool
	done      bool
}

func (c *reader) readLine() ([]byte, error) {
	line, err := c.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull || len(line) > maxLineLength {
		return nil, errLineTooLong
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// readChunkHeader parses `1a;name=value\r\n`, chunk extensions are ignored.
func (c *reader) readChunkHeader() (n uint64, err error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	if i := bytes.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = bytes.TrimRight(line, " \t")
	if len(line) == 0 {
		return 0, errChunkLength
	}
	if len(line) > 16 {
		return 0, errChunkTooLong
	}
	for _, b := range line {
		switch {
		case '0' <= b && b <= '9':
			b = b - '0'
		case 'a' <= b && b <= 'f':
			b = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			b = b - 'A' + 10
		default:
			return 0, errChunkLength
		}
		n = n<<4 | uint64(b)
	}
	return n, nil
}

// skipTrailer consumes trailer fields up to the terminating empty line.
func (c *reader) skipTrailer() error {
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func (c *reader) Read(p []byte) (n int, err error) {
	for n < len(p) && !c.done {
		if !c.inChunk {
			if n > 0 && c.r.Buffered() == 0 {
				return n, nil // don't block for the next chunk with data in hand
			}
			size, err := c.readChunkHeader()
			if err != nil {
				return n, err
			}
			if size == 0 {
				c.done = true
				if err := c.skipTrailer(); err != nil {
					return n, err
				}
				break
			}
			c.remaining, c.inChunk = size, true
		}

		buf := p[n:]
		if uint64(len(buf)) > c.remaining {
			buf = buf[:c.remaining]
		}
		m, err := c.r.Read(buf)
		n += m
		c.remaining -= uint64(m)
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
		if c.remaining > 0 {
			return n, nil
		}
		c.inChunk = false
		if line, err := c.readLine(); err != nil {
			return n, err
		} else if len(line) != 0 {
			return n, errMalformed
		}
	}
	if c.done {
		return n, io.EOF
	}
	return n, nil
}
