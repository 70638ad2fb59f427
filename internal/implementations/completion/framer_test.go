package completion

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// chunkedReader yields the scripted chunks one Read at a time so tests
// can split frames at arbitrary byte boundaries.
type chunkedReader struct {
	chunks []string
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

type testFramerSuite struct {
	suite.Suite
}

func (s *testFramerSuite) collect(f *framer) ([]string, error) {
	payloads := make([]string, 0)
	for {
		payload, err := f.Next()
		if err != nil {
			return payloads, err
		}
		payloads = append(payloads, payload)
	}
}

func (s *testFramerSuite) TestSingleChunk() {
	assert := s.Require()

	f := newFramer(strings.NewReader("data: one\n\ndata: two\n\n"))
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"one", "two"}, payloads)
}

func (s *testFramerSuite) TestPayloadSplitAcrossReads() {
	assert := s.Require()

	f := newFramer(&chunkedReader{chunks: []string{"data: hel", "lo wor", "ld\n\n"}})
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"hello world"}, payloads)
}

func (s *testFramerSuite) TestSplitInsidePrefix() {
	assert := s.Require()

	f := newFramer(&chunkedReader{chunks: []string{"da", "ta: x\n", "dat", "a: y\n"}})
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"x", "y"}, payloads)
}

func (s *testFramerSuite) TestCarriageReturnsTrimmed() {
	assert := s.Require()

	f := newFramer(strings.NewReader("data: a\r\n\r\ndata: b\r\n"))
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"a", "b"}, payloads)
}

func (s *testFramerSuite) TestNonDataLinesSkipped() {
	assert := s.Require()

	f := newFramer(strings.NewReader(": keep-alive\nevent: message\ndata: payload\n\n"))
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"payload"}, payloads)
}

func (s *testFramerSuite) TestTrailingLineWithoutNewline() {
	assert := s.Require()

	f := newFramer(strings.NewReader("data: first\ndata: [DONE]"))
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Equal([]string{"first", "[DONE]"}, payloads)
}

func (s *testFramerSuite) TestEmptyStream() {
	assert := s.Require()

	f := newFramer(strings.NewReader(""))
	payloads, err := s.collect(f)

	assert.Equal(io.EOF, err)
	assert.Empty(payloads)
}

func TestFramer(t *testing.T) {
	suite.Run(t, new(testFramerSuite))
}
