package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindlog/internal/core/domain/chat"
	"mindlog/internal/core/domain/logging"

	"github.com/stretchr/testify/suite"
)

const API_KEY = "test-api-key"

type testClientSuite struct {
	suite.Suite
	log *logging.FakeLogger
}

func (s *testClientSuite) SetupTest() {
	s.log = logging.NewFakeLogger()
}

func (s *testClientSuite) newServer(respond func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(respond))
}

func (s *testClientSuite) collect(stream chat.Stream) (string, error) {
	content := ""
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			return content, nil
		}
		if err != nil {
			return content, err
		}
		content += delta.Content
	}
}

func (s *testClientSuite) TestStreamsDeltas() {
	assert := s.Require()

	var gotAuth, gotContentType string
	var gotBody completionRequest
	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, `data: {"choices":[{"delta":{"content":"Hello"}}]}`+"\n\n")
		io.WriteString(w, `data: {"choices":[{"delta":{"content":", world"}}]}`+"\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	})
	defer server.Close()
	client := NewClient(server.Client(), s.log, server.URL, API_KEY)

	stream, err := client.Complete(context.Background(), chat.CompleteInput{
		Messages: []chat.PromptMessage{
			{Role: chat.RoleSystem, Content: "Be kind."},
			{Role: chat.RoleUser, Content: "Hi"},
		},
	})
	assert.Nil(err)
	defer stream.Close()
	content, err := s.collect(stream)

	assert.Nil(err)
	assert.Equal("Hello, world", content)
	assert.Equal("Bearer "+API_KEY, gotAuth)
	assert.Equal("application/json", gotContentType)
	assert.Equal(MODEL, gotBody.Model)
	assert.True(gotBody.Stream)
	assert.Equal(MAX_TOKENS, gotBody.MaxTokens)
	assert.Equal(TEMPERATURE, gotBody.Temperature)
	assert.Len(gotBody.Messages, 2)
	assert.Equal("Hi", gotBody.Messages[1].Content)
}

func (s *testClientSuite) TestUnexpectedStatus() {
	assert := s.Require()

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()
	client := NewClient(server.Client(), s.log, server.URL, API_KEY)

	stream, err := client.Complete(context.Background(), chat.CompleteInput{})

	assert.Nil(stream)
	assert.ErrorIs(err, chat.ErrUpstream)
}

func (s *testClientSuite) TestConnectionError() {
	assert := s.Require()

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()
	client := NewClient(http.DefaultClient, s.log, server.URL, API_KEY)

	stream, err := client.Complete(context.Background(), chat.CompleteInput{})

	assert.Nil(stream)
	assert.ErrorIs(err, chat.ErrUpstream)
}

func (s *testClientSuite) TestStreamEndsWithoutSentinel() {
	assert := s.Require()

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `data: {"choices":[{"delta":{"content":"partial"}}]}`+"\n\n")
	})
	defer server.Close()
	client := NewClient(server.Client(), s.log, server.URL, API_KEY)

	stream, err := client.Complete(context.Background(), chat.CompleteInput{})
	assert.Nil(err)
	defer stream.Close()
	content, err := s.collect(stream)

	assert.Equal("partial", content)
	assert.ErrorIs(err, io.ErrUnexpectedEOF)
}

func (s *testClientSuite) TestMalformedFramesSkipped() {
	assert := s.Require()

	server := s.newServer(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data: {not json}\n\n")
		io.WriteString(w, `data: {"choices":[]}`+"\n\n")
		io.WriteString(w, `data: {"choices":[{"delta":{"content":"ok"}}]}`+"\n\n")
		io.WriteString(w, "data: [DONE]\n\n")
	})
	defer server.Close()
	client := NewClient(server.Client(), s.log, server.URL, API_KEY)

	stream, err := client.Complete(context.Background(), chat.CompleteInput{})
	assert.Nil(err)
	defer stream.Close()
	content, err := s.collect(stream)

	assert.Nil(err)
	assert.Equal("ok", content)
}

func TestClient(t *testing.T) {
	suite.Run(t, new(testClientSuite))
}
