package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mindlog/internal/core/domain/chat"
	e "mindlog/internal/core/domain/errors"
	"mindlog/internal/core/domain/logging"
)

const (
	MODEL       = "gpt-4.1-mini"
	MAX_TOKENS  = 500
	TEMPERATURE = 0.7
)

// Client relays chat completions from an OpenAI-compatible endpoint
// with streaming enabled.
type Client struct {
	httpClient *http.Client
	log        logging.Logger
	url        string
	apiKey     string
}

func NewClient(httpClient *http.Client, log logging.Logger, url string, apiKey string) *Client {
	if httpClient == nil {
		panic(e.NewNilArgumentError("httpClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Client{httpClient: httpClient, log: log, url: url, apiKey: apiKey}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []chat.PromptMessage `json:"messages"`
	Stream      bool                 `json:"stream"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature"`
}

func (c *Client) Complete(ctx context.Context, input chat.CompleteInput) (chat.Stream, error) {
	body, err := json.Marshal(completionRequest{
		Model:       MODEL,
		Messages:    input.Messages,
		Stream:      true,
		MaxTokens:   MAX_TOKENS,
		Temperature: TEMPERATURE,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chat.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", chat.ErrUpstream, resp.StatusCode)
	}

	return &stream{
		log:    c.log,
		body:   resp.Body,
		framer: newFramer(resp.Body),
	}, nil
}

type streamPayload struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type stream struct {
	log    logging.Logger
	body   io.ReadCloser
	framer *framer
}

// Recv returns the next content delta. The "[DONE]" sentinel maps to
// io.EOF; a stream that ends without the sentinel is reported as
// io.ErrUnexpectedEOF so the caller never mistakes a broken stream
// for a complete one. Malformed frames are skipped.
func (s *stream) Recv() (chat.Delta, error) {
	for {
		payload, err := s.framer.Next()
		if err == io.EOF {
			return chat.Delta{}, io.ErrUnexpectedEOF
		}
		if err != nil {
			return chat.Delta{}, err
		}
		if payload == "[DONE]" {
			return chat.Delta{}, io.EOF
		}

		parsed := streamPayload{}
		if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
			s.log.Warning(
				context.Background(),
				"Skipping malformed completion frame.",
				logging.Entry("err", err),
			)
			continue
		}
		if len(parsed.Choices) == 0 {
			continue
		}
		return chat.Delta{Content: parsed.Choices[0].Delta.Content}, nil
	}
}

func (s *stream) Close() error {
	return s.body.Close()
}
