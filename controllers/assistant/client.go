package assistantControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a minimal wire client for the Gemini generateContent API.
// Calls sit on the checkout and chat critical paths, so every request
// carries a timeout and transient failures get a bounded retry with
// exponential backoff.
type Client struct {
	APIKey        string
	Model         string
	BaseURL       string
	HTTP          *http.Client
	MaxRetries    uint64
	RetryInterval time.Duration
}

func NewClientFromEnv() *Client {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		Model:         model,
		BaseURL:       defaultBaseURL,
		HTTP:          &http.Client{Timeout: 30 * time.Second},
		MaxRetries:    3,
		RetryInterval: 500 * time.Millisecond,
	}
}

// -------- Wire types --------

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type Part struct {
	Text             string            `json:"text,omitempty"`
	InlineData       *InlineData       `json:"inlineData,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type FunctionDeclaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type GenerateRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstPart returns the leading part of the first candidate, or nil.
func (r *GenerateResponse) FirstPart() *Part {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return nil
	}
	return &r.Candidates[0].Content.Parts[0]
}

// -------- Transport --------

// GenerateContent posts one generateContent request. 429 and 5xx
// responses are retried with backoff; anything else 4xx is permanent.
func (c *Client) GenerateContent(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)

	var result GenerateResponse
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.APIKey)

		resp, err := c.HTTP.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, body)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, body))
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return backoff.Permanent(fmt.Errorf("decode model response: %w", err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.RetryInterval
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.MaxRetries), ctx)); err != nil {
		return nil, err
	}
	return &result, nil
}
