package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"compliance-backend/internal/resolution"
	"compliance-backend/internal/vision"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements vision.Client using OpenAI Chat Completions with image
// inputs.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("VISION_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ClassifyDocument sends one scanned file to the model and decodes the
// classification payload. FileName is echoed into the result; success flags
// belong to the caller.
func (c *Client) ClassifyDocument(ctx context.Context, input vision.ClassifyInput) (resolution.RawScanResult, error) {
	messages := buildMessages(input)

	temp := float32(0)
	reqBody := chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    &temp,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return resolution.RawScanResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return resolution.RawScanResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return resolution.RawScanResult{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return resolution.RawScanResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resolution.RawScanResult{}, err
	}
	if resp.StatusCode >= 500 {
		return resolution.RawScanResult{}, fmt.Errorf("openai http status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return resolution.RawScanResult{}, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return resolution.RawScanResult{}, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return resolution.RawScanResult{}, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return resolution.RawScanResult{}, fmt.Errorf("openai response empty content")
	}

	var result resolution.RawScanResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return resolution.RawScanResult{}, fmt.Errorf("classification parse: %w", err)
	}
	result.FileName = input.FileName
	return result, nil
}

func buildMessages(input vision.ClassifyInput) []chatMessage {
	messages := []chatMessage{
		{Role: "system", Content: classificationPrompt},
	}

	switch {
	case strings.HasPrefix(input.MIMEType, "image/") && len(input.Data) > 0:
		dataURL := fmt.Sprintf("data:%s;base64,%s", input.MIMEType, base64.StdEncoding.EncodeToString(input.Data))
		messages = append(messages, chatMessage{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: "Classifique o documento digitalizado a seguir."},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		})
	default:
		text := input.Text
		if strings.TrimSpace(text) == "" {
			text = "(sem texto extraído)"
		}
		messages = append(messages, chatMessage{
			Role:    "user",
			Content: "Texto extraído do documento:\n\n" + text,
		})
	}
	return messages
}

var _ vision.Client = (*Client)(nil)
