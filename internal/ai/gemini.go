package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GeminiConfig configures the generateContent client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Gemini calls the generateContent REST endpoint.
type Gemini struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGemini(cfg GeminiConfig) *Gemini {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gemini{
		client:  &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type geminiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildGeminiRequest(req Request) geminiRequest {
	out := geminiRequest{
		GenerationConfig: geminiGenerationConfig{Temperature: req.Temperature},
	}
	if req.SystemPrompt != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}

	for _, t := range req.History {
		out.Contents = append(out.Contents, geminiContent{
			Role:  string(t.Role),
			Parts: []geminiPart{{Text: t.Text}},
		})
	}

	turn := geminiContent{Role: string(RoleUser)}
	if req.Image != nil {
		turn.Parts = append(turn.Parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: req.Image.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
		}})
	}
	if req.Prompt != "" || len(turn.Parts) == 0 {
		turn.Parts = append(turn.Parts, geminiPart{Text: req.Prompt})
	}
	out.Contents = append(out.Contents, turn)

	return out
}

// Generate sends one generateContent call. No retry is attempted.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", &Error{Message: "AI service is not configured"}
	}

	body, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return "", newError(0, err, "could not encode AI request")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", newError(0, err, "could not build AI request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", newError(0, err, "AI service timed out")
		}
		return "", newError(0, err, "could not reach AI service")
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(resp.StatusCode, err, "could not read AI response")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiError
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", newError(resp.StatusCode, nil, "AI service error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", newError(resp.StatusCode, nil, "AI service error (%d)", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", newError(resp.StatusCode, err, "could not decode AI response")
	}
	if out.PromptFeedback.BlockReason != "" {
		return "", newError(resp.StatusCode, nil, "AI service blocked the request: %s", out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", newError(resp.StatusCode, nil, "AI service returned no answer")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		if reason := out.Candidates[0].FinishReason; reason != "" && reason != "STOP" {
			return "", newError(resp.StatusCode, nil, "AI service stopped without an answer: %s", reason)
		}
		return "", newError(resp.StatusCode, nil, "AI service returned an empty answer")
	}

	return text, nil
}
