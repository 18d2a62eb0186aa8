package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// ClaudeAPIEndpoint is the Anthropic API endpoint.
	ClaudeAPIEndpoint = "https://api.anthropic.com/v1/messages"
	// ClaudeModel is the model to use.
	ClaudeModel = "claude-sonnet-4-20250514"
	// ClaudeAPIVersion is the API version.
	ClaudeAPIVersion = "2023-06-01"

	suggestionMaxTokens = 1024
	latexMaxTokens      = 8192
)

// Client represents a Claude API client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new Claude API client.
func NewClient(apiKey, model string) (client *Client) {
	if model == "" {
		model = ClaudeModel
	}
	client = &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: ClaudeAPIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// SuggestSectionOrder asks the model for a section order matching the
// preference. The returned order is not validated beyond being non-empty.
func (c *Client) SuggestSectionOrder(ctx context.Context, req SuggestionRequest) (suggestion Suggestion, err error) {
	prompt := buildSuggestionPrompt(req)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt, suggestionMaxTokens)
	if err != nil {
		err = errors.Wrap(err, "section order request failed")
		return suggestion, err
	}

	// Clean markdown code fences if present
	cleanedText := stripMarkdownCodeFences(responseText)

	// Parse JSON response
	err = json.Unmarshal([]byte(cleanedText), &suggestion)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse section order response: %s", responseText)
		return suggestion, err
	}

	if len(suggestion.Order) == 0 {
		err = errors.Errorf("section order response contained no order: %s", responseText)
		return suggestion, err
	}

	return suggestion, err
}

// GenerateLatex asks the model for a complete LaTeX resume document.
func (c *Client) GenerateLatex(ctx context.Context, req LatexRequest) (document string, err error) {
	if strings.TrimSpace(req.ProfileText) == "" {
		err = errors.New("profile text is empty")
		return document, err
	}

	prompt := buildLatexPrompt(req)

	var responseText string
	responseText, err = c.sendRequest(ctx, prompt, latexMaxTokens)
	if err != nil {
		err = errors.Wrap(err, "LaTeX generation request failed")
		return document, err
	}

	document = stripMarkdownCodeFences(responseText)

	if !strings.Contains(document, `\documentclass`) {
		err = errors.Errorf("response is not a LaTeX document: %.200s", responseText)
		document = ""
		return document, err
	}

	return document, err
}

// sendRequest sends a request to Claude API.
func (c *Client) sendRequest(ctx context.Context, prompt string, maxTokens int) (responseText string, err error) {
	// Build request
	claudeReq := ClaudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(claudeReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return responseText, err
	}

	// Create HTTP request
	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return responseText, err
	}

	// Set headers
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", ClaudeAPIVersion)

	// Send request
	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return responseText, err
	}
	defer resp.Body.Close()

	// Read response body
	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return responseText, err
	}

	// Check status code
	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
		return responseText, err
	}

	// Parse Claude response
	var claudeResp ClaudeResponse
	err = json.Unmarshal(respBody, &claudeResp)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse Claude response: %s", string(respBody))
		return responseText, err
	}

	// Extract text content
	if len(claudeResp.Content) == 0 {
		err = errors.New("no content in Claude response")
		return responseText, err
	}

	responseText = claudeResp.Content[0].Text

	return responseText, err
}

// stripMarkdownCodeFences removes a surrounding markdown code fence, with or
// without a language tag, from a model reply.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence line, language tag included
	newline := strings.IndexByte(cleaned, '\n')
	if newline < 0 {
		cleaned = strings.Trim(cleaned, "`")
		return cleaned
	}
	cleaned = cleaned[newline+1:]

	cleaned = strings.TrimSuffix(strings.TrimRight(cleaned, " \r\n"), "```")
	cleaned = strings.TrimRight(cleaned, " \r\n")

	return cleaned
}
