package llm

// SuggestionRequest asks for a section order matching a free-text preference.
type SuggestionRequest struct {
	Preference        string   `json:"preference"`
	AvailableSections []string `json:"available_sections"`
	CurrentOrder      []string `json:"current_order"`
	ProfileOverview   string   `json:"profile_overview,omitempty"`
}

// Suggestion is the suggestion service's reply. Order is untrusted and must be
// reconciled before use.
type Suggestion struct {
	Order     []string `json:"order"`
	Reasoning string   `json:"reasoning"`
}

// LatexRequest asks for a complete LaTeX resume built from escaped profile
// text, optionally tailored to a job description.
type LatexRequest struct {
	ProfileText    string `json:"profile_text"`
	JobDescription string `json:"job_description,omitempty"`
}

// ClaudeRequest represents the Claude API request format.
type ClaudeRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// ClaudeResponse represents the Claude API response format.
type ClaudeResponse struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
	Model   string    `json:"model"`
	Usage   Usage     `json:"usage"`
}

// Message represents a message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Content represents content in the response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage represents token usage information.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
