package model

// Insight is an AI-written text, kept as markdown and rendered HTML.
type Insight struct {
	SampleID int64  `json:"sample_id,omitempty"`
	Text     string `json:"text"`
	HTML     string `json:"html"`
}
