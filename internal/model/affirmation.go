package model

type Affirmation struct {
	Slug        string `json:"slug"`
	Text        string `json:"text"`
	HTMLContent string `json:"html_content"`
	Category    string `json:"category"`
	Author      string `json:"author,omitempty"`
}
