package markdown

import (
	"strings"
	"testing"
)

func TestParseWithFrontmatter(t *testing.T) {
	src := []byte("---\ncategory: Strength\nauthor: Unknown\n---\nI am **capable**.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(src)
	if err != nil {
		t.Fatalf("ParseWithFrontmatter: %v", err)
	}
	if meta["category"] != "Strength" || meta["author"] != "Unknown" {
		t.Errorf("meta = %v", meta)
	}
	if !strings.Contains(string(html), "<strong>capable</strong>") {
		t.Errorf("html = %s", html)
	}
	if strings.Contains(string(html), "category") {
		t.Errorf("frontmatter leaked into html: %s", html)
	}
}

func TestRender_DropsRawHTML(t *testing.T) {
	out := NewParser().Render("- drink water\n<script>alert(1)</script>")
	if !strings.Contains(out, "<li>drink water</li>") {
		t.Errorf("out = %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw html passed through: %s", out)
	}
}
