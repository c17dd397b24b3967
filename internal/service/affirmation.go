package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nzoschke/healthmate/internal/markdown"
	"github.com/nzoschke/healthmate/internal/model"
)

var (
	ErrNoAffirmations = errors.New("no affirmations available")
)

// AffirmationService serves affirmations written as markdown files with
// category and author frontmatter under affirmations/ in the content FS.
type AffirmationService struct {
	parser  *markdown.Parser
	content fs.FS
	loc     *time.Location
	now     func() time.Time

	once   sync.Once
	all    []*model.Affirmation
	errAll error
}

func NewAffirmationService(content fs.FS, parser *markdown.Parser, loc *time.Location) *AffirmationService {
	return &AffirmationService{
		parser:  parser,
		content: content,
		loc:     loc,
		now:     time.Now,
	}
}

// Affirmations lists all affirmations sorted by slug, optionally filtered by category.
func (s *AffirmationService) Affirmations(category string) ([]*model.Affirmation, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}

	category = normalizeCategory(category)
	if category == "" {
		return all, nil
	}

	var out []*model.Affirmation
	for _, a := range all {
		if strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Today picks the affirmation of the day. The pick is stable for a local date.
func (s *AffirmationService) Today() (*model.Affirmation, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoAffirmations
	}

	today := s.now().In(s.loc)
	idx := (today.Year()*366 + today.YearDay()) % len(all)
	return all[idx], nil
}

// Categories lists the distinct categories, sorted.
func (s *AffirmationService) Categories() ([]string, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	for _, a := range all {
		if a.Category != "" && !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *AffirmationService) load() ([]*model.Affirmation, error) {
	s.once.Do(func() {
		s.all, s.errAll = s.readAll()
	})
	return s.all, s.errAll
}

func (s *AffirmationService) readAll() ([]*model.Affirmation, error) {
	files, err := fs.Glob(s.content, "affirmations/*.md")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	all := make([]*model.Affirmation, 0, len(files))
	for _, file := range files {
		a, err := s.read(file)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
	}
	return all, nil
}

func (s *AffirmationService) read(file string) (*model.Affirmation, error) {
	content, err := fs.ReadFile(s.content, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read affirmation %s: %w", file, err)
	}

	htmlContent, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse affirmation %s: %w", file, err)
	}

	a := &model.Affirmation{
		Slug:        strings.TrimSuffix(path.Base(file), ".md"),
		Text:        strings.TrimSpace(stripFrontmatter(string(content))),
		HTMLContent: string(htmlContent),
	}

	category, ok := meta["category"].(string)
	if ok {
		a.Category = normalizeCategory(category)
	}

	author, ok := meta["author"].(string)
	if ok {
		a.Author = author
	}

	return a, nil
}

// stripFrontmatter drops a leading --- delimited block.
func stripFrontmatter(src string) string {
	if !strings.HasPrefix(src, "---\n") {
		return src
	}
	rest := src[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return src
	}
	rest = rest[end+len("\n---"):]
	return strings.TrimPrefix(rest, "\n")
}
