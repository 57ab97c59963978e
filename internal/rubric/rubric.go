// Package rubric resolves the rubric document for a skill and splits it into
// per-dimension criteria blocks.
package rubric

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skilljudge/verdict/internal/markdown"
	"github.com/skilljudge/verdict/internal/models"
	"github.com/yuin/goldmark/ast"
)

// DefaultName is the rubric name reported when the generic fallback is used
// or no rubric file exists at all.
const DefaultName = "default"

// ErrNotFound is returned by Resolve when neither a skill-specific nor a
// default rubric exists. The returned name is still DefaultName.
var ErrNotFound = errors.New("no rubric found")

// Criteria maps a dimension to the rubric text that describes it.
type Criteria map[models.Dimension]string

// Candidates returns the rubric names tried for skill, most specific first:
// the full identifier, then the identifier with trailing hyphen tokens
// removed one at a time, then the default rubric.
func Candidates(skill string) []string {
	names := []string{skill}
	parts := strings.Split(skill, "-")
	for i := len(parts) - 1; i >= 1; i-- {
		names = append(names, strings.Join(parts[:i], "-"))
	}
	if skill != DefaultName {
		names = append(names, DefaultName)
	}
	return names
}

// Resolve finds the rubric for skill in dir and returns its name and raw
// markdown. A missing rubric yields DefaultName, empty text and ErrNotFound;
// an unreadable one yields its name, empty text and the read error.
func Resolve(dir, skill string) (string, string, error) {
	for _, name := range Candidates(skill) {
		path := filepath.Join(dir, name+".md")
		data, err := os.ReadFile(path)
		if err == nil {
			return name, string(data), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return name, "", fmt.Errorf("reading rubric %s: %w", path, err)
	}
	return DefaultName, "", fmt.Errorf("%w for skill %q in %s", ErrNotFound, skill, dir)
}

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

// headingKey returns the case-folded trailing word of a heading.
func headingKey(title string) string {
	words := wordPattern.FindAllString(title, -1)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[len(words)-1])
}

// ParseCriteria splits a rubric into dimension blocks. Every level-3 heading
// opens a block that runs to the next level-3 heading; a block is kept when
// the heading's trailing word names a dimension. Text before the first such
// heading is discarded.
func ParseCriteria(raw string) Criteria {
	criteria := Criteria{}
	if strings.TrimSpace(raw) == "" {
		return criteria
	}
	src := []byte(raw)

	type section struct {
		key   string
		start int
	}
	var sections []section
	_ = ast.Walk(markdown.Parse(src), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering || h.Level != 3 {
			return ast.WalkContinue, nil
		}
		start := markdown.LineStart(h, src)
		if start < 0 {
			return ast.WalkSkipChildren, nil
		}
		sections = append(sections, section{key: headingKey(markdown.Text(h, src)), start: start})
		return ast.WalkSkipChildren, nil
	})

	for i, s := range sections {
		dim, known := models.ParseDimension(s.key)
		if !known {
			continue
		}
		end := len(src)
		if i+1 < len(sections) {
			end = sections[i+1].start
		}
		criteria[dim] = strings.TrimSpace(string(src[s.start:end]))
	}
	return criteria
}
