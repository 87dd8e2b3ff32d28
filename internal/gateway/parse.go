package gateway

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	reFence = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	// Numbered entries such as "1. ...", "2、..." or "3) ...".
	reItem = regexp.MustCompile(`(?m)^\s*\d+\s*[.、)]\s*\S`)
)

// StyleID returns the identifier of the style at index within batch.
func StyleID(batch, index int) string {
	return fmt.Sprintf("b%d-s%d", batch, index+1)
}

// ParseStyles decodes a style proposal and assigns batch-scoped IDs.
// It fails unless the payload is an array of exactly StylesPerBatch objects
// with non-empty name and description.
func ParseStyles(raw []byte, batch int) ([]StyleOption, error) {
	text := stripFence(strings.TrimSpace(string(raw)))
	if text == "" {
		return nil, fmt.Errorf("empty style response")
	}

	var items []struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("decoding styles: %w", err)
	}
	if len(items) != StylesPerBatch {
		return nil, fmt.Errorf("expected %d styles, got %d", StylesPerBatch, len(items))
	}

	styles := make([]StyleOption, 0, len(items))
	for i, it := range items {
		if it.Name == nil || strings.TrimSpace(*it.Name) == "" {
			return nil, fmt.Errorf("style %d: missing name", i+1)
		}
		if it.Description == nil || strings.TrimSpace(*it.Description) == "" {
			return nil, fmt.Errorf("style %d: missing description", i+1)
		}
		styles = append(styles, StyleOption{
			ID:          StyleID(batch, i),
			Name:        strings.TrimSpace(*it.Name),
			Description: strings.TrimSpace(*it.Description),
		})
	}
	return styles, nil
}

// Overlap returns the names in styles that also appear in avoid, compared
// case-insensitively.
func Overlap(styles []StyleOption, avoid []string) []string {
	if len(avoid) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(avoid))
	for _, name := range avoid {
		seen[strings.ToLower(strings.TrimSpace(name))] = true
	}
	var out []string
	for _, s := range styles {
		if seen[strings.ToLower(s.Name)] {
			out = append(out, s.Name)
		}
	}
	return out
}

// CountItems counts numbered entries ("1. ...") in a generated prompt.
func CountItems(text string) int {
	return len(reItem.FindAllString(text, -1))
}

// Descriptor renders a style the way it is quoted in instructions.
func Descriptor(s StyleOption) string {
	return fmt.Sprintf("%q (%s)", s.Name, s.Description)
}

func stripFence(s string) string {
	if m := reFence.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
