// Package export writes generated prompts to Markdown files and keeps an
// index of them in the export directory's README.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/vibeprompt/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	indexMarker = "<!-- PROMPTS -->"
	tableHeader = "| Name | Mode | Style | Date |"
	tableSep    = "|------|------|-------|------|"

	fallbackName = "prompt"
)

// Document is one exported prompt pair.
type Document struct {
	Mode           string
	Style          string
	Idea           string
	Final          string
	Implementation string
	Created        time.Time
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Mode    string `yaml:"mode"`
	Style   string `yaml:"style"`
	Idea    string `yaml:"idea,omitempty"`
	Created string `yaml:"created"`
}

var reName = regexp.MustCompile(`(?:设计一(?:款|个)|拍摄一组)\s*[\[【]?([^\]】\n]+?)[\]】]?\s*的(?:UI|图标|室内效果图|照片)`)

// Title returns the app, asset, space or series name from the final prompt, falling back
// to the first line of the idea.
func (d Document) Title() string {
	if m := reName.FindStringSubmatch(d.Final); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	if line := firstLine(d.Idea); line != "" {
		return truncate(line, 60)
	}
	return fallbackName
}

// Save writes d to dir as <slug>.md and records it in dir/README.md.
// Existing files are never overwritten; a numeric suffix is added instead.
// Returns the path of the written file.
func Save(dir string, d Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if d.Created.IsZero() {
		d.Created = time.Now()
	}

	title := d.Title()
	name := slug.Make(title)
	if name == "" {
		name = fallbackName
	}
	path := uniquePath(dir, name)

	content, err := Render(d)
	if err != nil {
		return "", err
	}

	logger.Debug("Writing prompt to %s", path)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write prompt file: %w", err)
	}

	readmePath := filepath.Join(dir, "README.md")
	row := indexRow(title, filepath.Base(path), d)
	if err := updateIndex(readmePath, row); err != nil {
		return "", fmt.Errorf("failed to update README: %w", err)
	}

	logger.Info("Exported prompt to %s", path)
	return path, nil
}

// Render returns the Markdown file body: YAML front matter, the final
// prompt and the implementation prompt.
func Render(d Document) ([]byte, error) {
	if d.Created.IsZero() {
		d.Created = time.Now()
	}
	fm, err := yaml.Marshal(frontMatter{
		Title:   d.Title(),
		Mode:    d.Mode,
		Style:   d.Style,
		Idea:    strings.TrimSpace(d.Idea),
		Created: d.Created.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString("## Final Prompt\n\n")
	buf.WriteString(strings.TrimSpace(d.Final))
	buf.WriteString("\n\n## Implementation Prompt\n\n")
	buf.WriteString(strings.TrimSpace(d.Implementation))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func uniquePath(dir, name string) string {
	path := filepath.Join(dir, name+".md")
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.md", name, i))
	}
	return path
}

func indexRow(title, filename string, d Document) string {
	cell := func(s string) string {
		return strings.ReplaceAll(truncate(firstLine(s), 60), "|", "\\|")
	}
	return fmt.Sprintf("| [%s](%s) | %s | %s | %s |",
		cell(title), filename, cell(d.Mode), cell(d.Style), d.Created.Format("2006-01-02"))
}

// updateIndex adds row to the README table after the marker, creating the
// README or the table when missing. Newest entries come first.
func updateIndex(readmePath, row string) error {
	existing, err := os.ReadFile(readmePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read README: %w", err)
		}
		logger.Debug("Creating new README at %s", readmePath)
		return os.WriteFile(readmePath, []byte(newIndex(row)), 0644)
	}
	return os.WriteFile(readmePath, []byte(insertRow(string(existing), row)), 0644)
}

func newIndex(row string) string {
	return fmt.Sprintf(`# Prompts

Prompts generated with vibeprompt.

%s

%s
%s
%s
`, indexMarker, tableHeader, tableSep, row)
}

func insertRow(content, row string) string {
	lines := strings.Split(content, "\n")

	markerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == indexMarker {
			markerIdx = i
			break
		}
	}

	if markerIdx == -1 {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if strings.TrimSpace(content) != "" {
			content += "\n"
		}
		return content + indexMarker + "\n\n" + tableHeader + "\n" + tableSep + "\n" + row + "\n"
	}

	at := markerIdx + 1
	for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
		at++
	}

	insert := []string{row}
	if at < len(lines) && strings.TrimSpace(lines[at]) == tableHeader {
		at++
		if at < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[at]), "|--") {
			at++
		}
	} else {
		at = markerIdx + 1
		insert = []string{"", tableHeader, tableSep, row}
	}

	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
