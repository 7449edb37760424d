// Package policies loads HR policy documents, splits them into chunks, and
// feeds the retrieval layer.
package policies

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PolicyFile is a single policy document read from disk.
type PolicyFile struct {
	// Name is the human-readable policy name derived from the filename,
	// e.g. "remote_work.md" becomes "Remote Work".
	Name     string
	Filename string
	Content  string
}

// Loader finds and reads policy files under a directory.
type Loader struct {
	dir     string
	include []string
	exclude []string
}

// NewLoader creates a loader rooted at dir. Include and exclude are
// doublestar glob patterns matched against paths relative to dir.
func NewLoader(dir string, include []string, exclude []string) *Loader {
	return &Loader{dir: dir, include: include, exclude: exclude}
}

// Load reads all matching policy files. Markdown files are flattened to
// plain text before chunking so headings and emphasis markers do not leak
// into embeddings.
func (l *Loader) Load() ([]PolicyFile, error) {
	if _, err := os.Stat(l.dir); err != nil {
		return nil, fmt.Errorf("policies directory %s: %w", l.dir, err)
	}

	var files []PolicyFile
	err := filepath.WalkDir(l.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !l.matches(rel) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		content := string(raw)
		if strings.EqualFold(filepath.Ext(path), ".md") {
			content = flattenMarkdown(raw)
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return nil
		}

		files = append(files, PolicyFile{
			Name:     policyNameFromFilename(d.Name()),
			Filename: rel,
			Content:  content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (l *Loader) matches(rel string) bool {
	included := false
	for _, pattern := range l.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, pattern := range l.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// policyNameFromFilename turns "sick_leave-policy.md" into "Sick Leave Policy".
func policyNameFromFilename(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// flattenMarkdown extracts the plain text of a markdown document, joining
// block-level elements with newlines.
func flattenMarkdown(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
