package wordsource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Text is a selectable text file.
type Text struct {
	Name string
	Path string
	// Builtin marks the bundled text, which has no path.
	Builtin bool
}

// Source returns the word source for the text.
func (t Text) Source() Source {
	if t.Builtin {
		return Builtin()
	}
	return File(t.Path)
}

// Title is the display name without extension.
func (t Text) Title() string {
	return strings.TrimSuffix(t.Name, filepath.Ext(t.Name))
}

// BuiltinText describes the bundled text.
func BuiltinText() Text {
	return Text{Name: BuiltinName, Builtin: true}
}

// ListTexts returns the .txt files in dir sorted by name. A missing
// directory yields no texts.
func ListTexts(dir string) ([]Text, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read texts directory: %w", err)
	}
	texts := make([]Text, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !IsTextFile(name) || strings.HasPrefix(name, ".") {
			continue
		}
		texts = append(texts, Text{Name: name, Path: filepath.Join(dir, name)})
	}
	sort.Slice(texts, func(i, j int) bool {
		return texts[i].Name < texts[j].Name
	})
	return texts, nil
}
