// Package wordsource loads the token sequences read during a test.
package wordsource

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed texts/*.txt
var bundled embed.FS

// BuiltinName is the file name of the bundled text.
const BuiltinName = "tous-les-apres-midi.txt"

const maxLineBytes = 1024 * 1024

// Source supplies an ordered token sequence.
type Source interface {
	Load() ([]string, error)
}

// ParseError reports content that cannot be used as a token sequence.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Static returns a fixed token sequence.
type Static []string

// Load implements Source. The returned slice is a copy.
func (s Static) Load() ([]string, error) {
	if len(s) == 0 {
		return nil, &ParseError{Reason: "text is empty"}
	}
	return append([]string(nil), s...), nil
}

// Builtin returns the bundled French text.
func Builtin() Static {
	data, err := bundled.ReadFile("texts/" + BuiltinName)
	if err != nil {
		panic(fmt.Sprintf("bundled text missing: %v", err))
	}
	tokens, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		panic(fmt.Sprintf("bundled text invalid: %v", err))
	}
	return Static(tokens)
}

// File loads tokens from a plain-text file.
type File string

// Load implements Source.
func (f File) Load() ([]string, error) {
	path := string(f)
	if path == "" {
		return nil, &ParseError{Reason: "no file selected"}
	}
	if !IsTextFile(path) {
		return nil, &ParseError{Path: path, Reason: "only .txt files are allowed"}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open text: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text.
			_ = cerr
		}
	}()

	tokens, err := Parse(file)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
			return nil, perr
		}
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return tokens, nil
}

// IsTextFile reports whether path names a .txt file.
func IsTextFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Parse reads one token per non-empty line. Surrounding whitespace is
// trimmed and inner control characters such as tabs become spaces;
// punctuation stays attached to whatever line it was written on.
func Parse(r io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if !utf8.ValidString(raw) || strings.ContainsRune(raw, 0) {
			return nil, &ParseError{Reason: fmt.Sprintf("line %d is not text", lineNo)}
		}
		line := strings.TrimSpace(strings.Map(controlToSpace, raw))
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Reason: "cannot decode text", Err: err}
	}
	if len(tokens) == 0 {
		return nil, &ParseError{Reason: "text is empty"}
	}
	return tokens, nil
}

func controlToSpace(r rune) rune {
	if unicode.IsControl(r) {
		return ' '
	}
	return r
}
