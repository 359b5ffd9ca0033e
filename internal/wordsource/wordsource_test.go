package wordsource

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOneTokenPerLine(t *testing.T) {
	in := "Tous\r\n  les \n\n après-midi,\n\t\nIl dit : \"bonjour\n"
	tokens, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"Tous", "les", "après-midi,", "Il dit : \"bonjour"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %q", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], tokens[i])
		}
	}
}

func TestParseStripsBOM(t *testing.T) {
	tokens, err := Parse(strings.NewReader("\ufeffTous\nles"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tokens[0] != "Tous" {
		t.Fatalf("expected BOM stripped, got %q", tokens[0])
	}
}

func TestParseReplacesInnerControls(t *testing.T) {
	tokens, err := Parse(strings.NewReader("a\tb\nc\x1bd\n\tTous\t\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"a b", "c d", "Tous"}
	if strings.Join(tokens, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, tokens)
	}
}

func TestParseRejectsBinary(t *testing.T) {
	for _, in := range []string{"ok\n\x00\x01\x02", "ok\n\xff\xfe"} {
		_, err := Parse(strings.NewReader(in))
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError for %q, got %v", in, err)
		}
		if !strings.Contains(perr.Error(), "line 2") {
			t.Fatalf("expected line number in error, got %q", perr.Error())
		}
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("\n  \n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chats.txt")
	if err := os.WriteFile(path, []byte("Tous\nles\nchats\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tokens, err := File(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Join(tokens, " ") != "Tous les chats" {
		t.Fatalf("unexpected tokens: %q", tokens)
	}
}

func TestFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "image.txt")
	if err := os.WriteFile(bin, []byte{0x89, 'P', 'N', 'G', 0x00}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	md := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(md, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{"", bin, md} {
		_, err := File(path).Load()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError for %q, got %v", path, err)
		}
		if path != "" && perr.Path != path {
			t.Fatalf("expected path %q in error, got %q", path, perr.Path)
		}
	}

	_, err := File(filepath.Join(dir, "missing.txt")).Load()
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		t.Fatalf("missing file is an I/O error, not a parse error")
	}
}

func TestBuiltinStartsWithBundledText(t *testing.T) {
	tokens, err := Builtin().Load()
	if err != nil {
		t.Fatalf("load builtin: %v", err)
	}
	want := []string{"Tous", "les", "après-midi,", "en", "revenant", "de", "l'école,"}
	for i, w := range want {
		if tokens[i] != w {
			t.Fatalf("token %d: expected %q, got %q", i, w, tokens[i])
		}
	}
}

func TestStaticLoadCopies(t *testing.T) {
	src := Static{"a", "b"}
	tokens, err := src.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tokens[0] = "z"
	if src[0] != "a" {
		t.Fatalf("expected static source to be unchanged")
	}
	if _, err := (Static{}).Load(); err == nil {
		t.Fatalf("expected error for empty static source")
	}
}

func TestListTexts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.TXT", "c.md", ".hidden.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	texts, err := ListTexts(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(texts) != 2 || texts[0].Name != "a.TXT" || texts[1].Name != "b.txt" {
		t.Fatalf("unexpected texts: %+v", texts)
	}
	if texts[1].Title() != "b" {
		t.Fatalf("unexpected title %q", texts[1].Title())
	}

	missing, err := ListTexts(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v, %v", missing, err)
	}
}
