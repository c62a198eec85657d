package app

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# weekly reading list
https://a.example.com/one

https://b.example.com/two
   # indented comment-ish line is a comment too
https://c.example.com/three
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	urls, err := LoadURLList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"https://a.example.com/one",
		"https://b.example.com/two",
		"https://c.example.com/three",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("urls = %v, want %v", urls, want)
	}
}

func TestLoadURLList_MissingFile(t *testing.T) {
	if _, err := LoadURLList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadURLList_AllCommentsYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("# nothing\n\n# here\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	urls, err := LoadURLList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected empty list, got %v", urls)
	}
}
