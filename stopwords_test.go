package mdm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultStopWords(t *testing.T) {
	sw := DefaultStopWords()
	for _, w := range []string{"a", "the", "of", "and"} {
		if !sw.Contains(w) {
			t.Errorf("expected %q in the default stop words", w)
		}
	}
	for _, w := range []string{"", "cat", "The"} {
		if sw.Contains(w) {
			t.Errorf("didn't expect %q in the default stop words", w)
		}
	}
	if sw.Len() < 100 || sw.Len() > 300 {
		t.Errorf("unexpected default stop list size %d", sw.Len())
	}
	t.Logf("%d default stop words", sw.Len())
}

func TestStopWordsCopiedAtConstruction(t *testing.T) {
	words := []string{"foo", "bar"}
	sw := NewStopWords(words...)
	words[0] = "baz"
	if !sw.Contains("foo") || sw.Contains("baz") {
		t.Errorf("stop words must not follow the caller's slice")
	}

	a := NewPathAnalyzerWithStopWords(sw)
	// the analyzer filters keep their own token map
	sw.tokens["qux"] = true
	if diff := cmp.Diff([]string{"qux"}, a.Analyze("f", "foo/qux").Terms()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestStopWordsWords(t *testing.T) {
	got := NewStopWords("b", "a", "", "a").Words()
	if diff := cmp.Diff([]string{"", "a", "b"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadStopWords(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "stop.txt")
	content := "# catalog stop words\nterminology  codeset | inline comment\nfolder\n"
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sw, err := LoadStopWords(filename)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"codeset", "folder", "terminology"}, sw.Words()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadStopWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
