package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/blevesearch/bleve"
	lru "github.com/hashicorp/golang-lru"
	"github.com/klauspost/compress/gzip"

	mdm "github.com/MauroDataMapper/gomdm"
)

func setup(t *testing.T) {
	t.Helper()
	setupWithStopWords(t, nil)
}

func setupWithStopWords(t *testing.T, stopWords []string) {
	t.Helper()
	im, err := mdm.NewIndexMapping(stopWords)
	if err != nil {
		t.Fatal(err)
	}
	index, err = bleve.NewMemOnly(im)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { index.Close() })

	for i, p := range []string{
		"Hospital Data/Patient/Name",
		"Hospital Data/Patient/Date of Birth",
		"Hospital Data/Visit/Date",
	} {
		e := mdm.CatalogEntry{ID: strings.Repeat("x", i+1), Path: p}
		if err := index.Index(e.ID, mdm.NewCatalogItem(e)); err != nil {
			t.Fatal(err)
		}
	}

	idx = true
	indexLabel = "memory"
	analyzer = mdm.NewMappingAnalyzer(index.Mapping())
	cache, err = lru.New(10)
	if err != nil {
		t.Fatal(err)
	}
}

func search(t *testing.T, q string) *goquery.Document {
	t.Helper()
	form := url.Values{"search_data": {q}}
	req := httptest.NewRequest("POST", "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	makeGzipHandler(searchHandler)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSearchHandler(t *testing.T) {
	setup(t)

	doc := search(t, "Patient")
	if n := doc.Find("li.hit").Length(); n != 2 {
		t.Errorf("expected 2 hits, got %d", n)
	}
	info := doc.Find("#info").Text()
	if !strings.HasPrefix(info, "2 matches") {
		t.Errorf("unexpected info %q", info)
	}
	if _, ok := cache.Get("Patient"); !ok {
		t.Errorf("expected the result to be cached")
	}

	// cached results render the same
	doc = search(t, "Patient")
	if n := doc.Find("li.hit").Length(); n != 2 {
		t.Errorf("expected 2 cached hits, got %d", n)
	}
}

func TestSearchHandlerStopWords(t *testing.T) {
	setup(t)

	doc := search(t, "the")
	if n := doc.Find("li.hit").Length(); n != 0 {
		t.Errorf("expected no hit for a stop word, got %d", n)
	}
	if info := doc.Find("#info").Text(); !strings.HasPrefix(info, "No match") {
		t.Errorf("unexpected info %q", info)
	}
}

func TestSearchHandlerLabels(t *testing.T) {
	setup(t)

	doc := search(t, "date")
	var labels []string
	doc.Find("li.hit .label").Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, s.Text())
	})
	if len(labels) != 1 || labels[0] != "Date" {
		t.Errorf("unexpected labels %v", labels)
	}
}

func TestSearchHandlerNoIndex(t *testing.T) {
	setup(t)
	idx = false
	defer func() { idx = true }()

	rec := httptest.NewRecorder()
	searchHandler(rec, httptest.NewRequest("GET", "/search", nil))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc.Find("#info").Text(), "not available") {
		t.Errorf("expected the no index page")
	}
}

func TestHomeHandler(t *testing.T) {
	setup(t)

	rec := httptest.NewRecorder()
	homeHandler(rec, httptest.NewRequest("GET", "/", nil))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find("#info .count").Text(); got != "3" {
		t.Errorf("count = %q, want 3", got)
	}

	rec = httptest.NewRecorder()
	homeHandler(rec, httptest.NewRequest("GET", "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestAnalyzeHandlerGzip(t *testing.T) {
	setup(t)

	req := httptest.NewRequest("GET", "/analyze?path="+url.QueryEscape("the/Cat/and/the/Dog"), nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	makeGzipHandler(analyzeHandler)(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q", got)
	}
	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	var d struct {
		Path   string      `json:"path"`
		Tokens []mdm.Token `json:"tokens"`
	}
	if err := json.NewDecoder(gz).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if len(d.Tokens) != 2 || d.Tokens[0].Text != "cat" || d.Tokens[1].Text != "dog" || d.Tokens[1].Position != 1 {
		t.Errorf("unexpected tokens %v", d.Tokens)
	}
}

func TestAnalyzeHandlerIndexStopWords(t *testing.T) {
	setupWithStopWords(t, []string{"patient"})

	rec := httptest.NewRecorder()
	analyzeHandler(rec, httptest.NewRequest("GET", "/analyze?path="+url.QueryEscape("The/Patient"), nil))
	var d struct {
		Tokens []mdm.Token `json:"tokens"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	if len(d.Tokens) != 1 || d.Tokens[0].Text != "the" {
		t.Errorf("unexpected tokens %v", d.Tokens)
	}

	// and the index agrees
	if doc := search(t, "patient"); doc.Find("li.hit").Length() != 0 {
		t.Errorf("expected patient to be a stop word in the index")
	}
}

func TestAnalyzeHandlerEmpty(t *testing.T) {
	setup(t)

	rec := httptest.NewRecorder()
	analyzeHandler(rec, httptest.NewRequest("GET", "/analyze", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != `{"path":"","tokens":[]}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestRenderLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	render(failingWriter{}, "index", map[string]interface{}{})
	if !strings.Contains(buf.String(), "rendering index") {
		t.Errorf("expected the write error to be logged, got %q", buf.String())
	}

	buf.Reset()
	render(io.Discard, "missing", nil)
	if !strings.Contains(buf.String(), "unknown template missing") {
		t.Errorf("expected the unknown template to be logged, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
