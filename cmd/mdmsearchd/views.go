package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/blevesearch/bleve"

	mdm "github.com/MauroDataMapper/gomdm"
)

const (
	ResultsPerPage = 20
)

// CachedResponse is a search result kept in the LRU cache
type CachedResponse struct {
	Total uint64
	Took  time.Duration
	Hits  []map[string]string
}

func cacheLookup(q string) (*CachedResponse, bool) {
	if v, ok := cache.Get(q); ok {
		c := v.(CachedResponse)
		return &c, ok
	}
	return nil, false
}

// render executes the named template, the response is already partially
// written on failure so errors are only logged
func render(w io.Writer, name string, d interface{}) {
	t, ok := templates[name]
	if !ok {
		log.Printf("unknown template %s", name)
		return
	}
	if err := t.Execute(w, d); err != nil {
		log.Printf("rendering %s: %v", name, err)
	}
}

// homeHandler is displaying the / page only
func homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	d := map[string]interface{}{
		"IsIndexed": idx,
		"Index":     indexLabel,
	}
	if idx {
		count, err := index.DocCount()
		if err == nil {
			d["Count"] = strconv.FormatUint(count, 10)
		}
	}
	render(w, "index", d)
}

func searchIndex(q string) (*CachedResponse, error) {
	if cr, iscached := cacheLookup(q); iscached {
		return cr, nil
	}

	query := bleve.NewMatchQuery(q)
	query.SetField("Path")
	search := bleve.NewSearchRequestOptions(query, ResultsPerPage, 0, false)
	search.Fields = []string{"Path", "Label"}

	sr, err := index.Search(search)
	if err != nil {
		return nil, err
	}

	cr := CachedResponse{Total: sr.Total, Took: sr.Took}
	for _, h := range sr.Hits {
		path, _ := h.Fields["Path"].(string)
		label, _ := h.Fields["Label"].(string)
		cr.Hits = append(cr.Hits, map[string]string{
			"ID":    h.ID,
			"Score": strconv.FormatFloat(h.Score, 'f', 2, 64),
			"Path":  path,
			"Label": label,
		})
	}
	cache.Add(q, cr)
	return &cr, nil
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	d := map[string]interface{}{
		"Index": indexLabel,
	}

	if !idx {
		render(w, "searchNoIdx", d)
		return
	}

	if r.Method == "GET" {
		render(w, "search", d)
		return
	}

	q := r.FormValue("search_data")
	if q == "" {
		render(w, "search", d)
		return
	}

	cr, err := searchIndex(q)
	if err != nil {
		log.Printf("search %q failed: %v", q, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d["Query"] = q
	if cr.Total > 0 {
		d["Info"] = fmt.Sprintf("%d matches for query [%s], took %s", cr.Total, q, cr.Took)
		d["Hits"] = cr.Hits
	} else {
		d["Info"] = fmt.Sprintf("No match for [%s], took %s", q, cr.Took)
	}

	render(w, "searchResult", d)
}

// analyzeHandler returns the tokens of the path query parameter as JSON
func analyzeHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("path")
	d := struct {
		Path   string      `json:"path"`
		Tokens []mdm.Token `json:"tokens"`
	}{
		Path:   p,
		Tokens: analyzer.Analyze("path", p).Tokens(),
	}
	if d.Tokens == nil {
		d.Tokens = []mdm.Token{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		log.Println(err)
	}
}

func robotHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
}
