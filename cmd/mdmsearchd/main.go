package main

import (
	"flag"
	"html/template"
	"log"
	"net/http"
	"os"

	rice "github.com/GeertJohan/go.rice"
	"github.com/blevesearch/bleve"
	lru "github.com/hashicorp/golang-lru"

	mdm "github.com/MauroDataMapper/gomdm"
	"github.com/MauroDataMapper/gomdm/config"
)

var (
	configPath = flag.String("config", "", "path to a TOML or YAML config file")
	indexPath  = flag.String("index", "", "path for the index file, overrides the config")
	listen     = flag.String("listen", "", "listen address, overrides the config")

	index      bleve.Index
	idx        bool
	analyzer   *mdm.PathAnalyzer
	cache      *lru.Cache
	indexLabel string

	templates = make(map[string]*template.Template)
)

func init() {
	tplBox := rice.MustFindBox("templates")

	for name, file := range map[string]string{
		"index":        "index.html",
		"search":       "search.html",
		"searchNoIdx":  "search_noidx.html",
		"searchResult": "search_result.html",
	} {
		s, err := tplBox.String(file)
		if err != nil {
			log.Fatal(err)
		}
		templates[name] = template.Must(template.New(name).Parse(s))
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *indexPath != "" {
		cfg.Index.Path = *indexPath
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	analyzer, err = cfg.Analyzer.Analyzer()
	if err != nil {
		log.Fatal(err)
	}

	// Do we have an index ?
	if _, err := os.Stat(cfg.Index.Path); err == nil {
		log.Println("Found indexes")
		index, err = bleve.Open(cfg.Index.Path)
		if err != nil {
			log.Fatal(err)
		}
		defer index.Close()
		idx = true
		indexLabel = cfg.Index.Path
		// the stop words of the index win over the config
		analyzer = mdm.NewMappingAnalyzer(index.Mapping())
	}

	// the same queries come back often, keep their results around
	cache, err = lru.New(cfg.Server.CacheSize)
	if err != nil {
		log.Fatal(err)
	}

	http.HandleFunc("/search", makeGzipHandler(searchHandler))
	http.HandleFunc("/analyze", makeGzipHandler(analyzeHandler))
	http.HandleFunc("/robots.txt", robotHandler)
	http.HandleFunc("/", makeGzipHandler(homeHandler))

	log.Printf("listening on %s", cfg.Server.Listen)
	log.Fatal(http.ListenAndServe(cfg.Server.Listen, nil))
}
