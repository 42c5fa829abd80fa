package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/blevesearch/bleve"

	mdm "github.com/MauroDataMapper/gomdm"
	"github.com/MauroDataMapper/gomdm/config"
)

var (
	path       = flag.String("path", "", "path for the catalog dump (.txt, .xz or .zst)")
	indexPath  = flag.String("index", "", "path for the index file, overrides the config")
	configPath = flag.String("config", "", "path to a TOML or YAML config file")
	mmap       = flag.Bool("mmap", false, "use mmap for uncompressed dumps")
	batchSize  = flag.Int("batch", 0, "documents per batch, overrides the config")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *path == "" {
		log.Fatal("provide a catalog file path")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *indexPath != "" {
		cfg.Index.Path = *indexPath
	}
	if *batchSize > 0 {
		cfg.Index.BatchSize = *batchSize
	}
	if cfg.Index.Path == "" {
		log.Fatal("Please provide a path for the index")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	c, err := mdm.NewCatalogReader(*path, *mmap)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()
	log.Println(c.String())

	stopWords, err := cfg.Analyzer.StopWordList()
	if err != nil {
		log.Fatal(err)
	}
	mapping, err := mdm.NewIndexMapping(stopWords)
	if err != nil {
		log.Fatal(err)
	}

	index, err := bleve.New(cfg.Index.Path, mapping)
	if err != nil {
		log.Fatal(err)
	}
	defer index.Close()

	count, err := indexCatalog(c, index, cfg.Index.BatchSize)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("indexed %d catalog items into %s", count, cfg.Index.Path)
}

// indexCatalog sends every catalog entry to bleve, batchSize documents at a time
func indexCatalog(c *mdm.CatalogReader, index bleve.Index, batchSize int) (int, error) {
	var total, batchCount int
	var batchErr error
	batch := index.NewBatch()

	err := c.ListEntriesIterator(func(e mdm.CatalogEntry) {
		if batchErr != nil {
			return
		}
		if err := batch.Index(e.ID, mdm.NewCatalogItem(e)); err != nil {
			batchErr = fmt.Errorf("entry %s: %w", e.ID, err)
			return
		}
		batchCount++
		total++

		// send a batch to bleve
		if batchCount >= batchSize {
			if err := index.Batch(batch); err != nil {
				batchErr = err
				return
			}
			fmt.Print("*")
			batch = index.NewBatch()
			batchCount = 0
		}
	})
	if err != nil {
		return total, err
	}
	if batchErr != nil {
		return total, batchErr
	}

	// batch the rest
	if batchCount > 0 {
		if err := index.Batch(batch); err != nil {
			return total, err
		}
	}
	fmt.Println()
	return total, nil
}
