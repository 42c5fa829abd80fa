package mdm

import (
	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/analysis/tokenmap"
	"github.com/blevesearch/bleve/mapping"
)

const (
	// CatalogItemType is the bleve document type of indexed catalog items
	CatalogItemType = "CatalogItem"

	customStopTokenMap = "mdm_path_stop"
	customPathAnalyzer = "mdm_path_custom"
)

// CatalogItem is the document indexed for every catalog entry
type CatalogItem struct {
	Path  string
	Label string
}

// Type return the CatalogItem type (used for bleve indexer)
func (c *CatalogItem) Type() string {
	return CatalogItemType
}

// NewCatalogItem builds the indexed document of a catalog entry,
// the label is the last non empty segment of the path
func NewCatalogItem(e CatalogEntry) *CatalogItem {
	item := &CatalogItem{Path: e.Path}
	segments := SplitPath(e.Path)
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			item.Label = segments[i]
			break
		}
	}
	return item
}

// NewIndexMapping returns the bleve mapping for catalog items.
// A non nil stopWords list replaces the default English stop words, it is stored
// in the mapping so queries are analyzed like the indexed paths.
func NewIndexMapping(stopWords []string) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	im.DefaultType = CatalogItemType

	pathAnalyzer := PathAnalyzerName
	if stopWords != nil {
		tokens := make([]interface{}, len(stopWords))
		for i, w := range stopWords {
			tokens[i] = w
		}
		err := im.AddCustomTokenMap(customStopTokenMap, map[string]interface{}{
			"type":   tokenmap.Name,
			"tokens": tokens,
		})
		if err != nil {
			return nil, err
		}
		err = im.AddCustomAnalyzer(customPathAnalyzer, map[string]interface{}{
			"type":           PathAnalyzerName,
			"stop_token_map": customStopTokenMap,
		})
		if err != nil {
			return nil, err
		}
		pathAnalyzer = customPathAnalyzer
	}

	itemMapping := bleve.NewDocumentMapping()
	im.AddDocumentMapping(CatalogItemType, itemMapping)

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Store = true
	pathMapping.Index = true
	pathMapping.IncludeTermVectors = true
	pathMapping.Analyzer = pathAnalyzer
	itemMapping.AddFieldMappingsAt("Path", pathMapping)

	labelMapping := bleve.NewTextFieldMapping()
	labelMapping.Store = true
	labelMapping.Index = true
	labelMapping.Analyzer = standard.Name
	itemMapping.AddFieldMappingsAt("Label", labelMapping)

	return im, nil
}

// PathFieldAnalyzer returns the analyzer name used for the Path field of im
func PathFieldAnalyzer(im mapping.IndexMapping) string {
	if im.AnalyzerNamed(customPathAnalyzer) != nil {
		return customPathAnalyzer
	}
	return PathAnalyzerName
}

// MappingStopWords returns the stop words stored in a mapping built by NewIndexMapping,
// nil when the mapping uses the default English list
func MappingStopWords(im mapping.IndexMapping) *StopWords {
	impl, ok := im.(*mapping.IndexMappingImpl)
	if !ok || impl.CustomAnalysis == nil {
		return nil
	}
	config, ok := impl.CustomAnalysis.TokenMaps[customStopTokenMap]
	if !ok {
		return nil
	}
	tokens, _ := config["tokens"].([]interface{})
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if w, ok := t.(string); ok {
			words = append(words, w)
		}
	}
	return NewStopWords(words...)
}

// NewMappingAnalyzer returns the analyzer matching the Path field of im,
// so analyzed text gets the terms that were indexed
func NewMappingAnalyzer(im mapping.IndexMapping) *PathAnalyzer {
	return NewPathAnalyzerWithStopWords(MappingStopWords(im))
}
