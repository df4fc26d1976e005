package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for poem documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on title and body with English stemming
//  2. Exact keyword matching for owner, collection, form, style, language
//  3. Numeric range queries and sorting on timestamps
//  4. Term vectors on title and body for highlighting
func buildIndexMapping() mapping.IndexMapping {
	// Create the index mapping
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	// Create document mapping
	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Title - primary search target, boosted at query time
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Body - the poem text itself
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = en.AnalyzerName
	bodyFieldMapping.Store = true
	bodyFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	// Prompt - searchable but not stored
	promptFieldMapping := bleve.NewTextFieldMapping()
	promptFieldMapping.Analyzer = en.AnalyzerName
	promptFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("prompt", promptFieldMapping)

	// Notes - searchable but not stored
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = en.AnalyzerName
	notesFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("notes", notesFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Owner - the mandatory scope filter on every query
	ownerFieldMapping := bleve.NewTextFieldMapping()
	ownerFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("owner_id", ownerFieldMapping)

	// Collection - for restricting search to one collection
	collectionFieldMapping := bleve.NewTextFieldMapping()
	collectionFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("collection_id", collectionFieldMapping)

	// Form - keyword analyzer keeps compound forms intact (e.g., "free verse")
	formFieldMapping := bleve.NewTextFieldMapping()
	formFieldMapping.Analyzer = keyword.Name
	formFieldMapping.Store = true
	formFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("form", formFieldMapping)

	// Style - same treatment as form
	styleFieldMapping := bleve.NewTextFieldMapping()
	styleFieldMapping.Analyzer = keyword.Name
	styleFieldMapping.Store = true
	styleFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("style", styleFieldMapping)

	// Language - normalized tag, exact match
	languageFieldMapping := bleve.NewTextFieldMapping()
	languageFieldMapping.Analyzer = keyword.Name
	languageFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("language", languageFieldMapping)

	// Favorite flag
	favoriteFieldMapping := bleve.NewBooleanFieldMapping()
	favoriteFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("is_favorite", favoriteFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	// Timestamps - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	// Register the document mapping
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
