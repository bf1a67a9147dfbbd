// Package mcp provides an MCP (Model Context Protocol) server adapter for shopsearch.
// It lets AI assistants search the catalog, fetch autocomplete suggestions and
// ask for personalized recommendations.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCatalog is returned when the catalog is not provided.
var ErrMissingCatalog = errors.New("mcp: catalog is required")

// ErrRecommendationsUnavailable is returned by recommendation tools when the
// server runs without a personalization service.
var ErrRecommendationsUnavailable = errors.New("mcp: recommendations are not configured")
