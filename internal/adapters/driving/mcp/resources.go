package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for shopsearch resources.
	uriScheme = "shopsearch://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "catalog",
		Name:        "catalog",
		Description: "Every product in the catalog",
		MIMEType:    mimeJSON,
	}, s.handleCatalogResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "product",
		Description: "Full details of one product",
		MIMEType:    mimeJSON,
	}, s.handleProductResource)

	if s.ports.Profiles != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "profiles/{userId}",
			Name:        "profile",
			Description: "A shopper's recorded behaviour and preferences",
			MIMEType:    mimeJSON,
		}, s.handleProfileResource)
	}
}

// handleCatalogResource returns the whole catalog.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(req.Params.URI, toProductOutputs(products))
}

// handleProductResource returns one product by ID.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractProductID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	products, err := s.products(ctx)
	if err != nil {
		return nil, err
	}
	product, ok := domain.FindProduct(products, id)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, product)
}

// handleProfileResource returns the exported profile of one shopper.
func (s *Server) handleProfileResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Profiles == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	userID := extractUserID(req.Params.URI)
	if userID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snapshot, err := s.ports.Profiles.Export(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("exporting profile: %w", err)
	}
	return jsonResult(req.Params.URI, snapshot)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractProductID extracts the product ID from a URI like shopsearch://products/{productId}.
func extractProductID(uri string) string {
	return extractTail(uri, uriScheme+"products/")
}

// extractUserID extracts the shopper ID from a URI like shopsearch://profiles/{userId}.
func extractUserID(uri string) string {
	return extractTail(uri, uriScheme+"profiles/")
}

func extractTail(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	tail := strings.TrimPrefix(uri, prefix)
	if strings.Contains(tail, "/") {
		return ""
	}
	return tail
}
