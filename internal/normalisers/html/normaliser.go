package html

import (
	"html"
	"regexp"
	"slices"
	"strings"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// Normaliser strips markup from product text fields.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns p with plain-text name, description, brand and category,
// and tags trimmed and de-duplicated. Prices, variants and flags are untouched.
func (n *Normaliser) Normalise(p domain.Product) domain.Product {
	p.Name = Inline(p.Name)
	p.Brand = Inline(p.Brand)
	p.Category = Inline(p.Category)
	p.Description = Inline(p.Description)
	p.Tags = cleanTags(p.Tags)
	return p
}

// NormaliseAll normalises every product in place.
func (n *Normaliser) NormaliseAll(products []domain.Product) {
	for i := range products {
		products[i] = n.Normalise(products[i])
	}
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|blockquote|table|section)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|table|section)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
)

// Text removes HTML tags and returns readable text, one block per line.
func Text(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return strings.TrimSpace(multiSpaces.ReplaceAllString(content, " "))
	}

	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = svgTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = strings.ReplaceAll(content, "\u00a0", " ")
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	result := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// Inline is Text with the blocks joined into a single line.
func Inline(content string) string {
	return strings.ReplaceAll(Text(content), "\n", " ")
}

func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = Inline(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
