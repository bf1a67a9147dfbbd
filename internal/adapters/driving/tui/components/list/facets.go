package list

import (
	"fmt"
	"math"
	"strings"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// FacetGroup names a facet dimension.
type FacetGroup string

// Facet groups in display order.
const (
	FacetCategory FacetGroup = "Category"
	FacetBrand    FacetGroup = "Brand"
	FacetPrice    FacetGroup = "Price"
	FacetColor    FacetGroup = "Color"
	FacetSize     FacetGroup = "Size"
)

// FacetEntry is one selectable bucket in the panel.
type FacetEntry struct {
	Group FacetGroup
	Name  string
	Count int
}

// FacetPanel lists facet buckets and marks the ones in use as filters.
type FacetPanel struct {
	entries  []FacetEntry
	active   map[FacetEntry]bool
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFacetPanel creates an empty facet panel.
func NewFacetPanel(s *styles.Styles) *FacetPanel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &FacetPanel{
		active: make(map[FacetEntry]bool),
		styles: s,
		width:  28,
		height: 20,
	}
}

// SetFacets replaces the buckets. Active filters are kept even when
// their bucket is no longer listed.
func (f *FacetPanel) SetFacets(facets domain.Facets) {
	f.entries = f.entries[:0]
	add := func(group FacetGroup, counts []domain.FacetCount) {
		for _, c := range counts {
			f.entries = append(f.entries, FacetEntry{Group: group, Name: c.Name, Count: c.Count})
		}
	}
	add(FacetCategory, facets.Categories)
	add(FacetBrand, facets.Brands)
	add(FacetPrice, facets.PriceRanges)
	add(FacetColor, facets.Colors)
	add(FacetSize, facets.Sizes)
	if f.selected >= len(f.entries) {
		f.selected = max(len(f.entries)-1, 0)
	}
}

// Entries returns the listed buckets.
func (f *FacetPanel) Entries() []FacetEntry {
	return f.entries
}

// MoveUp moves selection up.
func (f *FacetPanel) MoveUp() {
	if f.selected > 0 {
		f.selected--
	}
}

// MoveDown moves selection down.
func (f *FacetPanel) MoveDown() {
	if f.selected < len(f.entries)-1 {
		f.selected++
	}
}

// Toggle flips the selected bucket. Category, brand and price are single
// choice, so turning one on turns off the others in its group.
func (f *FacetPanel) Toggle() bool {
	if f.selected >= len(f.entries) {
		return false
	}
	e := f.entries[f.selected]
	key := FacetEntry{Group: e.Group, Name: e.Name}
	if f.active[key] {
		delete(f.active, key)
		return true
	}
	if e.Group != FacetColor && e.Group != FacetSize {
		for k := range f.active {
			if k.Group == e.Group {
				delete(f.active, k)
			}
		}
	}
	f.active[key] = true
	return true
}

// Clear removes every active filter.
func (f *FacetPanel) Clear() {
	clear(f.active)
}

// IsActive reports whether a bucket is in use as a filter.
func (f *FacetPanel) IsActive(group FacetGroup, name string) bool {
	return f.active[FacetEntry{Group: group, Name: name}]
}

// ActiveCount returns the number of active filters.
func (f *FacetPanel) ActiveCount() int {
	return len(f.active)
}

// Filters converts the active buckets into search filters.
func (f *FacetPanel) Filters() domain.SearchFilters {
	var filters domain.SearchFilters
	for k := range f.active {
		switch k.Group {
		case FacetCategory:
			filters.Category = k.Name
		case FacetBrand:
			filters.Brand = k.Name
		case FacetPrice:
			if r, ok := PriceBucketRange(k.Name); ok {
				filters.PriceRange = &r
			}
		case FacetColor:
			filters.Colors = append(filters.Colors, k.Name)
		case FacetSize:
			filters.Sizes = append(filters.Sizes, k.Name)
		}
	}
	return filters
}

// PriceBucketRange maps a price facet label back to the range it counts.
func PriceBucketRange(bucket string) (domain.PriceRange, bool) {
	switch bucket {
	case domain.PriceBucketUnder50:
		return domain.PriceRange{Min: 0, Max: 50}, true
	case domain.PriceBucket51To100:
		return domain.PriceRange{Min: math.Nextafter(50, math.Inf(1)), Max: 100}, true
	case domain.PriceBucket101To200:
		return domain.PriceRange{Min: math.Nextafter(100, math.Inf(1)), Max: 200}, true
	case domain.PriceBucketOver200:
		return domain.PriceRange{Min: math.Nextafter(200, math.Inf(1)), Max: math.MaxFloat64}, true
	default:
		return domain.PriceRange{}, false
	}
}

// View renders the panel grouped by facet.
func (f *FacetPanel) View() string {
	if len(f.entries) == 0 {
		return f.styles.Sidebar.Render(f.styles.Muted.Render("No filters"))
	}

	lines := []string{f.styles.Subtitle.Render("Filters")}
	var group FacetGroup
	for i, e := range f.entries {
		if e.Group != group {
			group = e.Group
			lines = append(lines, f.styles.Title.Render(string(group)))
		}
		mark := "[ ]"
		if f.IsActive(e.Group, e.Name) {
			mark = "[x]"
		}
		text := fmt.Sprintf("%s %s (%d)", mark, truncate(e.Name, max(f.width-10, 6)), e.Count)
		switch {
		case i == f.selected:
			lines = append(lines, f.styles.Selected.Render(text))
		case f.IsActive(e.Group, e.Name):
			lines = append(lines, f.styles.FacetActive.Render(text))
		default:
			lines = append(lines, f.styles.Normal.Render(text))
		}
	}
	if len(lines) > f.height && f.height > 0 {
		lines = lines[:f.height]
	}
	return f.styles.Sidebar.Width(f.width).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the component dimensions.
func (f *FacetPanel) SetDimensions(width, height int) {
	f.width = width
	f.height = height
}
