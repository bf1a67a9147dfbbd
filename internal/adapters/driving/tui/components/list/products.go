// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

// ProductList displays products in a navigable list.
type ProductList struct {
	title    string
	products []domain.Product
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewProductList creates a product list with the given heading.
func NewProductList(s *styles.Styles, title string) *ProductList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ProductList{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the product list.
func (l *ProductList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ProductList) Update(msg tea.Msg) (*ProductList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of products around the selection.
func (l *ProductList) View() string {
	if len(l.products) == 0 {
		return l.styles.Muted.Render("No products")
	}

	lines := make([]string, 0, len(l.products)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.products))), "")

	// Each product takes two lines.
	visibleCount := (l.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.products))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderProduct(i, &l.products[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *ProductList) renderProduct(index int, p *domain.Product) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := truncate(p.Name, max(l.width-24, 10))
	price := l.styles.Price.Render(FormatPrice(p.Price))
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		price += " " + l.styles.OldPrice.Render(FormatPrice(*p.OriginalPrice))
	}

	var nameLine string
	if index == l.selected {
		nameLine = l.styles.Selected.Render(indicator + name)
	} else {
		nameLine = l.styles.Normal.Render(indicator + name)
	}
	nameLine += "  " + price
	if p.IsNew {
		nameLine += " " + l.styles.Badge.Render("NEW")
	}

	details := []string{p.Brand, p.Category}
	if p.Rating != nil {
		details = append(details, Stars(*p.Rating))
	}
	if !p.InStock {
		details = append(details, "out of stock")
	}
	return nameLine + "\n" + l.styles.Muted.Render("    "+strings.Join(details, " · "))
}

// FormatPrice renders a price in dollars.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Stars renders a rating out of five, rounded to the nearest star.
func Stars(rating float64) string {
	n := int(rating + 0.5)
	n = max(0, min(n, 5))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n) + fmt.Sprintf(" %.1f", rating)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetProducts replaces the products and resets the selection.
func (l *ProductList) SetProducts(products []domain.Product) {
	l.products = products
	l.selected = 0
}

// Products returns the current products.
func (l *ProductList) Products() []domain.Product {
	return l.products
}

// Selected returns the index of the selected product.
func (l *ProductList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *ProductList) SetSelected(index int) {
	if index >= 0 && index < len(l.products) {
		l.selected = index
	}
}

// SelectedProduct returns the selected product, or nil if the list is empty.
func (l *ProductList) SelectedProduct() *domain.Product {
	if l.selected < 0 || l.selected >= len(l.products) {
		return nil
	}
	return &l.products[l.selected]
}

// MoveUp moves selection up.
func (l *ProductList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ProductList) MoveDown() {
	if l.selected < len(l.products)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ProductList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *ProductList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *ProductList) Height() int {
	return l.height
}

// Count returns the number of products.
func (l *ProductList) Count() int {
	return len(l.products)
}

// IsEmpty returns whether the list is empty.
func (l *ProductList) IsEmpty() bool {
	return len(l.products) == 0
}
