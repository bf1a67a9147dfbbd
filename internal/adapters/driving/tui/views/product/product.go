// Package product provides the product detail view for the TUI.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// ErrNoPersonalization is reported when similar products cannot be loaded.
var ErrNoPersonalization = errors.New("similar products need personalization")

// View shows one product and the products most like it. Leaving the view
// records how long the product was looked at.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	similar *list.ProductList

	catalog         driven.Catalog
	personalization driving.PersonalizationService
	userID          string
	similarLimit    int
	ctx             context.Context
	now             func() time.Time

	product  *domain.Product
	from     messages.ViewType
	openedAt time.Time
	notice   string
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a product view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	catalog driven.Catalog,
	personalization driving.PersonalizationService,
	userID string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		similar:         list.NewProductList(s, "You may also like"),
		catalog:         catalog,
		personalization: personalization,
		userID:          userID,
		similarLimit:    6,
		ctx:             context.Background(),
		now:             time.Now,
		from:            messages.ViewSearch,
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithSimilarLimit sets how many similar products are listed.
func (v *View) WithSimilarLimit(n int) *View {
	if n > 0 {
		v.similarLimit = n
	}
	return v
}

// WithClock replaces the clock used to time views.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open shows p and loads similar products. from is the view esc returns to.
func (v *View) Open(p domain.Product, from messages.ViewType) tea.Cmd {
	v.product = &p
	if from != messages.ViewProduct {
		v.from = from
	}
	v.openedAt = v.now()
	v.notice = ""
	v.err = nil
	v.similar.SetProducts(nil)
	return v.loadSimilar(p.ID)
}

func (v *View) loadSimilar(id string) tea.Cmd {
	limit := v.similarLimit
	return func() tea.Msg {
		if v.personalization == nil {
			return messages.SimilarLoaded{ProductID: id, Err: ErrNoPersonalization}
		}
		if v.catalog == nil {
			return messages.SimilarLoaded{ProductID: id, Err: domain.ErrCatalogUnavailable}
		}
		products, err := v.catalog.Products(v.ctx)
		if err != nil {
			return messages.SimilarLoaded{ProductID: id, Err: fmt.Errorf("loading catalog: %w", err)}
		}
		return messages.SimilarLoaded{
			ProductID: id,
			Products:  v.personalization.SimilarProducts(v.userID, id, products, limit),
		}
	}
}

// Update handles messages for the product view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SimilarLoaded:
		if v.product == nil || msg.ProductID != v.product.ID {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.similar.SetProducts(msg.Products)
		return v, nil

	case messages.InteractionTracked:
		v.handleTracked(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.product == nil {
		if msg.Type == tea.KeyEsc {
			return v, v.back()
		}
		return v, nil
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, tea.Batch(v.trackView(), v.back())
	case keymap.Matches(key, v.keymap.Up):
		v.similar.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.similar.MoveDown()
	case keymap.Matches(key, v.keymap.Select):
		next := v.similar.SelectedProduct()
		if next == nil {
			return v, nil
		}
		p := *next
		return v, tea.Batch(v.trackView(), func() tea.Msg { return messages.ProductSelected{Product: p} })
	case keymap.Matches(key, v.keymap.Purchase):
		return v, messages.Track(v.personalization, v.userID, domain.Interaction{
			Type:      domain.InteractionPurchase,
			ProductID: v.product.ID,
		})
	case keymap.Matches(key, v.keymap.Wishlist):
		return v, messages.Track(v.personalization, v.userID, domain.Interaction{
			Type:      domain.InteractionWishlist,
			ProductID: v.product.ID,
		})
	}
	return v, nil
}

func (v *View) back() tea.Cmd {
	from := v.from
	return func() tea.Msg { return messages.ViewChanged{View: from} }
}

func (v *View) trackView() tea.Cmd {
	return messages.Track(v.personalization, v.userID, domain.Interaction{
		Type:      domain.InteractionView,
		ProductID: v.product.ID,
		Duration:  v.now().Sub(v.openedAt),
	})
}

func (v *View) handleTracked(msg messages.InteractionTracked) {
	if msg.Err != nil {
		v.err = msg.Err
		return
	}
	//nolint:exhaustive // views and searches are recorded silently
	switch msg.Interaction.Type {
	case domain.InteractionPurchase:
		v.notice = "Purchase recorded"
	case domain.InteractionWishlist:
		v.notice = "Added to wishlist"
	}
}

// View renders the product view.
func (v *View) View() string {
	if v.product == nil {
		return v.styles.Muted.Render("No product selected")
	}
	p := v.product

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(p.Name))
	if p.IsNew {
		b.WriteString(" " + v.styles.Badge.Render("NEW"))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%s · %s", p.Brand, p.Category)))
	b.WriteString("\n\n")

	b.WriteString(v.renderPrice())
	b.WriteString("\n")
	if p.Rating != nil {
		b.WriteString(v.styles.Normal.Render(list.Stars(*p.Rating)))
		b.WriteString("\n")
	}
	if p.InStock {
		b.WriteString(v.styles.Success.Render("In stock"))
	} else {
		b.WriteString(v.styles.Warning.Render("Out of stock"))
	}
	b.WriteString("\n\n")

	if p.Description != "" {
		b.WriteString(v.styles.Normal.Width(max(v.width-4, 20)).Render(p.Description))
		b.WriteString("\n\n")
	}

	v.writeVariants(&b, "Colors", colorNames(p.Colors))
	v.writeVariants(&b, "Sizes", sizeNames(p.Sizes))
	if len(p.Tags) > 0 {
		b.WriteString(v.styles.Muted.Render("Tags: " + strings.Join(p.Tags, ", ")))
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.similar.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[b] buy  [w] wishlist  [j/k] similar  [enter] open  [esc] back"))
	return b.String()
}

func (v *View) renderPrice() string {
	p := v.product
	out := v.styles.Price.Render(list.FormatPrice(p.Price))
	if p.OriginalPrice != nil && *p.OriginalPrice > p.Price {
		original := *p.OriginalPrice
		off := (1 - p.Price/original) * 100
		out += " " + v.styles.OldPrice.Render(list.FormatPrice(original)) +
			" " + v.styles.Warning.Render(fmt.Sprintf("-%.0f%%", off))
	}
	return out
}

func (v *View) writeVariants(b *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s: %s", label, strings.Join(names, ", "))))
	b.WriteString("\n")
}

func colorNames(colors []domain.Color) []string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, c.Name)
	}
	return names
}

func sizeNames(sizes []domain.Size) []string {
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		names = append(names, s.Name)
	}
	return names
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.similar.SetDimensions(width, max(height/3, 4))
}

// Product returns the product on display, or nil.
func (v *View) Product() *domain.Product {
	return v.product
}

// Similar returns the similar products listed.
func (v *View) Similar() []domain.Product {
	return v.similar.Products()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
