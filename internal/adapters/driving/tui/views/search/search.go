// Package search provides the live product search view for the TUI.
package search

import (
	"context"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shopsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// Debounce delays between the last keystroke and the request.
const (
	AutocompleteDelay = 150 * time.Millisecond
	SearchDelay       = 300 * time.Millisecond
)

const facetWidth = 30

// Focus identifies which pane receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusResults
	FocusFacets
)

// View is the search view: a search box with suggestions, a facet
// sidebar, the product list and a status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	box       *input.SearchBox
	list      *list.ProductList
	facets    *list.FacetPanel
	statusbar *status.Bar

	searchService   driving.SearchService
	personalization driving.PersonalizationService
	catalog         driven.Catalog
	userID          string
	ctx             context.Context

	// seq increases with every change that makes in-flight requests stale.
	seq           int
	sort          domain.SortOption
	lastQuery     string
	suggestLimit  int
	width, height int
	ready         bool
	err           error
	focus         Focus
}

// NewView creates a search view. personalization may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
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
		box:             input.NewSearchBox(s),
		list:            list.NewProductList(s, "Products"),
		facets:          list.NewFacetPanel(s),
		statusbar:       status.NewBar(s, km),
		searchService:   searchService,
		personalization: personalization,
		catalog:         catalog,
		userID:          userID,
		ctx:             context.Background(),
		sort:            domain.SortRelevance,
		suggestLimit:    8,
		width:           80,
		height:          24,
		focus:           FocusInput,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithSuggestionLimit sets how many autocomplete entries are shown.
func (v *View) WithSuggestionLimit(n int) *View {
	if n > 0 {
		v.suggestLimit = n
	}
	return v
}

// Init starts the cursor and lists the whole catalog.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.box.Init(), v.search())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AutocompleteDue:
		if msg.Seq != v.seq {
			return v, nil
		}
		return v, v.suggest()

	case messages.SearchDue:
		if msg.Seq != v.seq {
			return v, nil
		}
		return v, v.search()

	case messages.SuggestionsLoaded:
		if msg.Seq == v.seq && v.focus == FocusInput {
			v.box.SetSuggestions(msg.Suggestions)
		}
		return v, nil

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.CatalogChanged:
		v.seq++
		return v, v.search()

	case messages.InteractionTracked:
		v.handleTracked(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.box, cmd = v.box.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.focus == FocusInput && len(v.box.Suggestions()) > 0 {
			v.box.ClearSuggestions()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyTab {
		v.cycleFocus()
		return v, nil
	}

	switch v.focus {
	case FocusInput:
		return v.handleInputKey(msg)
	case FocusResults:
		return v.handleResultsKey(msg)
	case FocusFacets:
		return v.handleFacetsKey(msg)
	}
	return v, nil
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		v.box.HighlightPrev()
		return v, nil
	case tea.KeyDown:
		v.box.HighlightNext()
		return v, nil
	case tea.KeyEnter:
		v.box.AcceptHighlighted()
		v.box.ClearSuggestions()
		v.seq++
		cmds := []tea.Cmd{v.search()}
		if q := v.box.Value(); q != "" {
			cmds = append(cmds, messages.Track(v.personalization, v.userID, domain.Interaction{
				Type:  domain.InteractionSearch,
				Query: q,
			}))
		}
		v.setFocus(FocusResults)
		return v, tea.Batch(cmds...)
	}

	before := v.box.Value()
	var cmd tea.Cmd
	v.box, cmd = v.box.Update(msg)
	if v.box.Value() == before {
		return v, cmd
	}

	v.seq++
	seq := v.seq
	cmds := []tea.Cmd{
		cmd,
		tea.Tick(SearchDelay, func(time.Time) tea.Msg { return messages.SearchDue{Seq: seq} }),
	}
	if v.box.Value() == "" {
		v.box.ClearSuggestions()
	} else {
		cmds = append(cmds, tea.Tick(AutocompleteDelay, func(time.Time) tea.Msg {
			return messages.AutocompleteDue{Seq: seq}
		}))
	}
	return v, tea.Batch(cmds...)
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Select):
		return v, v.open()
	case keymap.Matches(key, v.keymap.Sort):
		v.sort = nextSort(v.sort)
		v.statusbar.SetSort(v.sort)
		v.seq++
		return v, v.search()
	case keymap.Matches(key, v.keymap.Wishlist):
		p := v.list.SelectedProduct()
		if p == nil {
			return v, nil
		}
		return v, messages.Track(v.personalization, v.userID, domain.Interaction{
			Type:      domain.InteractionWishlist,
			ProductID: p.ID,
		})
	case key == "/" || key == "n":
		v.setFocus(FocusInput)
	}
	return v, nil
}

func (v *View) handleFacetsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.facets.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.facets.MoveDown()
	case keymap.Matches(key, v.keymap.ToggleFacet), keymap.Matches(key, v.keymap.Select):
		if v.facets.Toggle() {
			v.seq++
			return v, v.search()
		}
	case keymap.Matches(key, v.keymap.ClearFilters):
		if v.facets.ActiveCount() > 0 {
			v.facets.Clear()
			v.seq++
			return v, v.search()
		}
	}
	return v, nil
}

// open selects the highlighted product and, after a query, records which
// result the shopper clicked.
func (v *View) open() tea.Cmd {
	p := v.list.SelectedProduct()
	if p == nil {
		return nil
	}
	product := *p
	cmds := []tea.Cmd{func() tea.Msg { return messages.ProductSelected{Product: product} }}
	if v.lastQuery != "" {
		cmds = append(cmds, messages.Track(v.personalization, v.userID, domain.Interaction{
			Type:           domain.InteractionSearch,
			Query:          v.lastQuery,
			ResultsClicked: []string{product.ID},
		}))
	}
	return tea.Batch(cmds...)
}

func (v *View) cycleFocus() {
	switch v.focus {
	case FocusInput:
		v.setFocus(FocusResults)
	case FocusResults:
		v.setFocus(FocusFacets)
	default:
		v.setFocus(FocusInput)
	}
}

func (v *View) setFocus(f Focus) {
	v.focus = f
	switch f {
	case FocusInput:
		v.box.Focus()
		v.statusbar.SetState(status.StateReady)
	case FocusResults:
		v.box.Blur()
		v.statusbar.SetState(status.StateResults)
	case FocusFacets:
		v.box.Blur()
		v.statusbar.SetState(status.StateFacets)
	}
}

func nextSort(current domain.SortOption) domain.SortOption {
	all := domain.AllSortOptions()
	i := slices.Index(all, current)
	return all[(i+1)%len(all)]
}

// search runs the current query, filters and sort against the catalog.
func (v *View) search() tea.Cmd {
	seq := v.seq
	query := v.box.Value()
	filters := v.facets.Filters()
	sortBy := v.sort
	return func() tea.Msg {
		if v.searchService == nil {
			return messages.SearchCompleted{Seq: seq, Query: query, Err: ErrNoSearchService}
		}
		if v.catalog == nil {
			return messages.SearchCompleted{Seq: seq, Query: query, Err: ErrNoCatalog}
		}
		products, err := v.catalog.Products(v.ctx)
		if err != nil {
			return messages.SearchCompleted{Seq: seq, Query: query, Err: fmt.Errorf("loading catalog: %w", err)}
		}

		result := v.searchService.SearchProducts(query, products, filters, sortBy)
		if sortBy == domain.SortRelevance && v.personalization != nil {
			result.Products = v.personalization.SortOrder(v.userID, result.Products)
		}
		return messages.SearchCompleted{Seq: seq, Query: query, Result: result}
	}
}

func (v *View) suggest() tea.Cmd {
	seq := v.seq
	query := v.box.Value()
	limit := v.suggestLimit
	return func() tea.Msg {
		if v.searchService == nil {
			return nil
		}
		return messages.SuggestionsLoaded{
			Seq:         seq,
			Query:       query,
			Suggestions: v.searchService.AutocompleteSuggestions(query, limit),
		}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Seq != v.seq {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.lastQuery = msg.Query
	v.list.SetProducts(msg.Result.Products)
	v.facets.SetFacets(msg.Result.Facets)
	v.statusbar.SetTotalCount(msg.Result.TotalCount)
	if v.statusbar.State() == status.StateError || v.statusbar.State() == status.StateSearching {
		v.setFocus(v.focus)
	}
}

func (v *View) handleTracked(msg messages.InteractionTracked) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Interaction.Type == domain.InteractionWishlist {
		v.statusbar.Notify("Added to wishlist")
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("shopsearch"), "", v.box.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, v.facets.View(), " ", v.list.View())
	sections = append(sections, body, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.box.SetWidth(width)
	// Reserve space for header, input, dropdown and status
	bodyHeight := max(height-10, 4)
	v.facets.SetDimensions(facetWidth, bodyHeight)
	v.list.SetDimensions(max(width-facetWidth-2, 20), bodyHeight)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.box.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.box.SetValue(query)
}

// Products returns the listed products.
func (v *View) Products() []domain.Product {
	return v.list.Products()
}

// SelectedProduct returns the highlighted product.
func (v *View) SelectedProduct() *domain.Product {
	return v.list.SelectedProduct()
}

// Sort returns the active sort order.
func (v *View) Sort() domain.SortOption {
	return v.sort
}

// Filters returns the filters built from the facet sidebar.
func (v *View) Filters() domain.SearchFilters {
	return v.facets.Filters()
}

// Focus returns the pane that receives keys.
func (v *View) Focus() Focus {
	return v.focus
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the query, filters and results and focuses the input.
func (v *View) Reset() {
	v.seq++
	v.box.Reset()
	v.facets.Clear()
	v.list.SetProducts(nil)
	v.sort = domain.SortRelevance
	v.statusbar.SetSort(v.sort)
	v.statusbar.Clear()
	v.err = nil
	v.lastQuery = ""
	v.setFocus(FocusInput)
}
