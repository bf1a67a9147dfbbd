// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
)

// SearchDue fires when the search debounce for Seq has elapsed.
// It is ignored if the query changed again since.
type SearchDue struct {
	Seq int
}

// AutocompleteDue fires when the autocomplete debounce for Seq has elapsed.
type AutocompleteDue struct {
	Seq int
}

// SearchCompleted carries a search result back to the model.
type SearchCompleted struct {
	Seq    int
	Query  string
	Result domain.SearchResult
	Err    error
}

// SuggestionsLoaded carries autocomplete suggestions for a query.
type SuggestionsLoaded struct {
	Seq         int
	Query       string
	Suggestions []domain.SearchSuggestion
}

// ProductSelected is sent when a product is opened from any list.
type ProductSelected struct {
	Product domain.Product
}

// RecommendationsLoaded carries recommended products.
type RecommendationsLoaded struct {
	Products []domain.Product
	Err      error
}

// SimilarLoaded carries products similar to ProductID.
type SimilarLoaded struct {
	ProductID string
	Products  []domain.Product
	Err       error
}

// InteractionTracked reports the outcome of recording an interaction.
type InteractionTracked struct {
	Interaction domain.Interaction
	Err         error
}

// CatalogChanged is sent after the catalog reloaded from disk.
type CatalogChanged struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the live search view.
	ViewSearch
	// ViewRecommendations lists personalized picks.
	ViewRecommendations
	// ViewProduct shows one product with similar items.
	ViewProduct
	// ViewSettings is the preferences and settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewRecommendations:
		return "recommendations"
	case ViewProduct:
		return "product"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings and the shopper's preferences.
type SettingsLoaded struct {
	Settings    *domain.AppSettings
	Preferences *domain.UserPreferences
	Err         error
}

// SettingsSaved signals settings or preferences were saved.
type SettingsSaved struct {
	Err error
}

// Track records an interaction in the background and reports the outcome
// as InteractionTracked. A nil service or disabled personalization records
// nothing and reports no error.
func Track(svc driving.PersonalizationService, userID string, interaction domain.Interaction) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return InteractionTracked{Interaction: interaction}
		}
		err := svc.TrackInteraction(userID, interaction)
		if errors.Is(err, domain.ErrPersonalizationDisabled) {
			err = nil
		}
		return InteractionTracked{Interaction: interaction, Err: err}
	}
}
