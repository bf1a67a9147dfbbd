package cli

import (
	"bufio"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shopsearch/internal/core/domain"
)

var (
	profileJSON bool
	resetYes    bool

	weightCategories map[string]string
	weightBrands     map[string]string
	weightSizes      map[string]string
	weightColors     map[string]string
	weightPriceMin   float64
	weightPriceMax   float64
	weightPriceFreq  float64

	prefCategories      []string
	prefBrands          []string
	prefSizes           []string
	prefColors          []string
	prefPriceMin        float64
	prefPriceMax        float64
	prefAdaptive        bool
	prefPersonalization bool
)

// stdinIsTerminal reports whether confirmations can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and manage the shopper profile",
	Long: `Shows what shopsearch has learned about the shopper and lets you adjust
preference weights, explicit preferences, or start over.`,
	RunE: runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the shopper profile",
	RunE:  runProfileShow,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget everything recorded for the shopper",
	RunE:  runProfileReset,
}

var profileWeightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Set learned preference weights",
	Long: `Overwrites preference weights on the shopper's behaviour profile.
Weights are clamped into [0,1]. Unset groups keep their current values.

Example:
  shopsearch profile weights --category women=0.9,accessories=0.4 --brand "Luxury Brand=0.8"`,
	RunE: runProfileWeights,
}

var profilePrefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Set explicit shopping preferences",
	Long: `Sets the explicit preferences that drive adaptive sorting, and turns
personalization on or off. Only the flags you pass are changed.`,
	RunE: runProfilePrefs,
}

func init() {
	profileCmd.PersistentFlags().BoolVar(&profileJSON, "json", false, "output the profile as JSON")
	profileResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")

	w := profileWeightsCmd.Flags()
	w.StringToStringVar(&weightCategories, "category", nil, "category weights, name=weight")
	w.StringToStringVar(&weightBrands, "brand", nil, "brand weights, name=weight")
	w.StringToStringVar(&weightSizes, "size", nil, "size weights, name=weight")
	w.StringToStringVar(&weightColors, "color", nil, "colour weights, name=weight")
	w.Float64Var(&weightPriceMin, "price-min", 0, "lower bound of the usual price band")
	w.Float64Var(&weightPriceMax, "price-max", 0, "upper bound of the usual price band")
	w.Float64Var(&weightPriceFreq, "price-frequency", 0, "how strongly purchases cluster in the band (0-1)")

	p := profilePrefsCmd.Flags()
	p.StringSliceVar(&prefCategories, "favorite-category", nil, "favourite categories")
	p.StringSliceVar(&prefBrands, "favorite-brand", nil, "favourite brands")
	p.StringSliceVar(&prefSizes, "size", nil, "preferred sizes")
	p.StringSliceVar(&prefColors, "color", nil, "preferred colours")
	p.Float64Var(&prefPriceMin, "price-min", 0, "lowest preferred price")
	p.Float64Var(&prefPriceMax, "price-max", 0, "highest preferred price")
	p.BoolVar(&prefAdaptive, "adaptive-sorting", true, "reorder listings by these preferences")
	p.BoolVar(&prefPersonalization, "personalization", true, "use the shopper's history for ranking")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileResetCmd)
	profileCmd.AddCommand(profileWeightsCmd)
	profileCmd.AddCommand(profilePrefsCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	snapshot, err := profileService.Export(commandContext(cmd), currentUser())
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profileJSON {
		return printJSON(cmd, snapshot)
	}

	prefs := snapshot.Preferences
	cmd.Printf("Shopper %s\n", snapshot.UserID)
	cmd.Println(strings.Repeat("=", len(snapshot.UserID)+8))
	cmd.Println()

	cmd.Println("[Preferences]")
	cmd.Printf("  Personalization: %s\n", onOff(prefs.PersonalizationEnabled))
	cmd.Printf("  Adaptive sorting: %s\n", onOff(prefs.AdaptiveSorting))
	cmd.Printf("  Favourite categories: %s\n", listOrNone(prefs.FavoriteCategories))
	cmd.Printf("  Favourite brands: %s\n", listOrNone(prefs.FavoriteBrands))
	cmd.Printf("  Sizes: %s\n", listOrNone(prefs.PreferredSizes))
	cmd.Printf("  Colours: %s\n", listOrNone(prefs.PreferredColors))
	cmd.Printf("  Price: $%.0f - $%.0f\n", prefs.PreferredPriceRange.Min, prefs.PreferredPriceRange.Max)
	cmd.Println()

	b := snapshot.Behavior
	cmd.Println("[Activity]")
	if b == nil {
		cmd.Println("  Nothing recorded yet.")
		return nil
	}
	cmd.Printf("  Views: %d\n", len(b.ProductViews))
	cmd.Printf("  Purchases: %d\n", len(b.Purchases))
	cmd.Printf("  Wishlist: %s\n", listOrNone(b.WishlistItems))
	cmd.Printf("  Searches: %d\n", len(b.SearchQueries))
	cmd.Printf("  Usual price: $%.0f - $%.0f (strength %.2f)\n", b.PriceRange.Min, b.PriceRange.Max, b.PriceRange.Frequency)
	cmd.Println()

	cmd.Println("[Learned weights]")
	cmd.Printf("  Categories: %s\n", formatWeights(b.CategoryPreferences))
	cmd.Printf("  Brands: %s\n", formatWeights(b.BrandPreferences))
	cmd.Printf("  Sizes: %s\n", formatWeights(b.SizePreferences))
	cmd.Printf("  Colours: %s\n", formatWeights(b.ColorPreferences))
	return nil
}

func runProfileReset(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return errors.New("profile service not configured")
	}

	user := currentUser()
	if !resetYes {
		ok, err := confirm(cmd, fmt.Sprintf("Forget all activity and preferences for %s?", user))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := profileService.Forget(commandContext(cmd), user); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	cmd.Printf("Profile for %s reset.\n", user)
	return nil
}

// confirm asks a yes/no question on the command's input. It refuses to
// guess when input is not a terminal.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !stdinIsTerminal() {
		return false, errors.New("refusing to continue without confirmation; pass --yes")
	}
	cmd.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func runProfileWeights(cmd *cobra.Command, _ []string) error {
	if recommendationService == nil {
		return errors.New("recommendation service not configured")
	}

	var weights domain.PreferenceWeights
	var err error
	if weights.Categories, err = parseWeights("category", weightCategories); err != nil {
		return err
	}
	if weights.Brands, err = parseWeights("brand", weightBrands); err != nil {
		return err
	}
	if weights.Sizes, err = parseWeights("size", weightSizes); err != nil {
		return err
	}
	if weights.Colors, err = parseWeights("color", weightColors); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("price-min") || flags.Changed("price-max") || flags.Changed("price-frequency") {
		band := domain.PriceAffinity{
			Min:       domain.DefaultPriceMin,
			Max:       domain.DefaultPriceMax,
			Frequency: domain.DefaultPriceFrequency,
		}
		if current, ok := recommendationService.UserBehavior(currentUser()); ok {
			band = current.PriceRange
		}
		if flags.Changed("price-min") {
			band.Min = weightPriceMin
		}
		if flags.Changed("price-max") {
			band.Max = weightPriceMax
		}
		if flags.Changed("price-frequency") {
			band.Frequency = weightPriceFreq
		}
		weights.PriceRange = &band
	}

	recommendationService.SetPreferenceWeights(currentUser(), weights)
	if err := persist(cmd); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	cmd.Printf("Weights updated for %s.\n", currentUser())
	return nil
}

func parseWeights(flag string, raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for name, value := range raw {
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %s=%s: %w", flag, name, value, domain.ErrInvalidInput)
		}
		out[name] = w
	}
	return out, nil
}

func runProfilePrefs(cmd *cobra.Command, _ []string) error {
	if personalizationService == nil {
		return errors.New("personalization service not configured")
	}

	user := currentUser()
	prefs := personalizationService.Preferences(user)
	flags := cmd.Flags()
	if flags.Changed("favorite-category") {
		prefs.FavoriteCategories = prefCategories
	}
	if flags.Changed("favorite-brand") {
		prefs.FavoriteBrands = prefBrands
	}
	if flags.Changed("size") {
		prefs.PreferredSizes = prefSizes
	}
	if flags.Changed("color") {
		prefs.PreferredColors = prefColors
	}
	if flags.Changed("price-min") {
		prefs.PreferredPriceRange.Min = prefPriceMin
	}
	if flags.Changed("price-max") {
		prefs.PreferredPriceRange.Max = prefPriceMax
	}
	if prefs.PreferredPriceRange.Min > prefs.PreferredPriceRange.Max {
		return fmt.Errorf("price range $%.2f - $%.2f: %w",
			prefs.PreferredPriceRange.Min, prefs.PreferredPriceRange.Max, domain.ErrInvalidInput)
	}
	if flags.Changed("adaptive-sorting") {
		prefs.AdaptiveSorting = prefAdaptive
	}
	if flags.Changed("personalization") {
		prefs.PersonalizationEnabled = prefPersonalization
	}

	prefs.UserID = user
	personalizationService.UpdatePreferences(prefs)
	if err := persist(cmd); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	cmd.Printf("Preferences updated for %s.\n", user)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// formatWeights lists weights strongest first.
func formatWeights(weights map[string]float64) string {
	if len(weights) == 0 {
		return "(none)"
	}
	names := slices.Collect(maps.Keys(weights))
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s %.2f", n, weights[n])
	}
	return strings.Join(parts, ", ")
}
