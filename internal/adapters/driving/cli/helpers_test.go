package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/shopsearch/internal/adapters/driven/catalog/static"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopsearch/internal/core/services"
)

const testUser = "shopper-1"

type testEnv struct {
	search          *services.SearchEngine
	recommendations *services.RecommendationEngine
	personalization *services.PersonalizationEngine
	profiles        *memory.ProfileStore
	sync            *services.ProfileSync
	settings        *services.SettingsService
}

// setupTestServices wires real engines over in-memory stores and the
// seeded catalog, and restores the package state when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		search:          services.NewSearchEngine(),
		recommendations: services.NewRecommendationEngine(),
		profiles:        memory.NewProfileStore(),
		settings:        services.NewSettingsService(memory.NewConfigStore()),
	}
	env.personalization = services.NewPersonalizationEngine(env.recommendations)
	env.sync = services.NewProfileSync(
		env.search, env.recommendations, env.personalization, env.profiles, memory.NewQueryLogStore(),
	)

	SetServices(Services{
		Search:          env.search,
		Recommendations: env.recommendations,
		Personalization: env.personalization,
		Profiles:        env.sync,
		Settings:        env.settings,
		Catalog:         static.New(),
		UserID:          testUser,
	})

	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})
	return env
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags puts every flag of cmd and its subcommands back to its default,
// so values set by one test do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		switch v := f.Value.(type) {
		case pflag.SliceValue:
			_ = v.Replace(nil)
		default:
			if f.Value.Type() != "stringToString" {
				_ = f.Value.Set(f.DefValue)
			}
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
