// Package cli implements catalogctl, a command-line front end to the
// catalog query engine.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	SeedFile string
	Locale   string
}

// NewRootCommand creates the root command for catalogctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Query the furniture catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.SeedFile, "seed-file", "", "YAML catalog to load (default: built-in catalog)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", "pt-BR", "collation locale for name sorting")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCategoriesCommand(opts))

	return cmd
}
