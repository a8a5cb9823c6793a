// Command folio serves the portfolio site and manages its data.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/alexchen-dev/folio"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "folio",
		Short:         "A single-page developer portfolio built with Go, Echo, and templ",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "folio.toml", "TOML config file (missing file is ignored)")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMessagesCmd(&configPath))
	root.AddCommand(newSubscribersCmd(&configPath))
	root.AddCommand(newNavsimCmd(&configPath))
	root.AddCommand(newThumbsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func loadConfig(path string) (folio.SiteConfig, error) {
	return folio.LoadConfig(path)
}

// openStore opens the configured database for the data commands.
func openStore(configPath string) (*folio.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("no database configured: set database_path or FOLIO_DATABASE_PATH")
	}
	return folio.NewStore(cfg.DatabasePath)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}
