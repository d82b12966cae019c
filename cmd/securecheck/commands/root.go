package commands

import (
	"securecheck-api/catalog"
	"securecheck-api/config"
	"securecheck-api/datasource"
	"securecheck-api/logging"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries what PersistentPreRunE loaded to the subcommands.
type app struct {
	verbose bool
	cfg     *config.Config
}

// NewRootCmd builds the securecheck command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "securecheck",
		Short: "SecureCheck police check post ledger tools",
		Long: `Command-line access to the SecureCheck traffic-stop ledger: run the
curated reports, estimate the outcome of a stop, and seed a development
database with synthetic records.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if a.verbose {
				cfg.Log.Verbose = true
			}
			a.cfg = cfg
			return logging.Init(cfg.Log)
		},
	}
	root.Version = Version
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(a.reportsCmd(), a.predictCmd(), a.seedCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) openStore() (*datasource.Store, error) {
	return datasource.Open(a.cfg.Database)
}

func (a *app) catalog(dialect string) (*catalog.Catalog, error) {
	return catalog.FromConfig(a.cfg.Catalog, dialect)
}
