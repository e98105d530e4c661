// Package cli implements the cinelist command line.
package cli

import (
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"cinelist/internal/config"
	"cinelist/internal/logging"
	"cinelist/services/metadata"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	language   string

	settings  *config.Settings
	logCloser io.Closer

	newService func(*config.Settings) (*metadata.Service, error)
	httpClient *http.Client
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		newService: buildService,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cinelist",
		Short:         "Movie and TV catalog backed by TMDB",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.language != "" {
				settings.TMDB.Language = a.language
			}
			closer, err := logging.Setup(settings.Log)
			if err != nil {
				return err
			}
			a.settings = settings
			a.logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./cinelist.yaml)")
	root.PersistentFlags().StringVar(&a.language, "language", "", "TMDB language, e.g. tr-TR or en-US")

	root.AddCommand(
		newServeCommand(a),
		newTrendingCommand(a),
		newSearchCommand(a),
		newTrailerCommand(a),
		newRateLimitCommand(a),
	)
	return root
}
