package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kerbaras/mangaverse/pkg/app"
	"github.com/kerbaras/mangaverse/pkg/app/screens"
	"github.com/kerbaras/mangaverse/pkg/app/styles"
	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/logging"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/kerbaras/mangaverse/pkg/sources"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mangas",
	Short: "A terminal manga reading platform",
	Long:  "Discover, search and read manga in a beautiful TUI, and top up your coin balance",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}

		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
		if logger, err = logging.New(cfg.Logging, verbose); err != nil {
			return err
		}
		logger.Debug("Config loaded", zap.String("path", path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/mangaverse/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(readCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newController loads the configured catalog.
func newController(ctx context.Context) (*services.MangaController, error) {
	var (
		source *sources.Static
		err    error
	)
	if cfg.Catalog.Path != "" {
		source, err = sources.LoadStatic(cfg.Catalog.Path)
	} else {
		source, err = sources.NewStatic()
	}
	if err != nil {
		return nil, err
	}
	return services.NewMangaController(ctx, source, logger)
}

func runTUI(ctx context.Context, opts ...screens.RootOption) error {
	if ctx == nil {
		ctx = context.Background()
	}
	controller, err := newController(ctx)
	if err != nil {
		return err
	}
	defer controller.Close()

	state, err := services.NewState(cfg, logger)
	if err != nil {
		return err
	}
	theme := styles.ForName(string(state.Theme()))

	a := app.NewApp(screens.Deps{
		Controller: controller,
		State:      state,
		Runner:     services.NewRunner(logger),
		Logger:     logger,
		Theme:      &theme,
	}, opts...)
	return a.Run()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
