package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	apppkg "github.com/kk-code-lab/lightbox/internal/app"
	"github.com/kk-code-lab/lightbox/internal/catalog"
	"github.com/kk-code-lab/lightbox/internal/config"
	"github.com/kk-code-lab/lightbox/internal/gallery"
	"github.com/kk-code-lab/lightbox/internal/locale"
	"github.com/kk-code-lab/lightbox/internal/logging"
	"github.com/kk-code-lab/lightbox/internal/textutil"
	"github.com/kk-code-lab/lightbox/internal/viewlog"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const captionColumn = 40

// options collects the global flags.
type options struct {
	configPath string
	category   string
	lang       string
	threshold  float64
	verbose    bool
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "lightbox [catalog]",
		Short: "Terminal wedding photo gallery",
		Long: `lightbox shows a wedding photo catalog as a tile grid with a
full-screen lightbox viewer.

The catalog is a directory of category folders or a YAML/TOML manifest.
Without an argument gallery.catalog from the config is used, then the
current directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(cmd, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/lightbox/config.toml)")
	flags.StringVar(&opts.category, "category", "", "initial category filter")
	flags.StringVar(&opts.lang, "lang", "", "interface language (en, ja)")
	flags.Float64Var(&opts.threshold, "threshold", 0, "swipe distance threshold")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the catalog when it changes")

	root.AddCommand(newListCmd(opts), newStatsCmd(opts), newConfigCmd())
	return root
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("category") {
		cfg.Gallery.Category = opts.category
	}
	if flags.Changed("lang") {
		cfg.UI.Lang = opts.lang
	}
	if flags.Changed("threshold") {
		cfg.Gesture.Threshold = opts.threshold
	}
	return cfg, cfg.Validate()
}

func catalogPath(cfg config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.Gallery.Catalog != "" {
		return cfg.Gallery.Catalog
	}
	return "."
}

func openViews(ctx context.Context, cfg config.Config, logger *zap.Logger) viewlog.Recorder {
	if !cfg.ViewLog.Enabled || cfg.ViewLog.Path == "" {
		return viewlog.Nop{}
	}
	store, err := viewlog.Open(ctx, cfg.ViewLog.Path)
	if err != nil {
		logger.Warn("view log disabled", zap.Error(err))
		return viewlog.Nop{}
	}
	logger.Debug("view log opened", zap.String("path", cfg.ViewLog.Path), zap.String("session", store.Session()))
	return store
}

func runGallery(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := catalogPath(cfg, args)
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}
	loc, err := locale.New(cfg.UI.Lang)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	logger.Info("starting lightbox",
		zap.String("catalog", path),
		zap.String("lang", loc.Lang()),
		zap.Bool("effects", cfg.Effects.Enabled),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views := openViews(ctx, cfg, logger)
	defer func() {
		if err := views.Close(); err != nil {
			logger.Warn("close view log", zap.Error(err))
		}
	}()

	app, err := apppkg.NewApplication(apppkg.Options{
		Config:    cfg,
		Catalog:   cat,
		Watch:     !opts.noWatch,
		Logger:    logger,
		Views:     views,
		Localizer: loc,
	})
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [catalog]",
		Short: "Print the filtered photo index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(catalogPath(cfg, args))
			if err != nil {
				return err
			}
			return printIndex(cmd.OutOrStdout(), cat, cfg.Gallery.Category)
		},
	}
}

func printIndex(out io.Writer, cat *catalog.Catalog, category string) error {
	index := cat.Filter(category)
	if len(index) == 0 {
		_, err := fmt.Fprintln(out, "no photos")
		return err
	}
	sources := make(map[string]string, len(cat.Items))
	for _, it := range cat.Items {
		sources[it.Source] = it.Category
	}

	// Walk the index with the engine so counters match the lightbox.
	st, err := gallery.Apply(gallery.New(index), gallery.Open{Index: 0})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, d := range index {
		if st, err = gallery.Apply(st, gallery.JumpTo{Index: i}); err != nil {
			return err
		}
		caption := textutil.CleanCaption(d.Caption())
		if caption == "" {
			caption = textutil.CleanCaption(d.AltText())
		}
		caption = textutil.Truncate(caption, captionColumn)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			st.Counter(), caption, sources[d.Source()], d.Source())
	}
	return tw.Flush()
}

func newStatsCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the most viewed photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if cfg.ViewLog.Path == "" {
				return fmt.Errorf("viewlog.path is not set")
			}
			store, err := viewlog.Open(cmd.Context(), cfg.ViewLog.Path)
			if err != nil {
				return err
			}
			defer store.Close()
			return printStats(cmd.Context(), cmd.OutOrStdout(), store, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of photos to show (0 for all)")
	return cmd
}

func printStats(ctx context.Context, out io.Writer, store *viewlog.Store, limit int) error {
	stats, err := store.Top(ctx, limit)
	if err != nil {
		return err
	}
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		_, err := fmt.Fprintln(out, "no views recorded")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VIEWS\tCAPTION\tLAST SEEN\tSOURCE")
	for _, s := range stats {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			s.Views, textutil.Truncate(textutil.CleanCaption(s.Caption), captionColumn), s.LastSeen.Local().Format("2006-01-02 15:04"), s.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%d sessions\n", sessions)
	return err
}

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				def, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = def
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	})
	return cfgCmd
}
