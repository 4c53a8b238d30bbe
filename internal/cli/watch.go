package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/matzehuels/fcss/pkg/cache"
	"github.com/matzehuels/fcss/pkg/config"
	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/parse"
	"github.com/matzehuels/fcss/pkg/sheet"
	"github.com/matzehuels/fcss/pkg/signature"
	"github.com/matzehuels/fcss/pkg/watch"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	config string
	tui    bool
}

// watchCommand creates the watch command, which reports the class
// signatures used by every changed template.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{config: defaultConfigFile}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch templates and report which classes the reg file declares",
		Long: `Watch loads the configuration, resolves the reg file it names and watches
the configured directories. Every time a template is created or written its
class attributes are compared with the signatures the reg file declares.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", opts.config, "configuration file (.toml, .yaml or .json)")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show a live view instead of log lines")

	return cmd
}

// templateReport is the outcome of checking one changed template.
type templateReport struct {
	ID      uuid.UUID
	Path    string
	Op      watch.Op
	Time    time.Time
	Hash    string // content hash, used to drop repeated writes
	Known   signature.Set
	Unknown signature.Set
}

func (c *CLI) runWatch(ctx context.Context, opts watchOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	declared, err := c.loadRegSignatures(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("reg loaded", "signatures", declared.Len())

	w, err := watch.New(cfg.Suffix, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range cfg.WatchDirs {
		if err := w.Add(dir); err != nil {
			for _, e := range multierr.Errors(err) {
				logger.Warn("watch", "err", e)
			}
		}
	}
	logger.Info("templates indexed", "files", len(w.Index().Files()), "suffix", cfg.Suffix)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- w.Run(ctx) }()

	reports := make(chan templateReport)
	go func() {
		defer close(reports)
		seen := make(map[string]string)
		for ev := range w.Events() {
			rep, err := checkTemplate(ev, declared)
			if err != nil {
				logger.Warn("check template", "file", ev.Path, "err", err)
				continue
			}
			if seen[rep.Path] == rep.Hash {
				logger.Debug("template unchanged", "file", rep.Path, "event", rep.ID)
				continue
			}
			seen[rep.Path] = rep.Hash
			select {
			case reports <- rep:
			case <-ctx.Done():
				return
			}
		}
	}()

	if opts.tui {
		err = c.runWatchTUI(ctx, reports)
	} else {
		for rep := range reports {
			logReport(logger, rep)
		}
	}
	cancel()

	return multierr.Append(err, <-runErr)
}

// loadRegSignatures resolves the configured reg source and returns the
// signatures it declares.
func (c *CLI) loadRegSignatures(ctx context.Context, cfg *config.Config) (signature.Set, error) {
	res, closeCache, err := c.newResolver(resolveOpts{
		cache:     cfg.Cache,
		maxRounds: cfg.MaxRounds,
	}, cfg.CacheTTL.Duration)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	var tree sheet.Mapping
	if cfg.RegFile != "" {
		tree, err = res.File(ctx, cfg.RegFile)
	} else {
		tree, err = parse.Document(cfg.Reg)
		if err == nil {
			tree, err = res.Resolve(ctx, tree)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load reg: %w", err)
	}
	return signature.Extract(tree), nil
}

func checkTemplate(ev watch.Event, declared signature.Set) (templateReport, error) {
	data, err := os.ReadFile(ev.Path)
	if err != nil {
		return templateReport{}, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "read %s", ev.Path)
	}
	used := signature.FromClasses(signature.ScanClasses(data))
	return templateReport{
		ID:      ev.ID,
		Path:    ev.Path,
		Op:      ev.Op,
		Time:    ev.Time,
		Hash:    cache.Hash(data),
		Known:   used.Intersect(declared),
		Unknown: used.Diff(declared),
	}, nil
}

func logReport(logger *log.Logger, rep templateReport) {
	logger.Info("template",
		"file", rep.Path,
		"op", rep.Op,
		"known", rep.Known.Len(),
		"unknown", rep.Unknown.Len(),
		"event", rep.ID,
	)
	if rep.Unknown.Len() > 0 {
		logger.Warn("undeclared classes", "file", rep.Path, "signatures", strings.Join(rep.Unknown.Sorted(), " "))
	}
}
