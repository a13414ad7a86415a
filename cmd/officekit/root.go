// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/officekit/internal/dirlock"
	"github.com/pdiddy/officekit/internal/dispatch"
	"github.com/pdiddy/officekit/internal/journal"
	"github.com/pdiddy/officekit/internal/session"
	"github.com/pdiddy/officekit/pkg/types"
)

// app carries the state of one invocation between cobra hooks.
type app struct {
	in     io.Reader
	v      *viper.Viper
	cfg    types.Config
	logger *log.Logger

	cfgFile     string
	verbose     bool
	interactive bool
	dryRun      bool
	flags       dispatch.Flags

	// newConverter overrides the configured conversion backend.
	newConverter dispatch.ConverterFactory
}

func newApp(in io.Reader) *app {
	return &app{in: in, v: viper.New()}
}

// newRootCmd creates the root command.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "officekit",
		Short: "Convert PDF and DOCX documents, compress images and delete groups of files",
		Long: `officekit converts between PDF and DOCX, recompresses JPEG and PNG images,
and deletes files matching a name pattern.

With no action flags it starts an interactive menu that reads numbered
choices from standard input. Action flags run once and exit; when several
are given they run in the order --pdf2docx, --docx2pdf, --compress-images,
--delete.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./officekit.yaml or ~/.config/officekit/officekit.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	f := cmd.Flags()
	f.StringVar(&a.flags.PdfToDocx, "pdf2docx", "", "convert a PDF file to DOCX, or 'all' for every PDF in --workdir")
	f.StringVar(&a.flags.DocxToPdf, "docx2pdf", "", "convert a DOCX file to PDF, or 'all' for every DOCX in --workdir")
	f.StringVar(&a.flags.CompressImages, "compress-images", "", "compress an image, or 'all' for every image in --workdir")
	f.Int("quality", defaultQuality, "image compression quality")
	f.StringVar(&a.flags.WorkDir, "workdir", "", "directory processed by 'all' (required with 'all')")
	f.BoolVar(&a.flags.Delete, "delete", false, "delete files matching --delete-mode and --delete-pattern in --delete-dir")
	f.StringVar(&a.flags.DeleteMode, "delete-mode", "", "matching rule: startswith, endswith, contains or extension")
	f.StringVar(&a.flags.DeletePattern, "delete-pattern", "", "pattern the file names are matched against")
	f.StringVar(&a.flags.DeleteDir, "delete-dir", "", "directory to delete files from")
	f.BoolVarP(&a.interactive, "interactive", "i", false, "start the interactive menu even when action flags are given")
	f.Bool("keep-going", false, "continue a batch after a file fails")
	f.BoolVar(&a.dryRun, "dry-run", false, "with --delete, list matching files without removing them")
	f.String("backend", string(types.BackendSoffice), "conversion backend: soffice or container")

	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup builds the logger and loads configuration for every command.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "officekit",
		ReportTimestamp: true,
	})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(a.v, a.cfgFile, cmd.Root(), a.logger)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.flags.Quality = cfg.Compression.Quality
	return nil
}

func (a *app) run(ctx context.Context, out io.Writer) error {
	var reqs []dispatch.Request
	if !a.interactive {
		var err error
		if reqs, err = a.flags.Plan(); err != nil {
			return err
		}
	}

	sess, err := session.FromWorkingDir()
	if err != nil {
		return err
	}

	rec, closeRec := a.openRecorder()
	defer closeRec()

	d := dispatch.New(sess, dispatch.Options{
		Config:       a.cfg,
		Out:          out,
		Logger:       a.logger,
		Recorder:     rec,
		Locker:       dirlock.New("", dirlock.DefaultTimeout),
		NewConverter: a.newConverter,
		DryRun:       a.dryRun,
	})

	if len(reqs) == 0 {
		a.logger.Debug("starting interactive mode", "dir", sess.Dir())
		return d.RunInteractive(ctx, a.in)
	}
	for _, req := range reqs {
		if err := d.Dispatch(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// openRecorder returns the journal, or a no-op recorder when the journal is
// disabled or cannot be opened. Journal problems never block an action.
func (a *app) openRecorder() (types.Recorder, func()) {
	nop := func() {}
	if !a.cfg.Journal.Enabled {
		return journal.Nop{}, nop
	}
	store, err := openJournal(a.cfg.Journal)
	if err != nil {
		a.logger.Warn("journal unavailable, history will not be recorded", "err", err)
		return journal.Nop{}, nop
	}
	return store, func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("closing journal", "err", err)
		}
	}
}

func openJournal(cfg types.JournalConfig) (*journal.Store, error) {
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = journal.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return journal.Open(path)
}
