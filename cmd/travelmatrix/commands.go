package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"travel-matrix-service/internal/adapters/addressbook"
	"travel-matrix-service/internal/adapters/report"
	"travel-matrix-service/internal/app"
	"travel-matrix-service/internal/config"
	"travel-matrix-service/internal/domain"
	"travel-matrix-service/internal/platform/obs"
	"travel-matrix-service/internal/ports"
	"travel-matrix-service/internal/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

type options struct {
	configPath   string
	logLevel     string
	origin       string
	destinations string
	out          string
}

// env is what every subcommand needs after flags are parsed.
type env struct {
	cfg    *config.Config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "travelmatrix",
		Short:         "Travel times and distances from one origin to many destinations",
		Long:          `Compute cycling, transit and car travel times and distances from an origin to every company in an address book.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "optional YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&opts.destinations, "destinations", "d", "", "xlsx or csv address book (defaults to destinations.path, or the database when configured)")

	root.AddCommand(newComputeCmd(opts), newDestinationsCmd(opts))
	return root
}

func newComputeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Build the travel matrix and print it",
		Long:  `Geocode the origin and destinations, query bike, car and transit routes, print the table and optionally export it as xlsx.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runCompute(cmd.Context(), e, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.origin, "origin", "o", "", "origin address (defaults to origin.default)")
	cmd.Flags().StringVar(&opts.out, "out", "", "write the table as xlsx to this file or directory")
	return cmd
}

func newDestinationsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List the destinations that would be routed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			source, closeSource, err := openSource(cmd.Context(), e, opts)
			if err != nil {
				return err
			}
			defer closeSource()

			destinations, err := source.ListDestinations(cmd.Context())
			if err != nil {
				return err
			}
			printDestinations(cmd.OutOrStdout(), destinations)
			return nil
		},
	}
}

func setup(opts *options, stderr io.Writer) (*env, error) {
	if _, err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	lvl := cfg.Log.Level
	if opts.logLevel != "" {
		lvl = opts.logLevel
	}

	return &env{cfg: cfg, logger: obs.NewLogger(stderr, lvl)}, nil
}

// openSource prefers an explicit --destinations file over the configured source.
func openSource(ctx context.Context, e *env, opts *options) (ports.DestinationSource, func() error, error) {
	if opts.destinations != "" {
		return addressbook.FileSource{Path: opts.destinations}, func() error { return nil }, nil
	}
	return app.OpenDestinationSource(ctx, e.cfg, e.logger)
}

func runCompute(ctx context.Context, e *env, opts *options, stdout io.Writer) error {
	builder, err := app.NewBuilder(e.cfg, e.logger)
	if err != nil {
		return err
	}
	return compute(ctx, e, opts, builder, stdout)
}

func compute(ctx context.Context, e *env, opts *options, builder ports.TravelMatrixBuilder, stdout io.Writer) error {
	origin := opts.origin
	if origin == "" {
		origin = e.cfg.Origin.Default
	}

	source, closeSource, err := openSource(ctx, e, opts)
	if err != nil {
		return err
	}
	defer closeSource()

	level.Info(e.logger).Log("msg", "computing travel matrix", "origin", origin)
	table, err := services.ComputeAndDisplay(ctx, builder, origin, source)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, titleStyle.Render("Travel matrix from "+origin))
	fmt.Fprintln(stdout, report.RenderTable(table))

	if opts.out == "" {
		return nil
	}

	path, err := exportPath(opts.out, origin)
	if err != nil {
		return err
	}
	if err := writeExport(path, table); err != nil {
		return err
	}
	fmt.Fprintln(stdout, dimStyle.Render("Saved "+path))
	return nil
}

// exportPath appends the default file name when out is a directory.
func exportPath(out, origin string) (string, error) {
	info, err := os.Stat(out)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(out, report.ExportFilename(origin)), nil
	case err == nil || os.IsNotExist(err):
		return out, nil
	default:
		return "", fmt.Errorf("export: %w", err)
	}
}

func writeExport(path string, table domain.ResultTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()

	return report.WriteXLSX(f, table)
}

func printDestinations(w io.Writer, destinations []domain.Destination) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d destinations", len(destinations))))
	for i, d := range destinations {
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, d.Company, dimStyle.Render(d.Address))
	}
}
