package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polypath/pkg/errors"
	"github.com/matzehuels/polypath/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by the root and render commands.
// Zero values mean "use the config file or built-in default".
type renderFlags struct {
	output   string // output file (single format) or base path (multiple)
	formats  string // comma-separated output formats
	vizType  string // "grid" or "nodelink"
	style    string // drawing style for the grid
	scale    int    // circumradius in pixels
	workers  int    // enumeration goroutines
	noLabels bool   // omit jump labels
	noCache  bool   // bypass the result cache
	refresh  bool   // recompute and overwrite the cached result
}

func newRenderFlags() *renderFlags { return &renderFlags{} }

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); default output{n}.<format>")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().StringVarP(&f.vizType, "type", "t", "", "visualization type: grid (default), nodelink")
	cmd.Flags().StringVar(&f.style, "style", "", "drawing style: simple (default), outline")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "polygon radius in pixels (default 50)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "goroutines used for enumeration (default 1)")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "omit the jump labels")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// options merges flags over the config file into pipeline options.
func (f *renderFlags) options(cfg Config, n int) pipeline.Options {
	opts := pipeline.Options{
		Size:     n,
		Formats:  cfg.Formats,
		Scale:    cfg.Scale,
		Style:    cfg.Style,
		Workers:  cfg.Workers,
		VizType:  f.vizType,
		NoLabels: f.noLabels,
		Refresh:  f.refresh,
	}
	if f.formats != "" {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if f.style != "" {
		opts.Style = f.style
	}
	if f.scale > 0 {
		opts.Scale = f.scale
	}
	if f.workers > 0 {
		opts.Workers = f.workers
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	flags := newRenderFlags()

	cmd := &cobra.Command{
		Use:   "render <n>",
		Short: "Find every closed path on an n-gon and draw them",
		Long: `Find every distinct closed path on a regular n-gon and draw them.

Paths are drawn on a square grid in canonical order, each labeled with its
jump sequence. By default the result is written to output{n}.svg in the
configured output directory.

Results are cached locally for faster subsequent runs.`,
		Example: `  polypath render 7
  polypath render 8 -f svg,json -o octagon
  polypath render 6 -t nodelink -f svg,dot`,
		Args: sizeArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := errors.ParseSize(args[0])
			return c.runRender(cmd, n, flags)
		},
	}
	flags.register(cmd)
	return cmd
}

// runRender runs the pipeline for n and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, n int, flags *renderFlags) error {
	ctx := cmd.Context()
	opts := flags.options(c.Config, n)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if flags.output != "" {
		if err := errors.ValidateOutputPath(flags.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger, n)
	label := fmt.Sprintf("Enumerating %d-gon", n)
	spinner := newSpinnerWithContext(ctx, label+"...")
	opts.Progress = spinner.Progress(label)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Enumeration failed")
		return err
	}
	spinner.Stop()
	prog.done(result.Stats.PathCount, result.CacheInfo.EnumerateHit)

	printSuccess("Found %d distinct paths", result.Stats.PathCount)
	printStats(result)

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		size:      n,
		output:    flags.output,
		dir:       c.Config.OutputDir,
	})
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Browse them", fmt.Sprintf("polypath browse %d", n))
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	size      int
	output    string
	dir       string
}

// writeArtifacts writes each format to its file and returns the paths in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.dir != "" {
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	written := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.dir, p.size, format, len(p.formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// outputPath picks the file for one format.
//
// Without -o the name is output{n}.<format> inside dir. With -o and a single
// format the path is used as given; with several formats it is a base path
// and any known format extension is stripped before appending each one.
func outputPath(output, dir string, n int, format string, multiple bool) string {
	if output == "" {
		return filepath.Join(dir, fmt.Sprintf("output%d.%s", n, format))
	}
	if !multiple {
		return output
	}
	return basePath(output) + "." + format
}

func basePath(output string) string {
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
