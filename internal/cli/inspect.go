package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/agptools/internal/server"
	"github.com/matzehuels/agptools/pkg/agp"
	errs "github.com/matzehuels/agptools/pkg/errors"
	"github.com/matzehuels/agptools/pkg/render/dot"
)

// subset returns a layout holding only the named objects, in that order.
func subset(l *agp.Layout, names []string) (*agp.Layout, error) {
	objs := make([]*agp.Object, 0, len(names))
	for _, n := range names {
		obj, ok := l.Get(n)
		if !ok {
			return nil, errs.New(errs.ErrCodeUnknownObject, "object %s is not in the layout", n)
		}
		objs = append(objs, obj)
	}
	return agp.NewLayout(objs...)
}

// =============================================================================
// render
// =============================================================================

type renderOptions struct {
	output   string
	format   string
	objects  []string
	detailed bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [AGP]",
		Short: "Draw a layout as a diagram",
		Long: `Draw objects as chains of components and gaps using Graphviz.

The format follows the -o extension (svg, pdf or png) unless --format is
given. PDF and PNG output need rsvg-convert on the PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.loadLayout(cmd, agpArg(args, 0))
			if err != nil {
				return err
			}
			format := opts.format
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
			}
			if format == "" {
				format = "svg"
			}

			var data []byte
			err = spin(ctx, "Rendering...", "Rendered "+strings.ToUpper(format), func() error {
				var err error
				data, err = dot.Render(ctx, doc.Layout, dot.Options{Objects: opts.objects, Detailed: opts.detailed}, format)
				return err
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts.output, func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", "", "svg, pdf or png (default: from -o extension)")
	cmd.Flags().StringSliceVar(&opts.objects, "object", nil, "draw only these objects (repeatable)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label records with object coordinates")
	return cmd
}

// =============================================================================
// stats
// =============================================================================

var (
	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

func (c *CLI) statsCommand() *cobra.Command {
	var perObject bool
	cmd := &cobra.Command{
		Use:   "stats [AGP]",
		Short: "Summarize a layout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadLayout(cmd, agpArg(args, 0))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printLayoutStats(out, doc.Layout.Stats())
			if perObject {
				fmt.Fprintln(out)
				fmt.Fprintln(out, objectTable(doc.Layout.Objects()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&perObject, "objects", false, "also list every object")
	return cmd
}

func printLayoutStats(w io.Writer, s agp.Stats) {
	rows := [][2]string{
		{"Objects", strconv.Itoa(s.Objects)},
		{"Components", strconv.Itoa(s.Components)},
		{"Gaps", strconv.Itoa(s.Gaps)},
		{"Length", fmt.Sprintf("%d bp", s.Length)},
		{"Gap length", fmt.Sprintf("%d bp", s.GapLength)},
	}
	for _, r := range rows {
		printKeyValue(w, r[0], r[1])
	}
}

// objectTable renders one row per object.
func objectTable(objs []*agp.Object) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		Headers("OBJECT", "LENGTH", "RECORDS", "COMPONENTS", "GAP BP").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col > 0 {
				return styleTableCell.Align(lipgloss.Right)
			}
			return styleTableCell
		})
	for _, o := range objs {
		t.Row(o.Name(),
			strconv.Itoa(o.Len()),
			strconv.Itoa(o.Count()),
			strconv.Itoa(o.ComponentCount()),
			strconv.Itoa(o.GapLen()))
	}
	return t.String()
}

// =============================================================================
// serve
// =============================================================================

type serveOptions struct {
	addr    string
	fasta   string
	redis   string
	noCache bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve AGP",
		Short: "Serve layout queries over HTTP",
		Long: `Serve a layout over HTTP.

Routes: /healthz, /objects, /objects/{name}, /map and, when --fasta or a
Redis store is configured, /objects/{name}/fasta.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.loadLayout(cmd, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer c.closeCache(runner.Cache)

			srvOpts := server.Options{
				Runner:    runner,
				LineWidth: c.Config.FASTA.LineWidth,
				Logger:    c.Logger,
			}
			if opts.fasta != "" || opts.redis != "" || c.Config.Store.RedisURL != "" {
				provider, closeProvider, err := c.newProvider(ctx, opts.fasta, opts.redis, runner.Cache)
				if err != nil {
					return err
				}
				defer closeProvider()
				srvOpts.Provider = provider
			}

			addr := opts.addr
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			printInfo("Serving %d objects on http://%s", doc.Layout.Len(), addr)
			return server.New(doc.Layout, srvOpts).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&opts.fasta, "fasta", "", "component FASTA file for sequence routes")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL of a sequence store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the assembled-sequence cache")
	return cmd
}

