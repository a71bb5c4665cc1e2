package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/agptools/pkg/agp/transform"
	agpio "github.com/matzehuels/agptools/pkg/io"
	"github.com/matzehuels/agptools/pkg/pipeline"
)

// editOptions holds the output flags shared by the editing commands.
type editOptions struct {
	output string
	format string
}

func (o *editOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&o.format, "format", "", "output format: agp or json (default: from -o extension)")
}

// agpArg returns the AGP path at args[i], or "-" for standard input.
func agpArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "-"
}

// readList opens path and decodes it with read.
func readList[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// runEdit applies op to the AGP at input and writes the result.
func (c *CLI) runEdit(cmd *cobra.Command, input string, op pipeline.Operation, o editOptions) error {
	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.Execute(cmd.Context(), pipeline.Options{
		Input:        input,
		Output:       o.output,
		OutputFormat: o.format,
		Operation:    op,
		In:           cmd.InOrStdin(),
		Out:          cmd.OutOrStdout(),
		Logger:       c.Logger,
	})
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	prog.done(fmt.Sprintf("%s: %d objects in, %d out", op.Name(), res.Stats.ObjectsIn, res.Stats.ObjectsOut))
	if o.output != "" && o.output != "-" {
		printFile(o.output)
	}
	return nil
}

// loadLayout reads the AGP or JSON layout at path ("-" for stdin).
func (c *CLI) loadLayout(cmd *cobra.Command, path string) (*agpio.Document, error) {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	return runner.Load(cmd.Context(), pipeline.Options{
		Input:  path,
		In:     cmd.InOrStdin(),
		Out:    io.Discard,
		Logger: c.Logger,
	})
}

// =============================================================================
// split
// =============================================================================

func (c *CLI) splitCommand() *cobra.Command {
	var opts editOptions
	cmd := &cobra.Command{
		Use:   "split BREAKPOINTS [AGP]",
		Short: "Split objects at gaps",
		Long: `Split objects at the given positions.

BREAKPOINTS lists an object name and a comma-separated list of positions
per line. Every position must fall inside a gap; the gap is dropped and the
pieces are named object.1, object.2 and so on.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bps, err := readList(args[0], agpio.ReadBreakpoints)
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.SplitOp(bps), opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// =============================================================================
// join
// =============================================================================

type joinOptions struct {
	editOptions
	gapLength int
	gapType   string
	noLinkage bool
	evidence  string
}

func (c *CLI) joinCommand() *cobra.Command {
	var opts joinOptions
	cmd := &cobra.Command{
		Use:   "join JOINS [AGP]",
		Short: "Join objects with gaps between them",
		Long: `Join objects into new objects.

JOINS lists one group per line: comma-separated object names, each
optionally prefixed with + or - for orientation, then an optional tab and
the name of the joined object.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := readList(args[0], agpio.ReadJoins)
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.JoinOp(groups, opts.gap(cmd, c.Config.GapSpec())), opts.editOptions)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVar(&opts.gapLength, "gap-length", 0, "length of inserted gaps (default from config)")
	cmd.Flags().StringVar(&opts.gapType, "gap-type", "", "gap type of inserted gaps (default from config)")
	cmd.Flags().BoolVar(&opts.noLinkage, "no-linkage", false, "mark inserted gaps as unlinked")
	cmd.Flags().StringVar(&opts.evidence, "evidence", "", "linkage evidence of inserted gaps")
	return cmd
}

// gap overlays the flags that were set on the configured gap.
func (o joinOptions) gap(cmd *cobra.Command, base transform.GapSpec) transform.GapSpec {
	g := base
	if cmd.Flags().Changed("gap-length") {
		g.Length = o.gapLength
	}
	if cmd.Flags().Changed("gap-type") {
		g.Type = o.gapType
	}
	if o.noLinkage {
		g.Linkage = false
		g.Evidence = nil
	}
	if o.evidence != "" {
		g.Evidence = []string{o.evidence}
	}
	return g
}

// =============================================================================
// flip
// =============================================================================

func (c *CLI) flipCommand() *cobra.Command {
	var opts editOptions
	cmd := &cobra.Command{
		Use:   "flip BED [AGP]",
		Short: "Reverse objects or runs of records",
		Long: `Reverse-complement whole objects or runs of records within them.

BED holds one line per edit. A line with only an object name flips the
whole object; a line with coordinates flips the records from start to end
in object coordinates (the object_beg of the first record and object_end
of the last). A start of 0 means the first record.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := readList(args[0], agpio.ReadBED)
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.FlipOp(flipRanges(recs)), opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// flipRanges groups flip lines per object. Flip files carry object
// coordinates as written in the AGP, so start and end pass through; start 0
// is taken as position 1.
func flipRanges(recs []agpio.BEDRecord) map[string][]transform.Range {
	ranges := make(map[string][]transform.Range)
	for _, r := range recs {
		rng := transform.Range{}
		if r.HasRange {
			rng = transform.Range{Start: max(r.Start, 1), End: r.End}
		}
		ranges[r.Chrom] = append(ranges[r.Chrom], rng)
	}
	return ranges
}

// =============================================================================
// remove
// =============================================================================

func (c *CLI) removeCommand() *cobra.Command {
	var opts editOptions
	cmd := &cobra.Command{
		Use:   "remove NAMES [AGP]",
		Short: "Drop objects from a layout",
		Long: `Remove the objects listed in NAMES, one per line. Names that are not
in the layout are reported and skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := readList(args[0], agpio.ReadNames)
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.RemoveOp(names), opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// =============================================================================
// rename
// =============================================================================

func (c *CLI) renameCommand() *cobra.Command {
	var opts editOptions
	cmd := &cobra.Command{
		Use:   "rename RENAMES [AGP]",
		Short: "Rename objects, optionally reversing them",
		Long: `Rename objects. RENAMES lists "old<TAB>new" per line with an optional
third column of + or -; "-" also reverses the object.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits, err := readList(args[0], agpio.ReadRenames)
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.RenameOp(edits), opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// =============================================================================
// compose
// =============================================================================

func (c *CLI) composeCommand() *cobra.Command {
	var (
		opts       editOptions
		keepUnused bool
	)
	cmd := &cobra.Command{
		Use:   "compose INNER [OUTER]",
		Short: "Substitute one layout into another",
		Long: `Compose two layouts. Every component of OUTER must be a whole object of
INNER; the result describes OUTER's objects directly in INNER's components.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inner, err := c.loadLayout(cmd, args[0])
			if err != nil {
				return err
			}
			return c.runEdit(cmd, agpArg(args, 1), pipeline.ComposeOp(inner.Layout, keepUnused), opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&keepUnused, "keep-unused", false, "append inner objects that OUTER does not use")
	return cmd
}
