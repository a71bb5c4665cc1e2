package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/agptools/pkg/assemble"
	agpio "github.com/matzehuels/agptools/pkg/io"
	"github.com/matzehuels/agptools/pkg/pipeline"
	"github.com/matzehuels/agptools/pkg/seqstore"
)

// writeOutput writes through fn to path, or to the command's stdout when
// path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}
	if err := agpio.WriteFileAtomic(path, fn); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// =============================================================================
// transform
// =============================================================================

func (c *CLI) transformCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "transform BED [AGP]",
		Short: "Translate BED intervals from components to objects",
		Long: `Translate intervals given on components into object coordinates.

Every interval must lie inside a single component record; intervals on
reversed components come back with their strand flipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := readList(args[0], agpio.ReadBED)
			if err != nil {
				return err
			}
			doc, err := c.loadLayout(cmd, agpArg(args, 1))
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			mapped, err := pipeline.MapBED(doc.Layout, recs)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, func(w io.Writer) error {
				return agpio.WriteBED(w, mapped)
			}); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Translated %d intervals", len(mapped)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output BED file (default: stdout)")
	return cmd
}

// =============================================================================
// assemble
// =============================================================================

type assembleOptions struct {
	output    string
	fasta     string
	redis     string
	workers   int
	lineWidth int
	objects   []string
	noCache   bool
}

func (c *CLI) assembleCommand() *cobra.Command {
	var opts assembleOptions
	cmd := &cobra.Command{
		Use:   "assemble [AGP]",
		Short: "Build object sequences from component sequences",
		Long: `Build the sequence of every object from its components.

Component sequences come from --fasta, or from a Redis store filled with
"agptools store load". Minus components are reverse-complemented and gaps
become runs of N. Assembled objects are cached by layout content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAssemble(cmd, agpArg(args, 0), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output FASTA file (default: stdout)")
	cmd.Flags().StringVar(&opts.fasta, "fasta", "", "component FASTA file")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL of a sequence store (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "objects assembled in parallel (default from config)")
	cmd.Flags().IntVar(&opts.lineWidth, "line-width", 0, "FASTA line width (default from config)")
	cmd.Flags().StringSliceVar(&opts.objects, "object", nil, "assemble only these objects (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the assembled-sequence cache")
	return cmd
}

func (c *CLI) runAssemble(cmd *cobra.Command, input string, opts assembleOptions) error {
	ctx := cmd.Context()
	doc, err := c.loadLayout(cmd, input)
	if err != nil {
		return err
	}
	layout := doc.Layout
	if len(opts.objects) > 0 {
		if layout, err = subset(layout, opts.objects); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer c.closeCache(runner.Cache)

	provider, closeProvider, err := c.newProvider(ctx, opts.fasta, opts.redis, runner.Cache)
	if err != nil {
		return err
	}
	defer closeProvider()

	workers := opts.workers
	if workers <= 0 {
		workers = c.Config.Assemble.Workers
	}
	var res *pipeline.AssembleResult
	err = spin(ctx, "Assembling sequences...", fmt.Sprintf("Assembled %d objects", layout.Len()), func() error {
		var err error
		res, err = runner.Assemble(ctx, layout, provider, assemble.Options{
			Workers: workers,
			Logger:  c.Logger.Debugf,
		})
		return err
	})
	if err != nil {
		return err
	}
	if res.CacheHits > 0 {
		printDetail("%d of %d objects from cache", res.CacheHits, len(res.Sequences))
	}

	width := opts.lineWidth
	if width <= 0 {
		width = c.Config.FASTA.LineWidth
	}
	recs := make([]agpio.FASTARecord, len(res.Sequences))
	for i, s := range res.Sequences {
		recs[i] = agpio.FASTARecord{ID: s.Name, Seq: s.Seq}
	}
	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		return agpio.WriteFASTA(w, recs, width)
	})
}

// =============================================================================
// store
// =============================================================================

func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the Redis sequence store",
	}
	cmd.AddCommand(c.storeLoadCommand())
	return cmd
}

func (c *CLI) storeLoadCommand() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "load FASTA",
		Short: "Load component sequences into Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if redisURL == "" {
				redisURL = c.Config.Store.RedisURL
			}
			if redisURL == "" {
				return fmt.Errorf("no Redis URL: pass --redis or set store.redis_url")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			recs, err := agpio.ReadFASTA(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			store, err := seqstore.DialRedis(ctx, redisURL, c.Config.Store.Prefix)
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(c.Logger)
			var total int
			for _, r := range recs {
				if err := store.Put(ctx, r.ID, r.Seq); err != nil {
					return err
				}
				total += len(r.Seq)
			}
			prog.done(fmt.Sprintf("Stored %d sequences", len(recs)))
			printSuccess("Stored %d sequences (%d bp)", len(recs), total)
			return nil
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL (default from config)")
	return cmd
}
