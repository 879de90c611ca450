package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"tour-lab/internal/app"
	"tour-lab/internal/config"
	"tour-lab/internal/domain"
	"tour-lab/internal/geo"
	"tour-lab/internal/platform/obs"
	"tour-lab/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const usage = `usage: tourctl <command> [flags]

commands:
  measure  -tour T               print the table cost and straight-line map length of T
  verify   -tour T               report whether T visits every location once
  greedy   [-prefix P]           build a nearest-neighbour tour
  perturb  -tour T -op O [...]   apply one operator (relocate, swap, reverse, shuffle, random)
  sample   -tour T -op O [...]   summarize the cost of random neighbours of T
  draw     -tour T -out F        render T onto the map as PNG

Tours are comma separated names, or one character per stop ("ACB").`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tourctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tourArg   = fs.String("tour", "", "tour to work on")
		prefixArg = fs.String("prefix", "", "fixed start of the greedy tour")
		opArg     = fs.String("op", string(services.OpRandom), "perturbation operator")
		seed      = fs.Int64("seed", 0, "random seed (0 uses the clock)")
		i1        = fs.Int("i1", -1, "first position for a positional move")
		i2        = fs.Int("i2", -1, "second position for a positional move")
		samples   = fs.Int("n", 1000, "number of neighbours to sample")
		workers   = fs.Int("workers", 4, "sampling goroutines")
		out       = fs.String("out", "route.png", "output PNG for draw")
	)
	if err := fs.Parse(rest); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	eval, err := app.LoadEvaluator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	tour := eval.World().ParseTour(*tourArg)

	switch cmd {
	case "measure":
		cost, err := eval.Measure(tour)
		if err != nil {
			return err
		}
		straight, err := geo.EdinburghFrame().TourLength(geo.EdinburghStart, eval.World(), tour)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\t%g\tstraight=%.1f\n", tour, cost, straight)

	case "verify":
		valid := eval.Verify(tour)
		if err := eval.Check(tour); err != nil {
			fmt.Fprintf(stdout, "%s\tinvalid\t%v\n", tour, err)
			return nil
		}
		fmt.Fprintf(stdout, "%s\tvalid=%t\n", tour, valid)

	case "greedy":
		t, err := services.CompleteGreedy(eval.World(), eval.World().ParseTour(*prefixArg))
		if err != nil {
			return err
		}
		return printTour(stdout, eval, t)

	case "perturb":
		op, err := services.ParseOperator(*opArg)
		if err != nil {
			return err
		}

		var t domain.Tour
		if *i1 >= 0 || *i2 >= 0 {
			t, err = applyAt(op, tour, *i1, *i2)
		} else {
			t, err = services.NewSeededPerturber(*seed).Apply(op, tour)
		}
		if err != nil {
			return err
		}
		return printTour(stdout, eval, t)

	case "sample":
		op, err := services.ParseOperator(*opArg)
		if err != nil {
			return err
		}
		st, err := services.SampleNeighbourhood(ctx, eval, services.SampleRequest{
			Tour:     tour,
			Operator: op,
			Samples:  *samples,
			Workers:  *workers,
			Seed:     *seed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "base\t%g\nsamples\t%d\nimproving\t%d\nbest\t%s\t%g\n",
			st.BaseCost, st.Samples, st.Improving, st.Best, st.BestCost)
		fmt.Fprintf(stdout, "mean\t%.2f\nmedian\t%g\nmin\t%g\nmax\t%g\np90\t%g\nstddev\t%.2f\n",
			st.Mean, st.Median, st.Min, st.Max, st.P90, st.StdDev)

	case "draw":
		renderer, err := app.NewRenderer(cfg)
		if err != nil {
			return err
		}
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		if err := renderer.Draw(f, eval.World(), tour); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		fmt.Fprintf(stdout, "wrote %s\n", *out)

	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	return nil
}

func applyAt(op services.Operator, tour domain.Tour, i1, i2 int) (domain.Tour, error) {
	switch op {
	case services.OpRelocate:
		return services.RelocateAt(tour, i1, i2)
	case services.OpSwap:
		return services.SwapAt(tour, i1, i2)
	case services.OpReverse:
		return services.ReverseAt(tour, i1, i2)
	default:
		return nil, fmt.Errorf("perturb: positions need relocate, swap or reverse, not %s", op)
	}
}

func printTour(w io.Writer, eval *services.Evaluator, t domain.Tour) error {
	cost, err := eval.Measure(t)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\t%g\n", strings.Join(t, ","), cost)
	return nil
}
