// Package run drives one invocation end to end: flag scanning, pipeline
// parsing, stream assembly, execution.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lguimbarda/rp/internal/config"
	"github.com/lguimbarda/rp/internal/help"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/parse"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/internal/token"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/core"
	"github.com/lguimbarda/rp/pipe/errs"
	"github.com/lguimbarda/rp/pipe/observe"
)

// Runner executes invocations against injectable standard streams, so
// tests can drive whole runs without touching the process's stdin and
// stdout.
type Runner struct {
	In  io.Reader
	Out io.Writer
	Log zerolog.Logger
	Env config.Env
}

// Run handles one invocation given the arguments after the program
// name. The returned error, if any, carries the process exit code.
func (r *Runner) Run(ctx context.Context, args []string) error {
	opts := config.ParseArgs(args)
	switch {
	case opts.Help:
		topic := ""
		if len(opts.Args) > 0 {
			topic = opts.Args[0]
		}
		help.Print(r.Out, topic)
		return nil
	case opts.Version:
		fmt.Fprintln(r.Out, help.Version())
		return nil
	}

	words := opts.Args
	if opts.Eval {
		if len(words) == 0 {
			return rperr.MissingArgErr("--eval", "token")
		}
		var err error
		if words, err = token.Split(words[0]); err != nil {
			return err
		}
	}

	pl, err := parse.Parse(words)
	if err != nil {
		return err
	}

	log := r.Log
	if opts.Verbose {
		log = log.With().Str("run", uuid.NewString()).Logger()
		logPipeline(log, pl)
	}
	if opts.DryRun {
		return nil
	}

	// A truncating stage can abandon an unbounded source mid-stream;
	// cancelling on return releases the stranded producer goroutines.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	settings := opts.Settings(r.Env)
	ctx = core.WithConfig(ctx, settings)

	var counter *observe.Counter
	if opts.Verbose {
		ctx, counter = observe.WithCounter[item.Item](ctx)
	}

	source, err := r.source(ctx, pl.Input)
	if err != nil {
		return err
	}
	stages := make([]pipe.Transformer[item.Item, item.Item], 0, len(pl.Ops)+2)
	for _, op := range pl.Ops {
		stages = append(stages, op.Stage())
	}
	if opts.Verbose {
		stages = append(stages, core.Notify[item.Item]())
	}
	if settings.SkipErrors {
		stages = append(stages, errs.Skip[item.Item]())
	}

	err = r.sink(ctx, pipe.Pipe(ctx, source, stages...), pl.Output)
	if counter != nil {
		log.Info().
			Int64("items", counter.Values()).
			Int64("errors", counter.Errors()).
			Msg("run finished")
	}
	return err
}

func logPipeline(log zerolog.Logger, pl *parse.Pipeline) {
	names := make([]string, len(pl.Ops))
	for i, op := range pl.Ops {
		names[i] = op.String()
	}
	log.Info().
		Str("input", pl.Input.String()).
		Strs("ops", names).
		Str("output", pl.Output.String()).
		Msg("pipeline parsed")
}
