// Command rp parses a colon-command pipeline from its arguments and
// streams items from an input through a chain of operators into an
// output.
//
//	rp :file access.log :take reg "GET .*" :count
//	rp :gen 1,=100 "{:03}" :to file numbered.txt
//	seq 1 10 | rp :sort desc :join ,
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/rp/internal/config"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/internal/run"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := config.LoadEnv()
	level, err := zerolog.ParseLevel(env.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    env.NoColor,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()

	r := &run.Runner{In: os.Stdin, Out: os.Stdout, Log: log, Env: env}
	if err := r.Run(ctx, os.Args[1:]); err != nil {
		log.Error().Msg(err.Error())
		stop()
		os.Exit(rperr.ExitCode(err))
	}
}
