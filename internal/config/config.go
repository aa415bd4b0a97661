// Package config carries the process-wide options of one rp run: the
// leading command-line flags and the RP_-prefixed environment defaults.
package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the immutable configuration snapshot shared by every
// pipeline stage. It is attached to the run context before execution
// starts and never changes during a run.
type Settings struct {
	// Nocase makes case-insensitive comparison the default for every
	// operator with a nocase flag.
	Nocase bool
	// SkipErrors drops item-level errors from the stream instead of
	// aborting the run on the first one.
	SkipErrors bool
}

// Options holds the leading command-line flags. Flag scanning stops at
// the first word that is not a known flag; everything after it belongs
// to the pipeline grammar.
type Options struct {
	Help       bool
	Version    bool
	Verbose    bool
	DryRun     bool
	Nocase     bool
	SkipErrors bool
	// Eval switches to token mode: the first remaining argument is the
	// whole pipeline as one string, and the rest are ignored.
	Eval bool

	// Args is the remaining command line after the flags.
	Args []string
}

// ParseArgs scans the leading flags of args. An unknown word ends the
// scan and stays in Args for the pipeline grammar to reject or accept.
func ParseArgs(args []string) Options {
	var opts Options
	i := 0
scan:
	for ; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			opts.Help = true
		case "-V", "--version":
			opts.Version = true
		case "-v", "--verbose":
			opts.Verbose = true
		case "-d", "--dry-run":
			opts.DryRun = true
		case "-n", "--nocase":
			opts.Nocase = true
		case "-s", "--skip-errors":
			opts.SkipErrors = true
		case "-e", "--eval":
			opts.Eval = true
		default:
			break scan
		}
	}
	opts.Args = args[i:]
	return opts
}

// Env is the configuration read from the environment.
type Env struct {
	Nocase     bool
	SkipErrors bool
	LogLevel   string
	NoColor    bool
}

// LoadEnv reads a .env file when one is present and resolves the
// RP_-prefixed variables. A missing .env file is not an error.
func LoadEnv() Env {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("rp")
	v.AutomaticEnv()
	v.SetDefault("log_level", "info")

	return Env{
		Nocase:     v.GetBool("nocase"),
		SkipErrors: v.GetBool("skip_errors"),
		LogLevel:   v.GetString("log_level"),
		NoColor:    v.GetBool("no_color"),
	}
}

// Settings merges the flags with the environment defaults into the
// snapshot injected into the run context. Either side can switch a
// default on; flags never switch one off.
func (o Options) Settings(env Env) Settings {
	return Settings{
		Nocase:     o.Nocase || env.Nocase,
		SkipErrors: o.SkipErrors || env.SkipErrors,
	}
}
