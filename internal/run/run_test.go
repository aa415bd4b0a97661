package run

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lguimbarda/rp/internal/config"
	"github.com/lguimbarda/rp/internal/rperr"
)

func runOut(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	r := &Runner{In: strings.NewReader(stdin), Out: &out, Log: zerolog.Nop()}
	if err := r.Run(context.Background(), args); err != nil {
		t.Fatalf("run %q: %v", args, err)
	}
	return out.String()
}

func TestRunPipelines(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"empty pipeline echoes", "hi\n", nil, "hi\n"},
		{"stdin explicit", "x\n", []string{":in"}, "x\n"},
		{"stdin default input", "b\na\n", []string{":sort"}, "a\nb\n"},
		{"of to stdout", "", []string{":of", "a", "b", ":upper"}, "A\nB\n"},
		{"gen exclusive", "", []string{":gen", "1,4"}, "1\n2\n3\n"},
		{"gen inclusive", "", []string{":gen", "1,=3"}, "1\n2\n3\n"},
		{"gen descending", "", []string{":gen", "0,10,-2"}, "9\n7\n5\n3\n1\n"},
		{"gen format", "", []string{":gen", "26,=26", "{:04x}"}, "001a\n"},
		{"gen unbounded limit", "", []string{":gen", "5", ":limit", "3"}, "5\n6\n7\n"},
		{"repeat counted", "", []string{":repeat", "x", "3"}, "x\nx\nx\n"},
		{"repeat forever limit", "", []string{":repeat", "y", ":limit", "2"}, "y\ny\n"},
		{"join all", "", []string{":of", "a", "b", "c", ":join", "-"}, "a-b-c\n"},
		{"count", "", []string{":of", "a", "b", ":count"}, "2\n"},
		{"take num", "", []string{":of", "1", "x", "2", ":take", "num"}, "1\n2\n"},
		{"chained ops", "", []string{":of", "b", "a", "b", ":uniq", ":sort", ":join", "+"}, "a+b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runOut(t, tt.stdin, tt.args...); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		got := runOut(t, "", "-h")
		if !strings.Contains(got, "Usage: rp") || !strings.Contains(got, "Exit codes:") {
			t.Fatalf("full help truncated:\n%s", got)
		}
	})
	t.Run("help topic", func(t *testing.T) {
		got := runOut(t, "", "-h", "op")
		if !strings.Contains(got, ":replace") {
			t.Fatalf("op help missing operators:\n%s", got)
		}
		if strings.Contains(got, "Exit codes:") {
			t.Fatalf("op help leaked other sections:\n%s", got)
		}
	})
	t.Run("version", func(t *testing.T) {
		got := runOut(t, "", "-V")
		if !strings.HasPrefix(got, "rp ") || !strings.HasSuffix(got, ")\n") {
			t.Fatalf("got %q, want version line", got)
		}
	})
}

func TestRunFlags(t *testing.T) {
	t.Run("dry run produces nothing", func(t *testing.T) {
		if got := runOut(t, "", "-d", ":of", "a"); got != "" {
			t.Fatalf("got %q, want no output", got)
		}
	})
	t.Run("nocase flag", func(t *testing.T) {
		if got := runOut(t, "", "-n", ":of", "A", "a", ":uniq"); got != "A\n" {
			t.Fatalf("got %q, want %q", got, "A\n")
		}
	})
	t.Run("nocase env", func(t *testing.T) {
		var out bytes.Buffer
		r := &Runner{Out: &out, Log: zerolog.Nop(), Env: config.Env{Nocase: true}}
		if err := r.Run(context.Background(), []string{":of", "A", "a", ":uniq"}); err != nil {
			t.Fatalf("run: %v", err)
		}
		if out.String() != "A\n" {
			t.Fatalf("got %q, want %q", out.String(), "A\n")
		}
	})
	t.Run("eval", func(t *testing.T) {
		if got := runOut(t, "", "-e", ":of a b :join -"); got != "a-b\n" {
			t.Fatalf("got %q, want %q", got, "a-b\n")
		}
	})
	t.Run("eval quoted", func(t *testing.T) {
		if got := runOut(t, "", "-e", ":of 'a b' :upper"); got != "A B\n" {
			t.Fatalf("got %q, want %q", got, "A B\n")
		}
	})
	t.Run("eval ignores extra argv", func(t *testing.T) {
		if got := runOut(t, "", "-e", ":of a", "leftover"); got != "a\n" {
			t.Fatalf("got %q, want %q", got, "a\n")
		}
	})
}

func TestRunVerbose(t *testing.T) {
	var out, logs bytes.Buffer
	r := &Runner{In: strings.NewReader(""), Out: &out, Log: zerolog.New(&logs)}
	if err := r.Run(context.Background(), []string{"-v", ":of", "a"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "a\n" {
		t.Fatalf("got %q, want %q", out.String(), "a\n")
	}
	text := logs.String()
	for _, want := range []string{"pipeline parsed", `"input":":of \"a\""`, "run finished", `"items":1`} {
		if !strings.Contains(text, want) {
			t.Fatalf("verbose log missing %q:\n%s", want, text)
		}
	}
}

func TestRunErrors(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent.txt")
	tests := []struct {
		name string
		args []string
		kind rperr.Kind
	}{
		{"unknown args", []string{"bogus"}, rperr.UnknownArgs},
		{"bad gen range", []string{":gen", "x"}, rperr.ArgParse},
		{"dry run still parses", []string{"-d", "bogus"}, rperr.UnknownArgs},
		{"eval missing token", []string{"-e"}, rperr.MissingArg},
		{"eval bad quote", []string{"-e", ":of 'a"}, rperr.ParseToken},
		{"missing file", []string{":file", absent}, rperr.ReadFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Runner{In: strings.NewReader(""), Out: &bytes.Buffer{}, Log: zerolog.Nop()}
			err := r.Run(context.Background(), tt.args)
			if err == nil {
				t.Fatalf("run %q: no error", tt.args)
			}
			if kind, ok := rperr.KindOf(err); !ok || kind != tt.kind {
				t.Fatalf("got %v, want kind %v", err, tt.kind)
			}
		})
	}
}

func TestRunEvalMissingToken(t *testing.T) {
	r := &Runner{Out: &bytes.Buffer{}, Log: zerolog.Nop()}
	err := r.Run(context.Background(), []string{"-e"})
	want := rperr.MissingArgErr("--eval", "token").Error()
	if err == nil || err.Error() != want {
		t.Fatalf("got %v, want %q", err, want)
	}
}

func TestRunSkipErrors(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent.txt")
	t.Run("flag drops the error", func(t *testing.T) {
		if got := runOut(t, "", "-s", ":file", absent); got != "" {
			t.Fatalf("got %q, want no output", got)
		}
	})
	t.Run("count sees no items", func(t *testing.T) {
		if got := runOut(t, "", "-s", ":file", absent, ":count"); got != "0\n" {
			t.Fatalf("got %q, want %q", got, "0\n")
		}
	})
	t.Run("env switch", func(t *testing.T) {
		var out bytes.Buffer
		r := &Runner{Out: &out, Log: zerolog.Nop(), Env: config.Env{SkipErrors: true}}
		if err := r.Run(context.Background(), []string{":file", absent, ":count"}); err != nil {
			t.Fatalf("run: %v", err)
		}
		if out.String() != "0\n" {
			t.Fatalf("got %q, want %q", out.String(), "0\n")
		}
	})
}

func TestRunFileToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("x\ny\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	read := func() string {
		t.Helper()
		b, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}

	runOut(t, "", ":file", src, ":to", "file", dst)
	if got := read(); got != "x\ny\n" {
		t.Fatalf("got %q, want %q", got, "x\ny\n")
	}

	runOut(t, "", ":file", src, ":to", "file", dst, "append")
	if got := read(); got != "x\ny\nx\ny\n" {
		t.Fatalf("append: got %q, want %q", got, "x\ny\nx\ny\n")
	}

	runOut(t, "", ":of", "a", ":to", "file", dst)
	if got := read(); got != "a\n" {
		t.Fatalf("truncate: got %q, want %q", got, "a\n")
	}
}

func TestRunFileCrlf(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.txt")
	runOut(t, "", ":of", "a", "b", ":to", "file", dst, "crlf")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "a\r\nb\r\n" {
		t.Fatalf("got %q, want %q", b, "a\r\nb\r\n")
	}
}

func TestRunFileGlob(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"a1.txt": "1\n", "a2.txt": "2\n", "b.txt": "x\n"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := runOut(t, "", ":file", filepath.Join(dir, "a*.txt"))
	if got != "1\n2\n" {
		t.Fatalf("got %q, want %q", got, "1\n2\n")
	}
}
