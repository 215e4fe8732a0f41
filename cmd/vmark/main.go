package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mkrull/vmark/internal/app"
)

const usage = `Usage:
  vmark [flags]                 interactive shell
  vmark [flags] -c "<command>"  run one command and exit
  vmark [flags] serve           start the HTTP API
  vmark [flags] import <file>   import bookmarks from a YAML file
  vmark [flags] export <file>   export bookmarks to a YAML file

Flags:
`

func main() {
	flags := pflag.NewFlagSet("vmark", pflag.ContinueOnError)
	memory := flags.Bool("memory", false, "use the in-memory store instead of Redis")
	command := flags.StringP("command", "c", "", "run a single command and exit")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	a, err := app.New(*memory)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vmark:", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := run(a, *command, flags.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "vmark:", err)
		os.Exit(1)
	}
}

func run(a *app.App, command string, args []string) error {
	ctx := context.Background()

	if command != "" {
		return a.RunCommand(ctx, command)
	}

	if len(args) == 0 {
		return a.RunREPL(ctx)
	}

	switch args[0] {
	case "serve":
		return a.RunServe()
	case "import":
		if len(args) != 2 {
			return fmt.Errorf("import requires a file path")
		}
		return a.RunImport(ctx, args[1])
	case "export":
		if len(args) != 2 {
			return fmt.Errorf("export requires a file path")
		}
		return a.RunExport(ctx, args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
