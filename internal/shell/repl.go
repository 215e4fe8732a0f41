package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/mkrull/vmark/internal/logger"
	"github.com/mkrull/vmark/internal/utils"
	"github.com/mkrull/vmark/internal/vfs"
)

var replVerbs = []string{
	"cd", "pwd", "ls", "list", "show", "star", "tag", "untag",
	"mv", "cp", "recent", "add", "rm", "visit", "help", "exit",
}

// REPL runs the interactive loop around a session.
type REPL struct {
	session     *Session
	log         logger.Logger
	historyFile string
}

// NewREPL wraps a session with readline-style input.
func NewREPL(session *Session, log logger.Logger, historyFile string) *REPL {
	return &REPL{session: session, log: log, historyFile: historyFile}
}

// Run reads and evaluates commands until exit or EOF. Navigation errors
// are printed and the loop continues; only a failed repository read during
// startup or a terminal error ends the session.
func (r *REPL) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer utils.Close(line)

	line.SetCtrlCAborts(true)
	line.SetCompleter(r.complete)

	if r.historyFile != "" {
		if f, err := os.Open(r.historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			utils.Close(f)
		}
	}

	fmt.Println("vmark - bookmark shell. Type 'help' for commands.")

	for {
		input, err := line.Prompt("vmark:" + r.session.Path() + "> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		out, err := r.session.Eval(ctx, input)
		if errors.Is(err, errExit) {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if out != "" {
			fmt.Print(out)
		}
	}

	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			_, _ = line.WriteHistory(f)
			utils.Close(f)
		} else {
			r.log.Warn("failed to write history file",
				logger.String("file", r.historyFile),
				logger.Error(err))
		}
	}
	return nil
}

// complete offers verb completion at the start of the line and top-level
// virtual directories after "cd ".
func (r *REPL) complete(line string) []string {
	if rest, ok := strings.CutPrefix(line, "cd /"); ok {
		var out []string
		for _, name := range topLevelNames() {
			if strings.HasPrefix(name, rest) {
				out = append(out, "cd /"+name)
			}
		}
		return out
	}

	var out []string
	for _, v := range replVerbs {
		if strings.HasPrefix(v, line) {
			out = append(out, v)
		}
	}
	return out
}

func topLevelNames() []string {
	names := append([]string{}, vfs.CollectionNames()...)
	return append(names, "tags", "domains", "recent", "bookmarks")
}
