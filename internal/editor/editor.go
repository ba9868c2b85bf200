// Package editor runs the external command used to edit a bookmark in
// place. The command is a template that sees these placeholders besides the
// regular environment:
//
//	$BOOKIT_CONFIG_PATH        canonical path of the store
//	$BOOKIT_BOOKMARK_NAME      name of the bookmark
//	$VIM_BOOKIT_BOOKMARK_NAME  name with "/" escaped for a vim search
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// FallbackEditor is used when $EDITOR is unset.
const FallbackEditor = "vi"

// ErrEmptyCommand is returned when the template expands to nothing.
var ErrEmptyCommand = errors.New("edit command is empty")

// Invocation describes one edit of one bookmark.
type Invocation struct {
	Template   string
	ConfigPath string
	Name       string
	// LookupEnv resolves variables that are not placeholders. Defaults to os.Getenv.
	LookupEnv func(string) string
}

// Expand substitutes placeholders and environment variables in the template.
func (inv Invocation) Expand() string {
	lookup := inv.LookupEnv
	if lookup == nil {
		lookup = os.Getenv
	}

	return os.Expand(inv.Template, func(key string) string {
		switch key {
		case "BOOKIT_CONFIG_PATH":
			return inv.ConfigPath
		case "BOOKIT_BOOKMARK_NAME":
			return inv.Name
		case "VIM_BOOKIT_BOOKMARK_NAME":
			return strings.ReplaceAll(inv.Name, "/", `\/`)
		case "EDITOR":
			if v := lookup(key); v != "" {
				return v
			}
			return FallbackEditor
		}
		return lookup(key)
	})
}

// Args expands the template and splits it into words using shell quoting rules.
func (inv Invocation) Args() ([]string, error) {
	args, err := shellquote.Split(inv.Expand())
	if err != nil {
		return nil, fmt.Errorf("split edit command: %w", err)
	}
	if len(args) == 0 || args[0] == "" {
		return nil, ErrEmptyCommand
	}
	return args, nil
}

// CanonicalPath resolves symlinks and returns an absolute path.
func CanonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// Runner runs an edit command and blocks until it exits.
type Runner interface {
	Run(args []string) error
}

// ExecRunner runs commands as child processes attached to the given streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process's own terminal.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts the command and waits for it. A launch failure or a non-zero
// exit status is an error.
func (r *ExecRunner) Run(args []string) error {
	if len(args) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("unable to edit file: %w", err)
	}
	return nil
}

// Edit builds the command line for inv and runs it.
func Edit(runner Runner, inv Invocation, logger *slog.Logger) error {
	logger.Info("edit command", "template", inv.Template)

	args, err := inv.Args()
	if err != nil {
		return err
	}
	logger.Info("edit command expanded", "args", args, "quoted", shellquote.Join(args...))

	return runner.Run(args)
}
