package command

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/bookit/internal/model"
)

//go:embed completions/*.tmpl
var completionScripts embed.FS

// CompletionsCommand returns the completions command.
func CompletionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "completions",
		Usage: "print a shell completion script",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "shell type: bash, zsh, fish, powershell",
				Required: true,
			},
		},
		Action: printCompletions,
	}
}

func printCompletions(c *cli.Context) error {
	s := getSession(c)
	shell := strings.ToLower(c.String("type"))

	var script string
	switch shell {
	case "fish":
		out, err := c.App.ToFishCompletion()
		if err != nil {
			return fmt.Errorf("generate fish completion: %w", err)
		}
		script = out
	case "bash", "zsh", "powershell":
		out, err := renderCompletion(shell, c.App.Name)
		if err != nil {
			return err
		}
		script = out
	default:
		return model.Errorf(model.ErrInvalid, "Completion type '%s' not supported.", c.String("type"))
	}

	fmt.Fprint(s.stdout, script)
	return nil
}

// renderCompletion fills the embedded script for shell. The scripts call
// back into the binary with --generate-bash-completion.
func renderCompletion(shell, name string) (string, error) {
	tmpl, err := template.ParseFS(completionScripts, "completions/"+shell+".tmpl")
	if err != nil {
		return "", fmt.Errorf("load %s completion: %w", shell, err)
	}

	var b strings.Builder
	err = tmpl.Execute(&b, struct {
		Name string
		Func string
	}{
		Name: name,
		Func: strings.NewReplacer("-", "_", ".", "_").Replace(name),
	})
	if err != nil {
		return "", fmt.Errorf("render %s completion: %w", shell, err)
	}
	return b.String(), nil
}
