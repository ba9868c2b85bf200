package command

import (
	"bytes"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"

	"github.com/nikbrunner/bookit/internal/picker"
)

const twoBookmarks = `---
bookmarks:
  GitHub (bookit):
    url: "https://github.com/Nate-Wilkins/bookit"
    tags:
      - internet
      - browser
      - bookmarks
  GitHub (mallardscript):
    url: "https://github.com/Nate-Wilkins/mallardscript"
    tags:
      - duckyscript
      - security
      - keyboard
      - automation
`

// fakeRunner records edit commands instead of running them.
type fakeRunner struct {
	calls [][]string
	err   error
}

func (r *fakeRunner) Run(args []string) error {
	r.calls = append(r.calls, args)
	return r.err
}

// harness runs the app in process against a store in a temp directory.
type harness struct {
	t        *testing.T
	dir      *fs.Dir
	config   string
	settings string
	env      map[string]string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	runner   *fakeRunner
	opened   []string
	keys     []string // fed to the picker, then enter
}

// newHarness creates a store with the given content. An empty content
// leaves the store missing.
func newHarness(t *testing.T, content string) *harness {
	t.Helper()

	// Keep the caller's environment out of the settings.
	for _, key := range []string{"BOOKIT_EDIT_COMMAND", "BOOKIT_LOG_LEVEL", "BOOKIT_SUGGESTIONS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var ops []fs.PathOp
	if content != "" {
		ops = append(ops, fs.WithFile(".bookit", content))
	}
	dir := fs.NewDir(t, "bookit", ops...)

	return &harness{
		t:        t,
		dir:      dir,
		config:   dir.Join(".bookit"),
		settings: dir.Join("settings.yaml"),
		env:      map[string]string{"EDITOR": "nvim"},
		runner:   &fakeRunner{},
	}
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()

	app := App(
		WithEditRunner(h.runner),
		WithLookupEnv(func(key string) string { return h.env[key] }),
		WithOpener(func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		}),
		WithPickerRunner(h.pick),
	)
	app.Writer = &h.stdout
	app.ErrWriter = &h.stderr

	full := append([]string{"bookit", "--config", h.config, "--settings", h.settings}, args...)
	return app.Run(full)
}

// pick drives the picker with h.keys followed by enter.
func (h *harness) pick(p picker.Picker) (picker.Picker, error) {
	for _, k := range append(h.keys, "enter") {
		var msg tea.KeyMsg
		if k == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := p.Update(msg)
		p = m.(picker.Picker)
	}
	return p, nil
}

func (h *harness) writeSettings(content string) {
	h.t.Helper()
	assert.NilError(h.t, os.WriteFile(h.settings, []byte(content), 0644))
}

func (h *harness) storeContent() string {
	h.t.Helper()
	data, err := os.ReadFile(h.config)
	assert.NilError(h.t, err)
	return string(data)
}
