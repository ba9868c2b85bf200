package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bookit/internal/model"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("108"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// KeyMap defines the picker key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	url string
	err error
}

// Picker is a simple TUI for choosing one bookmark.
type Picker struct {
	entries   []model.Entry
	title     string
	keys      KeyMap
	cursor    int
	selected  bool
	cancelled bool
	status    string
	width     int
	height    int

	// copy writes to the system clipboard; replaced in tests.
	copy func(string) error
}

// New creates a new Picker over the given entries, shown in the given order.
func New(entries []model.Entry, title string) Picker {
	return Picker{
		entries: entries,
		title:   title,
		keys:    DefaultKeyMap(),
		cursor:  0,
		width:   80,
		height:  24,
		copy:    clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case copiedMsg:
		if msg.err != nil {
			p.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			p.status = fmt.Sprintf("Copied %s", msg.url)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Select):
			if len(p.entries) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case key.Matches(msg, p.keys.Down):
			if p.cursor < len(p.entries)-1 {
				p.cursor++
			}
			return p, nil

		case key.Matches(msg, p.keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case key.Matches(msg, p.keys.Copy):
			if len(p.entries) == 0 {
				return p, nil
			}
			return p, p.copyURL(p.entries[p.cursor].URL)
		}
	}

	return p, nil
}

func (p Picker) copyURL(url string) tea.Cmd {
	write := p.copy
	return func() tea.Msg {
		return copiedMsg{url: url, err: write(url)}
	}
}

// visibleRange returns the window of entries that fits the terminal height.
// Each entry takes two lines; header and footer take four more.
func (p Picker) visibleRange() (start, end int) {
	rows := (p.height - 4) / 2
	if rows < 1 {
		rows = 1
	}
	if len(p.entries) <= rows {
		return 0, len(p.entries)
	}

	start = p.cursor - rows/2
	if start < 0 {
		start = 0
	}
	end = start + rows
	if end > len(p.entries) {
		end = len(p.entries)
		start = end - rows
	}
	return start, end
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d bookmarks)", p.title, len(p.entries))))
	b.WriteString("\n\n")

	start, end := p.visibleRange()
	for i := start; i < end; i++ {
		e := p.entries[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		// Truncate before styling so escape codes are never cut
		line := style.Render(truncate(e.Name, p.width-2))
		if len(e.Tags) > 0 {
			room := p.width - 2 - utf8.RuneCountInString(e.Name) - 3
			if room > len(ellipsis) {
				line += " " + tagStyle.Render("["+truncate(strings.Join(e.Tags, ","), room)+"]")
			}
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, line))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(truncate(e.URL, p.width-3))))
	}

	// Footer
	b.WriteString("\n")
	if p.status != "" {
		b.WriteString(statusStyle.Render(p.status))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("j/k: move  Enter: open  y: copy URL  q/Esc: cancel"))

	return b.String()
}

// SelectedEntry returns the chosen bookmark. ok is false when the picker was
// cancelled or closed without a choice.
func (p Picker) SelectedEntry() (entry model.Entry, ok bool) {
	if p.cancelled || !p.selected {
		return model.Entry{}, false
	}
	if p.cursor < len(p.entries) {
		return p.entries[p.cursor], true
	}
	return model.Entry{}, false
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
