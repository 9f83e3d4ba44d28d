// Package chooser asks the user to pick one of a journal's categories, either
// with an interactive list on a terminal or by typing the category id.
package chooser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"journalrank/internal/scrapers/scimago"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrCancelled = errors.New("category selection cancelled")

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// Model is the bubbletea model of the category list.
type Model struct {
	title      string
	categories []scimago.Category
	cursor     int
	chosen     bool
	cancelled  bool
	keys       keyMap
}

func New(title string, categories []scimago.Category) Model {
	return Model{
		title:      title,
		categories: categories,
		keys:       defaultKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.categories) == 0 {
			m.cancelled = true
		} else {
			m.chosen = true
		}
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, c := range m.categories {
		line := fmt.Sprintf("%s (%s)", c.Name, c.Id)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"%s/%s move • %s • %s",
		m.keys.Up.Help().Key,
		m.keys.Down.Help().Key,
		m.keys.Select.Help().Key+" "+m.keys.Select.Help().Desc,
		m.keys.Cancel.Help().Key+" "+m.keys.Cancel.Help().Desc,
	)))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected category once the user confirmed a selection.
func (m Model) Chosen() (scimago.Category, bool) {
	if !m.chosen || m.cancelled {
		return scimago.Category{}, false
	}
	return m.categories[m.cursor], true
}

// Choose runs the interactive list on the given terminal streams.
func Choose(ctx context.Context, in io.Reader, out io.Writer, title string, categories []scimago.Category) (scimago.Category, error) {
	program := tea.NewProgram(
		New(title, categories),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return scimago.Category{}, fmt.Errorf("run chooser: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return scimago.Category{}, ErrCancelled
	}
	chosen, ok := model.Chosen()
	if !ok {
		return scimago.Category{}, ErrCancelled
	}
	return chosen, nil
}

// PromptId reads a category id from in. Ids that are not listed are accepted
// as long as they are numeric, since a journal may be looked up in any category.
func PromptId(in io.Reader, out io.Writer, categories []scimago.Category) (scimago.Category, error) {
	fmt.Fprint(out, "\nChoose journal category: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return scimago.Category{}, fmt.Errorf("read category id: %w", err)
		}
		return scimago.Category{}, ErrCancelled
	}
	id := strings.TrimSpace(scanner.Text())
	for _, c := range categories {
		if c.Id == id {
			return c, nil
		}
	}
	if _, err := strconv.Atoi(id); err != nil {
		return scimago.Category{}, fmt.Errorf("%q is not a category id", id)
	}
	return scimago.Category{Id: id}, nil
}
