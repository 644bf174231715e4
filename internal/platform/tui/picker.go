package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// PickerKeyMap defines the key bindings of the board picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the help line.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPickerKeyMap returns the default picker bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardRow describes one registered board in the picker.
type BoardRow struct {
	ID        string
	Title     string
	Size      string
	Pieces    int
	Obstacles int
	Breakable int
}

// BoardRows lists every registered board with its configured layout.
// Boards whose config cannot be loaded are listed without details.
func BoardRows(customPath string) []BoardRow {
	games := registry.List()
	rows := make([]BoardRow, 0, len(games))
	for _, g := range games {
		row := BoardRow{ID: g.ID, Title: g.Title, Size: "?"}
		if cfg, err := config.Load(g.ID, customPath); err == nil {
			row.Size = fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height)
			row.Pieces = len(cfg.Pieces)
			if overrides, err := cfg.Overrides(); err == nil {
				for _, o := range overrides {
					switch o.Kind {
					case match3.TileObstacle:
						row.Obstacles++
					case match3.TileBreakable:
						row.Breakable++
					}
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// PickerModel is the Bubble Tea model for choosing a board.
type PickerModel struct {
	rows     []BoardRow
	table    table.Model
	help     help.Model
	keys     PickerKeyMap
	width    int
	height   int
	selected string
	quitting bool
}

// NewPickerModel creates a picker over the registered boards.
func NewPickerModel(cfg core.RuntimeConfig) PickerModel {
	rows := BoardRows(cfg.ConfigPath)

	columns := []table.Column{
		{Title: "Board", Width: 12},
		{Title: "ID", Width: 10},
		{Title: "Size", Width: 6},
		{Title: "Colors", Width: 6},
		{Title: "Rocks", Width: 5},
		{Title: "Glass", Width: 5},
	}
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row{
			r.Title, r.ID, r.Size,
			strconv.Itoa(r.Pieces), strconv.Itoa(r.Obstacles), strconv.Itoa(r.Breakable),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, max(cfg.ScreenH-8, 3))),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return PickerModel{
		rows:   rows,
		table:  t,
		help:   help.New(),
		keys:   DefaultPickerKeyMap(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			if c := m.table.Cursor(); c >= 0 && c < len(m.rows) {
				m.selected = m.rows[c].ID
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M A T C H  3"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boxStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// Selected returns the chosen board ID, or empty if none was chosen.
func (m PickerModel) Selected() string {
	return m.selected
}

// centerText centers each line of a block within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunPicker shows the board picker and returns the chosen board ID.
// An empty ID means the user quit.
func RunPicker(cfg core.RuntimeConfig) (string, error) {
	p := tea.NewProgram(NewPickerModel(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
