package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/trailhead/engine"
	"github.com/nathoo/trailhead/engine/parser"
	"github.com/nathoo/trailhead/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Trailhead TUI.
type Model struct {
	engine *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *commandHistory

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	savePath string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine, saving to savePath.
func New(eng *engine.Engine, savePath string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:   eng,
		input:    ti,
		history:  newCommandHistory(100),
		savePath: savePath,
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, savePath string) error {
	m := New(eng, savePath)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if title := m.engine.World.Game.Title; title != "" {
			lines = append(lines, title, "")
		}
		lines = append(lines, m.engine.Start()...)
		if !m.engine.InEncounter() {
			lines = append(lines, m.engine.Describe()...)
		}
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.older(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.newer(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.record(input, !m.engine.InEncounter())

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		return m, nil
	}

	output, quit := m.dispatch(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: output})
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// dispatch runs one player command and returns its output followed by the
// location render. The bool is true when the player asked to quit.
func (m *Model) dispatch(input string) ([]string, bool) {
	if m.engine.InEncounter() {
		output := m.engine.Step(input).Output
		if !m.engine.InEncounter() {
			output = append(output, "")
			output = append(output, m.engine.Describe()...)
		}
		return output, false
	}

	var output []string
	switch parser.Parse(input).Verb {
	case "quit":
		return []string{"Thank you for playing!"}, true
	case "save":
		output = m.cmdSave()
	case "load":
		output = m.cmdLoad()
	default:
		result := m.engine.Step(input)
		output = result.Output
		if m.trace {
			output = append(output, formatTrace(result)...)
		}
	}

	output = append(output, "")
	output = append(output, m.engine.Describe()...)
	return output, false
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordwrap.String(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindLocation:
		return styleLocation.Render(line)
	case kindQuest:
		return styleQuest.Render(line)
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindSuccess:
		return styleSuccess.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches slash commands.
func (m *Model) handleMeta(input string) []string {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/help":
		return m.cmdHelp()

	case "/state":
		return m.cmdState()

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}
		}
		return []string{"Trace output disabled."}

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}
	}
}

func (m *Model) cmdSave() []string {
	if err := m.engine.SaveTo(m.savePath); err != nil {
		return []string{fmt.Sprintf("Failed to save game: %v", err)}
	}
	return []string{"Game saved."}
}

func (m *Model) cmdLoad() []string {
	known, err := m.engine.LoadFrom(m.savePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{"Failed to load game: no saved game found."}
		}
		return []string{fmt.Sprintf("Failed to load game: %v", err)}
	}
	output := []string{"Game loaded."}
	if !known {
		output = append(output, fmt.Sprintf("(The saved location %q is not on this map.)", m.engine.Player.Location))
	}
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"Game commands:",
		"  go <dir>       Move (or just type n/s/e/w/u/d)",
		"  take <item>    Pick something up",
		"  inventory (i)  Check what you're carrying",
		"  look (l)       Describe the location",
		"  save / load    Save or restore your progress",
		"  quit           Leave the game",
		"",
		"Debug:",
		"  /state         Dump the player state",
		"  /trace         Toggle effect trace output",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	p := m.engine.Player
	return []string{
		fmt.Sprintf("Name: %s", p.Name),
		fmt.Sprintf("Location: %s", p.Location),
		fmt.Sprintf("Inventory: %v", p.Inventory),
		fmt.Sprintf("Completed quests: %v", p.CompletedQuests),
	}
}

func formatTrace(result types.Result) []string {
	var lines []string
	if len(result.Effects) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Params))
		}
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
