package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/text"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	cpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	bytesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inputMode int

const (
	modeText inputMode = iota
	modeHex
)

func (m inputMode) String() string {
	if m == modeHex {
		return "hex"
	}
	return "text"
}

type interactiveModel struct {
	err     error
	session *session
	rows    []charRow
	input   textinput.Model
	size    int
	mode    inputMode
}

func newInteractiveModel(s *session) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type text to encode"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{session: s, input: ti, mode: modeText}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			if m.mode == modeText {
				m.mode = modeHex
				m.input.Placeholder = "hex bytes, e.g. f0 9f 98 80"
			} else {
				m.mode = modeText
				m.input.Placeholder = "type text to encode"
			}
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh recomputes the dump for the current input.
func (m *interactiveModel) refresh() {
	m.rows, m.err, m.size = nil, nil, 0
	value := m.input.Value()
	if value == "" {
		return
	}

	switch m.mode {
	case modeText:
		m.size, m.err = codec.CalcString(text.FromString(value))
		if m.err != nil {
			return
		}
		m.rows, m.err = m.session.encode(runesOf(value))

	case modeHex:
		data, err := parseHex(value)
		if err != nil {
			m.err = err
			return
		}
		m.size = len(data)
		m.rows, m.err = m.session.decode(data)
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("xutf8 inspector"))
	b.WriteString(" ")
	b.WriteString(modeStyle.Render(" " + m.mode.String() + " "))
	b.WriteString(" backend: ")
	b.WriteString(m.session.backend)
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for _, r := range m.rows {
		b.WriteString(fmt.Sprintf("%6d  ", r.offset))
		b.WriteString(cpStyle.Render(fmt.Sprintf("%-10s", formatCodePoint(r.cp))))
		b.WriteString(fmt.Sprintf("  %d  ", len(r.bytes)))
		b.WriteString(bytesStyle.Render(fmt.Sprintf("% X", r.bytes)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if len(m.rows) > 0 {
		b.WriteString(resultStyle.Render(fmt.Sprintf("%d char(s), %d byte(s)", len(m.rows), m.size)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab text/hex • esc quit"))
	return b.String()
}

func runInteractive(backend string) error {
	ctx := context.Background()
	s, err := newSession(ctx, backend)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newInteractiveModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}
