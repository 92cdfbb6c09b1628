package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type pagerModel struct {
	err      error
	filename string
	encName  string
	noDetect bool
	viewport viewport.Model
	content  string
	detected string
	lineCnt  int
	ready    bool
	loaded   bool
}

type loadedMsg struct {
	err      error
	lines    []string
	detected string
}

func newPagerModel(filename, encName string, noDetect bool) *pagerModel {
	return &pagerModel{filename: filename, encName: encName, noDetect: noDetect}
}

func (m *pagerModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *pagerModel) loadFile() tea.Msg {
	r, err := newReader(m.filename, m.encName, m.noDetect)
	if err != nil {
		return loadedMsg{err: err}
	}
	defer r.Close()

	var lines []string
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loadedMsg{err: err}
		}
		lines = append(lines, line)
	}
	return loadedMsg{lines: lines, detected: r.CurrentEncoding().Name()}
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.lineCnt = len(msg.lines)
		m.detected = msg.detected
		m.content = strings.Join(msg.lines, "\n")
		m.loaded = true
		if m.ready {
			m.viewport.SetContent(m.content)
		}
		return m, nil

	case tea.WindowSizeMsg:
		const chromeHeight = 2 // title and status bars
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
			if m.loaded {
				m.viewport.SetContent(m.content)
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *pagerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if !m.ready || !m.loaded {
		return statusStyle.Render("loading...")
	}
	header := titleStyle.Render(fmt.Sprintf("%s  [%s]", m.filename, m.detected))
	footer := statusStyle.Render(fmt.Sprintf("%d lines · %3.0f%% · q to quit",
		m.lineCnt, m.viewport.ScrollPercent()*100))
	return header + "\n" + m.viewport.View() + "\n" + footer
}

func runInteractive(filename, encName string, noDetect bool) error {
	m := newPagerModel(filename, encName, noDetect)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
