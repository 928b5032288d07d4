package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/zvalue/codegen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sigStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	statePreview
)

type entry struct {
	pkg *codegen.Package
	typ *codegen.Type
	row row
}

type interactiveModel struct {
	entries  []entry
	visible  []int
	filter   textinput.Model
	preview  viewport.Model
	title    string
	selected int
	width    int
	height   int
	state    modelState
}

func newInteractiveModel(pkgs []*codegen.Package) *interactiveModel {
	m := &interactiveModel{state: stateBrowse}
	for _, pkg := range pkgs {
		g := codegen.NewGenerator(pkg)
		for _, t := range pkg.Types {
			m.entries = append(m.entries, entry{pkg: pkg, typ: t, row: describe(g, pkg, t)})
		}
	}

	m.filter = textinput.New()
	m.filter.Placeholder = "type name"
	m.filter.Prompt = "filter: "
	m.filter.Width = 40
	m.preview = viewport.New(80, 20)
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.row.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

// openPreview renders the package's generated file scrolled to the
// selected type's methods.
func (m *interactiveModel) openPreview() {
	e := m.entries[m.visible[m.selected]]
	m.title = e.row.pkg + "." + e.row.name

	src, err := codegen.Generate(e.pkg)
	if err != nil {
		m.preview.SetContent(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		m.state = statePreview
		return
	}

	code := string(src)
	m.preview.SetContent(code)
	offset := 0
	if i := strings.Index(code, " "+e.typ.Receiver()+") ValueSignature()"); i >= 0 {
		offset = max(strings.Count(code[:i], "\n")-1, 0)
	}
	m.preview.SetYOffset(offset)
	m.state = statePreview
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilter:
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.filter.Blur()
				m.state = stateBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd

		case statePreview:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "enter":
				m.state = stateBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
		case "/":
			m.state = stateFilter
			return m, m.filter.Focus()
		case "enter":
			if len(m.visible) > 0 {
				m.openPreview()
			}
		}
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	if m.state == statePreview {
		b.WriteString(titleStyle.Render("zvalue-gen"))
		b.WriteString(" ")
		b.WriteString(m.title)
		b.WriteString("\n\n")
		b.WriteString(m.preview.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
		return b.String()
	}

	b.WriteString(titleStyle.Render("zvalue-gen"))
	b.WriteString(fmt.Sprintf(" %d derived types\n\n", len(m.entries)))

	if len(m.entries) == 0 {
		b.WriteString("No types carry a //zvalue:derive directive.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	for n, i := range m.visible {
		e := m.entries[i]
		if n == m.selected {
			b.WriteString(selectedStyle.Render("> " + e.row.name + " " + e.row.kind + " " + e.row.sig))
		} else {
			b.WriteString("  " + nameStyle.Render(e.row.name) + " " + e.row.kind + " " + sigStyle.Render(e.row.sig))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • / filter • enter preview • q quit"))
	return b.String()
}

func runInteractive(pkgs []*codegen.Package) error {
	p := tea.NewProgram(newInteractiveModel(pkgs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
