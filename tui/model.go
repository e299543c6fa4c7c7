// Package tui is an interactive terminal editor for field mappings:
// source classes on the left, backend fields on the right, associations
// drawn between them with the keyboard.
package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/oestevezr/mapstruct"
)

type column int

const (
	columnSource column = iota
	columnTarget
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Select  key.Binding
	Connect key.Binding
	AutoMap key.Binding
	Unmap   key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Clear   key.Binding
	Fold    key.Binding
	Unfold  key.Binding
	Export  key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch column")),
		Select:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Connect: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "connect")),
		AutoMap: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "automap")),
		Unmap:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "unmap")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Fold:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "fold class")),
		Unfold:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "unfold class")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Select, k.Connect, k.AutoMap, k.Undo, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch, k.Fold, k.Unfold},
		{k.Select, k.Connect, k.AutoMap, k.Unmap, k.Clear},
		{k.Undo, k.Redo, k.Export, k.Quit},
	}
}

// Options configure the mapping editor.
type Options struct {
	Catalog *mapstruct.Catalog
	Store   *mapstruct.Store
	Matcher *mapstruct.Matcher

	DocumentID  string
	BackendType string
	TrxName     string

	// ExportPath is where the e key writes the transformed document.
	ExportPath string
}

// Model is the bubbletea model for the mapping editor.
type Model struct {
	catalog *mapstruct.Catalog
	store   *mapstruct.Store
	matcher *mapstruct.Matcher

	docID       string
	backendType string
	trxName     string
	exportPath  string

	keys keyMap
	help help.Model

	focus     column
	sourceIdx int
	targetIdx int
	collapsed map[string]bool

	pendingSources []mapstruct.FieldID
	pendingTargets []mapstruct.FieldID

	width   int
	height  int
	message string
	err     error
}

// NewModel creates the editor model over an existing store and catalog.
func NewModel(opts Options) Model {
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = "mapping.json"
	}

	store := opts.Store
	if store == nil {
		store = mapstruct.NewStore()
	}

	matcher := opts.Matcher
	if matcher == nil {
		matcher = mapstruct.NewMatcher()
	}

	return Model{
		catalog:     opts.Catalog,
		store:       store,
		matcher:     matcher,
		docID:       opts.DocumentID,
		backendType: opts.BackendType,
		trxName:     opts.TrxName,
		exportPath:  exportPath,
		keys:        defaultKeyMap(),
		help:        help.New(),
		collapsed:   make(map[string]bool),
	}
}

// Run starts the editor. It refuses to run without a terminal.
func Run(opts Options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("tui: interactive mapping needs a terminal")
	}

	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()

	return err
}

// sourceRow is one line of the left column: a class header when field
// is nil, otherwise one field of that class.
type sourceRow struct {
	class string
	field *mapstruct.Field
}

func (m Model) sourceRows() []sourceRow {
	var rows []sourceRow

	for i := range m.catalog.Source {
		g := &m.catalog.Source[i]
		rows = append(rows, sourceRow{class: g.Name})

		if m.collapsed[g.Name] {
			continue
		}

		for j := range g.Fields {
			rows = append(rows, sourceRow{class: g.Name, field: &g.Fields[j]})
		}
	}

	return rows
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		if m.focus == columnSource {
			m.focus = columnTarget
		} else {
			m.focus = columnSource
		}

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Fold):
		m.setCollapsed(true)

	case key.Matches(msg, m.keys.Unfold):
		m.setCollapsed(false)

	case key.Matches(msg, m.keys.Select):
		m.toggleSelection()

	case key.Matches(msg, m.keys.Connect):
		m.connect()

	case key.Matches(msg, m.keys.AutoMap):
		created, err := mapstruct.AutoMap(m.store, m.catalog, m.matcher)
		if err != nil {
			m.err = err
		} else {
			m.message = fmt.Sprintf("auto-mapped %d associations", len(created))
		}

	case key.Matches(msg, m.keys.Unmap):
		m.unmapUnderCursor()

	case key.Matches(msg, m.keys.Undo):
		if m.store.Undo() {
			m.message = "undone"
		} else {
			m.message = "nothing to undo"
		}

	case key.Matches(msg, m.keys.Redo):
		if m.store.Redo() {
			m.message = "redone"
		} else {
			m.message = "nothing to redo"
		}

	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
		m.pendingSources = nil
		m.pendingTargets = nil
		m.message = "cleared all associations"

	case key.Matches(msg, m.keys.Export):
		m.export()
	}

	return m, nil
}

func (m *Model) move(delta int) {
	if m.focus == columnSource {
		max := len(m.sourceRows())
		m.sourceIdx = clamp(m.sourceIdx+delta, 0, max-1)
	} else {
		m.targetIdx = clamp(m.targetIdx+delta, 0, len(m.catalog.Target)-1)
	}
}

func (m *Model) setCollapsed(collapsed bool) {
	if m.focus != columnSource {
		return
	}

	rows := m.sourceRows()
	if m.sourceIdx >= len(rows) {
		return
	}

	m.collapsed[rows[m.sourceIdx].class] = collapsed
	if max := len(m.sourceRows()); m.sourceIdx >= max {
		m.sourceIdx = max - 1
	}
}

func (m *Model) toggleSelection() {
	if m.focus == columnSource {
		rows := m.sourceRows()
		if m.sourceIdx >= len(rows) || rows[m.sourceIdx].field == nil {
			return
		}

		m.pendingSources = toggle(m.pendingSources, rows[m.sourceIdx].field.ID())
		return
	}

	if m.targetIdx < len(m.catalog.Target) {
		m.pendingTargets = toggle(m.pendingTargets, m.catalog.Target[m.targetIdx].ID())
	}
}

func (m *Model) connect() {
	if len(m.pendingSources) == 0 || len(m.pendingTargets) == 0 {
		m.message = "select at least one field on each side (space)"
		return
	}

	var warnings []string
	for _, src := range m.pendingSources {
		for _, tgt := range m.pendingTargets {
			if w := mapstruct.DirectionWarning(src.Name, tgt.Owner); w != "" {
				warnings = append(warnings, w)
			}
		}
	}

	assoc, err := m.store.Create(m.pendingSources, m.pendingTargets, warnings...)
	if err != nil {
		m.err = err
		return
	}

	m.pendingSources = nil
	m.pendingTargets = nil
	m.message = fmt.Sprintf("created %s (%s)", assoc.ID, assoc.Cardinality())

	if len(warnings) > 0 {
		m.message += " with direction warnings"
	}
}

// unmapUnderCursor removes the focused field from every association it
// belongs to on its side.
func (m *Model) unmapUnderCursor() {
	var (
		id   mapstruct.FieldID
		side mapstruct.Side
	)

	if m.focus == columnSource {
		rows := m.sourceRows()
		if m.sourceIdx >= len(rows) || rows[m.sourceIdx].field == nil {
			return
		}

		id, side = rows[m.sourceIdx].field.ID(), mapstruct.SideSource
	} else {
		if m.targetIdx >= len(m.catalog.Target) {
			return
		}

		id, side = m.catalog.Target[m.targetIdx].ID(), mapstruct.SideTarget
	}

	assocs := m.store.Query(id, side)
	if len(assocs) == 0 {
		m.message = "field is not mapped"
		return
	}

	for _, a := range assocs {
		if err := m.store.RemoveField(a.ID, side, id); err != nil {
			m.err = err
			return
		}
	}

	m.message = fmt.Sprintf("removed %s from %d associations", id, len(assocs))
}

func (m *Model) export() {
	doc := mapstruct.Transform(m.catalog, m.store, m.docID, m.backendType, m.trxName)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		m.err = err
		return
	}

	if err := os.WriteFile(m.exportPath, data, 0o644); err != nil {
		m.err = err
		return
	}

	m.message = fmt.Sprintf("exported to %s", m.exportPath)
}

func (m Model) View() string {
	mapped := 0
	sources := m.catalog.SourceFields()
	for _, f := range sources {
		if len(m.store.Query(f.ID(), mapstruct.SideSource)) > 0 {
			mapped++
		}
	}

	title := titleStyle.Render("mapstruct") +
		dimStyle.Render(fmt.Sprintf("  %d/%d fields mapped, %d associations", mapped, len(sources), m.store.Len()))

	left := m.renderSourceColumn()
	right := m.renderTargetColumn()
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	status := ""
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	case m.message != "":
		status = successStyle.Render(m.message)
	}

	helpView := helpStyle.Render(m.help.View(m.keys))

	return strings.Join([]string{title, "", columns, status, helpView}, "\n")
}

func (m Model) renderSourceColumn() string {
	var b strings.Builder

	b.WriteString(classStyle.Render("DTO fields"))
	b.WriteString("\n")

	rows := m.sourceRows()
	for i, row := range rows {
		cursor := m.focus == columnSource && i == m.sourceIdx

		if row.field == nil {
			marker := "▾ "
			if m.collapsed[row.class] {
				marker = "▸ "
			}

			b.WriteString(m.renderRow(cursor, classStyle.Render(marker+row.class)))
			continue
		}

		b.WriteString(m.renderRow(cursor, m.renderField(*row.field, mapstruct.SideSource, m.pendingSources)))
	}

	style := columnStyle
	if m.focus == columnSource {
		style = focusedColumnStyle
	}

	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) renderTargetColumn() string {
	var b strings.Builder

	b.WriteString(classStyle.Render("DAO fields"))
	b.WriteString("\n")

	for i, f := range m.catalog.Target {
		cursor := m.focus == columnTarget && i == m.targetIdx
		b.WriteString(m.renderRow(cursor, m.renderField(f, mapstruct.SideTarget, m.pendingTargets)))
	}

	style := columnStyle
	if m.focus == columnTarget {
		style = focusedColumnStyle
	}

	return style.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m Model) renderRow(cursor bool, content string) string {
	if cursor {
		return selectedStyle.Render("> ") + content + "\n"
	}

	return "  " + content + "\n"
}

func (m Model) renderField(f mapstruct.Field, side mapstruct.Side, pending []mapstruct.FieldID) string {
	label := f.Name
	if side == mapstruct.SideTarget {
		label = f.Owner + "." + f.Name
	}

	switch {
	case slices.Contains(pending, f.ID()):
		return pendingStyle.Render("+ " + label)
	case len(m.store.Query(f.ID(), side)) > 0:
		return mappedStyle.Render("● " + label)
	default:
		return normalStyle.Render("○ " + label)
	}
}

func toggle(ids []mapstruct.FieldID, id mapstruct.FieldID) []mapstruct.FieldID {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}

	return append(ids, id)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}

	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
