package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// view distinguishes the table picker from the row browser.
type view int

const (
	viewTables view = iota
	viewRows
)

type browserModel struct {
	db       *jetdb.Handle
	view     view
	tables   table.Model
	rows     table.Model
	selected string
	err      error
}

func newModel(db *jetdb.Handle) browserModel {
	names := db.Tables()

	cols := []table.Column{{Title: "Table", Width: 40}}
	trows := make([]table.Row, len(names))
	for i, name := range names {
		trows[i] = table.Row{name}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(len(trows)+1),
	)

	return browserModel{db: db, view: viewTables, tables: t}
}

func (m browserModel) Init() tea.Cmd { return nil }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.tables.SetWidth(msg.Width)
		m.rows.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.view == viewRows {
				m.view = viewTables
				return m, nil
			}
		case "enter":
			if m.view == viewTables {
				return m.openSelectedTable()
			}
		}
	}

	var cmd tea.Cmd

	if m.view == viewTables {
		m.tables, cmd = m.tables.Update(msg)
	} else {
		m.rows, cmd = m.rows.Update(msg)
	}

	return m, cmd
}

func (m browserModel) openSelectedTable() (tea.Model, tea.Cmd) {
	selRow := m.tables.SelectedRow()
	if len(selRow) == 0 {
		return m, nil
	}

	name := selRow[0]

	colNames, err := m.db.Columns(name)
	if err != nil {
		m.err = err
		return m, nil
	}

	rows, err := m.db.Rows(name)
	if err != nil {
		m.err = err
		return m, nil
	}

	cols := make([]table.Column, len(colNames))
	for i, c := range colNames {
		cols[i] = table.Column{Title: c, Width: 16}
	}

	trows := make([]table.Row, len(rows))
	for i, row := range rows {
		trows[i] = rowToStrings(row)
	}

	m.selected = name
	m.rows = table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(min(20, len(trows)+1)),
	)
	m.view = viewRows

	return m, nil
}

func rowToStrings(row jetdb.Row) table.Row {
	out := make(table.Row, len(row.Columns))

	for i, col := range row.Columns {
		switch {
		case col.IsNull():
			out[i] = ""
		case col.Kind == jetdb.KindBool:
			out[i] = fmt.Sprintf("%v", col.Bool())
		case col.Kind == jetdb.KindByte:
			out[i] = fmt.Sprintf("%d", col.Byte())
		case col.Kind == jetdb.KindInt16:
			out[i] = fmt.Sprintf("%d", col.Int16())
		case col.Kind == jetdb.KindInt32:
			out[i] = fmt.Sprintf("%d", col.Int32())
		case col.Kind == jetdb.KindFloat64:
			out[i] = fmt.Sprintf("%g", col.Float64())
		case col.Kind == jetdb.KindRawDateTime:
			out[i] = fmt.Sprintf("%d", col.RawDateTime())
		default:
			out[i] = col.Str()
		}
	}

	return out
}

func (m browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error()) + "\n"
	}

	if m.view == viewTables {
		return baseStyle.Render(m.tables.View()) + "\nenter: open table  q: quit\n"
	}

	return fmt.Sprintf("%s\n%s\nesc: back  q: quit\n", m.selected, baseStyle.Render(m.rows.View()))
}
