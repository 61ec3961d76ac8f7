package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-dataview/components/dataview"
)

// searchDebounce delays applying typed search text until the user pauses.
const searchDebounce = 300 * time.Millisecond

type browseCmd struct {
	tableFlags `embed:""`

	Table    string `arg:"" help:"Table code (e.g. admin.table.bookings)."`
	PageSize int    `help:"Rows per page (defaults to the table's page size)."`
}

func (cmd *browseCmd) Run(ctx context.Context) error {
	reg, closeFn, err := cmd.registry()
	if err != nil {
		return err
	}
	defer closeFn()

	def, ok := reg.Table(cmd.Table)
	if !ok {
		return fmt.Errorf("tablectl: %w: %s", dataview.ErrTableNotFound, cmd.Table)
	}
	var rows []map[string]string
	if source, ok := reg.Source(def.Code); ok {
		rows, err = source.Records(ctx, dataview.SourceQuery{Table: def})
		if err != nil {
			return fmt.Errorf("tablectl: load %s: %w", def.Code, err)
		}
	}
	pageSize := cmd.PageSize
	if pageSize <= 0 {
		pageSize = def.PageSize
	}
	p := tea.NewProgram(newBrowseModel(def, rows, pageSize), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type searchTickMsg struct {
	seq int
}

type browseModel struct {
	def      dataview.TableDefinition
	view     *dataview.View
	statuses []string
	status   int
	query    string
	seq      int
	cursor   int
	payload  dataview.ViewPayload
	notice   string
	noticeOK bool
}

func newBrowseModel(def dataview.TableDefinition, rows []map[string]string, pageSize int) browseModel {
	records := make([]dataview.Record, len(rows))
	for i, row := range rows {
		records[i] = dataview.RecordFromValues(def, i+1, dataview.NormalizeValues(row))
	}
	view := dataview.NewView(pageSize)
	view.Load(records)
	m := browseModel{
		def:      def,
		view:     view,
		statuses: append([]string{dataview.StatusAll}, def.StatusOptions...),
	}
	m.refresh()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.view.SetSearchQuery(m.query)
		m.cursor = 0
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m browseModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.status = (m.status + 1) % len(m.statuses)
		m.view.SetStatusFilter(m.statuses[m.status])
		m.cursor = 0
		m.refresh()
	case tea.KeyLeft, tea.KeyPgUp:
		m.view.SetPage(m.view.Page() - 1)
		m.cursor = 0
		m.refresh()
	case tea.KeyRight, tea.KeyPgDown:
		m.view.SetPage(m.view.Page() + 1)
		m.cursor = 0
		m.refresh()
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.payload.View.Records)-1 {
			m.cursor++
		}
	case tea.KeyDelete, tea.KeyCtrlD:
		m.removeSelected()
	case tea.KeyBackspace:
		if m.query == "" {
			return m, nil
		}
		runes := []rune(m.query)
		m.query = string(runes[:len(runes)-1])
		return m, m.scheduleSearch()
	case tea.KeySpace:
		m.query += " "
		return m, m.scheduleSearch()
	case tea.KeyRunes:
		m.query += string(msg.Runes)
		return m, m.scheduleSearch()
	}
	return m, nil
}

func (m *browseModel) scheduleSearch() tea.Cmd {
	m.seq++
	seq := m.seq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m *browseModel) removeSelected() {
	records := m.payload.View.Records
	if m.cursor < 0 || m.cursor >= len(records) {
		return
	}
	key := records[m.cursor].Key
	if m.view.Remove(key) {
		m.notice = "Item deleted successfully"
		m.noticeOK = true
	}
	m.refresh()
	if m.cursor >= len(m.payload.View.Records) {
		m.cursor = max(len(m.payload.View.Records)-1, 0)
	}
}

func (m *browseModel) refresh() {
	m.payload = dataview.NewViewPayload("", m.def, m.view.Result())
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.def.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Status: %s   Search: %s▏\n\n", m.statuses[m.status], m.query))
	b.WriteString(renderTable(m.payload, m.cursor))
	b.WriteString("\n")
	b.WriteString(renderFooter(m.payload))
	b.WriteString("\n")
	if m.notice != "" {
		style := errStyle
		if m.noticeOK {
			style = okStyle
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("type to search · tab status · ←/→ page · ↑/↓ select · del remove · esc quit"))
	return b.String()
}
