package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type territoriesMsg struct {
	Page  *TerritoryPage
	Reset bool
}

type searchResultMsg struct {
	Results []Territory
}

type statsMsg struct {
	Stats *Stats
}

type TerritorySelectedMsg struct {
	ID uint
}

type DashboardModel struct {
	Client      *Client
	Table       table.Model
	Search      textinput.Model
	Searching   bool
	Territories []Territory
	NextCursor  string
	Stats       *Stats
	Err         error
}

const dashboardPageSize = 50

func NewDashboardModel(c *Client, width, height int) DashboardModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Nome", Width: 30},
		{Title: "Região", Width: 10},
		{Title: "Recente", Width: 8},
		{Title: "Atualizado", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-10),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	search := textinput.New()
	search.Placeholder = "buscar por nome"
	search.Prompt = "/ "

	return DashboardModel{Client: c, Table: t, Search: search}
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(true, ""), m.statsCmd)
}

func (m DashboardModel) refreshCmd(reset bool, cursor string) tea.Cmd {
	return func() tea.Msg {
		page, err := m.Client.Territories(cursor, dashboardPageSize)
		if err != nil {
			return errMsg(err)
		}
		return territoriesMsg{Page: page, Reset: reset}
	}
}

func (m DashboardModel) statsCmd() tea.Msg {
	st, err := m.Client.Stats()
	if err != nil {
		return errMsg(err)
	}
	return statsMsg{Stats: st}
}

func (m DashboardModel) searchCmd(text string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.Client.Search(text)
		if err != nil {
			return errMsg(err)
		}
		return searchResultMsg{Results: results}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.Searching {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.Type {
			case tea.KeyEnter:
				m.Searching = false
				m.Search.Blur()
				return m, m.searchCmd(m.Search.Value())
			case tea.KeyEsc:
				m.Searching = false
				m.Search.Blur()
				m.Search.SetValue("")
				return m, m.refreshCmd(true, "")
			}
		}
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, tea.Batch(m.refreshCmd(true, ""), m.statsCmd)
		case "n":
			if m.NextCursor != "" {
				return m, m.refreshCmd(false, m.NextCursor)
			}
		case "/":
			m.Searching = true
			m.Search.Focus()
			return m, textinput.Blink
		case "enter":
			selected := m.Table.SelectedRow()
			if len(selected) > 0 {
				if id, err := strconv.ParseUint(selected[0], 10, 64); err == nil {
					return m, func() tea.Msg {
						return TerritorySelectedMsg{ID: uint(id)}
					}
				}
			}
		case "q":
			return m, tea.Quit
		}

	case territoriesMsg:
		if msg.Reset {
			m.Territories = msg.Page.Page
		} else {
			m.Territories = append(m.Territories, msg.Page.Page...)
		}
		m.NextCursor = msg.Page.NextCursor
		m.Table.SetRows(rowsFor(m.Territories))
		m.Err = nil

	case searchResultMsg:
		m.Territories = msg.Results
		m.NextCursor = ""
		m.Table.SetRows(rowsFor(m.Territories))
		m.Err = nil

	case statsMsg:
		m.Stats = msg.Stats
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func rowsFor(ts []Territory) []table.Row {
	rows := make([]table.Row, 0, len(ts))
	for _, t := range ts {
		done := "não"
		if t.DoneRecently {
			done = "sim"
		}
		updated := t.UpdatedAt
		if len(updated) > 19 {
			updated = updated[:19]
		}
		rows = append(rows, table.Row{
			strconv.FormatUint(uint64(t.ID), 10), t.Name, t.Region, done, updated,
		})
	}
	return rows
}

func (m DashboardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Territórios") + "\n\n")

	if m.Searching {
		b.WriteString(m.Search.View() + "\n\n")
	}

	b.WriteString(m.Table.View())
	b.WriteString("\n\n")

	if m.Stats != nil {
		b.WriteString(fmt.Sprintf("%d territórios, %s concluídos no último ano\n",
			m.Stats.TotalCount,
			doneStyle.Render(fmt.Sprintf("%d", m.Stats.DoneRecentlyCount))))
	}

	help := "r atualiza, / busca, enter detalhes, q sai"
	if m.NextCursor != "" {
		help = "n próxima página, " + help
	}
	b.WriteString(blurredStyle.Render(help))

	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()))
	}
	return b.String()
}
