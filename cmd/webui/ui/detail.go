package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type territoryLoadedMsg struct {
	Territory *Territory
}

// BackToDashboardMsg signals transition back to the dashboard.
type BackToDashboardMsg struct{}

type DetailModel struct {
	Client    *Client
	ID        uint
	Territory *Territory
	Err       error
}

func NewDetailModel(c *Client, id uint) DetailModel {
	return DetailModel{Client: c, ID: id}
}

func (m DetailModel) Init() tea.Cmd {
	return func() tea.Msg {
		t, err := m.Client.Get(m.ID)
		if err != nil {
			return errMsg(err)
		}
		return territoryLoadedMsg{Territory: t}
	}
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case territoryLoadedMsg:
		m.Territory = msg.Territory
		m.Err = nil
	case errMsg:
		m.Err = msg
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "b":
			return m, func() tea.Msg { return BackToDashboardMsg{} }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DetailModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Território") + "\n\n")

	if m.Err != nil {
		b.WriteString(errorMessageStyle(m.Err.Error()) + "\n")
		b.WriteString(blurredStyle.Render("esc volta"))
		return b.String()
	}
	if m.Territory == nil {
		return b.String() + "carregando...\n"
	}

	t := m.Territory
	status := pendingStyle.Render("pendente")
	if t.DoneRecently {
		status = doneStyle.Render("concluído recentemente")
	}

	b.WriteString(fmt.Sprintf("Nome:       %s\n", t.Name))
	b.WriteString(fmt.Sprintf("Região:     %s\n", t.Region))
	b.WriteString(fmt.Sprintf("Situação:   %s\n", status))
	b.WriteString(fmt.Sprintf("Descrição:  %s\n", t.Description))
	b.WriteString(fmt.Sprintf("Atualizado: %s\n", t.UpdatedAt))

	b.WriteString("\nDatas de conclusão (mais recente primeiro):\n")
	if len(t.TimesWhereItWasDone) == 0 {
		b.WriteString(blurredStyle.Render("  nenhuma") + "\n")
	}
	for _, d := range t.TimesWhereItWasDone {
		b.WriteString("  " + d + "\n")
	}

	b.WriteString("\nÚltimos editores:\n")
	if len(t.LeastEditedBy) == 0 {
		b.WriteString(blurredStyle.Render("  nenhum") + "\n")
	}
	for _, e := range t.LeastEditedBy {
		b.WriteString("  " + e + "\n")
	}

	b.WriteString("\n")
	b.WriteString(blurredStyle.Render("esc volta, q sai"))
	return b.String()
}
