package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classdiag/internal/app"
	"classdiag/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	relationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type uiModel struct {
	list          list.Model
	lastUpdate    time.Time
	entities      int
	relationships int
	written       []string
}

type updateMsg struct {
	update app.Update
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.entities = len(msg.update.Entities)
		m.relationships = msg.update.Run.Relationships()
		m.written = msg.update.Written
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, entity := range msg.update.Entities {
			for _, rel := range entity.Relationships {
				items = append(items, item{
					title: fmt.Sprintf("%s %s %s", rel.From, relationWord(rel.Kind), rel.To),
					desc:  fmt.Sprintf("owned by %s", entity.Name),
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d outputs written",
		m.lastUpdate.Format("15:04:05"), len(m.written)))

	summary := relationStyle.Render(fmt.Sprintf("%d entities | %d relationships",
		m.entities, m.relationships))

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Class Diagram Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func relationWord(kind model.RelationKind) string {
	switch kind {
	case model.RelationInheritance:
		return "inherits"
	case model.RelationRealization:
		return "realizes"
	case model.RelationAggregation:
		return "aggregates into"
	case model.RelationDependency:
		return "depends on"
	case model.RelationComposition:
		return "composes"
	default:
		return "associates with"
	}
}

func initialUIModel() uiModel {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Inferred Relationships"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return uiModel{
		list:       l,
		lastUpdate: time.Now(),
	}
}

// runUI starts the watcher in the background and keeps the TUI in sync with
// every regeneration until the user quits.
func runUI(ctx context.Context, cancel context.CancelFunc, a *app.App, initial app.Update) error {
	p := tea.NewProgram(initialUIModel(), tea.WithAltScreen())

	a.SetUpdateHandler(func(u app.Update) {
		p.Send(updateMsg{update: u})
	})

	go func() {
		if err := a.Watch(ctx); err != nil && ctx.Err() == nil {
			p.Quit()
		}
	}()

	go p.Send(updateMsg{update: initial})

	_, err := p.Run()
	cancel()
	return err
}
