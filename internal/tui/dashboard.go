package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ljmonteiro/companheiro/internal/model"
	"github.com/ljmonteiro/companheiro/internal/session"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// DashboardModel is the bubbletea model for the home view: greeting,
// medication checklist, upcoming appointments and activity suggestions.
type DashboardModel struct {
	session *session.Session
	theme   Theme

	// Data snapshots, refreshed every tick
	medications  []*model.Medication
	appointments []*model.Appointment
	userName     string

	// UI state
	cursor     int
	width      int
	height     int
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Session         *session.Session
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	profile := config.Session.Profile()
	m := &DashboardModel{
		session:         config.Session,
		theme:           NewTheme(profile.DarkMode),
		userName:        profile.Name,
		refreshInterval: config.RefreshInterval,
	}
	m.loadData()
	return m
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		m.loadData()
		return m, m.tickCmd()
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.medications)-1 {
			m.cursor++
		}
		return m, nil

	case " ", "enter":
		if m.cursor < len(m.medications) {
			med := m.medications[m.cursor]
			taken, _ := m.session.ToggleMedication(context.Background(), med.ID)
			if taken {
				m.setMessage(fmt.Sprintf("Remédio %s marcado como tomado", med.Name), 2*time.Second)
			} else {
				m.setMessage(fmt.Sprintf("Remédio %s desmarcado", med.Name), 2*time.Second)
			}
			m.loadData()
		}
		return m, nil

	case "m":
		dark := !m.theme.Dark
		m.session.SetDarkMode(context.Background(), dark)
		m.theme = NewTheme(dark)
		return m, nil

	case "r":
		m.loadData()
		m.setMessage("Atualizado", time.Second)
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Carregando..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.message != "" {
		sections = append(sections, m.theme.Warning.Render(m.message))
	}

	meds := &MedicationsComponent{
		Medications: m.medications,
		Cursor:      m.cursor,
		Focused:     true,
		Theme:       m.theme,
		Width:       m.width,
	}
	sections = append(sections, meds.View())

	appts := &AppointmentsComponent{
		Appointments: m.appointments,
		Now:          time.Now(),
		Theme:        m.theme,
		Width:        m.width,
	}
	sections = append(sections, appts.View())

	acts := &ActivitiesComponent{Theme: m.theme, Width: m.width}
	sections = append(sections, acts.View())

	sections = append(sections, HelpBar(m.theme))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the greeting and clock.
func (m *DashboardModel) renderHeader() string {
	greeting := "Olá!"
	if m.userName != "" {
		greeting = fmt.Sprintf("Olá, %s!", m.userName)
	}
	title := m.theme.Title.Render(greeting)
	now := time.Now().Format("Mon, 02/01 15:04:05")
	timeStr := m.theme.Subtitle.Render(now)

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

// loadData refreshes the snapshots from the session.
func (m *DashboardModel) loadData() {
	m.medications = m.session.Medications()
	m.appointments = m.session.Appointments()
	m.userName = m.session.Profile().Name

	if m.cursor >= len(m.medications) && m.cursor > 0 {
		m.cursor = len(m.medications) - 1
	}
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	model := NewDashboardModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
