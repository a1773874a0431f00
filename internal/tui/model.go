// ABOUTME: Bubble Tea model hosting the dashboard panel and the chat widget
// ABOUTME: Applies the chat handler table inside the update loop and runs requests as commands

package tui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/newspulse/newspulse-client/internal/chat"
	"github.com/newspulse/newspulse-client/internal/dashboard"
)

// Deps are the collaborators the model drives.
type Deps struct {
	Asker   chat.Asker
	Fetcher dashboard.Fetcher
	PageURL string
	// Logout signs the user out. A nil Logout disables ctrl+l.
	Logout func(ctx context.Context) error
	// AskTopic, when set, opens the widget prefilled for that topic.
	AskTopic string
	User     string
	Logger   *slog.Logger
}

type dashboardMsg struct {
	result dashboard.Result
	text   string
}

type settledMsg struct {
	settled chat.Settled
}

type logoutMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx      context.Context
	deps     Deps
	handlers chat.Handlers
	widget   chat.Widget
	logger   *slog.Logger

	input      textinput.Model
	transcript viewport.Model

	panel   string
	orgs    []string
	status  string
	loading bool
	width   int
	height  int

	// LoggedOut is set when the program quit after a successful sign-out.
	LoggedOut bool
}

// New creates the model.
func New(ctx context.Context, deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	in := textinput.New()
	in.Placeholder = "Ask about the news..."
	in.Prompt = "> "
	in.CharLimit = 500

	m := Model{
		ctx:        ctx,
		deps:       deps,
		handlers:   chat.NewHandlers(deps.PageURL),
		logger:     logger.With("component", "tui"),
		input:      in,
		transcript: viewport.New(60, 8),
		loading:    deps.Fetcher != nil,
		width:      80,
		height:     24,
	}
	if deps.AskTopic != "" {
		m, _ = m.apply(chat.AskAbout{Topic: deps.AskTopic})
	}
	return m
}

// Widget returns the chat widget state.
func (m Model) Widget() chat.Widget {
	return m.widget
}

// Init starts the dashboard load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.deps.Fetcher != nil {
		cmds = append(cmds, m.loadDashboard())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dashboardMsg:
		m.loading = false
		m.panel = msg.text
		m.orgs = nil
		if msg.result.Err != nil {
			m.status = "Dashboard unavailable"
			return m, nil
		}
		if g, ok := msg.result.Payload.Entity(dashboard.EntityType); ok {
			for _, e := range g.Names {
				m.orgs = append(m.orgs, e.Label)
			}
		}
		return m, nil

	case settledMsg:
		return m.apply(msg.settled)

	case logoutMsg:
		if msg.err != nil {
			m.status = "Sign out failed"
			return m, nil
		}
		m.LoggedOut = true
		return m, tea.Quit
	}

	if m.widget.Open {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+o":
		return m.apply(chat.Toggle{})
	case "esc":
		return m.apply(chat.Close{})
	case "ctrl+l":
		if m.deps.Logout == nil {
			return m, nil
		}
		return m, m.logout()
	}

	if !m.widget.Open {
		switch key := msg.String(); {
		case key == "q":
			return m, tea.Quit
		case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
			n := int(key[0] - '1')
			if n < len(m.orgs) {
				return m.apply(chat.AskAbout{Topic: m.orgs[n]})
			}
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		m, _ = m.apply(chat.Edit{Text: m.input.Value()})
		return m.apply(chat.Key{Name: "enter", Modified: msg.Alt})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.widget.Input.Text {
		m, _ = m.apply(chat.Edit{Text: m.input.Value()})
	}
	return m, cmd
}

// apply runs one chat event through the handler table and turns its effects
// into view updates and commands.
func (m Model) apply(ev chat.Event) (Model, tea.Cmd) {
	next, effects := m.handlers.Apply(m.widget, ev)
	m.widget = next

	if m.input.Value() != next.Input.Text {
		m.input.SetValue(next.Input.Text)
	}
	if !next.Open {
		m.input.Blur()
	}

	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case chat.FocusInput:
			cmds = append(cmds, m.input.Focus())
		case chat.CaretToEnd:
			m.input.CursorEnd()
		case chat.ScrollToEnd:
			m.refreshTranscript()
			m.transcript.GotoBottom()
		case chat.IssueRequest:
			cmds = append(cmds, m.ask(e.Query))
		case chat.LogFailure:
			m.logger.Error("chatbot request failed", "error", e.Err)
		}
	}
	m.refreshTranscript()
	return m, tea.Batch(cmds...)
}

func (m Model) ask(q chat.Query) tea.Cmd {
	asker, ctx := m.deps.Asker, m.ctx
	return func() tea.Msg {
		reply, err := asker.Ask(ctx, q)
		return settledMsg{settled: chat.Settled{Reply: reply, Err: err}}
	}
}

func (m Model) loadDashboard() tea.Cmd {
	fetcher, ctx, logger := m.deps.Fetcher, m.ctx, m.logger
	return func() tea.Msg {
		var buf bytes.Buffer
		res := dashboard.NewController(fetcher, dashboard.NewTextRenderer(&buf, 30), logger).Load(ctx)
		return dashboardMsg{result: res, text: strings.TrimRight(buf.String(), "\n")}
	}
}

func (m Model) logout() tea.Cmd {
	logout, ctx := m.deps.Logout, m.ctx
	return func() tea.Msg {
		return logoutMsg{err: logout(ctx)}
	}
}

func (m *Model) resize() {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	h := m.height / 3
	if h < 4 {
		h = 4
	}
	m.transcript.Width = w
	m.transcript.Height = h
	m.input.Width = w - 4
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.widget.Transcript {
		switch msg.Sender {
		case chat.SenderUser:
			b.WriteString(userStyle.Render("you: "))
		default:
			b.WriteString(botStyle.Render("bot: "))
		}
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	m.transcript.SetContent(b.String())
}

// View renders the screen.
func (m Model) View() string {
	title := "NewsPulse"
	if m.deps.User != "" {
		title += " · " + m.deps.User
	}
	sections := []string{headerStyle.Render(title)}

	switch {
	case m.loading:
		sections = append(sections, panelStyle.Render(dimStyle.Render("Loading dashboard...")))
	case m.panel != "":
		sections = append(sections, panelStyle.Render(m.panel))
	}

	if m.widget.Open {
		body := m.transcript.View() + "\n" + m.input.View()
		if m.widget.State() == chat.OpenAwaiting {
			body += "\n" + dimStyle.Render("waiting for reply...")
		}
		sections = append(sections, chatStyle.Render(body))
	}

	if m.status != "" {
		sections = append(sections, errorStyle.Render(m.status))
	}
	sections = append(sections, dimStyle.Render(m.help()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) help() string {
	parts := []string{"ctrl+o chat"}
	if m.widget.Open {
		parts = append(parts, "enter send", "esc close")
	} else if len(m.orgs) > 0 {
		parts = append(parts, fmt.Sprintf("1-%d ask about organization", min(len(m.orgs), 9)), "q quit")
	} else {
		parts = append(parts, "q quit")
	}
	if m.deps.Logout != nil {
		parts = append(parts, "ctrl+l log out")
	}
	return strings.Join(parts, " · ")
}
