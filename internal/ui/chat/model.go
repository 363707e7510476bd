// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/logging"
	"github.com/jeranaias/budgetchat-tui/internal/session"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
	"github.com/jeranaias/budgetchat-tui/internal/ui/styles"
)

// Input texts.
const (
	Placeholder = "Type your message here... (e.g., 'Add $50 expense for groceries' or 'Create a $300 budget for rent')"
	InputHint   = "Press Enter to send, Alt+Enter for new line"
)

// inputLines is the height of the text area.
const inputLines = 3

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	Context context.Context
	Session *session.Session
	Prober  Prober
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Now     func() time.Time
}

// Model is the root Bubble Tea model of the chat screen.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	prober Prober
	log    *zap.SugaredLogger
	now    func() time.Time
	keys   KeyMap

	// Display settings
	uiCfg          config.UIConfig
	healthInterval time.Duration

	// Components
	theme    *styles.Theme
	header   *components.Header
	sidebar  *components.Sidebar
	messages *components.MessageView
	spinner  components.Spinner
	input    textarea.Model
	viewport viewport.Model

	// Last session snapshot
	state     session.State
	lastCount int

	// Root-local state
	width       int
	height      int
	sidebarOpen bool
	showHelp    bool
	notice      string
	ready       bool

	// startCmd starts the input cursor or spinner chosen in New
	startCmd tea.Cmd
}

// New creates the chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:            ctx,
		sess:           opts.Session,
		prober:         opts.Prober,
		log:            logging.OrNop(opts.Logger),
		now:            now,
		keys:           DefaultKeyMap(),
		uiCfg:          cfg.UI,
		healthInterval: cfg.Session.HealthInterval.Std(),
		viewport:       viewport.New(80, 10),
		input:          newInput(),
		width:          80,
		height:         24,
	}
	m.applyTheme()
	m.header.SetDate(now())
	m.state = m.sess.Snapshot()
	m.startCmd = m.syncBusy()
	m.layout()
	return m
}

func newInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputLines)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	return ta
}

// applyTheme (re)builds the theme-dependent components from uiCfg.
func (m *Model) applyTheme() {
	m.theme = styles.NewTheme(m.uiCfg.Theme)
	m.theme.SetSize(m.width, m.height)

	m.header = newHeaderFrom(m.header, m.theme)
	m.sidebar = components.NewSidebar(m.theme)
	m.sidebar.SetStats(m.state.Stats)

	var renderer components.MarkdownRenderer = components.PlainRenderer{}
	if m.uiCfg.Markdown {
		renderer = components.NewGlamourRenderer(m.uiCfg.Theme)
	}
	m.messages = components.NewMessageView(m.theme, renderer)
	m.messages.ShowTimestamps = m.uiCfg.ShowTimestamps

	active := m.spinner.IsActive()
	msg := m.spinner.Message()
	m.spinner = components.NewSpinner(m.theme)
	if msg != "" {
		m.spinner.SetMessage(msg)
	}
	if active {
		m.spinner.Start()
	}
}

func newHeaderFrom(prev *components.Header, theme *styles.Theme) *components.Header {
	h := components.NewHeader(theme)
	if prev != nil {
		h.SetDate(prev.Date)
		h.SetStatus(prev.Status)
		h.SetMCP(prev.MCP)
	}
	return h
}

// Init starts the initial loads, the change listener and the first probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		initSessionCmd(m.ctx, m.sess),
		waitForChange(m.ctx, m.sess),
		probeCmd(m.ctx, m.prober, m.log),
		m.startCmd,
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case sessionChangedMsg:
		cmd := m.refreshFromSession()
		return m, tea.Batch(cmd, waitForChange(m.ctx, m.sess))

	case sessionInitDoneMsg:
		m.log.Debugw("session initialized", "messages", len(m.state.Messages))
		return m, nil

	case sendDoneMsg:
		if !msg.Accepted {
			m.log.Debugw("send rejected")
		}
		return m, nil

	case clearDoneMsg, statsRefreshedMsg:
		return m, nil

	case healthMsg:
		m.header.SetStatus(msg.Status)
		m.header.SetMCP(msg.MCP)
		m.header.SetDate(m.now())
		m.layout()
		return m, healthTickCmd(m.healthInterval)

	case healthTickMsg:
		return m, probeCmd(m.ctx, m.prober, m.log)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}

	// Spinner ticks and cursor blinks.
	var spinCmd, inputCmd tea.Cmd
	m.spinner, spinCmd = m.spinner.Update(msg)
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(spinCmd, inputCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Sidebar):
		if !m.docked() {
			m.sidebarOpen = !m.sidebarOpen
		}
		return m, nil

	case key.Matches(msg, m.keys.CloseSidebar):
		if m.sidebarOpen {
			m.sidebarOpen = false
		} else {
			m.showHelp = false
			m.notice = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearMemory):
		if m.state.LoadingHistory {
			return m, nil
		}
		return m, clearCmd(m.ctx, m.sess)

	case key.Matches(msg, m.keys.RefreshStats):
		return m, refreshStatsCmd(m.ctx, m.sess)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.submit()
	}

	for i, b := range m.keys.QuickActions {
		if key.Matches(msg, b) {
			return m.quickAction(i)
		}
	}

	if m.state.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input text or runs a slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "/") {
		m.input.Reset()
		return m.runSlash(trimmed)
	}
	if trimmed == "" || m.state.Busy() {
		return m, nil
	}

	m.input.Reset()
	m.notice = ""
	m.showHelp = false
	return m, sendCmd(m.ctx, m.sess, text)
}

func (m Model) quickAction(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(components.QuickActions) || m.state.Busy() {
		return m, nil
	}
	if !m.docked() {
		m.sidebarOpen = false
	}
	return m, sendCmd(m.ctx, m.sess, components.QuickActions[i].Text)
}

// runSlash handles /clear, /stats, /help and /quit.
func (m Model) runSlash(cmdline string) (tea.Model, tea.Cmd) {
	name := strings.ToLower(strings.Fields(cmdline)[0])
	m.notice = ""

	switch name {
	case "/clear":
		if m.state.LoadingHistory {
			return m, nil
		}
		return m, clearCmd(m.ctx, m.sess)
	case "/stats":
		if !m.docked() {
			m.sidebarOpen = true
		}
		return m, refreshStatsCmd(m.ctx, m.sess)
	case "/help":
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	case "/quit", "/exit":
		return m, tea.Quit
	default:
		m.notice = "Unknown command: " + name + " (try /help)"
		return m, nil
	}
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	m.uiCfg = msg.Config.UI
	m.healthInterval = msg.Config.Session.HealthInterval.Std()
	m.applyTheme()
	m.layout()
	m.log.Infow("config reloaded", "theme", m.uiCfg.Theme, "sidebar", m.uiCfg.Sidebar)
	return m, nil
}

// =============================================================================
// SESSION SYNC
// =============================================================================

// refreshFromSession re-reads the snapshot and updates every view of it.
func (m *Model) refreshFromSession() tea.Cmd {
	m.state = m.sess.Snapshot()
	m.sidebar.SetStats(m.state.Stats)
	cmd := m.syncBusy()
	m.renderConversation()
	return cmd
}

// syncBusy disables the input and runs the spinner while the session is busy.
func (m *Model) syncBusy() tea.Cmd {
	if !m.state.Busy() {
		m.spinner.Stop()
		return m.input.Focus()
	}

	m.input.Blur()
	if m.state.LoadingHistory {
		m.spinner.SetMessage(components.LoadingHistoryText)
	} else {
		m.spinner.SetMessage(components.ThinkingText)
	}
	return m.spinner.Start()
}

// renderConversation refreshes the viewport and follows new messages.
func (m *Model) renderConversation() {
	m.viewport.SetContent(m.messages.RenderAll(m.state.Messages))
	if len(m.state.Messages) != m.lastCount {
		m.lastCount = len(m.state.Messages)
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the last session snapshot the model rendered.
func (m Model) State() session.State {
	return m.state
}

// SidebarOpen reports whether the overlay sidebar is shown.
func (m Model) SidebarOpen() bool {
	return m.sidebarOpen
}

// Docked reports whether the sidebar is docked at the current width.
func (m Model) Docked() bool {
	return m.docked()
}

// InputValue returns the current input text.
func (m Model) InputValue() string {
	return m.input.Value()
}

// SetInput replaces the input text.
func (m *Model) SetInput(s string) {
	m.input.SetValue(s)
}
