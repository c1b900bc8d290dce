package ui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/muffinboard/internal/models"
	"github.com/desertthunder/muffinboard/internal/services"
	"github.com/desertthunder/muffinboard/internal/shared"
)

const (
	loadBoardError = "Failed to load board data. Please try again."
	addCardError   = "Failed to add muffin. Please try again."
)

// Options configures a [Model].
type Options struct {
	// PollInterval is how often the auth status is re-checked after the browser is opened.
	PollInterval time.Duration
	// Opener opens the sign-in page. Defaults to [shared.OpenBrowser].
	Opener shared.BrowserOpener
	Logger *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	board        services.BoardService
	opener       shared.BrowserOpener
	logger       *log.Logger
	pollInterval time.Duration

	authenticated bool
	awaitingAuth  bool
	pollGen       int
	loading       bool
	lists         []models.List
	err           string
	notice        string
	modal         *modalModel

	authFence  shared.Fence
	boardFence shared.Fence

	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model backed by board.
func NewModel(ctx context.Context, board services.BoardService, opts Options) *Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.Opener == nil {
		opts.Opener = shared.OpenBrowser
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.warn

	return &Model{
		ctx:          ctx,
		board:        board,
		opener:       opts.Opener,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		loading:      true,
		spinner:      s,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts the auth check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkAuthStatus(), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case authStatusMsg:
		return m, m.handleAuthStatus(msg)

	case boardLoadedMsg:
		m.handleBoardLoaded(msg)
		return m, nil

	case submitCardMsg:
		return m, m.addCard(msg.name, msg.listID)

	case cardAddedMsg:
		return m, m.handleCardAdded(msg)

	case closeModalMsg:
		m.modal = nil
		return m, nil

	case pollTickMsg:
		if msg.gen != m.pollGen || !m.awaitingAuth || m.authenticated {
			return m, nil
		}
		return m, m.checkAuthStatus()

	case browserOpenedMsg:
		if msg.err != nil {
			m.logger.Error("failed to open browser", "url", msg.url, "error", msg.err)
			m.notice = "Open " + msg.url + " in your browser to sign in."
			return m, nil
		}
		m.logger.Info("opened browser for sign-in", "url", msg.url)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != nil {
		return m, m.modal.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.loading:
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.openModal()
	case key.Matches(msg, m.keys.refresh):
		if m.authenticated {
			return m, m.loadBoardData()
		}
		return m, m.checkAuthStatus()
	case key.Matches(msg, m.keys.connect):
		if !m.authenticated {
			return m, m.connect()
		}
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.modal != nil {
		r := m.modalBounds()
		if r.contains(msg.X, msg.Y) {
			return m, m.modal.Click(m.modalBox(), msg.X-r.x, msg.Y-r.y)
		}
		m.modal = nil
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	view := m.View()
	switch {
	case !m.authenticated && hit(view, connectLabel, msg.X, msg.Y):
		return m, m.connect()
	case m.authenticated && hit(view, addLabel, msg.X, msg.Y):
		m.openModal()
	case m.authenticated && len(m.lists) == 0 && hit(view, refreshLabel, msg.X, msg.Y):
		return m, m.loadBoardData()
	}

	return m, nil
}

// openModal shows the add-muffin form. It is only available once signed in.
func (m *Model) openModal() {
	if !m.authenticated || m.modal != nil {
		return
	}
	m.modal = newModal(m.lists)
}

// checkAuthStatus asks the API whether the session is signed in.
func (m *Model) checkAuthStatus() tea.Cmd {
	seq := m.authFence.Next()
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		ok, err := board.AuthStatus(ctx)
		return authStatusMsg{seq: seq, authenticated: ok, err: err}
	}
}

func (m *Model) handleAuthStatus(msg authStatusMsg) tea.Cmd {
	if !m.authFence.Apply(msg.seq) {
		m.logger.Debug("discarding stale auth status", "seq", msg.seq, "latest", m.authFence.Latest())
		return nil
	}

	m.loading = false
	wasAuthenticated := m.authenticated

	if msg.err != nil {
		m.logger.Error("failed to check auth status", "error", msg.err)
		m.authenticated = false
	} else {
		m.authenticated = msg.authenticated
	}

	if !m.authenticated {
		m.modal = nil
		if m.awaitingAuth {
			return m.schedulePoll()
		}
		return nil
	}

	m.awaitingAuth = false
	m.notice = ""
	if wasAuthenticated {
		return nil
	}
	return m.loadBoardData()
}

// loadBoardData fetches the lists. It does nothing until the session is signed in.
func (m *Model) loadBoardData() tea.Cmd {
	if !m.authenticated {
		return nil
	}

	m.loading = true
	seq := m.boardFence.Next()
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		lists, err := board.Lists(ctx)
		return boardLoadedMsg{seq: seq, lists: lists, err: err}
	}
}

func (m *Model) handleBoardLoaded(msg boardLoadedMsg) {
	if !m.boardFence.Apply(msg.seq) {
		m.logger.Debug("discarding stale board load", "seq", msg.seq, "latest", m.boardFence.Latest())
		return
	}

	m.loading = false
	if msg.err != nil {
		m.logger.Error("failed to load board", "error", msg.err)
		m.err = loadBoardError
		return
	}

	m.lists = msg.lists
	m.err = ""
	m.logger.Debug("board loaded", "lists", len(msg.lists), "cards", models.Board(msg.lists).CardCount())
}

// addCard creates a card and reports the result as a [cardAddedMsg].
func (m *Model) addCard(name string, listID models.ID) tea.Cmd {
	board, ctx := m.board, m.ctx
	return func() tea.Msg {
		card, err := board.CreateCard(ctx, name, listID)
		return cardAddedMsg{card: card, err: err}
	}
}

func (m *Model) handleCardAdded(msg cardAddedMsg) tea.Cmd {
	if m.modal != nil {
		m.modal.done()
	}

	if msg.err != nil {
		m.logger.Error("failed to add muffin", "error", msg.err)
		m.err = addCardError
		return nil
	}

	m.logger.Info("added muffin", "name", msg.card.Name, "list", msg.card.ListID)
	m.modal = nil
	return m.loadBoardData()
}

// connect opens the sign-in page and starts waiting for the server to confirm the session.
func (m *Model) connect() tea.Cmd {
	url := m.board.AuthorizationURL()
	opener := m.opener

	first := !m.awaitingAuth
	m.awaitingAuth = true
	m.notice = "Waiting for sign-in to complete in your browser..."

	open := func() tea.Msg {
		return browserOpenedMsg{url: url, err: opener(url)}
	}
	if !first {
		return open
	}
	return tea.Batch(open, m.schedulePoll())
}

// schedulePoll starts a new auth re-check timer, superseding any pending one.
func (m *Model) schedulePoll() tea.Cmd {
	m.pollGen++
	gen := m.pollGen
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

// View renders the UI based on the current state.
func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.modal != nil {
		return m.renderModal()
	}

	return m.renderMain()
}
