package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/muffinboard/internal/models"
	tu "github.com/desertthunder/muffinboard/internal/testing"
)

// harness drives a [Model] by running returned commands synchronously.
//
// Spinner ticks are dropped and poll ticks are held in polls so tests decide when they fire.
type harness struct {
	t      *testing.T
	m      *Model
	board  *tu.MockBoardService
	opened []string
	polls  []pollTickMsg
	quit   bool
}

func newHarness(t *testing.T, board *tu.MockBoardService) *harness {
	t.Helper()
	h := &harness{t: t, board: board}
	h.m = NewModel(context.Background(), board, Options{
		PollInterval: time.Millisecond,
		Opener: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 50})
	return h
}

// start runs Init and every command that follows.
func (h *harness) start() *harness {
	h.run(h.m.Init())
	return h
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		case pollTickMsg:
			h.polls = append(h.polls, msg)
		default:
			_, cmd := h.m.Update(msg)
			queue = append(queue, cmd)
		}
	}
}

func (h *harness) key(k tea.KeyType) { h.send(tea.KeyMsg{Type: k}) }

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

// find returns the screen position of label in the current view.
func (h *harness) find(label string) (int, int) {
	h.t.Helper()
	for y, line := range strings.Split(h.view(), "\n") {
		if idx := strings.Index(line, label); idx >= 0 {
			return ansi.StringWidth(line[:idx]), y
		}
	}
	h.t.Fatalf("label %q not found in view:\n%s", label, h.view())
	return 0, 0
}

func signedIn(lists []models.List) *tu.MockBoardService {
	return &tu.MockBoardService{Authenticated: true, Board: lists}
}

func TestAppController(t *testing.T) {
	t.Run("Unauthenticated shows auth section without loading lists", func(t *testing.T) {
		h := newHarness(t, &tu.MockBoardService{Authenticated: false}).start()

		if h.board.AuthCalls() != 1 {
			t.Errorf("expected 1 auth call, got %d", h.board.AuthCalls())
		}
		if h.board.ListCalls() != 0 {
			t.Errorf("expected no list calls, got %d", h.board.ListCalls())
		}

		view := h.view()
		if !strings.Contains(view, "Authentication Required") {
			t.Errorf("expected auth section, got:\n%s", view)
		}
		if strings.Contains(view, addLabel) {
			t.Error("add button should be hidden before sign-in")
		}
	})

	t.Run("Authenticated loads lists exactly once", func(t *testing.T) {
		h := newHarness(t, signedIn(tu.SampleBoard())).start()

		if h.board.ListCalls() != 1 {
			t.Errorf("expected 1 list call, got %d", h.board.ListCalls())
		}

		view := h.view()
		for _, want := range []string{"To Bake", "Already Baked", "Blueberry Muffin", addLabel} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in view:\n%s", want, view)
			}
		}
		if strings.Contains(view, "Authentication Required") {
			t.Error("auth section should be hidden after sign-in")
		}
	})

	t.Run("Auth check failure is silent", func(t *testing.T) {
		h := newHarness(t, &tu.MockBoardService{AuthErr: tu.ErrMock}).start()

		if h.m.authenticated {
			t.Error("expected unauthenticated after failed auth check")
		}
		if h.m.loading {
			t.Error("expected loading to clear")
		}
		if h.m.err != "" {
			t.Errorf("expected no banner, got %q", h.m.err)
		}
		if !strings.Contains(h.view(), "Authentication Required") {
			t.Error("expected auth section")
		}
	})

	t.Run("Loading shows only the indicator", func(t *testing.T) {
		h := newHarness(t, signedIn(tu.SampleBoard()))

		view := h.view()
		if !strings.Contains(view, "Loading Muffin Board...") {
			t.Errorf("expected loading indicator, got:\n%s", view)
		}
		if strings.Contains(view, "Muffin Board\n") || strings.Contains(view, "Authentication Required") {
			t.Errorf("expected nothing but the indicator, got:\n%s", view)
		}
	})

	t.Run("Board load failure keeps lists and shows banner", func(t *testing.T) {
		board := signedIn(tu.SampleBoard())
		h := newHarness(t, board).start()

		board.ListsErr = tu.ErrMock
		h.typeText("r")

		if h.m.err != loadBoardError {
			t.Errorf("expected %q, got %q", loadBoardError, h.m.err)
		}
		if len(h.m.lists) != 2 {
			t.Errorf("expected lists to be kept, got %d", len(h.m.lists))
		}
		if h.m.loading {
			t.Error("expected loading to clear")
		}

		view := h.view()
		if !strings.Contains(view, loadBoardError) || !strings.Contains(view, "Blueberry Muffin") {
			t.Errorf("expected banner above the board, got:\n%s", view)
		}

		board.ListsErr = nil
		h.typeText("r")
		if h.m.err != "" {
			t.Errorf("expected banner to clear after a successful load, got %q", h.m.err)
		}
	})

	t.Run("Empty board offers refresh", func(t *testing.T) {
		board := signedIn([]models.List{})
		h := newHarness(t, board).start()

		view := h.view()
		if !strings.Contains(view, "No lists found") {
			t.Errorf("expected empty board message, got:\n%s", view)
		}

		x, y := h.find(refreshLabel)
		h.click(x+1, y)
		if board.ListCalls() != 2 {
			t.Errorf("expected refresh click to reload, got %d list calls", board.ListCalls())
		}
	})

	t.Run("Quit", func(t *testing.T) {
		h := newHarness(t, signedIn(tu.SampleBoard())).start()
		h.typeText("q")
		if !h.quit {
			t.Error("expected quit")
		}
	})
}

func TestFencing(t *testing.T) {
	t.Run("Stale board load is discarded", func(t *testing.T) {
		h := newHarness(t, signedIn(tu.SampleBoard())).start()

		stale := h.m.loadBoardData()
		fresh := h.m.loadBoardData()

		freshMsg := fresh().(boardLoadedMsg)
		freshMsg.lists = []models.List{{ID: "9", Name: "Newest"}}
		h.send(freshMsg)

		staleMsg := stale().(boardLoadedMsg)
		staleMsg.lists = []models.List{{ID: "8", Name: "Oldest"}}
		h.send(staleMsg)

		if len(h.m.lists) != 1 || h.m.lists[0].Name != "Newest" {
			t.Errorf("expected newest lists to win, got %+v", h.m.lists)
		}
		if h.m.loading {
			t.Error("expected loading to clear")
		}
	})

	t.Run("Stale auth status is discarded", func(t *testing.T) {
		board := &tu.MockBoardService{Authenticated: false}
		h := newHarness(t, board).start()

		stale := h.m.checkAuthStatus()
		fresh := h.m.checkAuthStatus()

		h.send(fresh())
		board.Authenticated = true
		h.send(stale())

		if h.m.authenticated {
			t.Error("stale auth response should not sign in")
		}
		if board.ListCalls() != 0 {
			t.Errorf("expected no list calls, got %d", board.ListCalls())
		}
	})
}

func TestAuthSection(t *testing.T) {
	t.Run("Connect opens browser without signing in", func(t *testing.T) {
		board := &tu.MockBoardService{LoginURL: "http://localhost:8080/oauth2/authorization/zoho"}
		h := newHarness(t, board).start()

		h.typeText("c")

		if len(h.opened) != 1 || h.opened[0] != board.LoginURL {
			t.Fatalf("expected browser to open %s, got %v", board.LoginURL, h.opened)
		}
		if h.m.authenticated {
			t.Error("connect must not sign in optimistically")
		}
		if !h.m.awaitingAuth {
			t.Error("expected to wait for sign-in")
		}
		if len(h.polls) != 1 {
			t.Fatalf("expected a poll to be scheduled, got %d", len(h.polls))
		}
	})

	t.Run("Poll confirms sign-in", func(t *testing.T) {
		board := &tu.MockBoardService{}
		h := newHarness(t, board).start()
		h.typeText("c")

		tick := h.polls[0]
		h.polls = nil
		h.send(tick)
		if h.m.authenticated {
			t.Fatal("expected to stay signed out while the server says so")
		}
		if len(h.polls) != 1 {
			t.Fatalf("expected the next poll to be scheduled, got %d", len(h.polls))
		}

		board.Authenticated = true
		board.Board = tu.SampleBoard()
		tick = h.polls[0]
		h.polls = nil
		h.send(tick)

		if !h.m.authenticated {
			t.Fatal("expected sign-in once the server confirms it")
		}
		if h.m.awaitingAuth {
			t.Error("expected polling to stop")
		}
		if board.ListCalls() != 1 {
			t.Errorf("expected 1 list call, got %d", board.ListCalls())
		}
		if len(h.polls) != 0 {
			t.Errorf("expected no further polls, got %d", len(h.polls))
		}
	})

	t.Run("Superseded poll is ignored", func(t *testing.T) {
		board := &tu.MockBoardService{}
		h := newHarness(t, board).start()
		h.typeText("c")
		old := h.polls[0]

		h.typeText("r")
		calls := board.AuthCalls()

		h.send(old)
		if board.AuthCalls() != calls {
			t.Errorf("expected superseded poll to be ignored, got %d auth calls (was %d)", board.AuthCalls(), calls)
		}
	})

	t.Run("Clicking Connect opens browser", func(t *testing.T) {
		h := newHarness(t, &tu.MockBoardService{}).start()

		x, y := h.find(connectLabel)
		h.click(x+2, y)

		if len(h.opened) != 1 {
			t.Errorf("expected browser to open once, got %d", len(h.opened))
		}
	})

	t.Run("Browser failure shows the URL", func(t *testing.T) {
		h := newHarness(t, &tu.MockBoardService{LoginURL: "http://example.com/login"}).start()
		h.m.opener = func(string) error { return errors.New("no browser") }

		h.typeText("c")

		if !strings.Contains(h.view(), "http://example.com/login") {
			t.Errorf("expected sign-in URL in view:\n%s", h.view())
		}
	})
}

func TestDisplay(t *testing.T) {
	t.Run("Empty Already Baked list", func(t *testing.T) {
		out := ansi.Strip(renderList(models.List{ID: "2", Name: models.AlreadyBakedName}))

		if !strings.Contains(out, "No baked muffins yet") {
			t.Errorf("expected baked placeholder, got:\n%s", out)
		}
		if !strings.Contains(out, "Already Baked  0") {
			t.Errorf("expected count 0, got:\n%s", out)
		}
	})

	t.Run("Empty To Bake list", func(t *testing.T) {
		out := ansi.Strip(renderList(models.List{ID: "1", Name: models.ToBakeName}))
		if !strings.Contains(out, "No muffins to bake yet") {
			t.Errorf("expected pending placeholder, got:\n%s", out)
		}
	})

	t.Run("Role tag chooses placeholder", func(t *testing.T) {
		out := ansi.Strip(renderList(models.List{ID: "1", Name: "Queue", Tag: models.RolePending}))
		if !strings.Contains(out, "No muffins to bake yet") {
			t.Errorf("expected pending placeholder for tagged list, got:\n%s", out)
		}

		out = ansi.Strip(renderList(models.List{ID: "3", Name: "Other"}))
		if !strings.Contains(out, "No baked muffins yet") {
			t.Errorf("expected baked placeholder for unknown list, got:\n%s", out)
		}
	})

	t.Run("Board keeps server order", func(t *testing.T) {
		out := ansi.Strip(renderBoard([]models.List{
			{ID: "2", Name: models.AlreadyBakedName},
			{ID: "1", Name: models.ToBakeName},
		}))

		first := strings.Index(out, models.AlreadyBakedName)
		second := strings.Index(out, models.ToBakeName)
		if first < 0 || second < 0 || first > second {
			t.Errorf("expected Already Baked before To Bake, got:\n%s", out)
		}
	})

	t.Run("Card shows description", func(t *testing.T) {
		out := ansi.Strip(renderCard(models.Card{ID: "c1", Name: "Strawberry Muffin", Description: "extra jam"}))
		if !strings.Contains(out, "Strawberry Muffin") || !strings.Contains(out, "extra jam") {
			t.Errorf("unexpected card:\n%s", out)
		}
	})
}
