// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/chat"
	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/services/auth"
	"taskdeck/internal/services/enrich"
	"taskdeck/internal/services/store"
	"taskdeck/internal/tasklist"
	"taskdeck/internal/types"
	authui "taskdeck/internal/ui/auth"
	"taskdeck/internal/ui/overlay"
	"taskdeck/internal/ui/styles"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Model is the main application state
type Model struct {
	// Current surface
	view    types.View
	session *domain.Session

	// Service clients
	authClient   *auth.Client
	storeClient  *store.Client
	enrichClient *enrich.Client

	// Controllers, one per store scope. The dashboard controller exists
	// only while signed in; the WhatsApp one is scope-independent.
	dashboard *tasklist.Controller
	whatsapp  *tasklist.Controller

	// Conversational insert
	chatAdapter *chat.Adapter

	// UI state
	authForm     *authui.Form
	overlayStack *overlay.Stack
	cursor       map[types.View]int
	pendingDel   string

	// Toasts
	toasts []Toast

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config  *config.Config
	timeout time.Duration

	// Loading state
	loading     bool
	authBusy    bool
	spinner     spinner.Model
	lastRefresh time.Time

	// Session-change subscription
	sessionCh   chan *domain.Session
	unsubscribe func()

	// Logger
	logger *slog.Logger
}

// New creates a new application model with the given config
func New(cfg *config.Config, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	httpClient := &http.Client{Timeout: time.Duration(cfg.Request.TimeoutMs) * time.Millisecond}

	authClient := auth.NewClient(cfg.Store.URL, cfg.Store.AnonKey, httpClient, logger)
	storeClient := store.NewClient(cfg.Store.URL, cfg.Store.AnonKey, httpClient, logger)
	storeClient.SetTokenSource(authClient.AccessToken)
	enrichClient := enrich.NewClient(cfg.Enrich.WebhookURL, httpClient, logger)

	whatsapp := tasklist.NewController(storeClient, enrichClient, domain.SharedScope(), logger)

	m := Model{
		view:         types.ViewAuth,
		authClient:   authClient,
		storeClient:  storeClient,
		enrichClient: enrichClient,
		whatsapp:     whatsapp,
		authForm:     authui.NewForm(),
		overlayStack: overlay.NewStack(),
		cursor:       make(map[types.View]int),
		toasts:       []Toast{},
		styles:       styles.New(),
		config:       cfg,
		timeout:      time.Duration(cfg.Request.TimeoutMs) * time.Millisecond,
		spinner:      s,
		sessionCh:    make(chan *domain.Session, 8),
		logger:       logger,
	}

	// The subscription outlives each view; the channel hands changes to
	// the event loop.
	m.unsubscribe = authClient.Subscribe(func(session *domain.Session) {
		m.sessionCh <- session
	})

	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.authForm.Init(),
		m.waitForSessionChange(),
		tickEvery(time.Second),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.authForm.SetWidth(msg.Width)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.teardown()
			return m, tea.Quit
		}
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		if m.view == types.ViewAuth {
			return m, m.authForm.Update(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)

	case sessionChangedMsg:
		return m.handleSessionChange(msg.session)

	case authui.ValidationMsg:
		m.addToast(Toast{Level: ToastWarning, Message: "Please enter your " + msg.Field, Expires: time.Now().Add(3 * time.Second)})
		return m, nil

	case authui.SubmitMsg:
		m.authBusy = true
		m.authForm.SetBusy(true)
		if msg.SignUp {
			return m, m.signUpCmd(msg.Email, msg.Password)
		}
		return m, m.signInCmd(msg.Email, msg.Password)

	case authResultMsg:
		m.authBusy = false
		m.authForm.SetBusy(false)
		if msg.err != nil {
			m.addToast(Toast{Level: ToastError, Message: msg.err.Error(), Expires: time.Now().Add(5 * time.Second)})
			return m, nil
		}
		if msg.signUp && m.authClient.Current() == nil {
			m.addToast(Toast{Level: ToastInfo, Message: "Check your email to confirm your account", Expires: time.Now().Add(8 * time.Second)})
		}
		// The view switch rides on the session-change subscription.
		return m, nil

	case tasksRefreshedMsg:
		if msg.err != nil {
			m.loading = false
			m.addToast(Toast{Level: ToastError, Message: msg.err.Error(), Expires: time.Now().Add(8 * time.Second)})
			return m, nil
		}
		wasLoading := m.loading
		m.loading = false
		m.lastRefresh = time.Now()
		m.clampCursor()
		if wasLoading {
			m.addToast(Toast{Level: ToastSuccess, Message: "Tasks loaded", Expires: time.Now().Add(3 * time.Second)})
		}
		return m, nil

	case taskActionMsg:
		return m.handleTaskAction(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		if _, ok := m.overlayStack.Current().(*overlay.ChatOverlay); ok {
			m.chatAdapter.Close()
		}
		m.overlayStack.Pop()
		return m, nil

	case overlay.TaskSubmittedMsg:
		return m, m.createTaskCmd(msg.Title, msg.Description)

	case overlay.EditSavedMsg:
		return m, m.commitEditCmd()

	case overlay.EditCancelledMsg:
		if ctrl := m.activeController(); ctrl != nil {
			ctrl.CancelEdit()
		}
		return m, nil

	case overlay.ChatSubmitMsg:
		if m.chatAdapter != nil && m.chatAdapter.Submit(msg.Text) {
			return m, m.chatProcessCmd()
		}
		return m, nil

	case chatProcessedMsg:
		m.chatAdapter.Complete(msg.err)
		// The overlay may have been dismissed while the insert was in
		// flight; the adapter close was held back so the completion
		// turn had a transcript to land on. Apply it now so the next
		// open starts from a fresh greeting.
		if _, ok := m.overlayStack.Current().(*overlay.ChatOverlay); !ok {
			m.chatAdapter.Close()
		}
		m.clampCursor()
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)
	}

	// Anything else goes to the open overlay (text input, blink).
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	if m.view == types.ViewAuth {
		return m, m.authForm.Update(msg)
	}

	return m, nil
}

// handleSessionChange reacts to sign-in and sign-out events from the
// session provider.
func (m Model) handleSessionChange(session *domain.Session) (tea.Model, tea.Cmd) {
	m.session = session

	if session == nil {
		m.dashboard = nil
		m.chatAdapter = nil
		m.view = types.ViewAuth
		m.overlayStack.Clear()
		m.authForm = authui.NewForm()
		m.authForm.SetWidth(m.width)
		return m, tea.Batch(m.authForm.Init(), m.waitForSessionChange())
	}

	m.dashboard = tasklist.NewController(m.storeClient, m.enrichClient, domain.OwnedScope(session.UserID), m.logger)
	m.chatAdapter = chat.NewAdapter(m.dashboard, m.logger)
	m.view = types.ViewDashboard
	m.loading = true
	m.addToast(Toast{Level: ToastSuccess, Message: "Signed in as " + session.Email, Expires: time.Now().Add(3 * time.Second)})

	return m, tea.Batch(
		m.refreshCmd(m.dashboard),
		m.refreshCmd(m.whatsapp),
		m.waitForSessionChange(),
	)
}

// handleTaskAction reacts to the outcome of a mutation command. The
// controller has already refreshed its snapshot on success.
func (m Model) handleTaskAction(msg taskActionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addToast(Toast{Level: ToastError, Message: actionErrorText(msg.action, msg.err), Expires: time.Now().Add(5 * time.Second)})
		// A failed commit keeps the edit overlay open for retry.
		return m, nil
	}

	m.clampCursor()
	m.lastRefresh = time.Now()

	switch msg.action {
	case actionCreate:
		m.addToast(Toast{Level: ToastSuccess, Message: "Task added!", Expires: time.Now().Add(3 * time.Second)})
	case actionComplete:
		m.addToast(Toast{Level: ToastSuccess, Message: "Task completed", Expires: time.Now().Add(3 * time.Second)})
	case actionEdit:
		m.addToast(Toast{Level: ToastSuccess, Message: "Task updated", Expires: time.Now().Add(3 * time.Second)})
		if _, ok := m.overlayStack.Current().(*overlay.EditTaskOverlay); ok {
			m.overlayStack.Pop()
		}
	case actionDelete:
		m.addToast(Toast{Level: ToastSuccess, Message: "Task deleted", Expires: time.Now().Add(3 * time.Second)})
	}

	return m, nil
}

// handleKey processes keyboard input on the task views
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.activeController()
	if ctrl == nil {
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.teardown()
		return m, tea.Quit

	case "ctrl+l":
		return m, tea.ClearScreen

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "g":
		m.cursor[m.view] = 0
		return m, nil

	case "G":
		m.cursor[m.view] = max(0, len(ctrl.Filtered())-1)
		return m, nil

	case "tab":
		if m.view == types.ViewDashboard {
			m.view = types.ViewWhatsApp
		} else {
			m.view = types.ViewDashboard
		}
		m.clampCursor()
		return m, nil

	case "r":
		return m, m.refreshCmd(ctrl)

	case "1":
		ctrl.SetFilter(domain.FilterAll)
		m.clampCursor()
		return m, nil

	case "2":
		ctrl.SetFilter(domain.FilterPending)
		m.clampCursor()
		return m, nil

	case "3":
		ctrl.SetFilter(domain.FilterCompleted)
		m.clampCursor()
		return m, nil

	case "enter":
		if task, ok := m.currentTask(); ok {
			ctrl.ToggleExpand(task.ID)
		}
		return m, nil

	case "a":
		if m.view == types.ViewDashboard {
			return m, m.overlayStack.Push(overlay.NewAddTaskOverlay())
		}
		return m, nil

	case "e":
		if m.view == types.ViewDashboard {
			if task, ok := m.currentTask(); ok {
				ctrl.BeginEdit(task)
				return m, m.overlayStack.Push(overlay.NewEditTaskOverlay(ctrl.Edit()))
			}
		}
		return m, nil

	case "x":
		if task, ok := m.currentTask(); ok && !task.Completed {
			return m, m.completeTaskCmd(task.ID)
		}
		return m, nil

	case "d":
		// Deleting is a WhatsApp-view affordance only.
		if m.view == types.ViewWhatsApp {
			if task, ok := m.currentTask(); ok {
				m.pendingDel = task.ID
				dialog := overlay.NewConfirmDialog("Delete Task", fmt.Sprintf("Delete %q? This cannot be undone.", task.Title))
				return m, m.overlayStack.Push(dialog)
			}
		}
		return m, nil

	case "c":
		if m.view == types.ViewDashboard && m.chatAdapter != nil {
			m.chatAdapter.Open()
			return m, m.overlayStack.Push(overlay.NewChatOverlay(m.chatAdapter))
		}
		return m, nil

	case "L":
		return m, m.signOutCmd()

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}

	return m, nil
}

// handleOverlayKey routes keys to the open overlay
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m, m.overlayStack.Update(msg)
}

// handleSelection handles confirm dialog results
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	if result, ok := msg.Value.(overlay.ConfirmResult); ok {
		m.overlayStack.Pop()
		id := m.pendingDel
		m.pendingDel = ""
		if result.Confirmed && id != "" {
			return m, m.deleteTaskCmd(id)
		}
	}
	return m, nil
}

// activeController returns the controller backing the current view.
func (m Model) activeController() *tasklist.Controller {
	switch m.view {
	case types.ViewDashboard:
		return m.dashboard
	case types.ViewWhatsApp:
		return m.whatsapp
	default:
		return nil
	}
}

func (m Model) currentTask() (domain.Task, bool) {
	ctrl := m.activeController()
	if ctrl == nil {
		return domain.Task{}, false
	}
	filtered := ctrl.Filtered()
	i := m.cursor[m.view]
	if i < 0 || i >= len(filtered) {
		return domain.Task{}, false
	}
	return filtered[i], true
}

func (m *Model) moveCursor(delta int) {
	ctrl := m.activeController()
	if ctrl == nil {
		return
	}
	n := len(ctrl.Filtered())
	if n == 0 {
		m.cursor[m.view] = 0
		return
	}
	i := m.cursor[m.view] + delta
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.cursor[m.view] = i
}

func (m *Model) clampCursor() {
	for _, view := range []types.View{types.ViewDashboard, types.ViewWhatsApp} {
		var ctrl *tasklist.Controller
		if view == types.ViewDashboard {
			ctrl = m.dashboard
		} else {
			ctrl = m.whatsapp
		}
		if ctrl == nil {
			m.cursor[view] = 0
			continue
		}
		n := len(ctrl.Filtered())
		if m.cursor[view] >= n {
			m.cursor[view] = max(0, n-1)
		}
	}
}

// teardown releases the session-change subscription.
func (m *Model) teardown() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Messages

type tickMsg time.Time

type sessionChangedMsg struct {
	session *domain.Session
}

type authResultMsg struct {
	signUp bool
	err    error
}

type tasksRefreshedMsg struct {
	err error
}

type taskAction int

const (
	actionCreate taskAction = iota
	actionComplete
	actionEdit
	actionDelete
)

type taskActionMsg struct {
	action taskAction
	err    error
}

type chatProcessedMsg struct {
	err error
}

func actionErrorText(action taskAction, err error) string {
	switch action {
	case actionCreate:
		return fmt.Sprintf("Error adding task: %v", err)
	case actionComplete:
		return fmt.Sprintf("Error completing task: %v", err)
	case actionEdit:
		return fmt.Sprintf("Error updating task: %v", err)
	case actionDelete:
		return fmt.Sprintf("Error deleting task: %v", err)
	default:
		return err.Error()
	}
}

// Commands

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForSessionChange blocks on the subscription channel and hands the
// next change to the event loop.
func (m Model) waitForSessionChange() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{session: <-m.sessionCh}
	}
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return authResultMsg{err: m.authClient.SignIn(ctx, email, password)}
	}
}

func (m Model) signUpCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return authResultMsg{signUp: true, err: m.authClient.SignUp(ctx, email, password)}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return authResultMsg{err: m.authClient.SignOut(ctx)}
	}
}

func (m Model) refreshCmd(ctrl *tasklist.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return tasksRefreshedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) createTaskCmd(title, description string) tea.Cmd {
	ctrl := m.dashboard
	return func() tea.Msg {
		// Enrichment plus insert plus reload; allow two round trips.
		ctx, cancel := context.WithTimeout(context.Background(), 3*m.timeout)
		defer cancel()
		return taskActionMsg{action: actionCreate, err: ctrl.Create(ctx, title, description)}
	}
}

func (m Model) completeTaskCmd(id string) tea.Cmd {
	ctrl := m.activeController()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return taskActionMsg{action: actionComplete, err: ctrl.Complete(ctx, id)}
	}
}

func (m Model) commitEditCmd() tea.Cmd {
	ctrl := m.activeController()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return taskActionMsg{action: actionEdit, err: ctrl.CommitEdit(ctx)}
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	ctrl := m.activeController()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return taskActionMsg{action: actionDelete, err: ctrl.Delete(ctx, id)}
	}
}

func (m Model) chatProcessCmd() tea.Cmd {
	adapter := m.chatAdapter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*m.timeout)
		defer cancel()
		return chatProcessedMsg{err: adapter.Process(ctx)}
	}
}

// Toast helpers

// addToast adds a toast notification to the list
func (m *Model) addToast(toast Toast) {
	m.toasts = append(m.toasts, toast)
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := time.Now()
	filtered := make([]Toast, 0, len(m.toasts))

	for _, toast := range m.toasts {
		if toast.Expires.After(now) {
			filtered = append(filtered, toast)
		}
	}

	m.toasts = filtered
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
