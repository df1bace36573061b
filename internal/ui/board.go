package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/TaskBoard/internal/view"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"
	"github.com/josephgoksu/TaskBoard/types"
)

type BoardMode int

const (
	ModeList BoardMode = iota
	ModeAdd
	ModeSearch
	ModeConfirmDelete
)

// RemoteTimeout bounds each backend call made from the board.
const RemoteTimeout = 30 * time.Second

// BoardModel is the interactive task board.
type BoardModel struct {
	Mode     BoardMode
	Cursor   int
	Busy     int // remote calls in flight
	Status   string
	StatusOK bool
	ShowHelp bool
	Width    int

	// Components
	Spinner spinner.Model
	Input   textinput.Model

	// Dependencies
	Ctx     context.Context
	Ctrl    *view.Controller
	State   *store.AppState
	States  <-chan *store.AppState
	Configs <-chan types.ViewConfig
	Now     func() time.Time
}

// MsgStateChanged carries a new store snapshot.
type MsgStateChanged struct {
	State *store.AppState
}

// MsgActionDone reports a finished remote call.
type MsgActionDone struct {
	Action string
	Err    error
	Info   string
}

// MsgConfigChanged carries re-read view defaults from the config file.
type MsgConfigChanged struct {
	View types.ViewConfig
}

// NewBoardModel builds the board. states is usually app.TaskApp.Watch and
// configs may be nil when the config file is not watched.
func NewBoardModel(ctx context.Context, ctrl *view.Controller, states <-chan *store.AppState, configs <-chan types.ViewConfig) BoardModel {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StylePrimary

	return BoardModel{
		Mode:    ModeList,
		Busy:    1,
		Spinner: s,
		Input:   ti,
		Ctx:     ctx,
		Ctrl:    ctrl,
		State:   store.InitialState(),
		States:  states,
		Configs: configs,
		Now:     time.Now,
	}
}

// Init starts the initial load; Busy is already 1 for it.
func (m BoardModel) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		m.loadCmd(),
		waitForState(m.States),
		waitForConfig(m.Configs),
	)
}

func waitForState(ch <-chan *store.AppState) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return nil
		}
		return MsgStateChanged{State: state}
	}
}

func waitForConfig(ch <-chan types.ViewConfig) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return MsgConfigChanged{View: cfg}
	}
}

// remote runs fn as a command with a bounded context.
func (m BoardModel) remote(action string, fn func(ctx context.Context) (string, error)) tea.Cmd {
	parent := m.Ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RemoteTimeout)
		defer cancel()
		info, err := fn(ctx)
		return MsgActionDone{Action: action, Err: err, Info: info}
	}
}

func (m BoardModel) loadCmd() tea.Cmd {
	ctrl := m.Ctrl
	return m.remote("load", func(ctx context.Context) (string, error) {
		return "", ctrl.Load(ctx)
	})
}

// startRemote marks a call in flight and restarts the spinner when idle.
func (m BoardModel) startRemote(cmd tea.Cmd) (BoardModel, tea.Cmd) {
	m.Busy++
	if m.Busy == 1 {
		return m, tea.Batch(cmd, m.Spinner.Tick)
	}
	return m, cmd
}

func (m BoardModel) selected() (models.Task, bool) {
	visible := m.Ctrl.Visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m BoardModel) clampCursor() BoardModel {
	n := len(m.Ctrl.Visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}

func (m BoardModel) setStatus(msg string, ok bool) BoardModel {
	m.Status = msg
	m.StatusOK = ok
	return m
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.Busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case MsgStateChanged:
		m.State = msg.State
		return m.clampCursor(), waitForState(m.States)

	case MsgConfigChanged:
		m = m.applyViewConfig(msg.View)
		return m.clampCursor(), waitForConfig(m.Configs)

	case MsgActionDone:
		if m.Busy > 0 {
			m.Busy--
		}
		if msg.Err != nil {
			return m.setStatus(fmt.Sprintf("%s failed: %v", msg.Action, msg.Err), false), nil
		}
		if msg.Info != "" {
			m = m.setStatus(msg.Info, true)
		}
		return m.clampCursor(), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.Mode {
		case ModeAdd:
			return m.updateAdd(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m BoardModel) applyViewConfig(cfg types.ViewConfig) BoardModel {
	m.Ctrl.SetShowCompleted(cfg.ShowCompleted)
	m.Ctrl.SetPriorityFilter(models.Priority(cfg.Priority))
	if key, err := view.ParseSortKey(cfg.SortBy); err == nil {
		m.Ctrl.SetSortBy(key)
	}
	return m.setStatus("Config reloaded", true)
}

func (m BoardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.ShowHelp = !m.ShowHelp
	case "j", "down":
		m.Cursor++
		m = m.clampCursor()
	case "k", "up":
		m.Cursor--
		m = m.clampCursor()
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		m.Cursor = len(m.Ctrl.Visible()) - 1
		m = m.clampCursor()
	case " ", "x":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		ctrl := m.Ctrl
		return m.startRemote(m.remote("toggle", func(ctx context.Context) (string, error) {
			updated, err := ctrl.Toggle(ctx, task.ID)
			if err != nil {
				return "", err
			}
			if updated.Completed {
				return "Completed: " + updated.Title, nil
			}
			return "Reopened: " + updated.Title, nil
		}))
	case "d":
		if _, ok := m.selected(); ok {
			m.Mode = ModeConfirmDelete
		}
	case "a":
		m.Mode = ModeAdd
		m.Input.Placeholder = "New task title"
		m.Input.SetValue("")
		m.Input.Focus()
		return m, textinput.Blink
	case "/":
		m.Mode = ModeSearch
		m.Input.Placeholder = "Search title and description"
		m.Input.SetValue(m.Ctrl.ViewState().Filter.Search)
		m.Input.CursorEnd()
		m.Input.Focus()
		return m, textinput.Blink
	case "c":
		m.Ctrl.SetShowCompleted(!m.Ctrl.ViewState().Filter.ShowCompleted)
		m = m.clampCursor()
	case "p":
		m.Ctrl.SetPriorityFilter(nextPriority(m.Ctrl.ViewState().Filter.Priority))
		m = m.clampCursor()
	case "s":
		m.Ctrl.SetSortBy(nextSortKey(m.Ctrl.ViewState().SortBy))
	case "r":
		return m.startRemote(m.loadCmd())
	}
	return m, nil
}

func (m BoardModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.Input.Blur()
		return m, nil
	case "enter":
		m.Mode = ModeList
		m.Input.Blur()
		draft := m.Ctrl.Draft()
		draft.Title = m.Input.Value()
		m.Ctrl.SetDraft(draft)
		ctrl := m.Ctrl
		return m.startRemote(m.remote("add", func(ctx context.Context) (string, error) {
			submitted, err := ctrl.SubmitDraft(ctx)
			if err != nil {
				return "", err
			}
			if !submitted {
				return "", errors.New("title is required")
			}
			return "Task added", nil
		}))
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m BoardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Ctrl.SetSearchTerm("")
		m.Mode = ModeList
		m.Input.Blur()
		return m.clampCursor(), nil
	case "enter":
		m.Mode = ModeList
		m.Input.Blur()
		return m.clampCursor(), nil
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Ctrl.SetSearchTerm(m.Input.Value())
	return m.clampCursor(), cmd
}

func (m BoardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Mode = ModeList
	switch msg.String() {
	case "y", "Y":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		ctrl := m.Ctrl
		return m.startRemote(m.remote("delete", func(ctx context.Context) (string, error) {
			if err := ctrl.Delete(ctx, task.ID); err != nil {
				return "", err
			}
			return "Deleted: " + task.Title, nil
		}))
	default:
		return m.setStatus("Delete cancelled", true), nil
	}
}

func nextPriority(p models.Priority) models.Priority {
	switch p {
	case "":
		return models.PriorityHigh
	case models.PriorityHigh:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityLow
	default:
		return ""
	}
}

func nextSortKey(k view.SortKey) view.SortKey {
	keys := view.SortKeys()
	for i, key := range keys {
		if key == k {
			return keys[(i+1)%len(keys)]
		}
	}
	return view.DefaultSort
}

func (m BoardModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("TaskBoard") + " " + m.filterSummary() + "\n\n")

	visible := m.Ctrl.Visible()
	if len(visible) == 0 {
		sb.WriteString(StyleSubtle.Render(" No tasks to show.") + "\n")
	} else {
		sb.WriteString(m.renderRows(visible))
	}
	sb.WriteString(Footer(len(visible), m.Ctrl.CompletedCount()) + "\n\n")

	switch m.Mode {
	case ModeAdd, ModeSearch:
		sb.WriteString(StyleInputBox.Render(m.Input.View()) + "\n")
	case ModeConfirmDelete:
		if task, ok := m.selected(); ok {
			sb.WriteString(StyleWarning.Render(fmt.Sprintf("Delete %q? (y/n)", task.Title)) + "\n")
		}
	}

	if m.Busy > 0 {
		sb.WriteString(m.Spinner.View() + StyleSubtle.Render(" Working...") + "\n")
	} else if m.Status != "" {
		style := StyleError
		if m.StatusOK {
			style = StyleSuccess
		}
		sb.WriteString(style.Render(m.Status) + "\n")
	}

	if m.ShowHelp {
		sb.WriteString(StyleSubtle.Render(boardHelpLong) + "\n")
	} else {
		sb.WriteString(StyleSubtle.Render(boardHelp) + "\n")
	}
	return sb.String()
}

const (
	boardHelp     = "j/k move · space toggle · a add · d delete · / search · ? help · q quit"
	boardHelpLong = `j/k, ↑/↓  move          space, x  toggle complete
a         add task      d         delete (y/n)
/         search        c         show/hide completed
p         priority      s         cycle sort
r         reload        q         quit`
)

func (m BoardModel) filterSummary() string {
	vs := m.Ctrl.ViewState()
	parts := []string{"sort: " + string(vs.SortBy)}
	if !vs.Filter.ShowCompleted {
		parts = append(parts, "hiding completed")
	}
	if vs.Filter.Priority != "" {
		parts = append(parts, "priority: "+string(vs.Filter.Priority))
	}
	if vs.Filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", vs.Filter.Search))
	}
	return StyleSubtle.Render(strings.Join(parts, " | "))
}

func (m BoardModel) renderRows(visible []models.Task) string {
	table := TaskTable(visible, m.State, m.Now())
	table.Headers = append([]string{" "}, table.Headers...)
	for i := range table.Rows {
		marker := " "
		if i == m.Cursor {
			marker = ">"
		}
		table.Rows[i] = append([]string{marker}, table.Rows[i]...)
	}
	rowStyle := table.RowStyle
	table.RowStyle = func(row int) *lipgloss.Style {
		if row == m.Cursor {
			return &StyleCursor
		}
		return rowStyle(row)
	}
	if m.Width > 0 {
		table.MaxWidth = max(m.Width/3, 12)
	}
	return table.Render()
}

// RunBoard runs the board until the user quits.
func RunBoard(model BoardModel) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(model.Ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && model.Ctx.Err() != nil {
		return nil
	}
	return err
}
