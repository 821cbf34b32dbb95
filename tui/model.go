package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fmizzell/kanby"
)

const (
	tickInterval    = 100 * time.Millisecond
	titleLimit      = 50
	projectLimit    = 30
	priorityLimit   = 5
	deleteConfirmed = "y"
)

// Saver queues workspace snapshots for persistence
type Saver interface {
	Enqueue(ws *kanby.Workspace, opts ...kanby.SaveOption) error
	Busy() bool
}

// SaveResultMsg delivers a save pipeline callback into the update loop
type SaveResultMsg struct {
	Text   string
	Failed bool
}

type tickMsg time.Time

type mode int

const (
	modeBoard mode = iota
	modeMove
	modePrompt
	modeConfirm
	modeProjects
)

type promptKind int

const (
	promptTaskTitle promptKind = iota
	promptTaskPriority
	promptEditTitle
	promptEditPriority
	promptNewProject
	promptRenameProject
)

type confirmKind int

const (
	confirmDeleteTask confirmKind = iota
	confirmDeleteProject
)

// Model is the interactive board
type Model struct {
	ws       *kanby.Workspace
	saver    Saver
	keys     KeyMap
	help     help.Model
	messages *MessageQueue

	project string
	col     int
	row     int
	mode    mode

	moveID     string
	moveOrigin kanby.TaskRef

	input      textinput.Model
	prompt     promptKind
	promptBack mode
	pending    string
	target     string

	confirm     confirmKind
	question    string
	confirmBack mode

	projectSel int

	width    int
	height   int
	quitting bool
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the clock used to expire status messages
func WithClock(clock func() time.Time) Option {
	return func(m *Model) {
		m.messages = NewMessageQueue(clock)
	}
}

// New creates a board over ws that persists through saver.
// The remembered project is opened first.
func New(ws *kanby.Workspace, saver Saver, opts ...Option) *Model {
	m := &Model{
		ws:       ws,
		saver:    saver,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		messages: NewMessageQueue(nil),
		input:    textinput.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if p := ws.CurrentProject(); p != nil {
		m.project = p.Name
	}
	return m
}

// Workspace returns the live workspace the board edits
func (m *Model) Workspace() *kanby.Workspace {
	return m.ws
}

// ProjectName returns the project on screen
func (m *Model) ProjectName() string {
	return m.project
}

// Messages exposes the status line queue
func (m *Model) Messages() *MessageQueue {
	return m.messages
}

// Init starts the message expiry ticker
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles one message
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.messages.Current()
		return m, tick()

	case SaveResultMsg:
		if msg.Failed {
			m.messages.Error(msg.Text)
		} else {
			m.messages.Success(msg.Text)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m.quit()
		}
		switch m.mode {
		case modePrompt:
			return m.updatePrompt(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeMove:
			return m.updateMove(msg)
		case modeProjects:
			return m.updateProjects(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.mode == modePrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.setColumn(m.col - 1)
	case key.Matches(msg, m.keys.Right):
		m.setColumn(m.col + 1)
	case key.Matches(msg, m.keys.Up):
		if n := len(m.columnTasks()); n > 0 {
			m.row = wrap(m.row-1, n)
		}
	case key.Matches(msg, m.keys.Down):
		if n := len(m.columnTasks()); n > 0 {
			m.row = wrap(m.row+1, n)
		}
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Projects):
		m.openProjects()
	case key.Matches(msg, m.keys.Add):
		return m, m.openPrompt(promptTaskTitle, "Task title: ", "", titleLimit, modeBoard)
	case key.Matches(msg, m.keys.Edit):
		task, ok := m.selectedTask()
		if !ok {
			m.messages.Error("No task to edit")
			return m, nil
		}
		m.target = task.ID
		return m, m.openPrompt(promptEditTitle, "New title: ", task.Title, titleLimit, modeBoard)
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selectedTask()
		if !ok {
			m.messages.Error("No task to delete")
			return m, nil
		}
		m.target = task.ID
		m.openConfirm(confirmDeleteTask, fmt.Sprintf("Delete '%s'? (y/N)", task.Title), modeBoard)
	case key.Matches(msg, m.keys.Move):
		task, ok := m.selectedTask()
		if !ok {
			m.messages.Error("No task to move")
			return m, nil
		}
		m.moveID = task.ID
		m.moveOrigin = kanby.TaskRef{Column: kanby.Columns[m.col], Index: m.row}
		m.mode = modeMove
	}
	return m, nil
}

func (m *Model) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		delta := 1
		if key.Matches(msg, m.keys.Left) {
			delta = -1
		}
		col := wrap(m.col+delta, len(kanby.Columns))
		if err := m.ws.MoveTask(m.project, m.moveID, kanby.Columns[col]); err != nil {
			m.messages.Error(err.Error())
			return m, nil
		}
		m.col = col
		m.row = len(m.columnTasks()) - 1
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		delta := 1
		if key.Matches(msg, m.keys.Up) {
			delta = -1
		}
		target := m.row + delta
		if target < 0 || target >= len(m.columnTasks()) {
			return m, nil
		}
		if err := m.ws.ShiftTask(m.project, m.moveID, delta); err != nil {
			m.messages.Error(err.Error())
			return m, nil
		}
		m.row = target
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBoard
		if kanby.Columns[m.col] == m.moveOrigin.Column && m.row == m.moveOrigin.Index {
			m.messages.Info("Task position unchanged")
		} else {
			m.messages.Info("Task moved successfully!")
		}
		m.save(true)
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBoard
		m.restoreMove()
		m.messages.Warning("Move cancelled")
	}
	return m, nil
}

// restoreMove puts the moving task back where move mode started
func (m *Model) restoreMove() {
	p := m.currentProject()
	if p == nil {
		return
	}
	task, err := m.ws.DeleteTask(m.project, m.moveID)
	if err != nil {
		return
	}
	p.InsertAt(m.moveOrigin.Column, m.moveOrigin.Index, task)
	m.col = kanby.ColumnIndex(m.moveOrigin.Column)
	m.row = m.moveOrigin.Index
}

func (m *Model) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.ws.ProjectNames()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.projectSel > 0 {
			m.projectSel--
		}
	case key.Matches(msg, m.keys.Down):
		if m.projectSel < len(names)-1 {
			m.projectSel++
		}
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBoard
		if m.projectSel < len(names) {
			m.switchProject(names[m.projectSel])
		}
	case key.Matches(msg, m.keys.New):
		return m, m.openPrompt(promptNewProject, "New project name: ", "", projectLimit, modeProjects)
	case key.Matches(msg, m.keys.Rename):
		if m.projectSel >= len(names) {
			return m, nil
		}
		m.target = names[m.projectSel]
		return m, m.openPrompt(promptRenameProject, fmt.Sprintf("Rename '%s' to: ", m.target), m.target, projectLimit, modeProjects)
	case key.Matches(msg, m.keys.Delete):
		if len(names) <= 1 {
			m.messages.Error("Cannot delete the last project!")
			return m, nil
		}
		m.target = names[m.projectSel]
		m.openConfirm(confirmDeleteProject, fmt.Sprintf("Delete '%s'? (y/N)", m.target), modeProjects)
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		m.mode = modeBoard
	}
	return m, nil
}

func (m *Model) openProjects() {
	m.mode = modeProjects
	m.projectSel = 0
	for i, name := range m.ws.ProjectNames() {
		if name == m.project {
			m.projectSel = i
			break
		}
	}
}

// switchProject shows another project and remembers it for the next start
func (m *Model) switchProject(name string) {
	if name == m.project {
		return
	}
	if err := m.ws.SetLastProject(name); err != nil {
		m.messages.Error(err.Error())
		return
	}
	m.project = name
	m.col, m.row = 0, 0
	m.save(false)
}

func (m *Model) openPrompt(kind promptKind, label, value string, limit int, back mode) tea.Cmd {
	m.prompt = kind
	m.promptBack = back
	m.mode = modePrompt
	m.input = textinput.New()
	m.input.Prompt = label
	m.input.CharLimit = limit
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.input.Blur()
	m.mode = m.promptBack
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		value := m.input.Value()
		m.closePrompt()
		return m, m.submitPrompt(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitPrompt(value string) tea.Cmd {
	switch m.prompt {
	case promptTaskTitle:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		m.pending = value
		return m.openPrompt(promptTaskPriority, priorityLabel(""), "M", priorityLimit, modeBoard)

	case promptTaskPriority:
		column := kanby.Columns[m.col]
		task, err := m.ws.AddTask(m.project, column, m.pending, kanby.ParsePriority(value, kanby.DefaultPriority))
		if err != nil {
			m.messages.Error(err.Error())
			return nil
		}
		m.row = len(m.columnTasks()) - 1
		m.save(true)
		m.messages.Info("Added task: " + task.Title)

	case promptEditTitle:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		task, _, err := m.ws.FindTask(m.project, m.target)
		if err != nil {
			m.messages.Error(err.Error())
			return nil
		}
		m.pending = value
		return m.openPrompt(promptEditPriority, priorityLabel(task.Priority), "", priorityLimit, modeBoard)

	case promptEditPriority:
		task, _, err := m.ws.FindTask(m.project, m.target)
		if err != nil {
			m.messages.Error(err.Error())
			return nil
		}
		priority := kanby.ParsePriority(value, task.Priority)
		if err := m.ws.EditTask(m.project, m.target, m.pending, priority); err != nil {
			m.messages.Error(err.Error())
			return nil
		}
		m.save(true)
		m.messages.Info("Task updated")

	case promptNewProject:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		p, err := m.ws.CreateProject(value)
		if err != nil {
			m.projectError(err)
			return nil
		}
		m.projectSel = len(m.ws.Projects) - 1
		m.save(false)
		m.messages.Info("Created project: " + p.Name)

	case promptRenameProject:
		newName := strings.TrimSpace(value)
		if newName == "" {
			return nil
		}
		if newName == m.target {
			m.messages.Info("Project name unchanged.")
			return nil
		}
		if err := m.ws.RenameProject(m.target, newName); err != nil {
			m.projectError(err)
			return nil
		}
		if m.project == m.target {
			m.project = newName
		}
		m.save(false)
		m.messages.Info(fmt.Sprintf("Renamed project: %s → %s", m.target, newName))
	}
	return nil
}

func (m *Model) projectError(err error) {
	switch {
	case errors.Is(err, kanby.ErrProjectExists):
		m.messages.Error("Project already exists!")
	case errors.Is(err, kanby.ErrReservedName):
		m.messages.Error("That name is reserved")
	default:
		m.messages.Error(err.Error())
	}
}

func (m *Model) openConfirm(kind confirmKind, question string, back mode) {
	m.confirm = kind
	m.question = question
	m.confirmBack = back
	m.mode = modeConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = m.confirmBack
	if !strings.EqualFold(msg.String(), deleteConfirmed) {
		m.messages.Info("Deletion cancelled")
		return m, nil
	}

	switch m.confirm {
	case confirmDeleteTask:
		if _, err := m.ws.DeleteTask(m.project, m.target); err != nil {
			m.messages.Error(err.Error())
			return m, nil
		}
		m.clampRow()
		m.save(true)
		m.messages.Info("Task deleted")

	case confirmDeleteProject:
		if err := m.ws.DeleteProject(m.target); err != nil {
			if errors.Is(err, kanby.ErrLastProject) {
				m.messages.Error("Cannot delete the last project!")
			} else {
				m.messages.Error(err.Error())
			}
			return m, nil
		}
		names := m.ws.ProjectNames()
		if m.projectSel >= len(names) {
			m.projectSel = len(names) - 1
		}
		if m.target == m.project {
			m.project = names[m.projectSel]
			m.col, m.row = 0, 0
			_ = m.ws.SetLastProject(m.project)
		}
		m.save(false)
		m.messages.Info("Deleted project: " + m.target)
	}
	return m, nil
}

// save queues a snapshot of the workspace
func (m *Model) save(feedback bool) {
	var opts []kanby.SaveOption
	if feedback {
		opts = append(opts, kanby.WithFeedback())
	}
	if err := m.saver.Enqueue(m.ws, opts...); err != nil {
		m.messages.Error("Save error: " + err.Error())
	}
}

func (m *Model) currentProject() *kanby.Project {
	if p := m.ws.Project(m.project); p != nil {
		return p
	}
	p := m.ws.CurrentProject()
	if p != nil {
		m.project = p.Name
	}
	return p
}

func (m *Model) columnTasks() []kanby.Task {
	p := m.currentProject()
	if p == nil {
		return nil
	}
	return p.Columns[kanby.Columns[m.col]]
}

func (m *Model) selectedTask() (kanby.Task, bool) {
	tasks := m.columnTasks()
	if m.row < 0 || m.row >= len(tasks) {
		return kanby.Task{}, false
	}
	return tasks[m.row], true
}

func (m *Model) setColumn(col int) {
	m.col = wrap(col, len(kanby.Columns))
	m.clampRow()
}

func (m *Model) clampRow() {
	n := len(m.columnTasks())
	if m.row > n-1 {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// priorityLabel lists the accepted priority letters, showing current when set
func priorityLabel(current kanby.Priority) string {
	letters := make([]string, 0, len(kanby.Priorities))
	for _, p := range kanby.Priorities {
		letters = append(letters, string(p)[:1])
	}
	label := "Priority (" + strings.Join(letters, "/") + ")"
	if current != "" {
		label += fmt.Sprintf(" [%s]", current)
	}
	return label + ": "
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
