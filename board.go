package kanby

import (
	"fmt"
	"strings"
)

// TaskRef locates a task inside a project
type TaskRef struct {
	Column string
	Index  int
}

// CurrentProject returns the project named in metadata, falling back to the first one
func (w *Workspace) CurrentProject() *Project {
	if p := w.Project(w.LastProject()); p != nil {
		return p
	}
	if len(w.Projects) == 0 {
		return nil
	}
	return w.Projects[0]
}

// LastProject returns the remembered project name, or ""
func (w *Workspace) LastProject() string {
	if w.Meta == nil {
		return ""
	}
	return w.Meta.LastProject
}

// SetLastProject remembers name as the project to open next time
func (w *Workspace) SetLastProject(name string) error {
	if w.Project(name) == nil {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if w.Meta == nil {
		w.Meta = &Meta{}
	}
	w.Meta.LastProject = name
	return nil
}

// CreateProject appends a new empty project
func (w *Workspace) CreateProject(name string) (*Project, error) {
	name, err := w.validateProjectName(name)
	if err != nil {
		return nil, err
	}
	p := NewProject(name)
	w.Projects = append(w.Projects, p)
	return p, nil
}

// RenameProject renames a project in place, keeping its position.
// The remembered last project follows the rename.
func (w *Workspace) RenameProject(oldName, newName string) error {
	p := w.Project(oldName)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, oldName)
	}
	if strings.TrimSpace(newName) == oldName {
		return nil
	}
	name, err := w.validateProjectName(newName)
	if err != nil {
		return err
	}
	p.Name = name
	if w.Meta != nil && w.Meta.LastProject == oldName {
		w.Meta.LastProject = name
	}
	return nil
}

// DeleteProject removes a project. The last remaining project cannot be deleted.
func (w *Workspace) DeleteProject(name string) error {
	idx := -1
	for i, p := range w.Projects {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if len(w.Projects) <= 1 {
		return ErrLastProject
	}
	w.Projects = append(w.Projects[:idx], w.Projects[idx+1:]...)
	if w.Meta != nil && w.Meta.LastProject == name {
		w.Meta.LastProject = w.Projects[0].Name
	}
	return nil
}

func (w *Workspace) validateProjectName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if name == MetaKey {
		return "", fmt.Errorf("%w: %s", ErrReservedName, name)
	}
	if w.Project(name) != nil {
		return "", fmt.Errorf("%w: %s", ErrProjectExists, name)
	}
	return name, nil
}

// AddTask appends a new task to a column of a project
func (w *Workspace) AddTask(project, column, title string, priority Priority) (Task, error) {
	p, err := w.lookupProject(project)
	if err != nil {
		return Task{}, err
	}
	if !IsColumn(column) {
		return Task{}, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyName
	}
	if !priority.Valid() {
		priority = DefaultPriority
	}

	task := Task{ID: w.NewTaskID(), Title: title, Priority: priority}
	p.Columns[column] = append(p.Columns[column], task)
	return task, nil
}

// EditTask replaces a task's title and priority
func (w *Workspace) EditTask(project, id, title string, priority Priority) error {
	p, ref, err := w.locate(project, id)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyName
	}
	if !priority.Valid() {
		priority = DefaultPriority
	}
	t := &p.Columns[ref.Column][ref.Index]
	t.Title = title
	t.Priority = priority
	return nil
}

// MoveTask moves a task to the end of another column
func (w *Workspace) MoveTask(project, id, column string) error {
	if !IsColumn(column) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	p, ref, err := w.locate(project, id)
	if err != nil {
		return err
	}
	if ref.Column == column {
		return nil
	}
	task := p.removeAt(ref)
	p.Columns[column] = append(p.Columns[column], task)
	return nil
}

// ShiftTask moves a task up (negative delta) or down within its column,
// swapping with its neighbour. Moves past either end are ignored.
func (w *Workspace) ShiftTask(project, id string, delta int) error {
	p, ref, err := w.locate(project, id)
	if err != nil {
		return err
	}
	tasks := p.Columns[ref.Column]
	target := ref.Index + delta
	if delta == 0 || target < 0 || target >= len(tasks) {
		return nil
	}
	tasks[ref.Index], tasks[target] = tasks[target], tasks[ref.Index]
	return nil
}

// DeleteTask removes a task from its project
func (w *Workspace) DeleteTask(project, id string) (Task, error) {
	p, ref, err := w.locate(project, id)
	if err != nil {
		return Task{}, err
	}
	return p.removeAt(ref), nil
}

// FindTask returns where a task lives in a project
func (w *Workspace) FindTask(project, id string) (Task, TaskRef, error) {
	p, ref, err := w.locate(project, id)
	if err != nil {
		return Task{}, TaskRef{}, err
	}
	return p.Columns[ref.Column][ref.Index], ref, nil
}

// Find returns where a task lives in this project
func (p *Project) Find(id string) (TaskRef, bool) {
	for _, c := range Columns {
		for i, t := range p.Columns[c] {
			if t.ID == id {
				return TaskRef{Column: c, Index: i}, true
			}
		}
	}
	return TaskRef{}, false
}

// InsertAt places a task at a position in a column, clamping the index
func (p *Project) InsertAt(column string, index int, task Task) {
	tasks := p.Columns[column]
	if index < 0 {
		index = 0
	}
	if index > len(tasks) {
		index = len(tasks)
	}
	tasks = append(tasks, Task{})
	copy(tasks[index+1:], tasks[index:])
	tasks[index] = task
	p.Columns[column] = tasks
}

func (p *Project) removeAt(ref TaskRef) Task {
	tasks := p.Columns[ref.Column]
	task := tasks[ref.Index]
	p.Columns[ref.Column] = append(tasks[:ref.Index:ref.Index], tasks[ref.Index+1:]...)
	return task
}

func (w *Workspace) lookupProject(name string) (*Project, error) {
	p := w.Project(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return p, nil
}

func (w *Workspace) locate(project, id string) (*Project, TaskRef, error) {
	p, err := w.lookupProject(project)
	if err != nil {
		return nil, TaskRef{}, err
	}
	ref, ok := p.Find(id)
	if !ok {
		return nil, TaskRef{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return p, ref, nil
}

// ParsePriority reads a priority from user input by its first letter (L, M or H).
// Empty or unrecognised input yields fallback.
func ParsePriority(input string, fallback Priority) Priority {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	for _, p := range Priorities {
		if strings.EqualFold(input[:1], string(p)[:1]) {
			return p
		}
	}
	return fallback
}
