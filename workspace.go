package kanby

// Column names. Every project holds exactly these three, in this order.
const (
	ColumnTodo       = "To Do"
	ColumnInProgress = "In Progress"
	ColumnDone       = "Done"
)

// Columns lists the fixed column names in board order
var Columns = []string{ColumnTodo, ColumnInProgress, ColumnDone}

// DefaultProjectName is the project synthesized for an empty or unreadable workspace
const DefaultProjectName = "Default Project"

// MetaKey is the reserved top-level key holding workspace metadata
const MetaKey = "_meta"

// Priority is a task's importance
type Priority string

const (
	PriorityLow  Priority = "Low"
	PriorityMid  Priority = "Mid"
	PriorityHigh Priority = "High"
)

// Priorities lists the valid priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMid, PriorityHigh}

// DefaultPriority is assigned when none is given or the stored one is unknown
const DefaultPriority = PriorityMid

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Task represents a card on the board
type Task struct {
	ID       string
	Title    string
	Priority Priority
}

// Project is a named board with the three fixed columns
type Project struct {
	Name    string
	Columns map[string][]Task
}

// Meta holds workspace-level settings stored under "_meta"
type Meta struct {
	LastProject string
}

// Workspace is the whole persisted document
type Workspace struct {
	Projects []*Project
	Meta     *Meta
}

// IsColumn reports whether name is one of the fixed columns
func IsColumn(name string) bool {
	return ColumnIndex(name) >= 0
}

// ColumnIndex returns the board position of a column, or -1
func ColumnIndex(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// NewProject creates a project with three empty columns
func NewProject(name string) *Project {
	p := &Project{
		Name:    name,
		Columns: make(map[string][]Task, len(Columns)),
	}
	for _, c := range Columns {
		p.Columns[c] = []Task{}
	}
	return p
}

// DefaultWorkspace returns a workspace holding only the default project
func DefaultWorkspace() *Workspace {
	return &Workspace{
		Projects: []*Project{NewProject(DefaultProjectName)},
	}
}

// Project returns the project with the given name, or nil
func (w *Workspace) Project(name string) *Project {
	for _, p := range w.Projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ProjectNames returns project names in workspace order
func (w *Workspace) ProjectNames() []string {
	names := make([]string, 0, len(w.Projects))
	for _, p := range w.Projects {
		names = append(names, p.Name)
	}
	return names
}

// TaskCount returns the number of tasks across all projects
func (w *Workspace) TaskCount() int {
	n := 0
	for _, p := range w.Projects {
		for _, c := range Columns {
			n += len(p.Columns[c])
		}
	}
	return n
}

// Clone returns a deep copy that shares no slices or maps with w
func (w *Workspace) Clone() *Workspace {
	if w == nil {
		return nil
	}
	out := &Workspace{
		Projects: make([]*Project, 0, len(w.Projects)),
	}
	for _, p := range w.Projects {
		out.Projects = append(out.Projects, p.Clone())
	}
	if w.Meta != nil {
		meta := *w.Meta
		out.Meta = &meta
	}
	return out
}

// Clone returns a deep copy of the project
func (p *Project) Clone() *Project {
	out := &Project{
		Name:    p.Name,
		Columns: make(map[string][]Task, len(p.Columns)),
	}
	for name, tasks := range p.Columns {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		out.Columns[name] = cp
	}
	return out
}
