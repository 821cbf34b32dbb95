package kanby

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

const (
	lastProjectKey      = "last_project"
	untitledProjectName = "Untitled Project"
)

// entry is one top-level key of a stored document, in document order
type entry struct {
	key  string
	node *ast.Node
}

// DecodeWorkspace converts stored bytes into a normalized workspace.
// It always returns a usable workspace. A non-nil error means the input was
// discarded and the default workspace returned in its place.
func DecodeWorkspace(data []byte) (*Workspace, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultWorkspace(), fmt.Errorf("%w: empty document", ErrCorruptDocument)
	}
	if !sonic.Valid(data) {
		return DefaultWorkspace(), fmt.Errorf("%w: invalid JSON", ErrCorruptDocument)
	}

	root, err := sonic.Get(data)
	if err != nil {
		return DefaultWorkspace(), fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if err := root.LoadAll(); err != nil {
		return DefaultWorkspace(), fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if root.TypeSafe() != ast.V_OBJECT {
		return DefaultWorkspace(), fmt.Errorf("%w: top level is not an object", ErrCorruptDocument)
	}

	entries, err := objectEntries(&root)
	if err != nil {
		return DefaultWorkspace(), fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	// Metadata is pulled out before the shape check so it never looks like a project
	var meta *Meta
	projects := entries[:0:0]
	for _, e := range entries {
		if e.key == MetaKey {
			meta = decodeMeta(e.node)
			continue
		}
		projects = append(projects, e)
	}

	ws := &Workspace{}
	if isProjectDocument(projects) {
		used := map[string]bool{MetaKey: true}
		for _, e := range projects {
			name := uniqueProjectName(e.key, used)
			if meta != nil && meta.LastProject == e.key {
				meta.LastProject = name
			}
			ws.Projects = append(ws.Projects, decodeProject(name, e.node))
		}
	} else {
		ws.Projects = []*Project{migrateLegacy(projects)}
	}

	if len(ws.Projects) == 0 {
		ws = DefaultWorkspace()
	}
	ws.Meta = meta
	ws.assignMissingIDs()
	return ws, nil
}

// EncodeWorkspace renders the workspace as indented JSON.
// Projects keep their order; columns are written in board order; "_meta" comes last.
func EncodeWorkspace(w *Workspace) ([]byte, error) {
	pairs := make([]ast.Pair, 0, len(w.Projects)+1)
	for _, p := range w.Projects {
		cols := make([]ast.Pair, 0, len(Columns))
		for _, c := range Columns {
			cols = append(cols, ast.NewPair(c, encodeTasks(p.Columns[c])))
		}
		pairs = append(pairs, ast.NewPair(p.Name, ast.NewObject(cols)))
	}
	if w.Meta != nil {
		fields := []ast.Pair{}
		if w.Meta.LastProject != "" {
			fields = append(fields, ast.NewPair(lastProjectKey, ast.NewString(w.Meta.LastProject)))
		}
		pairs = append(pairs, ast.NewPair(MetaKey, ast.NewObject(fields)))
	}

	root := ast.NewObject(pairs)
	data, err := sonic.ConfigDefault.MarshalIndent(&root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode workspace: %w", err)
	}
	return data, nil
}

func encodeTasks(tasks []Task) ast.Node {
	nodes := make([]ast.Node, 0, len(tasks))
	for _, t := range tasks {
		nodes = append(nodes, ast.NewObject([]ast.Pair{
			ast.NewPair("id", ast.NewString(t.ID)),
			ast.NewPair("title", ast.NewString(t.Title)),
			ast.NewPair("priority", ast.NewString(string(t.Priority))),
		}))
	}
	return ast.NewArray(nodes)
}

// objectEntries lists an object's keys in document order.
// A repeated key keeps its first position and takes the last value.
func objectEntries(obj *ast.Node) ([]entry, error) {
	var entries []entry
	index := make(map[string]int)
	err := obj.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		if path.Key == nil {
			return true
		}
		if i, ok := index[*path.Key]; ok {
			entries[i].node = node
			return true
		}
		index[*path.Key] = len(entries)
		entries = append(entries, entry{key: *path.Key, node: node})
		return true
	})
	return entries, err
}

// isProjectDocument reports whether every non-empty top-level value is an
// object carrying a "To Do" key. Anything else is treated as the legacy
// single-board layout.
func isProjectDocument(entries []entry) bool {
	for _, e := range entries {
		if isEmptyValue(e.node) {
			continue
		}
		if e.node.TypeSafe() != ast.V_OBJECT || !hasKey(e.node, ColumnTodo) {
			return false
		}
	}
	return true
}

// migrateLegacy folds a single-board document into the default project.
// Keys naming a column become that column; other lists feed "To Do".
func migrateLegacy(entries []entry) *Project {
	p := NewProject(DefaultProjectName)
	var extra []Task
	for _, e := range entries {
		if IsColumn(e.key) {
			p.Columns[e.key] = decodeTasks(e.node)
			continue
		}
		if e.node.TypeSafe() == ast.V_ARRAY {
			extra = append(extra, decodeTasks(e.node)...)
		}
	}
	p.Columns[ColumnTodo] = append(p.Columns[ColumnTodo], extra...)
	return p
}

// uniqueProjectName trims a stored name and makes it non-empty and distinct from used
func uniqueProjectName(name string, used map[string]bool) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = untitledProjectName
	}
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s %d", name, i)
	}
	used[candidate] = true
	return candidate
}

func decodeProject(name string, node *ast.Node) *Project {
	p := NewProject(name)
	if node.TypeSafe() != ast.V_OBJECT {
		return p
	}
	for _, c := range Columns {
		col := node.Get(c)
		if col.Exists() {
			p.Columns[c] = decodeTasks(col)
		}
	}
	return p
}

// decodeTasks keeps object-shaped entries of a list and drops everything else.
// Missing ids are left empty for assignMissingIDs.
func decodeTasks(node *ast.Node) []Task {
	tasks := []Task{}
	if node.TypeSafe() != ast.V_ARRAY {
		return tasks
	}
	_ = node.ForEach(func(_ ast.Sequence, item *ast.Node) bool {
		if item.TypeSafe() != ast.V_OBJECT {
			return true
		}
		id, _ := stringField(item, "id")
		title, _ := stringField(item, "title")
		priority := DefaultPriority
		if s, ok := stringField(item, "priority"); ok && Priority(s).Valid() {
			priority = Priority(s)
		}
		tasks = append(tasks, Task{ID: id, Title: title, Priority: priority})
		return true
	})
	return tasks
}

func decodeMeta(node *ast.Node) *Meta {
	if node.TypeSafe() != ast.V_OBJECT {
		return nil
	}
	last, _ := stringField(node, lastProjectKey)
	return &Meta{LastProject: last}
}

func (w *Workspace) assignMissingIDs() {
	used := w.taskIDs()
	for _, p := range w.Projects {
		for _, c := range Columns {
			tasks := p.Columns[c]
			for i := range tasks {
				if tasks[i].ID != "" {
					continue
				}
				id := NewTaskID()
				for attempt := 1; attempt < maxIDAttempts; attempt++ {
					if _, taken := used[id]; !taken {
						break
					}
					id = NewTaskID()
				}
				used[id] = struct{}{}
				tasks[i].ID = id
			}
		}
	}
}

func stringField(obj *ast.Node, key string) (string, bool) {
	n := obj.Get(key)
	if !n.Exists() || n.TypeSafe() != ast.V_STRING {
		return "", false
	}
	s, err := n.String()
	if err != nil {
		return "", false
	}
	return s, true
}

func hasKey(obj *ast.Node, key string) bool {
	return obj.Get(key).Exists()
}

// isEmptyValue matches null, false, zero, and empty strings, lists and objects
func isEmptyValue(n *ast.Node) bool {
	switch n.TypeSafe() {
	case ast.V_NULL, ast.V_FALSE:
		return true
	case ast.V_STRING:
		s, _ := n.String()
		return s == ""
	case ast.V_NUMBER:
		f, err := n.Float64()
		return err == nil && f == 0
	case ast.V_ARRAY, ast.V_OBJECT:
		l, err := n.Len()
		return err == nil && l == 0
	}
	return false
}
