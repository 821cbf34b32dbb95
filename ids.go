package kanby

import "github.com/google/uuid"

// TaskIDLength is the number of characters in a generated task id
const TaskIDLength = 8

const maxIDAttempts = 16

// NewTaskID generates a short random task id
func NewTaskID() string {
	return uuid.New().String()[:TaskIDLength]
}

// NewTaskID generates a task id not already used anywhere in the workspace
func (w *Workspace) NewTaskID() string {
	used := w.taskIDs()
	id := NewTaskID()
	for i := 1; i < maxIDAttempts; i++ {
		if _, taken := used[id]; !taken {
			break
		}
		id = NewTaskID()
	}
	return id
}

func (w *Workspace) taskIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, p := range w.Projects {
		for _, c := range Columns {
			for _, t := range p.Columns[c] {
				ids[t.ID] = struct{}{}
			}
		}
	}
	return ids
}
