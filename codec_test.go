package kanby

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWorkspace_LegacyBoard(t *testing.T) {
	ws, err := DecodeWorkspace([]byte(`{"To Do":[{"title":"X"}],"In Progress":[],"Done":[]}`))
	require.NoError(t, err)

	require.Len(t, ws.Projects, 1)
	p := ws.Projects[0]
	assert.Equal(t, DefaultProjectName, p.Name)
	require.Len(t, p.Columns[ColumnTodo], 1)

	task := p.Columns[ColumnTodo][0]
	assert.Equal(t, "X", task.Title)
	assert.Equal(t, PriorityMid, task.Priority)
	assert.Len(t, task.ID, TaskIDLength)
	assert.Empty(t, p.Columns[ColumnInProgress])
	assert.Empty(t, p.Columns[ColumnDone])
	assert.Nil(t, ws.Meta)
}

func TestDecodeWorkspace_LegacyExtraListsFeedTodo(t *testing.T) {
	data := `{
		"Backlog": [{"id": "b1", "title": "From backlog"}, "junk", 3],
		"To Do": [{"id": "t1", "title": "Planned"}],
		"Done": [{"id": "d1", "title": "Shipped", "priority": "High"}],
		"notes": "not a list"
	}`
	ws, err := DecodeWorkspace([]byte(data))
	require.NoError(t, err)
	require.Len(t, ws.Projects, 1)

	p := ws.Projects[0]
	assert.Equal(t, []Task{
		{ID: "t1", Title: "Planned", Priority: PriorityMid},
		{ID: "b1", Title: "From backlog", Priority: PriorityMid},
	}, p.Columns[ColumnTodo])
	assert.Equal(t, []Task{{ID: "d1", Title: "Shipped", Priority: PriorityHigh}}, p.Columns[ColumnDone])
	assert.Empty(t, p.Columns[ColumnInProgress])
}

func TestDecodeWorkspace_OneMalformedProjectTriggersLegacy(t *testing.T) {
	data := `{
		"Work": {"To Do": [{"id": "w1", "title": "Dropped"}]},
		"Loose": [{"id": "l1", "title": "Kept"}]
	}`
	ws, err := DecodeWorkspace([]byte(data))
	require.NoError(t, err)

	require.Len(t, ws.Projects, 1)
	assert.Equal(t, DefaultProjectName, ws.Projects[0].Name)
	assert.Equal(t, []Task{{ID: "l1", Title: "Kept", Priority: PriorityMid}}, ws.Projects[0].Columns[ColumnTodo])
}

func TestDecodeWorkspace_NormalizesProjects(t *testing.T) {
	data := `{
		"Zeta": {"To Do": [
			{"id": "a", "title": "ok", "priority": "Low"},
			{"id": "b", "title": 42, "priority": "Urgent"},
			"not a task",
			[1, 2],
			{"title": "no id"}
		]},
		"Alpha": {"To Do": [], "Done": [{"id": "c", "title": "done"}]},
		"Empty": {}
	}`
	ws, err := DecodeWorkspace([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "Alpha", "Empty"}, ws.ProjectNames())

	zeta := ws.Project("Zeta")
	require.Len(t, zeta.Columns[ColumnTodo], 3)
	assert.Equal(t, Task{ID: "a", Title: "ok", Priority: PriorityLow}, zeta.Columns[ColumnTodo][0])
	assert.Equal(t, Task{ID: "b", Title: "", Priority: PriorityMid}, zeta.Columns[ColumnTodo][1])
	assert.Equal(t, "no id", zeta.Columns[ColumnTodo][2].Title)
	assert.Len(t, zeta.Columns[ColumnTodo][2].ID, TaskIDLength)

	for _, p := range ws.Projects {
		for _, c := range Columns {
			assert.NotNil(t, p.Columns[c], "%s/%s", p.Name, c)
			for _, task := range p.Columns[c] {
				assert.NotEmpty(t, task.ID)
				assert.True(t, task.Priority.Valid())
			}
		}
	}
}

func TestDecodeWorkspace_Meta(t *testing.T) {
	ws, err := DecodeWorkspace([]byte(`{"A": {"To Do": []}, "_meta": {"last_project": "A"}}`))
	require.NoError(t, err)
	require.NotNil(t, ws.Meta)
	assert.Equal(t, "A", ws.Meta.LastProject)
	assert.Equal(t, []string{"A"}, ws.ProjectNames())

	ws, err = DecodeWorkspace([]byte(`{"A": {"To Do": []}}`))
	require.NoError(t, err)
	assert.Nil(t, ws.Meta)

	// metadata alone yields the default project but keeps the metadata
	ws, err = DecodeWorkspace([]byte(`{"_meta": {"last_project": "A"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultProjectName}, ws.ProjectNames())
	require.NotNil(t, ws.Meta)
	assert.Equal(t, "A", ws.Meta.LastProject)
	assert.Equal(t, DefaultProjectName, ws.CurrentProject().Name)
}

func TestDecodeWorkspace_BlankProjectNames(t *testing.T) {
	data := `{
		"": {"To Do": [{"id": "aaaaaaaa", "title": "orphan"}]},
		"  ": {"To Do": []},
		" Work ": {"To Do": []},
		"Work": {"To Do": [], "Done": []},
		"_meta": {"last_project": " Work "}
	}`

	ws, err := DecodeWorkspace([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Untitled Project", "Untitled Project 2", "Work", "Work 2"}, ws.ProjectNames())
	assert.Equal(t, "orphan", ws.Project("Untitled Project").Columns[ColumnTodo][0].Title)
	require.NotNil(t, ws.Meta)
	assert.Equal(t, "Work", ws.Meta.LastProject)
}

func TestDecodeWorkspace_CorruptInputHealsToDefault(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "   \n"},
		{"truncated", `{"A": {"To Do": [`},
		{"not json", "hello"},
		{"array", `[{"title": "x"}]`},
		{"string", `"board"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := DecodeWorkspace([]byte(tt.data))
			assert.ErrorIs(t, err, ErrCorruptDocument)
			assert.Equal(t, DefaultWorkspace(), ws)
		})
	}
}

func TestDecodeWorkspace_EmptyObject(t *testing.T) {
	ws, err := DecodeWorkspace([]byte(`{}`))
	assert.NoError(t, err)
	assert.Equal(t, DefaultWorkspace(), ws)
}

func TestDecodeWorkspace_GeneratedIDsAreUnique(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"P": {"To Do": [`)
	for i := 0; i < 200; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"title": "t"}`)
	}
	b.WriteString(`]}}`)

	ws, err := DecodeWorkspace([]byte(b.String()))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, task := range ws.Project("P").Columns[ColumnTodo] {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	assert.Len(t, seen, 200)
}

func TestEncodeWorkspace_RoundTrip(t *testing.T) {
	ws := &Workspace{
		Projects: []*Project{NewProject("Work"), NewProject("Home")},
		Meta:     &Meta{LastProject: "Home"},
	}
	_, err := ws.AddTask("Work", ColumnTodo, "Write report", PriorityHigh)
	require.NoError(t, err)
	_, err = ws.AddTask("Work", ColumnDone, `Quote "this" <ok>`, PriorityLow)
	require.NoError(t, err)
	_, err = ws.AddTask("Home", ColumnInProgress, "Fix sink ☕", PriorityMid)
	require.NoError(t, err)

	data, err := EncodeWorkspace(ws)
	require.NoError(t, err)

	loaded, err := DecodeWorkspace(data)
	require.NoError(t, err)
	assert.Equal(t, ws, loaded)

	again, err := EncodeWorkspace(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestEncodeWorkspace_Layout(t *testing.T) {
	ws := &Workspace{
		Projects: []*Project{NewProject("B"), NewProject("A")},
		Meta:     &Meta{},
	}
	data, err := EncodeWorkspace(ws)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "{\n  \"B\": {\n    \"To Do\": []"), out)
	assert.Less(t, strings.Index(out, `"B"`), strings.Index(out, `"A"`))
	assert.Less(t, strings.Index(out, `"To Do"`), strings.Index(out, `"In Progress"`))
	assert.Less(t, strings.Index(out, `"In Progress"`), strings.Index(out, `"Done"`))
	assert.Contains(t, out, `"_meta": {}`)

	// an empty meta object still counts as present
	loaded, err := DecodeWorkspace(data)
	require.NoError(t, err)
	assert.Equal(t, ws, loaded)
}
