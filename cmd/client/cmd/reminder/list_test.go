package reminder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminders/internal/domain/reminder"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []reminder.Reminder{
		{ID: "abc", Title: "Walk", Due: 1700000000, Priority: 2, Assignee: reminder.StringPtr("sam")},
		{ID: "def", Title: "Pay"},
	})

	out := buf.String()
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "2023-11-14T22:13:20Z")
	assert.Contains(t, out, "sam")
	assert.Contains(t, out, "Pay")
}

func TestPrintTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, nil)
	assert.Equal(t, "No reminders\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, []reminder.Reminder{{ID: "abc", Title: "Walk", Due: 1}}))
	assert.JSONEq(t, `[{"id":"abc","title":"Walk","due":1,"priority":0,"assignee":null}]`, buf.String())
}

func TestReadReminders(t *testing.T) {
	name := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(name, []byte(`[{"id":"a","title":"x","due":1},{"title":"y","due":2}]`), 0o600))

	reminders, err := readReminders(name)
	require.NoError(t, err)
	assert.Equal(t, []reminder.Reminder{{ID: "a", Title: "x", Due: 1}, {Title: "y", Due: 2}}, reminders)

	_, err = readReminders(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
