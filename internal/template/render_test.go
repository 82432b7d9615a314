package template

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReminder_Default(t *testing.T) {
	todo := TodoData{Title: "buy milk"}
	assert.Equal(t, "Reminder: buy milk", RenderReminder(DefaultReminderBody, todo, ""))
}

func TestRenderReminder_AllVariables(t *testing.T) {
	id := uuid.New()
	remind := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data := TodoDataFromModel(model.Todo{
		Meta:         model.Meta{ID: id},
		Title:        "call mom",
		Description:  "sunday",
		ReminderDate: &remind,
	})

	got := RenderReminder("{{user.username}}: {{todo.title}} ({{todo.description}}) @ {{todo.reminder_date}} #{{todo.id}}", data, "alice")
	assert.Equal(t, "alice: call mom (sunday) @ 2026-01-02T03:04:05Z #"+id.String(), got)
}

func TestRenderReminder_MissingReminderDate(t *testing.T) {
	data := TodoDataFromModel(model.Todo{Title: "x"})
	assert.Equal(t, "[]", RenderReminder("[{{todo.reminder_date}}]", data, ""))
}

func TestRenderReminderJSON_EscapesValues(t *testing.T) {
	data := TodoData{ID: "1", Title: `say "hi"` + "\n" + `and \ leave`}

	body := RenderReminderJSON(DefaultWebhookBody, data, "")

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Reminder: "+data.Title, out["text"])
	assert.Equal(t, "1", out["todoId"])
}
