// Package template provides reminder notification body rendering.
//
// 지원하는 변수 형식:
//
//	{{todo.id}}, {{todo.title}}, {{todo.description}},
//	{{todo.reminder_date}}, {{user.username}}
package template

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/notelog/backend/internal/model"
)

// DefaultReminderBody - 알림 본문 기본값
const DefaultReminderBody = "Reminder: {{todo.title}}"

// DefaultWebhookBody - webhook 전송 시 기본 JSON 본문
const DefaultWebhookBody = `{"title":"Todo Reminder","text":"Reminder: {{todo.title}}","todoId":"{{todo.id}}","reminderDate":"{{todo.reminder_date}}"}`

// TodoData - 템플릿 렌더링에 사용할 Todo 데이터
type TodoData struct {
	ID           string
	Title        string
	Description  string
	ReminderDate time.Time
}

// TodoDataFromModel - model.Todo에서 TodoData 생성
func TodoDataFromModel(todo model.Todo) TodoData {
	var remind time.Time
	if todo.ReminderDate != nil {
		remind = *todo.ReminderDate
	}
	return TodoData{
		ID:           todo.ID.String(),
		Title:        todo.Title,
		Description:  todo.Description,
		ReminderDate: remind,
	}
}

// RenderReminder - 본문 템플릿의 변수를 실제 값으로 치환.
// username이 비어 있으면 {{user.username}}은 빈 문자열이 된다.
func RenderReminder(body string, todo TodoData, username string) string {
	return strings.NewReplacer(pairs(todo, username, identity)...).Replace(body)
}

// RenderReminderJSON - JSON 본문용. 치환 값은 JSON 문자열 안에 들어갈 수 있도록 escape된다.
func RenderReminderJSON(body string, todo TodoData, username string) string {
	return strings.NewReplacer(pairs(todo, username, jsonEscape)...).Replace(body)
}

func pairs(todo TodoData, username string, escape func(string) string) []string {
	remind := ""
	if !todo.ReminderDate.IsZero() {
		remind = todo.ReminderDate.UTC().Format(time.RFC3339)
	}
	return []string{
		"{{todo.id}}", escape(todo.ID),
		"{{todo.title}}", escape(todo.Title),
		"{{todo.description}}", escape(todo.Description),
		"{{todo.reminder_date}}", escape(remind),
		"{{user.username}}", escape(username),
	}
}

func identity(s string) string { return s }

func jsonEscape(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw[1 : len(raw)-1])
}
