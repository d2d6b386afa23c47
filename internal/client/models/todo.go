// Package models holds the client-side view of API resources.
package models

import (
	"fmt"
	"time"
)

type Todo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	CreatorID   string `json:"_creator,omitempty"`
}

// CompletedTime converts CompletedAt (Unix milliseconds) to a time.
func (t Todo) CompletedTime() (time.Time, bool) {
	if t.CompletedAt == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*t.CompletedAt), true
}

func (t Todo) String() string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	s := fmt.Sprintf("%s %s %s", mark, t.ID, t.Text)
	if at, ok := t.CompletedTime(); ok {
		s += fmt.Sprintf(" (done %s)", at.UTC().Format(time.RFC3339))
	}
	return s
}

type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}
