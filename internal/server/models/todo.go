package models

import "time"

// Todo is a single task. CompletedAt is milliseconds since the Unix epoch
// and is set exactly when Completed is true.
type Todo struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	CreatorID   string `json:"_creator,omitempty"`
}

// TodoPatch is a resolved update: Text is optional, the completion pair is
// always written together.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// NewTodoPatch builds a patch that keeps Completed and CompletedAt consistent.
func NewTodoPatch(text *string, completed bool, now time.Time) TodoPatch {
	p := TodoPatch{Text: text}
	if completed {
		ms := now.UnixMilli()
		p.Completed = true
		p.CompletedAt = &ms
	}
	return p
}

// Apply writes the patch onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	t.Completed = p.Completed
	t.CompletedAt = p.CompletedAt
}
