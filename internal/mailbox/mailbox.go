package mailbox

import (
	"context"

	"gmail-ai-assistant/internal/models"
)

// Client is the mailbox surface the pipeline depends on. Draft and send
// operations report provider failures through their result structs, never
// through a Go error.
type Client interface {
	FetchEmails(ctx context.Context, limit int) ([]*models.Email, error)
	CreateDraft(ctx context.Context, to, subject, body string) DraftResult
	SendEmail(ctx context.Context, to, subject, body string) SendResult
}

const (
	StatusDraftCreated = "draft_created"
	StatusSent         = "sent"
	StatusError        = "error"
)

// DraftResult reports the outcome of a draft creation.
type DraftResult struct {
	ID        string
	MessageID string
	Status    string
	Email     string // account the draft was created in
	Err       string
}

// SendResult reports the outcome of a send.
type SendResult struct {
	ID       string
	ThreadID string
	Status   string
	Err      string
}
