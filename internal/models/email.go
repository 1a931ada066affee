package models

// Email represents a normalized message fetched from the mailbox provider
type Email struct {
	ID      string
	Subject string
	Sender  string
	Date    string
	Body    string
	TraceID string
}

// ProcessedEmail is an Email augmented with its processing outcome. It is
// appended once to the record store and never updated.
type ProcessedEmail struct {
	Email
	Category    Category
	Confidence  int
	Rationale   string
	DraftReply  string
	DraftID     string // empty when draft creation failed
	ProcessedAt string // RFC 3339
}

// Draft is a reviewable, sendable reply stored one file per email. After a
// confirmed send it moves to the sent partition and becomes terminal.
type Draft struct {
	EmailID    string   `json:"email_id"`
	Subject    string   `json:"subject"`
	DraftReply string   `json:"draft_reply"`
	Category   Category `json:"category"`
	Confidence int      `json:"confidence"`
	Rationale  string   `json:"rationale"`
	CreatedAt  string   `json:"created_at"`
}

// Stats aggregates category counts for a processing run or stored history.
type Stats struct {
	TotalEmails int              `json:"total_emails"`
	Categories  map[Category]int `json:"categories"`
	ProcessedAt string           `json:"processed_at"`
}
