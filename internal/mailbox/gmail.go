package mailbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"gmail-ai-assistant/internal/logging"
	"gmail-ai-assistant/internal/mailparse"
	"gmail-ai-assistant/internal/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailClient talks to the Gmail REST API. The authenticated session is
// established lazily by ensureService on the first operation and reused for
// the lifetime of the client.
type GmailClient struct {
	credentialsPath string
	tokenPath       string
	userEmail       string
	service         *gmail.Service
}

// NewGmailClient creates a Gmail client from an OAuth2 client-secrets file
// and a previously obtained token file. No network activity happens until the
// first operation.
func NewGmailClient(credentialsPath, tokenPath, userEmail string) *GmailClient {
	return &GmailClient{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
		userEmail:       userEmail,
	}
}

// ensureService establishes the Gmail session if none exists yet. Safe to
// call repeatedly; an existing session is reused as-is.
func (c *GmailClient) ensureService(ctx context.Context) error {
	if c.service != nil {
		return nil
	}

	secrets, err := os.ReadFile(c.credentialsPath)
	if err != nil {
		return fmt.Errorf("reading credentials file: %w", err)
	}

	conf, err := google.ConfigFromJSON(secrets,
		gmail.GmailReadonlyScope, gmail.GmailSendScope, gmail.GmailComposeScope)
	if err != nil {
		return fmt.Errorf("parsing credentials file: %w", err)
	}

	token, err := c.loadToken()
	if err != nil {
		return fmt.Errorf("loading token file: %w", err)
	}

	// conf.Client refreshes the token transparently when it expires
	service, err := gmail.NewService(ctx, option.WithHTTPClient(conf.Client(ctx, token)))
	if err != nil {
		return fmt.Errorf("creating gmail service: %w", err)
	}

	c.service = service
	return nil
}

func (c *GmailClient) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(c.tokenPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}
	return &token, nil
}

// FetchEmails retrieves up to limit most-recent messages with decoded
// plain-text bodies. Messages that fail to load individually are skipped,
// not fatal for the batch.
func (c *GmailClient) FetchEmails(ctx context.Context, limit int) ([]*models.Email, error) {
	if err := c.ensureService(ctx); err != nil {
		return nil, err
	}

	list, err := c.service.Users.Messages.List("me").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	emails := make([]*models.Email, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := c.service.Users.Messages.Get("me", m.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			logging.Log.WithError(err).Warnf("Failed to fetch message %s, skipping", m.Id)
			continue
		}
		emails = append(emails, parseMessage(msg))
	}

	return emails, nil
}

// CreateDraft creates a Gmail draft addressed to the recipient. Provider
// failures come back as Status "error", never as a Go error.
func (c *GmailClient) CreateDraft(ctx context.Context, to, subject, body string) DraftResult {
	if err := c.ensureService(ctx); err != nil {
		logging.Log.WithError(err).Error("Error creating draft")
		return DraftResult{Status: StatusError, Err: err.Error()}
	}

	raw, err := mailparse.BuildMessage(c.userEmail, to, subject, body)
	if err != nil {
		logging.Log.WithError(err).Error("Error building draft message")
		return DraftResult{Status: StatusError, Err: err.Error()}
	}

	draft, err := c.service.Users.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)},
	}).Context(ctx).Do()
	if err != nil {
		logging.Log.WithError(err).Error("Error creating draft")
		return DraftResult{Status: StatusError, Err: err.Error()}
	}

	result := DraftResult{
		ID:     draft.Id,
		Status: StatusDraftCreated,
		Email:  c.userEmail,
	}
	if draft.Message != nil {
		result.MessageID = draft.Message.Id
	}
	return result
}

// SendEmail sends a message to the recipient. Provider failures come back as
// Status "error", never as a Go error.
func (c *GmailClient) SendEmail(ctx context.Context, to, subject, body string) SendResult {
	if err := c.ensureService(ctx); err != nil {
		logging.Log.WithError(err).Error("Error sending email")
		return SendResult{Status: StatusError, Err: err.Error()}
	}

	raw, err := mailparse.BuildMessage(c.userEmail, to, subject, body)
	if err != nil {
		logging.Log.WithError(err).Error("Error building message")
		return SendResult{Status: StatusError, Err: err.Error()}
	}

	sent, err := c.service.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		logging.Log.WithError(err).Error("Error sending email")
		return SendResult{Status: StatusError, Err: err.Error()}
	}

	return SendResult{ID: sent.Id, ThreadID: sent.ThreadId, Status: StatusSent}
}

// parseMessage flattens a Gmail API message into the normalized Email the
// pipeline works with.
func parseMessage(msg *gmail.Message) *models.Email {
	email := &models.Email{
		ID:      msg.Id,
		Subject: "(No Subject)",
		Sender:  "(Unknown Sender)",
		Date:    "(No Date)",
		TraceID: uuid.New().String(),
	}

	if msg.Payload == nil {
		return email
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			if decoded, err := mailparse.DecodeHeader(header.Value); err == nil {
				email.Subject = decoded
			} else {
				email.Subject = header.Value
			}
		case "From":
			email.Sender = header.Value
		case "Date":
			email.Date = header.Value
		}
	}

	email.Body = mailparse.ExtractPlainText(msg.Payload)
	return email
}

// Ensure GmailClient implements Client
var _ Client = (*GmailClient)(nil)
