// Package processor orchestrates the email pipeline: fetch, classify,
// generate, clean, persist, draft.
package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"gmail-ai-assistant/internal/cleaner"
	"gmail-ai-assistant/internal/generation"
	"gmail-ai-assistant/internal/logging"
	"gmail-ai-assistant/internal/mailbox"
	"gmail-ai-assistant/internal/models"
	"gmail-ai-assistant/internal/store"
)

const (
	// OutcomePreview marks a dry-run send that returned a preview only
	OutcomePreview = "preview"
)

// Processor drives one email at a time through the pipeline and owns the
// write path to both stores.
type Processor struct {
	mailbox    mailbox.Client
	generation generation.Service
	records    *store.RecordStore
	drafts     *store.DraftStore
}

// New creates a Processor over the given collaborators
func New(mb mailbox.Client, gen generation.Service, records *store.RecordStore, drafts *store.DraftStore) *Processor {
	return &Processor{
		mailbox:    mb,
		generation: gen,
		records:    records,
		drafts:     drafts,
	}
}

// ProcessEmails runs one batch: fetch up to limit emails, then for each in
// fetch order classify it, generate and clean a reply, create a provider
// draft addressed back to the sender, and persist the processed record and
// the draft. A classification, generation, or draft failure on one email
// never aborts the rest of the batch; draft failures are visible only in the
// per-email log line. The returned category map is zero-initialized for all
// three buckets regardless of what the batch contained.
func (p *Processor) ProcessEmails(ctx context.Context, limit int) (*models.Stats, error) {
	emails, err := p.mailbox.FetchEmails(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching emails: %w", err)
	}

	categories := map[models.Category]int{
		models.CategoryUrgent:      0,
		models.CategoryImportant:   0,
		models.CategoryLowPriority: 0,
	}
	processed := 0

	for _, email := range emails {
		locallog := logging.Log.WithField("trace_id", email.TraceID)

		catResult := p.generation.Categorize(ctx, email.Subject, email.Body, email.Sender)
		categories[catResult.Category]++

		reply := p.generation.GenerateReply(ctx, email.Subject, email.Body, catResult.Category)
		cleanedReply := cleaner.Clean(reply)

		draftResult := p.mailbox.CreateDraft(ctx, email.Sender, "Re: "+email.Subject, cleanedReply)

		now := time.Now().Format(time.RFC3339)
		record := &models.ProcessedEmail{
			Email:       *email,
			Category:    catResult.Category,
			Confidence:  catResult.Confidence,
			Rationale:   catResult.Rationale,
			DraftReply:  cleanedReply,
			DraftID:     draftResult.ID,
			ProcessedAt: now,
		}
		if err := p.records.Append(record); err != nil {
			locallog.WithError(err).Error("Error appending processed record")
		}

		draft := &models.Draft{
			EmailID:    email.ID,
			Subject:    email.Subject,
			DraftReply: cleanedReply,
			Category:   catResult.Category,
			Confidence: catResult.Confidence,
			Rationale:  catResult.Rationale,
			CreatedAt:  now,
		}
		if err := p.drafts.Save(draft); err != nil {
			locallog.WithError(err).Error("Error saving draft")
		}

		locallog.Infof("Created draft for email: %s", email.Subject)
		if draftResult.Status == mailbox.StatusDraftCreated {
			locallog.Infof("Draft ID: %s", draftResult.ID)
		} else {
			locallog.Errorf("Error creating draft: %s", draftResult.Err)
		}
		processed++
	}

	return &models.Stats{
		TotalEmails: processed,
		Categories:  categories,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Preview is the dry-run view of a pending send
type Preview struct {
	To      string
	Subject string
	Body    string
}

// SendOutcome reports the result of a send request. Status is
// OutcomePreview for the dry-run path, otherwise the provider send status.
type SendOutcome struct {
	Status  string
	Preview *Preview
	Send    *mailbox.SendResult
}

// SendDraftedEmail looks up a stored draft by email identifier and either
// previews it or, with confirm set, sends it. The default is a dry run:
// nothing is sent and nothing is mutated unless confirm is explicitly true.
// After a confirmed successful send the draft moves to the sent partition, so
// a second attempt on the same identifier returns store.ErrDraftNotFound. A
// failed send leaves the draft in place and surfaces the provider result
// unchanged.
func (p *Processor) SendDraftedEmail(ctx context.Context, draftID, recipient string, confirm bool) (*SendOutcome, error) {
	draft, err := p.drafts.Get(draftID)
	if err != nil {
		return nil, err
	}

	// Re-clean the stored text; cleaning already-clean text is a no-op
	body := cleaner.Clean(draft.DraftReply)

	if !confirm {
		return &SendOutcome{
			Status:  OutcomePreview,
			Preview: &Preview{To: recipient, Subject: draft.Subject, Body: body},
		}, nil
	}

	result := p.mailbox.SendEmail(ctx, recipient, draft.Subject, body)
	if result.Status == mailbox.StatusSent {
		if err := p.drafts.MarkSent(draftID); err != nil {
			logging.Log.WithError(err).Errorf("Error moving draft %s to sent partition", draftID)
		}
	}

	return &SendOutcome{Status: result.Status, Send: &result}, nil
}

// GetDailyStats recomputes aggregate counts from the full record store. With
// no store on disk yet it returns zeroed stats with all three categories
// present. Otherwise the category map reflects only categories actually seen
// in history, which deliberately differs from the zero-initialized map
// ProcessEmails returns.
func (p *Processor) GetDailyStats() (*models.Stats, error) {
	now := time.Now().Format(time.RFC3339)

	total, counts, err := p.records.CategoryCounts()
	if err != nil {
		if os.IsNotExist(err) {
			zeroed := make(map[models.Category]int, 3)
			for _, c := range models.AllCategories() {
				zeroed[c] = 0
			}
			return &models.Stats{TotalEmails: 0, Categories: zeroed, ProcessedAt: now}, nil
		}
		return nil, fmt.Errorf("reading record store: %w", err)
	}

	return &models.Stats{TotalEmails: total, Categories: counts, ProcessedAt: now}, nil
}

// Digest renders a model-generated report over the current daily stats
func (p *Processor) Digest(ctx context.Context) (string, error) {
	stats, err := p.GetDailyStats()
	if err != nil {
		return "", err
	}
	return p.generation.GenerateDigest(ctx, *stats), nil
}
