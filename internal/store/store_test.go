package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gmail-ai-assistant/internal/models"
)

func sampleRecord(id string, category models.Category) *models.ProcessedEmail {
	return &models.ProcessedEmail{
		Email: models.Email{
			ID:      id,
			Subject: "subject " + id,
			Sender:  "sender@example.com",
			Date:    "Mon, 02 Jan 2006 15:04:05 -0700",
			Body:    "line one\nline two",
		},
		Category:    category,
		Confidence:  80,
		Rationale:   "because",
		DraftReply:  "Dear sender,\n\nThanks.",
		DraftID:     "d-" + id,
		ProcessedAt: "2026-08-30T10:00:00Z",
	}
}

func TestRecordStoreAppendAndCounts(t *testing.T) {
	s, err := NewRecordStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecordStore() error: %v", err)
	}

	records := []*models.ProcessedEmail{
		sampleRecord("1", models.CategoryUrgent),
		sampleRecord("2", models.CategoryUrgent),
		sampleRecord("3", models.CategoryLowPriority),
	}
	for _, r := range records {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	total, counts, err := s.CategoryCounts()
	if err != nil {
		t.Fatalf("CategoryCounts() error: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if counts[models.CategoryUrgent] != 2 {
		t.Errorf("URGENT count = %d, want 2", counts[models.CategoryUrgent])
	}
	if counts[models.CategoryLowPriority] != 1 {
		t.Errorf("LOW_PRIORITY count = %d, want 1", counts[models.CategoryLowPriority])
	}
	if _, present := counts[models.CategoryImportant]; present {
		t.Errorf("IMPORTANT should not appear in counts when absent from history")
	}
}

func TestRecordStoreHeaderWrittenOnce(t *testing.T) {
	dir := t.TempDir()
	s, err := NewRecordStore(dir)
	if err != nil {
		t.Fatalf("NewRecordStore() error: %v", err)
	}

	if err := s.Append(sampleRecord("1", models.CategoryImportant)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := s.Append(sampleRecord("2", models.CategoryImportant)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, recordFileName))
	if err != nil {
		t.Fatalf("Reading store file: %v", err)
	}
	headerCount := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "id,subject,sender,date,body,category,confidence,rationale,draft_reply,draft_id,processed_at" {
			headerCount++
		}
	}
	if headerCount != 1 {
		t.Errorf("header appears %d times, want 1", headerCount)
	}
}

func TestRecordStoreMissingFile(t *testing.T) {
	s, err := NewRecordStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewRecordStore() error: %v", err)
	}

	_, _, err = s.CategoryCounts()
	if !os.IsNotExist(err) {
		t.Errorf("CategoryCounts() on empty store: err = %v, want not-exist", err)
	}
}

func TestDraftStoreRoundTrip(t *testing.T) {
	s, err := NewDraftStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDraftStore() error: %v", err)
	}

	draft := &models.Draft{
		EmailID:    "abc123",
		Subject:    "Re: hello",
		DraftReply: "Dear Bob,\n\nThanks.",
		Category:   models.CategoryImportant,
		Confidence: 66,
		Rationale:  "needs action",
		CreatedAt:  "2026-08-30T10:00:00Z",
	}
	if err := s.Save(draft); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Get("abc123")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Subject != draft.Subject || got.DraftReply != draft.DraftReply || got.Category != draft.Category {
		t.Errorf("Get() = %+v, want %+v", got, draft)
	}
}

func TestDraftStoreNotFound(t *testing.T) {
	s, err := NewDraftStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDraftStore() error: %v", err)
	}

	_, err = s.Get("missing")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrDraftNotFound", err)
	}
}

func TestDraftStoreMarkSent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDraftStore(dir)
	if err != nil {
		t.Fatalf("NewDraftStore() error: %v", err)
	}

	draft := &models.Draft{EmailID: "xyz", Subject: "s", DraftReply: "body", Category: models.CategoryUrgent}
	if err := s.Save(draft); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if err := s.MarkSent("xyz"); err != nil {
		t.Fatalf("MarkSent() error: %v", err)
	}

	if _, err := s.Get("xyz"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("Get() after MarkSent err = %v, want ErrDraftNotFound", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sent", "sent_xyz.json")); err != nil {
		t.Errorf("sent partition file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "draft_xyz.json")); !os.IsNotExist(err) {
		t.Errorf("active partition file still present after MarkSent")
	}
}
