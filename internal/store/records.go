// Package store holds the durable state of the assistant: an append-only CSV
// file of processed emails and one JSON file per draft.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gmail-ai-assistant/internal/models"
)

const recordFileName = "emails.csv"

var recordHeader = []string{
	"id", "subject", "sender", "date", "body",
	"category", "confidence", "rationale", "draft_reply", "draft_id", "processed_at",
}

// RecordStore appends processed emails to a single CSV file. Rows are only
// ever added, never rewritten.
type RecordStore struct {
	dir string
}

// NewRecordStore creates the storage directory if needed
func NewRecordStore(dir string) (*RecordStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating records directory: %w", err)
	}
	return &RecordStore{dir: dir}, nil
}

func (s *RecordStore) filePath() string {
	return filepath.Join(s.dir, recordFileName)
}

// Append writes one processed email as a new row, creating the file with a
// header row on first use.
func (s *RecordStore) Append(record *models.ProcessedEmail) error {
	_, statErr := os.Stat(s.filePath())

	f, err := os.OpenFile(s.filePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening record store: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if os.IsNotExist(statErr) {
		if err := w.Write(recordHeader); err != nil {
			return fmt.Errorf("writing record header: %w", err)
		}
	}

	row := []string{
		record.ID,
		record.Subject,
		record.Sender,
		record.Date,
		record.Body,
		string(record.Category),
		strconv.Itoa(record.Confidence),
		record.Rationale,
		record.DraftReply,
		record.DraftID,
		record.ProcessedAt,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("writing record row: %w", err)
	}

	w.Flush()
	return w.Error()
}

// CategoryCounts scans the category column of the full store and returns the
// total row count and the per-category counts. Only categories actually
// present in history appear in the map. A store that does not exist yet
// surfaces as an os.IsNotExist error for the caller to interpret.
func (s *RecordStore) CategoryCounts() (int, map[models.Category]int, error) {
	f, err := os.Open(s.filePath())
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, nil, fmt.Errorf("reading record header: %w", err)
	}

	categoryCol := -1
	for i, name := range header {
		if name == "category" {
			categoryCol = i
			break
		}
	}
	if categoryCol < 0 {
		return 0, nil, fmt.Errorf("record store has no category column")
	}

	total := 0
	counts := make(map[models.Category]int)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, nil, fmt.Errorf("reading record row: %w", err)
		}
		total++
		if categoryCol < len(row) {
			counts[models.Category(row[categoryCol])]++
		}
	}

	return total, counts, nil
}
