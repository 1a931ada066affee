package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gmail-ai-assistant/internal/models"
)

// ErrDraftNotFound is returned when no stored draft matches the requested
// email identifier.
var ErrDraftNotFound = errors.New("draft not found")

const sentDirName = "sent"

// DraftStore keeps one JSON file per draft, keyed by email identifier. Sent
// drafts live in a separate partition and are terminal there.
type DraftStore struct {
	dir string
}

// NewDraftStore creates the storage directory if needed
func NewDraftStore(dir string) (*DraftStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating drafts directory: %w", err)
	}
	return &DraftStore{dir: dir}, nil
}

func (s *DraftStore) draftPath(emailID string) string {
	return filepath.Join(s.dir, "draft_"+emailID+".json")
}

func (s *DraftStore) sentPath(emailID string) string {
	return filepath.Join(s.dir, sentDirName, "sent_"+emailID+".json")
}

// Save persists a draft in the active partition
func (s *DraftStore) Save(draft *models.Draft) error {
	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding draft %s: %w", draft.EmailID, err)
	}
	return os.WriteFile(s.draftPath(draft.EmailID), data, 0o644)
}

// Get loads a draft from the active partition. A draft that was already sent,
// or never existed, yields ErrDraftNotFound.
func (s *DraftStore) Get(emailID string) (*models.Draft, error) {
	data, err := os.ReadFile(s.draftPath(emailID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", emailID, err)
	}
	return &draft, nil
}

// MarkSent moves the draft file into the sent partition so it can never be
// sent again. The file is renamed, not copied.
func (s *DraftStore) MarkSent(emailID string) error {
	if err := os.MkdirAll(filepath.Join(s.dir, sentDirName), 0o755); err != nil {
		return fmt.Errorf("creating sent directory: %w", err)
	}
	return os.Rename(s.draftPath(emailID), s.sentPath(emailID))
}
