package services

import (
	"encoding/json"
	"fmt"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CardArchive persists issued cards when a database is configured. The
// generation core never reads it back: uniqueness lives in CardRegistry
// and resets with the process.
type CardArchive struct {
	db *gorm.DB
}

// NewCardArchive wraps db. A nil db disables archiving and turns every
// method into a no-op.
func NewCardArchive(db *gorm.DB) *CardArchive {
	return &CardArchive{db: db}
}

func (a *CardArchive) Enabled() bool {
	return a != nil && a.db != nil
}

// Save records an issued card. Disabled archives accept and drop it.
func (a *CardArchive) Save(card *models.BingoCard) error {
	if !a.Enabled() {
		return nil
	}

	cells, err := json.Marshal(card.Cells)
	if err != nil {
		return fmt.Errorf("marshal cells for card %s: %w", card.ID, err)
	}

	record := models.IssuedCard{
		CardID:    card.ID,
		Format:    card.Format,
		SessionID: card.SessionID,
		Hash:      card.Hash,
		CellsJSON: datatypes.JSON(cells),
		CreatedAt: card.CreatedAt,
	}
	if err := a.db.Create(&record).Error; err != nil {
		return fmt.Errorf("archive card %s: %w", card.ID, err)
	}

	logger.Debugf("[Archive] stored card %s for session %s", card.ID, card.SessionID)
	return nil
}

// ListBySession returns the archived cards for one session, oldest first.
// A disabled archive reports an empty list.
func (a *CardArchive) ListBySession(sessionID string) ([]models.IssuedCard, error) {
	records := []models.IssuedCard{}
	if !a.Enabled() {
		return records, nil
	}

	if err := a.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list archived cards for session %s: %w", sessionID, err)
	}
	return records, nil
}
