package models

import (
	"time"

	"gorm.io/datatypes"
)

// IssuedCard is the archive row written for each generated card when a
// database is configured. The generation core never reads these rows; they
// exist for the embedding application (audit, reprints, session history).
type IssuedCard struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CardID    string         `gorm:"uniqueIndex;size:36" json:"card_id"`
	Format    string         `gorm:"size:8" json:"format"`
	SessionID string         `gorm:"index" json:"session_id"`
	Hash      string         `json:"hash"`
	CellsJSON datatypes.JSON `json:"cells"` // serialized []GeneratedCell
	CreatedAt time.Time      `json:"created_at"`
}
