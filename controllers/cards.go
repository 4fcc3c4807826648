package controllers

import (
	"errors"
	"net/http"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/services"
	"github.com/bellapacxx/bingo-cardgen/utils/logger"

	"github.com/gin-gonic/gin"
)

// CardController serves the REST surface over the generator service.
type CardController struct {
	service  *services.BingoGeneratorService
	registry *services.CardRegistry
	archive  *services.CardArchive
}

func NewCardController(service *services.BingoGeneratorService, registry *services.CardRegistry, archive *services.CardArchive) *CardController {
	return &CardController{service: service, registry: registry, archive: archive}
}

// statusForError maps service sentinels onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat), errors.Is(err, services.ErrInvalidCount):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrExhaustedUniqueSpace):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// archiveCard stores the card when the archive is enabled. The card was
// already issued, so failures are logged and the response stays 201.
func (ctl *CardController) archiveCard(card *models.BingoCard) {
	if err := ctl.archive.Save(card); err != nil {
		logger.Errorf("[Cards] failed to archive card %s: %v", card.ID, err)
	}
}

// ListFormats returns the supported card formats and their layouts.
func (ctl *CardController) ListFormats(c *gin.Context) {
	formats := ctl.service.Formats()
	out := make([]gin.H, 0, len(formats))
	for _, format := range formats {
		cfg, ok := ctl.service.FormatConfig(format)
		if !ok {
			continue
		}
		out = append(out, gin.H{"format": format, "config": cfg})
	}

	c.JSON(http.StatusOK, gin.H{"formats": out})
}

// GenerateCard issues one card unique within its session
func (ctl *CardController) GenerateCard(c *gin.Context) {
	var req struct {
		Format    string `json:"format" binding:"required"`
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := ctl.service.GenerateCard(req.Format, req.SessionID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctl.archiveCard(card)
	c.JSON(http.StatusCreated, card)
}

// GenerateBatch issues 1 to 100 cards in one call
func (ctl *CardController) GenerateBatch(c *gin.Context) {
	var req struct {
		Format    string `json:"format" binding:"required"`
		SessionID string `json:"session_id" binding:"required"`
		Count     int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cards, err := ctl.service.GenerateBatch(req.Format, req.SessionID, req.Count)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	for _, card := range cards {
		ctl.archiveCard(card)
	}
	c.JSON(http.StatusCreated, gin.H{"cards": cards, "count": len(cards)})
}

// ValidateCard reports whether a grid would still be novel for a session
func (ctl *CardController) ValidateCard(c *gin.Context) {
	var req struct {
		Cells     []models.GeneratedCell `json:"cells" binding:"required"`
		SessionID string                 `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unique := ctl.service.ValidateUniqueness(&models.BingoCard{Cells: req.Cells}, req.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"unique":     unique,
	})
}

// SessionStatus exposes registry bookkeeping for one session
func (ctl *CardController) SessionStatus(c *gin.Context) {
	sessionID := c.Param("session_id")

	lastAccessed, ok := ctl.registry.SessionLastAccessed(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":    sessionID,
		"issued_cards":  ctl.registry.SessionCount(sessionID),
		"last_accessed": lastAccessed,
	})
}

// ClearSession forgets every card issued to the session
func (ctl *CardController) ClearSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	ctl.service.ClearSession(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "cleared",
	})
}

// ListSessionCards returns the archived cards for a session
func (ctl *CardController) ListSessionCards(c *gin.Context) {
	sessionID := c.Param("session_id")

	records, err := ctl.archive.ListBySession(sessionID)
	if err != nil {
		logger.Errorf("[Cards] failed to list archive for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch archived cards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"cards":      records,
		"count":      len(records),
	})
}
