package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/utils/logger"
)

// Batch and retry bounds for card generation.
const (
	MinBatchSize       = 1
	MaxBatchSize       = 100
	DefaultMaxAttempts = 100
)

// BingoGeneratorService is the facade callers talk to: it picks the strategy
// for a format, regenerates candidates until the registry accepts a novel
// hash and assembles the public card record. Construct one per isolation
// domain; the registry is injected so independent services and tests never
// share uniqueness state.
type BingoGeneratorService struct {
	registry    *CardRegistry
	strategies  map[string]CardStrategy
	maxAttempts int
}

// NewBingoGeneratorService wires the built-in strategies around the given
// registry.
func NewBingoGeneratorService(registry *CardRegistry) *BingoGeneratorService {
	s := &BingoGeneratorService{
		registry:    registry,
		strategies:  make(map[string]CardStrategy),
		maxAttempts: DefaultMaxAttempts,
	}
	s.RegisterStrategy(models.Format5x5, NewStrategy5x5())
	s.RegisterStrategy(models.Format3x9, NewStrategy3x9())
	return s
}

// RegisterStrategy installs or replaces the strategy behind a format key.
// Call it during wiring, before the service takes traffic.
func (s *BingoGeneratorService) RegisterStrategy(format string, strategy CardStrategy) {
	s.strategies[format] = strategy
}

// SetMaxAttempts tunes the duplicate-retry cap. Non-positive values are
// ignored. Like RegisterStrategy, call it during wiring.
func (s *BingoGeneratorService) SetMaxAttempts(n int) {
	if n > 0 {
		s.maxAttempts = n
	}
}

// Formats returns the registered format keys in sorted order.
func (s *BingoGeneratorService) Formats() []string {
	keys := make([]string, 0, len(s.strategies))
	for k := range s.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatConfig looks up the layout behind a format key.
func (s *BingoGeneratorService) FormatConfig(format string) (models.FormatConfig, bool) {
	strategy, ok := s.strategies[format]
	if !ok {
		return models.FormatConfig{}, false
	}
	return strategy.Config(), true
}

// GenerateCard produces one card guaranteed novel within the session. Each
// candidate grid is hashed and offered to the registry; duplicates are
// discarded and regenerated up to the attempt cap, past which
// ErrExhaustedUniqueSpace is returned. A successful card's hash is already
// registered on return, so ValidateUniqueness on a just-issued card reports
// false.
func (s *BingoGeneratorService) GenerateCard(format, sessionID string) (*models.BingoCard, error) {
	strategy, ok := s.strategies[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		cells := strategy.GenerateCells()
		hash := GenerateCardHash(cells)
		if !s.registry.Register(sessionID, hash) {
			logger.Debugf("[Generator] session %s rejected duplicate candidate (attempt %d/%d)", sessionID, attempt, s.maxAttempts)
			continue
		}
		return &models.BingoCard{
			ID:        uuid.NewString(),
			Format:    format,
			SessionID: sessionID,
			Cells:     cells,
			Hash:      hash,
			CreatedAt: time.Now(),
		}, nil
	}

	logger.Errorf("[Generator] session %s exhausted %d attempts on format %s", sessionID, s.maxAttempts, format)
	return nil, fmt.Errorf("%w: format %s after %d attempts", ErrExhaustedUniqueSpace, format, s.maxAttempts)
}

// GenerateBatch produces count cards sequentially, all novel within the
// session. The count is validated before any card is generated. A failure
// mid-batch returns only the error; hashes registered for the cards
// generated before the failure stay registered.
func (s *BingoGeneratorService) GenerateBatch(format, sessionID string, count int) ([]*models.BingoCard, error) {
	if count < MinBatchSize || count > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCount, count, MinBatchSize, MaxBatchSize)
	}

	cards := make([]*models.BingoCard, 0, count)
	for i := 0; i < count; i++ {
		card, err := s.GenerateCard(format, sessionID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ValidateUniqueness reports whether the card's cells would still be novel
// for the session. The hash is recomputed from the cells, so a tampered
// Hash field never changes the verdict.
func (s *BingoGeneratorService) ValidateUniqueness(card *models.BingoCard, sessionID string) bool {
	if card == nil {
		return false
	}
	return !s.registry.Exists(sessionID, GenerateCardHash(card.Cells))
}

// ClearSession forgets every hash issued to the session.
func (s *BingoGeneratorService) ClearSession(sessionID string) {
	s.registry.ClearSession(sessionID)
}
