package services

import "github.com/bellapacxx/bingo-cardgen/models"

// CardStrategy produces candidate grids for one card format. GenerateCells
// returns a fresh, independent candidate on every call and performs no
// uniqueness checking; novelty within a session is the registry's job.
type CardStrategy interface {
	// Config describes the fixed layout this strategy satisfies.
	Config() models.FormatConfig

	// GenerateCells produces one constraint-satisfying grid in row-major
	// order, TotalCells long.
	GenerateCells() []models.GeneratedCell
}
