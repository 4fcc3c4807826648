package services

import (
	"strconv"
	"strings"

	"github.com/bellapacxx/bingo-cardgen/models"
)

// hashSeparator joins the per-cell tokens. The separator keeps multi-digit
// values unambiguous: 1,12 and 11,2 must not collapse to the same string.
const hashSeparator = "-"

// GenerateCardHash fingerprints a cell sequence. Each cell maps to "F" (free),
// "B" (blank) or its decimal value, joined in positional order, so two cards
// holding the same numbers in different cells hash differently. The hash is a
// pure function of the cells; card id, session and timestamps never contribute.
func GenerateCardHash(cells []models.GeneratedCell) string {
	tokens := make([]string, len(cells))
	for i, cell := range cells {
		switch {
		case cell.Type == models.CellFree:
			tokens[i] = "F"
		case cell.Type == models.CellBlank:
			tokens[i] = "B"
		case cell.Value != nil:
			tokens[i] = strconv.Itoa(*cell.Value)
		default:
			// Number cell without a value violates the cell invariant; it can
			// only arrive from outside callers, never from the strategies.
			tokens[i] = "?"
		}
	}
	return strings.Join(tokens, hashSeparator)
}
