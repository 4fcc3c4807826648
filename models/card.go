package models

import "time"

// Format keys for the supported card layouts.
const (
	Format5x5 = "5x5" // 75-ball: 5x5 grid, center free space
	Format3x9 = "3x9" // 90-ball: 3x9 grid, 15 numbers and 12 blanks
)

// CellType classifies one grid position.
type CellType string

const (
	CellNumber CellType = "number"
	CellBlank  CellType = "blank"
	CellFree   CellType = "free"
)

// GeneratedCell is one grid position in row-major order.
// Value is non-nil exactly when Type is CellNumber.
type GeneratedCell struct {
	Index int      `json:"index"`
	Type  CellType `json:"type"`
	Value *int     `json:"value,omitempty"`
}

// NumberCell builds a number cell at the given position.
func NumberCell(index, value int) GeneratedCell {
	v := value
	return GeneratedCell{Index: index, Type: CellNumber, Value: &v}
}

// BlankCell builds a blank cell at the given position.
func BlankCell(index int) GeneratedCell {
	return GeneratedCell{Index: index, Type: CellBlank}
}

// FreeCell builds a free-space cell at the given position.
func FreeCell(index int) GeneratedCell {
	return GeneratedCell{Index: index, Type: CellFree}
}

// ColumnRange is the inclusive numeric domain for values placed in one column.
type ColumnRange struct {
	Column int `json:"column"`
	Min    int `json:"min"`
	Max    int `json:"max"`
}

// FormatConfig describes a card layout: grid shape, free-space policy and
// per-column value ranges. Configs are fixed per strategy and never mutated.
type FormatConfig struct {
	Rows           int           `json:"rows"`
	Columns        int           `json:"columns"`
	TotalCells     int           `json:"total_cells"`
	HasFreeSpace   bool          `json:"has_free_space"`
	FreeSpaceIndex int           `json:"free_space_index"`
	ColumnRanges   []ColumnRange `json:"column_ranges"`
}

// BingoCard is the artifact returned to callers. The generator keeps no
// reference to issued cards, only to their hashes.
type BingoCard struct {
	ID        string          `json:"id"`
	Format    string          `json:"format"`
	SessionID string          `json:"session_id"`
	Cells     []GeneratedCell `json:"cells"`
	Hash      string          `json:"hash"`
	CreatedAt time.Time       `json:"created_at"`
}
