package services

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/utils/random"
)

var _ CardStrategy = (*Strategy5x5)(nil)

// freeSpaceIndex5x5 is row 2, column 2: the grid center.
const freeSpaceIndex5x5 = 12

var config5x5 = models.FormatConfig{
	Rows:           5,
	Columns:        5,
	TotalCells:     25,
	HasFreeSpace:   true,
	FreeSpaceIndex: freeSpaceIndex5x5,
	ColumnRanges: []models.ColumnRange{
		{Column: 0, Min: 1, Max: 15},  // B
		{Column: 1, Min: 16, Max: 30}, // I
		{Column: 2, Min: 31, Max: 45}, // N
		{Column: 3, Min: 46, Max: 60}, // G
		{Column: 4, Min: 61, Max: 75}, // O
	},
}

// Strategy5x5 generates 75-ball cards: a 5x5 grid whose columns draw from
// disjoint fifteen-value ranges, with a free space at the grid center. The
// disjoint ranges make per-card value uniqueness automatic.
type Strategy5x5 struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStrategy5x5 returns a strategy with an entropy-seeded number source.
func NewStrategy5x5() *Strategy5x5 {
	return &Strategy5x5{rng: rand.New(rand.NewSource(random.NewSeed()))}
}

// Config returns the 75-ball layout.
func (s *Strategy5x5) Config() models.FormatConfig {
	cfg := config5x5
	cfg.ColumnRanges = append([]models.ColumnRange(nil), config5x5.ColumnRanges...)
	return cfg
}

// GenerateCells produces one candidate grid: five unique values per column
// placed ascending top-to-bottom, then the center overwritten with the free
// space so the N column keeps four numbers.
func (s *Strategy5x5) GenerateCells() []models.GeneratedCell {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells := make([]models.GeneratedCell, config5x5.TotalCells)
	for _, cr := range config5x5.ColumnRanges {
		values, err := random.UniqueInRange(s.rng, cr.Min, cr.Max, config5x5.Rows)
		if err != nil {
			// Unreachable: every column range above holds fifteen values.
			panic(err)
		}
		sort.Ints(values)
		for row, value := range values {
			index := row*config5x5.Columns + cr.Column
			cells[index] = models.NumberCell(index, value)
		}
	}
	cells[freeSpaceIndex5x5] = models.FreeCell(freeSpaceIndex5x5)
	return cells
}
