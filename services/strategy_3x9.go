package services

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/bellapacxx/bingo-cardgen/utils/random"
)

var _ CardStrategy = (*Strategy3x9)(nil)

const (
	numbersPerRow3x9  = 5
	numbersTotal3x9   = 15
	maxPerColumn3x9   = 3
	layoutRetryBudget = 100
)

var config3x9 = models.FormatConfig{
	Rows:           3,
	Columns:        9,
	TotalCells:     27,
	HasFreeSpace:   false,
	FreeSpaceIndex: -1,
	ColumnRanges: []models.ColumnRange{
		{Column: 0, Min: 1, Max: 9},
		{Column: 1, Min: 10, Max: 19},
		{Column: 2, Min: 20, Max: 29},
		{Column: 3, Min: 30, Max: 39},
		{Column: 4, Min: 40, Max: 49},
		{Column: 5, Min: 50, Max: 59},
		{Column: 6, Min: 60, Max: 69},
		{Column: 7, Min: 70, Max: 79},
		{Column: 8, Min: 80, Max: 90},
	},
}

// Strategy3x9 generates 90-ball cards: a 3x9 grid carrying 15 numbers and 12
// blanks. Every row holds exactly five numbers, every column between one and
// three, drawn ascending from that column's decade range.
type Strategy3x9 struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStrategy3x9 returns a strategy with an entropy-seeded number source.
func NewStrategy3x9() *Strategy3x9 {
	return &Strategy3x9{rng: rand.New(rand.NewSource(random.NewSeed()))}
}

// Config returns the 90-ball layout.
func (s *Strategy3x9) Config() models.FormatConfig {
	cfg := config3x9
	cfg.ColumnRanges = append([]models.ColumnRange(nil), config3x9.ColumnRanges...)
	return cfg
}

// GenerateCells produces one candidate grid. A feasible number layout is
// solved first; only then are values drawn, sorted and placed into the rows
// chosen for each column. Unassigned positions stay blank.
func (s *Strategy3x9) GenerateCells() []models.GeneratedCell {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := solveLayout3x9(s.rng)

	cells := make([]models.GeneratedCell, config3x9.TotalCells)
	for i := range cells {
		cells[i] = models.BlankCell(i)
	}
	for _, cr := range config3x9.ColumnRanges {
		values, err := random.UniqueInRange(s.rng, cr.Min, cr.Max, layout.columnCounts[cr.Column])
		if err != nil {
			// Unreachable: counts are capped at three and every range holds
			// at least ten values.
			panic(err)
		}
		sort.Ints(values)
		next := 0
		for row := 0; row < config3x9.Rows; row++ {
			if layout.rowHasNumber[row][cr.Column] {
				index := row*config3x9.Columns + cr.Column
				cells[index] = models.NumberCell(index, values[next])
				next++
			}
		}
	}
	return cells
}

// layout3x9 is a feasible number placement: how many numbers each column
// contributes and which columns fire in each row.
type layout3x9 struct {
	columnCounts [9]int     // 1..3 per column, summing to 15
	rowHasNumber [3][9]bool // exactly 5 true per row
}

// solveLayout3x9 builds a random feasible layout. Column totals are fixed
// first, then rows are filled by a greedy pass that always takes the forced
// columns before topping up at random. An infeasible partial state restarts
// the whole assignment from fresh column totals rather than ever emitting a
// grid that breaks the row or column counts.
func solveLayout3x9(rng *rand.Rand) layout3x9 {
	for attempt := 0; attempt < layoutRetryBudget; attempt++ {
		counts := assignColumnCounts3x9(rng)
		rows, ok := assignRows3x9(rng, counts)
		if !ok {
			continue
		}
		return layout3x9{columnCounts: counts, rowHasNumber: rows}
	}
	// The forced-column rule keeps every partial state feasible, so the
	// budget exists only to turn a latent logic bug into a loud failure.
	panic("bingo: 3x9 layout solver exhausted its retry budget")
}

// assignColumnCounts3x9 seeds every column with one number, then spreads the
// six remaining slots at random without pushing any column past three.
func assignColumnCounts3x9(rng *rand.Rand) [9]int {
	var counts [9]int
	for i := range counts {
		counts[i] = 1
	}
	extras := numbersTotal3x9 - len(counts)
	for extras > 0 {
		col := rng.Intn(len(counts))
		if counts[col] < maxPerColumn3x9 {
			counts[col]++
			extras--
		}
	}
	return counts
}

// assignRows3x9 picks, for each row, the five columns that contribute a
// number, honoring the per-column totals. A column whose remaining quota
// equals the number of rows left is forced into each of them; the rest of
// the row is a uniform draw from the columns with quota to spare. Reports
// false when a partial state cannot seat five numbers in a row.
func assignRows3x9(rng *rand.Rand, counts [9]int) ([3][9]bool, bool) {
	var rows [3][9]bool
	remaining := counts

	for row := 0; row < config3x9.Rows; row++ {
		rowsLeft := config3x9.Rows - row
		var forced, optional []int
		for col, n := range remaining {
			switch {
			case n >= rowsLeft:
				forced = append(forced, col)
			case n > 0:
				optional = append(optional, col)
			}
		}
		if len(forced) > numbersPerRow3x9 {
			return rows, false
		}
		need := numbersPerRow3x9 - len(forced)
		if need > len(optional) {
			return rows, false
		}
		picked := append(forced, random.Shuffle(rng, optional)[:need]...)
		for _, col := range picked {
			rows[row][col] = true
			remaining[col]--
		}
	}
	return rows, true
}
