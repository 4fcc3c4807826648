package services

import (
	"math/rand"
	"testing"

	"github.com/bellapacxx/bingo-cardgen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStrategy3x9(seed int64) *Strategy3x9 {
	return &Strategy3x9{rng: rand.New(rand.NewSource(seed))}
}

func TestStrategy3x9Config(t *testing.T) {
	cfg := NewStrategy3x9().Config()

	assert.Equal(t, 3, cfg.Rows)
	assert.Equal(t, 9, cfg.Columns)
	assert.Equal(t, 27, cfg.TotalCells)
	assert.False(t, cfg.HasFreeSpace)

	require.Len(t, cfg.ColumnRanges, 9)
	assert.Equal(t, models.ColumnRange{Column: 0, Min: 1, Max: 9}, cfg.ColumnRanges[0])
	assert.Equal(t, models.ColumnRange{Column: 8, Min: 80, Max: 90}, cfg.ColumnRanges[8])
	for col := 1; col < 8; col++ {
		assert.Equal(t, col*10, cfg.ColumnRanges[col].Min)
		assert.Equal(t, col*10+9, cfg.ColumnRanges[col].Max)
	}
}

func TestStrategy3x9CardProperties(t *testing.T) {
	s := seededStrategy3x9(1)
	cfg := s.Config()

	for i := 0; i < 1000; i++ {
		cells := s.GenerateCells()
		require.Len(t, cells, cfg.TotalCells)

		seen := make(map[int]bool)
		for idx, cell := range cells {
			require.Equal(t, idx, cell.Index)
			require.NotEqual(t, models.CellFree, cell.Type)
			if cell.Type == models.CellNumber {
				require.NotNil(t, cell.Value)
				require.False(t, seen[*cell.Value], "value %d appears twice", *cell.Value)
				seen[*cell.Value] = true
			} else {
				require.Nil(t, cell.Value)
			}
		}

		for row := 0; row < cfg.Rows; row++ {
			numbers := 0
			for col := 0; col < cfg.Columns; col++ {
				if cells[row*cfg.Columns+col].Type == models.CellNumber {
					numbers++
				}
			}
			require.Equal(t, 5, numbers, "row %d must carry exactly five numbers", row)
		}

		total := 0
		for _, cr := range cfg.ColumnRanges {
			count, prev := 0, 0
			for row := 0; row < cfg.Rows; row++ {
				cell := cells[row*cfg.Columns+cr.Column]
				if cell.Type != models.CellNumber {
					continue
				}
				count++
				require.GreaterOrEqual(t, *cell.Value, cr.Min)
				require.LessOrEqual(t, *cell.Value, cr.Max)
				require.Greater(t, *cell.Value, prev, "column %d not strictly ascending", cr.Column)
				prev = *cell.Value
			}
			require.GreaterOrEqual(t, count, 1, "column %d has no numbers", cr.Column)
			require.LessOrEqual(t, count, 3, "column %d has too many numbers", cr.Column)
			total += count
		}
		require.Equal(t, 15, total)
	}
}

func TestAssignColumnCounts3x9(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		counts := assignColumnCounts3x9(rng)
		sum := 0
		for col, n := range counts {
			require.GreaterOrEqual(t, n, 1, "column %d under quota", col)
			require.LessOrEqual(t, n, 3, "column %d over quota", col)
			sum += n
		}
		require.Equal(t, 15, sum)
	}
}

func TestAssignRows3x9HonorsQuotas(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 1000; i++ {
		counts := assignColumnCounts3x9(rng)
		rows, ok := assignRows3x9(rng, counts)
		require.True(t, ok, "assignment reported infeasible for counts %v", counts)

		for row := 0; row < 3; row++ {
			picked := 0
			for col := 0; col < 9; col++ {
				if rows[row][col] {
					picked++
				}
			}
			require.Equal(t, 5, picked, "row %d picked %d columns", row, picked)
		}
		for col := 0; col < 9; col++ {
			fired := 0
			for row := 0; row < 3; row++ {
				if rows[row][col] {
					fired++
				}
			}
			require.Equal(t, counts[col], fired, "column %d fired %d times", col, fired)
		}
	}
}

func TestSolveLayout3x9IsSelfConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		layout := solveLayout3x9(rng)
		for col := 0; col < 9; col++ {
			fired := 0
			for row := 0; row < 3; row++ {
				if layout.rowHasNumber[row][col] {
					fired++
				}
			}
			require.Equal(t, layout.columnCounts[col], fired)
		}
	}
}

func TestStrategy3x9CandidatesAreIndependent(t *testing.T) {
	s := seededStrategy3x9(2)
	first := GenerateCardHash(s.GenerateCells())
	second := GenerateCardHash(s.GenerateCells())
	assert.NotEqual(t, first, second)
}
