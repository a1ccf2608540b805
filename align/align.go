// Package align maps the nodes of a predicted action diagram onto a gold
// diagram by global alignment of their predicate sequences.
package align

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/jamesainslie/go-recipediff/diagram"
)

const (
	matchBonus    = 5
	mismatchScore = -1
	gapPenalty    = 1
)

// move is the backpointer stored for a DP cell.
type move uint8

const (
	moveNone move = iota // origin cell
	moveDiag
	moveRow // gold node unmatched
	moveCol // predicted node unmatched
)

// Table is the filled DP table. Rows index gold positions, columns predicted positions,
// both offset by one so that row 0 and column 0 are the borders.
type Table struct {
	Scores *mat.Dense
	moves  []move
	cols   int
}

func (t *Table) at(row, col int) move { return t.moves[row*t.cols+col] }

func (t *Table) set(row, col int, score float64, m move) {
	t.Scores.Set(row, col, score)
	t.moves[row*t.cols+col] = m
}

// Score returns the DP score of cell (row, col).
func (t *Table) Score(row, col int) int {
	return int(t.Scores.At(row, col))
}

// Similar reports whether one predicate is a substring of the other.
func Similar(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func matchScore(gold, pred string) float64 {
	if Similar(gold, pred) {
		return matchBonus
	}
	return mismatchScore
}

// Align maps predicted nodes to gold nodes. The result is one-to-one and
// order-preserving; either side may leave nodes unmapped.
func Align(pred, gold *diagram.Diagram) *Mapping {
	if pred.Len() == 0 {
		return newMapping(pred, gold, nil)
	}
	t := Fill(pred.Predicates(), gold.Predicates())
	return newMapping(pred, gold, t.Traceback())
}

// Fill builds the DP table for the predicted and gold predicate sequences.
//
// Borders grow outward from the origin (score[0][j] = j, score[i][0] = i)
// while interior gaps cost one point. Scores tuned against this convention
// depend on it, so it is kept as is.
func Fill(pred, gold []string) *Table {
	rows, cols := len(gold)+1, len(pred)+1
	// mat.NewDense panics on a zero dimension; both are at least 1 here.
	t := &Table{
		Scores: mat.NewDense(rows, cols, nil),
		moves:  make([]move, rows*cols),
		cols:   cols,
	}

	t.set(0, 0, 0, moveNone)
	for col := 1; col < cols; col++ {
		t.set(0, col, float64(col), moveCol)
	}
	for row := 1; row < rows; row++ {
		t.set(row, 0, float64(row), moveRow)
	}

	for row := 1; row < rows; row++ {
		for col := 1; col < cols; col++ {
			rowGap := t.Scores.At(row-1, col) - gapPenalty
			colGap := t.Scores.At(row, col-1) - gapPenalty
			diag := t.Scores.At(row-1, col-1) + matchScore(gold[row-1], pred[col-1])

			bestGap, gapMove := rowGap, moveRow
			if rowGap < colGap {
				bestGap, gapMove = colGap, moveCol
			}

			if diag >= bestGap {
				t.set(row, col, diag, moveDiag)
			} else {
				t.set(row, col, bestGap, gapMove)
			}
		}
	}
	return t
}

// Pair is one aligned (predicted index, gold index) correspondence.
type Pair struct {
	Pred int
	Gold int
}

// Traceback walks backpointers from the bottom-right cell to the origin and
// returns the diagonal steps in ascending order.
func (t *Table) Traceback() []Pair {
	row, col := t.Scores.Dims()
	row, col = row-1, col-1

	var pairs []Pair
	for {
		switch t.at(row, col) {
		case moveDiag:
			pairs = append(pairs, Pair{Pred: col - 1, Gold: row - 1})
			row, col = row-1, col-1
		case moveRow:
			row--
		case moveCol:
			col--
		default:
			for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
				pairs[i], pairs[j] = pairs[j], pairs[i]
			}
			return pairs
		}
	}
}
