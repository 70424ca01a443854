package tensor

// Kind selects one of the four row/column reindexings the original solver
// supports (spec §4.A names two — "straight and C transposed" — the other
// two are a supplemental feature recovered from original_source's setrco,
// used there to make persisted solutions more readable for small N).
type Kind int

const (
	// Normal assigns position j the row-major (j/n, j%n) coordinate for
	// every one of the three factor slots — the textbook layout.
	Normal Kind = iota

	// CTransposed keeps A and B row-major but swaps C's row/col relative
	// to B's, so the persisted "c" factor reads as a transpose of the
	// naive assignment.
	CTransposed

	// ByDimension assigns coordinates in increasing-dimension triangular
	// sweep order (off-diagonal pairs before the diagonal, dimension by
	// dimension) instead of row-major, for all three slots.
	ByDimension

	// ByDimensionCTransposed combines ByDimension with the C-transpose.
	ByDimensionCTransposed
)

// Layout is a concrete row/column assignment for each of the three factor
// slots (A, B, C) of an N×N problem: RowX[j]/ColX[j] give the (row, col)
// that bit position j of slot X addresses.
type Layout struct {
	Kind Kind
	N    int
	S    int // N*N

	RowA, ColA []int
	RowB, ColB []int
	RowC, ColC []int
}

// NewLayout builds the Layout for the given Kind and matrix dimension n.
func NewLayout(kind Kind, n int) Layout {
	s := n * n
	lay := Layout{Kind: kind, N: n, S: s}

	var row, col []int
	switch kind {
	case Normal, CTransposed:
		row, col = rowMajor(n)
	case ByDimension, ByDimensionCTransposed:
		row, col = byDimension(n)
	default:
		row, col = rowMajor(n)
	}

	lay.RowA = row
	lay.ColA = col
	lay.RowB = row
	lay.ColB = col

	switch kind {
	case CTransposed, ByDimensionCTransposed:
		lay.RowC = append([]int(nil), col...)
		lay.ColC = append([]int(nil), row...)
	default:
		lay.RowC = row
		lay.ColC = col
	}

	return lay
}

// rowMajor returns the standard (j/n, j%n) coordinate assignment.
func rowMajor(n int) (row, col []int) {
	s := n * n
	row = make([]int, s)
	col = make([]int, s)
	for j := 0; j < s; j++ {
		row[j] = j / n
		col[j] = j % n
	}
	return row, col
}

// byDimension returns the increasing-dimension triangular sweep
// assignment: for each k in [0,n), emit (j,k) for j<k, then (k,j) for j<k,
// then (k,k) — ported from original_source's setrco order-2/3 branches.
func byDimension(n int) (row, col []int) {
	s := n * n
	row = make([]int, s)
	col = make([]int, s)
	l := 0
	for k := 0; k < n; k++ {
		for j := 0; j < k; j++ {
			row[l], col[l] = j, k
			l++
		}
		for j := 0; j < k; j++ {
			row[l], col[l] = k, j
			l++
		}
		row[l], col[l] = k, k
		l++
	}
	return row, col
}

// IndexOf returns the position j such that RowX[j]==r && ColX[j]==c, the
// inverse of the per-slot coordinate assignment (used by persist to map a
// parsed 1-based row/col pair back to a bit position). slot selects which
// of the three (0=A, 1=B, 2=C).
func (lay Layout) IndexOf(slot, r, c int) int {
	var row, col []int
	switch slot {
	case 0:
		row, col = lay.RowA, lay.ColA
	case 1:
		row, col = lay.RowB, lay.ColB
	default:
		row, col = lay.RowC, lay.ColC
	}
	for j := range row {
		if row[j] == r && col[j] == c {
			return j
		}
	}
	return -1
}
