// Package persist implements the persisted solution text format (spec
// §6): one line per term, `(a_ij+…)*(b_…)*(c_…)`, with 1-based row/col
// indices under a caller-chosen tensor.Layout.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/tensor"
	"github.com/flipgraph/gf2mm/term"
)

// ErrMalformedLine is returned by Read when a line doesn't match the
// `(a..)*(b..)*(c..)` grammar.
var ErrMalformedLine = errors.New("persist: malformed solution line")

// Write emits one line per term under lay, matching writesol's grammar
// exactly: a factor's entries are row/col pairs (1-based) for its slot
// letter, joined by '+', with the three factors joined by '*'.
func Write(w io.Writer, terms []term.Term, lay tensor.Layout) error {
	bw := bufio.NewWriter(w)
	for _, t := range terms {
		line := factorString(t.D, 'a', lay.RowA, lay.ColA) + "*" +
			factorString(t.E, 'b', lay.RowB, lay.ColB) + "*" +
			factorString(t.F, 'c', lay.RowC, lay.ColC) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func factorString(bits bitboard.Bits, letter byte, row, col []int) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, e := range bits.Entries() {
		if i > 0 {
			sb.WriteByte('+')
		}
		sb.WriteByte(letter)
		sb.WriteString(strconv.Itoa(row[e] + 1))
		sb.WriteString(strconv.Itoa(col[e] + 1))
	}
	sb.WriteByte(')')
	return sb.String()
}

// Read parses a solution text stream written by Write, one term per
// line, reconstructing each slot's bitboard.Bits under lay.
func Read(r io.Reader, n int, lay tensor.Layout) ([]term.Term, error) {
	if n != lay.N {
		return nil, fmt.Errorf("%w: dimension %d does not match layout dimension %d", ErrMalformedLine, n, lay.N)
	}
	s := lay.S
	var out []term.Term

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		groups := strings.Split(line, ")*(")
		if len(groups) != 3 {
			return nil, ErrMalformedLine
		}
		groups[0] = strings.TrimPrefix(groups[0], "(")
		groups[2] = strings.TrimSuffix(groups[2], ")")

		d, err := parseFactor(groups[0], 'a', s, lay, 0)
		if err != nil {
			return nil, err
		}
		e, err := parseFactor(groups[1], 'b', s, lay, 1)
		if err != nil {
			return nil, err
		}
		f, err := parseFactor(groups[2], 'c', s, lay, 2)
		if err != nil {
			return nil, err
		}
		out = append(out, term.Term{D: d, E: e, F: f})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseFactor(group string, letter byte, s int, lay tensor.Layout, slot int) (bitboard.Bits, error) {
	out := bitboard.New(s)
	if group == "" {
		return out, nil
	}
	for _, entry := range strings.Split(group, "+") {
		if len(entry) != 3 || entry[0] != letter {
			return bitboard.Bits{}, fmt.Errorf("%w: %q", ErrMalformedLine, entry)
		}
		row, err := strconv.Atoi(entry[1:2])
		if err != nil {
			return bitboard.Bits{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		col, err := strconv.Atoi(entry[2:3])
		if err != nil {
			return bitboard.Bits{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
		}
		j := lay.IndexOf(slot, row-1, col-1)
		if j < 0 {
			return bitboard.Bits{}, fmt.Errorf("%w: no slot for %q", ErrMalformedLine, entry)
		}
		out.Set(j)
	}
	return out, nil
}
