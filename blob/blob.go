// Package blob implements the solver input/output record (spec §6): a
// typed header plus a body of one raw d-slot integer per term, and the
// Run entry point that decodes one, drives a solve, and re-encodes the
// result in place.
package blob

import (
	"bufio"
	"fmt"
	"io"

	"github.com/flipgraph/gf2mm/bitboard"
	"github.com/flipgraph/gf2mm/core"
	"github.com/flipgraph/gf2mm/flip"
	"github.com/flipgraph/gf2mm/orbit"
	"github.com/flipgraph/gf2mm/plus"
	"github.com/flipgraph/gf2mm/solver"
	"github.com/flipgraph/gf2mm/tensor"
	"github.com/flipgraph/gf2mm/term"
)

// Header mirrors the fixed record exactly: nomuls flips rcode target
// flip_limit plimit termination rseed symm maxplus split minmuls maxsize.
type Header struct {
	NoMuls      int
	Flips       int
	RCode       int
	Target      int
	FlipLimit   int
	PLimit      int
	Termination int
	RSeed       int64
	Symm        int
	MaxPlus     int
	Split       int
	MinMuls     int
	MaxSize     int
}

// Blob is one logical record: the header plus NoMuls raw d-slot words,
// one per term (spec §6 "body: nomuls lines, each a single integer").
type Blob struct {
	Header Header
	Body   []uint64
}

// Decode reads a Blob written by Encode: one header line of thirteen
// whitespace-separated integers, followed by Header.NoMuls body lines.
func Decode(r io.Reader) (Blob, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		var v int
		if _, err := fmt.Sscan(tok, &v); err != nil {
			return 0, err
		}
		return v, nil
	}

	var h Header
	fields := []*int{
		&h.NoMuls, &h.Flips, &h.RCode, &h.Target, &h.FlipLimit, &h.PLimit,
		&h.Termination, nil /* rseed handled below */, &h.Symm, &h.MaxPlus,
		&h.Split, &h.MinMuls, &h.MaxSize,
	}
	for i, f := range fields {
		if i == 7 {
			tok, err := next()
			if err != nil {
				return Blob{}, err
			}
			if _, err := fmt.Sscan(tok, &h.RSeed); err != nil {
				return Blob{}, err
			}
			continue
		}
		v, err := nextInt()
		if err != nil {
			return Blob{}, err
		}
		*f = v
	}

	body := make([]uint64, h.NoMuls)
	for i := range body {
		tok, err := next()
		if err != nil {
			return Blob{}, err
		}
		if _, err := fmt.Sscan(tok, &body[i]); err != nil {
			return Blob{}, err
		}
	}

	return Blob{Header: h, Body: body}, nil
}

// Encode writes b in the format Decode reads back.
func Encode(w io.Writer, b Blob) error {
	bw := bufio.NewWriter(w)
	h := b.Header
	if _, err := fmt.Fprintf(bw, "%d %d %d %d %d %d %d %d %d %d %d %d %d\n",
		h.NoMuls, h.Flips, h.RCode, h.Target, h.FlipLimit, h.PLimit,
		h.Termination, h.RSeed, h.Symm, h.MaxPlus, h.Split, h.MinMuls, h.MaxSize,
	); err != nil {
		return err
	}
	for _, v := range b.Body {
		if _, err := fmt.Fprintf(bw, "%d\n", v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// wordToBits reconstructs a single-word bitboard.Bits (S<=64, spec's
// stated design range) from one body integer.
func wordToBits(v uint64, s int) bitboard.Bits {
	b := bitboard.New(s)
	for i := 0; i < s && i < 64; i++ {
		if v&(1<<uint(i)) != 0 {
			b.Set(i)
		}
	}
	return b
}

// bitsToWord packs a single-word bitboard.Bits back into one body integer.
func bitsToWord(b bitboard.Bits) uint64 {
	var v uint64
	for _, e := range b.Entries() {
		v |= 1 << uint(e)
	}
	return v
}

// sizeCapFromMaxSize maps the header's maxsize field onto flip.SizeCap:
// the sign already carries length-vs-volume exactly as flip.SizeCap
// defines it (spec §4.D), so this is a direct reinterpretation.
func sizeCapFromMaxSize(maxSize int) flip.SizeCap {
	if maxSize == 0 {
		return flip.NoCap
	}
	return flip.SizeCap(maxSize)
}

// Run decodes b's body into a live core.State (the d-slots already
// represent an I2-respecting, orbit-decomposed term set — e and f are
// reconstructed via the orbit wiring, never stored redundantly), drives
// a solve, and returns a Blob with the header fields the solve updates
// in place (flips, rcode, target/achieved rank, minmuls, plus) and the
// resulting body. s is the tensor slot width (N², not itself part of
// the header — the caller supplies it out of band, since the header
// never names the matrix dimension directly).
func Run(b Blob, s int) (Blob, error) {
	h := b.Header

	muls := make([]term.Term, len(b.Body))
	for i, v := range b.Body {
		d := wordToBits(v, s)
		muls[i] = term.Term{D: d}
	}

	target := tensorFromTerms(muls, s, h.Symm)
	st, err := core.NewState(muls, h.Symm, s, target)
	if err != nil {
		return Blob{}, err
	}
	st.Flips = h.Flips

	strat := strategyFromTermination(h.Termination, h.Split)
	cfg, err := solver.NewConfig(h.Target, h.FlipLimit, h.Symm,
		solver.WithStrategy(strat),
		solver.WithPlusSchedule(plus.Uniform, h.PLimit, h.MaxPlus),
		solver.WithSizeCap(sizeCapFromMaxSize(h.MaxSize)),
		solver.WithSeed(h.RSeed),
	)
	if err != nil {
		return Blob{}, err
	}

	res := solver.Run(st, cfg)

	out := h
	out.NoMuls = len(res.Terms)
	out.Flips = res.Flips
	out.RCode = int(res.Code)
	out.Target = res.Rank
	out.MinMuls = res.BestRank
	out.MaxPlus = res.Plus / h.Symm // State.Plus grows by Symm per transition

	body := make([]uint64, len(res.Terms))
	for i, t := range res.Terms {
		body[i] = bitsToWord(t.D)
	}

	return Blob{Header: out, Body: body}, nil
}

// strategyFromTermination maps the header's termination code onto a
// solver.Strategy; Split's threshold comes from the header, its
// percentage defaults to 0.5 since the fixed-width header carries no
// separate pct field (see DESIGN.md).
func strategyFromTermination(termination, split int) solver.Strategy {
	switch termination {
	case 1:
		return solver.Early{}
	case 2:
		return solver.Reset{}
	case 3:
		return solver.Split{Threshold: split, Pct: 0.5}
	default:
		return solver.Limit{}
	}
}

// tensorFromTerms reconstructs the tensor that muls's d-slots already
// represent, using the orbit wiring to fill in each term's e and f
// coordinates from its partners' d-slots — I1 guarantees this value
// never changes across flips or pluses, so it doubles as Run's
// core.State.Target.
func tensorFromTerms(muls []term.Term, s, sigma int) bitboard.Bits {
	meOffset, mfOffset, _ := orbit.Partners(sigma)
	raw := make([]term.Term, len(muls))
	for i := range muls {
		raw[i] = term.Term{
			D: muls[i].D,
			E: muls[orbit.ME(i, sigma, meOffset)].D,
			F: muls[orbit.MF(i, sigma, mfOffset)].D,
		}
	}
	return tensor.Evaluate(raw, s)
}
