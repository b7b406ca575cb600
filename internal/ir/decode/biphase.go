package decode

import (
	"ir-hub-backend/internal/ir"
)

// Bi-phase (Manchester) support. A capture groups consecutive equal-level
// durations into one symbol, so a single mark can span the second half of
// one bit and the first half of the next. expandHalves undoes that
// grouping: it quantizes every mark and space to 1..4 half-bit units and
// emits one level per half unit, which the RC5/RC6 decoders then pair
// back into bits.

// quantizeHalves returns how many half-bit units a duration spans, or 0
// when it fits none of 1..4 units at the given tolerance.
func quantizeHalves(d, unit, tolerancePercent uint32) int {
	for n := uint32(1); n <= 4; n++ {
		if ir.MatchPercent(d, n*unit, tolerancePercent) {
			return int(n)
		}
	}
	return 0
}

// expandHalves converts symbols into a level-per-half-unit stream of
// exactly want entries (true = mark). The space of the final symbol is the
// inter-frame gap and fills whatever remains without validation.
func expandHalves(symbols []ir.Symbol, unit, tolerancePercent uint32, want int) ([]bool, error) {
	halves := make([]bool, 0, want)
	for i, sym := range symbols {
		n := quantizeHalves(sym.Mark, unit, tolerancePercent)
		if n == 0 {
			return nil, ir.ErrTimingMismatch
		}
		for j := 0; j < n && len(halves) < want; j++ {
			halves = append(halves, true)
		}
		if len(halves) == want {
			return halves, nil
		}

		last := i == len(symbols)-1
		n = quantizeHalves(sym.Space, unit, tolerancePercent)
		if n == 0 && !last {
			return nil, ir.ErrTimingMismatch
		}
		if last {
			for len(halves) < want {
				halves = append(halves, false)
			}
			return halves, nil
		}
		for j := 0; j < n && len(halves) < want; j++ {
			halves = append(halves, false)
		}
		if len(halves) == want {
			return halves, nil
		}
	}
	return nil, ir.ErrTooFewSymbols
}

// pairBit reads one Manchester bit from two adjacent halves. The two
// halves of a bit always differ; a mark-first pair decodes as 1.
func pairBit(first, second bool) (uint8, bool) {
	if first == second {
		return 0, false
	}
	if first {
		return 1, true
	}
	return 0, true
}
