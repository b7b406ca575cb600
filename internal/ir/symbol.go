package ir

// Symbol is one captured IR pulse: the duration the carrier was on (mark)
// followed by the duration it was off (space), both in microseconds.
// A capture is an ordered slice of Symbols and is never mutated after it
// is handed to a decoder.
type Symbol struct {
	Mark  uint32 `json:"mark_us"`
	Space uint32 `json:"space_us"`
}

// Duration returns the total length of the symbol in microseconds.
func (s Symbol) Duration() uint32 {
	return s.Mark + s.Space
}

// TotalDuration sums the duration of all symbols in a capture.
func TotalDuration(symbols []Symbol) uint64 {
	var total uint64
	for _, s := range symbols {
		total += uint64(s.Duration())
	}
	return total
}
