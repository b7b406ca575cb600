package decode

import (
	"ir-hub-backend/internal/ir"
)

const rc6ToleranceAlgorithm = 30 // RC6 units are short; 25% cuts too fine

// RC6 decodes the Philips RC6 mode-0 frame: leader, start bit, 3 mode
// bits, a double-length toggle bit, then an 8-bit address and 8-bit
// command, MSB first. Bit polarity is inverted relative to RC5; here a
// mark-first pair is a 1 throughout.
type RC6 struct{}

func (RC6) Protocol() ir.Protocol { return ir.ProtocolRC6 }

func (RC6) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolRC6)
	if len(symbols) < 12 {
		return nil, ir.ErrTooFewSymbols
	}
	if !ir.MatchMark(symbols[0], c.HeaderMark, 0) ||
		!ir.MatchSpace(symbols[0], c.HeaderSpace, 0) {
		return nil, ir.ErrTimingMismatch
	}

	// 1 start + 3 mode bits at 2 halves each, toggle at 4 halves,
	// 16 data bits at 2 halves each.
	halves, err := expandHalves(symbols[1:], c.BitMark, rc6ToleranceAlgorithm, 44)
	if err != nil {
		return nil, err
	}

	start, ok := pairBit(halves[0], halves[1])
	if !ok || start != 1 {
		return nil, ir.ErrTimingMismatch
	}

	var mode uint8
	for i := 0; i < 3; i++ {
		bit, ok := pairBit(halves[2+2*i], halves[3+2*i])
		if !ok {
			return nil, ir.ErrTimingMismatch
		}
		mode = mode<<1 | bit
	}

	// The toggle bit runs at double length: two equal halves per side.
	if halves[8] != halves[9] || halves[10] != halves[11] {
		return nil, ir.ErrTimingMismatch
	}
	toggle, ok := pairBit(halves[8], halves[10])
	if !ok {
		return nil, ir.ErrTimingMismatch
	}

	var payload uint16
	for i := 0; i < 16; i++ {
		bit, ok := pairBit(halves[12+2*i], halves[13+2*i])
		if !ok {
			return nil, ir.ErrTimingMismatch
		}
		payload = payload<<1 | uint16(bit)
	}

	code := newCode(ir.ProtocolRC6)
	code.Data = uint64(mode)<<17 | uint64(toggle)<<16 | uint64(payload)
	code.Bits = 21
	code.Address = payload >> 8
	code.Command = payload & 0xFF
	if toggle == 1 {
		code.Flags |= ir.FlagToggle
	}
	return code, nil
}

// PackRC6 builds the mode-0 RC6 data word.
func PackRC6(address, command uint8, toggle bool) uint64 {
	value := uint64(address)<<8 | uint64(command)
	if toggle {
		value |= 1 << 16
	}
	return value
}
