package decode

import (
	"ir-hub-backend/internal/ir"
)

// RC5 decodes the Philips RC5 14-bit bi-phase frame: two start bits, a
// toggle bit, a 5-bit address and a 6-bit command, MSB first. The frame
// always opens with a mark (the first half of start bit one), so the
// half-unit stream lines up with the capture directly.
type RC5 struct{}

func (RC5) Protocol() ir.Protocol { return ir.ProtocolRC5 }

func (RC5) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolRC5)
	if len(symbols) < 7 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > 14 {
		return nil, ir.ErrTimingMismatch
	}

	halves, err := expandHalves(symbols, c.BitMark, 25, 28)
	if err != nil {
		return nil, err
	}

	var value uint16
	for i := 0; i < 14; i++ {
		bit, ok := pairBit(halves[2*i], halves[2*i+1])
		if !ok {
			return nil, ir.ErrTimingMismatch
		}
		value = value<<1 | uint16(bit)
	}

	// Extended RC5 repurposes the second start bit as an inverted command
	// bit, so a non-11 start pattern is not rejected.
	toggle := value>>11&1 == 1

	code := newCode(ir.ProtocolRC5)
	code.Data = uint64(value)
	code.Bits = 14
	code.Address = value >> 6 & 0x1F
	code.Command = value & 0x3F
	if toggle {
		code.Flags |= ir.FlagToggle
	}
	return code, nil
}

// PackRC5 builds the 14-bit RC5 word with both start bits set.
func PackRC5(address, command uint8, toggle bool) uint64 {
	value := uint64(0x3)<<12 |
		uint64(address&0x1F)<<6 |
		uint64(command&0x3F)
	if toggle {
		value |= 1 << 11
	}
	return value
}
