package decode

import (
	"ir-hub-backend/internal/ir"
)

// Samsung48 decodes the 48-bit Samsung frame, the long variant some
// soundbars and AC heads transmit under the standard Samsung envelope:
// a 16-bit address, then two command bytes, each followed by its bitwise
// complement. Midea shares the envelope and bit count; the complement
// pairs are the discriminator, so frames without them fall through to
// the Midea decoder.
type Samsung48 struct{}

func (Samsung48) Protocol() ir.Protocol { return ir.ProtocolSamsung48 }

func (Samsung48) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolSamsung48)
	if len(symbols) < 49 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:49], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}
	c1, c2 := uint8(data>>16), uint8(data>>32)
	if uint8(data>>24) != ^c1 || uint8(data>>40) != ^c2 {
		return nil, ir.ErrTimingMismatch
	}

	code := newCode(ir.ProtocolSamsung48)
	code.Data = data
	code.Bits = 48
	code.Address = uint16(data)
	code.Command = uint16(c1) | uint16(c2)<<8
	return code, nil
}

// PackSamsung48 assembles the 48-bit wire word from an address and two
// command bytes, inserting the complement after each command byte.
func PackSamsung48(address uint16, c1, c2 uint8) uint64 {
	return uint64(address) |
		uint64(c1)<<16 | uint64(^c1)<<24 |
		uint64(c2)<<32 | uint64(^c2)<<40
}
