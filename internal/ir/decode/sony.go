package decode

import (
	"ir-hub-backend/internal/ir"
)

// Sony decodes the SIRC pulse-width protocol: a 7-bit command followed by
// a 5, 8 or 13-bit address, LSB first, on a 40kHz carrier. There is no
// stop bit, so the capture length fixes the variant.
type Sony struct{}

func (Sony) Protocol() ir.Protocol { return ir.ProtocolSony }

func (Sony) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolSony)
	if len(symbols) < 13 {
		return nil, ir.ErrTooFewSymbols
	}
	bits := len(symbols) - 1
	if bits != 12 && bits != 15 && bits != 20 {
		return nil, ir.ErrTimingMismatch
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	var data uint64
	for i := 0; i < bits; i++ {
		sym := symbols[1+i]
		switch {
		case ir.MatchMark(sym, c.OneSpace, 0): // long mark = 1
			data |= 1 << i
		case ir.MatchMark(sym, c.BitMark, 0):
		default:
			return nil, ir.ErrTimingMismatch
		}
		// The space after the last bit is the inter-frame gap.
		if i < bits-1 && !ir.MatchSpace(sym, c.ZeroSpace, 0) {
			return nil, ir.ErrTimingMismatch
		}
	}

	code := newCode(ir.ProtocolSony)
	code.Data = data
	code.Bits = uint16(bits)
	code.Command = uint16(data & 0x7F)
	code.Address = uint16(data >> 7)
	return code, nil
}

// PackSony builds the SIRC data word for a given variant width.
func PackSony(address uint16, command uint8) uint64 {
	return uint64(command&0x7F) | uint64(address)<<7
}
