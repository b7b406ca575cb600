package decode

import (
	"ir-hub-backend/internal/ir"
)

// Whynter decodes the 32-bit Whynter portable AC frame, MSB first. Only
// the space duration carries the bit value.
type Whynter struct{}

func (Whynter) Protocol() ir.Protocol { return ir.ProtocolWhynter }

func (Whynter) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolWhynter)
	if len(symbols) < 33 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:33], 0, c.OneSpace, c.ZeroSpace, true, false)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolWhynter)
	code.Data = data
	code.Bits = 32
	code.Address = uint16(data >> 16)
	code.Command = uint16(data)
	return code, nil
}
