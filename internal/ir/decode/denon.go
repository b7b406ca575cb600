package decode

import (
	"ir-hub-backend/internal/ir"
)

// Denon decodes the 15-bit Denon/Sharp frame: 5-bit address then 8-bit
// command then 2 frame bits, LSB first. Sharp hardware speaks the same
// wire format, so both map onto this decoder.
type Denon struct{}

func (Denon) Protocol() ir.Protocol { return ir.ProtocolDenon }

func (Denon) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolDenon)
	if len(symbols) < 16 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:16], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolDenon)
	code.Data = data
	code.Bits = 15
	code.Address = uint16(data & 0x1F)
	code.Command = uint16(data >> 5 & 0xFF)
	return code, nil
}

// PackDenon builds the 15-bit Denon data word.
func PackDenon(address uint8, command uint8) uint64 {
	return uint64(address&0x1F) | uint64(command)<<5
}
