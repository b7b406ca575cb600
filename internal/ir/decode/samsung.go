package decode

import (
	"ir-hub-backend/internal/ir"
)

// Samsung decodes the 32-bit Samsung TV frame: 16-bit address (the
// customer byte sent twice), 8-bit command, inverted command. Longer
// captures are left for the 48-bit variant.
type Samsung struct{}

func (Samsung) Protocol() ir.Protocol { return ir.ProtocolSamsung }

func (Samsung) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolSamsung)
	if len(symbols) < 34 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > 36 {
		// 48-bit Samsung and Midea share this envelope.
		return nil, ir.ErrTimingMismatch
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:33], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolSamsung)
	code.Data = data
	code.Bits = 32
	code.Address = uint16(data)
	code.Command = uint16(uint8(data >> 16))
	if uint8(data>>16) != ^uint8(data>>24) {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}

// PackSamsung builds the 32-bit Samsung data word.
func PackSamsung(address uint16, command uint8) uint64 {
	return uint64(address) |
		uint64(command)<<16 |
		uint64(^command)<<24
}
