package decode

import (
	"ir-hub-backend/internal/ir"
)

// LG2 decodes the 28-bit frame LG air conditioners transmit: the same
// word layout and nibble checksum as LG TVs under a distinct header with
// a long 9.9ms leading space.
type LG2 struct{}

func (LG2) Protocol() ir.Protocol { return ir.ProtocolLG2 }

func (LG2) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolLG2)
	if len(symbols) < 29 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:29], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	address := uint8(data)
	command := uint16(data >> 8)

	code := newCode(ir.ProtocolLG2)
	code.Data = data
	code.Bits = 28
	code.Address = uint16(address)
	code.Command = command
	if uint8(data>>24)&0x0F != lgChecksum(address, command) {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
