package decode

import (
	"ir-hub-backend/internal/ir"
)

// lgChecksum computes the LG nibble checksum over the 8-bit address and
// 16-bit command.
func lgChecksum(address uint8, command uint16) uint8 {
	return ir.SumNibbles([]byte{address, uint8(command), uint8(command >> 8)})
}

// LG decodes the 28-bit LG frame: 8-bit address, 16-bit command and a
// 4-bit nibble-sum checksum, LSB first under the NEC envelope. A bad
// checksum is flagged, not rejected; LG remotes in the field are known to
// ship firmware that gets it wrong.
type LG struct{}

func (LG) Protocol() ir.Protocol { return ir.ProtocolLG }

func (LG) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolLG)
	if len(symbols) < 29 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > 31 {
		// Carrier AC frames open with a near-identical header.
		return nil, ir.ErrTimingMismatch
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
	received := uint8(data>>24) & 0x0F

	code := newCode(ir.ProtocolLG)
	code.Data = data
	code.Bits = 28
	code.Address = uint16(address)
	code.Command = command
	if received != lgChecksum(address, command) {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}

// PackLG builds the 28-bit LG data word including its checksum nibble.
func PackLG(address uint8, command uint16) uint64 {
	return uint64(address) |
		uint64(command)<<8 |
		uint64(lgChecksum(address, command))<<24
}
