package decode

import (
	"ir-hub-backend/internal/ir"
)

const (
	necRepeatSpace = 2250
	necMinSymbols  = 34 // header + 32 bits + stop
)

// NEC decodes the 32-bit NEC frame: 8-bit address, inverted address,
// 8-bit command, inverted command, LSB first. A ditto frame (header mark
// followed by a 2250us space and a lone stop bit) is reported as
// ir.ErrRepeatFrame so the pipeline can resolve it against the previous
// full frame.
type NEC struct{}

func (NEC) Protocol() ir.Protocol { return ir.ProtocolNEC }

func (NEC) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolNEC)

	if len(symbols) >= 1 && len(symbols) < necMinSymbols {
		// A ditto is two symbols: the short header and the stop bit.
		if ir.MatchMark(symbols[0], c.HeaderMark, 0) &&
			ir.MatchSpace(symbols[0], necRepeatSpace, 0) {
			return nil, ir.ErrRepeatFrame
		}
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) < necMinSymbols {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:33], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	addr := uint8(data)
	addrInv := uint8(data >> 8)
	cmd := uint8(data >> 16)
	cmdInv := uint8(data >> 24)

	addrOK := addr == ^addrInv
	cmdOK := cmd == ^cmdInv
	if !addrOK && !cmdOK {
		return nil, ir.ErrTimingMismatch
	}

	code := newCode(ir.ProtocolNEC)
	code.Data = data
	code.Bits = 32
	code.Command = uint16(cmd)
	code.Address = uint16(addr)
	switch {
	case !addrOK:
		// Extended NEC reuses the inverted-address byte for a 16-bit
		// address.
		code.Address = uint16(addr) | uint16(addrInv)<<8
		code.Flags |= ir.FlagExtended
	case !cmdOK:
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}

// PackNEC builds the 32-bit NEC data word from an 8-bit address and
// command with their complements, the layout the volume of cheap remotes
// on the market transmits.
func PackNEC(address, command uint8) uint64 {
	return uint64(address) |
		uint64(^address)<<8 |
		uint64(command)<<16 |
		uint64(^command)<<24
}

// PackNECExtended builds the 32-bit data word for a 16-bit address;
// only the command byte keeps its complement.
func PackNECExtended(address uint16, command uint8) uint64 {
	return uint64(address) |
		uint64(command)<<16 |
		uint64(^command)<<24
}
