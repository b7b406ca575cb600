package decode

import (
	"ir-hub-backend/internal/ir"
)

// The exotic tier: protocols rare enough that they run after everything
// else, shaped closely after their hardware quirks.

// Lego decodes the 16-bit Lego Power Functions frame, MSB first: 4-bit
// nibbles for toggle/escape, channel, mode and data, with an LRC in the
// low nibble.
type Lego struct{}

func (Lego) Protocol() ir.Protocol { return ir.ProtocolLegoPF }

func (Lego) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolLegoPF)
	if len(symbols) < 17 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:17], 0, c.OneSpace, c.ZeroSpace, true, false)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolLegoPF)
	code.Data = data
	code.Bits = 16
	code.Address = uint16(data >> 12 & 0x0F) // channel nibble
	code.Command = uint16(data >> 4 & 0xFF)
	return code, nil
}

// MagiQuest decodes the 56-bit headerless wand frame, MSB first: a
// 32-bit wand ID followed by a 24-bit magnitude.
type MagiQuest struct{}

func (MagiQuest) Protocol() ir.Protocol { return ir.ProtocolMagiQuest }

func (MagiQuest) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolMagiQuest)
	if len(symbols) < 56 {
		return nil, ir.ErrTooFewSymbols
	}

	data, err := readWord(symbols[:56], c.BitMark, c.OneSpace, c.ZeroSpace, true, false)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolMagiQuest)
	code.Data = data
	code.Bits = 56
	code.Address = uint16(data >> 40) // top of the wand ID
	code.Command = uint16(data & 0xFFFF)
	return code, nil
}

// BoseWave decodes the 16-bit Bose Wave frame, MSB first: a command byte
// followed by its complement.
type BoseWave struct{}

func (BoseWave) Protocol() ir.Protocol { return ir.ProtocolBoseWave }

func (BoseWave) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolBoseWave)
	if len(symbols) < 17 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:17], c.BitMark, c.OneSpace, c.ZeroSpace, true, false)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolBoseWave)
	code.Data = data
	code.Bits = 16
	code.Command = uint16(data >> 8)
	if uint8(data>>8) != ^uint8(data) {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}

// Fast decodes the headerless 8-bit FAST frame, LSB first.
type Fast struct{}

func (Fast) Protocol() ir.Protocol { return ir.ProtocolFast }

func (Fast) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolFast)
	if len(symbols) < 8 {
		return nil, ir.ErrTooFewSymbols
	}

	data, err := readWord(symbols[:8], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolFast)
	code.Data = data
	code.Bits = 8
	code.Command = uint16(data)
	return code, nil
}
