package decode

import (
	"ir-hub-backend/internal/ir"
)

// JVC decodes the 16-bit JVC frame: 8-bit address then 8-bit command, LSB
// first. JVC repeats drop the header and resend the data bits, so a
// headerless capture of the right shape is accepted and flagged as a
// repeat.
type JVC struct{}

func (JVC) Protocol() ir.Protocol { return ir.ProtocolJVC }

func (JVC) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolJVC)
	if len(symbols) < 16 {
		return nil, ir.ErrTooFewSymbols
	}

	hasHeader := len(symbols) >= 17 && matchHeader(symbols[0], c)
	if hasHeader {
		// The JVC and NEC headers overlap at 25% tolerance. When the
		// capture sits closer to the NEC envelope it belongs to an NEC
		// frame that failed its own decoder, not to JVC.
		necC, _ := ir.LookupConstants(ir.ProtocolNEC)
		if absDiff(symbols[0].Mark, necC.HeaderMark)+absDiff(symbols[0].Space, necC.HeaderSpace) <
			absDiff(symbols[0].Mark, c.HeaderMark)+absDiff(symbols[0].Space, c.HeaderSpace) {
			return nil, ir.ErrTimingMismatch
		}
	}

	dataStart := 0
	maxLen := 17 // 16 bits + stop
	if hasHeader {
		dataStart = 1
		maxLen = 18
	}
	if len(symbols) > maxLen {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[dataStart:dataStart+16], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolJVC)
	code.Data = data
	code.Bits = 16
	code.Address = uint16(uint8(data))
	code.Command = uint16(uint8(data >> 8))
	if !hasHeader {
		code.Flags |= ir.FlagRepeat
	}
	return code, nil
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
