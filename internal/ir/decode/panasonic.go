package decode

import (
	"ir-hub-backend/internal/ir"
)

// Panasonic decodes the 48-bit Kaseikyo frame used by Panasonic
// equipment: a 16-bit vendor/genre word in the top bits and a 32-bit
// payload, LSB first on the wire.
type Panasonic struct{}

func (Panasonic) Protocol() ir.Protocol { return ir.ProtocolPanasonic }

func (Panasonic) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolPanasonic)
	if len(symbols) < 49 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > 50 {
		// The Daikin, Mitsubishi, Fujitsu and Hitachi AC headers all sit
		// inside this header's tolerance; their frames are longer.
		return nil, ir.ErrTimingMismatch
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readWord(symbols[1:49], c.BitMark, c.OneSpace, c.ZeroSpace, false, true)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolPanasonic)
	code.Data = data
	code.Bits = 48
	code.Address = uint16(data >> 32)
	code.Command = uint16(data)
	return code, nil
}
