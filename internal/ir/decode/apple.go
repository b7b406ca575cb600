package decode

import (
	"ir-hub-backend/internal/ir"
)

// appleVendorID occupies the first 16 bits of every Apple remote frame in
// place of the NEC address/inverted-address pair.
const appleVendorID = 0x77E1

// Apple decodes the Apple remote variant of NEC. The envelope and bit
// timings are plain NEC; the frame is identified by the fixed vendor ID,
// with the command in byte 2 and the pairing ID in byte 3.
type Apple struct{}

func (Apple) Protocol() ir.Protocol { return ir.ProtocolApple }

func (Apple) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolApple)
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
	if uint16(data) != appleVendorID {
		return nil, ir.ErrTimingMismatch
	}

	code := newCode(ir.ProtocolApple)
	code.Data = data
	code.Bits = 32
	code.Address = uint16(data >> 24) // pairing ID
	code.Command = uint16(uint8(data >> 16))
	return code, nil
}
