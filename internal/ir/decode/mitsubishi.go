package decode

import (
	"ir-hub-backend/internal/ir"
)

const mitsubishiBytes = 19

// Mitsubishi decodes the 152-bit Mitsubishi Electric AC frame: 19 bytes
// ending in a byte-sum checksum.
type Mitsubishi struct{}

func (Mitsubishi) Protocol() ir.Protocol { return ir.ProtocolMitsubishi }

func (Mitsubishi) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolMitsubishi)
	if len(symbols) < mitsubishiBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if len(symbols) > mitsubishiBytes*8+2 {
		// Hitachi opens with a near-identical header and 33 bytes or more.
		return nil, ir.ErrTimingMismatch
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readBytes(symbols[1:], c, mitsubishiBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolMitsubishi)
	code.Bits = uint16(mitsubishiBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = 0x23 // Mitsubishi manufacturer code
	code.Command = uint16(data[5])
	if ir.SumBytes(data[:mitsubishiBytes-1]) != data[mitsubishiBytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
