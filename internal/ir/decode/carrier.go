package decode

import (
	"ir-hub-backend/internal/ir"
)

const carrierBytes = 16

// Carrier decodes the 128-bit Carrier AC frame, also transmitted by
// Voltas, Blue Star and Lloyd units. The final nibble is a nibble-sum
// checksum over the first 15 bytes; variants disagree on it, so a failure
// is flagged rather than rejected.
type Carrier struct{}

func (Carrier) Protocol() ir.Protocol { return ir.ProtocolCarrier }

func (Carrier) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolCarrier)
	if len(symbols) < carrierBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	data, err := readBytes(symbols[1:], c, carrierBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolCarrier)
	code.Bits = uint16(carrierBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = uint16(data[0])
	code.Command = uint16(data[1])
	if data[carrierBytes-1]&0x0F != ir.SumNibbles(data[:carrierBytes-1]) {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
