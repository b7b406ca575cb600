package decode

import (
	"ir-hub-backend/internal/ir"
)

const (
	hitachiMinBytes = 33
	hitachiMaxBytes = 43
)

// Hitachi decodes Hitachi AC frames. The common variant is 33 bytes and
// extended remotes go up to 43; the final byte is a byte-sum checksum.
type Hitachi struct{}

func (Hitachi) Protocol() ir.Protocol { return ir.ProtocolHitachi }

func (Hitachi) Decode(symbols []ir.Symbol) (*ir.Code, error) {
	c, _ := ir.LookupConstants(ir.ProtocolHitachi)
	if len(symbols) < hitachiMinBytes*8+1 {
		return nil, ir.ErrTooFewSymbols
	}
	if !matchHeader(symbols[0], c) {
		return nil, ir.ErrTimingMismatch
	}

	numBytes := (len(symbols) - 1) / 8
	if numBytes > hitachiMaxBytes {
		numBytes = hitachiMaxBytes
	}
	data, err := readBytes(symbols[1:], c, numBytes)
	if err != nil {
		return nil, err
	}

	code := newCode(ir.ProtocolHitachi)
	code.Bits = uint16(numBytes * 8)
	code.Bytes = data
	code.Data = packLSB(data)
	code.Address = uint16(data[0])
	code.Command = uint16(data[11])
	if ir.SumBytes(data[:numBytes-1]) != data[numBytes-1] {
		code.Flags |= ir.FlagParityFailed
	}
	return code, nil
}
