package acstate

import (
	"fmt"

	"ir-hub-backend/internal/ir"
	"ir-hub-backend/internal/ir/decode"
)

// Byte layouts per protocol. Each field of State owns a fixed byte (or
// bit range within one), so re-encoding after a single-field mutation
// changes only that location plus the checksum. The layouts follow the
// field placement conventions of the respective remote families; bytes
// not listed stay at the fixed prologue values below.

var (
	daikinPrologue     = []byte{0x11, 0xDA, 0x27, 0x00}
	hitachiPrologue    = []byte{0x01, 0x10, 0x00, 0x40}
	mitsubishiPrologue = []byte{0x23, 0xCB, 0x26, 0x01, 0x00}
	fujitsuPrologue    = []byte{0x14, 0x63, 0x00, 0x10, 0x10, 0xFE}
)

const (
	carrierSignature   = 0xC3
	haierSignature     = 0xA0
	mideaSignature     = 0xA2
	samsung48Signature = 0xB2
	panasonicSignature = 0x40
	lg2Signature       = 0x88
)

// Encode regenerates the complete frame for the state's protocol. The
// returned code is ready for the frame encoder; protocols outside the AC
// family report ir.ErrNotSupported.
func Encode(s *State) (*ir.Code, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.Protocol.IsAC() {
		return nil, fmt.Errorf("ac encode %s: %w", s.Protocol, ir.ErrNotSupported)
	}

	if s.Protocol == ir.ProtocolLG2 {
		return encodeLG2(s), nil
	}

	var frame []byte
	switch s.Protocol {
	case ir.ProtocolCarrier:
		frame = encodeCarrier(s)
	case ir.ProtocolDaikin:
		frame = encodeDaikin(s)
	case ir.ProtocolHitachi:
		frame = encodeHitachi(s)
	case ir.ProtocolMitsubishi:
		frame = encodeMitsubishi(s)
	case ir.ProtocolFujitsu:
		frame = encodeFujitsu(s)
	case ir.ProtocolHaier:
		frame = encodeHaier(s)
	case ir.ProtocolMidea:
		frame = encodeMidea(s)
	case ir.ProtocolSamsung48:
		frame = encodeSamsung48(s)
	case ir.ProtocolPanasonic:
		frame = encodePanasonic(s)
	default:
		return nil, fmt.Errorf("ac encode %s: %w", s.Protocol, ir.ErrNotImplemented)
	}

	code := &ir.Code{
		Protocol:  s.Protocol,
		Bits:      uint16(len(frame) * 8),
		Bytes:     frame,
		DutyCycle: 33,
	}
	if c, ok := ir.LookupConstants(s.Protocol); ok {
		code.CarrierKHz = c.CarrierKHz
	}
	// Mirror what the decoder would extract from this frame.
	switch s.Protocol {
	case ir.ProtocolDaikin:
		code.Address = 0x11
		code.Command = uint16(frame[8+5])
		for i := 0; i < 4; i++ {
			code.Data |= uint64(frame[8+i]) << (8 * i)
		}
	case ir.ProtocolSamsung48:
		for i := 0; i < 6; i++ {
			code.Data |= uint64(frame[i]) << (8 * i)
		}
		code.Address = uint16(frame[0]) | uint16(frame[1])<<8
		code.Command = uint16(frame[2]) | uint16(frame[4])<<8
	case ir.ProtocolPanasonic:
		for i := 0; i < 6; i++ {
			code.Data |= uint64(frame[i]) << (8 * i)
		}
		code.Address = uint16(code.Data >> 32)
		code.Command = uint16(code.Data)
	default:
		code.Address = uint16(frame[0])
		code.Command = uint16(frame[commandByte[s.Protocol]])
		for i := 0; i < 4; i++ {
			code.Data |= uint64(frame[i]) << (8 * i)
		}
	}
	return code, nil
}

// commandByte is the frame offset each decoder reports as Command.
var commandByte = map[ir.Protocol]int{
	ir.ProtocolCarrier:    1,
	ir.ProtocolHitachi:    11,
	ir.ProtocolMitsubishi: 5,
	ir.ProtocolFujitsu:    5,
	ir.ProtocolHaier:      9,
	ir.ProtocolMidea:      1,
}

// Decode extracts state from a captured AC frame. It is deliberately
// best-effort: word protocols and frames that fail their signature check
// fall back to a powered-on default so the learned protocol identity
// remains usable for encoding.
func Decode(code *ir.Code) (State, error) {
	if code == nil || !code.Protocol.IsAC() {
		return State{}, fmt.Errorf("ac decode: %w", ir.ErrNotSupported)
	}

	s := Default()
	s.Protocol = code.Protocol
	s.Power = true

	switch code.Protocol {
	case ir.ProtocolCarrier:
		decodeCarrier(&s, code.Bytes)
	case ir.ProtocolDaikin:
		decodeDaikin(&s, code.Bytes)
	case ir.ProtocolHitachi:
		decodeHitachi(&s, code.Bytes)
	case ir.ProtocolMitsubishi:
		decodeMitsubishi(&s, code.Bytes)
	case ir.ProtocolFujitsu:
		decodeFujitsu(&s, code.Bytes)
	case ir.ProtocolHaier:
		decodeHaier(&s, code.Bytes)
	default:
		// Midea, Samsung48, Panasonic and LG2 keep the defaults.
	}

	if err := s.Validate(); err != nil {
		s.TempC = TempDefault
	}
	return s, nil
}

func clampTemp(t uint8) uint8 {
	if t < TempMin {
		return TempMin
	}
	if t > TempMax {
		return TempMax
	}
	return t
}

func encodeCarrier(s *State) []byte {
	f := make([]byte, 16)
	f[0] = carrierSignature
	f[5] = boolBit(s.Power, 0) | uint8(s.Mode)<<1 | uint8(s.Swing)<<4
	f[6] = (s.TempC - TempMin) | uint8(s.FanSpeed)<<4
	f[7] = s.featureBits()
	f[8] = s.comfortBits()
	f[15] = ir.SumNibbles(f[:15])
	return f
}

func decodeCarrier(s *State, f []byte) {
	if len(f) != 16 || f[0] != carrierSignature {
		return
	}
	s.Power = f[5]&1 != 0
	s.Mode = Mode(f[5] >> 1 & 0x07)
	s.Swing = Swing(f[5] >> 4 & 0x07)
	s.TempC = clampTemp(f[6]&0x0F + TempMin)
	s.FanSpeed = FanSpeed(f[6] >> 4)
	s.applyFeatureBits(f[7])
	s.applyComfortBits(f[8])
}

func encodeDaikin(s *State) []byte {
	frame1 := make([]byte, 8)
	copy(frame1, daikinPrologue)
	frame1[4] = 0xC5
	frame1[7] = ir.SumBytes(frame1[:7])

	frame2 := make([]byte, 19)
	copy(frame2, daikinPrologue)
	frame2[5] = boolBit(s.Power, 0) | uint8(s.Mode)<<4
	frame2[6] = s.TempC << 1
	frame2[8] = uint8(s.Swing) | uint8(s.FanSpeed)<<4
	frame2[13] = s.featureBits()
	frame2[14] = s.comfortBits()
	frame2[18] = ir.SumBytes(frame2[:18])

	return append(frame1, frame2...)
}

func decodeDaikin(s *State, f []byte) {
	if len(f) != 27 {
		return
	}
	f2 := f[8:]
	s.Power = f2[5]&1 != 0
	s.Mode = Mode(f2[5] >> 4 & 0x07)
	s.TempC = clampTemp(f2[6] >> 1)
	s.Swing = Swing(f2[8] & 0x0F)
	s.FanSpeed = FanSpeed(f2[8] >> 4)
	s.applyFeatureBits(f2[13])
	s.applyComfortBits(f2[14])
}

func encodeHitachi(s *State) []byte {
	f := make([]byte, 33)
	copy(f, hitachiPrologue)
	f[10] = boolBit(s.Power, 0)
	f[11] = uint8(s.Mode)<<4 | (s.TempC - TempMin)
	f[12] = uint8(s.FanSpeed)
	f[13] = uint8(s.Swing)
	f[14] = s.featureBits()
	f[15] = s.comfortBits()
	f[32] = ir.SumBytes(f[:32])
	return f
}

func decodeHitachi(s *State, f []byte) {
	if len(f) < 33 || f[0] != hitachiPrologue[0] {
		return
	}
	s.Power = f[10]&1 != 0
	s.Mode = Mode(f[11] >> 4 & 0x07)
	s.TempC = clampTemp(f[11]&0x0F + TempMin)
	s.FanSpeed = FanSpeed(f[12])
	s.Swing = Swing(f[13])
	s.applyFeatureBits(f[14])
	s.applyComfortBits(f[15])
}

func encodeMitsubishi(s *State) []byte {
	f := make([]byte, 19)
	copy(f, mitsubishiPrologue)
	f[5] = boolBit(s.Power, 5) | uint8(s.Mode)
	f[6] = s.TempC - TempMin
	f[7] = uint8(s.Swing)
	f[8] = uint8(s.FanSpeed)
	f[9] = s.featureBits()
	f[10] = s.comfortBits()
	f[18] = ir.SumBytes(f[:18])
	return f
}

func decodeMitsubishi(s *State, f []byte) {
	if len(f) != 19 || f[0] != mitsubishiPrologue[0] {
		return
	}
	s.Power = f[5]&0x20 != 0
	s.Mode = Mode(f[5] & 0x07)
	s.TempC = clampTemp(f[6] + TempMin)
	s.Swing = Swing(f[7])
	s.FanSpeed = FanSpeed(f[8])
	s.applyFeatureBits(f[9])
	s.applyComfortBits(f[10])
}

func encodeFujitsu(s *State) []byte {
	f := make([]byte, 16)
	copy(f, fujitsuPrologue)
	f[8] = (s.TempC-TempMin)<<4 | boolBit(s.Power, 0)
	f[9] = uint8(s.Mode)
	f[10] = uint8(s.FanSpeed) | uint8(s.Swing)<<4
	f[11] = s.featureBits()
	f[12] = s.comfortBits()
	f[15] = ir.SumBytesComplement(f[:15])
	return f
}

func decodeFujitsu(s *State, f []byte) {
	if len(f) != 16 || f[0] != fujitsuPrologue[0] {
		return
	}
	s.Power = f[8]&1 != 0
	s.TempC = clampTemp(f[8]>>4 + TempMin)
	s.Mode = Mode(f[9] & 0x07)
	s.FanSpeed = FanSpeed(f[10] & 0x0F)
	s.Swing = Swing(f[10] >> 4)
	s.applyFeatureBits(f[11])
	s.applyComfortBits(f[12])
}

func encodeHaier(s *State) []byte {
	f := make([]byte, 13)
	f[0] = haierSignature
	f[1] = (s.TempC - TempMin) << 4
	f[2] = uint8(s.Swing)
	f[3] = uint8(s.FanSpeed)
	f[4] = s.featureBits()
	f[5] = s.comfortBits()
	f[9] = boolBit(s.Power, 7) | uint8(s.Mode)<<4
	f[12] = ir.XORBytes(f[:12])
	return f
}

func decodeHaier(s *State, f []byte) {
	if len(f) != 13 || f[0] != haierSignature {
		return
	}
	s.TempC = clampTemp(f[1]>>4 + TempMin)
	s.Swing = Swing(f[2])
	s.FanSpeed = FanSpeed(f[3])
	s.applyFeatureBits(f[4])
	s.applyComfortBits(f[5])
	s.Power = f[9]&0x80 != 0
	s.Mode = Mode(f[9] >> 4 & 0x07)
}

func encodeMidea(s *State) []byte {
	f := make([]byte, 6)
	f[0] = mideaSignature
	f[1] = boolBit(s.Power, 7) | uint8(s.FanSpeed)
	f[2] = uint8(s.Mode)<<4 | (s.TempC - TempMin)
	f[3] = uint8(s.Swing)
	f[4] = s.featureBits() | s.comfortBits()<<5
	f[5] = ir.XORBytes(f[:5])
	return f
}

// encodeSamsung48 follows the Samsung 48-bit frame structure: a 16-bit
// address, then two command bytes each trailed by its complement. The
// complements are what keeps these frames apart from Midea on capture.
func encodeSamsung48(s *State) []byte {
	f := make([]byte, 6)
	f[0] = samsung48Signature
	f[1] = boolBit(s.Power, 7) | uint8(s.Mode)<<4 | (s.TempC - TempMin)
	f[2] = uint8(s.FanSpeed) | uint8(s.Swing)<<4
	f[3] = ^f[2]
	f[4] = s.featureBits() | s.comfortBits()<<5
	f[5] = ^f[4]
	return f
}

func encodePanasonic(s *State) []byte {
	f := make([]byte, 6)
	f[0] = panasonicSignature
	f[1] = boolBit(s.Power, 0) | uint8(s.Mode)<<4
	f[2] = (s.TempC - TempMin) << 1
	f[3] = uint8(s.FanSpeed)<<4 | uint8(s.Swing)
	f[4] = s.featureBits() | s.comfortBits()<<5
	f[5] = ir.XORBytes(f[:5])
	return f
}

// encodeLG2 builds the 28-bit LG AC word: the 0x88 signature byte, a
// 15-bit command packing power/mode/temperature/fan/swing, and the nibble
// checksum the TV variant also uses.
func encodeLG2(s *State) *ir.Code {
	command := uint16(boolBit(s.Power, 0)) |
		uint16(s.Mode)<<1 |
		uint16(s.TempC-TempMin)<<4 |
		uint16(s.FanSpeed)<<9 |
		uint16(s.Swing)<<12

	code := &ir.Code{
		Protocol:  ir.ProtocolLG2,
		Data:      decode.PackLG(lg2Signature, command),
		Bits:      28,
		Address:   lg2Signature,
		Command:   command,
		DutyCycle: 33,
	}
	if c, ok := ir.LookupConstants(ir.ProtocolLG2); ok {
		code.CarrierKHz = c.CarrierKHz
	}
	return code
}

func boolBit(v bool, shift uint8) uint8 {
	if v {
		return 1 << shift
	}
	return 0
}
