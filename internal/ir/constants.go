package ir

// Encoding is the bit-encoding class of a protocol.
type Encoding uint8

const (
	// PulseDistance carries the bit value in the space duration; the mark
	// is constant.
	PulseDistance Encoding = iota
	// PulseWidth carries the bit value in the mark duration; the space is
	// constant.
	PulseWidth
	// BiPhase (Manchester) carries the bit value in the transition
	// direction within a fixed-length window.
	BiPhase
)

// Constants holds the timing and encoding metadata for one protocol.
//
// For pulse-distance protocols BitMark is the constant mark and
// OneSpace/ZeroSpace the two space durations. For pulse-width protocols
// BitMark is the "0" mark, OneSpace the "1" mark, and ZeroSpace the
// constant space. For bi-phase protocols BitMark is the half-bit unit.
type Constants struct {
	CarrierKHz   uint16
	HeaderMark   uint32 // 0 = no discrete header
	HeaderSpace  uint32
	BitMark      uint32
	OneSpace     uint32
	ZeroSpace    uint32
	Encoding     Encoding
	MSBFirst     bool
	StopBit      bool
	RepeatPeriod uint16 // nominal ms between repeat frames, 0 = none
	Bits         uint16 // fixed bit count, 0 = variable
}

// constantsTable is built once and read-only afterwards. Timings follow the
// published protocol references (sbprojects.net and the Arduino-IRremote
// measurements) to the microsecond.
var constantsTable = map[Protocol]Constants{
	ProtocolNEC: {
		CarrierKHz: 38, HeaderMark: 9000, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 110, Bits: 32,
	},
	ProtocolSamsung: {
		CarrierKHz: 38, HeaderMark: 4500, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 108, Bits: 32,
	},
	// Sony is pulse width on a 40kHz carrier, the only major protocol
	// without a stop bit. Bits vary: 12, 15 or 20.
	ProtocolSony: {
		CarrierKHz: 40, HeaderMark: 2400, HeaderSpace: 600,
		BitMark: 600, OneSpace: 1200, ZeroSpace: 600,
		Encoding: PulseWidth, RepeatPeriod: 45,
	},
	ProtocolJVC: {
		CarrierKHz: 38, HeaderMark: 8400, HeaderSpace: 4200,
		BitMark: 525, OneSpace: 1575, ZeroSpace: 525,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 60, Bits: 16,
	},
	ProtocolLG: {
		CarrierKHz: 38, HeaderMark: 9000, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 110, Bits: 28,
	},
	ProtocolRC5: {
		CarrierKHz: 36, BitMark: 889, OneSpace: 889, ZeroSpace: 889,
		Encoding: BiPhase, MSBFirst: true, RepeatPeriod: 114, Bits: 14,
	},
	ProtocolRC6: {
		CarrierKHz: 36, HeaderMark: 2666, HeaderSpace: 889,
		BitMark: 444, OneSpace: 444, ZeroSpace: 444,
		Encoding: BiPhase, MSBFirst: true, RepeatPeriod: 114, Bits: 21,
	},
	ProtocolDenon: {
		CarrierKHz: 38, HeaderMark: 275, HeaderSpace: 775,
		BitMark: 275, OneSpace: 1900, ZeroSpace: 775,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 45, Bits: 15,
	},
	ProtocolSharp: {
		CarrierKHz: 38, HeaderMark: 275, HeaderSpace: 775,
		BitMark: 275, OneSpace: 1900, ZeroSpace: 775,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 45, Bits: 15,
	},
	ProtocolPanasonic: {
		CarrierKHz: 37, HeaderMark: 3456, HeaderSpace: 1728,
		BitMark: 432, OneSpace: 1296, ZeroSpace: 432,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 130, Bits: 48,
	},
	ProtocolKaseikyo: {
		CarrierKHz: 37, HeaderMark: 3456, HeaderSpace: 1728,
		BitMark: 432, OneSpace: 1296, ZeroSpace: 432,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 130, Bits: 48,
	},
	ProtocolApple: {
		CarrierKHz: 38, HeaderMark: 9000, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 110, Bits: 32,
	},
	ProtocolOnkyo: {
		CarrierKHz: 38, HeaderMark: 9000, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 110, Bits: 32,
	},
	ProtocolSamsung48: {
		CarrierKHz: 38, HeaderMark: 4500, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 108, Bits: 48,
	},
	ProtocolSamsungLG: {
		CarrierKHz: 38, HeaderMark: 4500, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 108, Bits: 32,
	},
	ProtocolLG2: {
		CarrierKHz: 38, HeaderMark: 3200, HeaderSpace: 9900,
		BitMark: 560, OneSpace: 1690, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, RepeatPeriod: 110, Bits: 28,
	},

	// AC byte-frame protocols
	ProtocolMitsubishi: {
		CarrierKHz: 38, HeaderMark: 3400, HeaderSpace: 1750,
		BitMark: 450, OneSpace: 1300, ZeroSpace: 420,
		Encoding: PulseDistance, StopBit: true, Bits: 152,
	},
	ProtocolDaikin: {
		CarrierKHz: 38, HeaderMark: 3650, HeaderSpace: 1623,
		BitMark: 428, OneSpace: 1280, ZeroSpace: 428,
		Encoding: PulseDistance, StopBit: true, Bits: 216,
	},
	ProtocolFujitsu: {
		CarrierKHz: 38, HeaderMark: 3300, HeaderSpace: 1650,
		BitMark: 420, OneSpace: 1280, ZeroSpace: 420,
		Encoding: PulseDistance, StopBit: true,
	},
	ProtocolHaier: {
		CarrierKHz: 38, HeaderMark: 3000, HeaderSpace: 3000,
		BitMark: 520, OneSpace: 1650, ZeroSpace: 650,
		Encoding: PulseDistance, StopBit: true, Bits: 104,
	},
	ProtocolMidea: {
		CarrierKHz: 38, HeaderMark: 4500, HeaderSpace: 4500,
		BitMark: 560, OneSpace: 1680, ZeroSpace: 560,
		Encoding: PulseDistance, StopBit: true, Bits: 48,
	},
	ProtocolCarrier: {
		CarrierKHz: 38, HeaderMark: 8820, HeaderSpace: 4410,
		BitMark: 420, OneSpace: 1260, ZeroSpace: 420,
		Encoding: PulseDistance, StopBit: true, Bits: 128,
	},
	ProtocolHitachi: {
		CarrierKHz: 38, HeaderMark: 3300, HeaderSpace: 1700,
		BitMark: 370, OneSpace: 1260, ZeroSpace: 370,
		Encoding: PulseDistance, StopBit: true,
	},

	// Exotic protocols
	ProtocolWhynter: {
		CarrierKHz: 38, HeaderMark: 2850, HeaderSpace: 2850,
		BitMark: 750, OneSpace: 2150, ZeroSpace: 750,
		Encoding: PulseDistance, MSBFirst: true, StopBit: true,
		RepeatPeriod: 100, Bits: 32,
	},
	ProtocolLegoPF: {
		CarrierKHz: 38, HeaderMark: 158, HeaderSpace: 1026,
		BitMark: 158, OneSpace: 553, ZeroSpace: 263,
		Encoding: PulseDistance, MSBFirst: true, StopBit: true, Bits: 16,
	},
	ProtocolMagiQuest: {
		CarrierKHz: 38, BitMark: 288, OneSpace: 864, ZeroSpace: 576,
		Encoding: PulseDistance, MSBFirst: true, StopBit: true, Bits: 56,
	},
	ProtocolBoseWave: {
		CarrierKHz: 38, HeaderMark: 1014, HeaderSpace: 1468,
		BitMark: 428, OneSpace: 896, ZeroSpace: 1492,
		Encoding: PulseDistance, MSBFirst: true, StopBit: true,
		RepeatPeriod: 50, Bits: 16,
	},
	// Bang & Olufsen uses a 455kHz carrier; standard 38kHz receivers
	// cannot capture it, so it is encode-only here.
	ProtocolBangOlufsen: {
		CarrierKHz: 455, HeaderMark: 3125, HeaderSpace: 3125,
		BitMark: 625, OneSpace: 1250, ZeroSpace: 3125,
		Encoding: PulseWidth, MSBFirst: true, RepeatPeriod: 100, Bits: 16,
	},
	ProtocolFast: {
		CarrierKHz: 38, BitMark: 320, OneSpace: 640, ZeroSpace: 320,
		Encoding: PulseDistance, StopBit: true, Bits: 8,
	},
}

// LookupConstants returns the constants for a protocol. It reports false
// for Unknown, Raw and the generic universal-decoder results, which carry
// no fixed timing.
func LookupConstants(p Protocol) (Constants, bool) {
	c, ok := constantsTable[p]
	return c, ok
}
