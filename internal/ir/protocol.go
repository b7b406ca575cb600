package ir

import "fmt"

// Protocol identifies an IR protocol. The zero value is ProtocolUnknown.
type Protocol uint8

const (
	ProtocolUnknown Protocol = iota

	// Common consumer protocols
	ProtocolNEC
	ProtocolSamsung
	ProtocolSony
	ProtocolJVC
	ProtocolRC5
	ProtocolRC6
	ProtocolLG
	ProtocolDenon
	ProtocolSharp
	ProtocolPanasonic
	ProtocolKaseikyo

	// Extended consumer protocols
	ProtocolApple
	ProtocolOnkyo
	ProtocolSamsung48
	ProtocolSamsungLG
	ProtocolLG2

	// AC protocols
	ProtocolMitsubishi
	ProtocolDaikin
	ProtocolFujitsu
	ProtocolHaier
	ProtocolMidea
	ProtocolCarrier
	ProtocolHitachi

	// Exotic protocols
	ProtocolWhynter
	ProtocolLegoPF
	ProtocolMagiQuest
	ProtocolBoseWave
	ProtocolBangOlufsen
	ProtocolFast

	// Generic results from the universal decoder
	ProtocolPulseDistance
	ProtocolPulseWidth

	// Unrecognized but replayable capture
	ProtocolRaw
)

var protocolNames = map[Protocol]string{
	ProtocolUnknown:       "UNKNOWN",
	ProtocolNEC:           "NEC",
	ProtocolSamsung:       "SAMSUNG",
	ProtocolSony:          "SONY",
	ProtocolJVC:           "JVC",
	ProtocolRC5:           "RC5",
	ProtocolRC6:           "RC6",
	ProtocolLG:            "LG",
	ProtocolDenon:         "DENON",
	ProtocolSharp:         "SHARP",
	ProtocolPanasonic:     "PANASONIC",
	ProtocolKaseikyo:      "KASEIKYO",
	ProtocolApple:         "APPLE",
	ProtocolOnkyo:         "ONKYO",
	ProtocolSamsung48:     "SAMSUNG48",
	ProtocolSamsungLG:     "SAMSUNGLG",
	ProtocolLG2:           "LG2",
	ProtocolMitsubishi:    "MITSUBISHI",
	ProtocolDaikin:        "DAIKIN",
	ProtocolFujitsu:       "FUJITSU",
	ProtocolHaier:         "HAIER",
	ProtocolMidea:         "MIDEA",
	ProtocolCarrier:       "CARRIER",
	ProtocolHitachi:       "HITACHI",
	ProtocolWhynter:       "WHYNTER",
	ProtocolLegoPF:        "LEGO_PF",
	ProtocolMagiQuest:     "MAGIQUEST",
	ProtocolBoseWave:      "BOSEWAVE",
	ProtocolBangOlufsen:   "BANG_OLUFSEN",
	ProtocolFast:          "FAST",
	ProtocolPulseDistance: "PULSE_DISTANCE",
	ProtocolPulseWidth:    "PULSE_WIDTH",
	ProtocolRaw:           "RAW",
}

// String returns the canonical upper-case protocol name.
func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PROTOCOL(%d)", uint8(p))
}

// ParseProtocol resolves a canonical protocol name back to its identifier.
func ParseProtocol(name string) (Protocol, error) {
	for p, n := range protocolNames {
		if n == name {
			return p, nil
		}
	}
	return ProtocolUnknown, fmt.Errorf("unknown protocol %q", name)
}

// IsAC reports whether the protocol carries full appliance state frames.
func (p Protocol) IsAC() bool {
	switch p {
	case ProtocolMitsubishi, ProtocolDaikin, ProtocolFujitsu, ProtocolHaier,
		ProtocolMidea, ProtocolCarrier, ProtocolHitachi, ProtocolSamsung48,
		ProtocolPanasonic, ProtocolLG2:
		return true
	}
	return false
}
