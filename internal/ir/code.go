package ir

// Flags annotate a decoded code with protocol-level metadata.
type Flags uint8

const (
	// FlagRepeat marks a code resolved from an abbreviated repeat frame.
	FlagRepeat Flags = 1 << 0
	// FlagAutoRepeat marks a full frame that arrived within the protocol's
	// nominal repeat period of the previous one.
	FlagAutoRepeat Flags = 1 << 1
	// FlagParityFailed marks a code whose checksum or complement check
	// failed. Decoding still succeeds; partial fields remain usable.
	FlagParityFailed Flags = 1 << 2
	// FlagToggle carries the RC5/RC6 toggle bit.
	FlagToggle Flags = 1 << 3
	// FlagExtended marks an NEC frame reinterpreted with a 16-bit address.
	FlagExtended Flags = 1 << 5
	// FlagMSBFirst records that the protocol transmits MSB first.
	FlagMSBFirst Flags = 1 << 7
)

// ValidationStatus records how many matching frames confirmed a code
// during multi-frame verification.
type ValidationStatus uint8

const (
	ValidationNone ValidationStatus = iota
	ValidationSingleFrame
	ValidationTwoFrames
	ValidationThreeFrames
)

// Code is the result of one decode call. Bits always reflects the number of
// logical bits actually decoded, never a constant assumed for
// variable-length protocols. Raw is populated only for ProtocolRaw; Bytes
// only for byte-oriented AC frames.
type Code struct {
	Protocol   Protocol         `json:"protocol"`
	Data       uint64           `json:"data"`
	Bits       uint16           `json:"bits"`
	Address    uint16           `json:"address"`
	Command    uint16           `json:"command"`
	Flags      Flags            `json:"flags"`
	CarrierKHz uint16           `json:"carrier_khz"`
	DutyCycle  uint8            `json:"duty_cycle"`
	Validation ValidationStatus `json:"validation"`
	Bytes      []byte           `json:"bytes,omitempty"`
	Raw        []Symbol         `json:"raw,omitempty"`
}

// Clone returns a deep copy of the code. Repeat resolution hands out copies
// so callers can annotate flags without touching pipeline state.
func (c *Code) Clone() *Code {
	dup := *c
	if c.Bytes != nil {
		dup.Bytes = append([]byte(nil), c.Bytes...)
	}
	if c.Raw != nil {
		dup.Raw = append([]Symbol(nil), c.Raw...)
	}
	return &dup
}
