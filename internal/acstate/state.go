// Package acstate models an air conditioner as a stateful device. AC
// remotes transmit the complete state on every key press, so the codec
// regenerates the whole frame from State for each mutation instead of
// sending per-button commands.
package acstate

import (
	"fmt"

	"ir-hub-backend/internal/ir"
)

const (
	TempMin     = 16
	TempMax     = 30
	TempDefault = 24
)

// Mode is the operating mode.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeCool
	ModeHeat
	ModeDry
	ModeFan
)

var modeNames = map[Mode]string{
	ModeAuto: "auto",
	ModeCool: "cool",
	ModeHeat: "heat",
	ModeDry:  "dry",
	ModeFan:  "fan",
}

// FanSpeed is the blower speed.
type FanSpeed uint8

const (
	FanAuto FanSpeed = iota
	FanLow
	FanMedium
	FanHigh
	FanQuiet
	FanTurbo
)

var fanNames = map[FanSpeed]string{
	FanAuto:   "auto",
	FanLow:    "low",
	FanMedium: "medium",
	FanHigh:   "high",
	FanQuiet:  "quiet",
	FanTurbo:  "turbo",
}

// Swing is the louver oscillation setting.
type Swing uint8

const (
	SwingOff Swing = iota
	SwingVertical
	SwingHorizontal
	SwingBoth
	SwingAuto
)

var swingNames = map[Swing]string{
	SwingOff:        "off",
	SwingVertical:   "vertical",
	SwingHorizontal: "horizontal",
	SwingBoth:       "both",
	SwingAuto:       "auto",
}

func (m Mode) String() string     { return enumName(modeNames[m]) }
func (f FanSpeed) String() string { return enumName(fanNames[f]) }
func (s Swing) String() string    { return enumName(swingNames[s]) }

func enumName(name string) string {
	if name == "" {
		return "unknown"
	}
	return name
}

// ParseMode resolves a mode name from the API surface.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown ac mode %q", name)
}

// ParseFanSpeed resolves a fan speed name.
func ParseFanSpeed(name string) (FanSpeed, error) {
	for f, n := range fanNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown ac fan speed %q", name)
}

// ParseSwing resolves a swing mode name.
func ParseSwing(name string) (Swing, error) {
	for s, n := range swingNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown ac swing mode %q", name)
}

// State is the single source of truth for one air conditioner.
type State struct {
	Power    bool     `json:"power"`
	Mode     Mode     `json:"mode"`
	TempC    uint8    `json:"temp_c"`
	FanSpeed FanSpeed `json:"fan_speed"`
	Swing    Swing    `json:"swing"`

	// Extended features; protocols that lack a home for one ignore it.
	Turbo  bool `json:"turbo"`
	Quiet  bool `json:"quiet"`
	Econo  bool `json:"econo"`
	Clean  bool `json:"clean"`
	Sleep  bool `json:"sleep"`
	Filter bool `json:"filter"`
	Health bool `json:"health"`

	Display bool `json:"display"`
	Beep    bool `json:"beep"`
	Light   bool `json:"light"`

	// Protocol selects the encoder; set during learning.
	Protocol ir.Protocol `json:"protocol"`
}

// Default returns the safe power-off baseline every unit understands.
func Default() State {
	return State{
		Mode:     ModeCool,
		TempC:    TempDefault,
		FanSpeed: FanAuto,
		Swing:    SwingOff,
		Display:  true,
		Beep:     true,
		Light:    true,
	}
}

// Validate reports the first out-of-range field.
func (s *State) Validate() error {
	if s.TempC < TempMin || s.TempC > TempMax {
		return fmt.Errorf("temperature %d out of range %d..%d", s.TempC, TempMin, TempMax)
	}
	if _, ok := modeNames[s.Mode]; !ok {
		return fmt.Errorf("invalid ac mode %d", s.Mode)
	}
	if _, ok := fanNames[s.FanSpeed]; !ok {
		return fmt.Errorf("invalid ac fan speed %d", s.FanSpeed)
	}
	if _, ok := swingNames[s.Swing]; !ok {
		return fmt.Errorf("invalid ac swing mode %d", s.Swing)
	}
	return nil
}

// featureBits packs the extended feature booleans into the byte shape
// shared by every layout that carries them.
func (s *State) featureBits() uint8 {
	var b uint8
	if s.Turbo {
		b |= 1 << 0
	}
	if s.Quiet {
		b |= 1 << 1
	}
	if s.Econo {
		b |= 1 << 2
	}
	if s.Clean {
		b |= 1 << 3
	}
	if s.Sleep {
		b |= 1 << 4
	}
	if s.Filter {
		b |= 1 << 5
	}
	if s.Health {
		b |= 1 << 6
	}
	return b
}

func (s *State) comfortBits() uint8 {
	var b uint8
	if s.Display {
		b |= 1 << 0
	}
	if s.Beep {
		b |= 1 << 1
	}
	if s.Light {
		b |= 1 << 2
	}
	return b
}

func (s *State) applyFeatureBits(b uint8) {
	s.Turbo = b&(1<<0) != 0
	s.Quiet = b&(1<<1) != 0
	s.Econo = b&(1<<2) != 0
	s.Clean = b&(1<<3) != 0
	s.Sleep = b&(1<<4) != 0
	s.Filter = b&(1<<5) != 0
	s.Health = b&(1<<6) != 0
}

func (s *State) applyComfortBits(b uint8) {
	s.Display = b&(1<<0) != 0
	s.Beep = b&(1<<1) != 0
	s.Light = b&(1<<2) != 0
}
