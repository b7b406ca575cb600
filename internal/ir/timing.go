package ir

// DefaultTolerancePercent is the default timing tolerance. Remote controls
// drift substantially between manufacturing batches; 25% is the value that
// accepts real-world units without cross-matching unrelated protocols.
const DefaultTolerancePercent = 25

// MatchPercent reports whether measured lies within ±tolerancePercent of
// expected. The tolerance is computed with integer arithmetic so decoder
// behavior stays deterministic across platforms. An expected duration of
// zero never matches; it guards against degenerate inputs.
func MatchPercent(measured, expected, tolerancePercent uint32) bool {
	if expected == 0 {
		return false
	}
	tolerance := expected * tolerancePercent / 100
	return measured >= expected-tolerance && measured <= expected+tolerance
}

// Match compares a duration against an expected value at the default
// tolerance.
func Match(measured, expected uint32) bool {
	return MatchPercent(measured, expected, DefaultTolerancePercent)
}

// MatchMark compares a symbol's mark duration against an expected value.
// A tolerance of 0 selects the default.
func MatchMark(sym Symbol, expected, tolerancePercent uint32) bool {
	if tolerancePercent == 0 {
		tolerancePercent = DefaultTolerancePercent
	}
	return MatchPercent(sym.Mark, expected, tolerancePercent)
}

// MatchSpace compares a symbol's space duration against an expected value.
// A tolerance of 0 selects the default.
func MatchSpace(sym Symbol, expected, tolerancePercent uint32) bool {
	if tolerancePercent == 0 {
		tolerancePercent = DefaultTolerancePercent
	}
	return MatchPercent(sym.Space, expected, tolerancePercent)
}
