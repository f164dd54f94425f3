// Package confidence implements the session-weighted confidence model
// for learned conventions. All functions are pure arithmetic over a
// convention's raw confidence and its distinct-session count, so the
// model is testable without a store fixture.
//
// Raw confidence moves on writes: corrections add 0.2, reinforcements
// add 0.1, contradictions reset to 0.3. Effective confidence is a
// read-time projection: a convention asserted by a single session is
// capped at 0.7 no matter how high raw confidence climbs, while
// cross-session corroboration earns a bonus of 0.05 per additional
// session up to 0.2.
package confidence

// Model constants.
const (
	Base                 = 0.5
	CorrectionDelta      = 0.2
	ReinforceDelta       = 0.1
	ContradictionReset   = 0.3
	SingleSessionCeiling = 0.7
	SessionBonusPer      = 0.05
	SessionBonusCap      = 0.2
	Cap                  = 1.0
)

// OverrideThreshold is the effective confidence at which a
// personal-scoped convention starts overriding canon results.
const OverrideThreshold = 0.8

// overrideEpsilon guards the threshold comparison against float
// rounding at exactly 0.8 (e.g. 0.7 + 2*0.05).
const overrideEpsilon = 1e-9

// Reinforce returns the raw confidence after a reinforcement.
func Reinforce(raw float64) float64 {
	return min(raw+ReinforceDelta, Cap)
}

// Correct returns the raw confidence after a repeated assertion of the
// same (category, pattern).
func Correct(raw float64) float64 {
	return min(raw+CorrectionDelta, Cap)
}

// Contradict returns the raw confidence after a contradiction. The
// reset is unconditional and does not touch the session count.
func Contradict(float64) float64 {
	return ContradictionReset
}

// Effective computes the read-time confidence projection for a
// convention with the given raw confidence and distinct-session count.
func Effective(raw float64, distinctSessions int) float64 {
	if distinctSessions <= 1 {
		return min(raw, SingleSessionCeiling)
	}
	bonus := min(float64(distinctSessions-1)*SessionBonusPer, SessionBonusCap)
	return min(raw+bonus, Cap)
}

// MeetsOverrideThreshold reports whether an effective confidence
// qualifies a personal convention to override canon.
func MeetsOverrideThreshold(effective float64) bool {
	return effective >= OverrideThreshold-overrideEpsilon
}
