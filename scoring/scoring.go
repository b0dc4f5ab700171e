// Package scoring computes SHARE scores: five bounded bucket sub-scores
// composed into a 0-100 total for one dataset record.
package scoring

import (
	"math"

	"github.com/okian/share/signal"
)

// Scoring formula constants.
const (
	// BucketMax bounds every sub-score; TotalMax bounds their sum.
	BucketMax = 20.0
	TotalMax  = 100.0

	// booleanSignalPoints is contributed by each true boolean signal in the
	// Stewardship, Harmonization and Engagement buckets.
	booleanSignalPoints = 4.0

	// Access weights: open access carries double weight.
	openAccessPoints        = 8.0
	licensePoints           = 4.0
	permissiveLicensePoints = 4.0
	downloadURLPoints       = 4.0

	// reuseCeiling is the combined reuse count that saturates the Reuse
	// bucket at BucketMax.
	reuseCeiling = 10_000
)

// Result holds the five sub-scores and their composed total for one record.
// Total retains full precision; use DisplayTotal for the one-decimal
// presentation form. Value type; never mutated after composition.
type Result struct {
	S float64 // Stewardship (0-20)
	H float64 // Harmonization (0-20)
	A float64 // Access (0-20)
	R float64 // Reuse (0-20)
	E float64 // Engagement (0-20)

	// Total is S+H+A+R+E at full precision (0-100).
	Total float64

	// Clamped reports that a computed value fell outside its documented
	// bound and was clamped back. Cannot happen with a well-formed signal
	// set; kept as a defensive invariant.
	Clamped bool

	// Faults carries extraction faults recovered while resolving signals.
	Faults []signal.Fault
}

// DisplayTotal returns the total rounded to one decimal place, the
// presentation form. Internal computation and index thresholds use the
// full-precision Total.
func (r Result) DisplayTotal() float64 {
	return math.Round(r.Total*10) / 10
}

// NonReuse returns the deposit-time score S+H+A+E, excluding the
// outcome-based Reuse bucket. Useful for scoring datasets too new to have
// accumulated citations or downloads.
func (r Result) NonReuse() float64 {
	return r.S + r.H + r.A + r.E
}

// Bucket returns the sub-score for one bucket.
func (r Result) Bucket(b signal.Bucket) float64 {
	switch b {
	case signal.Stewardship:
		return r.S
	case signal.Harmonization:
		return r.H
	case signal.Access:
		return r.A
	case signal.Reuse:
		return r.R
	case signal.Engagement:
		return r.E
	default:
		return 0
	}
}

// Score extracts signals from the record using the mapping and composes the
// SHARE result. Deterministic and side-effect free: the same record and
// mapping always produce the identical result. A nil mapping uses the
// default flat-key convention.
func Score(r signal.Record, m *signal.Mapping) Result {
	set, faults := signal.Extract(r, m)
	res := FromSet(set)
	res.Faults = faults
	return res
}

// FromSet composes a result from an already extracted signal set.
func FromSet(set signal.Set) Result {
	res := Result{
		S: ScoreStewardship(set),
		H: ScoreHarmonization(set),
		A: ScoreAccess(set),
		R: ScoreReuse(set),
		E: ScoreEngagement(set),
	}

	res.S, res.Clamped = clamp(res.S, BucketMax, res.Clamped)
	res.H, res.Clamped = clamp(res.H, BucketMax, res.Clamped)
	res.A, res.Clamped = clamp(res.A, BucketMax, res.Clamped)
	res.R, res.Clamped = clamp(res.R, BucketMax, res.Clamped)
	res.E, res.Clamped = clamp(res.E, BucketMax, res.Clamped)

	res.Total = res.S + res.H + res.A + res.R + res.E
	res.Total, res.Clamped = clamp(res.Total, TotalMax, res.Clamped)
	return res
}

// clamp forces v into [0, max] and accumulates the clamped flag.
func clamp(v, max float64, flagged bool) (float64, bool) {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0, true
	case v > max:
		return max, true
	default:
		return v, flagged
	}
}
