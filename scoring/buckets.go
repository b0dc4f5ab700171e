package scoring

import (
	"math"

	"github.com/okian/share/signal"
)

// The five bucket scorers are pure and total: no branch can fail for any
// signal set, and they may run in any order or concurrently.

// ScoreStewardship sums the five stewardship signals at 4 points each.
func ScoreStewardship(s signal.Set) float64 {
	return booleanSignalPoints * float64(countTrue(
		s.Consent,
		s.Deidentification,
		s.GeoCoverage,
		s.TemporalCoverage,
		s.Contributors,
	))
}

// ScoreHarmonization sums the five harmonization signals at 4 points each.
func ScoreHarmonization(s signal.Set) float64 {
	return booleanSignalPoints * float64(countTrue(
		s.Methods,
		s.ContributorPID,
		s.OrgPID,
		s.References,
		s.DescriptionQuality,
	))
}

// ScoreAccess sums the value-weighted access signals, capped at BucketMax.
// The weights already total 20; the cap is an invariant guard, not an
// active constraint.
func ScoreAccess(s signal.Set) float64 {
	total := 0.0
	if s.OpenAccess {
		total += openAccessPoints
	}
	if s.HasLicense {
		total += licensePoints
	}
	if s.PermissiveLicense {
		total += permissiveLicensePoints
	}
	if s.DownloadURL {
		total += downloadURLPoints
	}
	return math.Min(BucketMax, total)
}

// ScoreReuse log-scales the combined reuse count so that 10,000 reuse
// events saturate the bucket: min(20, 20*log10(n+1)/log10(10000)).
// Zero reuse scores zero; a negative count that escaped extraction's clamp
// is re-clamped here rather than feeding the log a value below 1.
func ScoreReuse(s signal.Set) float64 {
	n := s.ReuseCount
	if n <= 0 {
		return 0
	}
	r := BucketMax * math.Log10(float64(n)+1) / math.Log10(reuseCeiling)
	return math.Min(BucketMax, r)
}

// ScoreEngagement sums the five engagement signals at 4 points each.
func ScoreEngagement(s signal.Set) float64 {
	return booleanSignalPoints * float64(countTrue(
		s.RelatedPublications,
		s.RelatedDatasets,
		s.Funding,
		s.VersionTracking,
		s.Keywords,
	))
}

func countTrue(signals ...bool) int {
	n := 0
	for _, v := range signals {
		if v {
			n++
		}
	}
	return n
}
