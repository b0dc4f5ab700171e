package scoring_test

import (
	"testing"

	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
	. "github.com/smartystreets/goconvey/convey"
)

func allTrueSet(reuse int) signal.Set {
	return signal.Set{
		Consent: true, Deidentification: true, GeoCoverage: true,
		TemporalCoverage: true, Contributors: true,
		Methods: true, ContributorPID: true, OrgPID: true,
		References: true, DescriptionQuality: true,
		OpenAccess: true, HasLicense: true, PermissiveLicense: true,
		DownloadURL: true,
		ReuseCount:  reuse,
		RelatedPublications: true, RelatedDatasets: true, Funding: true,
		VersionTracking: true, Keywords: true,
	}
}

func TestBucketScorers(t *testing.T) {
	Convey("Given the five bucket scorers", t, func() {
		Convey("When every signal is false", func() {
			var set signal.Set
			res := scoring.FromSet(set)

			Convey("Then every sub-score and the total are zero", func() {
				So(res.S, ShouldEqual, 0)
				So(res.H, ShouldEqual, 0)
				So(res.A, ShouldEqual, 0)
				So(res.R, ShouldEqual, 0)
				So(res.E, ShouldEqual, 0)
				So(res.Total, ShouldEqual, 0)
				So(res.Clamped, ShouldBeFalse)
			})
		})

		Convey("When every signal is true with saturated reuse", func() {
			res := scoring.FromSet(allTrueSet(9_999))

			Convey("Then the total is exactly 100", func() {
				So(res.S, ShouldEqual, 20)
				So(res.H, ShouldEqual, 20)
				So(res.A, ShouldEqual, 20)
				So(res.R, ShouldAlmostEqual, 20, 1e-9)
				So(res.E, ShouldEqual, 20)
				So(res.Total, ShouldAlmostEqual, 100, 1e-9)
			})
		})

		Convey("When scoring boolean buckets", func() {
			set := signal.Set{Consent: true, TemporalCoverage: true, Contributors: true}

			Convey("Then each true signal contributes exactly four points", func() {
				So(scoring.ScoreStewardship(set), ShouldEqual, 12)
				So(scoring.ScoreHarmonization(set), ShouldEqual, 0)
				So(scoring.ScoreEngagement(set), ShouldEqual, 0)
			})
		})

		Convey("When scoring access", func() {
			Convey("Then the sum is value-weighted regardless of which signals are set", func() {
				cases := []struct {
					open, lic, perm, dl bool
					want                float64
				}{
					{false, false, false, false, 0},
					{true, false, false, false, 8},
					{false, true, false, false, 4},
					{false, false, true, false, 4},
					{false, false, false, true, 4},
					{true, true, false, false, 12},
					{true, false, true, true, 16},
					{false, true, true, true, 12},
					{true, true, true, true, 20},
				}
				for _, c := range cases {
					set := signal.Set{
						OpenAccess: c.open, HasLicense: c.lic,
						PermissiveLicense: c.perm, DownloadURL: c.dl,
					}
					So(scoring.ScoreAccess(set), ShouldEqual, c.want)
				}
			})
		})
	})
}

func TestScoreReuse(t *testing.T) {
	Convey("Given the log-scaled reuse scorer", t, func() {
		at := func(n int) float64 {
			return scoring.ScoreReuse(signal.Set{ReuseCount: n})
		}

		Convey("Then zero reuse scores zero", func() {
			So(at(0), ShouldEqual, 0)
		})

		Convey("Then a negative count that escaped clamping scores zero", func() {
			So(at(-40), ShouldEqual, 0)
		})

		Convey("Then 9999 reuse events saturate the bucket", func() {
			So(at(9_999), ShouldAlmostEqual, 20, 1e-9)
		})

		Convey("Then the score stays saturated beyond the ceiling", func() {
			So(at(10_000), ShouldEqual, 20)
			So(at(76_000_000), ShouldEqual, 20)
		})

		Convey("Then the score is strictly increasing below the ceiling", func() {
			prev := at(0)
			for _, n := range []int{1, 2, 5, 10, 42, 100, 1_000, 5_000, 9_998} {
				cur := at(n)
				So(cur, ShouldBeGreaterThan, prev)
				prev = cur
			}
		})

		Convey("Then every value stays within the bucket bound", func() {
			for _, n := range []int{0, 1, 9, 99, 999, 9_999, 1 << 30} {
				So(at(n), ShouldBeBetweenOrEqual, 0, 20)
			}
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given the documented example record", t, func() {
		rec := signal.Record{
			"has_consent":           true,
			"has_deidentification":  true,
			"has_temporal_coverage": true,
			"has_contributors":      true,

			"has_methods":          true,
			"has_contributor_pids": true,
			"has_references":       true,
			"has_description":      true,

			"is_open_access":        true,
			"has_license":           true,
			"is_permissive_license": true,
			"has_download_url":      true,

			"citation_count": 42,

			"has_related_publications": true,
			"has_funding":              true,
			"has_version":              true,
			"has_keywords":             true,
		}

		Convey("When scored with the default mapping", func() {
			res := scoring.Score(rec, nil)

			Convey("Then the sub-scores match the documentation", func() {
				So(res.S, ShouldEqual, 16) // no geographic coverage
				So(res.H, ShouldEqual, 16) // no org PID
				So(res.A, ShouldEqual, 20)
				So(res.R, ShouldAlmostEqual, 8.167, 0.001)
				So(res.E, ShouldEqual, 16) // no related datasets
				So(res.Total, ShouldAlmostEqual, 76.167, 0.001)
				So(res.DisplayTotal(), ShouldAlmostEqual, 76.2, 1e-9)
			})

			Convey("And the deposit-time score excludes reuse", func() {
				So(res.NonReuse(), ShouldEqual, 68)
			})
		})

		Convey("When the same record is scored twice", func() {
			first := scoring.Score(rec, nil)
			second := scoring.Score(rec, nil)

			Convey("Then the results are bit-identical", func() {
				So(first, ShouldResemble, second)
			})
		})
	})
}

func TestResultBounds(t *testing.T) {
	Convey("Given arbitrary signal sets", t, func() {
		sets := []signal.Set{
			{},
			{Consent: true, ReuseCount: 3},
			{OpenAccess: true, PermissiveLicense: true, ReuseCount: 500},
			allTrueSet(0),
			allTrueSet(42),
			allTrueSet(1 << 40),
			{ReuseCount: -1},
		}

		Convey("Then every sub-score is in [0,20] and the total in [0,100]", func() {
			for _, set := range sets {
				res := scoring.FromSet(set)
				So(res.S, ShouldBeBetweenOrEqual, 0, 20)
				So(res.H, ShouldBeBetweenOrEqual, 0, 20)
				So(res.A, ShouldBeBetweenOrEqual, 0, 20)
				So(res.R, ShouldBeBetweenOrEqual, 0, 20)
				So(res.E, ShouldBeBetweenOrEqual, 0, 20)
				So(res.Total, ShouldBeBetweenOrEqual, 0, 100)
			}
		})
	})
}

func TestResultHelpers(t *testing.T) {
	Convey("Given a composed result", t, func() {
		res := scoring.FromSet(allTrueSet(42))

		Convey("Then Bucket returns each sub-score", func() {
			So(res.Bucket(signal.Stewardship), ShouldEqual, res.S)
			So(res.Bucket(signal.Harmonization), ShouldEqual, res.H)
			So(res.Bucket(signal.Access), ShouldEqual, res.A)
			So(res.Bucket(signal.Reuse), ShouldEqual, res.R)
			So(res.Bucket(signal.Engagement), ShouldEqual, res.E)
			So(res.Bucket("nonsense"), ShouldEqual, 0)
		})

		Convey("Then DisplayTotal rounds to one decimal while Total keeps precision", func() {
			So(res.DisplayTotal(), ShouldNotEqual, res.Total)
			So(res.DisplayTotal(), ShouldAlmostEqual, res.Total, 0.05)
		})
	})
}
