package sindex_test

import (
	"testing"

	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
	"github.com/okian/share/sindex"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalc(t *testing.T) {
	Convey("Given the S-Index threshold search", t, func() {
		Convey("When the portfolio is the documented example", func() {
			Convey("Then the 4th largest score qualifies and the 5th does not", func() {
				So(sindex.Calc([]float64{10, 8, 8, 5, 1}), ShouldEqual, 4)
			})
		})

		Convey("When the portfolio is empty", func() {
			So(sindex.Calc(nil), ShouldEqual, 0)
			So(sindex.Calc([]float64{}), ShouldEqual, 0)
		})

		Convey("When a single dataset scores high", func() {
			So(sindex.Calc([]float64{100}), ShouldEqual, 1)
		})

		Convey("When no dataset qualifies", func() {
			So(sindex.Calc([]float64{0.5, 0.2}), ShouldEqual, 0)
		})

		Convey("When every score is at least the portfolio size", func() {
			Convey("Then the index is capped by the number of datasets", func() {
				So(sindex.Calc([]float64{90, 80, 70, 60, 50}), ShouldEqual, 5)
			})
		})

		Convey("When scores arrive unsorted", func() {
			Convey("Then the order does not matter", func() {
				So(sindex.Calc([]float64{1, 5, 10, 8, 8}), ShouldEqual, 4)
				So(sindex.Calc([]float64{8, 1, 8, 10, 5}), ShouldEqual, 4)
			})
		})

		Convey("When scores tie at the threshold", func() {
			Convey("Then tie-breaking does not affect the result", func() {
				So(sindex.Calc([]float64{3, 3, 3}), ShouldEqual, 3)
				So(sindex.Calc([]float64{2, 2, 2}), ShouldEqual, 2)
			})
		})

		Convey("When computing the index", func() {
			scores := []float64{1, 5, 10, 8, 8}
			_ = sindex.Calc(scores)

			Convey("Then the input slice is not reordered", func() {
				So(scores, ShouldResemble, []float64{1, 5, 10, 8, 8})
			})
		})
	})
}

func TestFromResults(t *testing.T) {
	Convey("Given portfolios of composed results", t, func() {
		mk := func(reuse int, stewardship bool) scoring.Result {
			set := signal.Set{ReuseCount: reuse}
			if stewardship {
				set.Consent = true
				set.Deidentification = true
				set.GeoCoverage = true
				set.TemporalCoverage = true
				set.Contributors = true
			}
			return scoring.FromSet(set)
		}

		results := []scoring.Result{
			mk(9_999, true), // S=20, R=20, total 40
			mk(100, true),   // S=20, R~10, total ~30
			mk(0, true),     // S=20, total 20
			mk(0, false),    // total 0
		}

		Convey("Then FromResults thresholds full-precision totals", func() {
			So(sindex.FromResults(results), ShouldEqual, 3)
		})

		Convey("Then FromBucket applies the same search to one bucket", func() {
			So(sindex.FromBucket(results, signal.Stewardship), ShouldEqual, 3)
			So(sindex.FromBucket(results, signal.Reuse), ShouldEqual, 2)
		})

		Convey("Then an empty portfolio yields zero", func() {
			So(sindex.FromResults(nil), ShouldEqual, 0)
		})
	})
}
