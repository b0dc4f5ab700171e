package signal_test

import (
	"errors"
	"testing"

	"github.com/okian/share/signal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtract(t *testing.T) {
	Convey("Given signal extraction", t, func() {
		Convey("When the mapping has no rule for a signal", func() {
			m, err := signal.NewMapping(
				signal.WithField(signal.Stewardship, signal.Consent, "consented"),
			)
			So(err, ShouldBeNil)

			set, faults := signal.Extract(signal.Record{"consented": true}, m)

			Convey("Then unmapped booleans default to false and the count to zero", func() {
				So(faults, ShouldBeNil)
				So(set.Consent, ShouldBeTrue)
				So(set.Deidentification, ShouldBeFalse)
				So(set.OpenAccess, ShouldBeFalse)
				So(set.ReuseCount, ShouldEqual, 0)
			})
		})

		Convey("When a rule panics on malformed data", func() {
			m, err := signal.NewMapping(
				signal.WithRule(signal.Harmonization, signal.Methods, func(r signal.Record) any {
					return r["protocol"].(map[string]any)["documented"] // panics when protocol is absent
				}),
				signal.WithField(signal.Harmonization, signal.References, "refs"),
			)
			So(err, ShouldBeNil)

			set, faults := signal.Extract(signal.Record{"refs": "doi:10.1000/x"}, m)

			Convey("Then the signal takes its default and extraction continues", func() {
				So(set.Methods, ShouldBeFalse)
				So(set.References, ShouldBeTrue)
				So(faults, ShouldHaveLength, 1)
				So(faults[0].Bucket, ShouldEqual, signal.Harmonization)
				So(faults[0].Signal, ShouldEqual, signal.Methods)
				So(errors.Is(faults[0].Err, signal.ErrRulePanicked), ShouldBeTrue)
			})
		})

		Convey("When the reuse rule yields an uncoercible value", func() {
			m, err := signal.NewMapping(
				signal.WithField(signal.Reuse, signal.ReuseCount, "citations"),
			)
			So(err, ShouldBeNil)

			set, faults := signal.Extract(signal.Record{"citations": "many"}, m)

			Convey("Then the count defaults to zero with a recorded fault", func() {
				So(set.ReuseCount, ShouldEqual, 0)
				So(faults, ShouldHaveLength, 1)
				So(errors.Is(faults[0].Err, signal.ErrUncoercible), ShouldBeTrue)
			})
		})

		Convey("When the reuse rule yields a negative number", func() {
			m, err := signal.NewMapping(
				signal.WithRule(signal.Reuse, signal.ReuseCount, func(signal.Record) any {
					return -12
				}),
			)
			So(err, ShouldBeNil)

			set, faults := signal.Extract(signal.Record{}, m)

			Convey("Then the count clamps to zero without a fault", func() {
				So(faults, ShouldBeNil)
				So(set.ReuseCount, ShouldEqual, 0)
			})
		})

		Convey("When the mapping is nil", func() {
			set, faults := signal.Extract(signal.Record{
				"has_consent":    1,
				"citation_count": "7",
			}, nil)

			Convey("Then the default flat-key convention applies", func() {
				So(faults, ShouldBeNil)
				So(set.Consent, ShouldBeTrue)
				So(set.ReuseCount, ShouldEqual, 7)
			})
		})

		Convey("When extracting the same record twice", func() {
			m := signal.DefaultMapping()
			rec := signal.Record{
				"has_consent":    true,
				"has_methods":    true,
				"citation_count": 42,
			}

			first, _ := signal.Extract(rec, m)
			second, _ := signal.Extract(rec, m)

			Convey("Then the sets are identical", func() {
				So(first, ShouldResemble, second)
			})
		})
	})
}
