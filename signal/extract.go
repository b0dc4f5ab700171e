package signal

import "fmt"

// Fault records one recovered extraction failure: the rule for a signal
// panicked or produced an uncoercible value, and the signal was resolved to
// its default instead. A fault never aborts scoring of the record.
type Fault struct {
	Bucket Bucket
	Signal Name
	Err    error
}

func (f Fault) Error() string {
	return fmt.Sprintf("extracting %s/%s: %v", f.Bucket, f.Signal, f.Err)
}

func (f Fault) Unwrap() error { return f.Err }

// Extract resolves every recognized signal against the record using the
// mapping's rules. Signals with no rule, and signals whose rule fails, take
// their defaults: false for booleans, 0 for the reuse count. A nil mapping
// behaves as the default mapping. Pure function of (record, mapping); the
// returned fault slice is nil when extraction was clean.
func Extract(r Record, m *Mapping) (Set, []Fault) {
	if m == nil {
		m = DefaultMapping()
	}

	var set Set
	var faults []Fault

	for _, bucket := range Buckets() {
		for _, name := range bucketNames[bucket] {
			rule := m.Rule(bucket, name)
			if rule == nil {
				continue // default: false / 0
			}
			raw, err := invoke(rule, r)
			if err != nil {
				faults = append(faults, Fault{Bucket: bucket, Signal: name, Err: err})
				continue
			}
			if name == ReuseCount {
				n, cerr := Count(raw)
				if cerr != nil {
					faults = append(faults, Fault{Bucket: bucket, Signal: name, Err: cerr})
					continue
				}
				set.ReuseCount = n
				continue
			}
			if slot := set.boolSlot(name); slot != nil {
				*slot = Truthy(raw)
			}
		}
	}
	return set, faults
}

// invoke runs a rule, converting a panic into an error so one malformed
// field never takes down the whole record.
func invoke(rule Rule, r Record) (raw any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrRulePanicked, p)
		}
	}()
	return rule(r), nil
}
