package signal

import "fmt"

// Rule extracts one raw signal value from a record. Rules are caller-supplied
// capabilities; they should perform defensive lookups, but a rule that
// panics on malformed data is recovered by Extract and replaced with the
// signal's default.
type Rule func(Record) any

// Mapping is the signal configuration for one upstream source: an extraction
// rule per recognized signal. Immutable once constructed and safe to share
// across any number of concurrent workers.
type Mapping struct {
	rules map[Bucket]map[Name]Rule
}

// MappingOption applies a configuration option while building a Mapping.
type MappingOption func(*mappingBuilder)

type mappingBuilder struct {
	rules map[Bucket]map[Name]Rule
	err   error
}

func (b *mappingBuilder) add(bucket Bucket, name Name, r Rule) {
	if b.err != nil {
		return
	}
	names, ok := bucketNames[bucket]
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
		return
	}
	if r == nil {
		b.err = fmt.Errorf("%w: %s/%s", ErrNilRule, bucket, name)
		return
	}
	known := false
	for _, n := range names {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		if bucketOf(name) == "" {
			b.err = fmt.Errorf("%w: %q", ErrUnknownSignal, name)
		} else {
			b.err = fmt.Errorf("%w: %q is not a %s signal", ErrSignalBucketMismatch, name, bucket)
		}
		return
	}
	if b.rules[bucket] == nil {
		b.rules[bucket] = make(map[Name]Rule)
	}
	b.rules[bucket][name] = r
}

func bucketOf(name Name) Bucket {
	for b, names := range bucketNames {
		for _, n := range names {
			if n == name {
				return b
			}
		}
	}
	return ""
}

// WithRule registers an extraction rule for one signal.
func WithRule(bucket Bucket, name Name, r Rule) MappingOption {
	return func(b *mappingBuilder) {
		b.add(bucket, name, r)
	}
}

// WithField registers a rule that reads a single record field and relies on
// standard coercion. Convenience for the common declarative case.
func WithField(bucket Bucket, name Name, field string) MappingOption {
	return WithRule(bucket, name, func(r Record) any {
		return r[field]
	})
}

// WithCountFields registers a reuse-count rule that sums the given record
// fields, each coerced independently. How citations, downloads and derived
// works combine is the caller's policy; this helper implements plain
// summation for callers that want it.
func WithCountFields(fields ...string) MappingOption {
	fs := make([]string, len(fields))
	copy(fs, fields)
	return WithRule(Reuse, ReuseCount, func(r Record) any {
		total := 0
		for _, f := range fs {
			n, err := Count(r[f])
			if err != nil {
				continue
			}
			total += n
		}
		return total
	})
}

// NewMapping builds a validated Mapping. Unknown buckets or signal names,
// mis-bucketed signals and nil rules fail here, before any scoring begins.
// Signals without a registered rule fall back to their defaults at
// extraction time (false for booleans, 0 for the reuse count).
func NewMapping(opts ...MappingOption) (*Mapping, error) {
	b := &mappingBuilder{rules: make(map[Bucket]map[Name]Rule)}
	for _, opt := range opts {
		opt(b)
	}
	if b.err != nil {
		return nil, b.err
	}
	return &Mapping{rules: b.rules}, nil
}

// DefaultMapping implements the flat-key convention: every boolean signal
// reads the record field of the same conventional name (has_consent,
// is_open_access, ...) and the reuse count sums citation_count,
// download_count and derived_count.
func DefaultMapping() *Mapping {
	opts := make([]MappingOption, 0, len(defaultFields)+1)
	for _, bucket := range Buckets() {
		for _, name := range bucketNames[bucket] {
			field, ok := defaultFields[name]
			if !ok {
				continue
			}
			opts = append(opts, WithField(bucket, name, field))
		}
	}
	opts = append(opts, WithCountFields(reuseCountFields...))
	m, err := NewMapping(opts...)
	if err != nil {
		// The default mapping is built from the closed enumeration itself;
		// a failure here is a programming error.
		panic(err)
	}
	return m
}

// Rule returns the registered rule for a signal, or nil when the signal
// falls back to its default.
func (m *Mapping) Rule(bucket Bucket, name Name) Rule {
	if m == nil || m.rules == nil {
		return nil
	}
	return m.rules[bucket][name]
}
