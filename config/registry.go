package config

import (
	"fmt"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/share/signal"
)

// Registry holds compiled signal mappings for known upstream repositories.
// Mappings are pre-baked configuration data, not code: they are authored as
// YAML artifacts and compiled into validated signal.Mapping values at load
// time, so a typo in a signal name fails fast instead of surfacing in the
// middle of a multi-million-record run.
//
// Registry file shape:
//
//	repositories:
//	  openneuro:
//	    stewardship:
//	      consent: affirmedConsent
//	      deidentification: affirmedDefaced
//	    access:
//	      open_access: public
//	    reuse:
//	      reuse_count: [citation_count, download_count]
//
// Boolean signals name the record field whose coerced truthiness becomes
// the signal. reuse_count takes either one field name or a list of field
// names to sum; the combination policy is owned by the artifact's author.
type Registry struct {
	mappings map[string]*signal.Mapping
}

// registryFile mirrors the YAML layout.
type registryFile struct {
	Repositories map[string]map[string]map[string]any `koanf:"repositories"`
}

// LoadRegistry reads and compiles a mapping registry from a YAML file.
// Any unrecognized bucket or signal name in any repository entry fails the
// whole load.
func LoadRegistry(path string) (*Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	var rf registryFile
	if err := k.UnmarshalWithConf("", &rf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistry, err)
	}

	reg := &Registry{mappings: make(map[string]*signal.Mapping, len(rf.Repositories))}
	for repo, buckets := range rf.Repositories {
		m, err := compileMapping(buckets)
		if err != nil {
			return nil, fmt.Errorf("%w: repository %q: %w", ErrInvalidRegistry, repo, err)
		}
		reg.mappings[repo] = m
	}
	return reg, nil
}

// compileMapping turns one repository's declarative entry into a validated
// signal mapping.
func compileMapping(buckets map[string]map[string]any) (*signal.Mapping, error) {
	var opts []signal.MappingOption
	for bucketName, signals := range buckets {
		bucket := signal.Bucket(bucketName)
		for sigName, raw := range signals {
			name := signal.Name(sigName)
			if name == signal.ReuseCount {
				if bucket != signal.Reuse {
					if signal.Names(bucket) == nil {
						return nil, fmt.Errorf("%w: %q", signal.ErrUnknownBucket, bucket)
					}
					return nil, fmt.Errorf("%w: %q is not a %s signal", signal.ErrSignalBucketMismatch, name, bucket)
				}
				fields, err := countFields(raw)
				if err != nil {
					return nil, err
				}
				opts = append(opts, signal.WithCountFields(fields...))
				continue
			}
			field, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("signal %s/%s: field name must be a string, got %T", bucket, name, raw)
			}
			opts = append(opts, signal.WithField(bucket, name, field))
		}
	}
	return signal.NewMapping(opts...)
}

// countFields accepts a single field name or a list of field names.
func countFields(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		fields := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("reuse_count: field names must be strings, got %T", item)
			}
			fields = append(fields, s)
		}
		return fields, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("reuse_count: expected field name or list, got %T", raw)
	}
}

// Mapping returns the compiled mapping for a repository name.
func (r *Registry) Mapping(repo string) (*signal.Mapping, bool) {
	m, ok := r.mappings[repo]
	return m, ok
}

// Repositories lists the registered repository names, sorted.
func (r *Registry) Repositories() []string {
	out := make([]string, 0, len(r.mappings))
	for name := range r.mappings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
