// Package signal defines the closed set of SHARE signals and the extraction
// of a normalized signal set from an arbitrary metadata record.
//
// Conventions:
// - Keep value types immutable; construct, never mutate.
// - Validate configuration eagerly so faults never surface mid-batch.
// - External errors must be wrapped via this package's sentinel kinds.
package signal

// Record is one raw dataset metadata record as supplied by a repository
// adapter. There is no fixed schema; keys and value types vary per upstream
// source.
type Record map[string]any

// Bucket identifies one of the five SHARE scoring dimensions.
type Bucket string

// The five buckets.
const (
	Stewardship   Bucket = "stewardship"
	Harmonization Bucket = "harmonization"
	Access        Bucket = "access"
	Reuse         Bucket = "reuse"
	Engagement    Bucket = "engagement"
)

// Buckets returns all buckets in canonical S-H-A-R-E order.
func Buckets() []Bucket {
	return []Bucket{Stewardship, Harmonization, Access, Reuse, Engagement}
}

// Name identifies one recognized signal within a bucket.
type Name string

// Stewardship signals.
const (
	Consent          Name = "consent"
	Deidentification Name = "deidentification"
	GeoCoverage      Name = "geo_coverage"
	TemporalCoverage Name = "temporal_coverage"
	Contributors     Name = "contributors"
)

// Harmonization signals.
const (
	Methods            Name = "methods"
	ContributorPID     Name = "contributor_pid"
	OrgPID             Name = "org_pid"
	References         Name = "references"
	DescriptionQuality Name = "description_quality"
)

// Access signals.
const (
	OpenAccess        Name = "open_access"
	HasLicense        Name = "has_license"
	PermissiveLicense Name = "is_permissive_license"
	DownloadURL       Name = "has_download_url"
)

// Reuse signal. The count combines citations, downloads and derived works;
// the combination policy belongs to the caller's extraction rule.
const (
	ReuseCount Name = "reuse_count"
)

// Engagement signals.
const (
	RelatedPublications Name = "related_publications"
	RelatedDatasets     Name = "related_datasets"
	Funding             Name = "funding"
	VersionTracking     Name = "version_tracking"
	Keywords            Name = "keywords"
)

// bucketNames is the closed enumeration: every recognized signal and the
// bucket it belongs to. Unknown pairs are rejected at configuration time.
var bucketNames = map[Bucket][]Name{
	Stewardship:   {Consent, Deidentification, GeoCoverage, TemporalCoverage, Contributors},
	Harmonization: {Methods, ContributorPID, OrgPID, References, DescriptionQuality},
	Access:        {OpenAccess, HasLicense, PermissiveLicense, DownloadURL},
	Reuse:         {ReuseCount},
	Engagement:    {RelatedPublications, RelatedDatasets, Funding, VersionTracking, Keywords},
}

// Names returns the recognized signal names for a bucket, in scoring order.
// The slice is a copy; callers may not mutate the enumeration.
func Names(b Bucket) []Name {
	src, ok := bucketNames[b]
	if !ok {
		return nil
	}
	out := make([]Name, len(src))
	copy(out, src)
	return out
}

// defaultFields maps each signal to the literal record field read by the
// default mapping (the flat-key convention used when no custom mapping is
// supplied). ReuseCount is absent here: its default sums the three
// reuseCountFields below.
var defaultFields = map[Name]string{
	Consent:             "has_consent",
	Deidentification:    "has_deidentification",
	GeoCoverage:         "has_geographic_coverage",
	TemporalCoverage:    "has_temporal_coverage",
	Contributors:        "has_contributors",
	Methods:             "has_methods",
	ContributorPID:      "has_contributor_pids",
	OrgPID:              "has_org_pids",
	References:          "has_references",
	DescriptionQuality:  "has_description",
	OpenAccess:          "is_open_access",
	HasLicense:          "has_license",
	PermissiveLicense:   "is_permissive_license",
	DownloadURL:         "has_download_url",
	RelatedPublications: "has_related_publications",
	RelatedDatasets:     "has_related_data",
	Funding:             "has_funding",
	VersionTracking:     "has_version",
	Keywords:            "has_keywords",
}

// reuseCountFields are summed by the default reuse rule.
var reuseCountFields = []string{"citation_count", "download_count", "derived_count"}

// DefaultField returns the flat-key field name the default mapping reads for
// a boolean signal, and false for ReuseCount or unknown names.
func DefaultField(n Name) (string, bool) {
	f, ok := defaultFields[n]
	return f, ok
}

// Set is the fixed-shape extraction result: every boolean signal resolved to
// a definite value and a non-negative reuse count. Value type; treat as
// immutable once returned by Extract.
type Set struct {
	// Stewardship
	Consent          bool
	Deidentification bool
	GeoCoverage      bool
	TemporalCoverage bool
	Contributors     bool

	// Harmonization
	Methods            bool
	ContributorPID     bool
	OrgPID             bool
	References         bool
	DescriptionQuality bool

	// Access
	OpenAccess        bool
	HasLicense        bool
	PermissiveLicense bool
	DownloadURL       bool

	// Reuse
	ReuseCount int

	// Engagement
	RelatedPublications bool
	RelatedDatasets     bool
	Funding             bool
	VersionTracking     bool
	Keywords            bool
}

// boolSlot returns a pointer to the Set field for a boolean signal.
// Returns nil for ReuseCount and unknown names.
func (s *Set) boolSlot(n Name) *bool {
	switch n {
	case Consent:
		return &s.Consent
	case Deidentification:
		return &s.Deidentification
	case GeoCoverage:
		return &s.GeoCoverage
	case TemporalCoverage:
		return &s.TemporalCoverage
	case Contributors:
		return &s.Contributors
	case Methods:
		return &s.Methods
	case ContributorPID:
		return &s.ContributorPID
	case OrgPID:
		return &s.OrgPID
	case References:
		return &s.References
	case DescriptionQuality:
		return &s.DescriptionQuality
	case OpenAccess:
		return &s.OpenAccess
	case HasLicense:
		return &s.HasLicense
	case PermissiveLicense:
		return &s.PermissiveLicense
	case DownloadURL:
		return &s.DownloadURL
	case RelatedPublications:
		return &s.RelatedPublications
	case RelatedDatasets:
		return &s.RelatedDatasets
	case Funding:
		return &s.Funding
	case VersionTracking:
		return &s.VersionTracking
	case Keywords:
		return &s.Keywords
	default:
		return nil
	}
}
