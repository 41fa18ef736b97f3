// Package scope maps a province entry found on file to the reference province
// whose regions its records are matched against.
//
// The entry name is tried first. When the name cannot be placed, which is
// usual for provinces renamed or split after the reference table was drawn
// up, the regions filed under the entry are sampled and the reference
// province that recognizes most of them wins.
package scope

import (
	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
)

// Method records how a scope was decided.
type Method string

const (
	// MethodName means the entry name matched a reference province.
	MethodName Method = "name"
	// MethodContent means the entry's regions identified the province.
	MethodContent Method = "content"
	// MethodNone means no scope was found.
	MethodNone Method = "none"
)

// Resolution is the outcome of resolving one province entry.
type Resolution struct {
	ID       regions.Code `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Province string       `json:"province,omitempty" yaml:"province,omitempty"`
	Method   Method       `json:"method" yaml:"method"`
	// Match is the province name match; set for MethodName.
	Match matcher.Result `json:"match" yaml:"match"`
	// Matches and Sampled are the content vote; set for MethodContent.
	Matches  int  `json:"matches,omitempty" yaml:"matches,omitempty"`
	Sampled  int  `json:"sampled,omitempty" yaml:"sampled,omitempty"`
	Resolved bool `json:"resolved" yaml:"resolved"`
}

// Err returns a ScopeError for an unresolved entry and nil otherwise.
func (r Resolution) Err() error {
	if r.Resolved {
		return nil
	}
	return &errors.ScopeError{ProvinceID: string(r.ID), Name: r.Name}
}

// Resolver resolves province entries against a reference index. It is safe
// for concurrent use.
type Resolver struct {
	index      *refindex.Index
	provinces  []matcher.Candidate
	byName     *matcher.Matcher
	byContent  *matcher.Matcher
	sampleSize int
}

// New creates a Resolver over index.
func New(index *refindex.Index, opts ...Option) (*Resolver, error) {
	if index == nil {
		return nil, errors.NewValidationError("index", nil, "cannot be nil")
	}
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	byName, err := matcher.New(matcher.Config{
		Context:   matcher.ContextProvince,
		Threshold: o.provinceThreshold,
		Aliases:   o.aliases,
	})
	if err != nil {
		return nil, err
	}
	// The content vote counts exact and fuzzy hits only.
	byContent, err := matcher.New(matcher.Config{
		Context:   matcher.ContextRegion,
		Threshold: o.regionThreshold,
	})
	if err != nil {
		return nil, err
	}

	return &Resolver{
		index:      index,
		provinces:  index.ProvinceCandidates(),
		byName:     byName,
		byContent:  byContent,
		sampleSize: o.sampleSize,
	}, nil
}

// Resolve decides the reference province of entry. samples are region names
// filed under the entry; only the first SampleSize are used.
func (r *Resolver) Resolve(entry regions.Record, samples []string) Resolution {
	res := Resolution{ID: entry.ID, Name: entry.Name, Method: MethodNone}

	res.Match = r.byName.Match(entry.Name, r.provinces, regions.Province)
	if res.Match.Resolved {
		res.Province = res.Match.Name
		res.Method = MethodName
		res.Resolved = true
		return res
	}

	if len(samples) > r.sampleSize {
		samples = samples[:r.sampleSize]
	}
	res.Sampled = len(samples)

	best, bestCount := "", 0
	for _, province := range r.index.Provinces() {
		scope, _ := r.index.Scope(province)
		candidates := scope.Candidates()
		if len(candidates) == 0 {
			continue
		}
		count := 0
		for _, sample := range samples {
			if r.byContent.Match(sample, candidates, regions.Unknown).Resolved {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = province, count
		}
	}
	if bestCount == 0 {
		return res
	}

	res.Province = best
	res.Method = MethodContent
	res.Matches = bestCount
	res.Resolved = true
	return res
}

// SampleSize returns the number of samples used by the content vote.
func (r *Resolver) SampleSize() int {
	return r.sampleSize
}

type options struct {
	sampleSize        int
	provinceThreshold float64
	regionThreshold   float64
	aliases           []string
}

func defaultOptions() *options {
	return &options{
		sampleSize:        constants.SampleSize,
		provinceThreshold: constants.ProvinceThreshold,
		regionThreshold:   constants.RegionThreshold,
		aliases:           constants.DefaultAliases(),
	}
}

// Option is a function that configures a Resolver.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSampleSize sets how many region names the content vote looks at.
func WithSampleSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return errors.NewValidationError("sample_size", n, "must be positive")
		}
		o.sampleSize = n
		return nil
	}
}

// WithThresholds sets the province name threshold and the region threshold
// used by the content vote.
func WithThresholds(province, region float64) Option {
	return func(o *options) error {
		o.provinceThreshold = province
		o.regionThreshold = region
		return nil
	}
}

// WithAliases sets the alias tokens tried on province names.
func WithAliases(aliases ...string) Option {
	return func(o *options) error {
		o.aliases = aliases
		return nil
	}
}
