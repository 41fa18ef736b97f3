// Package reconciler corrects the names of a region dataset against the
// reference index.
//
// A run has two phases. Province entries are placed in a reference province
// (their scope) and renamed when their name matched by name. Region files are
// then processed, each record matched within its province's scope. Names no
// tier can place are left as they are and reported.
package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/normalize"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
	"github.com/agentstation/wilayah/pkg/scope"
)

// Reconciler matches dataset names against one reference index. It holds no
// mutable state and may be shared.
type Reconciler struct {
	index      *refindex.Index
	candidates []matcher.Candidate // reference provinces
	regions    *matcher.Matcher
	provinces  *matcher.Matcher
	scopes     *scope.Resolver
	options    *options
	logger     *zerolog.Logger
}

// New creates a new Reconciler over index.
func New(index *refindex.Index, opts ...Option) (*Reconciler, error) {
	if index == nil {
		return nil, &errors.ValidationError{Field: "index", Message: "cannot be nil"}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	regionMatcher, err := matcher.New(matcher.Config{
		Context:   matcher.ContextRegion,
		Threshold: options.regionThreshold,
		Aliases:   options.aliases,
	})
	if err != nil {
		return nil, err
	}
	provinceMatcher, err := matcher.New(matcher.Config{
		Context:   matcher.ContextProvince,
		Threshold: options.provinceThreshold,
		Aliases:   options.aliases,
	})
	if err != nil {
		return nil, err
	}
	resolver, err := scope.New(index,
		scope.WithSampleSize(options.sampleSize),
		scope.WithThresholds(options.provinceThreshold, options.regionThreshold),
		scope.WithAliases(options.aliases...),
	)
	if err != nil {
		return nil, err
	}

	return &Reconciler{
		index:      index,
		candidates: index.ProvinceCandidates(),
		regions:    regionMatcher,
		provinces:  provinceMatcher,
		scopes:     resolver,
		options:    options,
		logger:     options.logger,
	}, nil
}

// Outcome is the full decision for one record.
type Outcome struct {
	Record regions.Record `json:"record"`
	// Scope is the canonical province the record was matched in.
	Scope string `json:"scope,omitempty"`
	// Hint is the type used to filter candidates.
	Hint  regions.Type   `json:"hint"`
	Match matcher.Result `json:"match"`
	// Name is the name the record should carry.
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
	// Refined is set when an unresolved name was title-cased.
	Refined bool `json:"refined,omitempty"`
}

// ReconcileProvince returns the canonical name of a province entry and
// whether it differs from the current one.
func (r *Reconciler) ReconcileProvince(entry regions.Record) (string, bool) {
	out := r.ProvinceOutcome(entry)
	return out.Name, out.Changed
}

// ProvinceOutcome matches a province entry by name against the reference
// provinces. An unmatched name is title-cased when refinement is enabled; a
// scope found later from the province's regions never renames it.
func (r *Reconciler) ProvinceOutcome(entry regions.Record) Outcome {
	out := Outcome{Record: entry, Hint: regions.Province, Name: entry.Name}
	out.Match = r.provinces.Match(entry.Name, r.candidates, regions.Province)
	switch {
	case out.Match.Resolved:
		out.Scope = out.Match.Name
		out.Name = out.Match.Name
	case r.options.refine:
		out.Name = normalize.TitleCase(entry.Name)
		out.Refined = out.Name != entry.Name
	}
	out.Changed = out.Name != entry.Name
	return out
}

// ReconcileRegion returns the canonical name of a regency or city record
// within the reference province scope, and whether it differs from the
// current one.
func (r *Reconciler) ReconcileRegion(record regions.Record, scope string) (string, bool) {
	out := r.RegionOutcome(record, scope, regions.Unknown)
	return out.Name, out.Changed
}

// RegionOutcome matches a record within scope. dir is the type implied by
// where the record is filed and is used only when neither the code nor the
// name carries a type.
func (r *Reconciler) RegionOutcome(record regions.Record, scope string, dir regions.Type) Outcome {
	out := Outcome{
		Record: record,
		Scope:  scope,
		Hint:   TypeHint(record, dir),
		Name:   record.Name,
	}

	if s, ok := r.index.Scope(scope); ok {
		out.Match = r.regions.Match(record.Name, s.Candidates(), out.Hint)
	} else {
		out.Match = matcher.Result{Key: normalize.Key(record.Name)}
	}

	switch {
	case out.Match.Resolved:
		out.Name = out.Match.Name
	case r.options.refine:
		out.Name = normalize.TitleCase(record.Name)
		out.Refined = out.Name != record.Name
	}
	out.Changed = out.Name != record.Name
	return out
}

// TypeHint derives the type of a record: from its code, then from its name
// prefix, then from the directory it is filed under.
func TypeHint(record regions.Record, dir regions.Type) regions.Type {
	if t := record.ID.Type(); t == regions.Regency || t == regions.City {
		return t
	}
	if t := regions.TypeOfName(record.Name); t != regions.Unknown {
		return t
	}
	if dir == regions.Regency || dir == regions.City {
		return dir
	}
	return regions.Unknown
}

// Index returns the reference index of the reconciler.
func (r *Reconciler) Index() *refindex.Index {
	return r.index
}
