// Package refindex builds the immutable reference index that every matching
// decision is made against.
//
// The index groups the canonical regions of the reference table by province
// and, inside a province, by region type. It is built once per run and then
// only read, so it is safe to share between goroutines.
package refindex

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/normalize"
	"github.com/agentstation/wilayah/pkg/regions"
)

// Row is one line of the reference table.
type Row struct {
	Number   int    `json:"no"`
	Province string `json:"province"`
	Region   string `json:"region"`
}

// DuplicateKey records two or more canonical names of one province and type
// that normalize to the same key.
type DuplicateKey struct {
	Province string       `json:"province" yaml:"province"`
	Type     regions.Type `json:"type" yaml:"type"`
	Key      string       `json:"key" yaml:"key"`
	Names    []string     `json:"names" yaml:"names"`
	Kept     string       `json:"kept" yaml:"kept"`
}

// Err returns the issue as a DataQualityError.
func (d DuplicateKey) Err() *errors.DataQualityError {
	return errors.NewDataQualityError(d.Province, d.Key, d.Names...)
}

// Stats summarizes how the reference table was indexed.
type Stats struct {
	Rows         int `json:"rows" yaml:"rows"`
	Indexed      int `json:"indexed" yaml:"indexed"`
	Placeholders int `json:"placeholders" yaml:"placeholders"`
	Skipped      int `json:"skipped" yaml:"skipped"`
	Provinces    int `json:"provinces" yaml:"provinces"`
	Duplicates   int `json:"duplicates" yaml:"duplicates"`
}

// String returns a one-line summary of the stats.
func (s Stats) String() string {
	return fmt.Sprintf("%d rows, %d regions in %d provinces, %d placeholders, %d skipped, %d duplicate keys",
		s.Rows, s.Indexed, s.Provinces, s.Placeholders, s.Skipped, s.Duplicates)
}

// Scope is the candidate set of one reference province.
type Scope struct {
	name       string
	candidates []matcher.Candidate
}

// Name returns the canonical province name of the scope.
func (s *Scope) Name() string {
	return s.name
}

// Candidates returns a copy of the scope's candidates, ordered by canonical name.
func (s *Scope) Candidates() []matcher.Candidate {
	return slices.Clone(s.candidates)
}

// Len returns the number of candidates in the scope.
func (s *Scope) Len() int {
	return len(s.candidates)
}

// Index is the immutable reference index.
type Index struct {
	provinces []string
	scopes    map[string]*Scope
	byKey     map[string]string
	issues    []DuplicateKey
	stats     Stats
}

// partition identifies one (province, type) bucket.
type partition struct {
	province string
	typ      regions.Type
}

type slot struct {
	name  string
	issue int // index into issues, -1 when no collision was seen
}

// Build indexes rows in table order.
func Build(rows []Row, opts ...Option) (*Index, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		scopes: make(map[string]*Scope),
		byKey:  make(map[string]string),
	}
	slots := make(map[partition]map[string]*slot)
	// order lists each province's slots in first-seen order; kept runs
	// parallel to idx.issues.
	order := make(map[string][]*slot)
	var kept []*slot

	for _, row := range rows {
		idx.stats.Rows++
		province := strings.TrimSpace(row.Province)
		region := strings.TrimSpace(row.Region)
		if province == "" {
			idx.stats.Skipped++
			continue
		}
		idx.register(province)

		if strings.Contains(region, constants.PlaceholderMarker) {
			idx.stats.Placeholders++
			continue
		}
		key := normalize.Key(region)
		if key == "" {
			idx.stats.Skipped++
			continue
		}

		p := partition{province: province, typ: regions.TypeOfName(region)}
		bucket := slots[p]
		if bucket == nil {
			bucket = make(map[string]*slot)
			slots[p] = bucket
		}

		s, seen := bucket[key]
		switch {
		case !seen:
			s = &slot{name: region, issue: -1}
			bucket[key] = s
			order[province] = append(order[province], s)
			idx.stats.Indexed++
		case s.name == region:
			// identical repeated row
		default:
			if s.issue < 0 {
				idx.issues = append(idx.issues, DuplicateKey{
					Province: province,
					Type:     p.typ,
					Key:      key,
					Names:    []string{s.name},
				})
				s.issue = len(idx.issues) - 1
				kept = append(kept, s)
			}
			issue := &idx.issues[s.issue]
			if !slices.Contains(issue.Names, region) {
				issue.Names = append(issue.Names, region)
			}
			if o.policy == PolicyLast {
				s.name = region
			}
		}
	}

	for i, s := range kept {
		idx.issues[i].Kept = s.name
	}
	idx.stats.Duplicates = len(idx.issues)

	if o.policy == PolicyReject && len(idx.issues) > 0 {
		return nil, idx.issues[0].Err()
	}

	for _, province := range idx.provinces {
		scope := idx.scopes[province]
		for _, s := range order[province] {
			scope.candidates = append(scope.candidates, matcher.NewCandidate(s.name))
		}
		matcher.Sort(scope.candidates)
	}
	idx.stats.Provinces = len(idx.provinces)

	return idx, nil
}

func (idx *Index) register(province string) {
	if _, ok := idx.scopes[province]; ok {
		return
	}
	idx.provinces = append(idx.provinces, province)
	idx.scopes[province] = &Scope{name: province}
	key := normalize.Key(province)
	if _, ok := idx.byKey[key]; !ok {
		idx.byKey[key] = province
	}
}

// Provinces returns the canonical province names in reference table order.
func (idx *Index) Provinces() []string {
	return slices.Clone(idx.provinces)
}

// Scope returns the scope of a canonical province name.
func (idx *Index) Scope(province string) (*Scope, bool) {
	s, ok := idx.scopes[province]
	return s, ok
}

// ScopeByKey returns the scope whose province name normalizes to key.
func (idx *Index) ScopeByKey(key string) (*Scope, bool) {
	province, ok := idx.byKey[normalize.Key(key)]
	if !ok {
		return nil, false
	}
	return idx.Scope(province)
}

// ProvinceCandidates returns the provinces as matching candidates, ordered by name.
func (idx *Index) ProvinceCandidates() []matcher.Candidate {
	out := make([]matcher.Candidate, 0, len(idx.provinces))
	for _, p := range idx.provinces {
		out = append(out, matcher.Candidate{
			Key:  normalize.Key(p),
			Name: p,
			Type: regions.Province,
		})
	}
	matcher.Sort(out)
	return out
}

// Issues returns the duplicate-key collisions found while building.
func (idx *Index) Issues() []DuplicateKey {
	out := make([]DuplicateKey, len(idx.issues))
	for i, issue := range idx.issues {
		issue.Names = slices.Clone(issue.Names)
		out[i] = issue
	}
	return out
}

// Stats returns the build statistics.
func (idx *Index) Stats() Stats {
	return idx.stats
}
