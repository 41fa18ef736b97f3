// Package matcher decides whether a noisy region name denotes one of a set of
// canonical candidates, and which one.
//
// Matching is a fixed decision tree over four tiers, tried in order until one
// succeeds:
//
//  1. type filter: with a Regency or City hint, only candidates carrying the
//     same type prefix are considered, unless that leaves none;
//  2. exact: the normalized raw name equals a candidate key;
//  3. fuzzy: the best Levenshtein ratio reaches the context threshold;
//  4. alias: a configured alias token appears in both the raw key and a
//     candidate key.
//
// When no tier succeeds the result is unresolved and callers keep the
// original name.
package matcher

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/normalize"
	"github.com/agentstation/wilayah/pkg/regions"
	"github.com/agentstation/wilayah/pkg/similarity"
)

// Tier identifies which matching tier produced a result.
type Tier int

const (
	// TierNone means no tier matched.
	TierNone Tier = iota
	// TierExact is an exact normalized key match.
	TierExact
	// TierFuzzy is a similarity match at or above the threshold.
	TierFuzzy
	// TierAlias is an alias token match.
	TierAlias
)

// String returns a string representation of the Tier.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierFuzzy:
		return "fuzzy"
	case TierAlias:
		return "alias"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Candidate is one canonical name a raw name may resolve to.
type Candidate struct {
	Key  string       `json:"key"`
	Name string       `json:"name"`
	Type regions.Type `json:"type"`
}

// NewCandidate derives a candidate from a canonical display name.
func NewCandidate(name string) Candidate {
	return Candidate{
		Key:  normalize.Key(name),
		Name: name,
		Type: regions.TypeOfName(name),
	}
}

// Sort orders candidates lexicographically by canonical name, then key. This
// order is the tie-break for every tier.
func Sort(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
}

// Context names a matching context.
type Context string

const (
	// ContextRegion matches regencies and cities within one province.
	ContextRegion Context = "region"
	// ContextProvince matches provinces nation-wide.
	ContextProvince Context = "province"
)

// Config configures a Matcher for one matching context.
type Config struct {
	// Context names the matching context, used in logs and reports.
	Context Context
	// Threshold is the minimum similarity ratio accepted by the fuzzy tier.
	Threshold float64
	// Aliases are the tokens tried by the alias tier, in order.
	Aliases []string
}

// RegionConfig returns the configuration for within-province region matching.
func RegionConfig() Config {
	return Config{
		Context:   ContextRegion,
		Threshold: constants.RegionThreshold,
		Aliases:   constants.DefaultAliases(),
	}
}

// ProvinceConfig returns the configuration for province-level matching.
func ProvinceConfig() Config {
	return Config{
		Context:   ContextProvince,
		Threshold: constants.ProvinceThreshold,
		Aliases:   constants.DefaultAliases(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Threshold < constants.MinThreshold || c.Threshold > constants.MaxThreshold {
		return errors.NewValidationError(string(c.Context)+"_threshold", c.Threshold,
			fmt.Sprintf("must be within [%.0f,%.0f]", constants.MinThreshold, constants.MaxThreshold))
	}
	for _, a := range c.Aliases {
		if len(normalize.Tokens(strings.ToUpper(a))) != 1 {
			return errors.NewValidationError("aliases", a, "alias must be a single word")
		}
	}
	return nil
}

// Result is the outcome of one Match call.
type Result struct {
	// Name is the canonical name matched; empty when unresolved.
	Name string `json:"name,omitempty"`
	// Key is the normalized key of the raw name.
	Key string `json:"key"`
	// Tier is the tier that produced the match.
	Tier Tier `json:"tier"`
	// Score is the similarity of the match (1 for exact matches).
	Score float64 `json:"score"`
	// Resolved reports whether any tier matched.
	Resolved bool `json:"resolved"`
	// Nearest is the best fuzzy candidate, even when it missed the threshold.
	Nearest string `json:"nearest,omitempty"`
	// NearestScore is the similarity of Nearest.
	NearestScore float64 `json:"nearest_score,omitempty"`
}

// Matcher runs the tiered matching strategy. It holds no mutable state and is
// safe for concurrent use.
type Matcher struct {
	cfg     Config
	aliases []string
}

// New creates a Matcher from a validated Config.
func New(cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	aliases := make([]string, 0, len(cfg.Aliases))
	for _, a := range cfg.Aliases {
		aliases = append(aliases, strings.ToUpper(strings.TrimSpace(a)))
	}
	return &Matcher{cfg: cfg, aliases: aliases}, nil
}

// MustNew creates a new Matcher and panics if the Config is invalid.
func MustNew(cfg Config) *Matcher {
	m, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Config returns the configuration of the matcher.
func (m *Matcher) Config() Config {
	cfg := m.cfg
	cfg.Aliases = slices.Clone(m.cfg.Aliases)
	return cfg
}

// Threshold returns the fuzzy threshold of the matcher.
func (m *Matcher) Threshold() float64 {
	return m.cfg.Threshold
}

// Match resolves raw against candidates. Candidates are expected in the
// deterministic order produced by Sort; the first candidate wins every tie.
func (m *Matcher) Match(raw string, candidates []Candidate, hint regions.Type) Result {
	key := normalize.Key(raw)
	res := Result{Key: key}
	if key == "" || len(candidates) == 0 {
		return res
	}

	pool := Filter(candidates, hint)

	for _, c := range pool {
		if c.Key == key {
			return resolved(res, c, TierExact, 1.0)
		}
	}

	best, bestScore := -1, -1.0
	for i, c := range pool {
		if score := similarity.Ratio(key, c.Key); score > bestScore {
			best, bestScore = i, score
		}
	}
	res.Nearest, res.NearestScore = pool[best].Name, bestScore
	if bestScore >= m.cfg.Threshold {
		return resolved(res, pool[best], TierFuzzy, bestScore)
	}

	for _, alias := range m.aliases {
		if !normalize.HasToken(key, alias) {
			continue
		}
		for _, c := range pool {
			if normalize.HasToken(c.Key, alias) {
				return resolved(res, c, TierAlias, similarity.Ratio(key, c.Key))
			}
		}
	}

	return res
}

// Filter keeps the candidates whose type matches a Regency or City hint. Any
// other hint, or a filter that would leave nothing, returns candidates as is.
func Filter(candidates []Candidate, hint regions.Type) []Candidate {
	if hint != regions.Regency && hint != regions.City {
		return candidates
	}
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Type == hint {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

func resolved(res Result, c Candidate, tier Tier, score float64) Result {
	res.Name = c.Name
	res.Tier = tier
	res.Score = score
	res.Resolved = true
	return res
}
