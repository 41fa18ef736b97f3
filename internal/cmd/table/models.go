// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/wilayah/internal/cmd/emoji"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/reconciler"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/scope"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ChangesToTableData converts name changes to table format.
func ChangesToTableData(changes []reconciler.Change, showDetails bool) Data {
	headers := []string{"File", "ID", "Old", "New"}
	if showDetails {
		headers = append(headers, "Type", "Scope", "Tier", "Score")
	}

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		row := []string{c.File, string(c.ID), c.Old, c.New}
		if showDetails {
			row = append(row, c.Type.String(), dash(c.Scope), c.Tier.String(), FormatScore(c.Score))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// MissesToTableData converts unresolved names to table format.
func MissesToTableData(misses []reconciler.Miss, showDetails bool) Data {
	headers := []string{"File", "ID", "Name", "Reason"}
	if showDetails {
		headers = append(headers, "Scope", "Nearest", "Score", "Refined")
	}

	rows := make([][]string, 0, len(misses))
	for _, m := range misses {
		row := []string{m.File, string(m.ID), m.Name, string(m.Reason)}
		if showDetails {
			score := "-"
			if m.Nearest != "" {
				score = FormatScore(m.NearestScore)
			}
			refined := emoji.Optional
			if m.Refined {
				refined = emoji.Success
			}
			row = append(row, dash(m.Scope), dash(m.Nearest), score, refined)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// ScopesToTableData converts province scope assignments to table format.
func ScopesToTableData(scopes []scope.Resolution) Data {
	rows := make([][]string, 0, len(scopes))
	for _, s := range scopes {
		status := emoji.Success
		if !s.Resolved {
			status = emoji.Error
		}
		evidence := "-"
		switch s.Method {
		case scope.MethodName:
			evidence = s.Match.Tier.String() + " " + FormatScore(s.Match.Score)
		case scope.MethodContent:
			evidence = strconv.Itoa(s.Matches) + "/" + strconv.Itoa(s.Sampled) + " regions"
		}
		rows = append(rows, []string{
			status,
			string(s.ID),
			s.Name,
			dash(s.Province),
			string(s.Method),
			evidence,
		})
	}

	return Data{
		Headers:         []string{"", "ID", "Name", "Province", "Method", "Evidence"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
}

// IssuesToTableData converts duplicate reference keys to table format.
func IssuesToTableData(issues []refindex.DuplicateKey) Data {
	rows := make([][]string, 0, len(issues))
	for _, d := range issues {
		rows = append(rows, []string{
			emoji.Warning,
			d.Province,
			d.Type.String(),
			d.Key,
			strings.Join(d.Names, " | "),
			d.Kept,
		})
	}

	return Data{
		Headers: []string{"", "Province", "Type", "Key", "Names", "Kept"},
		Rows:    rows,
	}
}

// StatsToTableData converts run statistics to a key-value table.
func StatsToTableData(stats reconciler.ResultStatistics) Data {
	rows := [][]string{
		{"Province files", strconv.Itoa(stats.ProvinceFiles)},
		{"Region files", strconv.Itoa(stats.RegionFiles)},
		{"Records", strconv.Itoa(stats.Records)},
		{"Changed", strconv.Itoa(stats.Changed)},
		{"Unresolved", strconv.Itoa(stats.Unresolved)},
		{"Refined", strconv.Itoa(stats.Refined)},
		{"Files saved", strconv.Itoa(stats.FilesSaved)},
	}

	tiers := make([]string, 0, len(stats.Tiers))
	for tier := range stats.Tiers {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		rows = append(rows, []string{"Tier " + tier, strconv.Itoa(stats.Tiers[tier])})
	}

	return Data{
		Headers:         []string{"Statistic", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ProvinceRow is one reference province shown by the reference command.
type ProvinceRow struct {
	Name    string `json:"name" yaml:"name"`
	Regions int    `json:"regions" yaml:"regions"`
}

// ProvincesToTableData converts reference provinces to table format.
func ProvincesToTableData(provinces []ProvinceRow) Data {
	rows := make([][]string, 0, len(provinces))
	for _, p := range provinces {
		rows = append(rows, []string{p.Name, strconv.Itoa(p.Regions)})
	}
	return Data{
		Headers:         []string{"Province", "Regions"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// CandidatesToTableData converts the candidates of one province to table format.
func CandidatesToTableData(candidates []matcher.Candidate) Data {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{c.Name, c.Key, c.Type.String()})
	}
	return Data{
		Headers: []string{"Name", "Key", "Type"},
		Rows:    rows,
	}
}

// KeyRow is one name shown with its normalized key by the normalize command.
type KeyRow struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
	Type string `json:"type" yaml:"type"`
}

// KeysToTableData converts normalized names to table format.
func KeysToTableData(keys []KeyRow) Data {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k.Name, dash(k.Key), k.Type})
	}
	return Data{
		Headers: []string{"Name", "Key", "Type"},
		Rows:    rows,
	}
}

// FormatScore formats a similarity ratio with two decimals.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
