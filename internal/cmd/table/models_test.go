package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/wilayah/internal/cmd/emoji"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/reconciler"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/regions"
	"github.com/agentstation/wilayah/pkg/scope"
)

func TestChangesToTableData(t *testing.T) {
	changes := []reconciler.Change{{
		File:  "kabupaten/11.json",
		ID:    "1101",
		Type:  regions.Regency,
		Scope: "ACEH",
		Old:   "Kab. Simeulu",
		New:   "KABUPATEN SIMEULUE",
		Tier:  matcher.TierFuzzy,
		Score: 0.9,
	}}

	data := ChangesToTableData(changes, false)
	assert.Equal(t, []string{"File", "ID", "Old", "New"}, data.Headers)
	assert.Equal(t, [][]string{{"kabupaten/11.json", "1101", "Kab. Simeulu", "KABUPATEN SIMEULUE"}}, data.Rows)

	wide := ChangesToTableData(changes, true)
	assert.Len(t, wide.Headers, 8)
	assert.Equal(t, []string{"regency", "ACEH", "fuzzy", "0.90"}, wide.Rows[0][4:])
}

func TestMissesToTableData(t *testing.T) {
	misses := []reconciler.Miss{
		{File: "kota/99.json", ID: "9971", Name: "KOTA ENTAH", Reason: reconciler.ReasonNoScope},
		{File: "kabupaten/11.json", ID: "1199", Name: "ANTAH", Reason: reconciler.ReasonNoMatch, Scope: "ACEH", Nearest: "KABUPATEN ACEH TENGAH", NearestScore: 0.25, Refined: true},
	}

	data := MissesToTableData(misses, true)
	assert.Equal(t, []string{"kota/99.json", "9971", "KOTA ENTAH", "scope unresolved", "-", "-", "-", emoji.Optional}, data.Rows[0])
	assert.Equal(t, []string{"ACEH", "KABUPATEN ACEH TENGAH", "0.25", emoji.Success}, data.Rows[1][4:])
}

func TestScopesToTableData(t *testing.T) {
	scopes := []scope.Resolution{
		{ID: "11", Name: "Aceh", Province: "ACEH", Method: scope.MethodName, Resolved: true,
			Match: matcher.Result{Tier: matcher.TierExact, Score: 1}},
		{ID: "95", Name: "PAPUA SELATAN", Province: "PAPUA", Method: scope.MethodContent, Resolved: true, Matches: 2, Sampled: 2},
		{ID: "99", Name: "ENTAH", Method: scope.MethodNone},
	}

	data := ScopesToTableData(scopes)
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
	assert.Equal(t, []string{emoji.Success, "11", "Aceh", "ACEH", "name", "exact 1.00"}, data.Rows[0])
	assert.Equal(t, "2/2 regions", data.Rows[1][5])
	assert.Equal(t, []string{emoji.Error, "99", "ENTAH", "-", "none", "-"}, data.Rows[2])
}

func TestIssuesToTableData(t *testing.T) {
	data := IssuesToTableData([]refindex.DuplicateKey{{
		Province: "ACEH",
		Type:     regions.Regency,
		Key:      "ACEH SELATAN",
		Names:    []string{"KABUPATEN ACEH SELATAN", "KAB. ACEH SELATAN"},
		Kept:     "KABUPATEN ACEH SELATAN",
	}})

	assert.Equal(t, []string{emoji.Warning, "ACEH", "regency", "ACEH SELATAN", "KABUPATEN ACEH SELATAN | KAB. ACEH SELATAN", "KABUPATEN ACEH SELATAN"}, data.Rows[0])
}

func TestStatsToTableData(t *testing.T) {
	data := StatsToTableData(reconciler.ResultStatistics{
		Records: 11,
		Changed: 6,
		Tiers:   map[string]int{"none": 3, "exact": 6},
	})

	n := len(data.Rows)
	assert.Equal(t, []string{"Records", "11"}, data.Rows[2])
	assert.Equal(t, []string{"Tier exact", "6"}, data.Rows[n-2])
	assert.Equal(t, []string{"Tier none", "3"}, data.Rows[n-1])
}

func TestKeysToTableData(t *testing.T) {
	data := KeysToTableData([]KeyRow{{Name: "Kabupaten", Type: "regency"}})
	assert.Equal(t, [][]string{{"Kabupaten", "-", "regency"}}, data.Rows)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.80", FormatScore(0.8))
	assert.Equal(t, "1.00", FormatScore(1))
}
