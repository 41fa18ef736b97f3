package check

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/wilayah/cmd/application"
	"github.com/agentstation/wilayah/internal/cmd/dataset"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/reconciler"
	"github.com/agentstation/wilayah/pkg/refindex"
)

func execute(t *testing.T, root string, args ...string) error {
	t.Helper()
	app := &application.Mock{OutputFormatFunc: func() string { return "json" }}
	rootCmd := &cobra.Command{Use: "wilayah", SilenceUsage: true, SilenceErrors: true}
	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddCommand(NewCommand(app))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"check", "--root", root}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func TestCheckNeverWrites(t *testing.T) {
	files := dataset.TestFiles()
	root := dataset.WriteTestDataset(t, files)

	err := execute(t, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, err.Error(), "1 names to change")
	assert.Equal(t, files["kabupaten/11.json"], dataset.ReadTestFile(t, root, "kabupaten/11.json"))
}

func TestCheckReconciledDataset(t *testing.T) {
	files := dataset.TestFiles()
	files["kabupaten/11.json"] = `[{"id":"1101","nama":"Kabupaten Simeulue"},{"id":"1199","nama":"KAB. ANTAH"}]`
	root := dataset.WriteTestDataset(t, files)

	assert.NoError(t, execute(t, root))

	err := execute(t, root, "--strict")
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, err.Error(), "1 unresolved names")
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name   string
		result *reconciler.Result
		strict bool
		want   string
	}{
		{"clean", &reconciler.Result{}, true, ""},
		{"unresolved lenient", &reconciler.Result{Unresolved: []reconciler.Miss{{}}}, false, ""},
		{"changes", &reconciler.Result{Changes: []reconciler.Change{{}, {}}}, false, "2 names to change"},
		{"issues and errors", &reconciler.Result{
			Issues: []refindex.DuplicateKey{{}},
			Errors: []error{fmt.Errorf("boom")},
		}, false, "1 duplicate reference keys, 1 unreadable files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verdict(tt.result, tt.strict)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrCheckFailed))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
