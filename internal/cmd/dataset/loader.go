// Package dataset provides common dataset operations for CLI commands.
package dataset

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/internal/config"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/metrics"
	"github.com/agentstation/wilayah/pkg/reconciler"
	"github.com/agentstation/wilayah/pkg/refindex"
	"github.com/agentstation/wilayah/pkg/store"
)

// Dataset is an opened region dataset with its reference index built.
type Dataset struct {
	Store *store.Store
	Index *refindex.Index
}

// Load opens the dataset under settings.Root and builds its reference index.
// This handles the common pattern of store.Open() -> ReferenceRows() -> refindex.Build().
func Load(settings config.Settings, opts ...store.Option) (*Dataset, error) {
	policy, err := refindex.ParsePolicy(settings.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(settings.Root, opts...)
	if err != nil {
		return nil, errors.WrapResource("open", "dataset", settings.Root, err)
	}

	rows, err := st.ReferenceRows()
	if err != nil {
		return nil, errors.WrapResource("read", "reference table", settings.Root, err)
	}

	index, err := refindex.Build(rows, refindex.WithDuplicatePolicy(policy))
	if err != nil {
		return nil, errors.WrapResource("build", "reference index", settings.Root, err)
	}

	return &Dataset{Store: st, Index: index}, nil
}

// Reconciler creates a reconciler over the dataset's index configured from settings.
// Extra options are applied last and win over settings.
func (d *Dataset) Reconciler(settings config.Settings, logger *zerolog.Logger, m *metrics.Metrics, extra ...reconciler.Option) (*reconciler.Reconciler, error) {
	opts := []reconciler.Option{
		reconciler.WithRegionThreshold(settings.RegionThreshold),
		reconciler.WithProvinceThreshold(settings.ProvinceThreshold),
		reconciler.WithAliases(settings.Aliases...),
		reconciler.WithSampleSize(settings.SampleSize),
		reconciler.WithWorkers(settings.Workers),
		reconciler.WithRefineUnresolved(settings.RefineUnresolved),
	}
	if logger != nil {
		opts = append(opts, reconciler.WithLogger(logger))
	}
	if m != nil {
		opts = append(opts, reconciler.WithMetrics(m))
	}
	opts = append(opts, extra...)

	r, err := reconciler.New(d.Index, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciler", "", err)
	}
	return r, nil
}
