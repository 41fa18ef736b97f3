package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/logging"
	"github.com/agentstation/wilayah/pkg/metrics"
)

// Options configures a reconciler.
type options struct {
	regionThreshold   float64
	provinceThreshold float64
	aliases           []string
	sampleSize        int
	workers           int
	dryRun            bool
	refine            bool
	metrics           *metrics.Metrics
	logger            *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		regionThreshold:   constants.RegionThreshold,
		provinceThreshold: constants.ProvinceThreshold,
		aliases:           constants.DefaultAliases(),
		sampleSize:        constants.SampleSize,
		workers:           constants.DefaultWorkers,
		logger:            logging.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithRegionThreshold sets the fuzzy threshold for regency and city names.
func WithRegionThreshold(threshold float64) Option {
	return func(o *options) error {
		o.regionThreshold = threshold
		return nil
	}
}

// WithProvinceThreshold sets the fuzzy threshold for province names.
func WithProvinceThreshold(threshold float64) Option {
	return func(o *options) error {
		o.provinceThreshold = threshold
		return nil
	}
}

// WithAliases replaces the alias tokens tried after fuzzy matching.
func WithAliases(aliases ...string) Option {
	return func(o *options) error {
		o.aliases = aliases
		return nil
	}
}

// WithSampleSize sets how many region names are sampled to place a province
// whose name has no reference match.
func WithSampleSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{
				Field:   "sample_size",
				Value:   n,
				Message: "must be positive",
			}
		}
		o.sampleSize = n
		return nil
	}
}

// WithWorkers sets how many region files are processed concurrently.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxWorkers {
			return &errors.ValidationError{
				Field:   "workers",
				Value:   n,
				Message: "must be between 1 and 64",
			}
		}
		o.workers = n
		return nil
	}
}

// WithDryRun reports changes without writing them.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithRefineUnresolved title-cases province and region names that no tier
// could place.
func WithRefineUnresolved(enabled bool) Option {
	return func(o *options) error {
		o.refine = enabled
		return nil
	}
}

// WithMetrics records run metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		if m == nil {
			return &errors.ValidationError{
				Field:   "metrics",
				Message: "cannot be nil",
			}
		}
		o.metrics = m
		return nil
	}
}

// WithLogger sets the logger used by Run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}
