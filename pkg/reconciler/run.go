package reconciler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/wilayah/pkg/errors"
	"github.com/agentstation/wilayah/pkg/logging"
	"github.com/agentstation/wilayah/pkg/matcher"
	"github.com/agentstation/wilayah/pkg/regions"
	"github.com/agentstation/wilayah/pkg/scope"
	"github.com/agentstation/wilayah/pkg/store"
)

// Store is the dataset a run reads and writes. It is implemented by
// *store.Store.
type Store interface {
	ProvinceFiles() ([]string, error)
	RegionFiles() ([]string, error)
	Load(path string) (*store.Document, error)
	Save(doc *store.Document) error
	Samples(province regions.Code, n int) ([]string, error)
}

// scopes maps province codes to their resolution. It is filled before region
// files are processed and only read afterwards.
type scopes map[regions.Code]scope.Resolution

// Run reconciles every province and region file of st.
//
// Per-file read and write failures are collected in Result.Errors and do not
// stop the run. Cancelling ctx stops the run between files.
func (r *Reconciler) Run(ctx context.Context, st Store) (*Result, error) {
	if st == nil {
		return nil, &errors.ValidationError{Field: "store", Message: "cannot be nil"}
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(logging.WithLogger(ctx, r.logger), runID)
	ctx = logging.WithOperation(ctx, r.operation())
	logger := logging.Ctx(ctx)

	result := NewResult(runID)
	result.Metadata.DryRun = r.options.dryRun
	result.Metadata.Workers = r.options.workers
	result.Issues = r.index.Issues()
	for _, issue := range result.Issues {
		logger.Warn().
			Str("province", issue.Province).
			Str("key", issue.Key).
			Strs("names", issue.Names).
			Str("kept", issue.Kept).
			Msg("Duplicate key in reference table")
	}

	logger.Info().
		Int("provinces", len(r.index.Provinces())).
		Bool("dry_run", r.options.dryRun).
		Int("workers", r.options.workers).
		Msg("Starting reconciliation")

	assigned, err := r.reconcileProvinces(ctx, st, result)
	if err != nil {
		return nil, err
	}
	if err := r.reconcileRegions(ctx, st, assigned, result); err != nil {
		return nil, err
	}

	result.Finalize()
	if m := r.options.metrics; m != nil {
		m.Duplicates.Set(float64(len(result.Issues)))
		m.ObserveRun(result.Metadata.Duration, result.Metadata.EndTime)
	}

	logger.Info().
		Int("changed", result.Metadata.Stats.Changed).
		Int("unresolved", result.Metadata.Stats.Unresolved).
		Int("files_saved", result.Metadata.Stats.FilesSaved).
		Int("errors", len(result.Errors)).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation finished")

	return result, nil
}

func (r *Reconciler) reconcileProvinces(ctx context.Context, st Store, result *Result) (scopes, error) {
	files, err := st.ProvinceFiles()
	if err != nil {
		return nil, err
	}
	result.Metadata.Stats.ProvinceFiles = len(files)

	assigned := make(scopes)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, canceled(err)
		}
		fctx := logging.WithFile(ctx, path)

		doc, err := st.Load(path)
		if err != nil {
			r.fileError(fctx, result, path, err)
			continue
		}

		changed := false
		for i, e := range doc.Entries {
			rec := e.Record()
			result.Metadata.Stats.Records++
			r.observeRecord(regions.Province)

			out := r.ProvinceOutcome(rec)
			r.observeMatch(matcher.ContextProvince, out.Match.Tier)
			result.Metadata.Stats.Tiers[out.Match.Tier.String()]++

			res, seen := assigned[rec.ID]
			if !seen {
				res = r.resolveScope(fctx, st, rec, out, result)
				assigned[rec.ID] = res
			}

			if !out.Match.Resolved {
				miss := Miss{
					File:         path,
					ID:           rec.ID,
					Type:         regions.Province,
					Name:         rec.Name,
					Reason:       ReasonNoMatch,
					Nearest:      out.Match.Nearest,
					NearestScore: out.Match.NearestScore,
					Refined:      out.Refined,
				}
				if !res.Resolved {
					miss.Reason = ReasonNoScope
				} else {
					miss.Scope = res.Province
				}
				result.Unresolved = append(result.Unresolved, miss)
				logging.Ctx(fctx).Debug().Err(miss.Err()).Str("reason", string(miss.Reason)).Msg("Name unresolved")
				if out.Refined {
					result.Metadata.Stats.Refined++
				}
			}

			if out.Changed && doc.Rename(i, out.Name) {
				changed = true
				result.Changes = append(result.Changes, Change{
					File:  path,
					ID:    rec.ID,
					Type:  regions.Province,
					Scope: res.Province,
					Old:   rec.Name,
					New:   out.Name,
					Tier:  out.Match.Tier,
					Score: out.Match.Score,
				})
				r.observeChange(regions.Province)
				logging.Ctx(fctx).Debug().
					Str("id", string(rec.ID)).
					Str("old", rec.Name).
					Str("new", out.Name).
					Stringer("tier", out.Match.Tier).
					Msg("Renamed province")
			}
		}

		if changed && !r.options.dryRun {
			if err := st.Save(doc); err != nil {
				r.fileError(fctx, result, path, err)
				continue
			}
			result.Metadata.Stats.FilesSaved++
			r.observeSaved()
		}
	}
	return assigned, nil
}

// resolveScope places a province entry. The name result of out is reused;
// region samples are read only when the name did not match.
func (r *Reconciler) resolveScope(ctx context.Context, st Store, rec regions.Record, out Outcome, result *Result) scope.Resolution {
	var res scope.Resolution
	if out.Match.Resolved {
		res = scope.Resolution{
			ID:       rec.ID,
			Name:     rec.Name,
			Province: out.Match.Name,
			Method:   scope.MethodName,
			Match:    out.Match,
			Resolved: true,
		}
	} else {
		res = r.resolveByContent(ctx, st, rec)
	}

	result.Scopes = append(result.Scopes, res)
	r.observeScope(res.Method)
	return res
}

func (r *Reconciler) resolveByContent(ctx context.Context, st Store, rec regions.Record) scope.Resolution {
	logger := logging.Ctx(logging.WithProvince(ctx, string(rec.ID)))

	var samples []string
	if rec.ID.IsProvince() {
		var err error
		// Unreadable files are reported when the region files are processed;
		// the vote runs on whatever was read.
		samples, err = st.Samples(rec.ID, r.scopes.SampleSize())
		if err != nil {
			logger.Debug().Err(err).Int("sampled", len(samples)).Msg("Some region files could not be sampled")
		}
	}

	res := r.scopes.Resolve(rec, samples)
	if res.Resolved {
		logger.Info().
			Str("name", rec.Name).
			Str("scope", res.Province).
			Int("matches", res.Matches).
			Int("sampled", res.Sampled).
			Msg("Province placed by its regions")
	} else {
		logger.Warn().Err(res.Err()).Msg("Province has no reference scope")
	}
	return res
}

// fileOutcome is everything one region file contributed to a run.
type fileOutcome struct {
	changes []Change
	misses  []Miss
	tiers   map[string]int
	records int
	refined int
	saved   bool
	err     error
}

func (r *Reconciler) reconcileRegions(ctx context.Context, st Store, assigned scopes, result *Result) error {
	files, err := st.RegionFiles()
	if err != nil {
		return err
	}
	result.Metadata.Stats.RegionFiles = len(files)

	// Provinces missing from the province lists are placed by their regions.
	for _, path := range files {
		code := store.ProvinceOfPath(path)
		if code == "" {
			continue
		}
		if _, ok := assigned[code]; ok {
			continue
		}
		res := r.resolveByContent(ctx, st, regions.Record{ID: code})
		assigned[code] = res
		result.Scopes = append(result.Scopes, res)
		r.observeScope(res.Method)
	}

	outcomes := make([]fileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.reconcileFile(logging.WithFile(gctx, path), st, path, assigned)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return canceled(err)
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}

	stats := &result.Metadata.Stats
	for i, fo := range outcomes {
		result.Changes = append(result.Changes, fo.changes...)
		result.Unresolved = append(result.Unresolved, fo.misses...)
		stats.Records += fo.records
		stats.Refined += fo.refined
		for tier, n := range fo.tiers {
			stats.Tiers[tier] += n
		}
		if fo.saved {
			stats.FilesSaved++
		}
		if fo.err != nil {
			r.fileError(logging.WithFile(ctx, files[i]), result, files[i], fo.err)
		}
	}
	return nil
}

func (r *Reconciler) reconcileFile(ctx context.Context, st Store, path string, assigned scopes) fileOutcome {
	fo := fileOutcome{tiers: make(map[string]int)}
	logger := logging.Ctx(ctx)

	doc, err := st.Load(path)
	if err != nil {
		fo.err = err
		return fo
	}

	scopeName := ""
	if res, ok := assigned[doc.Province]; ok && res.Resolved {
		scopeName = res.Province
	}

	for i, e := range doc.Entries {
		rec := e.Record()
		fo.records++

		out := r.RegionOutcome(rec, scopeName, doc.Dir)
		r.observeRecord(out.Hint)
		r.observeMatch(matcher.ContextRegion, out.Match.Tier)
		fo.tiers[out.Match.Tier.String()]++

		if !out.Match.Resolved {
			miss := Miss{
				File:         path,
				ID:           rec.ID,
				Type:         out.Hint,
				Scope:        scopeName,
				Name:         rec.Name,
				Reason:       ReasonNoMatch,
				Nearest:      out.Match.Nearest,
				NearestScore: out.Match.NearestScore,
				Refined:      out.Refined,
			}
			if scopeName == "" {
				miss.Reason = ReasonNoScope
			}
			fo.misses = append(fo.misses, miss)
			logger.Debug().Err(miss.Err()).Str("reason", string(miss.Reason)).Msg("Name unresolved")
			if out.Refined {
				fo.refined++
			}
		}

		if out.Changed && doc.Rename(i, out.Name) {
			fo.changes = append(fo.changes, Change{
				File:  path,
				ID:    rec.ID,
				Type:  out.Hint,
				Scope: scopeName,
				Old:   rec.Name,
				New:   out.Name,
				Tier:  out.Match.Tier,
				Score: out.Match.Score,
			})
			r.observeChange(out.Hint)
			logger.Debug().
				Str("id", string(rec.ID)).
				Str("old", rec.Name).
				Str("new", out.Name).
				Stringer("tier", out.Match.Tier).
				Msg("Renamed region")
		}
	}

	if len(fo.changes) > 0 && !r.options.dryRun {
		if err := st.Save(doc); err != nil {
			fo.err = err
			return fo
		}
		fo.saved = true
		r.observeSaved()
	}
	return fo
}

func (r *Reconciler) fileError(ctx context.Context, result *Result, path string, err error) {
	logging.Ctx(ctx).Warn().Err(err).Msg("Skipping file")
	result.Errors = append(result.Errors, &FileError{File: path, Err: err})
	if m := r.options.metrics; m != nil {
		m.FileErrors.Inc()
	}
}

func (r *Reconciler) observeRecord(t regions.Type) {
	if m := r.options.metrics; m != nil {
		m.ObserveRecord(t.String())
	}
}

func (r *Reconciler) observeMatch(c matcher.Context, tier matcher.Tier) {
	if m := r.options.metrics; m != nil {
		m.ObserveMatch(string(c), tier.String())
	}
}

func (r *Reconciler) observeChange(t regions.Type) {
	if m := r.options.metrics; m != nil {
		m.ObserveChange(t.String())
	}
}

func (r *Reconciler) observeScope(method scope.Method) {
	if m := r.options.metrics; m != nil {
		m.ObserveScope(string(method))
	}
}

func (r *Reconciler) observeSaved() {
	if m := r.options.metrics; m != nil {
		m.FilesSaved.Inc()
	}
}

func canceled(err error) error {
	return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
}

func (r *Reconciler) operation() string {
	if r.options.dryRun {
		return "check"
	}
	return "reconcile"
}
