// Package pipeline runs a corpus build: discovery, extraction, CSV output
// and the optional database load.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/abaevdict/internal/adapter/sqlschema"
	"github.com/heartmarshall/abaevdict/internal/config"
	"github.com/heartmarshall/abaevdict/internal/corpus"
	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/extract"
	"github.com/heartmarshall/abaevdict/internal/tabular"
	"github.com/heartmarshall/abaevdict/pkg/ctxutil"
)

// Phase names in execution order.
const (
	PhaseLanguages = "languages"
	PhaseDiscover  = "discover"
	PhaseExtract   = "extract"
	PhaseCSV       = "csv"
	PhaseRead      = "read"
	PhaseLoad      = "load"
)

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Name     string
	Rows     int
	Skipped  int
	Duration time.Duration
	Err      error
}

// SkippedDoc is a document left out under the skip policy.
type SkippedDoc struct {
	Doc string
	Err error
}

// Build is the result of a corpus build.
type Build struct {
	Run       domain.BuildRun
	Tables    *domain.Tables
	Languages domain.Languages
	Files     []tabular.FileInfo
	Skipped   []SkippedDoc
	Stats     extract.Stats
	Unknown   []string
}

// Pipeline orchestrates the build phases.
type Pipeline struct {
	log     *slog.Logger
	cfg     *config.Config
	now     func() time.Time
	results []PhaseResult
}

// New creates a Pipeline.
func New(log *slog.Logger, cfg *config.Config) *Pipeline {
	return &Pipeline{log: log, cfg: cfg, now: time.Now}
}

// Results returns phase results in execution order.
func (p *Pipeline) Results() []PhaseResult {
	return p.results
}

// phase times fn, logs and records its outcome.
func (p *Pipeline) phase(ctx context.Context, name string, fn func() (PhaseResult, error)) error {
	start := time.Now()
	log := p.log.With(ctxutil.LogAttrs(ctx)...)
	log.InfoContext(ctx, "starting phase", slog.String("phase", name))

	result, err := fn()
	result.Name = name
	result.Duration = time.Since(start)
	result.Err = err
	p.results = append(p.results, result)

	if err != nil {
		log.ErrorContext(ctx, "phase failed",
			slog.String("phase", name),
			slog.String("error", err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return err
	}
	log.InfoContext(ctx, "phase completed",
		slog.String("phase", name),
		slog.Int("rows", result.Rows),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

// Build reads the language table, extracts every corpus document, merges
// the results and writes the CSV tables.
func (p *Pipeline) Build(ctx context.Context) (*Build, error) {
	b := &Build{Run: domain.NewBuildRun(p.cfg.Corpus.Dir, p.now())}
	ctx = ctxutil.WithRunID(ctx, b.Run.ID)

	err := p.phase(ctx, PhaseLanguages, func() (PhaseResult, error) {
		langs, err := tabular.ReadLanguagesFile(p.cfg.Corpus.LanguagesPath)
		if err != nil {
			return PhaseResult{}, err
		}
		b.Languages = langs
		return PhaseResult{Rows: len(langs)}, nil
	})
	if err != nil {
		return nil, err
	}

	var paths []string
	err = p.phase(ctx, PhaseDiscover, func() (PhaseResult, error) {
		var err error
		paths, err = corpus.Discover(p.cfg.Corpus.Dir, p.cfg.Corpus.Pattern, p.cfg.Corpus.ExcludePrefix)
		if err != nil {
			return PhaseResult{}, err
		}
		if len(paths) == 0 {
			return PhaseResult{}, fmt.Errorf("no documents matching %s in %s", p.cfg.Corpus.Pattern, p.cfg.Corpus.Dir)
		}
		return PhaseResult{Rows: len(paths)}, nil
	})
	if err != nil {
		return nil, err
	}

	if err := p.phase(ctx, PhaseExtract, func() (PhaseResult, error) { return p.extract(ctx, paths, b) }); err != nil {
		return nil, err
	}

	err = p.phase(ctx, PhaseCSV, func() (PhaseResult, error) {
		files, err := tabular.WriteTables(p.cfg.Output.Dir, b.Tables, b.Languages, p.tabularOptions())
		if err != nil {
			return PhaseResult{}, err
		}
		b.Files = files
		b.Run.FinishedAt = p.now()

		if !p.cfg.Output.SkipManifest {
			path := filepath.Join(p.cfg.Output.Dir, tabular.ManifestFile)
			if err := tabular.WriteManifest(path, tabular.NewManifest(b.Run, files)); err != nil {
				return PhaseResult{}, err
			}
		}

		var rows int
		for _, f := range files {
			rows += f.Rows
		}
		return PhaseResult{Rows: rows}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Pipeline) extract(ctx context.Context, paths []string, b *Build) (PhaseResult, error) {
	skip := domain.OnError(p.cfg.Corpus.OnError) == domain.OnErrorSkip
	opts := extract.Options{LenientFormTypes: p.cfg.Corpus.LenientFormTypes}

	results, err := corpus.ExtractAll(ctx, paths, opts, p.cfg.Corpus.Workers, !skip)
	if err != nil {
		for _, r := range results {
			if r.Err != nil {
				return PhaseResult{}, domain.WithDoc(r.Err, r.Doc)
			}
		}
		return PhaseResult{}, err
	}

	builder := corpus.NewBuilder(corpus.Languages{
		Primary: p.cfg.Corpus.PrimaryLanguage,
		Dialect: p.cfg.Corpus.DefaultDialect,
	})
	for _, r := range results {
		err := r.Err
		if err == nil {
			err = builder.Add(r.Doc, r.Tables)
		} else {
			err = domain.WithDoc(err, r.Doc)
		}
		if err == nil {
			b.Stats.Add(r.Stats)
			continue
		}
		if !skip {
			return PhaseResult{}, err
		}
		p.log.WarnContext(ctx, "document skipped", slog.String("doc", r.Doc), slog.String("error", err.Error()))
		b.Skipped = append(b.Skipped, SkippedDoc{Doc: r.Doc, Err: err})
	}

	tables, err := builder.Finish()
	if err != nil {
		return PhaseResult{}, err
	}
	b.Tables = tables
	b.Run.Documents = builder.Documents()
	b.Run.Skipped = len(b.Skipped)
	b.Run.Counts = tables.Counts()

	b.Unknown = corpus.UnknownLanguages(tables, b.Languages)
	if len(b.Unknown) > 0 {
		p.log.WarnContext(ctx, "languages missing from reference table",
			slog.String("codes", strings.Join(b.Unknown, ",")))
	}

	p.log.InfoContext(ctx, "corpus extracted",
		slog.Int("documents", b.Run.Documents),
		slog.Int("entries", b.Run.Counts.Entries),
		slog.Int("sub_entries", b.Stats.SubEntries),
		slog.Int("empty_senses", b.Stats.EmptySenses),
		slog.Int("empty_examples", b.Stats.EmptyExamples),
		slog.Int("dropped_relations", b.Stats.DroppedRelations),
	)
	return PhaseResult{Rows: b.Run.Counts.Total(), Skipped: len(b.Skipped)}, nil
}

// ReadBuild reads tables written by an earlier build from the output
// directory. The run is taken from the manifest when there is one.
func (p *Pipeline) ReadBuild(ctx context.Context) (*Build, error) {
	b := &Build{}
	err := p.phase(ctx, PhaseRead, func() (PhaseResult, error) {
		tables, langs, err := tabular.ReadTables(p.cfg.Output.Dir, p.tabularOptions())
		if err != nil {
			return PhaseResult{}, err
		}
		b.Tables, b.Languages = tables, langs

		b.Run, err = p.runFromManifest(tables)
		if err != nil {
			return PhaseResult{}, err
		}
		return PhaseResult{Rows: tables.Counts().Total() + len(langs)}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Pipeline) runFromManifest(tables *domain.Tables) (domain.BuildRun, error) {
	m, err := tabular.ReadManifest(filepath.Join(p.cfg.Output.Dir, tabular.ManifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			run := domain.NewBuildRun(p.cfg.Output.Dir, p.now())
			run.Counts = tables.Counts()
			return run, nil
		}
		return domain.BuildRun{}, err
	}

	id, err := uuid.Parse(m.RunID)
	if err != nil {
		return domain.BuildRun{}, fmt.Errorf("manifest run_id: %w", err)
	}
	return domain.BuildRun{
		ID:         id,
		SourceDir:  m.SourceDir,
		Documents:  m.Documents,
		Skipped:    m.Skipped,
		Counts:     tables.Counts(),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}, nil
}

// Load inserts the build into the database in one transaction: every table
// in parent-to-child order, in batches, followed by the run record. With
// database.replace the previous contents are deleted first.
func (p *Pipeline) Load(ctx context.Context, loader TableLoader, b *Build) error {
	ctx = ctxutil.WithRunID(ctx, b.Run.ID)
	return p.phase(ctx, PhaseLoad, func() (PhaseResult, error) {
		var result PhaseResult
		err := loader.RunInTx(ctx, func(ctx context.Context) error {
			if p.cfg.Database.Replace {
				if err := loader.Clear(ctx); err != nil {
					return fmt.Errorf("clear: %w", err)
				}
			}

			for _, batch := range sqlschema.Batches(b.Tables, b.Languages) {
				inserted, err := batchProcess(batch.Rows, p.cfg.Database.BatchSize, func(rows [][]any) (int, error) {
					return loader.InsertRows(ctx, batch.Table, batch.Columns, rows)
				})
				if err != nil {
					return fmt.Errorf("insert %s: %w", batch.Table, err)
				}
				p.log.DebugContext(ctx, "table loaded", slog.String("table", batch.Table), slog.Int("rows", inserted))
				result.Rows += inserted
			}

			run := b.Run
			if run.FinishedAt.IsZero() {
				run.FinishedAt = p.now()
			}
			if err := loader.RecordRun(ctx, run); err != nil {
				return fmt.Errorf("record run: %w", err)
			}
			return nil
		})
		if err != nil {
			return PhaseResult{}, err
		}
		return result, nil
	})
}

func (p *Pipeline) tabularOptions() tabular.Options {
	return tabular.Options{ListDelimiter: p.cfg.Output.ListDelimiter}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
