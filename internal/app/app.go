package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"classdiag/internal/config"
	"classdiag/internal/core/errors"
	"classdiag/internal/frontend"
	"classdiag/internal/history"
	"classdiag/internal/model"
	"classdiag/internal/render"
	"classdiag/internal/shared/observability"
	"classdiag/internal/shared/util"
	"classdiag/internal/watcher"
)

// Update is the result of one generation, handed to the UI or printed by the
// CLI summary.
type Update struct {
	Entities []model.DiagramEntity
	Written  []string
	Run      history.Run
	Trend    history.Trend
}

// App wires the pipeline together: scan, extract, build, infer, assemble,
// render, write, record.
type App struct {
	Config *config.Config
	Parser *frontend.Parser

	limiter *util.Limiter
	store   *history.Store

	updateMu sync.RWMutex
	onUpdate func(Update)
}

func New(cfg *config.Config) (*App, error) {
	a := &App{
		Config:  cfg,
		Parser:  frontend.NewParser(),
		limiter: util.NewLimiter(cfg.Watch.RendersPerSecond, 1),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

func (a *App) notify(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

// ScanSources walks the configured source roots and returns supported source
// files in sorted order, so repeated runs see files in the same order.
func (a *App) ScanSources() ([]string, error) {
	dirGlobs := make([]glob.Glob, 0, len(a.Config.Exclude.Dirs))
	for _, p := range a.Config.Exclude.Dirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(a.Config.Exclude.Files))
	for _, p := range a.Config.Exclude.Files {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	var files []string
	for _, root := range uniqueScanRoots(a.Config.SourcePaths) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !a.Parser.IsSupportedPath(path) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func uniqueScanRoots(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		normalized := filepath.Clean(p)
		if abs, err := filepath.Abs(normalized); err == nil {
			normalized = filepath.Clean(abs)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		roots = append(roots, normalized)
	}
	sort.Strings(roots)
	return roots
}

// CollectDeclarations gathers type declarations from the configured snapshot
// or by parsing source files, and resolves references across all of them.
// The second return value is the detected standard-library namespace prefix.
func (a *App) CollectDeclarations() (*frontend.Declarations, string, error) {
	systemPrefix := a.Config.SystemPrefix

	if a.Config.Snapshot != "" {
		decls, err := frontend.LoadSnapshot(a.Config.Snapshot)
		if err != nil {
			if errors.IsCode(err, errors.CodeNotFound) {
				return nil, "", fmt.Errorf("snapshot %s does not exist, check the snapshot path: %w", a.Config.Snapshot, err)
			}
			return nil, "", err
		}
		frontend.Resolve(decls)
		return decls, systemPrefix, nil
	}

	files, err := a.ScanSources()
	if err != nil {
		return nil, "", err
	}

	all := &frontend.Declarations{}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read source file", "path", path, "error", err)
			continue
		}

		language := a.Parser.LanguageForPath(path)
		start := time.Now()
		decls, err := a.Parser.ParseFile(path, content)
		observability.ExtractionDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
		if err != nil {
			slog.Warn("failed to extract declarations", "path", path, "error", err)
			continue
		}

		if systemPrefix == "" {
			systemPrefix = a.Parser.SystemPrefix(language)
		}
		all.Append(decls)
	}

	frontend.Resolve(all)
	return all, systemPrefix, nil
}

// BuildModel turns declarations into the assembled diagram model.
func (a *App) BuildModel(decls *frontend.Declarations, systemPrefix string) []model.DiagramEntity {
	inferOpts := model.InferenceOptions{
		NestedInheritance: a.Config.Diagram.NestedInheritance,
		SystemPrefix:      systemPrefix,
	}

	entities := make([]model.DiagramEntity, 0, len(decls.Types)+len(decls.Enums))
	for _, desc := range decls.Types {
		entity := model.BuildEntity(desc)
		model.InferRelationships(&entity, desc, inferOpts)
		entities = append(entities, entity)
	}
	for _, desc := range decls.Enums {
		entities = append(entities, model.BuildEnumEntity(desc))
	}

	assembled := model.Assemble(entities, model.AssembleOptions{
		ExcludeClasses:    a.Config.Diagram.ExcludeClasses,
		ExcludeInterfaces: a.Config.Diagram.ExcludeInterfaces,
		ExcludeEnums:      a.Config.Diagram.ExcludeEnums,
	})

	relationships := 0
	for _, entity := range assembled {
		relationships += len(entity.Relationships)
	}
	observability.DiagramEntities.Set(float64(len(assembled)))
	observability.DiagramRelationships.Set(float64(relationships))

	return assembled
}

// RenderAll renders every configured output format and writes the documents.
// It returns the written paths and the Mermaid document, which is the primary
// output and always produced.
func (a *App) RenderAll(entities []model.DiagramEntity) ([]string, string, error) {
	opts := render.Options{
		Title:            a.Config.Title,
		GroupByNamespace: a.Config.Diagram.GroupByNamespace,
	}

	type target struct {
		format   string
		path     string
		generate func([]model.DiagramEntity) (string, error)
	}

	targets := []target{
		{"mermaid", a.Config.Output.Mermaid, render.NewMermaidGenerator(opts).Generate},
		{"plantuml", a.Config.Output.PlantUML, render.NewPlantUMLGenerator(opts).Generate},
		{"dot", a.Config.Output.DOT, render.NewDOTGenerator(opts).Generate},
		{"tsv", a.Config.Output.TSV, render.NewTSVGenerator().Generate},
	}

	var written []string
	var mermaidDoc string
	for _, tgt := range targets {
		if tgt.path == "" {
			continue
		}
		doc, err := tgt.generate(entities)
		if err != nil {
			return written, mermaidDoc, err
		}
		if tgt.format == "mermaid" {
			mermaidDoc = doc
		}
		if err := util.WriteStringWithDirs(tgt.path, doc, 0o644); err != nil {
			return written, mermaidDoc, fmt.Errorf("write %s output: %w", tgt.format, err)
		}
		observability.RendersTotal.WithLabelValues(tgt.format).Inc()
		written = append(written, tgt.path)
	}

	return written, mermaidDoc, nil
}

// GenerateOnce runs the whole pipeline once and records the run.
func (a *App) GenerateOnce() (Update, error) {
	start := time.Now()

	decls, systemPrefix, err := a.CollectDeclarations()
	if err != nil {
		return Update{}, err
	}

	entities := a.BuildModel(decls, systemPrefix)

	written, mermaidDoc, err := a.RenderAll(entities)
	if err != nil {
		return Update{}, err
	}

	sum := sha256.Sum256([]byte(mermaidDoc))
	run := history.NewRun(a.Config.Title, entities, hex.EncodeToString(sum[:]), time.Since(start))

	update := Update{Entities: entities, Written: written, Run: run}
	if a.store != nil {
		if err := a.store.RecordRun(run); err != nil {
			slog.Warn("failed to record run", "error", err)
		}
		if trend, err := a.store.LatestTrend(); err == nil {
			update.Trend = trend
		}
	}

	slog.Info("diagram generated",
		"entities", run.Entities(),
		"relationships", run.Relationships(),
		"outputs", len(written),
		"duration", time.Since(start))

	a.notify(update)
	return update, nil
}

// Watch regenerates the diagram whenever watched sources change, until the
// context is cancelled. Regeneration is rate limited so editor save bursts
// do not thrash the output files.
func (a *App) Watch(ctx context.Context) error {
	if a.Config.Snapshot != "" {
		return fmt.Errorf("watch mode requires source paths, not a snapshot")
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.Parser.IsSupportedPath,
		func(paths []string) {
			if err := a.limiter.Wait(ctx, 1); err != nil {
				return
			}
			slog.Debug("sources changed", "count", len(paths))
			if _, err := a.GenerateOnce(); err != nil {
				slog.Error("regeneration failed", "error", err)
			}
		},
	)
	if err != nil {
		return err
	}

	if err := w.Watch(a.Config.SourcePaths); err != nil {
		_ = w.Close()
		return err
	}

	<-ctx.Done()
	return w.Close()
}
