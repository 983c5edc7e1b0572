package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrArtifactNotFound is returned when a requested artifact name does not
// resolve to a file in the artifact directory.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactKind discriminates how an artifact should be rendered by callers.
type ArtifactKind string

const (
	// KindData marks machine-readable JSON snapshots (daily reports).
	KindData ArtifactKind = "data"
	// KindDocument marks human-readable HTML documents (monthly reports).
	KindDocument ArtifactKind = "document"
)

// Artifact is one report file read back from the artifact store.
type Artifact struct {
	Name    string
	Kind    ArtifactKind
	Content []byte
}

// Materializer persists aggregation results as named files in a flat artifact
// directory. Writes are always full overwrites keyed by period, so repeating
// a generation for the same period is idempotent.
type Materializer struct {
	agg *Aggregator
	dir string
	now func() time.Time
}

// NewMaterializer creates the artifact directory if needed. now may be nil
// (wall clock); it stamps the generation time embedded in monthly documents.
func NewMaterializer(agg *Aggregator, dir string, now func() time.Time) (*Materializer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Materializer{agg: agg, dir: dir, now: now}, nil
}

// DailyArtifactName is the deterministic file name for a day's snapshot.
// Artifacts written under the older report_ prefix remain readable.
func DailyArtifactName(date time.Time) string {
	return "daily_" + date.Format("20060102") + ".json"
}

// MonthlyArtifactName is the deterministic file name for a month's document.
func MonthlyArtifactName(year int, month time.Month) string {
	return fmt.Sprintf("monthly_%04d_%02d.html", year, int(month))
}

// WriteDaily aggregates the given day and overwrites its JSON snapshot,
// returning the artifact name.
func (m *Materializer) WriteDaily(ctx context.Context, date time.Time) (string, error) {
	summary, err := m.agg.Day(ctx, date)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(summary, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode daily artifact: %w", err)
	}
	name := DailyArtifactName(date)
	if err := os.WriteFile(filepath.Join(m.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write daily artifact: %w", err)
	}
	return name, nil
}

// WriteMonthly aggregates the given month and overwrites its HTML document,
// returning the artifact name.
func (m *Materializer) WriteMonthly(ctx context.Context, year int, month time.Month) (string, error) {
	summary, err := m.agg.Month(ctx, year, month)
	if err != nil {
		return "", err
	}
	doc, err := renderMonthly(summary, m.now())
	if err != nil {
		return "", fmt.Errorf("render monthly artifact: %w", err)
	}
	name := MonthlyArtifactName(year, month)
	if err := os.WriteFile(filepath.Join(m.dir, name), doc, 0o644); err != nil {
		return "", fmt.Errorf("write monthly artifact: %w", err)
	}
	return name, nil
}

// EnsureMonthly backfills a missing monthly artifact (e.g. the scheduler
// never fired because the host was off). It reports whether a write happened;
// an already-present artifact is left untouched.
func (m *Materializer) EnsureMonthly(ctx context.Context, year int, month time.Month) (string, bool, error) {
	name := MonthlyArtifactName(year, month)
	_, err := os.Stat(filepath.Join(m.dir, name))
	if err == nil {
		return name, false, nil
	}
	if !os.IsNotExist(err) {
		return "", false, fmt.Errorf("stat monthly artifact: %w", err)
	}
	if _, err := m.WriteMonthly(ctx, year, month); err != nil {
		return "", false, err
	}
	return name, true, nil
}

// ListArtifacts returns all artifact names sorted reverse-lexicographically.
// With zero-padded date components in every name, that is most-recent-first
// within each prefix.
func (m *Materializer) ListArtifacts() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// ReadArtifact returns a stored artifact's raw content plus its kind, derived
// from the file extension. Names must be bare file names — anything that
// would escape the artifact directory is treated as not found.
func (m *Materializer) ReadArtifact(name string) (*Artifact, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, ErrArtifactNotFound
	}
	content, err := os.ReadFile(filepath.Join(m.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	kind := KindDocument
	if strings.EqualFold(filepath.Ext(name), ".json") {
		kind = KindData
	}
	return &Artifact{Name: name, Kind: kind, Content: content}, nil
}
