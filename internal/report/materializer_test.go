package report_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMaterializer(t *testing.T, ledger *stubLedger, now func() time.Time) (*report.Materializer, string) {
	t.Helper()
	dir := t.TempDir()
	mat, err := report.NewMaterializer(report.NewAggregator(ledger, now), dir, now)
	require.NoError(t, err)
	return mat, dir
}

func TestWriteDaily_RoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 14, 5, 0, 0, time.Local)
	ledger := &stubLedger{sales: []model.Sale{mkSale("Chocolate Bar", 3, 10, 6, at)}}
	mat, dir := newTestMaterializer(t, ledger, nil)

	name, err := mat.WriteDaily(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "daily_20240301.json", name)

	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	var parsed report.DailySummary
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "2024-03-01", parsed.Date)
	assert.Equal(t, 3, parsed.HourlyChart[14])
	assert.Equal(t, 12.0, parsed.Summary.TotalProfit)
	assert.Equal(t, 30.0, parsed.Summary.TotalRevenue)
	assert.Equal(t, 3, parsed.Summary.TotalSalesCount)
}

func TestWriteDaily_OverwritesPreviousSnapshot(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	ledger := &stubLedger{sales: []model.Sale{mkSale("Coffee", 1, 5, 3, at)}}
	mat, dir := newTestMaterializer(t, ledger, nil)

	_, err := mat.WriteDaily(context.Background(), at)
	require.NoError(t, err)

	// Second write for the same day replaces the file wholesale.
	ledger.sales = append(ledger.sales, mkSale("Coffee", 2, 5, 3, at.Add(time.Hour)))
	name, err := mat.WriteDaily(context.Background(), at)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	var parsed report.DailySummary
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, 3, parsed.Summary.TotalSalesCount)
}

func TestWriteMonthly_RendersDocument(t *testing.T) {
	at := time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local)
	gen := time.Date(2024, 3, 1, 0, 0, 5, 0, time.Local)
	ledger := &stubLedger{sales: []model.Sale{mkSale("Gold Watch", 2, 1500, 900, at)}}
	mat, _ := newTestMaterializer(t, ledger, frozen(gen))

	name, err := mat.WriteMonthly(context.Background(), 2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, "monthly_2024_02.html", name)

	art, err := mat.ReadArtifact(name)
	require.NoError(t, err)
	html := string(art.Content)
	assert.Contains(t, html, "2024-02")
	assert.Contains(t, html, "Gold Watch")
	assert.Contains(t, html, "1,200") // profit 600 × 2, grouped
	assert.Contains(t, html, "2024-03-01 00:00:05")
}

func TestEnsureMonthly_WritesOnlyWhenMissing(t *testing.T) {
	ledger := &stubLedger{}
	mat, dir := newTestMaterializer(t, ledger, nil)

	name, wrote, err := mat.EnsureMonthly(context.Background(), 2024, time.January)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, "monthly_2024_01.html", name)

	// Existing artifact stays untouched.
	stamp := []byte("sentinel")
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), stamp, 0o644))

	_, wrote, err = mat.EnsureMonthly(context.Background(), 2024, time.January)
	require.NoError(t, err)
	assert.False(t, wrote)

	raw, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, stamp, raw)
}

func TestListArtifacts_ReverseLexicographic(t *testing.T) {
	mat, dir := newTestMaterializer(t, &stubLedger{}, nil)
	for _, n := range []string{"daily_20240301.json", "daily_20240302.json", "monthly_2024_02.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}

	names, err := mat.ListArtifacts()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"monthly_2024_02.html",
		"daily_20240302.json",
		"daily_20240301.json",
	}, names)
}

func TestReadArtifact_KindFromExtension(t *testing.T) {
	mat, dir := newTestMaterializer(t, &stubLedger{}, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily_20240301.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "monthly_2024_02.html"), []byte("<html>"), 0o644))

	art, err := mat.ReadArtifact("daily_20240301.json")
	require.NoError(t, err)
	assert.Equal(t, report.KindData, art.Kind)

	art, err = mat.ReadArtifact("monthly_2024_02.html")
	require.NoError(t, err)
	assert.Equal(t, report.KindDocument, art.Kind)
}

func TestReadArtifact_MissingAndEscaping(t *testing.T) {
	mat, _ := newTestMaterializer(t, &stubLedger{}, nil)

	_, err := mat.ReadArtifact("daily_19990101.json")
	assert.ErrorIs(t, err, report.ErrArtifactNotFound)

	// Path traversal attempts read as not found, never as file access.
	_, err = mat.ReadArtifact("../secrets.txt")
	assert.ErrorIs(t, err, report.ErrArtifactNotFound)

	_, err = mat.ReadArtifact("")
	assert.ErrorIs(t, err, report.ErrArtifactNotFound)
}
