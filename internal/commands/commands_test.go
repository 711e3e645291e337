package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-dev/nexus/internal/config"
	"github.com/nexus-dev/nexus/internal/diaglog"
	"github.com/nexus-dev/nexus/internal/importer"
	"github.com/nexus-dev/nexus/internal/pipeline"
)

const fixture = "../../testdata/transactions.csv"

func runNexus(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), s)
	return m
}

func TestAnalyze_Terminal(t *testing.T) {
	out, _, err := runNexus(t, "analyze", fixture)
	require.NoError(t, err)

	assert.Contains(t, out, "Transaction Analytics Report")
	assert.Contains(t, out, "KES 202,000.00")
	assert.Contains(t, out, "5 of 11 records valid, 6 rejected")
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := runNexus(t, "analyze", fixture, "--json", "--top", "2")
	require.NoError(t, err)

	got := decodeJSON(t, out)
	assert.EqualValues(t, 5, got["valid"])
	assert.EqualValues(t, 6, got["invalid"])
	assert.Len(t, got["top_customers"], 2)
	kpi := got["kpi"].(map[string]any)
	assert.EqualValues(t, 1, kpi["anomaly_count"])
}

func TestAnalyze_ThresholdFlags(t *testing.T) {
	out, _, err := runNexus(t, "analyze", fixture, "--json", "--first-tx-threshold", "250000")
	require.NoError(t, err)
	kpi := decodeJSON(t, out)["kpi"].(map[string]any)
	assert.EqualValues(t, 0, kpi["anomaly_count"])

	_, _, err = runNexus(t, "analyze", fixture, "--std-dev-threshold", "-1")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestAnalyze_ConfigFile(t *testing.T) {
	cfg := config.Default()
	cfg.Validation.MinAge = 16
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))

	out, _, err := runNexus(t, "analyze", fixture, "--json", "--config", path)
	require.NoError(t, err)
	assert.EqualValues(t, 6, decodeJSON(t, out)["valid"])
}

func TestAnalyze_Directory(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), data, 0o644))

	tsv := strings.Join([]string{
		strings.Join([]string{"Customer ID", "Transaction Date", "Transaction Type", "Transaction Amount", "Account Balance", "Age", "Gender", "Account Type", "Branch ID", "Date Of Account Opening", "Account Balance After Transaction"}, "\t"),
		strings.Join([]string{"9", "2024-05-01", "Deposit", "10", "0", "33", "F", "Savings", "B4", "2020-01-01", "10"}, "\t"),
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte(tsv), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	out, _, err := runNexus(t, "analyze", dir, "--json")
	require.NoError(t, err)
	got := decodeJSON(t, out)
	assert.EqualValues(t, 12, got["records"])
	assert.EqualValues(t, 6, got["valid"])
}

func TestAnalyze_ExportAndDiagnostics(t *testing.T) {
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "valid.csv")
	diagPath := filepath.Join(dir, "logs", "diagnostics.csv")

	_, _, err := runNexus(t, "analyze", fixture, "--export-valid", exportPath, "--diagnostics", diagPath)
	require.NoError(t, err)

	f, err := os.Open(exportPath)
	require.NoError(t, err)
	defer f.Close()
	exported, err := importer.NewCSVParser().Parse(f)
	require.NoError(t, err)
	assert.Len(t, exported, 5)

	entries, err := diaglog.Read(diagPath)
	require.NoError(t, err)
	rejected := 0
	for _, e := range entries {
		if e.Stage == diaglog.StageValidate {
			rejected++
		}
	}
	assert.Equal(t, 6, rejected)
}

func TestDiagnostics(t *testing.T) {
	diagPath := filepath.Join(t.TempDir(), "diagnostics.csv")
	_, _, err := runNexus(t, "validate", fixture, "--diagnostics", diagPath)
	require.NoError(t, err)

	out, _, err := runNexus(t, "diagnostics", diagPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Diagnostics")
	assert.Contains(t, out, "balance-mismatch")

	out, _, err = runNexus(t, "diagnostics", diagPath, "--stage", "validate", "--json")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries), out)
	require.Len(t, entries, 6)
	for _, e := range entries {
		assert.Equal(t, "validate", e["stage"])
	}

	_, _, err = runNexus(t, "diagnostics", diagPath, "--stage", "load")
	assert.ErrorContains(t, err, "unknown stage")
}

func TestDiagnostics_MissingLog(t *testing.T) {
	out, _, err := runNexus(t, "diagnostics", filepath.Join(t.TempDir(), "none.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "No diagnostics recorded.")

	out, _, err = runNexus(t, "diagnostics", filepath.Join(t.TempDir(), "none.csv"), "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestFormatFlagHelp(t *testing.T) {
	out, _, err := runNexus(t, "analyze", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "input format: csv or tsv")
}

func TestAnalyze_Progress(t *testing.T) {
	out, _, err := runNexus(t, "analyze", fixture, "--progress", "--json")
	require.NoError(t, err)
	assert.EqualValues(t, 11, decodeJSON(t, out)["records"], "progress output stays off stdout")
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := runNexus(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	headerOnly := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("Customer ID,Age\n"), 0o644))
	_, _, err = runNexus(t, "analyze", headerOnly)
	assert.ErrorIs(t, err, pipeline.ErrNoRecords)

	_, _, err = runNexus(t, "analyze", fixture, "--format", "xlsx")
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)

	_, _, err = runNexus(t, "analyze")
	assert.Error(t, err)
}

func TestAnalyze_Logging(t *testing.T) {
	_, stderr, err := runNexus(t, "analyze", fixture, "--json", "--log-format", "json", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"loaded file"`)
	assert.Contains(t, stderr, `"run_id"`)

	_, _, err = runNexus(t, "analyze", fixture, "--log-level", "loud")
	assert.ErrorContains(t, err, "log level")
}

func TestValidate(t *testing.T) {
	out, _, err := runNexus(t, "validate", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "6 rejected")
	assert.NotContains(t, out, "Branch performance")

	_, _, err = runNexus(t, "validate", fixture, "--strict")
	assert.ErrorContains(t, err, "6 of 11 records failed validation")
}

func TestValidate_JSON(t *testing.T) {
	out, _, err := runNexus(t, "validate", fixture, "--json")
	require.NoError(t, err)
	got := decodeJSON(t, out)
	assert.EqualValues(t, 6, got["invalid"])
	require.Len(t, got["errors"], 6)
	assert.Equal(t, "invalid record (customer 2): missing or invalid transaction date", got["errors"].([]any)[0])
}

func TestProfile(t *testing.T) {
	out, _, err := runNexus(t, "profile", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Column Profile")
	assert.Contains(t, out, "11 rows")

	out, _, err = runNexus(t, "profile", fixture, "--json", "--top", "2")
	require.NoError(t, err)
	got := decodeJSON(t, out)
	assert.EqualValues(t, 11, got["rows"])
	cats := got["categorical"].([]any)
	require.NotEmpty(t, cats)
	assert.Len(t, cats[0].(map[string]any)["top"], 2)
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	out, _, err := runNexus(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, _, err = runNexus(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = runNexus(t, "init", dir, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runNexus(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
