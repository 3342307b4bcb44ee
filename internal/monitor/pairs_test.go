package monitor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadPairsCSVWithHeader(t *testing.T) {
	path := writeCSV(t, "asset1,asset2,correlation\nKO,PEP,0.91\nXOM,CVX,0.88\n")

	pairs, err := LoadPairsCSV(path)
	if err != nil {
		t.Fatalf("LoadPairsCSV returned error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Asset1 != "KO" || pairs[0].Asset2 != "PEP" || pairs[0].Correlation != 0.91 {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[0].Label() != "KO/PEP" {
		t.Fatalf("unexpected label: %s", pairs[0].Label())
	}
}

func TestLoadPairsCSVWithoutHeader(t *testing.T) {
	path := writeCSV(t, "KO,PEP,0.91\n")

	pairs, err := LoadPairsCSV(path)
	if err != nil {
		t.Fatalf("LoadPairsCSV returned error: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Asset1 != "KO" {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestLoadPairsCSVWithoutCorrelation(t *testing.T) {
	path := writeCSV(t, "KO,PEP\n")

	pairs, err := LoadPairsCSV(path)
	if err != nil {
		t.Fatalf("LoadPairsCSV returned error: %v", err)
	}
	if pairs[0].Correlation != 0 {
		t.Fatalf("missing correlation should default to 0, got %v", pairs[0].Correlation)
	}
}

func TestLoadPairsCSVRejectsBadRows(t *testing.T) {
	if _, err := LoadPairsCSV(writeCSV(t, "KO\n")); err == nil {
		t.Fatalf("expected error for single-column row")
	}
	if _, err := LoadPairsCSV(writeCSV(t, "asset1,asset2,correlation\n")); err == nil {
		t.Fatalf("expected error for header-only file")
	}
	if _, err := LoadPairsCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
