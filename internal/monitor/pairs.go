package monitor

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Pair names two instruments believed to be co-integrated. Correlation
// is carried through from the upstream analysis but never consulted by
// the monitor itself.
type Pair struct {
	Asset1      string
	Asset2      string
	Correlation float64
}

// Label returns the canonical "asset1/asset2" key for the pair.
func (p Pair) Label() string { return p.Asset1 + "/" + p.Asset2 }

// LoadPairsCSV reads asset1,asset2,correlation rows. A header row is
// detected by a non-numeric correlation field and skipped. The
// correlation column is optional.
func LoadPairsCSV(path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pairs csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pairs csv: %w", err)
	}

	var pairs []Pair
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("pairs csv row %d: need at least asset1,asset2", i+1)
		}
		asset1 := strings.TrimSpace(record[0])
		asset2 := strings.TrimSpace(record[1])
		if asset1 == "" || asset2 == "" {
			return nil, fmt.Errorf("pairs csv row %d: empty asset name", i+1)
		}
		if i == 0 && strings.EqualFold(asset1, "asset1") {
			// header row
			continue
		}

		corr := 0.0
		if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
			corr, err = strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
			if err != nil {
				if i == 0 {
					// header row with unconventional names
					continue
				}
				return nil, fmt.Errorf("pairs csv row %d: bad correlation: %w", i+1, err)
			}
		}
		pairs = append(pairs, Pair{Asset1: asset1, Asset2: asset2, Correlation: corr})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("pairs csv %s contains no pairs", path)
	}
	return pairs, nil
}
