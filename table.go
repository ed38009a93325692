package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/canbuoy/thor/parmap"
)

type line struct {
	no   int
	text string
}

// readTable parses a whitespace separated numeric table. Blank lines and
// lines starting with '#' are skipped. Lines are parsed on parmap workers.
func readTable(ctx context.Context, path string, opts []parmap.Option) ([][]float64, error) {
	if path == "" {
		return nil, fmt.Errorf("no table given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can not read table: %w", err)
	}

	var lines []line
	for i, text := range strings.Split(string(data), "\n") {
		text = strings.TrimSpace(text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, line{no: i + 1, text: text})
	}

	return parmap.Map(ctx, func(_ context.Context, l line) ([]float64, error) {
		fields := strings.Fields(l.text)
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %d: %w", path, l.no, j+1, err)
			}
			row[j] = v
		}
		return row, nil
	}, lines, opts...)
}

func formatRow(row []float64) string {
	strs := make([]string, len(row))
	for i, v := range row {
		strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(strs, " ")
}

// tableShot is a shot read from q, phi, intensity columns.
type tableShot struct {
	grid        [][2]float64
	intensities []float64
}

func newTableShot(rows [][]float64) (*tableShot, error) {
	s := &tableShot{
		grid:        make([][2]float64, len(rows)),
		intensities: make([]float64, len(rows)),
	}
	for i, r := range rows {
		if len(r) != 3 {
			return nil, fmt.Errorf("shot row %d: want 3 columns (q phi intensity), got %d", i+1, len(r))
		}
		s.grid[i] = [2]float64{r[0], r[1]}
		s.intensities[i] = r[2]
	}
	return s, nil
}

func (s *tableShot) PolarGrid() [][2]float64      { return s.grid }
func (s *tableShot) PolarIntensities() []float64 { return s.intensities }
