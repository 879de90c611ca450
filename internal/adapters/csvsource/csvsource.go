package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"tour-lab/internal/adapters/distance"
	"tour-lab/internal/domain"
)

// Column names as they appear in the course files. "Lattitude" is the
// historical spelling; "Latitude" is accepted too.
var (
	nameColumns = []string{"name"}
	latColumns  = []string{"lattitude", "latitude", "lat"}
	lonColumns  = []string{"longitude", "lon", "lng"}
	keyColumns  = []string{"key"}
	distColumns = []string{"dist", "distance"}
)

// ReadLocations parses a locations table in file order.
func ReadLocations(r io.Reader) ([]domain.Location, error) {
	rows, cols, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}

	nameIdx, err := column(cols, nameColumns)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	latIdx, err := column(cols, latColumns)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	lonIdx, err := column(cols, lonColumns)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}

	out := make([]domain.Location, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			return nil, fmt.Errorf("read locations: line %d: empty name", line)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(row[latIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("read locations: line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[lonIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("read locations: line %d: longitude: %w", line, err)
		}

		out = append(out, domain.Location{Name: name, Coords: domain.Coordinates{Lat: lat, Lon: lon}})
	}

	return out, nil
}

// ReadDistances parses a "key,dist" table where key is "from:to".
func ReadDistances(r io.Reader) (map[domain.Leg]float64, error) {
	rows, cols, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read distances: %w", err)
	}

	keyIdx, err := column(cols, keyColumns)
	if err != nil {
		return nil, fmt.Errorf("read distances: %w", err)
	}
	distIdx, err := column(cols, distColumns)
	if err != nil {
		return nil, fmt.Errorf("read distances: %w", err)
	}

	out := make(map[domain.Leg]float64, len(rows))
	for i, row := range rows {
		line := i + 2
		leg, err := domain.ParseLegKey(row[keyIdx])
		if err != nil {
			return nil, fmt.Errorf("read distances: line %d: %w", line, err)
		}

		d, err := strconv.ParseFloat(strings.TrimSpace(row[distIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("read distances: line %d: dist: %w", line, err)
		}

		if prev, dup := out[leg]; dup && prev != d {
			return nil, fmt.Errorf("read distances: line %d: %q listed twice (%v, %v)", line, leg.Key(), prev, d)
		}
		out[leg] = d
	}

	return out, nil
}

// Load reads both files into an in-memory WorldRepository.
func Load(locationsPath, distancesPath string) (*distance.StaticRepository, error) {
	lf, err := os.Open(locationsPath)
	if err != nil {
		return nil, fmt.Errorf("load csv: open %q: %w", locationsPath, err)
	}
	defer lf.Close()

	locs, err := ReadLocations(lf)
	if err != nil {
		return nil, fmt.Errorf("load csv %q: %w", locationsPath, err)
	}

	df, err := os.Open(distancesPath)
	if err != nil {
		return nil, fmt.Errorf("load csv: open %q: %w", distancesPath, err)
	}
	defer df.Close()

	dists, err := ReadDistances(df)
	if err != nil {
		return nil, fmt.Errorf("load csv %q: %w", distancesPath, err)
	}

	return distance.NewStaticRepositoryFromMap(locs, dists), nil
}

func readTable(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("rows: %w", err)
	}
	return rows, cols, nil
}

func column(cols map[string]int, names []string) (int, error) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", names[0])
}
