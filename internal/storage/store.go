package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonduan/solow/internal/dynamics"
)

// Store keeps one directory per run under baseDir: metadata.json with
// the calibration and solve outcome, plus path.csv when a trajectory
// was simulated.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Kind          string             `json:"kind"`
	Family        string             `json:"family"`
	Timestamp     time.Time          `json:"timestamp"`
	Params        map[string]float64 `json:"params"`
	Method        string             `json:"method"`
	Lower         float64            `json:"lower"`
	Upper         float64            `json:"upper"`
	Tolerance     float64            `json:"tolerance"`
	MaxIterations int                `json:"max_iterations"`
	KStar         float64            `json:"k_star"`
	YStar         float64            `json:"y_star"`
	Iterations    int                `json:"iterations"`
	Converged     bool               `json:"converged"`
}

// Save assigns the run its ID and timestamp and writes metadata.json.
func (s *Store) Save(meta RunMetadata) (string, error) {
	family := meta.Family
	if family == "" {
		family = "custom"
	}
	runID := fmt.Sprintf("%s_%s", family, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now().UTC()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

// SavePath writes path.csv for a previously saved run.
func (s *Store) SavePath(runID string, path *dynamics.Path) error {
	csvFile, err := os.Create(filepath.Join(s.baseDir, runID, "path.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()
	return ExportCSV(csvFile, path)
}

// List returns metadata for every run in the store, oldest first.
// Entries that are not run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPath reads path.csv back into a trajectory. Rows that do not
// parse are skipped.
func (s *Store) LoadPath(runID string) (*dynamics.Path, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "path.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	path := &dynamics.Path{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}
		cols, ok := parseRow(record)
		if !ok {
			continue
		}
		path.T = append(path.T, cols[0])
		path.K = append(path.K, cols[1])
		path.Y = append(path.Y, cols[2])
		path.C = append(path.C, cols[3])
		path.Capital = append(path.Capital, cols[4])
		path.Output = append(path.Output, cols[5])
	}
	return path, nil
}

func parseRow(record []string) ([6]float64, bool) {
	var cols [6]float64
	for j := 0; j < 6; j++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[j]), 64)
		if err != nil {
			return cols, false
		}
		cols[j] = v
	}
	return cols, true
}
