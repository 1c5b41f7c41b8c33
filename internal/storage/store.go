package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one executed script.
type RunMetadata struct {
	ID        string    `json:"id"`
	Script    string    `json:"script"`
	Tokens    []string  `json:"tokens"`
	Timestamp time.Time `json:"timestamp"`
	Size      int       `json:"size"`
	Duration  float64   `json:"duration"`
	Ticks     int       `json:"ticks"`
	Commits   int       `json:"commits"`
	Elapsed   float64   `json:"elapsed"`
	Initial   []string  `json:"initial"`
	Final     []string  `json:"final"`
	Error     string    `json:"error,omitempty"`
}

// Save writes metadata.json and samples.csv under a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	if meta.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		meta.ID = id.String()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"tick", "time", "token", "progress", "eased", "committed"}); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Tick),
			strconv.FormatFloat(sm.Time, 'f', 6, 64),
			sm.Token,
			strconv.FormatFloat(sm.Progress, 'f', 6, 64),
			strconv.FormatFloat(sm.Eased, 'f', 6, 64),
			strconv.FormatBool(sm.Committed),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
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

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
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

	samples := make([]Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}
		var sm Sample
		if sm.Tick, err = strconv.Atoi(record[0]); err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+1, err)
		}
		if sm.Time, err = strconv.ParseFloat(record[1], 64); err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+1, err)
		}
		sm.Token = record[2]
		if sm.Progress, err = strconv.ParseFloat(record[3], 64); err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+1, err)
		}
		if sm.Eased, err = strconv.ParseFloat(record[4], 64); err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+1, err)
		}
		sm.Committed, _ = strconv.ParseBool(record[5])
		samples = append(samples, sm)
	}

	return samples, nil
}
