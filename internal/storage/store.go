// Package storage keeps frame-rate telemetry sessions on disk, one
// directory per session holding metadata.json and samples.csv.
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

	"github.com/san-kum/cellview/internal/telemetry"
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

// Dir returns the base directory.
func (s *Store) Dir() string { return s.baseDir }

type SessionMetadata struct {
	ID          string           `json:"id"`
	Engine      string           `json:"engine"`
	Width       uint32           `json:"width"`
	Height      uint32           `json:"height"`
	Rule        string           `json:"rule,omitempty"`
	Seed        int64            `json:"seed"`
	Timestamp   time.Time        `json:"timestamp"`
	Frames      uint64           `json:"frames"`
	Generations uint64           `json:"generations"`
	Population  int              `json:"population"`
	FPS         telemetry.Report `json:"fps"`
}

var samplesHeader = []string{"time_ms", "interval_ms", "fps"}

// Save writes meta and samples under a new session ID and returns it. The ID
// and timestamp fields of meta are assigned here.
func (s *Store) Save(meta SessionMetadata, samples []telemetry.Sample) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Engine, now.UnixNano())
	meta.Timestamp = now
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
	if err := w.Write(samplesHeader); err != nil {
		return "", err
	}

	var start time.Time
	if len(samples) > 0 {
		start = samples[0].At.Add(-samples[0].Interval)
	}
	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(ms(sm.At.Sub(start)), 'f', 3, 64),
			strconv.FormatFloat(ms(sm.Interval), 'f', 3, 64),
			strconv.FormatFloat(sm.Rate, 'f', 3, 64),
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

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// List returns every readable session, newest first.
func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]SessionMetadata, 0)
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads a session's samples back. Times are relative to the
// start of the session; rows that do not parse are skipped.
func (s *Store) LoadSamples(id string) ([]telemetry.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "samples.csv"))
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

	if len(records) < 2 {
		return []telemetry.Sample{}, nil
	}

	samples := make([]telemetry.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(samplesHeader) {
			continue
		}

		vals := make([]float64, len(samplesHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		samples = append(samples, telemetry.Sample{
			At:       time.Time{}.Add(fromMS(vals[0])),
			Interval: fromMS(vals[1]),
			Rate:     vals[2],
		})
	}

	return samples, nil
}

func fromMS(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
