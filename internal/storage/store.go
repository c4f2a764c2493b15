package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string              `json:"id"`
	Scenario    string              `json:"scenario"`
	Timestamp   time.Time           `json:"timestamp"`
	Seed        int64               `json:"seed"`
	Frames      int                 `json:"frames"`
	RecordEvery int                 `json:"record_every"`
	Balls       int                 `json:"balls"`
	Viewport    physics.Viewport    `json:"viewport"`
	Viewports   sim.ViewportHistory `json:"viewports,omitempty"`
	Params      physics.Params      `json:"params"`
	Metrics     map[string]float64  `json:"metrics"`
}

// FloorAt is the resting height for the sample at frame. Runs recorded
// without a viewport history use the final viewport.
func (m *RunMetadata) FloorAt(frame int) float64 {
	vp, ok := m.Viewports.At(frame)
	if !ok {
		vp = m.Viewport
	}
	return vp.Floor(m.Params.Radius)
}

// Save writes metadata.json and frames.csv into a new run directory and
// returns the run id.
func (s *Store) Save(scenario string, cfg sim.Config, result *sim.Result) (string, error) {
	now := s.now()
	runID, runDir, err := s.newRunDir(fmt.Sprintf("%s_%d", scenario, now.Unix()))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    scenario,
		Timestamp:   now,
		Seed:        cfg.Seed,
		Frames:      result.FramesRun,
		RecordEvery: cfg.RecordEvery,
		Balls:       result.Balls,
		Viewport:    result.Viewport,
		Viewports:   result.Viewports,
		Params:      cfg.Params,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(base string) (string, string, error) {
	id := base
	for n := 1; ; n++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSamplesCSV writes samples with a frame,ball,x,y,vx,vy header.
func WriteSamplesCSV(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "ball", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.Itoa(smp.Ball),
			strconv.FormatFloat(smp.X, 'f', 6, 64),
			strconv.FormatFloat(smp.Y, 'f', 6, 64),
			strconv.FormatFloat(smp.VX, 'f', 6, 64),
			strconv.FormatFloat(smp.VY, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all readable runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", metaPath, err)
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "frames.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}

		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		ball, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}

		var vals [4]float64
		ok := true
		for j := range vals {
			vals[j], err = strconv.ParseFloat(record[j+2], 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		samples = append(samples, sim.Sample{
			Frame: frame,
			Ball:  ball,
			X:     vals[0],
			Y:     vals[1],
			VX:    vals[2],
			VY:    vals[3],
		})
	}

	return samples, nil
}
