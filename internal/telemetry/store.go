package telemetry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avelev/wormview/internal/engine"
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

type RunMetadata struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Timestamp  time.Time `json:"timestamp"`
	Frames     int       `json:"frames"`
	Duration   float64   `json:"duration"`
	PeakGlitch float64   `json:"peak_glitch"`
}

var frameHeader = []string{
	"elapsed", "delta", "percent", "phase", "glitch",
	"distortion", "throat", "dilation", "stability", "camera_z",
}

// Save writes one run directory and returns its ID.
func (s *Store) Save(label string, frames []engine.FrameStats) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Timestamp: time.Now(),
		Frames:    len(frames),
	}
	if n := len(frames); n > 0 {
		meta.Duration = frames[n-1].Elapsed - frames[0].Elapsed
	}
	for _, f := range frames {
		if f.Glitch > meta.PeakGlitch {
			meta.PeakGlitch = f.Glitch
		}
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(f.Delta, 'f', 6, 64),
			strconv.FormatFloat(f.Percent, 'f', 3, 64),
			f.Phase,
			strconv.FormatFloat(f.Glitch, 'f', 6, 64),
			strconv.FormatFloat(f.Distortion, 'f', 6, 64),
			strconv.FormatFloat(f.Throat, 'f', 6, 64),
			strconv.FormatFloat(f.Dilation, 'f', 6, 64),
			f.Stability,
			strconv.FormatFloat(f.CameraZ, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

// LoadFrames reads back a run's frame table.
func (s *Store) LoadFrames(runID string) ([]engine.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []engine.FrameStats{}, nil
	}

	frames := make([]engine.FrameStats, 0, len(records)-1)
	for _, rec := range records[1:] {
		f := engine.FrameStats{Phase: rec[3], Stability: rec[8]}
		f.Elapsed, _ = strconv.ParseFloat(rec[0], 64)
		f.Delta, _ = strconv.ParseFloat(rec[1], 64)
		f.Percent, _ = strconv.ParseFloat(rec[2], 64)
		f.Glitch, _ = strconv.ParseFloat(rec[4], 64)
		f.Distortion, _ = strconv.ParseFloat(rec[5], 64)
		f.Throat, _ = strconv.ParseFloat(rec[6], 64)
		f.Dilation, _ = strconv.ParseFloat(rec[7], 64)
		f.CameraZ, _ = strconv.ParseFloat(rec[9], 64)
		frames = append(frames, f)
	}
	return frames, nil
}

// ExportCSV streams a run's frame table verbatim.
func (s *Store) ExportCSV(runID string, out *os.File) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(out, file)
	return err
}

// ExportJSON writes a run (metadata plus frames) as one JSON document.
func (s *Store) ExportJSON(runID string, out *os.File) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	doc := struct {
		Meta   RunMetadata         `json:"meta"`
		Frames []engine.FrameStats `json:"frames"`
	}{*meta, frames}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
