package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballpit/internal/sim"
)

type ExportData struct {
	Run     RunMetadata  `json:"run"`
	Samples []sampleJSON `json:"samples"`
}

type sampleJSON struct {
	Frame int     `json:"frame"`
	Ball  int     `json:"ball"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		Run:     *meta,
		Samples: make([]sampleJSON, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = sampleJSON(s)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
