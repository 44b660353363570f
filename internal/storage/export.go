package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cellview/internal/telemetry"
)

// ExportData is the single-document JSON form of a session.
type ExportData struct {
	Session SessionMetadata `json:"session"`
	Rates   []float64       `json:"rates"`
}

func NewExport(meta SessionMetadata, samples []telemetry.Sample) ExportData {
	rates := make([]float64, len(samples))
	for i, s := range samples {
		rates[i] = s.Rate
	}
	return ExportData{Session: meta, Rates: rates}
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportStdout writes data to standard output.
func ExportStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}
