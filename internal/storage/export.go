package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/jonduan/solow/internal/dynamics"
)

type ExportData struct {
	RunMetadata
	Steps int       `json:"steps"`
	T     []float64 `json:"t,omitempty"`
	K     []float64 `json:"k,omitempty"`
	Y     []float64 `json:"y,omitempty"`
	C     []float64 `json:"c,omitempty"`
}

// ExportJSON writes a run and its trajectory, when present, as one
// indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, path *dynamics.Path) error {
	data := ExportData{RunMetadata: *meta}
	if path != nil {
		data.Steps = path.Len()
		data.T = path.T
		data.K = path.K
		data.Y = path.Y
		data.C = path.C
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a trajectory in the same column layout SavePath uses.
func ExportCSV(w io.Writer, path *dynamics.Path) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "k", "y", "c", "capital", "output"}); err != nil {
		return err
	}
	for i := 0; i < path.Len(); i++ {
		row := []string{
			strconv.FormatFloat(path.T[i], 'f', 6, 64),
			strconv.FormatFloat(path.K[i], 'f', 6, 64),
			strconv.FormatFloat(path.Y[i], 'f', 6, 64),
			strconv.FormatFloat(path.C[i], 'f', 6, 64),
			strconv.FormatFloat(path.Capital[i], 'f', 6, 64),
			strconv.FormatFloat(path.Output[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
