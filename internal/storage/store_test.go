package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonduan/solow/internal/dynamics"
)

func sampleMeta() RunMetadata {
	return RunMetadata{
		Kind:   "solve",
		Family: "ces",
		Params: map[string]float64{
			"g": 0.02, "n": 0.03, "s": 0.15, "delta": 0.05,
			"A0": 1.0, "L0": 1.0, "alpha": 0.33, "sigma": 0.95,
		},
		Method:     "brent",
		Lower:      1e-6,
		Upper:      1e6,
		KStar:      1.82583173,
		YStar:      1.21722115,
		Iterations: 12,
		Converged:  true,
	}
}

func samplePath() *dynamics.Path {
	return &dynamics.Path{
		T:       []float64{0, 0.5, 1},
		K:       []float64{1, 1.1, 1.19},
		Y:       []float64{1, 1.03, 1.06},
		C:       []float64{0.85, 0.876, 0.901},
		Capital: []float64{1, 1.128, 1.251},
		Output:  []float64{1, 1.056, 1.114},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "ces_") {
		t.Errorf("run id %q should carry the family prefix", runID)
	}
	if len(runID) != len("ces_")+8 {
		t.Errorf("run id %q should end in a short uuid", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %q, got %q", runID, meta.ID)
	}
	if meta.Family != "ces" {
		t.Errorf("expected family ces, got %q", meta.Family)
	}
	if meta.Params["sigma"] != 0.95 {
		t.Errorf("expected sigma 0.95, got %f", meta.Params["sigma"])
	}
	if math.Abs(meta.KStar-1.82583173) > 1e-9 {
		t.Errorf("expected k* 1.82583173, got %f", meta.KStar)
	}
	if !meta.Converged {
		t.Error("expected converged run")
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected save to stamp the run")
	}
}

func TestStoreCustomFamilyID(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := sampleMeta()
	meta.Family = ""
	runID, err := st.Save(meta)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "custom_") {
		t.Errorf("run id %q should fall back to the custom prefix", runID)
	}
}

func TestStoreSavePathLoadPath(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleMeta())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	want := samplePath()
	if err := st.SavePath(runID, want); err != nil {
		t.Fatalf("save path failed: %v", err)
	}

	got, err := st.LoadPath(runID)
	if err != nil {
		t.Fatalf("load path failed: %v", err)
	}
	if got.Len() != want.Len() {
		t.Fatalf("expected %d samples, got %d", want.Len(), got.Len())
	}
	for i := 0; i < want.Len(); i++ {
		if math.Abs(got.K[i]-want.K[i]) > 1e-6 {
			t.Errorf("sample %d: k = %f, expected %f", i, got.K[i], want.K[i])
		}
		if math.Abs(got.Output[i]-want.Output[i]) > 1e-6 {
			t.Errorf("sample %d: output = %f, expected %f", i, got.Output[i], want.Output[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, err := st.Save(sampleMeta())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(sampleMeta())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	seen := map[string]bool{runs[0].ID: true, runs[1].ID: true}
	if !seen[first] || !seen[second] {
		t.Errorf("list missing saved runs: %v", seen)
	}
}

func TestStoreListToleratesForeignFiles(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := st.Save(sampleMeta()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "empty_dir"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "bad_run"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad_run", "metadata.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("cobb_douglas_deadbeef"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadPath("cobb_douglas_deadbeef"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestExportJSON(t *testing.T) {
	meta := sampleMeta()
	meta.ID = "ces_deadbeef"

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, samplePath()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.ID != "ces_deadbeef" {
		t.Errorf("expected id ces_deadbeef, got %q", data.ID)
	}
	if data.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", data.Steps)
	}
	if len(data.K) != 3 || data.K[2] != 1.19 {
		t.Errorf("trajectory not exported: %v", data.K)
	}
}

func TestExportJSONWithoutPath(t *testing.T) {
	meta := sampleMeta()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.Contains(buf.String(), "\"t\":") {
		t.Error("solve-only export should omit trajectory fields")
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, samplePath()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,k,y,c,capital,output" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0.000000,1.000000,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}
