package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func sample() *Conversion {
	return &Conversion{
		From:     "km",
		To:       "m",
		Physical: "length",
		Inputs:   []float64{1, 2.5},
		Outputs:  []float64{1000, 2500},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := st.Save(sample())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Error("expected non-empty id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.From != "km" || meta.To != "m" {
		t.Errorf("expected km -> m, got %s -> %s", meta.From, meta.To)
	}
	if meta.Physical != "length" {
		t.Errorf("expected physical 'length', got %q", meta.Physical)
	}
	if meta.Count != 2 {
		t.Errorf("expected count 2, got %d", meta.Count)
	}

	inputs, outputs, err := st.LoadValues(id)
	if err != nil {
		t.Fatalf("load values failed: %v", err)
	}
	if len(inputs) != 2 || len(outputs) != 2 {
		t.Fatalf("expected 2 rows, got %d/%d", len(inputs), len(outputs))
	}
	if inputs[1] != 2.5 || outputs[1] != 2500 {
		t.Errorf("row 1 = (%g, %g), want (2.5, 2500)", inputs[1], outputs[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	metas, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("expected 0 conversions, got %d", len(metas))
	}

	if _, err := st.Save(sample()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	metas, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(metas) != 1 {
		t.Errorf("expected 1 conversion, got %d", len(metas))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	id, err := st.Save(sample())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	dir := filepath.Join(tmpDir, id)

	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, "values.csv")); os.IsNotExist(err) {
		t.Error("values.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := ExportJSON(path, sample()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.From != "km" || got.Count != 2 {
		t.Errorf("unexpected export: %+v", got)
	}
	if got.Outputs[0] != 1000 {
		t.Errorf("output[0] = %g, want 1000", got.Outputs[0])
	}
}
