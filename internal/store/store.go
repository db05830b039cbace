package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

// Conversion is one saved batch of values converted between two units.
type Conversion struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Physical string    `json:"physical"`
	Inputs   []float64 `json:"inputs"`
	Outputs  []float64 `json:"outputs"`
}

type ConversionMetadata struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Physical  string    `json:"physical"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

func (s *Store) Save(conv *Conversion) (string, error) {
	id := fmt.Sprintf("conv_%d", time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := ConversionMetadata{
		ID:        id,
		From:      conv.From,
		To:        conv.To,
		Physical:  conv.Physical,
		Timestamp: time.Now(),
		Count:     len(conv.Inputs),
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "values.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"input", "output"}); err != nil {
		return "", err
	}

	for i, in := range conv.Inputs {
		out := 0.0
		if i < len(conv.Outputs) {
			out = conv.Outputs[i]
		}
		row := []string{
			strconv.FormatFloat(in, 'g', -1, 64),
			strconv.FormatFloat(out, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return id, nil
}

func (s *Store) List() ([]ConversionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ConversionMetadata{}, nil
		}
		return nil, err
	}

	metas := make([]ConversionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta ConversionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		metas = append(metas, meta)
	}

	return metas, nil
}

func (s *Store) Load(id string) (*ConversionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ConversionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadValues(id string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "values.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	inputs := make([]float64, 0, len(records)-1)
	outputs := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		in, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		out, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		inputs = append(inputs, in)
		outputs = append(outputs, out)
	}

	return inputs, outputs, nil
}
