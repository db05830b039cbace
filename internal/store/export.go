package store

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Physical string    `json:"physical"`
	Count    int       `json:"count"`
	Inputs   []float64 `json:"inputs"`
	Outputs  []float64 `json:"outputs"`
}

func exportData(conv *Conversion) ExportData {
	return ExportData{
		From:     conv.From,
		To:       conv.To,
		Physical: conv.Physical,
		Count:    len(conv.Inputs),
		Inputs:   conv.Inputs,
		Outputs:  conv.Outputs,
	}
}

func ExportJSON(path string, conv *Conversion) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(conv))
}

func ExportJSONStdout(conv *Conversion) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(conv))
}
