package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dkurek/ofertownik/internal/format"
	"github.com/dkurek/ofertownik/internal/model"
)

// EstimateFileExt is the file extension for saved estimates.
const EstimateFileExt = ".kosztorys.json"

// DefaultEstimatesDir returns the default directory for saved estimates.
func DefaultEstimatesDir() string {
	return filepath.Join(DefaultConfigDir(), "kosztorysy")
}

// EstimateFileName derives a filesystem-safe file name from an estimate's
// title and ID.
func EstimateFileName(e model.Estimate) string {
	name := format.SafeFilename(e.Title, 100)
	if name == "" {
		name = "kosztorys"
	}
	return name + "_" + e.ID + EstimateFileExt
}

// SaveEstimate writes an estimate to the given path as indented JSON.
// It creates any missing parent directories automatically.
func SaveEstimate(path string, e model.Estimate) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEstimate reads an estimate from the given path.
func LoadEstimate(path string) (model.Estimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Estimate{}, err
	}
	var e model.Estimate
	if err := json.Unmarshal(data, &e); err != nil {
		return model.Estimate{}, err
	}
	if e.ID == "" {
		return model.Estimate{}, errors.New("estimate file has no id")
	}
	if e.Items == nil {
		e.Items = []model.CostItem{}
	}
	return e, nil
}

// ListEstimates returns the paths of all estimate files in the given
// directory, sorted by name. A missing directory yields an empty list.
func ListEstimates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), EstimateFileExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
