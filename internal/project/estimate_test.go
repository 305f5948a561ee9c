package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkurek/ofertownik/internal/model"
)

func sampleEstimate() model.Estimate {
	e := model.NewEstimate("Dach Kowalscy")
	e.Client = model.Client{Name: "Jan Kowalski", City: "Warszawa", NIP: "7740001454"}
	e.Items = []model.CostItem{
		model.NewCostItem("Blachodachówka", 120, "m2", 37.5, 23, model.CategoryMaterial),
		model.NewCostItem("Montaż pokrycia", 120, "m2", 25.0, 8, model.CategoryService),
	}
	return e
}

func TestSaveAndLoadEstimate(t *testing.T) {
	dir := t.TempDir()
	e := sampleEstimate()
	path := filepath.Join(dir, EstimateFileName(e))

	if err := SaveEstimate(path, e); err != nil {
		t.Fatalf("SaveEstimate failed: %v", err)
	}

	loaded, err := LoadEstimate(path)
	if err != nil {
		t.Fatalf("LoadEstimate failed: %v", err)
	}
	if loaded.ID != e.ID {
		t.Errorf("expected ID %s, got %s", e.ID, loaded.ID)
	}
	if loaded.Title != "Dach Kowalscy" {
		t.Errorf("expected title preserved, got %q", loaded.Title)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Items[0].TotalNet != e.Items[0].TotalNet {
		t.Errorf("expected item totals preserved, got %g", loaded.Items[0].TotalNet)
	}
	if loaded.Client.NIP != "7740001454" {
		t.Errorf("expected client NIP preserved, got %q", loaded.Client.NIP)
	}
}

func TestEstimateFileName(t *testing.T) {
	e := sampleEstimate()
	name := EstimateFileName(e)
	if !strings.HasSuffix(name, "_"+e.ID+EstimateFileExt) {
		t.Errorf("expected ID and extension suffix, got %q", name)
	}
	if strings.Contains(name, " ") {
		t.Errorf("file name must not contain spaces: %q", name)
	}

	e.Title = ""
	if got := EstimateFileName(e); !strings.HasPrefix(got, "kosztorys_") {
		t.Errorf("expected fallback name, got %q", got)
	}
}

func TestLoadEstimateRejectsMissingID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.kosztorys.json")
	e := model.Estimate{Title: "bez id"}
	if err := SaveEstimate(path, e); err != nil {
		t.Fatalf("SaveEstimate failed: %v", err)
	}
	if _, err := LoadEstimate(path); err == nil {
		t.Error("expected error for estimate without id")
	}
}

func TestListEstimates(t *testing.T) {
	dir := t.TempDir()

	a := sampleEstimate()
	b := model.NewEstimate("Garaż")
	if err := SaveEstimate(filepath.Join(dir, EstimateFileName(a)), a); err != nil {
		t.Fatalf("SaveEstimate failed: %v", err)
	}
	if err := SaveEstimate(filepath.Join(dir, EstimateFileName(b)), b); err != nil {
		t.Fatalf("SaveEstimate failed: %v", err)
	}
	if err := SaveAppConfig(filepath.Join(dir, "config.json"), model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	paths, err := ListEstimates(dir)
	if err != nil {
		t.Fatalf("ListEstimates failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 estimate files, got %d: %v", len(paths), paths)
	}

	empty, err := ListEstimates(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("missing directory must not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list, got %v", empty)
	}
}
