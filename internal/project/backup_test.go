package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkurek/ofertownik/internal/gutter"
	"github.com/dkurek/ofertownik/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup", "ofertownik_backup.json")

	cfg := model.DefaultAppConfig()
	cfg.Author = "Firma Dachy"

	backup := BackupData{
		Config:    cfg,
		Clients:   []model.Client{{Name: "Jan Kowalski", NIP: "7740001454"}},
		Estimates: []model.Estimate{sampleEstimate()},
		Gutters:   GutterCatalog{PredefinedSystems: gutter.DefaultCatalog()},
	}
	if err := ExportAllData(path, backup); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	imported, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if imported.Version == "" || imported.CreatedAt == "" {
		t.Error("expected version and timestamp in backup")
	}
	if imported.Config.Author != "Firma Dachy" {
		t.Errorf("expected config to round trip, got author %q", imported.Config.Author)
	}
	if len(imported.Clients) != 1 || len(imported.Estimates) != 1 {
		t.Errorf("expected clients and estimates to round trip, got %d/%d", len(imported.Clients), len(imported.Estimates))
	}
	if len(imported.Gutters.PredefinedSystems) == 0 {
		t.Error("expected gutter catalog to round trip")
	}
}

func TestImportAllDataRejectsMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for backup without version")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveAndLoadClients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")

	clients := []model.Client{{Name: "Jan Kowalski", NIP: "7740001454"}}
	clients = AddClient(clients, model.Client{Name: "Anna Nowak", City: "Kraków"})
	if err := SaveClients(path, clients); err != nil {
		t.Fatalf("SaveClients failed: %v", err)
	}

	loaded, err := LoadClients(path)
	if err != nil {
		t.Fatalf("LoadClients failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(loaded))
	}

	// Same name and NIP replaces the entry.
	loaded = AddClient(loaded, model.Client{Name: "Jan Kowalski", NIP: "7740001454", City: "Płock"})
	if len(loaded) != 2 {
		t.Errorf("expected replacement, got %d clients", len(loaded))
	}
	if loaded[0].City != "Płock" {
		t.Errorf("expected updated city, got %q", loaded[0].City)
	}

	empty, err := LoadClients(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty registry, got %v", empty)
	}
}
