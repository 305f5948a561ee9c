package project

import (
	"path/filepath"
	"testing"

	"github.com/dkurek/ofertownik/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.Author = "Jan Kowalski"
	cfg.DefaultTransportPercent = 5.0
	cfg.RecentFiles = []string{"/tmp/dach.kosztorys.json", "/tmp/garaz.kosztorys.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.Author != "Jan Kowalski" {
		t.Errorf("expected Author=Jan Kowalski, got %s", loaded.Author)
	}
	if loaded.DefaultTransportPercent != 5.0 {
		t.Errorf("expected DefaultTransportPercent=5.0, got %f", loaded.DefaultTransportPercent)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultVATRate != defaults.DefaultVATRate {
		t.Errorf("expected default VAT rate %d, got %d", defaults.DefaultVATRate, cfg.DefaultVATRate)
	}
	if cfg.Currency != "zł" {
		t.Errorf("expected currency zł, got %s", cfg.Currency)
	}
}

func TestLoadAppConfigNormalizesNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.RecentFiles = nil
	cfg.AllowedVATRates = nil
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.RecentFiles == nil {
		t.Error("RecentFiles must not be nil after load")
	}
	if len(loaded.AllowedVATRates) != len(model.DefaultVATRates) {
		t.Errorf("expected default VAT rates, got %v", loaded.AllowedVATRates)
	}
}
