package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewCostItemComputesTotals(t *testing.T) {
	it := NewCostItem("Papa wierzchnia", 120.0, "m2", 35.0, 23, CategoryMaterial)

	if it.ID == "" {
		t.Error("expected a generated ID")
	}
	if math.Abs(it.TotalNet-4200.00) > 0.001 {
		t.Errorf("expected total net 4200.00, got %.2f", it.TotalNet)
	}
	if math.Abs(it.VATValue-966.00) > 0.001 {
		t.Errorf("expected vat value 966.00, got %.2f", it.VATValue)
	}
	if math.Abs(it.TotalGross-5166.00) > 0.001 {
		t.Errorf("expected total gross 5166.00, got %.2f", it.TotalGross)
	}
}

func TestRound2HalfUp(t *testing.T) {
	// 0.125 is exactly representable, so this is a true half-way case.
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("expected 0.125 to round up to 0.13, got %g", got)
	}
	if got := Round2(0.124); got != 0.12 {
		t.Errorf("expected 0.124 to round down to 0.12, got %g", got)
	}
	if got := Round2(1234.5678); got != 1234.57 {
		t.Errorf("expected 1234.57, got %g", got)
	}
}

func TestValidateRejectsNegativeQuantity(t *testing.T) {
	it := NewCostItem("Dachówka", -1, "m2", 45, 8, CategoryMaterial)
	err := it.Validate(DefaultVATRates)
	var invalid *InvalidItemError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidItemError, got %v", err)
	}
	if invalid.Field != "quantity" {
		t.Errorf("expected offending field quantity, got %s", invalid.Field)
	}
	if invalid.ItemName != "Dachówka" {
		t.Errorf("error should name the item, got %q", invalid.ItemName)
	}
}

func TestValidateRejectsUnknownVATRate(t *testing.T) {
	it := NewCostItem("Dachówka", 10, "m2", 45, 19, CategoryMaterial)
	err := it.Validate(DefaultVATRates)
	var invalid *InvalidItemError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidItemError, got %v", err)
	}
	if invalid.Field != "vat_rate" {
		t.Errorf("expected offending field vat_rate, got %s", invalid.Field)
	}
}

func TestValidateAcceptsZeroQuantity(t *testing.T) {
	it := NewCostItem("Rezerwa", 0, "szt.", 10, 23, CategoryService)
	if err := it.Validate(DefaultVATRates); err != nil {
		t.Errorf("zero quantity is valid, got error: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	price := 30.0
	it := NewCostItem("Membrana", 50, "m2", 0, 23, CategoryMaterial)
	it.PurchasePrice = &price

	cp := it.Clone()
	*cp.PurchasePrice = 99.0
	if *it.PurchasePrice != 30.0 {
		t.Error("mutating the clone's purchase price changed the original")
	}
}

func TestEstimateSnapshotClonesItems(t *testing.T) {
	e := NewEstimate("Dach gospodarczy")
	e.Items = append(e.Items, NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial))

	snap := e.Snapshot()
	snap.Items[0].Quantity = 999

	if e.Items[0].Quantity != 100 {
		t.Error("mutating the snapshot changed the estimate")
	}
	if math.Abs(snap.TotalGross-4860.00) > 0.001 {
		t.Errorf("expected snapshot total gross 4860.00, got %.2f", snap.TotalGross)
	}
}

func TestAppConfigApplyToEstimate(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultTransportPercent = 5.0
	cfg.DefaultGlobalMarginPercent = 15.0

	e := NewEstimate("Test")
	cfg.ApplyToEstimate(&e)

	if e.TransportPercent != 5.0 {
		t.Errorf("expected transport percent 5.0, got %g", e.TransportPercent)
	}
	if e.Margins.GlobalMarginPercent != 15.0 {
		t.Errorf("expected global margin 15.0, got %g", e.Margins.GlobalMarginPercent)
	}
}

func TestAddRecentFileDeduplicates(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentFile("a.json")
	cfg.AddRecentFile("b.json")
	cfg.AddRecentFile("a.json")

	if len(cfg.RecentFiles) != 2 {
		t.Fatalf("expected 2 recent files, got %d", len(cfg.RecentFiles))
	}
	if cfg.RecentFiles[0] != "a.json" || cfg.RecentFiles[1] != "b.json" {
		t.Errorf("unexpected order: %v", cfg.RecentFiles)
	}
}
