package model

import (
	"errors"
	"fmt"
	"testing"
)

func snapshotWith(items ...CostItem) Snapshot {
	var gross float64
	for _, it := range items {
		gross += it.TotalGross
	}
	return Snapshot{Items: CloneItems(items), TotalGross: Round2(gross)}
}

func TestCreateVersionNumbersSequentially(t *testing.T) {
	m := NewVersionManager("tester")
	for i := 1; i <= 5; i++ {
		v := m.CreateVersion("est-1", snapshotWith(), "")
		if v.VersionNumber != i {
			t.Fatalf("expected version number %d, got %d", i, v.VersionNumber)
		}
	}

	hist, ok := m.GetHistory("est-1")
	if !ok {
		t.Fatal("expected history to exist")
	}
	if len(hist.Versions) != 5 {
		t.Fatalf("expected 5 versions, got %d", len(hist.Versions))
	}
}

func TestRetentionCapEvictsOldestFIFO(t *testing.T) {
	m := NewVersionManager("tester")
	for i := 0; i < MaxHistoryEntries+1; i++ {
		m.CreateVersion("est-1", snapshotWith(), fmt.Sprintf("v%d", i+1))
	}

	hist, _ := m.GetHistory("est-1")
	if len(hist.Versions) != MaxHistoryEntries {
		t.Fatalf("expected %d versions after eviction, got %d", MaxHistoryEntries, len(hist.Versions))
	}
	// Version 1 is gone, numbers 2..51 remain unrenumbered.
	if hist.Versions[0].VersionNumber != 2 {
		t.Errorf("expected oldest remaining version 2, got %d", hist.Versions[0].VersionNumber)
	}
	if hist.Versions[len(hist.Versions)-1].VersionNumber != MaxHistoryEntries+1 {
		t.Errorf("expected newest version %d, got %d", MaxHistoryEntries+1, hist.Versions[len(hist.Versions)-1].VersionNumber)
	}
}

func TestFirstVersionDescription(t *testing.T) {
	m := NewVersionManager("tester")
	v := m.CreateVersion("est-1", snapshotWith(), "")
	if v.Description != "Wersja początkowa" {
		t.Errorf("unexpected initial description %q", v.Description)
	}
}

func TestAutoDetectedChanges(t *testing.T) {
	m := NewVersionManager("tester")
	tile := NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial)
	m.CreateVersion("est-1", snapshotWith(tile), "")

	tile.Quantity = 120
	gutter := NewCostItem("Rynna", 20, "mb", 25, 8, CategoryMaterial)
	v2 := m.CreateVersion("est-1", snapshotWith(tile, gutter), "")

	if len(v2.Changes) != 2 {
		t.Fatalf("expected 2 change lines, got %d: %v", len(v2.Changes), v2.Changes)
	}
	if v2.Description != "Aktualizacja (2 zmian)" {
		t.Errorf("unexpected auto description %q", v2.Description)
	}
}

func TestRestoreVersionReturnsClone(t *testing.T) {
	m := NewVersionManager("tester")
	tile := NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial)
	m.CreateVersion("est-1", snapshotWith(tile), "")

	snap, err := m.RestoreVersion("est-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap.Items[0].Quantity = 1

	again, err := m.RestoreVersion("est-1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Items[0].Quantity != 100 {
		t.Error("mutating a restored snapshot changed the stored history")
	}
}

func TestRestoreMissingVersion(t *testing.T) {
	m := NewVersionManager("tester")
	m.CreateVersion("est-1", snapshotWith(), "")

	_, err := m.RestoreVersion("est-1", 7)
	var notFound *VersionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VersionNotFoundError, got %v", err)
	}
	if notFound.VersionNumber != 7 {
		t.Errorf("error should carry the requested version, got %d", notFound.VersionNumber)
	}
}

func TestCompareVersionsDiffSymmetry(t *testing.T) {
	m := NewVersionManager("tester")
	tile := NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial)
	gutter := NewCostItem("Rynna", 20, "mb", 25, 8, CategoryMaterial)
	screws := NewCostItem("Wkręty", 2, "op.", 35, 23, CategoryMaterial)

	m.CreateVersion("est-1", snapshotWith(tile, gutter), "")
	m.CreateVersion("est-1", snapshotWith(tile, screws), "")

	forward, err := m.CompareVersions("est-1", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := m.CompareVersions("est-1", 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(forward.Added) != len(backward.Removed) {
		t.Errorf("forward added (%d) should mirror backward removed (%d)", len(forward.Added), len(backward.Removed))
	}
	if len(forward.Removed) != len(backward.Added) {
		t.Errorf("forward removed (%d) should mirror backward added (%d)", len(forward.Removed), len(backward.Added))
	}
	if forward.Added[0].Name != "Wkręty" || forward.Removed[0].Name != "Rynna" {
		t.Errorf("unexpected diff contents: added=%v removed=%v", forward.Added, forward.Removed)
	}
}

func TestDiffByIDDetectsRename(t *testing.T) {
	// With surrogate IDs, renaming an item is a field-level change on the
	// same entry, not a remove-plus-add.
	tile := NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial)
	before := snapshotWith(tile)

	renamed := tile.Clone()
	renamed.Quantity = 110
	after := snapshotWith(renamed)

	diff := DiffSnapshots(before, after)
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Fatalf("expected no added/removed, got %+v", diff)
	}
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 changed entry, got %d", len(diff.Changed))
	}
	if diff.Changed[0].Fields[0].Field != "quantity" {
		t.Errorf("expected quantity change, got %+v", diff.Changed[0].Fields)
	}
	if diff.ChangeCount != 1 {
		t.Errorf("expected change count 1, got %d", diff.ChangeCount)
	}
}

func TestDiffFallsBackToNameUnitKey(t *testing.T) {
	// Legacy snapshots without item IDs are matched on (name, unit).
	old := Snapshot{Items: []CostItem{{Name: "Montaż", Unit: "komplet", Quantity: 1, PriceUnitNet: 3000, VATRate: 23, Category: CategoryService}}}
	new := Snapshot{Items: []CostItem{{Name: "Montaż", Unit: "komplet", Quantity: 1, PriceUnitNet: 3500, VATRate: 23, Category: CategoryService}}}

	diff := DiffSnapshots(old, new)
	if len(diff.Changed) != 1 {
		t.Fatalf("expected 1 changed entry, got %+v", diff)
	}
	if diff.Changed[0].Fields[0].Field != "price_unit_net" {
		t.Errorf("expected price change, got %+v", diff.Changed[0].Fields)
	}
}

func TestChecksumOrderIndependent(t *testing.T) {
	tile := NewCostItem("Dachówka", 100, "m2", 45, 8, CategoryMaterial)
	gutter := NewCostItem("Rynna", 20, "mb", 25, 8, CategoryMaterial)

	a := ItemsChecksum([]CostItem{tile, gutter})
	b := ItemsChecksum([]CostItem{gutter, tile})
	if a != b {
		t.Error("checksum must be independent of item order")
	}

	changed := tile.Clone()
	changed.Quantity = 101
	c := ItemsChecksum([]CostItem{changed, gutter})
	if c == a {
		t.Error("checksum must change when item data changes")
	}
}

func TestDeleteVersionGuardrails(t *testing.T) {
	m := NewVersionManager("tester")
	m.CreateVersion("est-1", snapshotWith(), "")

	if m.DeleteVersion("est-1", 1) {
		t.Error("the only version must not be deletable")
	}

	m.CreateVersion("est-1", snapshotWith(), "")
	m.CreateVersion("est-1", snapshotWith(), "")

	if m.DeleteVersion("est-1", 3) {
		t.Error("the latest version must not be deletable")
	}
	if !m.DeleteVersion("est-1", 2) {
		t.Error("expected middle version to be deletable")
	}
	hist, _ := m.GetHistory("est-1")
	if len(hist.Versions) != 2 {
		t.Errorf("expected 2 versions after delete, got %d", len(hist.Versions))
	}
}

func TestPruneOldVersions(t *testing.T) {
	m := NewVersionManager("tester")
	for i := 0; i < 10; i++ {
		m.CreateVersion("est-1", snapshotWith(), "")
	}

	removed := m.PruneOldVersions("est-1", 4)
	if removed != 6 {
		t.Errorf("expected 6 removed, got %d", removed)
	}
	hist, _ := m.GetHistory("est-1")
	if len(hist.Versions) != 4 {
		t.Errorf("expected 4 versions kept, got %d", len(hist.Versions))
	}
	if hist.Versions[0].VersionNumber != 7 {
		t.Errorf("expected oldest kept version 7, got %d", hist.Versions[0].VersionNumber)
	}
}
