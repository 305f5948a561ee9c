package model

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// MaxHistoryEntries is the retention cap per estimate. When exceeded, the
// oldest version is evicted first; version numbers are never reassigned.
const MaxHistoryEntries = 50

// Snapshot is a full copy of an estimate's item list and metadata at a
// point in time.
type Snapshot struct {
	Title      string            `json:"title,omitempty"`
	Client     Client            `json:"client"`
	Notes      string            `json:"notes,omitempty"`
	Items      []CostItem        `json:"items"`
	TotalGross float64           `json:"total_gross"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Items = CloneItems(s.Items)
	if s.Metadata != nil {
		out.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Version is one immutable entry in an estimate's history.
type Version struct {
	ID            string    `json:"id"`
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Snapshot      Snapshot  `json:"snapshot"`
	Changes       []string  `json:"changes,omitempty"`
	Checksum      string    `json:"checksum"`
}

// Clone returns a deep copy of the version.
func (v Version) Clone() Version {
	out := v
	out.Snapshot = v.Snapshot.Clone()
	if v.Changes != nil {
		out.Changes = append([]string(nil), v.Changes...)
	}
	return out
}

// VersionHistory is the ordered version list of one estimate, oldest first.
type VersionHistory struct {
	EstimateID string    `json:"estimate_id"`
	Versions   []Version `json:"versions"`
}

// NextVersionNumber returns 1 + the highest stored version number, or 1
// for an empty history.
func (h VersionHistory) NextVersionNumber() int {
	max := 0
	for _, v := range h.Versions {
		if v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max + 1
}

// Latest returns a pointer to the most recent version, or nil.
func (h *VersionHistory) Latest() *Version {
	if len(h.Versions) == 0 {
		return nil
	}
	latest := &h.Versions[0]
	for i := range h.Versions {
		if h.Versions[i].VersionNumber > latest.VersionNumber {
			latest = &h.Versions[i]
		}
	}
	return latest
}

// Get returns a pointer to the version with the given number, or nil.
func (h *VersionHistory) Get(versionNumber int) *Version {
	for i := range h.Versions {
		if h.Versions[i].VersionNumber == versionNumber {
			return &h.Versions[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the history.
func (h VersionHistory) Clone() VersionHistory {
	out := VersionHistory{EstimateID: h.EstimateID}
	if h.Versions != nil {
		out.Versions = make([]Version, len(h.Versions))
		for i, v := range h.Versions {
			out.Versions[i] = v.Clone()
		}
	}
	return out
}

// VersionManager owns the in-memory version histories, one per estimate.
// Snapshots are cloned on store and on return, so callers cannot mutate
// stored history through retained references.
type VersionManager struct {
	author     string
	maxEntries int
	histories  map[string]*VersionHistory
}

// NewVersionManager creates a manager with the default retention cap.
func NewVersionManager(author string) *VersionManager {
	return &VersionManager{
		author:     author,
		maxEntries: MaxHistoryEntries,
		histories:  make(map[string]*VersionHistory),
	}
}

// CreateVersion snapshots an estimate as the next version. When the
// description is empty, changes against the immediately preceding version
// are auto-detected and rendered into one. The retention cap is applied
// afterwards, evicting the oldest versions.
func (m *VersionManager) CreateVersion(estimateID string, snap Snapshot, description string) Version {
	hist := m.histories[estimateID]
	if hist == nil {
		hist = &VersionHistory{EstimateID: estimateID}
		m.histories[estimateID] = hist
	}

	number := hist.NextVersionNumber()

	var changes []string
	if prev := hist.Latest(); prev != nil {
		changes = DiffSnapshots(prev.Snapshot, snap).Describe()
	}
	if description == "" {
		switch {
		case number == 1:
			description = "Wersja początkowa"
		case len(changes) > 0:
			description = fmt.Sprintf("Aktualizacja (%d zmian)", len(changes))
		default:
			description = "Zmodyfikowano"
		}
	}

	version := Version{
		ID:            uuid.New().String(),
		VersionNumber: number,
		CreatedAt:     time.Now().UTC(),
		Author:        m.author,
		Description:   description,
		Snapshot:      snap.Clone(),
		Changes:       changes,
		Checksum:      ItemsChecksum(snap.Items),
	}
	hist.Versions = append(hist.Versions, version)

	if over := len(hist.Versions) - m.maxEntries; over > 0 {
		hist.Versions = hist.Versions[over:]
	}
	return version.Clone()
}

// GetHistory returns a copy of the estimate's history. The second return
// value is false when no version has ever been created for the estimate.
func (m *VersionManager) GetHistory(estimateID string) (VersionHistory, bool) {
	hist, ok := m.histories[estimateID]
	if !ok {
		return VersionHistory{EstimateID: estimateID}, false
	}
	return hist.Clone(), true
}

// LoadHistory replaces the stored history for an estimate, typically when
// restoring from persistence.
func (m *VersionManager) LoadHistory(hist VersionHistory) {
	cp := hist.Clone()
	m.histories[hist.EstimateID] = &cp
}

// RestoreVersion returns a copy of the stored snapshot for the given
// version number. Restoring does not create a new version; the caller
// decides whether to snapshot the restoration.
func (m *VersionManager) RestoreVersion(estimateID string, versionNumber int) (Snapshot, error) {
	hist := m.histories[estimateID]
	if hist == nil {
		return Snapshot{}, &VersionNotFoundError{EstimateID: estimateID, VersionNumber: versionNumber}
	}
	v := hist.Get(versionNumber)
	if v == nil {
		return Snapshot{}, &VersionNotFoundError{EstimateID: estimateID, VersionNumber: versionNumber}
	}
	return v.Snapshot.Clone(), nil
}

// CompareVersions diffs two stored versions of an estimate.
func (m *VersionManager) CompareVersions(estimateID string, v1, v2 int) (VersionDiff, error) {
	hist := m.histories[estimateID]
	if hist == nil {
		return VersionDiff{}, &VersionNotFoundError{EstimateID: estimateID, VersionNumber: v1}
	}
	a := hist.Get(v1)
	if a == nil {
		return VersionDiff{}, &VersionNotFoundError{EstimateID: estimateID, VersionNumber: v1}
	}
	b := hist.Get(v2)
	if b == nil {
		return VersionDiff{}, &VersionNotFoundError{EstimateID: estimateID, VersionNumber: v2}
	}
	return DiffSnapshots(a.Snapshot, b.Snapshot), nil
}

// DeleteVersion removes a version. The only remaining version and the
// latest version cannot be deleted. Returns true when a version was removed.
func (m *VersionManager) DeleteVersion(estimateID string, versionNumber int) bool {
	hist := m.histories[estimateID]
	if hist == nil || len(hist.Versions) <= 1 {
		return false
	}
	if latest := hist.Latest(); latest != nil && latest.VersionNumber == versionNumber {
		return false
	}
	for i := range hist.Versions {
		if hist.Versions[i].VersionNumber == versionNumber {
			hist.Versions = append(hist.Versions[:i], hist.Versions[i+1:]...)
			return true
		}
	}
	return false
}

// PruneOldVersions drops all but the keepCount most recent versions and
// returns how many were removed.
func (m *VersionManager) PruneOldVersions(estimateID string, keepCount int) int {
	hist := m.histories[estimateID]
	if hist == nil || keepCount < 0 || len(hist.Versions) <= keepCount {
		return 0
	}
	removed := len(hist.Versions) - keepCount
	hist.Versions = hist.Versions[removed:]
	return removed
}

// FieldChange names one differing field of a changed item, with the old
// and new values rendered as strings.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ItemChange pairs the two states of an item present in both snapshots.
type ItemChange struct {
	Old    CostItem      `json:"old"`
	New    CostItem      `json:"new"`
	Fields []FieldChange `json:"fields"`
}

// VersionDiff is the result of comparing two snapshots.
type VersionDiff struct {
	Added       []CostItem   `json:"added"`
	Removed     []CostItem   `json:"removed"`
	Changed     []ItemChange `json:"changed"`
	ChangeCount int          `json:"change_count"`
}

// itemKey returns the diff key for an item: the surrogate ID when present,
// otherwise a (name, unit) compound for legacy snapshots. ID-less items
// sharing name and unit collapse into one entry.
func itemKey(it CostItem) string {
	if it.ID != "" {
		return "id:" + it.ID
	}
	return "nu:" + it.Name + "\x00" + it.Unit
}

// DiffSnapshots computes the added/removed/changed item sets between two
// snapshots. Items present in both are compared on quantity, unit price,
// VAT rate and group.
func DiffSnapshots(old, new Snapshot) VersionDiff {
	oldByKey := make(map[string]CostItem, len(old.Items))
	for _, it := range old.Items {
		oldByKey[itemKey(it)] = it
	}
	newByKey := make(map[string]CostItem, len(new.Items))
	for _, it := range new.Items {
		newByKey[itemKey(it)] = it
	}

	var diff VersionDiff
	seen := make(map[string]bool, len(new.Items))
	for _, it := range new.Items {
		key := itemKey(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		prev, ok := oldByKey[key]
		if !ok {
			diff.Added = append(diff.Added, it.Clone())
			continue
		}
		if fields := changedFields(prev, it); len(fields) > 0 {
			diff.Changed = append(diff.Changed, ItemChange{Old: prev.Clone(), New: it.Clone(), Fields: fields})
		}
	}
	seen = make(map[string]bool, len(old.Items))
	for _, it := range old.Items {
		key := itemKey(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := newByKey[key]; !ok {
			diff.Removed = append(diff.Removed, it.Clone())
		}
	}

	diff.ChangeCount = len(diff.Added) + len(diff.Removed) + len(diff.Changed)
	return diff
}

func changedFields(old, new CostItem) []FieldChange {
	var fields []FieldChange
	if old.Quantity != new.Quantity {
		fields = append(fields, FieldChange{
			Field: "quantity",
			Old:   strconv.FormatFloat(old.Quantity, 'f', -1, 64),
			New:   strconv.FormatFloat(new.Quantity, 'f', -1, 64),
		})
	}
	if old.PriceUnitNet != new.PriceUnitNet {
		fields = append(fields, FieldChange{
			Field: "price_unit_net",
			Old:   strconv.FormatFloat(old.PriceUnitNet, 'f', 2, 64),
			New:   strconv.FormatFloat(new.PriceUnitNet, 'f', 2, 64),
		})
	}
	if old.VATRate != new.VATRate {
		fields = append(fields, FieldChange{
			Field: "vat_rate",
			Old:   strconv.Itoa(old.VATRate),
			New:   strconv.Itoa(new.VATRate),
		})
	}
	if old.Group != new.Group {
		fields = append(fields, FieldChange{Field: "group", Old: old.Group, New: new.Group})
	}
	return fields
}

// Describe renders the diff into short human-readable change lines.
func (d VersionDiff) Describe() []string {
	var out []string
	for _, it := range d.Added {
		out = append(out, fmt.Sprintf("Dodano: %s", it.Name))
	}
	for _, it := range d.Removed {
		out = append(out, fmt.Sprintf("Usunięto: %s", it.Name))
	}
	for _, ch := range d.Changed {
		for _, f := range ch.Fields {
			out = append(out, fmt.Sprintf("Zmieniono %s w %s: %s -> %s", f.Field, ch.New.Name, f.Old, f.New))
		}
	}
	return out
}

// ItemsChecksum computes a deterministic content digest of an item list.
// Items are sorted by their diff key before serialization, so the digest
// is independent of item order. Used as a quick change-detection signal.
func ItemsChecksum(items []CostItem) string {
	sorted := CloneItems(items)
	sort.Slice(sorted, func(i, j int) bool {
		return itemKey(sorted[i]) < itemKey(sorted[j])
	})
	data, err := json.Marshal(sorted)
	if err != nil {
		// CostItem has no unmarshalable fields; keep the signature simple.
		return ""
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
