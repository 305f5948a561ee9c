package model

import (
	"time"

	"github.com/google/uuid"
)

// EstimateTemplate represents a reusable estimate configuration that
// captures cost items and their grouping but not client data, transport
// or history.
type EstimateTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	Items       []CostItem        `json:"items"`
	Groups      []string          `json:"groups"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewEstimateTemplate creates a template from the given items. Items are
// deep-copied; the group list is derived from them, preserving first-seen
// order.
func NewEstimateTemplate(name, description string, items []CostItem) EstimateTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return EstimateTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       CloneItems(items),
		Groups:      groupNames(items),
	}
}

// ToEstimate creates a new estimate from this template. Items get fresh
// IDs so they are independent of the template.
func (t EstimateTemplate) ToEstimate(title string) Estimate {
	e := NewEstimate(title)
	e.Items = make([]CostItem, len(t.Items))
	for i, it := range t.Items {
		c := it.Clone()
		c.ID = uuid.New().String()[:8]
		c.CalculateTotals()
		e.Items[i] = c
	}
	return e
}

// groupNames collects the distinct non-empty group names in first-seen order.
func groupNames(items []CostItem) []string {
	groups := []string{}
	seen := map[string]bool{}
	for _, it := range items {
		if it.Group == "" || seen[it.Group] {
			continue
		}
		seen[it.Group] = true
		groups = append(groups, it.Group)
	}
	return groups
}

// TemplateStore holds a collection of estimate templates.
type TemplateStore struct {
	Templates []EstimateTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []EstimateTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t EstimateTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *EstimateTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *EstimateTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
