package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dkurek/ofertownik/internal/gutter"
)

// GutterCatalog is the on-disk shape of the gutter systems store:
// predefined systems plus any templates the user saved.
type GutterCatalog struct {
	PredefinedSystems []gutter.System   `json:"predefined_systems"`
	UserTemplates     []gutter.Template `json:"user_templates"`
}

// DefaultCatalogPath returns the default path of the gutter systems file.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "gutter_systems.json")
}

// SaveGutterCatalog writes the catalog to a JSON file.
func SaveGutterCatalog(path string, cat GutterCatalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadGutterCatalog reads the catalog from a JSON file. If the file does
// not exist, it returns the shipped default catalog and saves it.
func LoadGutterCatalog(path string) (GutterCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := GutterCatalog{
				PredefinedSystems: gutter.DefaultCatalog(),
				UserTemplates:     []gutter.Template{},
			}
			if saveErr := SaveGutterCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return GutterCatalog{}, err
	}
	var cat GutterCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return GutterCatalog{}, err
	}
	if cat.PredefinedSystems == nil {
		cat.PredefinedSystems = []gutter.System{}
	}
	if cat.UserTemplates == nil {
		cat.UserTemplates = []gutter.Template{}
	}
	return cat, nil
}

// System returns a deep copy of the named predefined system, or false
// when no system with that name exists.
func (c GutterCatalog) System(name string) (gutter.System, bool) {
	for _, sys := range c.PredefinedSystems {
		if sys.Name == name {
			return sys.Clone(), true
		}
	}
	return gutter.System{}, false
}

// SaveUserTemplate adds a template to the catalog, replacing any template
// with the same name. New templates get a creation timestamp.
func (c *GutterCatalog) SaveUserTemplate(tpl gutter.Template) {
	for i, existing := range c.UserTemplates {
		if existing.Name == tpl.Name {
			c.UserTemplates[i] = tpl
			return
		}
	}
	tpl.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	c.UserTemplates = append(c.UserTemplates, tpl)
}

// DeleteUserTemplate removes the named template and reports whether it
// was present.
func (c *GutterCatalog) DeleteUserTemplate(name string) bool {
	for i, tpl := range c.UserTemplates {
		if tpl.Name == name {
			c.UserTemplates = append(c.UserTemplates[:i], c.UserTemplates[i+1:]...)
			return true
		}
	}
	return false
}
