package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new estimates
	DefaultVATRate             int     `json:"default_vat_rate"`
	AllowedVATRates            []int   `json:"allowed_vat_rates"`
	DefaultTransportPercent    float64 `json:"default_transport_percent"`
	DefaultTransportVATRate    int     `json:"default_transport_vat_rate"`
	DefaultGlobalMarginPercent float64 `json:"default_global_margin_percent"`

	// Application preferences
	Author            string   `json:"author"`
	Currency          string   `json:"currency"`
	MaxHistoryEntries int      `json:"max_history_entries"`
	RecentFiles       []string `json:"recent_files"`
}

// DefaultAppConfig returns an AppConfig populated with the standard
// Polish VAT setup and transport defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultVATRate:             DefaultVATRate,
		AllowedVATRates:            append([]int(nil), DefaultVATRates...),
		DefaultTransportPercent:    3.0,
		DefaultTransportVATRate:    23,
		DefaultGlobalMarginPercent: 20.0,
		Author:                     "User",
		Currency:                   "zł",
		MaxHistoryEntries:          MaxHistoryEntries,
		RecentFiles:                []string{},
	}
}

// ApplyToEstimate copies the config defaults into a new estimate.
func (c AppConfig) ApplyToEstimate(e *Estimate) {
	e.TransportPercent = c.DefaultTransportPercent
	e.TransportVATRate = c.DefaultTransportVATRate
	e.Margins.GlobalMarginPercent = c.DefaultGlobalMarginPercent
}

// AddRecentFile prepends a path to the recent-files list, dropping
// duplicates and keeping at most 10 entries.
func (c *AppConfig) AddRecentFile(path string) {
	files := []string{path}
	for _, f := range c.RecentFiles {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > 10 {
		files = files[:10]
	}
	c.RecentFiles = files
}
