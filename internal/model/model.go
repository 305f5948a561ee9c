package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Category represents the kind of a cost item.
type Category string

const (
	CategoryMaterial Category = "material" // Material line (tiles, felt, timber...)
	CategoryService  Category = "service"  // Labour/service line (installation, transport...)
)

// DefaultVATRate is the VAT rate assigned to new items.
const DefaultVATRate = 23

// DefaultVATRates is the set of VAT rates accepted by item validation.
var DefaultVATRates = []int{0, 8, 23}

// IsValidVATRate reports whether rate is a member of the allowed set.
func IsValidVATRate(rate int, allowed []int) bool {
	for _, r := range allowed {
		if r == rate {
			return true
		}
	}
	return false
}

// Round2 rounds a monetary value to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CostItem represents a single line of a cost estimate.
type CostItem struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	Unit          string   `json:"unit"`
	PriceUnitNet  float64  `json:"price_unit_net"`
	VATRate       int      `json:"vat_rate"`
	Category      Category `json:"category"`
	Group         string   `json:"group,omitempty"`
	Note          string   `json:"note,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"` // Cost price, input to the margin engine
	MarginPercent *float64 `json:"margin_percent,omitempty"` // Item-level margin override

	// Derived values, recomputed by CalculateTotals. Never a source of truth
	// while the item is being edited.
	TotalNet   float64 `json:"total_net"`
	VATValue   float64 `json:"vat_value"`
	TotalGross float64 `json:"total_gross"`
}

// NewCostItem creates a cost item with a generated ID and computed totals.
func NewCostItem(name string, quantity float64, unit string, priceUnitNet float64, vatRate int, category Category) CostItem {
	it := CostItem{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Quantity:     quantity,
		Unit:         unit,
		PriceUnitNet: priceUnitNet,
		VATRate:      vatRate,
		Category:     category,
	}
	it.CalculateTotals()
	return it
}

// CalculateTotals recomputes the derived net/VAT/gross values from the
// current quantity and unit price.
func (it *CostItem) CalculateTotals() {
	net := it.Quantity * it.PriceUnitNet
	vat := net * float64(it.VATRate) / 100.0
	it.TotalNet = Round2(net)
	it.VATValue = Round2(vat)
	it.TotalGross = Round2(net + vat)
}

// Validate checks the item's field constraints against the allowed VAT-rate
// set. Invalid input is reported, never silently coerced.
func (it CostItem) Validate(allowedRates []int) error {
	if it.Name == "" {
		return &InvalidItemError{ItemName: it.Name, Field: "name", Reason: "name is required"}
	}
	if it.Quantity < 0 {
		return &InvalidItemError{ItemName: it.Name, Field: "quantity", Reason: "quantity must not be negative"}
	}
	if it.PriceUnitNet < 0 {
		return &InvalidItemError{ItemName: it.Name, Field: "price_unit_net", Reason: "unit price must not be negative"}
	}
	if !IsValidVATRate(it.VATRate, allowedRates) {
		return &InvalidItemError{ItemName: it.Name, Field: "vat_rate", Reason: "vat rate is not in the allowed set"}
	}
	if it.Category != CategoryMaterial && it.Category != CategoryService {
		return &InvalidItemError{ItemName: it.Name, Field: "category", Reason: "category must be material or service"}
	}
	return nil
}

// Clone returns a deep copy of the item, including optional pointer fields.
func (it CostItem) Clone() CostItem {
	out := it
	if it.PurchasePrice != nil {
		v := *it.PurchasePrice
		out.PurchasePrice = &v
	}
	if it.MarginPercent != nil {
		v := *it.MarginPercent
		out.MarginPercent = &v
	}
	return out
}

// CloneItems returns a deep copy of an item slice.
func CloneItems(items []CostItem) []CostItem {
	if items == nil {
		return nil
	}
	out := make([]CostItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Client holds the customer data printed on estimate documents.
type Client struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	NIP     string `json:"nip,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Estimate ties a full cost estimate together for save/load and snapshotting.
type Estimate struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Client           Client         `json:"client"`
	Items            []CostItem     `json:"items"`
	TransportPercent float64        `json:"transport_percent"`
	TransportVATRate int            `json:"transport_vat_rate"`
	Margins          MarginSettings `json:"margins"`
	Notes            string         `json:"notes,omitempty"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

// NewEstimate creates an empty estimate with a generated ID and the
// standard transport defaults.
func NewEstimate(title string) Estimate {
	now := time.Now().UTC().Format(time.RFC3339)
	return Estimate{
		ID:               uuid.New().String()[:8],
		Title:            title,
		Items:            []CostItem{},
		TransportPercent: 3.0,
		TransportVATRate: DefaultVATRate,
		Margins:          DefaultMarginSettings(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Touch updates the modification timestamp.
func (e *Estimate) Touch() {
	e.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Snapshot captures the estimate's current state for the version history.
func (e Estimate) Snapshot() Snapshot {
	var gross float64
	for _, it := range e.Items {
		gross += it.TotalGross
	}
	return Snapshot{
		Title:      e.Title,
		Client:     e.Client,
		Notes:      e.Notes,
		Items:      CloneItems(e.Items),
		TotalGross: Round2(gross),
	}
}
