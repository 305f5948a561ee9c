package model

// MarginSettings holds the margin-resolution configuration for an estimate.
// Margins resolve with strict priority: item-level override, then the
// item's group, then the global percentage. First match wins.
type MarginSettings struct {
	GlobalMarginPercent float64            `json:"global_margin_percent"`
	GroupMargins        map[string]float64 `json:"group_margins,omitempty"`
}

// DefaultMarginSettings returns the standard 20% global margin with no
// group overrides.
func DefaultMarginSettings() MarginSettings {
	return MarginSettings{GlobalMarginPercent: 20.0}
}

// ResolveMargin returns the margin percentage applicable to an item.
func (s MarginSettings) ResolveMargin(item CostItem) float64 {
	if item.MarginPercent != nil {
		return *item.MarginPercent
	}
	if item.Group != "" {
		if m, ok := s.GroupMargins[item.Group]; ok {
			return m
		}
	}
	return s.GlobalMarginPercent
}

// SetGroupMargin sets the margin percentage for a group.
func (s *MarginSettings) SetGroupMargin(group string, percent float64) {
	if s.GroupMargins == nil {
		s.GroupMargins = make(map[string]float64)
	}
	s.GroupMargins[group] = percent
}

// RemoveGroupMargin removes a group override, falling back to the global
// margin for that group's items.
func (s *MarginSettings) RemoveGroupMargin(group string) {
	delete(s.GroupMargins, group)
}

// Clone returns a deep copy of the settings.
func (s MarginSettings) Clone() MarginSettings {
	out := MarginSettings{GlobalMarginPercent: s.GlobalMarginPercent}
	if s.GroupMargins != nil {
		out.GroupMargins = make(map[string]float64, len(s.GroupMargins))
		for k, v := range s.GroupMargins {
			out.GroupMargins[k] = v
		}
	}
	return out
}

// CalculateSellingPrice derives a selling price from a purchase price and
// a margin percentage. Margins below -100% would produce a negative price
// and are rejected.
func CalculateSellingPrice(purchasePrice, marginPercent float64) (float64, error) {
	if marginPercent < -100 {
		return 0, &InvalidMarginError{MarginPercent: marginPercent, Reason: "selling price would be negative"}
	}
	return Round2(purchasePrice * (1 + marginPercent/100.0)), nil
}

// CalculatePurchasePrice is the inverse of CalculateSellingPrice.
// Undefined at -100% (division by zero) and below.
func CalculatePurchasePrice(sellingPrice, marginPercent float64) (float64, error) {
	if marginPercent <= -100 {
		return 0, &InvalidMarginError{MarginPercent: marginPercent, Reason: "purchase price is undefined"}
	}
	return Round2(sellingPrice / (1 + marginPercent/100.0)), nil
}

// ApplyMarginToItems returns a copy of items where every item carrying a
// purchase price has its unit net price overwritten with the selling price
// computed from its resolved margin. Items without a purchase price are
// left untouched.
func ApplyMarginToItems(items []CostItem, settings MarginSettings) ([]CostItem, error) {
	out := CloneItems(items)
	for i := range out {
		if out[i].PurchasePrice == nil {
			continue
		}
		margin := settings.ResolveMargin(out[i])
		price, err := CalculateSellingPrice(*out[i].PurchasePrice, margin)
		if err != nil {
			return nil, err
		}
		out[i].PriceUnitNet = price
		out[i].CalculateTotals()
	}
	return out, nil
}

// MarginSummary aggregates purchase cost against selling revenue over the
// items that carry a purchase price.
type MarginSummary struct {
	TotalPurchaseValue   float64 `json:"total_purchase_value"`
	TotalSellingValue    float64 `json:"total_selling_value"`
	TotalMarginValue     float64 `json:"total_margin_value"`
	OverallMarginPercent float64 `json:"overall_margin_percent"`
	ItemsWithMargin      int     `json:"items_with_margin"`
	TotalItems           int     `json:"total_items"`
}

// GetMarginSummary computes the margin statistics for a list of items.
// Items without a purchase price count toward TotalItems only.
func GetMarginSummary(items []CostItem) MarginSummary {
	var purchase, selling float64
	withMargin := 0
	for _, it := range items {
		if it.PurchasePrice == nil {
			continue
		}
		withMargin++
		purchase += *it.PurchasePrice * it.Quantity
		selling += it.PriceUnitNet * it.Quantity
	}

	var overall float64
	if purchase > 0 {
		overall = (selling - purchase) / purchase * 100.0
	}
	return MarginSummary{
		TotalPurchaseValue:   Round2(purchase),
		TotalSellingValue:    Round2(selling),
		TotalMarginValue:     Round2(selling - purchase),
		OverallMarginPercent: Round2(overall),
		ItemsWithMargin:      withMargin,
		TotalItems:           len(items),
	}
}
