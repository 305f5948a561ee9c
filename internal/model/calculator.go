package model

import "fmt"

// Totals holds a net/VAT/gross triple.
type Totals struct {
	Net   float64 `json:"net"`
	VAT   float64 `json:"vat"`
	Gross float64 `json:"gross"`
}

// TransportCost holds the transport surcharge with its own VAT rate.
type TransportCost struct {
	Totals
	VATRate int     `json:"vat_rate"`
	Percent float64 `json:"percent"`
}

// CostSummary is the result of aggregating a list of cost items.
//
// Transport is tracked only in the Transport field and the grand total;
// it is deliberately excluded from the ByVATRate and ByCategory
// breakdowns, so that the bucket nets always sum to the grand total net
// minus the transport net.
type CostSummary struct {
	Items      []CostItem          `json:"items"`
	ByVATRate  map[int]Totals      `json:"by_vat"`
	ByCategory map[Category]Totals `json:"by_category"`
	Transport  TransportCost       `json:"transport"`
	GrandTotal Totals              `json:"summary"`
}

// ComputeTotals aggregates items into per-VAT-rate and per-category
// subtotals, applies the transport surcharge as a percentage of the
// pre-transport net subtotal, and returns the structured summary.
//
// allowedRates is the VAT-rate enumeration items and the transport rate
// are validated against, typically AppConfig.AllowedVATRates; nil means
// DefaultVATRates.
//
// Monetary values are accumulated at full precision and rounded half-up
// to 2 decimal places once per output field. The input items are not
// modified; the returned Items carry recomputed per-item totals.
func ComputeTotals(items []CostItem, transportPercent float64, transportVATRate int, allowedRates []int) (CostSummary, error) {
	if allowedRates == nil {
		allowedRates = DefaultVATRates
	}
	if transportPercent < 0 {
		return CostSummary{}, fmt.Errorf("transport percent must not be negative, got %g", transportPercent)
	}
	if transportPercent > 0 && !IsValidVATRate(transportVATRate, allowedRates) {
		return CostSummary{}, fmt.Errorf("transport vat rate %d is not in the allowed set", transportVATRate)
	}

	type acc struct{ net, vat, gross float64 }
	byVAT := make(map[int]*acc)
	byCat := make(map[Category]*acc)
	var totalNet, totalVAT, totalGross float64

	out := make([]CostItem, len(items))
	for i, it := range items {
		if err := it.Validate(allowedRates); err != nil {
			return CostSummary{}, err
		}

		net := it.Quantity * it.PriceUnitNet
		vat := net * float64(it.VATRate) / 100.0
		gross := net + vat

		c := it.Clone()
		c.CalculateTotals()
		out[i] = c

		if byVAT[it.VATRate] == nil {
			byVAT[it.VATRate] = &acc{}
		}
		byVAT[it.VATRate].net += net
		byVAT[it.VATRate].vat += vat
		byVAT[it.VATRate].gross += gross

		if byCat[it.Category] == nil {
			byCat[it.Category] = &acc{}
		}
		byCat[it.Category].net += net
		byCat[it.Category].vat += vat
		byCat[it.Category].gross += gross

		totalNet += net
		totalVAT += vat
		totalGross += gross
	}

	// Transport is a percentage surcharge on the pre-transport net subtotal.
	var transportNet, transportVAT, transportGross float64
	if transportPercent > 0 && totalNet > 0 {
		transportNet = totalNet * transportPercent / 100.0
		transportVAT = transportNet * float64(transportVATRate) / 100.0
		transportGross = transportNet + transportVAT
	}

	summary := CostSummary{
		Items:      out,
		ByVATRate:  make(map[int]Totals, len(byVAT)),
		ByCategory: make(map[Category]Totals, len(byCat)),
		Transport: TransportCost{
			Totals: Totals{
				Net:   Round2(transportNet),
				VAT:   Round2(transportVAT),
				Gross: Round2(transportGross),
			},
			VATRate: transportVATRate,
			Percent: transportPercent,
		},
		GrandTotal: Totals{
			Net:   Round2(totalNet + transportNet),
			VAT:   Round2(totalVAT + transportVAT),
			Gross: Round2(totalGross + transportGross),
		},
	}
	for rate, a := range byVAT {
		summary.ByVATRate[rate] = Totals{Net: Round2(a.net), VAT: Round2(a.vat), Gross: Round2(a.gross)}
	}
	for cat, a := range byCat {
		summary.ByCategory[cat] = Totals{Net: Round2(a.net), VAT: Round2(a.vat), Gross: Round2(a.gross)}
	}
	return summary, nil
}
