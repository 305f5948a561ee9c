package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/dkurek/ofertownik/internal/format"
	"github.com/dkurek/ofertownik/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 6.0
	qrSize       = 22.0
)

// Column widths of the cost table, summing to contentWidth.
var costColumns = []struct {
	title string
	width float64
	align string
}{
	{"Lp", 9, "C"},
	{"Nazwa", 63, "L"},
	{"Ilość", 18, "R"},
	{"JM", 12, "C"},
	{"Cena netto", 22, "R"},
	{"VAT %", 14, "C"},
	{"Netto", 20, "R"},
	{"Brutto", 22, "R"},
}

// stampInfo is the data encoded into the verification QR code printed in
// the document footer.
type stampInfo struct {
	EstimateID string `json:"estimate_id"`
	Title      string `json:"title"`
	Checksum   string `json:"checksum"`
	UpdatedAt  string `json:"updated_at"`
}

// ExportPDF renders the full estimate offer document: header with client
// data, the cost table split into materials and services, the VAT and
// transport breakdown, grand totals and a QR verification stamp.
func ExportPDF(path string, e model.Estimate, summary model.CostSummary) error {
	if len(summary.Items) == 0 {
		return fmt.Errorf("no cost items to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom+qrSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.AddPage()

	renderHeader(pdf, tr, e)

	var materials, services []model.CostItem
	for _, it := range summary.Items {
		if it.Category == model.CategoryService {
			services = append(services, it)
		} else {
			materials = append(materials, it)
		}
	}
	lp := 1
	if len(materials) > 0 {
		renderSectionTitle(pdf, tr, "Materiały")
		lp = renderCostTable(pdf, tr, materials, lp)
	}
	if len(services) > 0 {
		renderSectionTitle(pdf, tr, "Usługi")
		renderCostTable(pdf, tr, services, lp)
	}

	renderSummary(pdf, tr, summary)

	if e.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentWidth, 5, tr("Uwagi: "+e.Notes), "", "L", false)
	}

	if err := renderStamp(pdf, tr, e, summary); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, tr func(string) string, e model.Estimate) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, tr("Kosztorys: "+e.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("Nr: %s | Data: %s", e.ID, e.UpdatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	if e.Client.Name != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentWidth, 5, tr("Zamawiający:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentWidth, 5, tr(e.Client.Name), "", 1, "L", false, 0, "")
		if line := clientAddressLine(e.Client); line != "" {
			pdf.CellFormat(contentWidth, 5, tr(line), "", 1, "L", false, 0, "")
		}
		if e.Client.NIP != "" {
			pdf.CellFormat(contentWidth, 5, tr("NIP: "+e.Client.NIP), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
}

func clientAddressLine(c model.Client) string {
	switch {
	case c.Address != "" && c.City != "":
		return c.Address + ", " + c.City
	case c.Address != "":
		return c.Address
	default:
		return c.City
	}
}

func renderSectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 6, tr(title), "", 1, "L", false, 0, "")
}

// renderCostTable draws one category's item rows and returns the next
// ordinal number.
func renderCostTable(pdf *fpdf.Fpdf, tr func(string) string, items []model.CostItem, lp int) int {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(44, 62, 80)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(marginLeft)
	for _, col := range costColumns {
		pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i, it := range items {
		fill := i%2 == 1
		pdf.SetFillColor(236, 240, 241)
		pdf.SetX(marginLeft)
		cells := []string{
			fmt.Sprintf("%d", lp),
			it.Name,
			fmt.Sprintf("%.3f", it.Quantity),
			it.Unit,
			format.FmtMoneyPlain(it.PriceUnitNet),
			fmt.Sprintf("%d%%", it.VATRate),
			format.FmtMoneyPlain(it.TotalNet),
			format.FmtMoneyPlain(it.TotalGross),
		}
		for c, col := range costColumns {
			pdf.CellFormat(col.width, rowHeight, tr(cells[c]), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
		lp++
	}
	return lp
}

func renderSummary(pdf *fpdf.Fpdf, tr func(string) string, summary model.CostSummary) {
	renderSectionTitle(pdf, tr, "Podsumowanie")

	pdf.SetFont("Helvetica", "", 9)
	rates := make([]int, 0, len(summary.ByVATRate))
	for rate := range summary.ByVATRate {
		rates = append(rates, rate)
	}
	sort.Ints(rates)
	for _, rate := range rates {
		t := summary.ByVATRate[rate]
		line := fmt.Sprintf("Stawka %d%%: netto %s, VAT %s, brutto %s",
			rate, format.FmtMoney(t.Net), format.FmtMoney(t.VAT), format.FmtMoney(t.Gross))
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}

	if summary.Transport.Net > 0 {
		line := fmt.Sprintf("Transport (%g%% od netto): netto %s, brutto %s",
			summary.Transport.Percent, format.FmtMoney(summary.Transport.Net), format.FmtMoney(summary.Transport.Gross))
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	total := fmt.Sprintf("Razem: netto %s | VAT %s | brutto %s",
		format.FmtMoney(summary.GrandTotal.Net),
		format.FmtMoney(summary.GrandTotal.VAT),
		format.FmtMoney(summary.GrandTotal.Gross))
	pdf.CellFormat(contentWidth, 7, tr(total), "T", 1, "R", false, 0, "")
}

// renderStamp places the QR verification code in the bottom-left corner
// of the last page. The code carries the estimate ID and the items
// checksum, so a printed offer can be matched against its stored version.
func renderStamp(pdf *fpdf.Fpdf, tr func(string) string, e model.Estimate, summary model.CostSummary) error {
	info := stampInfo{
		EstimateID: e.ID,
		Title:      e.Title,
		Checksum:   model.ItemsChecksum(summary.Items),
		UpdatedAt:  e.UpdatedAt,
	}
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal stamp info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "stamp_" + e.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	_, pageHeight := pdf.GetPageSize()
	y := pageHeight - marginBottom - qrSize
	pdf.ImageOptions(imgName, marginLeft, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(marginLeft+qrSize+2, y+qrSize-4)
	pdf.CellFormat(60, 4, tr("Suma kontrolna: "+info.Checksum[:8]), "", 0, "L", false, 0, "")
	return nil
}
