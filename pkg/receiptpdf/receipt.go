// Package receiptpdf renders payment receipts as A4 PDF documents.
package receiptpdf

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Item is one line of the itemized table.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Receipt is the content of one payment proof.
type Receipt struct {
	CompanyName   string
	Address       string
	CNPJ          string
	Phone         string
	ClientName    string
	Amount        decimal.Decimal
	AmountInWords string
	PaymentMethod string
	PaymentDate   string
	Items         []Item
	Total         decimal.Decimal
	EmittedAt     time.Time
}

func brl(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

// Render writes the receipt to path. Parent directories are created as
// needed.
func Render(r *Receipt, path string) error {
	if parent := filepath.Dir(path); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	separator := func() {
		pdf.Ln(3)
		x, y := pdf.GetXY()
		pdf.SetDrawColor(0, 0, 0)
		pdf.Line(x, y, 190, y)
		pdf.Ln(4)
	}

	// Company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(r.CompanyName), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	if r.Address != "" {
		pdf.CellFormat(0, 5, tr(r.Address), "", 1, "L", false, 0, "")
	}
	cnpj := r.CNPJ
	if cnpj == "" {
		cnpj = "Não informado"
	}
	pdf.CellFormat(0, 5, tr("CNPJ: "+cnpj), "", 1, "L", false, 0, "")
	phone := r.Phone
	if phone == "" {
		phone = "Não informado"
	}
	pdf.CellFormat(0, 5, tr("Telefone: "+phone), "", 1, "L", false, 0, "")

	separator()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("COMPROVANTE DE PAGAMENTO"), "", 1, "C", false, 0, "")

	separator()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("NOME: "+r.ClientName), "", 1, "L", false, 0, "")

	separator()

	pdf.CellFormat(0, 6, tr("VALOR PAGO: "+brl(r.Amount)+" ("+r.AmountInWords+")"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("DATA DE PAGAMENTO: "+r.PaymentDate), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("FORMA DE PAGAMENTO: "+r.PaymentMethod+" ("+brl(r.Amount)+")"), "", 1, "L", false, 0, "")

	separator()

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr("ITENS DA VENDA:"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	colWidths := []float64{80, 30, 30, 30}
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(colWidths[0], 8, tr("Item"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(colWidths[1], 8, tr("Quantidade"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[2], 8, tr("Preço Unit."), "1", 0, "R", true, 0, "")
	pdf.CellFormat(colWidths[3], 8, tr("Subtotal"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range r.Items {
		pdf.CellFormat(colWidths[0], 7, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, tr(strconv.Itoa(item.Quantity)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, tr(brl(item.UnitPrice)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, tr(brl(item.Subtotal)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colWidths[0]+colWidths[1], 8, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[2], 8, tr("TOTAL:"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, tr(brl(r.Total)), "1", 1, "R", false, 0, "")

	separator()

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(102, 102, 102)
	emitted := "EMITIDO EM: " + r.EmittedAt.Format("02/01/2006") + " ÀS " + r.EmittedAt.Format("15:04:05")
	pdf.CellFormat(0, 5, tr(emitted), "", 1, "R", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
