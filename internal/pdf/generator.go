package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/droneflow/settlements/internal/model"
)

// Generator renders a settled month as a printable statement. Labels are
// Portuguese, which fits in cp1252, so the built-in Helvetica font is enough.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(month model.ClosedMonth) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Fechamento mensal: %s", month.Label)), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fechado em %s", formatDate(month.ClosedAt))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Resumo do período"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Receita total: R$ %s", formatAmount(month.TotalRevenue))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Despesas totais: R$ %s", formatAmount(month.TotalExpenses))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Lucro líquido: R$ %s", formatAmount(month.NetProfit))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Hectares aplicados: %s ha", formatAmount(month.Hectares))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	g.addPartnerTable(pdf, tr, month.PartnerSummaries)
	g.addServiceTable(pdf, tr, month.Services)
	g.addExpenseTable(pdf, tr, month.Expenses)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) addPartnerTable(pdf *gofpdf.Fpdf, tr func(string) string, summaries []model.PartnerSummary) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Distribuição de lucros"), "", 1, "L", false, 0, "")

	headers := []string{"Beneficiário", "Bruto", "Deduções", "Reembolsos", "Salário", "Líquido"}
	widths := []float64{50, 26, 26, 26, 26, 26}
	drawTableRow(pdf, g.fontName, tr, headers, widths, true)

	for _, summary := range summaries {
		row := []string{
			summary.Name,
			formatAmount(summary.GrossProfit),
			formatAmount(summary.Deductions),
			formatAmount(summary.Reimbursements),
			formatOptionalAmount(summary.Salary),
			formatAmount(summary.NetProfit),
		}
		drawTableRow(pdf, g.fontName, tr, row, widths, false)
	}
	pdf.Ln(4)
}

func (g *Generator) addServiceTable(pdf *gofpdf.Fpdf, tr func(string) string, services []model.ServiceRecord) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Serviços (%d)", len(services))), "", 1, "L", false, 0, "")
	if len(services) == 0 {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, tr("Nenhum serviço no período."), "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	headers := []string{"Data", "Cliente", "Área", "Tipo", "Hectares", "Valor"}
	widths := []float64{22, 44, 40, 30, 20, 24}
	drawTableRow(pdf, g.fontName, tr, headers, widths, true)

	for _, service := range services {
		row := []string{
			formatDate(service.Date),
			service.ClientName,
			service.AreaName,
			applicationLabel(service.Type),
			formatAmount(service.Hectares),
			formatAmount(service.TotalValue),
		}
		drawTableRow(pdf, g.fontName, tr, row, widths, false)
	}
	pdf.Ln(4)
}

func (g *Generator) addExpenseTable(pdf *gofpdf.Fpdf, tr func(string) string, expenses []model.Expense) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Despesas (%d)", len(expenses))), "", 1, "L", false, 0, "")
	if len(expenses) == 0 {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 6, tr("Nenhuma despesa no período."), "", 1, "L", false, 0, "")
		return
	}

	headers := []string{"Data", "Descrição", "Categoria", "Pago por", "Valor"}
	widths := []float64{22, 64, 34, 34, 26}
	drawTableRow(pdf, g.fontName, tr, headers, widths, true)

	for _, expense := range expenses {
		row := []string{
			formatDate(expense.Date),
			expense.Description,
			safeValue(expense.Category),
			expense.PaidBy,
			formatAmount(expense.Amount),
		}
		drawTableRow(pdf, g.fontName, tr, row, widths, false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i >= len(cols)-2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func applicationLabel(applicationType model.ApplicationType) string {
	switch applicationType {
	case model.ApplicationSpraying:
		return "Pulverização"
	case model.ApplicationDispersal:
		return "Dispersão"
	default:
		return string(applicationType)
	}
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatOptionalAmount(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatAmount(*value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
