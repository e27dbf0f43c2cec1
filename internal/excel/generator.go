package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/droneflow/settlements/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(month model.ClosedMonth) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumo"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, month); err != nil {
		return nil, err
	}

	servicesSheet := "Serviços"
	file.NewSheet(servicesSheet)
	if err := g.writeServices(file, servicesSheet, month); err != nil {
		return nil, err
	}

	expensesSheet := "Despesas"
	file.NewSheet(expensesSheet)
	if err := g.writeExpenses(file, expensesSheet, month); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, month model.ClosedMonth) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Mês")
	set("B1", month.Label)
	set("A2", "Fechado em")
	set("B2", formatDateTime(month.ClosedAt))
	set("A3", "Receita total")
	set("B3", month.TotalRevenue)
	set("A4", "Despesas totais")
	set("B4", month.TotalExpenses)
	set("A5", "Lucro líquido")
	set("B5", month.NetProfit)
	set("A6", "Hectares aplicados")
	set("B6", month.Hectares)

	tableRow := 8
	set(fmt.Sprintf("A%d", tableRow), "Beneficiário")
	set(fmt.Sprintf("B%d", tableRow), "Lucro bruto")
	set(fmt.Sprintf("C%d", tableRow), "Deduções")
	set(fmt.Sprintf("D%d", tableRow), "Reembolsos")
	set(fmt.Sprintf("E%d", tableRow), "Salário")
	set(fmt.Sprintf("F%d", tableRow), "Lucro líquido")

	for i, summary := range month.PartnerSummaries {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), summary.Name)
		set(fmt.Sprintf("B%d", row), summary.GrossProfit)
		set(fmt.Sprintf("C%d", row), summary.Deductions)
		set(fmt.Sprintf("D%d", row), summary.Reimbursements)
		if summary.Salary != nil {
			set(fmt.Sprintf("E%d", row), *summary.Salary)
		}
		set(fmt.Sprintf("F%d", row), summary.NetProfit)
	}

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "F", 16)
	return nil
}

func (g *Generator) writeServices(file *excelize.File, sheet string, month model.ClosedMonth) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Data", "Cliente", "Área", "Tipo", "Hectares", "Preço/ha", "Valor total"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, service := range month.Services {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), formatDate(service.Date))
		set(fmt.Sprintf("B%d", row), service.ClientName)
		set(fmt.Sprintf("C%d", row), service.AreaName)
		set(fmt.Sprintf("D%d", row), string(service.Type))
		set(fmt.Sprintf("E%d", row), service.Hectares)
		set(fmt.Sprintf("F%d", row), service.UnitPrice)
		set(fmt.Sprintf("G%d", row), service.TotalValue)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "C", 30)
	_ = file.SetColWidth(sheet, "D", "D", 18)
	_ = file.SetColWidth(sheet, "E", "G", 14)
	return nil
}

func (g *Generator) writeExpenses(file *excelize.File, sheet string, month model.ClosedMonth) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"Data", "Descrição", "Categoria", "Pago por", "Valor"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, expense := range month.Expenses {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), formatDate(expense.Date))
		set(fmt.Sprintf("B%d", row), expense.Description)
		set(fmt.Sprintf("C%d", row), expense.Category)
		set(fmt.Sprintf("D%d", row), expense.PaidBy)
		set(fmt.Sprintf("E%d", row), expense.Amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "D", 20)
	_ = file.SetColWidth(sheet, "E", "E", 14)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
