package statements

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/redline/internal/model"
)

// Sheet names used in the XLSX export.
const (
	SheetIncome       = "Income Statement"
	SheetBalance      = "Balance Sheet"
	SheetCashFlow     = "Cash Flow"
	SheetTrialBalance = "Trial Balance"
)

type row struct {
	label  string
	amount *decimal.Decimal
	bold   bool
}

func heading(label string) row { return row{label: label, bold: true} }

func amountRow(label string, d decimal.Decimal) row { return row{label: label, amount: &d} }

func totalRow(label string, d decimal.Decimal) row { return row{label: label, amount: &d, bold: true} }

func lineRows(lines []Line) []row {
	out := make([]row, 0, len(lines))
	for _, l := range lines {
		out = append(out, amountRow("  "+l.Code+" "+l.Name, l.Amount))
	}
	return out
}

func incomeRows(is IncomeStatement) []row {
	return []row{
		amountRow("Revenue", is.Revenue),
		amountRow("Cost of goods sold", is.COGS),
		totalRow("Gross profit", is.GrossProfit),
		amountRow("Operating expenses", is.OpEx),
		totalRow("Operating income", is.OperatingIncome),
		amountRow("Other income", is.OtherIncome),
		amountRow("Other expense", is.OtherExpense),
		amountRow("Interest", is.Interest),
		totalRow("Pretax income", is.PretaxIncome),
		amountRow("Tax", is.Tax),
		totalRow("Net income", is.NetIncome),
	}
}

func balanceRows(bs BalanceSheet) []row {
	rows := []row{heading("Assets")}
	rows = append(rows, lineRows(bs.Assets)...)
	rows = append(rows, totalRow("Total assets", bs.TotalAssets), heading("Liabilities"))
	rows = append(rows, lineRows(bs.Liabilities)...)
	rows = append(rows, totalRow("Total liabilities", bs.TotalLiabilities), heading("Equity"))
	rows = append(rows, lineRows(bs.Equity)...)
	rows = append(rows,
		amountRow("  "+bs.RetainedEarnings.Code+" "+bs.RetainedEarnings.Name+" (derived)", bs.RetainedEarnings.Amount),
		totalRow("Total equity", bs.TotalEquity),
		totalRow("Total liabilities and equity", bs.TotalLiabilitiesAndEquity),
		amountRow("Trial balance check", bs.Check),
	)
	return rows
}

func cashFlowRows(cf CashFlowDirect) []row {
	rows := []row{heading("Operating activities")}
	rows = append(rows, lineRows(cf.Operating)...)
	rows = append(rows, totalRow("Net cash from operating", cf.TotalOperating), heading("Investing activities"))
	rows = append(rows, lineRows(cf.Investing)...)
	rows = append(rows, totalRow("Net cash from investing", cf.TotalInvesting), heading("Financing activities"))
	rows = append(rows, lineRows(cf.Financing)...)
	rows = append(rows,
		totalRow("Net cash from financing", cf.TotalFinancing),
		totalRow("Net change in cash", cf.NetChangeInCash),
		amountRow("Beginning cash", cf.BeginningCash),
		amountRow("Ending cash", cf.EndingCash),
		amountRow("Unexplained difference", cf.Difference),
	)
	return rows
}

func trialBalanceRows(tb TrialBalanceReport) []row {
	rows := lineRows(tb.Lines)
	rows = append(rows, heading("Totals by class"))
	for _, t := range tb.Totals {
		rows = append(rows, amountRow("  "+string(t.Class), t.Total))
	}
	return append(rows, totalRow("Check", tb.Check))
}

type section struct {
	sheet    string
	subtitle string
	rows     []row
}

func packSections(p Pack) []section {
	asOf := "As of " + p.End.Format(model.DateFormat)
	return []section{
		{SheetIncome, "Cumulative through " + p.End.Format(model.DateFormat), incomeRows(p.Income)},
		{SheetBalance, asOf, balanceRows(p.Balance)},
		{SheetCashFlow, fmt.Sprintf("After %s through %s", p.Start.Format(model.DateFormat), p.End.Format(model.DateFormat)), cashFlowRows(p.CashFlow)},
		{SheetTrialBalance, asOf, trialBalanceRows(p.TrialBalance)},
	}
}

// BuildPackXLSX renders the pack as a workbook with one sheet per statement.
func BuildPackXLSX(p Pack, company string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}

	for i, s := range packSections(p) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", s.sheet, err)
		}

		_ = f.SetCellValue(s.sheet, "A1", company+": "+s.sheet)
		_ = f.SetCellStyle(s.sheet, "A1", "A1", bold)
		_ = f.SetCellValue(s.sheet, "A2", s.subtitle)
		_ = f.SetColWidth(s.sheet, "A", "A", 48)
		_ = f.SetColWidth(s.sheet, "B", "B", 18)

		for j, r := range s.rows {
			n := j + 4
			label, amount := fmt.Sprintf("A%d", n), fmt.Sprintf("B%d", n)
			_ = f.SetCellValue(s.sheet, label, r.label)
			if r.amount != nil {
				_ = f.SetCellValue(s.sheet, amount, r.amount.InexactFloat64())
				_ = f.SetCellStyle(s.sheet, amount, amount, money)
			}
			if r.bold {
				_ = f.SetCellStyle(s.sheet, label, label, bold)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPackPDF renders the pack as a PDF with one page per statement.
func BuildPackPDF(p Pack, company string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	for _, s := range packSections(p) {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, company+": "+s.sheet)
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, s.subtitle)
		pdf.Ln(10)

		for _, r := range s.rows {
			style := ""
			if r.bold {
				style = "B"
			}
			pdf.SetFont("Arial", style, 10)
			pdf.CellFormat(130, 6, r.label, "", 0, "L", false, 0, "")
			amount := ""
			if r.amount != nil {
				amount = r.amount.StringFixed(model.MoneyPlaces)
			}
			pdf.CellFormat(50, 6, amount, "", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
