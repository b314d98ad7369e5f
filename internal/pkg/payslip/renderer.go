package payslip

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cmlabs-hris/hrms-payroll/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// The core PDF fonts have no rupee glyph.
const currencyLabel = "Rs."

// Renderer draws an A4 salary slip with gofpdf.
type Renderer struct {
	companyName string
}

func NewRenderer(companyName string) *Renderer {
	return &Renderer{companyName: companyName}
}

type line struct {
	label  string
	amount decimal.Decimal
}

// Render implements payroll.PayslipRenderer.
func (r *Renderer) Render(w io.Writer, result payroll.SalaryCalculationResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary Slip "+result.EmployeeInfo.CalculationMonth, false)
	pdf.SetAuthor(r.companyName, false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, r.companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Salary Slip for "+result.EmployeeInfo.CalculationMonth, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	info := result.EmployeeInfo
	summary := result.AttendanceSummary
	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range [][2]string{
		{"Employee ID", info.EmployeeID},
		{"Name", info.FullName},
		{"Department", info.Department},
		{"Designation", info.Designation},
		{"Working Days", strconv.Itoa(summary.TotalWorkingDays)},
		{"Days Present", strconv.Itoa(summary.PresentDays)},
		{"Attendance", summary.AttendancePercentage.StringFixed(2) + "%"},
	} {
		pdf.CellFormat(45, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	e := result.Earnings
	d := result.Deductions
	earnings := []line{
		{"Basic Salary", e.Basic},
		{"House Rent Allowance", e.HRA},
		{"Dearness Allowance", e.DA},
		{"Medical Allowance", e.MedicalAllowance},
		{"Transport Allowance", e.TransportAllowance},
		{"Special Allowance", e.SpecialAllowance},
	}
	deductions := []line{
		{"Provident Fund", d.PFEmployee},
		{"ESI", d.ESIEmployee},
		{"Professional Tax", d.ProfessionalTax},
		{"Income Tax (TDS)", d.IncomeTax},
	}

	const colLabel, colAmount = 55.0, 35.0
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colLabel, 7, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colAmount, 7, "Amount ("+currencyLabel+")", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colLabel, 7, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colAmount, 7, "Amount ("+currencyLabel+")", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := max(len(earnings), len(deductions))
	for i := 0; i < rows; i++ {
		writeLine(pdf, earnings, i, colLabel, colAmount, 0)
		writeLine(pdf, deductions, i, colLabel, colAmount, 1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colLabel, 7, "Gross Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 7, e.GrossSalary.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colLabel, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 7, d.TotalDeductions.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Net Salary: %s %s", currencyLabel, result.NetSalary.StringFixed(2)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	ec := result.EmployerContributions
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Employer contributions: PF %s, ESI %s, total %s",
		ec.PFEmployer.StringFixed(2), ec.ESIEmployer.StringFixed(2), ec.TotalEmployerContribution.StringFixed(2)),
		"", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "This is a system generated document and does not require a signature.", "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write salary slip pdf: %w", err)
	}
	return nil
}

func writeLine(pdf *gofpdf.Fpdf, lines []line, i int, colLabel, colAmount float64, ln int) {
	if i >= len(lines) {
		pdf.CellFormat(colLabel, 6, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 6, "", "1", ln, "R", false, 0, "")
		return
	}
	pdf.CellFormat(colLabel, 6, lines[i].label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, lines[i].amount.StringFixed(2), "1", ln, "R", false, 0, "")
}
