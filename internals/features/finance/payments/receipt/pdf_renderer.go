// Package receipt renders payment receipts as PDF documents.
package receipt

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"smartedu_backend/internals/features/finance/payments/service"
	"smartedu_backend/internals/helpers/dbtime"
)

const dateLayout = "02 Jan 2006 15:04 MST"

// PDFRenderer prints every timestamp in the school's timezone.
type PDFRenderer struct {
	loc *time.Location
}

// NewPDFRenderer: loc nil = UTC
func NewPDFRenderer(loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{loc: loc}
}

func (r *PDFRenderer) Render(d service.ReceiptData) (io.Reader, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt "+d.TransactionID, true)
	pdf.SetCreator(d.SchoolName, true)
	pdf.AddPage()

	/* ===== Header ===== */
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, d.SchoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	y := pdf.GetY()
	pdf.Line(15, y, 195, y)
	pdf.Ln(6)

	/* ===== Body ===== */
	paid := "-"
	if d.PaymentDate != nil {
		paid = dbtime.ToSchoolTimePtr(d.PaymentDate, r.loc).Format(dateLayout)
	}
	rows := [][2]string{
		{"Student ID", d.StudentID},
		{"Student Name", d.StudentName},
		{"Class", d.Class},
		{"Month", d.Month},
		{"Academic Year", d.AcademicYear},
		{"Amount", fmt.Sprintf("%s %s", d.Currency, d.Amount.StringFixed(2))},
		{"Transaction ID", d.TransactionID},
		{"Payment Date", paid},
		{"Payment Status", strings.ToUpper(string(d.PaymentStatus))},
	}
	for _, r := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, r[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, r[1], "", 1, "L", false, 0, "")
	}

	/* ===== Footer ===== */
	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, "Authorized Signature: ______________________", "", 1, "R", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated on "+dbtime.ToSchoolTime(d.GeneratedAt, r.loc).Format(dateLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Document ID: "+d.DocumentID, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
