package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	summaryFont       = "Helvetica"
	summaryLineHeight = 6.0
	summaryLabelWidth = 70.0
)

// renderSummaryPDF lays out the same sections as the notification body on A4
// pages. createdAt is stamped into the document metadata so that the output
// is reproducible for a given submission.
func renderSummaryPDF(view notificationView, createdAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// resource catalogs are maps; sort them so object numbers are stable
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Flight Time Experience Form - "+view.SubmissionID, true)
	pdf.SetCreator("pilot-docs-intake", true)
	if !createdAt.IsZero() {
		pdf.SetCreationDate(createdAt)
		pdf.SetModificationDate(createdAt)
	}
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// core fonts are cp1252; names with accents would otherwise garble
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(summaryFont, "B", 16)
	pdf.SetTextColor(30, 58, 138)
	pdf.CellFormat(0, 10, tr("Flight Time Experience Form Submission"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	section := func(title string, rows []fieldRow) {
		pdf.SetFont(summaryFont, "B", 12)
		pdf.SetTextColor(55, 65, 81)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		for _, row := range rows {
			pdf.SetFont(summaryFont, "B", 10)
			pdf.CellFormat(summaryLabelWidth, summaryLineHeight, tr(row.Label), "", 0, "L", false, 0, "")
			pdf.SetFont(summaryFont, "", 10)
			pdf.MultiCell(0, summaryLineHeight, tr(row.Value), "", "L", false)
		}
		pdf.Ln(3)
	}

	section("Submission", []fieldRow{
		{Label: "Submission ID", Value: view.SubmissionID},
		{Label: "Received", Value: view.SubmittedAt},
		{Label: "Form Version", Value: view.SchemaVersion},
	})
	section("Personal Information", view.PersonalInfo)
	section("Flight Hours", view.FlightHours)

	for _, aircraft := range view.Aircraft {
		rows := aircraft.Data
		if len(rows) == 0 {
			rows = []fieldRow{{Label: "Flight data", Value: "No flight data entered for this aircraft type."}}
		}
		section(fmt.Sprintf("Aircraft Type %d: %s", aircraft.Index, aircraft.Type), rows)
	}

	checklist := make([]fieldRow, 0, len(view.Checklist))
	for _, row := range view.Checklist {
		checklist = append(checklist, fieldRow{Label: row.Title, Value: row.Status})
	}
	section(fmt.Sprintf("Documents (%d of %d)", view.UploadedCount, len(view.Checklist)), checklist)
	section("Declaration", view.Declaration)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error rendering summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
