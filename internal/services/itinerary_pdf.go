package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"yatra/internal/models/db_models"
	resp "yatra/internal/models/response_models"
	"yatra/internal/planner"
	"yatra/pkg/utils"
)

const qrSize = 256

// RenderItineraryPDF lays out an itinerary on A4 pages with a QR code that
// links to its shareable page.
func RenderItineraryPDF(it *db_models.Itinerary, summary resp.TripSummary, shareURL string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode share qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(it.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(140, 9, tr(it.Title), "", "L", false)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("share-qr", 160, 10, 35, 35, false, imageOpts, 0, shareURL)

	pdf.SetFont("Arial", "", 10)
	pdf.Ln(2)
	pdf.Cell(0, 6, fmt.Sprintf("%s to %s  |  %d days  |  %d travellers (%s)",
		utils.FormatDisplayIST(it.StartDate), utils.FormatDisplayIST(it.EndDate),
		it.Duration, it.GroupSize, it.GroupType))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Budget: INR %d (%s)  |  Estimated cost: INR %d  |  Avg per day: INR %d",
		it.BudgetTotal, it.BudgetType, summary.TotalCost, summary.AvgDailyCost))
	pdf.Ln(8)
	if it.Description != "" {
		pdf.MultiCell(140, 5, tr(it.Description), "", "L", false)
	}
	if pdf.GetY() < 50 {
		pdf.SetY(50)
	}

	writeBreakdown(pdf, it.BudgetBreakdown.Data())
	for _, day := range it.Days {
		writeDay(pdf, tr, day)
	}
	writeList(pdf, tr, "Cultural Notes", it.CulturalNotes)
	writeList(pdf, tr, "Travel Tips", it.TravelTips)
	writeList(pdf, tr, "Local Experiences", it.LocalExperiences)

	emergency := it.EmergencyInfo.Data()
	writeList(pdf, tr, "Emergency Numbers", emergency.ImportantNumbers)
	writeList(pdf, tr, "Nearest Hospitals", emergency.NearestHospitals)

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, tr("Scan the code or visit "+shareURL+" to view this itinerary online."))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(235, 242, 235)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func writeBreakdown(pdf *gofpdf.Fpdf, b planner.BudgetBreakdown) {
	sectionHeading(pdf, "Budget Breakdown")
	rows := []struct {
		label  string
		amount planner.Cost
	}{
		{"Accommodation", b.Accommodation},
		{"Transport", b.Transport},
		{"Food", b.Food},
		{"Activities", b.Activities},
		{"Miscellaneous", b.Miscellaneous},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 6, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("INR %d", row.amount), "B", 1, "R", false, 0, "")
	}
}

func writeDay(pdf *gofpdf.Fpdf, tr func(string) string, day planner.ItineraryDay) {
	title := day.Title
	if title == "" {
		title = fmt.Sprintf("Day %d", day.DayNumber)
	}
	sectionHeading(pdf, tr(title))
	if day.Date != "" || day.Location != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 5, tr(strings.Trim(day.Date+"  "+day.Location, " ")))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
	}

	for _, a := range day.Activities {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(30, 6, fmt.Sprintf("%s-%s", a.StartTime, a.EndTime), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(a.Activity.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		if a.Activity.Description != "" {
			pdf.SetX(pdf.GetX() + 30)
			pdf.MultiCell(0, 5, tr(a.Activity.Description), "", "L", false)
		}
		if a.Activity.EstimatedCost > 0 {
			pdf.SetX(pdf.GetX() + 30)
			pdf.Cell(0, 5, fmt.Sprintf("Cost: INR %d", a.Activity.EstimatedCost))
			pdf.Ln(5)
		}
		pdf.SetFont("Arial", "", 10)
	}

	if day.Accommodation != nil && day.Accommodation.Name != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Stay: %s (%s), INR %d", day.Accommodation.Name, day.Accommodation.Type, day.Accommodation.EstimatedCost)))
		pdf.Ln(6)
	}
	if len(day.Meals) > 0 {
		meals := make([]string, 0, len(day.Meals))
		for _, m := range day.Meals {
			meals = append(meals, fmt.Sprintf("%s: %s", m.Type, m.Cuisine))
		}
		pdf.MultiCell(0, 5, tr("Meals: "+strings.Join(meals, "; ")), "", "L", false)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Day total: INR %d", day.TotalDayCost))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
}

func writeList(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sectionHeading(pdf, title)
	for _, item := range items {
		pdf.MultiCell(0, 5, tr("- "+item), "", "L", false)
	}
}
