package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/coursecrawl/internal/course"
)

// WriteSummaryPDF renders a small human-readable crawl summary: row totals
// per platform and per category, followed by the course titles. It is an
// optional companion artifact to the CSV, intentionally simple.
func WriteSummaryPDF(rows []course.Record, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Course crawl summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s — %d courses", time.Now().Format(time.RFC1123), len(rows)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeCounts(pdf, "By platform", countBy(rows, func(r course.Record) string { return r.Platform }))
	writeCounts(pdf, "By category", countBy(rows, func(r course.Record) string { return r.CategoryQuery }))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Courses", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		pdf.MultiCell(0, 5, fmt.Sprintf("%s — %s (%s)", title, r.Platform, r.Level), "", "L", false)
	}

	return pdf.OutputFileAndClose(path)
}

func writeCounts(pdf *gofpdf.Fpdf, heading string, counts map[string]int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %d", k, counts[k]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func countBy(rows []course.Record, key func(course.Record) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[key(r)]++
	}
	return counts
}
