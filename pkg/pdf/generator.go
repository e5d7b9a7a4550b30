package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/signintech/gopdf"

	"github.com/crime-alert/backend/internal/domain"
)

const fontName = "dejavu"

var fontPaths = []string{
	"./fonts/DejaVuSans.ttf",
	"fonts/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
}

// Generator renders the crime statistics summary handed out to police
// and admin users as a downloadable PDF.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) StatisticsReport(stats *domain.Statistics) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: *gopdf.PageSizeA4,
		Unit:     gopdf.Unit_PT,
	})

	if err := loadFont(pdf); err != nil {
		return nil, err
	}

	pdf.AddPage()

	if err := pdf.SetFont(fontName, "", 18); err != nil {
		return nil, fmt.Errorf("set font failed: %w", err)
	}
	writeLine(pdf, "Crime Alert System — Statistics Report", 28)

	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return nil, fmt.Errorf("set font failed: %w", err)
	}
	writeLine(pdf, "Generated at "+time.Now().Format(time.RFC1123), 24)

	writeLine(pdf, fmt.Sprintf("Total crimes reported: %d", stats.Overview.TotalCrimes), 16)
	writeLine(pdf, fmt.Sprintf("Registered users: %d", stats.Overview.TotalUsers), 24)

	writeLine(pdf, "Crimes by category:", 16)
	for _, row := range stats.ByCategory {
		writeLine(pdf, fmt.Sprintf("  %s: %d", row.Category, row.Count), 14)
	}
	writeLine(pdf, "", 10)

	writeLine(pdf, "Crimes by severity:", 16)
	for _, row := range stats.BySeverity {
		writeLine(pdf, fmt.Sprintf("  %s: %d", row.Severity, row.Count), 14)
	}
	writeLine(pdf, "", 10)

	writeLine(pdf, "Crimes by city:", 16)
	for _, row := range stats.ByCity {
		writeLine(pdf, fmt.Sprintf("  %s: %d", row.City, row.Count), 14)
	}

	return pdf.GetBytesPdf(), nil
}

func writeLine(pdf *gopdf.GoPdf, text string, height float64) {
	pdf.SetX(40)
	_ = pdf.Cell(nil, text)
	pdf.Br(height)
}

func loadFont(pdf *gopdf.GoPdf) error {
	wd, _ := os.Getwd()

	paths := append([]string{filepath.Join(wd, "fonts", "DejaVuSans.ttf")}, fontPaths...)
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := pdf.AddTTFFont(fontName, path); err == nil {
			return nil
		}
	}

	return errors.New("no usable ttf font found for pdf report")
}
