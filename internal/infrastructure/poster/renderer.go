// Package poster draws show posters and rehearsal plans as PDF with fpdf.
package poster

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sommertheater/portal/internal/domain/poster"
	"github.com/sommertheater/portal/internal/domain/rehearsals"
)

const fontFamily = "Helvetica"

var germanWeekdays = [...]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Renderer produces A4 documents. Text is translated to cp1252 so German
// umlauts survive the core fonts.
type Renderer struct {
	now func() time.Time
}

// NewRenderer returns a renderer. now stamps the document metadata.
func NewRenderer(now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{now: now}
}

var (
	_ poster.Renderer         = (*Renderer)(nil)
	_ rehearsals.PlanRenderer = (*Renderer)(nil)
)

func (r *Renderer) newDocument(orientation, title string) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("sommertheater-portal", true)
	pdf.SetCreationDate(r.now())
	pdf.SetAutoPageBreak(true, 15)
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

// RenderPoster lays out a single-page portrait poster.
func (r *Renderer) RenderPoster(c *poster.Content) ([]byte, error) {
	if c == nil || strings.TrimSpace(c.Title) == "" {
		return nil, fmt.Errorf("poster needs a title")
	}

	pdf, tr := r.newDocument("P", c.Title)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 40

	pdf.SetFillColor(128, 24, 36)
	pdf.Rect(0, 0, pageW, 70, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFamily, "", 14)
	pdf.SetXY(20, 18)
	org := c.Organization
	if c.City != "" {
		org = fmt.Sprintf("%s %s", org, c.City)
	}
	pdf.CellFormat(contentW, 8, tr(strings.ToUpper(org)), "", 1, "C", false, 0, "")

	pdf.SetFont(fontFamily, "B", 34)
	pdf.SetXY(20, 32)
	pdf.MultiCell(contentW, 14, tr(c.Title), "", "C", false)

	pdf.SetTextColor(40, 40, 40)
	pdf.SetY(82)
	if c.Subtitle != "" {
		pdf.SetFont(fontFamily, "I", 18)
		pdf.MultiCell(contentW, 9, tr(c.Subtitle), "", "C", false)
		pdf.Ln(6)
	}

	if c.PremiereDate != nil {
		pdf.SetFont(fontFamily, "B", 16)
		pdf.CellFormat(contentW, 9, tr("Premiere: "+FormatLongDate(*c.PremiereDate)), "", 1, "C", false, 0, "")
	}
	if c.Venue != "" {
		pdf.SetFont(fontFamily, "", 14)
		pdf.CellFormat(contentW, 8, tr(c.Venue), "", 1, "C", false, 0, "")
	}
	if c.Director != "" {
		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(contentW, 8, tr("Regie: "+c.Director), "", 1, "C", false, 0, "")
	}

	if synopsis := plainText(c.Synopsis); synopsis != "" {
		pdf.Ln(10)
		pdf.SetFont(fontFamily, "", 12)
		pdf.MultiCell(contentW, 6, tr(synopsis), "", "J", false)
	}

	pdf.SetFont(fontFamily, "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(20, pageH-20)
	pdf.CellFormat(contentW, 5, tr(c.Organization), "", 0, "C", false, 0, "")

	return output(pdf)
}

// RenderPlan prints rehearsals as a landscape table in the plan's time zone.
func (r *Renderer) RenderPlan(plan *rehearsals.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	loc := plan.TimeZone
	if loc == nil {
		loc = time.UTC
	}
	title := plan.Title
	if title == "" {
		title = "Probenplan"
	}

	pdf, tr := r.newDocument("L", title)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, 6, tr(plan.Organization), "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := []struct {
		head  string
		width float64
	}{
		{"Datum", 38}, {"Zeit", 28}, {"Titel", 80}, {"Ort", 70}, {"Status", 30},
	}

	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range cols {
		pdf.CellFormat(col.width, 8, tr(col.head), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	if len(plan.Rehearsals) == 0 {
		pdf.CellFormat(246, 8, tr("Keine Proben geplant."), "1", 1, "L", false, 0, "")
	}
	for _, reh := range plan.Rehearsals {
		start := reh.StartsAt.In(loc)
		end := reh.EndsAt.In(loc)
		status := "geplant"
		if reh.Status == rehearsals.StatusCancelled {
			status = "abgesagt"
		}
		cells := []string{
			fmt.Sprintf("%s %s", germanWeekdays[start.Weekday()], start.Format("02.01.2006")),
			fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04")),
			truncate(reh.Title, 45),
			truncate(reh.Location, 40),
			status,
		}
		for i, col := range cols {
			pdf.CellFormat(col.width, 7, tr(cells[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatLongDate renders t like "Samstag, 4. Juli 2026".
func FormatLongDate(t time.Time) string {
	days := [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
	return fmt.Sprintf("%s, %d. %s %d", days[t.Weekday()], t.Day(), germanMonths[t.Month()-1], t.Year())
}

// plainText strips the most common markdown markers from a synopsis.
func plainText(md string) string {
	replacer := strings.NewReplacer("**", "", "__", "", "`", "")
	var lines []string
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#>")
		line = strings.TrimSpace(line)
		lines = append(lines, replacer.Replace(line))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
