package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

const (
	regular = ""
	bold    = "B"
	family  = "Arial"
)

// cell is one piece of text placed at a fixed position. y is measured from
// the bottom edge of the page.
type cell struct {
	x, y  float64
	style string
	size  float64
	text  string
}

func ticketLayout(v TicketView) []cell {
	return []cell{
		{400, 820, bold, 10, "Updated at:"},
		{460, 820, regular, 10, v.UpdatedAt},
		{50, 785, regular, 16, "Ticket:"},
		{100, 785, bold, 17, v.ID},
		{50, 750, bold, 12, "Requester:"},
		{120, 750, regular, 12, v.Requester},
		{375, 750, bold, 12, "Status:"},
		{420, 750, regular, 12, v.Status},
		{50, 720, bold, 12, "Title:"},
		{86, 720, regular, 12, v.Title},
		{50, 700, bold, 12, "Created at:"},
		{120, 700, regular, 12, v.CreatedAt},
		{50, 675, bold, 12, "Description:"},
		{50, 660, regular, 11, v.Description},
		{50, 560, bold, 12, "Closed by:"},
		{120, 560, regular, 12, v.ClosedBy},
		{375, 560, bold, 12, "Closed at:"},
		{440, 560, regular, 12, v.ClosedAt},
		{50, 540, bold, 12, "Solution:"},
		{110, 540, regular, 11, v.Solution},
	}
}

// RenderTicketPDF lays v out on a single A4 page. Text is neither wrapped
// nor paginated.
func RenderTicketPDF(v TicketView) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Ticket "+v.ID, true)
	pdf.SetCreator("support-desk", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, height := pdf.GetPageSize()
	for _, c := range ticketLayout(v) {
		pdf.SetFont(family, c.style, c.size)
		pdf.Text(c.x, height-c.y, tr(c.text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewExportError(err)
	}
	return buf.Bytes(), nil
}
