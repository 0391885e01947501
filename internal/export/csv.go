package export

import (
	"bytes"
	"encoding/csv"

	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// CSVHeader is the fixed column header of ticket exports.
var CSVHeader = []string{
	"Ticket",
	"Updated at",
	"Requester",
	"Created at",
	"Status",
	"Title",
	"Description",
	"Closed by",
	"Closed at",
	"Solution",
}

// RenderTicketsCSV writes the header and one row per ticket.
func RenderTicketsCSV(views ...TicketView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, apperrors.NewExportError(err)
	}
	for _, v := range views {
		if err := w.Write(v.Row()); err != nil {
			return nil, apperrors.NewExportError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.NewExportError(err)
	}
	return buf.Bytes(), nil
}
