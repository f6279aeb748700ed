// export.go implements GET /api/export: the whole journey collection as a
// flat table, as JSON by default or as CSV (without image payloads) with ?format=csv.

package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/handler/gen"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "destination", "date", "display_date", "description", "image_bytes",
}

// GetExport implements GET /api/export.
func (s *Server) GetExport(ctx context.Context, req gen.GetExportRequestObject) (gen.GetExportResponseObject, error) {
	format := gen.Json
	if req.Params.Format != nil {
		format = *req.Params.Format
	}
	if format != gen.Json && format != gen.Csv {
		return gen.GetExport400JSONResponse(requestBody("format must be json or csv")), nil
	}

	rows, err := s.export.Export(ctx)
	if err != nil {
		return nil, err
	}
	if format == gen.Csv {
		return buildCSVResponse(rows), nil
	}
	return buildJSONResponse(rows), nil
}

// buildJSONResponse converts domain rows to the typed JSON response; never null.
func buildJSONResponse(rows []domain.ExportRow) gen.GetExport200JSONResponse {
	out := make(gen.GetExport200JSONResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, gen.ExportRow{
			Id:          r.ID,
			Destination: r.Destination,
			Date:        r.Date,
			IsoDate:     isoDate(r.Date),
			DisplayDate: r.DisplayDate,
			Description: r.Description,
			ImageBytes:  r.ImageBytes,
			Image:       r.Image,
		})
	}
	return out
}

// buildCSVResponse encodes domain rows as CSV and wraps them in the streaming
// response type. Image payloads are left out to keep the file readable in a
// spreadsheet; image_bytes records their size.
func buildCSVResponse(rows []domain.ExportRow) gen.GetExport200TextcsvResponse {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // writes to a bytes.Buffer cannot fail
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write([]string{
			r.ID,
			r.Destination,
			r.Date,
			r.DisplayDate,
			r.Description,
			strconv.Itoa(r.ImageBytes),
		})
	}
	w.Flush()

	return gen.GetExport200TextcsvResponse{
		Body:          &buf,
		ContentLength: int64(buf.Len()),
	}
}
