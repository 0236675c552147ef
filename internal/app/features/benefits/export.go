// internal/app/features/benefits/export.go
package benefits

import (
	"context"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/store/queries/benefitreport"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ServeExport streams the full disbursement history as a spreadsheet: one
// row per disbursement with seeker and type names joined in.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := benefitreport.ExportAll(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error exporting benefits", err, "A database error occurred.", "/benefits")
		return
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			h.Log.Warn("close export workbook", zap.Error(cerr))
		}
	}()

	const sheet = "Benefits"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create export sheet", err, "Building the export failed.", "/benefits")
		return
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		h.Log.Warn("drop default sheet", zap.Error(err))
	}

	headers := []string{"Date", "Seeker", "Benefit Type", "Cost"}
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			h.ErrLog.LogServerError(w, r, "write export header", err, "Building the export failed.", "/benefits")
			return
		}
	}

	for i, row := range rows {
		values := []any{
			row.Date.Format("2006-01-02"),
			row.SeekerName,
			row.TypeName,
			row.Cost,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				h.ErrLog.LogServerError(w, r, "write export row", err, "Building the export failed.", "/benefits")
				return
			}
		}
	}

	filename := fmt.Sprintf("seekerhub-benefits-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(w); err != nil {
		// Headers are already gone; all we can do is log.
		h.Log.Error("stream export workbook", zap.Error(err))
	}
}
