package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/utils"
)

func (s *Server) handleCreateManual(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, r, common.WrapError(err, "reading request body"))
		return
	}
	rec, err := s.receipts.CreateManual(r.Context(), userID, payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, rec)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeError(w, r, &common.AppError{
			Code:    "FILE_TOO_LARGE",
			Message: "Uploaded file exceeds the size limit",
			Cause:   common.ErrInvalidInput,
		})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, &common.AppError{
			Code:    "NO_FILE",
			Message: "No file uploaded",
			Cause:   common.ErrInvalidInput,
		})
		return
	}
	defer file.Close()

	rec, err := s.receipts.Upload(r.Context(), userID, header.Filename, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusCreated, rec)
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// an unparseable id can't name an existing receipt
		s.writeError(w, r, common.NotFoundError("receipt"))
		return
	}
	rec, err := s.receipts.Get(r.Context(), id, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, common.NotFoundError("receipt"))
		return
	}
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, r, common.WrapError(err, "reading request body"))
		return
	}
	rec, err := s.receipts.Update(r.Context(), id, userID, payload)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := s.receipts.List(r.Context(), userID, q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, page)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.UnauthorizedError("Missing bearer token"))
		return
	}

	from, err := exportBound(r.URL.Query().Get("startDate"), false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	to, err := exportBound(r.URL.Query().Get("endDate"), true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := s.export.ExportReceiptsXLSX(r.Context(), userID, from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("receipts-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// exportBound parses an optional date bound, pushing a bare end date to the
// end of its day so the window stays inclusive.
func exportBound(s string, end bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(s)
	if err != nil {
		field := "startDate"
		if end {
			field = "endDate"
		}
		return nil, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: field, Message: field + " must be a valid date or date-time"},
		}}
	}
	if end && len(s) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
