package expense

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/export"
)

const maxUploadBytes = 10 << 20

// importCSV accepts the file either as the multipart field "file" or as the
// raw request body.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	body, err := uploadedFile(w, r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}
	defer body.Close()

	expenses, err := h.importSvc.Import(r.Context(), body)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	h.render.JSON(w, r, http.StatusCreated, importResponse{
		Imported: len(expenses),
		Expenses: toResponseList(expenses),
	})
}

func uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, apperr.Invalid("Failed to parse upload form")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.Validation(apperr.FieldError{Field: "file", Message: "CSV file is required"})
	}

	return file, nil
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilter(r)
	if err != nil {
		h.render.Error(w, r, err)
		return
	}

	var buf bytes.Buffer

	if _, err := h.exportSvc.WriteCSV(r.Context(), &buf, filter); err != nil {
		h.render.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}
