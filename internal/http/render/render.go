// Package render writes the JSON envelope every API response shares and maps
// errors onto HTTP status codes.
package render

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/logging"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const maxBodyBytes = 1 << 20

type Envelope struct {
	Status  string              `json:"status"`
	Data    any                 `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

type Renderer struct {
	logger *slog.Logger
	debug  bool
}

// New returns a Renderer. With debug set, unexpected errors expose their text
// to the caller instead of a generic message.
func New(logger *slog.Logger, debug bool) *Renderer {
	return &Renderer{logger: logger, debug: debug}
}

// JSON writes data inside a success envelope.
func (rd *Renderer) JSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	rd.write(w, r, status, Envelope{Status: StatusSuccess, Data: data})
}

// Error writes err inside an error envelope with the status its kind maps to.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, env := rd.classify(err)

	if status >= http.StatusInternalServerError {
		rd.logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"request_id", logging.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
	}

	rd.write(w, r, status, env)
}

func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.write(w, r, http.StatusNotFound, Envelope{Status: StatusError, Message: "Route not found"})
}

func (rd *Renderer) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rd.write(w, r, http.StatusMethodNotAllowed, Envelope{Status: StatusError, Message: "Method not allowed"})
}

func (rd *Renderer) classify(err error) (int, Envelope) {
	env := Envelope{Status: StatusError}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		env.Message = appErr.Message
		env.Errors = appErr.Fields

		switch appErr.Kind {
		case apperr.KindValidation, apperr.KindReference:
			return http.StatusBadRequest, env
		case apperr.KindNotFound:
			return http.StatusNotFound, env
		case apperr.KindConflict:
			return http.StatusConflict, env
		}
	}

	env.Errors = nil

	// SQLSTATE codes that reach the boundary untranslated.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			env.Message = "Resource already exists"
			return http.StatusConflict, env
		case pgerrcode.ForeignKeyViolation:
			env.Message = "Invalid reference to related resource"
			return http.StatusBadRequest, env
		case pgerrcode.CheckViolation:
			env.Message = "Value violates a check constraint"
			return http.StatusBadRequest, env
		}
	}

	env.Message = "Internal server error"
	if rd.debug {
		env.Message = err.Error()
	}

	return http.StatusInternalServerError, env
}

func (rd *Renderer) write(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		rd.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into dst. Malformed bodies are reported as
// validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var (
			syntaxErr *json.SyntaxError
			typeErr   *json.UnmarshalTypeError
			sizeErr   *http.MaxBytesError
		)

		switch {
		case errors.Is(err, io.EOF):
			return apperr.Invalid("Request body is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return apperr.Validation(apperr.FieldError{
				Field:   typeErr.Field,
				Message: "Must be a " + typeErr.Type.String(),
			})
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return apperr.Invalid("Malformed JSON body")
		case errors.As(err, &sizeErr):
			return apperr.Invalid("Request body is too large")
		}

		return apperr.Invalid("Invalid request body")
	}

	return nil
}

// PathID parses the named URL parameter as a positive integer id.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation(apperr.FieldError{Field: name, Message: "Must be a positive integer"})
	}

	return id, nil
}
