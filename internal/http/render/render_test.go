package render_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caszofficial/Expense-Control/internal/apperr"
	"github.com/caszofficial/Expense-Control/internal/http/render"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) render.Envelope {
	t.Helper()

	var env render.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func TestRenderer_Error(t *testing.T) {
	type testCase struct {
		name        string
		err         error
		debug       bool
		wantStatus  int
		wantMessage string
		wantFields  int
	}

	tests := []testCase{
		{
			name:        "Validation",
			err:         apperr.Validation(apperr.FieldError{Field: "name", Message: "Name is required"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Validation error",
			wantFields:  1,
		},
		{
			name:        "WrappedNotFound",
			err:         fmt.Errorf("getting: %w", apperr.NotFound("Expense not found")),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Expense not found",
		},
		{
			name:        "Conflict",
			err:         apperr.Conflict("Category name already exists"),
			wantStatus:  http.StatusConflict,
			wantMessage: "Category name already exists",
		},
		{
			name:        "Reference",
			err:         apperr.Reference("Category not found"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Category not found",
		},
		{
			name:        "UniqueViolation",
			err:         fmt.Errorf("inserting: %w", &pgconn.PgError{Code: "23505"}),
			wantStatus:  http.StatusConflict,
			wantMessage: "Resource already exists",
		},
		{
			name:        "ForeignKeyViolation",
			err:         &pgconn.PgError{Code: "23503"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid reference to related resource",
		},
		{
			name:        "CheckViolation",
			err:         &pgconn.PgError{Code: "23514"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Value violates a check constraint",
		},
		{
			name:        "InternalHidden",
			err:         errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
		{
			name:        "InternalDebug",
			err:         errors.New("connection refused"),
			debug:       true,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			render.New(discard(), tt.debug).Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			env := decodeEnvelope(t, rec)
			assert.Equal(t, render.StatusError, env.Status)
			assert.Equal(t, tt.wantMessage, env.Message)
			assert.Len(t, env.Errors, tt.wantFields)
			assert.Nil(t, env.Data)
		})
	}
}

func TestRenderer_JSON(t *testing.T) {
	rec := httptest.NewRecorder()

	render.New(discard(), false).JSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, []string{})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", input: `{"name":"Food"}`, want: "Food"},
		{name: "Empty", input: ``, wantErr: true},
		{name: "Malformed", input: `{"name":`, wantErr: true},
		{name: "WrongType", input: `{"name":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.input))

			var got body

			err := render.Decode(rec, req, &got)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestQueryParams(t *testing.T) {
	q := url.Values{
		"category_id": {"3"},
		"start_date":  {"2024-01-01"},
		"end_date":    {"2024-13-01"},
		"min_amount":  {"10.5"},
		"max_amount":  {"-1"},
	}

	var fields apperr.Fields

	assert.Equal(t, new(int64(3)), render.QueryID(q, "category_id", &fields))
	assert.Equal(t, new(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), render.QueryDate(q, "start_date", &fields))
	assert.Nil(t, render.QueryDate(q, "end_date", &fields))
	assert.Equal(t, "10.5", render.QueryAmount(q, "min_amount", &fields).String())
	assert.Nil(t, render.QueryAmount(q, "max_amount", &fields))
	assert.Nil(t, render.QueryID(q, "missing", &fields))

	require.Len(t, fields, 2)
	assert.Equal(t, "end_date", fields[0].Field)
	assert.Equal(t, "max_amount", fields[1].Field)
}

func TestParseDate(t *testing.T) {
	got, err := render.ParseDate("2024-01-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = render.ParseDate("15/01/2024")
	assert.Error(t, err)
}
