package category

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/caszofficial/Expense-Control/internal/apperr"
)

const MaxNameLength = 100

var (
	ErrNotFound      = apperr.NotFound("Category not found")
	ErrDuplicateName = apperr.Conflict("Category name already exists")
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Category groups expenses under a display name and color.
type Category struct {
	ID        int64
	Name      string
	Color     string // #RRGGBB
	CreatedAt time.Time
}

// Params carries the user supplied fields of a category.
type Params struct {
	Name  string
	Color string
}

// Validate trims the name and checks both fields.
func (p *Params) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Color = strings.TrimSpace(p.Color)

	var fields apperr.Fields

	switch n := utf8.RuneCountInString(p.Name); {
	case n == 0:
		fields.Add("name", "Name is required")
	case n > MaxNameLength:
		fields.Add("name", "Name must be at most 100 characters")
	}

	if !ValidColor(p.Color) {
		fields.Add("color", "Color must be a valid hex color (e.g. #10b981)")
	}

	return fields.Err()
}

// ValidColor reports whether s is a #RRGGBB hex color.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}
