package validation

import (
	"fmt"
	"strings"

	"blackbook/internal/models"
)

// FieldError describes a validation failure for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// JoinFieldErrors formats a field error list for a single error message.
func JoinFieldErrors(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// PieceInput holds the piece fields validated at the upload boundary.
type PieceInput struct {
	Title     string
	PieceType string
	Surface   string
	Location  string
}

// ValidatePiece checks every piece field and returns the full list of
// failures rather than stopping at the first.
func ValidatePiece(in PieceInput) []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "is required"})
	} else if len(title) > 200 {
		errs = append(errs, FieldError{Field: "title", Message: "must not exceed 200 characters"})
	}

	if !models.PieceType(in.PieceType).Valid() {
		errs = append(errs, FieldError{Field: "piece_type", Message: fmt.Sprintf("%q is not a valid piece type", in.PieceType)})
	}
	if !models.Surface(in.Surface).Valid() {
		errs = append(errs, FieldError{Field: "surface", Message: fmt.Sprintf("%q is not a valid surface", in.Surface)})
	}

	if len(in.Location) > 200 {
		errs = append(errs, FieldError{Field: "location", Message: "must not exceed 200 characters"})
	}

	return errs
}

// ValidateCommentContent checks that comment content is non-empty and bounded.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > 10000 {
		return fmt.Errorf("content must not exceed 10000 characters")
	}
	return nil
}
