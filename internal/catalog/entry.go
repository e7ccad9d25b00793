// Package catalog provides the movie/TV catalog entry resource: model,
// validation, persistence, and HTTP endpoints.
package catalog

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Kind classifies a catalog entry.
type Kind string

// Entry kinds. The enumeration is closed; any other value fails validation.
const (
	KindMovie  Kind = "Movie"
	KindTVShow Kind = "TV Show"
)

// Entry represents a stored catalog entry. The identifier and creation
// time are assigned by the store and never change afterwards.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Kind       Kind      `json:"type"`
	Director   string    `json:"director,omitempty"`
	Budget     *float64  `json:"budget,omitempty"`
	Location   string    `json:"location,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	YearOrTime string    `json:"yearOrTime,omitempty"`
	Details    string    `json:"details,omitempty"`
	ImagePath  string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateCommand contains the data required to create a new entry.
// ImagePath is attached by the handler when an image file accompanied
// the request.
type CreateCommand struct {
	Title      string `validate:"required"`
	Kind       Kind   `validate:"required,oneof='Movie' 'TV Show'"`
	Director   string
	Budget     *float64
	Location   string
	Duration   string
	YearOrTime string
	Details    string
	ImagePath  string
}

// Validate checks the command against the entry schema.
func (c CreateCommand) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ValidationError{err: err}
	}
	return nil
}

// UpdateCommand contains the fields to modify on an existing entry.
// Nil fields are left untouched; ImagePath is set only when a new image
// file accompanied the request.
type UpdateCommand struct {
	Title      *string `validate:"omitempty,min=1"`
	Kind       *Kind   `validate:"omitempty,oneof='Movie' 'TV Show'"`
	Director   *string
	Budget     *float64
	Location   *string
	Duration   *string
	YearOrTime *string
	Details    *string
	ImagePath  *string
}

// Validate checks the supplied fields against the entry schema.
func (c UpdateCommand) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ValidationError{err: err}
	}
	return nil
}
