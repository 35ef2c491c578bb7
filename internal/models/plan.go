package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents one uploaded floor-plan image and the project it belongs
// to. Floor spaces are stored separately and reference the plan by its id.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	ProjectName string    `json:"project_name"`
	ImageName   string    `json:"image_name"`
	ImageType   string    `json:"image_type"`
	ImageData   []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project is the export-time aggregate: a snapshot of one plan and its floor
// spaces, built fresh for each export and never mutated.
type Project struct {
	Name        string
	ImageName   string
	ImageData   []byte
	FloorSpaces []FloorSpace
}
