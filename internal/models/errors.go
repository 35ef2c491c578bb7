package models

import "errors"

var (
	// user-input errors
	ErrMissingProjectName = errors.New("project name is required")
	ErrMissingSpaceName   = errors.New("floor space name is required")

	// integrity violations between the annotation surface and the store
	ErrDuplicateID      = errors.New("floor space id already exists")
	ErrSpaceNotFound    = errors.New("floor space not found")
	ErrPlanNotFound     = errors.New("plan not found")
	ErrNoActiveDraft    = errors.New("no active draft for this plan")
	ErrOrphanAnnotation = errors.New("annotation has no backing floor space")

	// export resource errors
	ErrMissingImage      = errors.New("plan has no image")
	ErrArchiveGeneration = errors.New("failed to generate archive")
	ErrExportInProgress  = errors.New("an export is already in progress")
)
