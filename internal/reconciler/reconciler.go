// Package reconciler bridges the browser's annotation surface to the
// floor-space store. It stages drafts for newly drawn regions, resolves
// geometry edits against stored coordinates, and keeps overlay and record in
// sync under delete.
package reconciler

import (
	"log"
	"sync"

	"floormapper-backend/internal/geometry"
	"floormapper-backend/internal/models"
	"floormapper-backend/internal/repo"

	"github.com/google/uuid"
)

// AnnotationSurface is the narrow command interface back into the drawing
// surface. The backend only ever asks it to drop an overlay.
type AnnotationSurface interface {
	RemoveAnnotation(planID uuid.UUID, annotationID string)
}

// Annotation mirrors the event payload the annotation surface emits:
// annotation.target.selector.geometry.bounds in source-pixel space.
type Annotation struct {
	ID     string `json:"id"`
	Target struct {
		Selector struct {
			Geometry struct {
				Bounds geometry.Bounds `json:"bounds"`
			} `json:"geometry"`
		} `json:"selector"`
	} `json:"target"`
}

// SpaceForm carries the fields of a new-space or update-space confirmation.
type SpaceForm struct {
	Name        string
	Description string
	Color       string
	Attachments []models.Attachment
}

type draft struct {
	annotationID string
	coordinates  models.Coordinates
}

type edit struct {
	annotationID string
	stored       models.Coordinates
	proposed     models.Coordinates
}

type Reconciler struct {
	mu      sync.Mutex
	spaces  repo.SpaceRepoInterface
	surface AnnotationSurface
	drafts  map[uuid.UUID]*draft
	edits   map[uuid.UUID]*edit
}

func New(spaces repo.SpaceRepoInterface, surface AnnotationSurface) *Reconciler {
	return &Reconciler{
		spaces:  spaces,
		surface: surface,
		drafts:  make(map[uuid.UUID]*draft),
		edits:   make(map[uuid.UUID]*edit),
	}
}

// OnCreateAnnotation stages the drawn geometry as the plan's current draft.
// No record is created yet: geometry alone is not a valid floor space, the
// name comes with the form confirmation.
func (r *Reconciler) OnCreateAnnotation(planID uuid.UUID, a Annotation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[planID] = &draft{
		annotationID: a.ID,
		coordinates:  geometry.BoundsToCoordinates(a.Target.Selector.Geometry.Bounds),
	}
}

// ConfirmNew turns the current draft plus the submitted form into a stored
// floor space. Confirming without a prior createAnnotation event is a
// UI/reconciler desynchronization and is rejected.
func (r *Reconciler) ConfirmNew(planID uuid.UUID, form SpaceForm) (models.FloorSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[planID]
	if !ok {
		return models.FloorSpace{}, models.ErrNoActiveDraft
	}
	if form.Name == "" {
		return models.FloorSpace{}, models.ErrMissingSpaceName
	}

	space := models.FloorSpace{
		ID:          d.annotationID,
		Name:        form.Name,
		Description: form.Description,
		Coordinates: d.coordinates,
		Shape:       models.Rectangle,
		Color:       form.Color,
		Attachments: form.Attachments,
	}
	if _, err := r.spaces.CreateSpace(planID, space); err != nil {
		// draft stays staged; redrawing replaces it
		return models.FloorSpace{}, err
	}

	delete(r.drafts, planID)
	return space, nil
}

// OnUpdateAnnotation captures both the stored and the proposed coordinates
// for an existing space and returns the current record so the edit form can
// be pre-filled. An update event for an id without a backing record means
// overlay and store have diverged.
func (r *Reconciler) OnUpdateAnnotation(planID uuid.UUID, a Annotation) (models.FloorSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, ok := r.spaces.GetSpace(planID, a.ID)
	if !ok {
		return models.FloorSpace{}, models.ErrOrphanAnnotation
	}

	r.edits[planID] = &edit{
		annotationID: a.ID,
		stored:       space.Coordinates,
		proposed:     geometry.BoundsToCoordinates(a.Target.Selector.Geometry.Bounds),
	}
	return space, nil
}

// ConfirmUpdate commits the staged edit. If the proposed geometry equals the
// stored one the stored value is kept bit-identical, so an accidental nudge
// that was dragged back does not introduce precision drift.
func (r *Reconciler) ConfirmUpdate(planID uuid.UUID, form SpaceForm) (models.FloorSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.edits[planID]
	if !ok {
		return models.FloorSpace{}, models.ErrNoActiveDraft
	}
	if form.Name == "" {
		return models.FloorSpace{}, models.ErrMissingSpaceName
	}

	coords := e.proposed
	if geometry.CoordinatesEqual(e.proposed, e.stored) {
		coords = e.stored
	}

	patch := models.SpacePatch{
		Name:        &form.Name,
		Description: &form.Description,
		Coordinates: &coords,
		Color:       &form.Color,
		Attachments: form.Attachments,
	}
	space, err := r.spaces.UpdateSpace(planID, e.annotationID, patch)
	if err != nil {
		return models.FloorSpace{}, err
	}

	delete(r.edits, planID)
	return space, nil
}

// DeleteSpace removes the record and instructs the surface to drop the
// overlay. A missing record is tolerated: the overlay is cleaned up either
// way, favoring a consistent UI over strict store consistency.
func (r *Reconciler) DeleteSpace(planID uuid.UUID, annotationID string) (models.FloorSpace, bool) {
	r.mu.Lock()
	space, ok := r.spaces.DeleteSpace(planID, annotationID)
	if !ok {
		log.Printf("delete of unknown floor space %s on plan %s, cleaning overlay anyway", annotationID, planID)
	}
	r.dropStaged(planID, annotationID)
	r.mu.Unlock()

	if r.surface != nil {
		r.surface.RemoveAnnotation(planID, annotationID)
	}
	return space, ok
}

// OnDeleteAnnotation handles a surface-initiated delete: the overlay is
// already gone, only the record needs removing.
func (r *Reconciler) OnDeleteAnnotation(planID uuid.UUID, a Annotation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.spaces.DeleteSpace(planID, a.ID); !ok {
		log.Printf("deleteAnnotation for unknown floor space %s on plan %s", a.ID, planID)
	}
	r.dropStaged(planID, a.ID)
}

// dropStaged clears any draft or edit referring to the deleted annotation.
// Caller holds the lock.
func (r *Reconciler) dropStaged(planID uuid.UUID, annotationID string) {
	if d, ok := r.drafts[planID]; ok && d.annotationID == annotationID {
		delete(r.drafts, planID)
	}
	if e, ok := r.edits[planID]; ok && e.annotationID == annotationID {
		delete(r.edits, planID)
	}
}
