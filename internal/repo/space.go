package repo

import (
	"sync"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

// SpaceRepo is the in-memory floor-space store. Spaces are keyed by the
// annotation id the drawing surface assigned (never by image name, so two
// plans with identically named images cannot clash), grouped per plan, and
// enumerated in insertion order so exports are reproducible.
type SpaceRepo struct {
	mu     sync.RWMutex
	byPlan map[uuid.UUID]map[string]models.FloorSpace
	order  map[uuid.UUID][]string
}

type SpaceRepoInterface interface {
	CreateSpace(planID uuid.UUID, space models.FloorSpace) (string, error)
	GetSpace(planID uuid.UUID, id string) (models.FloorSpace, bool)
	UpdateSpace(planID uuid.UUID, id string, patch models.SpacePatch) (models.FloorSpace, error)
	DeleteSpace(planID uuid.UUID, id string) (models.FloorSpace, bool)
	GetAllSpaces(planID uuid.UUID) []models.FloorSpace
	ClearPlan(planID uuid.UUID)
}

func NewSpaceRepository() SpaceRepoInterface {
	return &SpaceRepo{
		byPlan: make(map[uuid.UUID]map[string]models.FloorSpace),
		order:  make(map[uuid.UUID][]string),
	}
}

// CreateSpace inserts a new floor space and returns its id.
func (r *SpaceRepo) CreateSpace(planID uuid.UUID, space models.FloorSpace) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spaces, ok := r.byPlan[planID]
	if !ok {
		spaces = make(map[string]models.FloorSpace)
		r.byPlan[planID] = spaces
	}
	if _, exists := spaces[space.ID]; exists {
		return "", models.ErrDuplicateID
	}

	spaces[space.ID] = space
	r.order[planID] = append(r.order[planID], space.ID)
	return space.ID, nil
}

// GetSpace looks up a floor space. A miss is reported through the bool, not
// an error: "annotation just deleted" races are expected during interactive
// use.
func (r *SpaceRepo) GetSpace(planID uuid.UUID, id string) (models.FloorSpace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	space, ok := r.byPlan[planID][id]
	return space, ok
}

// UpdateSpace merges the patch into the stored record and returns the new
// value. Fields the patch leaves nil are preserved.
func (r *SpaceRepo) UpdateSpace(planID uuid.UUID, id string, patch models.SpacePatch) (models.FloorSpace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, ok := r.byPlan[planID][id]
	if !ok {
		return models.FloorSpace{}, models.ErrSpaceNotFound
	}

	if patch.Name != nil {
		space.Name = *patch.Name
	}
	if patch.Description != nil {
		space.Description = *patch.Description
	}
	if patch.Coordinates != nil {
		space.Coordinates = *patch.Coordinates
	}
	if patch.Color != nil {
		space.Color = *patch.Color
	}
	if patch.Attachments != nil {
		space.Attachments = patch.Attachments
	}

	r.byPlan[planID][id] = space
	return space, nil
}

// DeleteSpace removes and returns the prior value. Deleting a missing id is
// a no-op and leaves the collection untouched.
func (r *SpaceRepo) DeleteSpace(planID uuid.UUID, id string) (models.FloorSpace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, ok := r.byPlan[planID][id]
	if !ok {
		return models.FloorSpace{}, false
	}

	delete(r.byPlan[planID], id)
	ids := r.order[planID]
	for i, sid := range ids {
		if sid == id {
			r.order[planID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return space, true
}

// GetAllSpaces returns the plan's floor spaces in insertion order.
func (r *SpaceRepo) GetAllSpaces(planID uuid.UUID) []models.FloorSpace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[planID]
	out := make([]models.FloorSpace, 0, len(ids))
	for _, id := range ids {
		if space, ok := r.byPlan[planID][id]; ok {
			out = append(out, space)
		}
	}
	return out
}

// ClearPlan drops every space belonging to a deleted plan.
func (r *SpaceRepo) ClearPlan(planID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPlan, planID)
	delete(r.order, planID)
}
