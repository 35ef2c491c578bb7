package repo

import (
	"sync"
	"time"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

// PlanRepo holds uploaded floor plans for the lifetime of the process. There
// is deliberately no database behind it: a plan lives only as long as the
// editing session that created it.
type PlanRepo struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]models.Plan
	order []uuid.UUID
}

type PlanRepoInterface interface {
	CreatePlan(plan *models.Plan) (uuid.UUID, error)
	GetPlan(id uuid.UUID) (models.Plan, bool)
	GetAllPlans() []models.Plan
	UpdatePlanImage(id uuid.UUID, name, contentType string, data []byte) (models.Plan, error)
	UpdateProjectName(id uuid.UUID, projectName string) (models.Plan, error)
	DeletePlan(id uuid.UUID) bool
}

func NewPlanRepository() PlanRepoInterface {
	return &PlanRepo{plans: make(map[uuid.UUID]models.Plan)}
}

// CreatePlan registers a new plan and assigns it an id and timestamps.
func (r *PlanRepo) CreatePlan(plan *models.Plan) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = uuid.New()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	r.plans[plan.ID] = *plan
	r.order = append(r.order, plan.ID)
	return plan.ID, nil
}

func (r *PlanRepo) GetPlan(id uuid.UUID) (models.Plan, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	return plan, ok
}

// GetAllPlans returns plans in creation order.
func (r *PlanRepo) GetAllPlans() []models.Plan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Plan, 0, len(r.order))
	for _, id := range r.order {
		if plan, ok := r.plans[id]; ok {
			out = append(out, plan)
		}
	}
	return out
}

// UpdatePlanImage replaces the plan's image. Existing floor spaces are kept;
// their coordinates are in source-image pixel space and it is up to the
// editor to re-anchor them against the new image.
func (r *PlanRepo) UpdatePlanImage(id uuid.UUID, name, contentType string, data []byte) (models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return models.Plan{}, models.ErrPlanNotFound
	}

	plan.ImageName = name
	plan.ImageType = contentType
	plan.ImageData = data
	plan.UpdatedAt = time.Now()
	r.plans[id] = plan
	return plan, nil
}

func (r *PlanRepo) UpdateProjectName(id uuid.UUID, projectName string) (models.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plan, ok := r.plans[id]
	if !ok {
		return models.Plan{}, models.ErrPlanNotFound
	}

	plan.ProjectName = projectName
	plan.UpdatedAt = time.Now()
	r.plans[id] = plan
	return plan, nil
}

func (r *PlanRepo) DeletePlan(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return false
	}
	delete(r.plans, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}
