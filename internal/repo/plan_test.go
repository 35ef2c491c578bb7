package repo

import (
	"bytes"
	"errors"
	"testing"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

func TestPlanLifecycle(t *testing.T) {
	r := NewPlanRepository()

	plan := &models.Plan{
		ProjectName: "HQ",
		ImageName:   "floor1.png",
		ImageType:   "image/png",
		ImageData:   []byte{0x89, 0x50},
	}
	id, err := r.CreatePlan(plan)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("CreatePlan returned nil id")
	}

	got, ok := r.GetPlan(id)
	if !ok {
		t.Fatal("GetPlan: not found after create")
	}
	if got.ProjectName != "HQ" || got.ImageName != "floor1.png" {
		t.Errorf("GetPlan = %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	updated, err := r.UpdatePlanImage(id, "floor1-v2.png", "image/png", []byte{0x01})
	if err != nil {
		t.Fatalf("UpdatePlanImage: %v", err)
	}
	if updated.ImageName != "floor1-v2.png" || !bytes.Equal(updated.ImageData, []byte{0x01}) {
		t.Errorf("image not replaced: %+v", updated)
	}

	if _, err := r.UpdateProjectName(id, "HQ West"); err != nil {
		t.Fatalf("UpdateProjectName: %v", err)
	}
	got, _ = r.GetPlan(id)
	if got.ProjectName != "HQ West" {
		t.Errorf("ProjectName = %q", got.ProjectName)
	}

	if !r.DeletePlan(id) {
		t.Error("DeletePlan should report success")
	}
	if r.DeletePlan(id) {
		t.Error("second DeletePlan should report not found")
	}
}

func TestPlanUpdateMissing(t *testing.T) {
	r := NewPlanRepository()
	if _, err := r.UpdatePlanImage(uuid.New(), "x.png", "image/png", nil); !errors.Is(err, models.ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
	if _, err := r.UpdateProjectName(uuid.New(), "x"); !errors.Is(err, models.ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestGetAllPlansOrder(t *testing.T) {
	r := NewPlanRepository()

	var ids []uuid.UUID
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		id, _ := r.CreatePlan(&models.Plan{ProjectName: "p", ImageName: name})
		ids = append(ids, id)
	}
	r.DeletePlan(ids[1])

	got := r.GetAllPlans()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ImageName != "a.png" || got[1].ImageName != "c.png" {
		t.Errorf("order broken: %s, %s", got[0].ImageName, got[1].ImageName)
	}
}
