package repo

import (
	"errors"
	"testing"

	"floormapper-backend/internal/models"

	"github.com/google/uuid"
)

func rect(minX, minY, maxX, maxY float64) models.Coordinates {
	return models.Coordinates{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	space := models.FloorSpace{
		ID:          "anno-1",
		Name:        "Lobby",
		Description: "main entrance",
		Coordinates: rect(10, 10, 50, 40),
		Shape:       models.Rectangle,
		Color:       "#ff0000",
	}

	id, err := r.CreateSpace(planID, space)
	if err != nil {
		t.Fatalf("CreateSpace: %v", err)
	}
	if id != "anno-1" {
		t.Errorf("id = %q, want anno-1", id)
	}

	got, ok := r.GetSpace(planID, id)
	if !ok {
		t.Fatal("GetSpace: not found after create")
	}
	if got.Name != space.Name || got.Description != space.Description ||
		got.Color != space.Color || got.Shape != space.Shape ||
		got.Coordinates != space.Coordinates {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, space)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	if _, err := r.CreateSpace(planID, models.FloorSpace{ID: "x", Name: "A"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := r.CreateSpace(planID, models.FloorSpace{ID: "x", Name: "B"})
	if !errors.Is(err, models.ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}

	// the same id under a different plan is fine
	if _, err := r.CreateSpace(uuid.New(), models.FloorSpace{ID: "x", Name: "C"}); err != nil {
		t.Errorf("create under other plan: %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	r := NewSpaceRepository()
	if _, ok := r.GetSpace(uuid.New(), "nope"); ok {
		t.Error("GetSpace on empty repo should report not found")
	}
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	r.CreateSpace(planID, models.FloorSpace{
		ID:          "s1",
		Name:        "A",
		Description: "B",
		Coordinates: rect(0, 0, 10, 10),
		Color:       "#00ff00",
	})

	newName := "C"
	got, err := r.UpdateSpace(planID, "s1", models.SpacePatch{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateSpace: %v", err)
	}
	if got.Name != "C" {
		t.Errorf("Name = %q, want C", got.Name)
	}
	if got.Description != "B" {
		t.Errorf("Description = %q, want B (untouched)", got.Description)
	}
	if got.Color != "#00ff00" {
		t.Errorf("Color = %q, want unchanged", got.Color)
	}
	if got.Coordinates != rect(0, 0, 10, 10) {
		t.Errorf("Coordinates changed: %+v", got.Coordinates)
	}
}

func TestUpdateMissing(t *testing.T) {
	r := NewSpaceRepository()
	name := "X"
	_, err := r.UpdateSpace(uuid.New(), "ghost", models.SpacePatch{Name: &name})
	if !errors.Is(err, models.ErrSpaceNotFound) {
		t.Errorf("err = %v, want ErrSpaceNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	r.CreateSpace(planID, models.FloorSpace{ID: "s1", Name: "A"})
	r.CreateSpace(planID, models.FloorSpace{ID: "s2", Name: "B"})

	prior, ok := r.DeleteSpace(planID, "s1")
	if !ok || prior.Name != "A" {
		t.Fatalf("DeleteSpace = %+v, %v; want prior record", prior, ok)
	}

	// second delete is a no-op
	if _, ok := r.DeleteSpace(planID, "s1"); ok {
		t.Error("second delete should report not found")
	}
	if got := r.GetAllSpaces(planID); len(got) != 1 || got[0].ID != "s2" {
		t.Errorf("collection altered by redundant delete: %+v", got)
	}
}

func TestAllReturnsInsertionOrder(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	for _, id := range []string{"c", "a", "b"} {
		if _, err := r.CreateSpace(planID, models.FloorSpace{ID: id, Name: id}); err != nil {
			t.Fatalf("CreateSpace(%s): %v", id, err)
		}
	}

	got := r.GetAllSpaces(planID)
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestClearPlan(t *testing.T) {
	r := NewSpaceRepository()
	planID := uuid.New()

	r.CreateSpace(planID, models.FloorSpace{ID: "s1"})
	r.ClearPlan(planID)

	if got := r.GetAllSpaces(planID); len(got) != 0 {
		t.Errorf("spaces remain after ClearPlan: %+v", got)
	}
}
