package profile

import (
	"testing"
	"time"

	"modforge/internal/models"
	"modforge/internal/testutil"
)

func TestStoreRoundTrip(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	s := NewStore(ws.Path)
	p := models.Profile{
		ID:            "p-1",
		Name:          "Survival",
		EnabledModIDs: []string{"Alpha-1.0.0-build1.jar"},
		CreatedAt:     time.Now(),
	}

	if err := s.Add(p); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	found, ok := s.Find("p-1")
	if !ok {
		t.Fatal("expected to find p-1")
	}
	if found.Name != "Survival" || len(found.EnabledModIDs) != 1 {
		t.Errorf("unexpected profile: %+v", found)
	}

	if _, ok := s.Find("missing"); ok {
		t.Error("expected missing profile to not be found")
	}
}

func TestStoreToleratesCorruption(t *testing.T) {
	ws := testutil.NewTempWorkspace(t)
	defer ws.Cleanup()

	ws.CreateFile(fileName, "{broken")
	s := NewStore(ws.Path)

	if profiles := s.Load(); len(profiles) != 0 {
		t.Errorf("expected empty list from corrupt document, got %d", len(profiles))
	}
	// A subsequent save recovers the document.
	if err := s.Add(models.Profile{ID: "p-1", Name: "X"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, ok := s.Find("p-1"); !ok {
		t.Error("expected recovered store to hold p-1")
	}
}
