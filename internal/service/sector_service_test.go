package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/warehouse-rental/internal/domain"
)

func newSectorFixture(sectors ...domain.Sector) (*SectorService, *memSectorRepo, *recordingCache) {
	repo := newMemSectorRepo(sectors...)
	cache := &recordingCache{}
	return NewSectorService(repo, cache, nil), repo, cache
}

func TestSectorUpdateState_AnyToAny(t *testing.T) {
	states := []domain.SectorState{
		domain.SectorStateAvailable,
		domain.SectorStateOccupied,
		domain.SectorStateMaintenance,
	}
	// Every transition is legal, self-loops included.
	for _, from := range states {
		for _, to := range states {
			sector := availableSector(1, "A1")
			sector.State = from
			svc, repo, _ := newSectorFixture(sector)

			updated, err := svc.UpdateState(context.Background(), 1, to)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			if updated.State != to {
				t.Fatalf("%s -> %s: returned state %s", from, to, updated.State)
			}
			if repo.sectors[1].State != to {
				t.Fatalf("%s -> %s: stored state %s", from, to, repo.sectors[1].State)
			}
		}
	}
}

func TestSectorUpdateState_UnknownState(t *testing.T) {
	svc, repo, _ := newSectorFixture(availableSector(1, "A1"))

	_, err := svc.UpdateState(context.Background(), 1, domain.SectorState("LIBRE"))
	assertStatus(t, err, http.StatusBadRequest)
	if repo.sectors[1].State != domain.SectorStateAvailable {
		t.Fatalf("state mutated on rejected update: %s", repo.sectors[1].State)
	}
}

func TestSectorUpdateState_NotFound(t *testing.T) {
	svc, _, _ := newSectorFixture()

	_, err := svc.UpdateState(context.Background(), 5, domain.SectorStateMaintenance)
	assertStatus(t, err, http.StatusNotFound)
}

func TestSectorUpdateState_InvalidatesCache(t *testing.T) {
	svc, _, cache := newSectorFixture(availableSector(1, "A1"))

	if _, err := svc.ListAvailable(context.Background()); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if !cache.warm {
		t.Fatal("expected cache warmed by listing")
	}
	if _, err := svc.UpdateState(context.Background(), 1, domain.SectorStateMaintenance); err != nil {
		t.Fatalf("update state: %v", err)
	}
	if cache.warm {
		t.Fatal("expected cache invalidated after state change")
	}
}

func TestSectorListAvailable_CacheHit(t *testing.T) {
	svc, repo, cache := newSectorFixture(availableSector(1, "A1"))

	first, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one available sector, got %d", len(first))
	}

	// Mutate the store behind the cache; the warm cache still answers.
	repo.sectors[1].State = domain.SectorStateOccupied
	second, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached listing, got %d sectors", len(second))
	}
	if cache.sets != 1 {
		t.Fatalf("expected a single cache fill, got %d", cache.sets)
	}
}

func TestSectorListAvailable_FiltersState(t *testing.T) {
	occupied := availableSector(2, "A2")
	occupied.State = domain.SectorStateOccupied
	svc, _, _ := newSectorFixture(availableSector(1, "A1"), occupied)

	sectors, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sectors) != 1 || sectors[0].Name != "A1" {
		t.Fatalf("expected only A1 available, got %+v", sectors)
	}
}

func TestSectorGetByName(t *testing.T) {
	svc, _, _ := newSectorFixture(availableSector(1, "A1"))

	sector, err := svc.GetByName(context.Background(), "A1")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if sector.ID != 1 {
		t.Fatalf("expected sector 1, got %d", sector.ID)
	}

	// Lookup is exact, no normalization.
	_, err = svc.GetByName(context.Background(), "a1")
	assertStatus(t, err, http.StatusNotFound)
}
