package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

func TestPredictionService_List_ByUserWindowed(t *testing.T) {
	store := newMemStore()
	owner := store.seedUser("Ana", "ana@example.com")
	other := store.seedUser("Bob", "bob@example.com")
	text := store.seedText(owner.ID, "Amo mi trabajo")
	otherText := store.seedText(other.ID, "Odio este clima")
	for i := 0; i < 14; i++ {
		store.seedPrediction(text.ID, owner.ID, "Positivo", 0.9)
		store.seedPrediction(otherText.ID, other.ID, "Negativo", 0.6)
	}
	svc := NewPredictionService(memFactory{store}, zerolog.Nop())

	page, err := svc.List(context.Background(), ports.ListPredictionsFilter{UserID: &owner.ID, PageNumber: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	for _, p := range page.Items {
		if p.UserID == nil || *p.UserID != owner.ID {
			t.Fatalf("prediction %d belongs to another user", p.ID)
		}
	}
	if page.TotalCount != 14 || page.TotalPages != 2 || !page.HasNextPage {
		t.Fatalf("unexpected metadata: %+v", page)
	}
}

func TestPredictionService_List_Filters(t *testing.T) {
	store := newMemStore()
	user := store.seedUser("Ana", "ana@example.com")
	t1 := store.seedText(user.ID, "Amo mi trabajo")
	t2 := store.seedText(user.ID, "Odio este clima")
	store.seedPrediction(t1.ID, user.ID, "Positivo", 0.95)
	store.seedPrediction(t1.ID, user.ID, "Positivo", 0.55)
	store.seedPrediction(t2.ID, user.ID, "Negativo", 0.80)
	svc := NewPredictionService(memFactory{store}, zerolog.Nop())
	threshold := 0.7

	tests := []struct {
		name   string
		filter ports.ListPredictionsFilter
		want   int
	}{
		{"by text", ports.ListPredictionsFilter{TextID: &t1.ID}, 2},
		{"result substring ignores case", ports.ListPredictionsFilter{Result: "posit"}, 2},
		{"min probability", ports.ListPredictionsFilter{MinProbability: &threshold}, 2},
		{"combined", ports.ListPredictionsFilter{TextID: &t1.ID, MinProbability: &threshold}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if page.TotalCount != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, page.TotalCount)
			}
		})
	}
}

func TestPredictionService_Delete(t *testing.T) {
	store := newMemStore()
	user := store.seedUser("Ana", "ana@example.com")
	text := store.seedText(user.ID, "Amo mi trabajo")
	p := store.seedPrediction(text.ID, user.ID, "Positivo", 0.9)
	svc := NewPredictionService(memFactory{store}, zerolog.Nop())

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
