package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

func newUserService(store *memStore) ports.UserService {
	return NewUserService(memFactory{store}, zerolog.Nop())
}

func TestUserService_Create_Success(t *testing.T) {
	store := newMemStore()
	svc := newUserService(store)

	user, err := svc.Create(context.Background(), ports.UserInput{Name: " Ana ", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected identity to be assigned on save")
	}
	if user.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", user.Name)
	}
	if store.saves != 1 {
		t.Fatalf("expected one save, got %d", store.saves)
	}
}

func TestUserService_Create_RequiredFields(t *testing.T) {
	svc := newUserService(newMemStore())

	for _, in := range []ports.UserInput{
		{Name: "", Email: "a@example.com"},
		{Name: "Ana", Email: "  "},
	} {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrBusiness) {
			t.Fatalf("expected business error for %+v, got %v", in, err)
		}
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	store := newMemStore()
	store.seedUser("Ana", "ana@example.com")
	svc := newUserService(store)

	_, err := svc.Create(context.Background(), ports.UserInput{Name: "Other", Email: "ANA@example.com"})
	if !errors.Is(err, domain.ErrBusiness) {
		t.Fatalf("expected business error, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected no insert, have %d users", len(store.users))
	}
}

func TestUserService_Update_EmailConflictExcludesSelf(t *testing.T) {
	store := newMemStore()
	ana := store.seedUser("Ana", "ana@example.com")
	bob := store.seedUser("Bob", "bob@example.com")
	svc := newUserService(store)

	if _, err := svc.Update(context.Background(), ana.ID, ports.UserInput{Name: "Ana María", Email: "ANA@example.com"}); err != nil {
		t.Fatalf("updating own email should succeed, got %v", err)
	}
	if got := store.users[ana.ID].Name; got != "Ana María" {
		t.Fatalf("expected name to be updated, got %q", got)
	}

	_, err := svc.Update(context.Background(), bob.ID, ports.UserInput{Name: "Bob", Email: "ana@EXAMPLE.com"})
	if !errors.Is(err, domain.ErrBusiness) {
		t.Fatalf("expected business error, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := newUserService(newMemStore())

	_, err := svc.Update(context.Background(), 99, ports.UserInput{Name: "X", Email: "x@example.com"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	store := newMemStore()
	ana := store.seedUser("Ana", "ana@example.com")
	svc := newUserService(store)

	if err := svc.Delete(context.Background(), ana.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := store.users[ana.ID]; ok {
		t.Fatal("expected user to be removed")
	}
	if err := svc.Delete(context.Background(), ana.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUserService_List_Filters(t *testing.T) {
	store := newMemStore()
	ana := store.seedUser("Ana Pérez", "ana@example.com")
	store.seedUser("Bob", "bob@corp.io")
	store.seedUser("Anabel", "anabel@corp.io")
	store.seedText(ana.ID, "Amo mi trabajo")
	svc := newUserService(store)
	yes, no := true, false

	tests := []struct {
		name   string
		filter ports.ListUsersFilter
		want   int
	}{
		{"no filters", ports.ListUsersFilter{}, 3},
		{"name substring ignores case", ports.ListUsersFilter{SearchName: "ANA"}, 2},
		{"email substring", ports.ListUsersFilter{SearchEmail: "corp"}, 2},
		{"combined filters", ports.ListUsersFilter{SearchName: "ana", SearchEmail: "corp"}, 1},
		{"has texts", ports.ListUsersFilter{HasTexts: &yes}, 1},
		{"has no texts", ports.ListUsersFilter{HasTexts: &no}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if page.TotalCount != tt.want {
				t.Fatalf("expected %d users, got %d", tt.want, page.TotalCount)
			}
		})
	}
}
