package catalog

import (
	"context"
	"testing"
)

func TestSeedCompanyIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := SeedCompany(ctx, repo, "co-1")
	if err != nil {
		t.Fatalf("SeedCompany: %v", err)
	}
	if created != len(defaultSeed) {
		t.Fatalf("created = %d, want %d", created, len(defaultSeed))
	}

	again, err := SeedCompany(ctx, repo, "co-1")
	if err != nil {
		t.Fatalf("SeedCompany again: %v", err)
	}
	if again != 0 {
		t.Fatalf("second seed created %d entries, want 0", again)
	}

	nr35, err := repo.GetByCode(ctx, "co-1", "NR35")
	if err != nil {
		t.Fatalf("GetByCode NR35: %v", err)
	}
	if nr35.DefaultValidityYears == nil || *nr35.DefaultValidityYears != 2 {
		t.Fatalf("NR35 validity = %v, want 2", nr35.DefaultValidityYears)
	}

	rg, err := repo.GetByCode(ctx, "co-1", "RG")
	if err != nil {
		t.Fatalf("GetByCode RG: %v", err)
	}
	if rg.DefaultValidityYears != nil {
		t.Fatalf("RG must carry no default validity, got %v", rg.DefaultValidityYears)
	}
}

func TestAutoCreateSkipsSentinels(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for _, code := range []string{"", "OUTRO", "outros", "Desconhecido", "unknown", "N/A"} {
		entry, created, err := svc.AutoCreate(ctx, "co-1", code, "")
		if err != nil {
			t.Fatalf("AutoCreate(%q): %v", code, err)
		}
		if created || entry.ID != "" {
			t.Fatalf("AutoCreate(%q) created an entry", code)
		}
	}
}

func TestAutoCreateNewCode(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	entry, created, err := svc.AutoCreate(ctx, "co-1", "brigada", "Certificado de Brigadista")
	if err != nil {
		t.Fatalf("AutoCreate: %v", err)
	}
	if !created {
		t.Fatal("expected a new entry")
	}
	if entry.Code != "BRIGADA" {
		t.Fatalf("Code = %q, want BRIGADA", entry.Code)
	}
	if entry.Name != "Certificado de Brigadista" {
		t.Fatalf("Name = %q", entry.Name)
	}
	if entry.DefaultValidityYears != nil {
		t.Fatal("auto-created entries must carry no default validity")
	}

	// Second call reuses the existing entry.
	reused, createdAgain, err := svc.AutoCreate(ctx, "co-1", "BRIGADA", "")
	if err != nil {
		t.Fatalf("AutoCreate reuse: %v", err)
	}
	if createdAgain {
		t.Fatal("expected reuse, not a second entry")
	}
	if reused.ID != entry.ID {
		t.Fatalf("reused id %q, want %q", reused.ID, entry.ID)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "co-1", "", "Nome", nil); err != ErrInvalidInput {
		t.Fatalf("empty code: err = %v, want ErrInvalidInput", err)
	}
	zero := 0
	if _, err := svc.Create(ctx, "co-1", "XX", "Nome", &zero); err != ErrInvalidInput {
		t.Fatalf("zero validity: err = %v, want ErrInvalidInput", err)
	}

	entry, err := svc.Create(ctx, "co-1", " nr99 ", "Norma Nova", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Code != "NR99" {
		t.Fatalf("Code = %q, want NR99 (trimmed, upper-cased)", entry.Code)
	}
}
