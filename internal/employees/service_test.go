package employees

import (
	"context"
	"testing"
)

func TestServiceCreateAndList(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "co-1", "  ", "Eletricista"); err != ErrInvalidInput {
		t.Fatalf("blank name: err = %v, want ErrInvalidInput", err)
	}

	bruna, err := svc.Create(ctx, "co-1", "Bruna Lima", "Técnica de Segurança")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "co-1", "Artur Souza", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "co-2", "Outro Colaborador", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := svc.List(ctx, "co-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2 (company scoped)", len(list))
	}
	if list[0].Name != "Artur Souza" || list[1].Name != "Bruna Lima" {
		t.Fatalf("list not sorted by name: %q, %q", list[0].Name, list[1].Name)
	}

	got, err := svc.Get(ctx, "co-1", bruna.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Role != "Técnica de Segurança" {
		t.Fatalf("Role = %q", got.Role)
	}

	if _, err := svc.Get(ctx, "co-2", bruna.ID); err != ErrNotFound {
		t.Fatalf("cross-company get: err = %v, want ErrNotFound", err)
	}
}
