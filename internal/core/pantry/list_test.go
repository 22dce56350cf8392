package pantry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"chef-express/internal/pkg/common"
)

// memoryStore 測試用的記憶體 Store
type memoryStore struct {
	items   []common.Ingredient
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryStore) Load(ctx context.Context) ([]common.Ingredient, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]common.Ingredient, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryStore) Save(ctx context.Context, items []common.Ingredient) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items = append([]common.Ingredient(nil), items...)
	return nil
}

func (m *memoryStore) Close() error { return nil }

func newLoadedList(t *testing.T, store *memoryStore) *List {
	t.Helper()
	l := NewList(store)
	seq := 0
	l.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return l
}

func TestListAdd(t *testing.T) {
	store := &memoryStore{}
	l := newLoadedList(t, store)
	ctx := context.Background()

	ing, err := l.Add(ctx, "  Pollo ", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if ing.ID != "id-1" || ing.Name != "Pollo" || ing.RelativeQuantity != common.DefaultRelativeQuantity {
		t.Fatalf("unexpected ingredient: %+v", ing)
	}
	if store.saves != 1 || len(store.items) != 1 {
		t.Fatalf("expected one save with one item, got saves=%d items=%v", store.saves, store.items)
	}

	if _, err := l.Add(ctx, "Cebolla", "2 unidades"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got := l.Names(); fmt.Sprint(got) != "[Pollo Cebolla]" {
		t.Fatalf("names = %v", got)
	}
}

func TestListAddRejectsDuplicatesCaseInsensitive(t *testing.T) {
	store := &memoryStore{}
	l := newLoadedList(t, store)
	ctx := context.Background()

	if _, err := l.Add(ctx, "Pollo", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := l.Add(ctx, "POLLO", ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if l.Len() != 1 || store.saves != 1 {
		t.Fatalf("duplicate must not be stored: len=%d saves=%d", l.Len(), store.saves)
	}
}

func TestListAddRejectsBlankName(t *testing.T) {
	l := newLoadedList(t, &memoryStore{})
	if _, err := l.Add(context.Background(), "   ", "1"); !common.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListRemoveAndClear(t *testing.T) {
	store := &memoryStore{}
	l := newLoadedList(t, store)
	ctx := context.Background()

	_, _ = l.Add(ctx, "Pollo", "")
	_, _ = l.Add(ctx, "Arroz", "")

	removed, err := l.Remove(ctx, "id-1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Name != "Pollo" {
		t.Fatalf("removed %+v", removed)
	}
	if _, err := l.Remove(ctx, "id-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(store.items) != 1 || store.items[0].Name != "Arroz" {
		t.Fatalf("store items = %v", store.items)
	}

	if err := l.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if l.Len() != 0 || len(store.items) != 0 {
		t.Fatalf("expected empty pantry, list=%d store=%d", l.Len(), len(store.items))
	}
}

func TestListMutationsRequireLoad(t *testing.T) {
	store := &memoryStore{}
	l := NewList(store)
	ctx := context.Background()

	if _, err := l.Add(ctx, "Pollo", ""); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Add before load: %v", err)
	}
	if _, err := l.Remove(ctx, "x"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Remove before load: %v", err)
	}
	if err := l.Clear(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Clear before load: %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("nothing should be saved before load, got %d saves", store.saves)
	}
}

func TestListLoadFailureStillMarksLoaded(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("corrupt")}
	l := NewList(store)

	if err := l.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if !l.Loaded() {
		t.Fatal("list should be marked loaded after a failed load")
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty list, got %d", l.Len())
	}
}

func TestListSaveFailureKeepsState(t *testing.T) {
	store := &memoryStore{items: []common.Ingredient{{ID: "a", Name: "Ajo"}}}
	l := newLoadedList(t, store)
	store.saveErr = errors.New("disk full")

	if _, err := l.Add(context.Background(), "Pollo", ""); err == nil {
		t.Fatal("expected save error")
	}
	if got := l.Names(); fmt.Sprint(got) != "[Ajo]" {
		t.Fatalf("list changed after failed save: %v", got)
	}
}

func TestListItemsReturnsCopy(t *testing.T) {
	l := newLoadedList(t, &memoryStore{})
	_, _ = l.Add(context.Background(), "Pollo", "")

	items := l.Items()
	items[0].Name = "changed"
	if l.Items()[0].Name != "Pollo" {
		t.Fatal("Items must return a copy")
	}
}
