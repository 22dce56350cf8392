package pantry

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"chef-express/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func sampleItems() []common.Ingredient {
	return []common.Ingredient{
		{ID: "1", Name: "Pollo", RelativeQuantity: "1 pechuga"},
		{ID: "2", Name: "Cebolla", RelativeQuantity: common.DefaultRelativeQuantity},
	}
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}

	if err := s.Save(ctx, sampleItems()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, sampleItems()) {
		t.Fatalf("got %+v, want %+v", got, sampleItems())
	}

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("Save nil: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list after clearing, got %v (%v)", got, err)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(":memory:", "")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pantry.db")
	ctx := context.Background()

	s, err := OpenSQLite(path, "test-key")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Save(ctx, sampleItems()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path, "test-key")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Pollo" {
		t.Fatalf("unexpected items after reopen: %+v", got)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), &redis.Options{Addr: mr.Addr()}, "")
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	if !mr.Exists(DefaultKey) {
		t.Fatalf("expected key %s in redis", DefaultKey)
	}
}

func TestRedisStoreConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, ""); err == nil {
		t.Fatal("expected connection error")
	}
}
