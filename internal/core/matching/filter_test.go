package matching

import (
	"reflect"
	"testing"
)

func TestFilterIngredientTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty input", nil, []string{}},
		{"exclusion is case-insensitive", []string{"Postre", "Pollo"}, []string{"Pollo"}},
		{"short tags dropped", []string{"ok", "si", "aa"}, []string{}},
		{"three characters kept", []string{"ajo", "té"}, []string{"ajo"}},
		{"accented exclusions", []string{"RÁPIDO", "Guarnición", "arroz"}, []string{"arroz"}},
		{"order and casing preserved", []string{"Tomate", "sopa", "Cebolla", "ajo"}, []string{"Tomate", "Cebolla", "ajo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterIngredientTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterIngredientTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTagFilterInjectedExclusions(t *testing.T) {
	f := NewTagFilter(NewExclusionSet(" Brunch ", "KETO", ""), 4)

	got := f.Filter([]string{"brunch", "keto", "huevo", "pan", "Aguacate"})
	want := []string{"huevo", "Aguacate"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
}

func TestNewExclusionSet(t *testing.T) {
	set := NewExclusionSet("Postre", "postre", "  ")
	if set.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", set.Len())
	}
	if !set.Contains("postre") {
		t.Fatal("expected lowercase entry")
	}
	if DefaultExclusions().Len() != 13 {
		t.Fatalf("default exclusions = %d, want 13", DefaultExclusions().Len())
	}
}

func TestDefaultExcludedTagsReturnsCopy(t *testing.T) {
	tags := DefaultExcludedTags()
	tags[0] = "pollo"
	if DefaultExclusions().Contains("pollo") {
		t.Fatal("mutating the returned slice changed the defaults")
	}
	if !DefaultExclusions().Contains("desayuno") {
		t.Fatal("expected desayuno in default exclusions")
	}
}

func TestNewTagFilterDefaultsLength(t *testing.T) {
	f := NewTagFilter(NewExclusionSet(), 0)
	if got := f.Filter([]string{"si", "sal"}); !reflect.DeepEqual(got, []string{"sal"}) {
		t.Fatalf("Filter = %v", got)
	}
}
