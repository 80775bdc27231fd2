package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"grimoire/internal/adapter/analyzer"
	"grimoire/internal/adapter/fs"
	"grimoire/internal/adapter/parse"
	"grimoire/internal/adapter/store"
)

func newCatalogFixture(t *testing.T) (*CatalogUseCase, *store.BoltStore, string) {
	t.Helper()
	root := t.TempDir()

	st, err := store.NewBoltStore(filepath.Join(root, "spellbook.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	walker := fs.NewWalker([]string{"**/*.txt"}, nil)
	uc := NewCatalogUseCase(st, walker, parse.NewAssembler(), analyzer.NewTokenizer())
	return uc, st, root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogStoresSpells(t *testing.T) {
	uc, st, root := newCatalogFixture(t)

	writeFile(t, filepath.Join(root, "spells.txt"), twoSpells)
	writeFile(t, filepath.Join(root, "notes.md"), "not a transcription")

	var calls int
	result, err := uc.Catalog(root, func(processed, total int, currentFile string) {
		calls++
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.FilesParsed != 1 {
		t.Errorf("expected 1 file parsed, got %d", result.FilesParsed)
	}
	if result.SpellsStored != 2 {
		t.Errorf("expected 2 spells stored, got %d", result.SpellsStored)
	}
	if calls == 0 {
		t.Error("expected progress callback to be invoked")
	}

	spell, err := st.GetSpell("fireball")
	if err != nil {
		t.Fatal(err)
	}
	if spell.School != "evocation" {
		t.Errorf("unexpected school: %q", spell.School)
	}

	slugs, err := st.SpellsByTerm("explosion")
	if err != nil {
		t.Fatal(err)
	}
	if len(slugs) != 1 || slugs[0] != "fireball" {
		t.Errorf("expected keyword index hit for fireball, got %v", slugs)
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSpells != 2 {
		t.Errorf("expected 2 spells in stats, got %d", stats.TotalSpells)
	}
	if stats.BySchool["evocation"] != 1 || stats.ByLevel[1] != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestCatalogCollectsFileErrors(t *testing.T) {
	uc, _, root := newCatalogFixture(t)

	writeFile(t, filepath.Join(root, "good.txt"), twoSpells)
	writeFile(t, filepath.Join(root, "bad.txt"), "no spell\nblocks in\nthis file\nat all")

	result, err := uc.Catalog(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.FilesParsed != 1 {
		t.Errorf("expected 1 good file, got %d", result.FilesParsed)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 warning for the bad file, got %v", result.Errors)
	}
}
