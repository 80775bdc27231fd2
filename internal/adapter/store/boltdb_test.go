package store

import (
	"path/filepath"
	"testing"

	"grimoire/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	st, err := NewBoltStore(filepath.Join(t.TempDir(), "spellbook.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testSpell(name, school string, level int) domain.Spell {
	return domain.Spell{
		Name:        name,
		Level:       level,
		School:      school,
		CastingTime: "1 action",
		Range:       "30 feet",
		Duration:    "instantaneous",
		Description: "test spell",
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Fireball":          "fireball",
		"Detect Magic":      "detect-magic",
		"  Mage   Hand  ":   "mage-hand",
		"Melf's Acid Arrow": "melf's-acid-arrow",
	}
	for name, want := range cases {
		if got := Slug(name); got != want {
			t.Errorf("Slug(%q): expected %q, got %q", name, want, got)
		}
	}
}

func TestPutGetSpell(t *testing.T) {
	st := newTestStore(t)

	spell := testSpell("Fireball", "evocation", 3)
	if err := st.PutSpell(spell); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetSpell("fireball")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Fireball" || got.School != "evocation" || got.Level != 3 {
		t.Errorf("unexpected spell: %+v", got)
	}

	if _, err := st.GetSpell("missing"); err == nil {
		t.Error("expected error for missing spell")
	}
}

func TestListSpells(t *testing.T) {
	st := newTestStore(t)

	for _, s := range []domain.Spell{
		testSpell("Fireball", "evocation", 3),
		testSpell("Detect Magic", "divination", 1),
	} {
		if err := st.PutSpell(s); err != nil {
			t.Fatal(err)
		}
	}

	spells, err := st.ListSpells()
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 2 {
		t.Errorf("expected 2 spells, got %d", len(spells))
	}
}

func TestIndexesFollowUpdates(t *testing.T) {
	st := newTestStore(t)

	if err := st.PutSpell(testSpell("Fireball", "evocation", 3)); err != nil {
		t.Fatal(err)
	}

	bySchool, err := st.SpellsBySchool("evocation")
	if err != nil {
		t.Fatal(err)
	}
	if len(bySchool) != 1 {
		t.Fatalf("expected 1 evocation spell, got %d", len(bySchool))
	}

	byLevel, err := st.SpellsByLevel(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(byLevel) != 1 {
		t.Fatalf("expected 1 level-3 spell, got %d", len(byLevel))
	}

	// Re-cataloging with corrected fields must move the index entries.
	if err := st.PutSpell(testSpell("Fireball", "conjuration", 4)); err != nil {
		t.Fatal(err)
	}

	bySchool, _ = st.SpellsBySchool("evocation")
	if len(bySchool) != 0 {
		t.Errorf("expected stale school entry removed, got %d", len(bySchool))
	}
	bySchool, _ = st.SpellsBySchool("conjuration")
	if len(bySchool) != 1 {
		t.Errorf("expected 1 conjuration spell, got %d", len(bySchool))
	}
	byLevel, _ = st.SpellsByLevel(3)
	if len(byLevel) != 0 {
		t.Errorf("expected stale level entry removed, got %d", len(byLevel))
	}
}

func TestTermIndex(t *testing.T) {
	st := newTestStore(t)

	if err := st.PutSpell(testSpell("Fireball", "evocation", 3)); err != nil {
		t.Fatal(err)
	}
	if err := st.IndexTerm("flame", "fireball"); err != nil {
		t.Fatal(err)
	}
	// Indexing the same pair again must not duplicate.
	if err := st.IndexTerm("flame", "fireball"); err != nil {
		t.Fatal(err)
	}

	slugs, err := st.SpellsByTerm("flame")
	if err != nil {
		t.Fatal(err)
	}
	if len(slugs) != 1 || slugs[0] != "fireball" {
		t.Errorf("unexpected slugs: %v", slugs)
	}

	slugs, err = st.SpellsByTerm("absent")
	if err != nil {
		t.Fatal(err)
	}
	if len(slugs) != 0 {
		t.Errorf("expected no slugs for unknown term, got %v", slugs)
	}
}

func TestStatsAndClear(t *testing.T) {
	st := newTestStore(t)

	stats := domain.Stats{
		TotalSpells: 2,
		BySchool:    map[string]int{"evocation": 1, "divination": 1},
		ByLevel:     map[int]int{1: 1, 3: 1},
	}
	if err := st.UpdateStats(stats); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalSpells != 2 || got.BySchool["evocation"] != 1 || got.ByLevel[3] != 1 {
		t.Errorf("unexpected stats: %+v", got)
	}

	if err := st.PutSpell(testSpell("Fireball", "evocation", 3)); err != nil {
		t.Fatal(err)
	}
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}

	spells, err := st.ListSpells()
	if err != nil {
		t.Fatal(err)
	}
	if len(spells) != 0 {
		t.Errorf("expected empty spellbook after clear, got %d spells", len(spells))
	}
}
