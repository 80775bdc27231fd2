package port

import "grimoire/internal/domain"

// SpellStore is the persistent spellbook the catalog writes into and the
// lookup commands read from.
type SpellStore interface {
	PutSpell(domain.Spell) error
	IndexTerm(term, slug string) error
	GetSpell(slug string) (domain.Spell, error)
	ListSpells() ([]domain.Spell, error)
	SpellsBySchool(school string) ([]domain.Spell, error)
	SpellsByLevel(level int) ([]domain.Spell, error)
	SpellsByTerm(term string) ([]string, error)
	UpdateStats(domain.Stats) error
	GetStats() (domain.Stats, error)
	Clear() error
	Close() error
}
