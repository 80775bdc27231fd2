package usecase

import (
	"strings"

	"grimoire/internal/domain"
	"grimoire/internal/port"
)

// LookupFilter selects spells from the spellbook. Zero-valued fields are
// ignored; pointer fields distinguish "unset" from "false"/"zero".
type LookupFilter struct {
	Name          string
	School        string
	Level         *int
	Ritual        *bool
	Concentration *bool
	Keywords      []string
	Limit         int
}

// LookupUseCase answers filtered queries against the spellbook.
type LookupUseCase struct {
	store port.SpellStore
}

func NewLookupUseCase(store port.SpellStore) *LookupUseCase {
	return &LookupUseCase{store: store}
}

// Lookup returns spells matching every set filter, in spellbook order.
func (u *LookupUseCase) Lookup(f LookupFilter) ([]domain.Spell, error) {
	candidates, err := u.candidates(f)
	if err != nil {
		return nil, err
	}

	var results []domain.Spell
	for _, s := range candidates {
		if !matches(s, f) {
			continue
		}
		results = append(results, s)
		if f.Limit > 0 && len(results) >= f.Limit {
			break
		}
	}
	return results, nil
}

// candidates narrows the scan using the cheapest available index.
func (u *LookupUseCase) candidates(f LookupFilter) ([]domain.Spell, error) {
	if len(f.Keywords) > 0 {
		return u.byKeywords(f.Keywords)
	}
	if f.School != "" {
		return u.store.SpellsBySchool(f.School)
	}
	if f.Level != nil {
		return u.store.SpellsByLevel(*f.Level)
	}
	return u.store.ListSpells()
}

// byKeywords intersects the posting lists of every keyword.
func (u *LookupUseCase) byKeywords(keywords []string) ([]domain.Spell, error) {
	var common map[string]struct{}
	for _, kw := range keywords {
		slugs, err := u.store.SpellsByTerm(strings.ToLower(kw))
		if err != nil {
			return nil, err
		}
		hits := make(map[string]struct{}, len(slugs))
		for _, slug := range slugs {
			if common == nil {
				hits[slug] = struct{}{}
			} else if _, ok := common[slug]; ok {
				hits[slug] = struct{}{}
			}
		}
		common = hits
		if len(common) == 0 {
			return nil, nil
		}
	}

	var spells []domain.Spell
	for slug := range common {
		spell, err := u.store.GetSpell(slug)
		if err != nil {
			continue
		}
		spells = append(spells, spell)
	}
	return spells, nil
}

func matches(s domain.Spell, f LookupFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.School != "" && s.School != strings.ToLower(f.School) {
		return false
	}
	if f.Level != nil && s.Level != *f.Level {
		return false
	}
	if f.Ritual != nil && s.Ritual != *f.Ritual {
		return false
	}
	if f.Concentration != nil && s.Concentration != *f.Concentration {
		return false
	}
	return true
}
