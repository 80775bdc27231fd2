package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.etcd.io/bbolt"

	"grimoire/internal/domain"
)

var (
	bucketSpells  = []byte("spells")
	bucketSchools = []byte("schools")
	bucketLevels  = []byte("levels")
	bucketTerms   = []byte("terms")
	bucketStats   = []byte("stats")
	keyStats      = []byte("spellbook_stats")
)

// BoltStore is the persistent spellbook. Spells are keyed by a slug of
// their name; schools, levels, and description keywords each get a
// secondary index bucket of slug lists.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open spellbook db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketSpells, bucketSchools, bucketLevels, bucketTerms, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Slug derives the spellbook key for a spell name.
func Slug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// PutSpell stores a spell and maintains the school and level indexes.
// Re-cataloging a spell replaces the stored record and moves its index
// entries if the school or level changed.
func (s *BoltStore) PutSpell(spell domain.Spell) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		slug := Slug(spell.Name)

		if old := tx.Bucket(bucketSpells).Get([]byte(slug)); old != nil {
			var prev domain.Spell
			if err := json.Unmarshal(old, &prev); err == nil {
				if prev.School != spell.School {
					if err := removeFromList(tx.Bucket(bucketSchools), []byte(prev.School), slug); err != nil {
						return err
					}
				}
				if prev.Level != spell.Level {
					if err := removeFromList(tx.Bucket(bucketLevels), levelKey(prev.Level), slug); err != nil {
						return err
					}
				}
			}
		}

		data, err := json.Marshal(spell)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketSpells).Put([]byte(slug), data); err != nil {
			return err
		}

		if err := appendToList(tx.Bucket(bucketSchools), []byte(spell.School), slug); err != nil {
			return err
		}
		return appendToList(tx.Bucket(bucketLevels), levelKey(spell.Level), slug)
	})
}

// IndexTerm records that the spell with the given slug contains the term.
func (s *BoltStore) IndexTerm(term, slug string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return appendToList(tx.Bucket(bucketTerms), []byte(term), slug)
	})
}

func (s *BoltStore) GetSpell(slug string) (domain.Spell, error) {
	var spell domain.Spell
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSpells).Get([]byte(slug))
		if data == nil {
			return fmt.Errorf("spell not found: %s", slug)
		}
		return json.Unmarshal(data, &spell)
	})
	return spell, err
}

func (s *BoltStore) ListSpells() ([]domain.Spell, error) {
	var spells []domain.Spell
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSpells).ForEach(func(k, v []byte) error {
			var spell domain.Spell
			if err := json.Unmarshal(v, &spell); err != nil {
				return err
			}
			spells = append(spells, spell)
			return nil
		})
	})
	return spells, err
}

func (s *BoltStore) SpellsBySchool(school string) ([]domain.Spell, error) {
	return s.spellsByIndex(bucketSchools, []byte(strings.ToLower(school)))
}

func (s *BoltStore) SpellsByLevel(level int) ([]domain.Spell, error) {
	return s.spellsByIndex(bucketLevels, levelKey(level))
}

// SpellsByTerm returns the slugs of spells whose description contains the
// term. Slugs, not spells: lookup intersects several term lists first.
func (s *BoltStore) SpellsByTerm(term string) ([]string, error) {
	var slugs []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTerms).Get([]byte(term))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &slugs)
	})
	return slugs, err
}

func (s *BoltStore) spellsByIndex(bucket, key []byte) ([]domain.Spell, error) {
	var spells []domain.Spell
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get(key)
		if data == nil {
			return nil
		}
		var slugs []string
		if err := json.Unmarshal(data, &slugs); err != nil {
			return err
		}
		spellBucket := tx.Bucket(bucketSpells)
		for _, slug := range slugs {
			raw := spellBucket.Get([]byte(slug))
			if raw == nil {
				continue
			}
			var spell domain.Spell
			if err := json.Unmarshal(raw, &spell); err != nil {
				return err
			}
			spells = append(spells, spell)
		}
		return nil
	})
	return spells, err
}

func (s *BoltStore) UpdateStats(stats domain.Stats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

// Clear drops and recreates every bucket.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketSpells, bucketSchools, bucketLevels, bucketTerms, bucketStats}
		for _, b := range buckets {
			if err := tx.DeleteBucket(b); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return err
			}
		}
		return nil
	})
}

func levelKey(level int) []byte {
	return []byte(strconv.Itoa(level))
}

func appendToList(b *bbolt.Bucket, key []byte, slug string) error {
	var slugs []string
	if existing := b.Get(key); existing != nil {
		if err := json.Unmarshal(existing, &slugs); err != nil {
			return err
		}
	}
	for _, s := range slugs {
		if s == slug {
			return nil
		}
	}
	slugs = append(slugs, slug)
	data, err := json.Marshal(slugs)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

func removeFromList(b *bbolt.Bucket, key []byte, slug string) error {
	existing := b.Get(key)
	if existing == nil {
		return nil
	}
	var slugs []string
	if err := json.Unmarshal(existing, &slugs); err != nil {
		return err
	}
	kept := slugs[:0]
	for _, s := range slugs {
		if s != slug {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return b.Delete(key)
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}
