package usecase

import (
	"fmt"
	"os"

	"grimoire/internal/adapter/analyzer"
	"grimoire/internal/adapter/fs"
	"grimoire/internal/adapter/parse"
	"grimoire/internal/adapter/scan"
	"grimoire/internal/adapter/store"
	"grimoire/internal/domain"
)

// CatalogUseCase parses transcription files under a directory and stores
// the spells in the spellbook, with a keyword index over descriptions.
type CatalogUseCase struct {
	store     *store.BoltStore
	walker    *fs.Walker
	assembler *parse.Assembler
	tokenizer *analyzer.Tokenizer
}

func NewCatalogUseCase(
	store *store.BoltStore,
	walker *fs.Walker,
	assembler *parse.Assembler,
	tokenizer *analyzer.Tokenizer,
) *CatalogUseCase {
	return &CatalogUseCase{
		store:     store,
		walker:    walker,
		assembler: assembler,
		tokenizer: tokenizer,
	}
}

// CatalogResult contains the results of a cataloging run.
type CatalogResult struct {
	FilesParsed  int
	SpellsStored int
	Errors       []string
}

// ProgressFunc reports cataloging progress to the caller.
type ProgressFunc func(processed, total int, currentFile string)

// Catalog walks root for transcription files and stores every parsed spell.
// A file that fails to parse is recorded as a warning, not a fatal error.
func (u *CatalogUseCase) Catalog(root string, progress ProgressFunc) (*CatalogResult, error) {
	result := &CatalogResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	bySchool := make(map[string]int)
	byLevel := make(map[int]int)
	seen := make(map[string]struct{})

	for i, file := range files {
		if progress != nil {
			progress(i, len(files), file.Path)
		}

		stored, err := u.catalogFile(file.Path, seen, bySchool, byLevel)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to parse %s: %v", file.Path, err))
			continue
		}
		result.FilesParsed++
		result.SpellsStored += stored
	}
	if progress != nil {
		progress(len(files), len(files), "")
	}

	stats := domain.Stats{
		TotalSpells: len(seen),
		BySchool:    bySchool,
		ByLevel:     byLevel,
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	return result, nil
}

func (u *CatalogUseCase) catalogFile(path string, seen map[string]struct{}, bySchool map[string]int, byLevel map[int]int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	stored := 0
	win := scan.NewWindowReader(f)
	err = u.assembler.Parse(win, func(s domain.Spell) error {
		if err := u.store.PutSpell(s); err != nil {
			return err
		}

		slug := store.Slug(s.Name)
		for _, term := range u.tokenizer.Tokenize(s.Description) {
			if err := u.store.IndexTerm(term, slug); err != nil {
				return err
			}
		}

		if _, dup := seen[slug]; !dup {
			seen[slug] = struct{}{}
			bySchool[s.School]++
			byLevel[s.Level]++
		}
		stored++
		return nil
	})
	if err != nil {
		return stored, err
	}
	return stored, nil
}
