package domain

// Spell is a single structured record reconstructed from one transcription
// block. Materials is nil when the components line carried no parenthesized
// material list.
type Spell struct {
	Name          string  `json:"name"`
	Level         int     `json:"level"`
	School        string  `json:"school"`
	Cantrip       bool    `json:"cantrip"`
	Ritual        bool    `json:"ritual"`
	CastingTime   string  `json:"casting_time"`
	Range         string  `json:"range"`
	Verbal        bool    `json:"verbal"`
	Material      bool    `json:"material"`
	Somatic       bool    `json:"somatic"`
	Materials     *string `json:"materials"`
	Duration      string  `json:"duration"`
	Concentration bool    `json:"concentration"`
	Description   string  `json:"description"`
}

// FieldNames is the canonical column order for flat serializations.
var FieldNames = []string{
	"name", "level", "school", "cantrip", "ritual", "casting_time",
	"range", "verbal", "material", "somatic", "materials", "duration",
	"concentration", "description",
}

type Stats struct {
	TotalSpells int            `json:"total_spells"`
	BySchool    map[string]int `json:"by_school"`
	ByLevel     map[int]int    `json:"by_level"`
}
