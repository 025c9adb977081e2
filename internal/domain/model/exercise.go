package model

import "fmt"

// Language selects one of the two content languages. The set is closed;
// use ParseLanguage to validate caller-supplied codes.
type Language string

const (
	LanguageEN Language = "en"
	LanguageZH Language = "zh"
)

// ParseLanguage validates a caller-supplied language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEN, LanguageZH:
		return Language(s), nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}

// Category tags an exercise with one of the seven practice areas.
type Category string

const (
	CategoryObservationEvaluation Category = "observation-evaluation"
	CategoryFeelingsThoughts      Category = "feelings-thoughts"
	CategoryNeedsDemands          Category = "needs-demands"
	CategoryListeningBarriers     Category = "listening-barriers"
	CategoryRequests              Category = "requests"
	CategoryGratitude             Category = "gratitude"
	CategoryConflictResolution    Category = "conflict-resolution"
)

// ParseCategory validates a caller-supplied category tag.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryObservationEvaluation, CategoryFeelingsThoughts, CategoryNeedsDemands,
		CategoryListeningBarriers, CategoryRequests, CategoryGratitude, CategoryConflictResolution:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Difficulty grades an exercise. Empty means unspecified.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty validates a caller-supplied difficulty value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return Difficulty(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

// Audience marks whether an exercise is meant for solo or group practice.
// Empty means unspecified.
type Audience string

const (
	AudienceIndividual Audience = "individual"
	AudienceGroup      Audience = "group"
)

// ParseAudience validates a caller-supplied audience value.
func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceIndividual, AudienceGroup:
		return Audience(s), nil
	default:
		return "", fmt.Errorf("unknown audience %q", s)
	}
}

// BilingualText is an English/Chinese text pair. Language selection is a
// closed switch over the two variants rather than a keyed lookup.
type BilingualText struct {
	EN string `json:"en"`
	ZH string `json:"zh"`
}

// In returns the variant for the given language. lang must have been
// validated with ParseLanguage.
func (t BilingualText) In(lang Language) string {
	if lang == LanguageZH {
		return t.ZH
	}
	return t.EN
}

// Exercise is a categorized bilingual learning unit. Records are created
// only by the bulk seed loader and are immutable afterwards; there is no
// update or delete path.
type Exercise struct {
	ID          int64
	Category    Category
	Name        BilingualText
	Description BilingualText
	Difficulty  Difficulty // optional
	Audience    Audience   // optional

	// RelatedIDs may reference exercises that no longer resolve; dangling
	// references are tolerated.
	RelatedIDs []int64

	// Category-specific fields. A nil pointer (or nil Steps) means the
	// record does not carry the field; presence requires both language
	// variants.
	Scenario            *BilingualText
	Example             *BilingualText
	Alternative         *BilingualText
	RequestTemplate     *BilingualText
	GratitudeExpression *BilingualText
	Steps               []BilingualText
}

// ExerciseFilter holds equality predicates for listing exercises. Zero-value
// fields impose no constraint; set fields combine conjunctively.
type ExerciseFilter struct {
	Category   Category
	Difficulty Difficulty
	Audience   Audience
}
