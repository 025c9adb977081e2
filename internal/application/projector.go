package application

import (
	"errors"
	"fmt"

	"github.com/softspoken/nvcpractice/internal/domain/model"
)

// ErrInvalidLanguage is returned by ProjectExercise for a language code
// outside the supported pair. There is no silent default.
var ErrInvalidLanguage = errors.New("unsupported language")

// ProjectedExercise is the caller-facing shape of an exercise. Bilingual
// fields hold either a two-entry language map (no language requested) or a
// plain string (one language requested); Steps likewise holds pairs or plain
// strings. Identifiers and enumerated metadata pass through unchanged.
type ProjectedExercise struct {
	ID                  int64   `json:"id"`
	Category            string  `json:"category"`
	Difficulty          string  `json:"difficulty,omitempty"`
	Audience            string  `json:"audience,omitempty"`
	RelatedIDs          []int64 `json:"related_ids,omitempty"`
	Name                any     `json:"name"`
	Description         any     `json:"description"`
	Scenario            any     `json:"scenario,omitempty"`
	Example             any     `json:"example,omitempty"`
	Alternative         any     `json:"alternative,omitempty"`
	RequestTemplate     any     `json:"request_template,omitempty"`
	GratitudeExpression any     `json:"gratitude_expression,omitempty"`
	Steps               any     `json:"steps,omitempty"`
}

// ProjectExercise resolves a stored bilingual record into the shape the
// caller asked for. An empty lang keeps every bilingual field as a language
// map with both entries; "en" or "zh" collapses each field to that single
// variant. Anything else fails with ErrInvalidLanguage.
func ProjectExercise(ex model.Exercise, lang model.Language) (ProjectedExercise, error) {
	if lang != "" {
		if _, err := model.ParseLanguage(string(lang)); err != nil {
			return ProjectedExercise{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
	}

	return ProjectedExercise{
		ID:                  ex.ID,
		Category:            string(ex.Category),
		Difficulty:          string(ex.Difficulty),
		Audience:            string(ex.Audience),
		RelatedIDs:          ex.RelatedIDs,
		Name:                textValue(ex.Name, lang),
		Description:         textValue(ex.Description, lang),
		Scenario:            optionalTextValue(ex.Scenario, lang),
		Example:             optionalTextValue(ex.Example, lang),
		Alternative:         optionalTextValue(ex.Alternative, lang),
		RequestTemplate:     optionalTextValue(ex.RequestTemplate, lang),
		GratitudeExpression: optionalTextValue(ex.GratitudeExpression, lang),
		Steps:               stepsValue(ex.Steps, lang),
	}, nil
}

func textValue(t model.BilingualText, lang model.Language) any {
	if lang == "" {
		return map[string]string{
			string(model.LanguageEN): t.EN,
			string(model.LanguageZH): t.ZH,
		}
	}
	return t.In(lang)
}

// optionalTextValue returns nil for an absent field so omitempty drops it
// from the output; presence is data-driven, not derived from the category.
func optionalTextValue(t *model.BilingualText, lang model.Language) any {
	if t == nil {
		return nil
	}
	return textValue(*t, lang)
}

// stepsValue collapses the step sequence position by position: the Nth
// collapsed entry is the requested variant of the Nth stored pair.
func stepsValue(steps []model.BilingualText, lang model.Language) any {
	if len(steps) == 0 {
		return nil
	}
	if lang == "" {
		return steps
	}

	collapsed := make([]string, len(steps))
	for i, step := range steps {
		collapsed[i] = step.In(lang)
	}
	return collapsed
}
