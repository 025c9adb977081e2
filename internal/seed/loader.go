// Package seed parses exercise seed files and validates them before they are
// bulk-inserted. Seeding is the only write path for exercise content, so
// every data-integrity rule is enforced here: closed enum values, required
// bilingual text, half-translated optional fields, and per-language step
// arrays of unequal length are all rejected rather than loaded.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/softspoken/nvcpractice/internal/domain/model"
)

// bilingual is the seed-file form of a text pair.
type bilingual struct {
	EN string `json:"en"`
	ZH string `json:"zh"`
}

// steps carries one array per language; the loader zips them into
// index-aligned pairs and refuses mismatched lengths.
type steps struct {
	EN []string `json:"en"`
	ZH []string `json:"zh"`
}

type exercise struct {
	Category            string     `json:"category"`
	Name                bilingual  `json:"name"`
	Description         bilingual  `json:"description"`
	Difficulty          string     `json:"difficulty"`
	Audience            string     `json:"audience"`
	RelatedIDs          []int64    `json:"related_ids"`
	Scenario            *bilingual `json:"scenario"`
	Example             *bilingual `json:"example"`
	Alternative         *bilingual `json:"alternative"`
	RequestTemplate     *bilingual `json:"request_template"`
	GratitudeExpression *bilingual `json:"gratitude_expression"`
	Steps               *steps     `json:"steps"`
}

// File reads and validates a seed file from disk.
func File(path string) ([]model.Exercise, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	exercises, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return exercises, nil
}

// Read parses and validates a JSON array of seed exercises.
func Read(r io.Reader) ([]model.Exercise, error) {
	var raw []exercise
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	exercises := make([]model.Exercise, 0, len(raw))
	for i, entry := range raw {
		ex, err := convert(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		exercises = append(exercises, ex)
	}

	return exercises, nil
}

func convert(entry exercise) (model.Exercise, error) {
	var ex model.Exercise
	var err error

	ex.Category, err = model.ParseCategory(entry.Category)
	if err != nil {
		return model.Exercise{}, err
	}

	ex.Name, err = requiredPair("name", entry.Name)
	if err != nil {
		return model.Exercise{}, err
	}
	ex.Description, err = requiredPair("description", entry.Description)
	if err != nil {
		return model.Exercise{}, err
	}

	if entry.Difficulty != "" {
		ex.Difficulty, err = model.ParseDifficulty(entry.Difficulty)
		if err != nil {
			return model.Exercise{}, err
		}
	}
	if entry.Audience != "" {
		ex.Audience, err = model.ParseAudience(entry.Audience)
		if err != nil {
			return model.Exercise{}, err
		}
	}

	ex.RelatedIDs = entry.RelatedIDs

	if ex.Scenario, err = optionalPair("scenario", entry.Scenario); err != nil {
		return model.Exercise{}, err
	}
	if ex.Example, err = optionalPair("example", entry.Example); err != nil {
		return model.Exercise{}, err
	}
	if ex.Alternative, err = optionalPair("alternative", entry.Alternative); err != nil {
		return model.Exercise{}, err
	}
	if ex.RequestTemplate, err = optionalPair("request_template", entry.RequestTemplate); err != nil {
		return model.Exercise{}, err
	}
	if ex.GratitudeExpression, err = optionalPair("gratitude_expression", entry.GratitudeExpression); err != nil {
		return model.Exercise{}, err
	}

	if entry.Steps != nil {
		ex.Steps, err = zipSteps(*entry.Steps)
		if err != nil {
			return model.Exercise{}, err
		}
	}

	return ex, nil
}

func requiredPair(field string, pair bilingual) (model.BilingualText, error) {
	if strings.TrimSpace(pair.EN) == "" || strings.TrimSpace(pair.ZH) == "" {
		return model.BilingualText{}, fmt.Errorf("%s requires both language variants", field)
	}
	return model.BilingualText{EN: pair.EN, ZH: pair.ZH}, nil
}

func optionalPair(field string, pair *bilingual) (*model.BilingualText, error) {
	if pair == nil {
		return nil, nil
	}
	// A half-translated optional field is a data error, not an absence.
	text, err := requiredPair(field, *pair)
	if err != nil {
		return nil, err
	}
	return &text, nil
}

// zipSteps aligns the per-language arrays position by position. Unequal
// lengths mean the translations have drifted apart and the file must be
// fixed; silently truncating or padding would hide the drift.
func zipSteps(s steps) ([]model.BilingualText, error) {
	if len(s.EN) != len(s.ZH) {
		return nil, fmt.Errorf("steps arrays have mismatched lengths: en=%d zh=%d", len(s.EN), len(s.ZH))
	}
	if len(s.EN) == 0 {
		return nil, fmt.Errorf("steps must not be empty when present")
	}

	pairs := make([]model.BilingualText, len(s.EN))
	for i := range s.EN {
		if strings.TrimSpace(s.EN[i]) == "" || strings.TrimSpace(s.ZH[i]) == "" {
			return nil, fmt.Errorf("step %d requires both language variants", i)
		}
		pairs[i] = model.BilingualText{EN: s.EN[i], ZH: s.ZH[i]}
	}

	return pairs, nil
}
