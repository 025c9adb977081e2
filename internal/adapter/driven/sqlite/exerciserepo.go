package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/softspoken/nvcpractice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ExerciseStore = (*ExerciseRepo)(nil)

// ExerciseRepo is the SQLite implementation of the ExerciseStore port interface.
type ExerciseRepo struct {
	db *DB
}

// NewExerciseRepo creates a new ExerciseRepo backed by the given DB.
func NewExerciseRepo(db *DB) *ExerciseRepo {
	return &ExerciseRepo{db: db}
}

var exerciseColumns = []string{
	"id", "category",
	"name_en", "name_zh",
	"description_en", "description_zh",
	"difficulty", "audience", "related_ids",
	"scenario_en", "scenario_zh",
	"example_en", "example_zh",
	"alternative_en", "alternative_zh",
	"request_template_en", "request_template_zh",
	"gratitude_expression_en", "gratitude_expression_zh",
	"steps",
}

// List returns exercises matching every set field of the filter. Each set
// field contributes one equality predicate; the predicates are ANDed by the
// query builder, so no WHERE clause is ever assembled from strings.
func (r *ExerciseRepo) List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error) {
	qb := sq.Select(exerciseColumns...).From("exercises").OrderBy("id")

	if filter.Category != "" {
		qb = qb.Where(sq.Eq{"category": string(filter.Category)})
	}
	if filter.Difficulty != "" {
		qb = qb.Where(sq.Eq{"difficulty": string(filter.Difficulty)})
	}
	if filter.Audience != "" {
		qb = qb.Where(sq.Eq{"audience": string(filter.Audience)})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []model.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, *ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	return exercises, nil
}

// GetByID retrieves an exercise by exact id. Returns nil, nil if no exercise
// with that id exists.
func (r *ExerciseRepo) GetByID(ctx context.Context, id int64) (*model.Exercise, error) {
	query, args, err := sq.Select(exerciseColumns...).From("exercises").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	ex, err := scanExercise(r.db.Reader.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}

	return ex, nil
}

// InsertBatch inserts exercises in a single transaction on the writer
// connection. Used only by the seed loader.
func (r *ExerciseRepo) InsertBatch(ctx context.Context, exercises []model.Exercise) error {
	const query = `INSERT INTO exercises (
		category, name_en, name_zh, description_en, description_zh,
		difficulty, audience, related_ids,
		scenario_en, scenario_zh, example_en, example_zh,
		alternative_en, alternative_zh, request_template_en, request_template_zh,
		gratitude_expression_en, gratitude_expression_zh, steps
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ex := range exercises {
		relatedIDs, err := marshalNullable(ex.RelatedIDs, len(ex.RelatedIDs) > 0)
		if err != nil {
			return fmt.Errorf("marshal related ids: %w", err)
		}
		steps, err := marshalNullable(ex.Steps, len(ex.Steps) > 0)
		if err != nil {
			return fmt.Errorf("marshal steps: %w", err)
		}

		scenarioEN, scenarioZH := splitPair(ex.Scenario)
		exampleEN, exampleZH := splitPair(ex.Example)
		alternativeEN, alternativeZH := splitPair(ex.Alternative)
		requestEN, requestZH := splitPair(ex.RequestTemplate)
		gratitudeEN, gratitudeZH := splitPair(ex.GratitudeExpression)

		_, err = tx.ExecContext(ctx, query,
			string(ex.Category),
			ex.Name.EN, ex.Name.ZH,
			ex.Description.EN, ex.Description.ZH,
			nullEnum(string(ex.Difficulty)), nullEnum(string(ex.Audience)), relatedIDs,
			scenarioEN, scenarioZH,
			exampleEN, exampleZH,
			alternativeEN, alternativeZH,
			requestEN, requestZH,
			gratitudeEN, gratitudeZH,
			steps,
		)
		if err != nil {
			return fmt.Errorf("insert exercise %q: %w", ex.Name.EN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert batch: %w", err)
	}

	return nil
}

func scanExercise(s scanner) (*model.Exercise, error) {
	var ex model.Exercise
	var category string
	var difficulty, audience, relatedIDs, steps sql.NullString
	var scenarioEN, scenarioZH sql.NullString
	var exampleEN, exampleZH sql.NullString
	var alternativeEN, alternativeZH sql.NullString
	var requestEN, requestZH sql.NullString
	var gratitudeEN, gratitudeZH sql.NullString

	err := s.Scan(
		&ex.ID, &category,
		&ex.Name.EN, &ex.Name.ZH,
		&ex.Description.EN, &ex.Description.ZH,
		&difficulty, &audience, &relatedIDs,
		&scenarioEN, &scenarioZH,
		&exampleEN, &exampleZH,
		&alternativeEN, &alternativeZH,
		&requestEN, &requestZH,
		&gratitudeEN, &gratitudeZH,
		&steps,
	)
	if err != nil {
		return nil, err
	}

	ex.Category = model.Category(category)
	if difficulty.Valid {
		ex.Difficulty = model.Difficulty(difficulty.String)
	}
	if audience.Valid {
		ex.Audience = model.Audience(audience.String)
	}

	if relatedIDs.Valid {
		if err := json.Unmarshal([]byte(relatedIDs.String), &ex.RelatedIDs); err != nil {
			return nil, fmt.Errorf("unmarshal related_ids: %w", err)
		}
	}
	if steps.Valid {
		if err := json.Unmarshal([]byte(steps.String), &ex.Steps); err != nil {
			return nil, fmt.Errorf("unmarshal steps: %w", err)
		}
	}

	ex.Scenario = joinPair(scenarioEN, scenarioZH)
	ex.Example = joinPair(exampleEN, exampleZH)
	ex.Alternative = joinPair(alternativeEN, alternativeZH)
	ex.RequestTemplate = joinPair(requestEN, requestZH)
	ex.GratitudeExpression = joinPair(gratitudeEN, gratitudeZH)

	return &ex, nil
}

// joinPair builds a bilingual pair from two nullable columns. Presence
// requires both variants; a half-present pair is treated as absent.
func joinPair(en, zh sql.NullString) *model.BilingualText {
	if !en.Valid || !zh.Valid {
		return nil
	}
	return &model.BilingualText{EN: en.String, ZH: zh.String}
}

// splitPair is the write-side inverse of joinPair.
func splitPair(t *model.BilingualText) (any, any) {
	if t == nil {
		return nil, nil
	}
	return t.EN, t.ZH
}

// nullEnum maps an unset enum to NULL rather than an empty string, so the
// column CHECK constraints hold.
func nullEnum(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// marshalNullable JSON-encodes v, or returns NULL when the value is absent.
func marshalNullable(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// formatTime stores timestamps as UTC RFC 3339 text so reads are
// driver-independent.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
