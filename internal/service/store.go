package service

import (
	"context"
	"database/sql"

	"github.com/saadjs/healthy-cli/internal/model"
)

// Store reads logs from the SQLite database for the energy engine.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UserProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	return getUser(s.with(ctx), userID)
}

func (s *Store) WeightRecords(ctx context.Context, userID int64, date string) ([]model.WeightRecord, error) {
	return loadWeightRecords(s.with(ctx), userID, date)
}

func (s *Store) ExerciseRecords(ctx context.Context, userID int64, date string) ([]model.ExerciseRecord, error) {
	return loadExerciseRecords(s.with(ctx), userID, date)
}

func (s *Store) MealLogs(ctx context.Context, userID int64, date string) ([]model.MealLog, error) {
	return loadMealLogs(s.with(ctx), userID, date)
}

func (s *Store) Food(ctx context.Context, id int64) (model.FoodReference, error) {
	return getFood(s.with(ctx), id)
}

func (s *Store) with(ctx context.Context) queryer {
	return ctxQueryer{ctx: ctx, db: s.db}
}

// ctxQueryer binds a context to every statement run through it.
type ctxQueryer struct {
	ctx context.Context
	db  *sql.DB
}

func (c ctxQueryer) QueryRow(query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(c.ctx, query, args...)
}

func (c ctxQueryer) Query(query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(c.ctx, query, args...)
}

func (c ctxQueryer) Exec(query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(c.ctx, query, args...)
}
