package service_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/service"
)

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestAddMealRecordRejectsUnknownFood(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "ann")
	rice := seedFood(t, db, "rice", "grains", 130)

	_, err := service.AddMealRecord(db, service.MealInput{
		UserID:   user,
		Date:     "2025-10-25",
		MealType: "lunch",
		Portions: []service.PortionInput{{FoodID: rice, Grams: 100}, {FoodID: 404, Grams: 50}},
	})
	if !errors.Is(err, energy.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if n := countRows(t, db, "meal_logs"); n != 0 {
		t.Fatalf("expected no meal logs written, got %d", n)
	}
	if n := countRows(t, db, "meal_portions"); n != 0 {
		t.Fatalf("expected no portions written, got %d", n)
	}

	_, err = service.AddMealRecord(db, service.MealInput{UserID: 99, MealType: "lunch", Portions: []service.PortionInput{{FoodID: rice, Grams: 10}}})
	if !errors.Is(err, energy.ErrNotFound) {
		t.Fatalf("expected unknown user to be not found, got %v", err)
	}
	_, err = service.AddMealRecord(db, service.MealInput{UserID: user, MealType: "lunch"})
	if !errors.Is(err, energy.ErrInvalidInput) {
		t.Fatalf("expected empty meal to be invalid, got %v", err)
	}
	_, err = service.AddMealRecord(db, service.MealInput{UserID: user, Date: "tomorrow", MealType: "lunch", Portions: []service.PortionInput{{FoodID: rice, Grams: 10}}})
	if !errors.Is(err, energy.ErrInvalidInput) {
		t.Fatalf("expected bad date to be invalid, got %v", err)
	}
}

func TestMealRecordsTodayAndHistory(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "ann")
	rice := seedFood(t, db, "rice", "grains", 130)
	egg := seedFood(t, db, "egg", "protein", 155)

	add := func(date, label string, portions ...service.PortionInput) {
		t.Helper()
		if _, err := service.AddMealRecord(db, service.MealInput{UserID: user, Date: date, MealType: label, Portions: portions}); err != nil {
			t.Fatalf("add meal %s %s: %v", date, label, err)
		}
	}
	add("2025-10-25", "早餐", service.PortionInput{FoodID: egg, Grams: 100})
	add("2025-10-25", "lunch", service.PortionInput{FoodID: rice, Grams: 33.3})
	add("2025-10-25", "lunch", service.PortionInput{FoodID: egg, Grams: 10})
	add("2025-10-25", "brunch", service.PortionInput{FoodID: rice, Grams: 100})
	add("2025-10-24", "dinner", service.PortionInput{FoodID: rice, Grams: 200})

	got, err := service.ListMealRecords(db, service.RecordsQuery{UserID: user, Mode: "today", Date: "2025-10-25"})
	if err != nil {
		t.Fatalf("today records: %v", err)
	}
	if got.Today == nil || got.Days != nil {
		t.Fatalf("expected today view only, got %+v", got)
	}
	if len(got.Today.Breakfast) != 1 || got.Today.Breakfast[0].Name != "egg" || got.Today.Breakfast[0].Calorie != 155 {
		t.Fatalf("unexpected breakfast: %+v", got.Today.Breakfast)
	}
	if len(got.Today.Lunch) != 2 || got.Today.Lunch[0].Calorie != 43.29 || got.Today.Lunch[1].Calorie != 15.5 {
		t.Fatalf("unexpected lunch: %+v", got.Today.Lunch)
	}
	if len(got.Today.Dinner) != 0 || len(got.Today.Snack) != 0 {
		t.Fatalf("expected empty dinner and snack: %+v", got.Today)
	}

	got, err = service.ListMealRecords(db, service.RecordsQuery{UserID: user, Mode: "week", Start: "2025-10-20", End: "2025-10-24"})
	if err != nil {
		t.Fatalf("week records: %v", err)
	}
	if len(got.Days) != 1 || got.Days[0].Date != "2025-10-24" || got.Days[0].Meals[0].Type != model.SlotDinner {
		t.Fatalf("unexpected week records: %+v", got.Days)
	}

	got, err = service.ListMealRecords(db, service.RecordsQuery{UserID: user})
	if err != nil {
		t.Fatalf("all records: %v", err)
	}
	if len(got.Days) != 2 || got.Days[0].Date != "2025-10-25" || len(got.Days[0].Meals) != 4 {
		t.Fatalf("unexpected history: %+v", got.Days)
	}
	if got.Days[0].Meals[3].Type != model.SlotOther {
		t.Fatalf("expected unknown label stored as other, got %s", got.Days[0].Meals[3].Type)
	}
}

func TestDeleteMealPortionRemovesEmptyLog(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	ann := seedUser(t, db, "ann")
	bob := seedUser(t, db, "bob")
	rice := seedFood(t, db, "rice", "grains", 130)

	if _, err := service.AddMealRecord(db, service.MealInput{
		UserID: ann, Date: "2025-10-25", MealType: "dinner",
		Portions: []service.PortionInput{{FoodID: rice, Grams: 100}, {FoodID: rice, Grams: 50}},
	}); err != nil {
		t.Fatalf("add meal: %v", err)
	}
	rec, err := service.ListMealRecords(db, service.RecordsQuery{UserID: ann, Mode: "today", Date: "2025-10-25"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first, second := rec.Today.Dinner[0].ID, rec.Today.Dinner[1].ID

	if _, err := service.DeleteMealPortion(db, bob, first); !errors.Is(err, energy.ErrNotFound) {
		t.Fatalf("expected other user's portion to be not found, got %v", err)
	}

	removed, err := service.DeleteMealPortion(db, ann, first)
	if err != nil {
		t.Fatalf("delete first portion: %v", err)
	}
	if removed || countRows(t, db, "meal_logs") != 1 {
		t.Fatalf("meal log should survive while portions remain")
	}

	removed, err = service.DeleteMealPortion(db, ann, second)
	if err != nil {
		t.Fatalf("delete second portion: %v", err)
	}
	if !removed || countRows(t, db, "meal_logs") != 0 {
		t.Fatalf("expected empty meal log to be removed")
	}
	if _, err := service.DeleteMealPortion(db, ann, second); !errors.Is(err, energy.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
