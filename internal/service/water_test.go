package service_test

import (
	"errors"
	"testing"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/service"
)

func TestWaterRecordsOrderedWithinDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "ann")
	inputs := []service.WaterInput{
		{Date: "2025-10-25", TimeOfDay: "18:30", Drink: "tea", AmountMl: 300},
		{Date: "2025-10-25", AmountMl: 200},
		{Date: "2025-10-25", TimeOfDay: "07:15", Drink: "coffee", AmountMl: 150},
		{Date: "2025-10-24", TimeOfDay: "12:00", AmountMl: 500},
	}
	for _, in := range inputs {
		in.UserID = user
		if _, err := service.AddWaterRecord(db, in); err != nil {
			t.Fatalf("add water %+v: %v", in, err)
		}
	}

	groups, err := service.ListWaterRecords(db, service.RecordsQuery{UserID: user, Mode: "today", Date: "2025-10-25"})
	if err != nil {
		t.Fatalf("list water: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Records) != 3 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	got := []string{groups[0].Records[0].Drink, groups[0].Records[1].Drink, groups[0].Records[2].Drink}
	if got[0] != "water" || got[1] != "coffee" || got[2] != "tea" {
		t.Fatalf("unexpected order: %v", got)
	}

	groups, err = service.ListWaterRecords(db, service.RecordsQuery{UserID: user})
	if err != nil {
		t.Fatalf("list all water: %v", err)
	}
	if len(groups) != 2 || groups[1].Date != "2025-10-24" {
		t.Fatalf("unexpected all groups: %+v", groups)
	}

	if err := service.DeleteWaterRecord(db, user, groups[1].Records[0].ID); err != nil {
		t.Fatalf("delete water: %v", err)
	}
}

func TestWaterValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	user := seedUser(t, db, "ann")
	for _, in := range []service.WaterInput{
		{UserID: user, AmountMl: 0},
		{UserID: user, AmountMl: 100, TimeOfDay: "25:00"},
		{UserID: user, AmountMl: 100, Date: "someday"},
	} {
		if _, err := service.AddWaterRecord(db, in); !errors.Is(err, energy.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
	if _, err := service.ListWaterRecords(db, service.RecordsQuery{UserID: user, Mode: "week", Start: "bad", End: "2025-10-01"}); !errors.Is(err, energy.ErrInvalidInput) {
		t.Fatalf("expected invalid window, got %v", err)
	}
}
