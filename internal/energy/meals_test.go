package energy_test

import (
	"testing"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var foods = energy.FoodMap{
	1: {ID: 1, Name: "oats", CaloriesPer100g: 389},
	2: {ID: 2, Name: "banana", CaloriesPer100g: 89},
}

func TestParseSlot(t *testing.T) {
	cases := map[string]model.Slot{
		"breakfast": model.SlotBreakfast,
		" Lunch ":   model.SlotLunch,
		"dinner":    model.SlotDinner,
		"snacks":    model.SlotSnack,
		"早餐":        model.SlotBreakfast,
		"午餐":        model.SlotLunch,
		"晚餐":        model.SlotDinner,
		"加餐":        model.SlotSnack,
		"brunch":    model.SlotOther,
		"":          model.SlotOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, energy.ParseSlot(in), in)
	}
}

func TestKcalForSlotWithoutLogsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, energy.KcalForSlot(nil, foods, model.SlotBreakfast))
	assert.Equal(t, energy.SlotKcal{}, energy.KcalForDay(nil, foods))
}

func TestKcalForDayAddsDuplicateSlots(t *testing.T) {
	meals := []model.MealLog{
		{ID: 1, Slot: model.SlotBreakfast, Portions: []model.MealPortion{{ID: 1, FoodID: 1, Grams: 40}}},
		{ID: 2, Slot: model.SlotBreakfast, Portions: []model.MealPortion{{ID: 2, FoodID: 2, Grams: 120}}},
		{ID: 3, Slot: model.SlotOther, Portions: []model.MealPortion{{ID: 3, FoodID: 1, Grams: 100}}},
	}
	day := energy.KcalForDay(meals, foods)
	assert.InDelta(t, 155.6+106.8, day.Breakfast, 1e-9)
	assert.Equal(t, 0.0, day.Lunch)
	assert.InDelta(t, 262.4, day.Total(), 1e-9)
}

func TestPortionLinesUnresolvedFood(t *testing.T) {
	m := model.MealLog{ID: 1, Slot: model.SlotSnack, Portions: []model.MealPortion{
		{ID: 7, FoodID: 99, Grams: 30},
		{ID: 8, FoodID: 2, Grams: 33.3},
	}}
	lines := energy.PortionLines(m, foods)
	require.Len(t, lines, 2)
	assert.Equal(t, energy.PortionLine{ID: 7, Name: "", Amount: 30, Calorie: 0}, lines[0])
	assert.Equal(t, "banana", lines[1].Name)
	assert.Equal(t, 29.64, lines[1].Calorie)
}

func TestMealsBySlot(t *testing.T) {
	meals := []model.MealLog{
		{ID: 1, Slot: model.SlotLunch, Portions: []model.MealPortion{{ID: 1, FoodID: 1, Grams: 50}}},
		{ID: 2, Slot: model.SlotLunch, Portions: []model.MealPortion{{ID: 2, FoodID: 2, Grams: 100}}},
		{ID: 3, Slot: model.SlotOther, Portions: []model.MealPortion{{ID: 3, FoodID: 2, Grams: 100}}},
	}
	got := energy.MealsBySlot(meals, foods)
	assert.Empty(t, got.Breakfast)
	assert.NotNil(t, got.Breakfast)
	require.Len(t, got.Lunch, 2)
	assert.Equal(t, int64(1), got.Lunch[0].ID)
	assert.Equal(t, 194.5, got.Lunch[0].Calorie)
	assert.Equal(t, int64(2), got.Lunch[1].ID)
	assert.Empty(t, got.Dinner)
	assert.Empty(t, got.Snack)
}

func TestMealDays(t *testing.T) {
	meals := []model.MealLog{
		{ID: 1, Date: "2025-10-24", Slot: model.SlotDinner, Portions: []model.MealPortion{{ID: 1, FoodID: 1, Grams: 100}}},
		{ID: 2, Date: "2025-10-25", Slot: model.SlotBreakfast, Portions: []model.MealPortion{{ID: 2, FoodID: 2, Grams: 50}}},
		{ID: 3, Date: "2025-10-25", Slot: model.SlotOther, Portions: nil},
	}
	w, err := energy.NewWindow("all", "", "", "")
	require.NoError(t, err)

	days := energy.MealDays(energy.Aggregate(meals, w), foods)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-10-25", days[0].Date)
	require.Len(t, days[0].Meals, 2)
	assert.Equal(t, model.SlotBreakfast, days[0].Meals[0].Type)
	assert.Equal(t, 44.5, days[0].Meals[0].Items[0].Calorie)
	assert.Equal(t, model.SlotOther, days[0].Meals[1].Type)
	assert.Empty(t, days[0].Meals[1].Items)
	assert.Equal(t, 389.0, days[1].Meals[0].Items[0].Calorie)
}
