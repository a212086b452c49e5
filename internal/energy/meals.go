package energy

import (
	"strings"

	"github.com/saadjs/healthy-cli/internal/model"
)

// FoodTable resolves food references. A missing food is reported with
// ok=false and is never an error.
type FoodTable interface {
	Food(id int64) (model.FoodReference, bool)
}

type FoodMap map[int64]model.FoodReference

func (m FoodMap) Food(id int64) (model.FoodReference, bool) {
	f, ok := m[id]
	return f, ok
}

// ParseSlot maps a meal label to a slot. The English names and the labels
// used by the original mobile client are recognised; everything else is
// SlotOther.
func ParseSlot(label string) model.Slot {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "breakfast", "早餐":
		return model.SlotBreakfast
	case "lunch", "午餐":
		return model.SlotLunch
	case "dinner", "晚餐":
		return model.SlotDinner
	case "snack", "snacks", "加餐":
		return model.SlotSnack
	default:
		return model.SlotOther
	}
}

// PortionKcal returns the calories of one portion and the food name. An
// unresolved food contributes 0 kcal and an empty name.
func PortionKcal(p model.MealPortion, foods FoodTable) (float64, string) {
	food, ok := foods.Food(p.FoodID)
	if !ok {
		return 0, ""
	}
	return p.Grams * food.CaloriesPer100g / 100, food.Name
}

// KcalForSlot sums the portions of every meal log in slot. meals are the
// logs of a single user and day.
func KcalForSlot(meals []model.MealLog, foods FoodTable, slot model.Slot) float64 {
	total := 0.0
	for _, m := range meals {
		if m.Slot != slot {
			continue
		}
		for _, p := range m.Portions {
			kcal, _ := PortionKcal(p, foods)
			total += kcal
		}
	}
	return total
}

type SlotKcal struct {
	Breakfast float64
	Lunch     float64
	Dinner    float64
	Snack     float64
}

func (s SlotKcal) Total() float64 {
	return s.Breakfast + s.Lunch + s.Dinner + s.Snack
}

func KcalForDay(meals []model.MealLog, foods FoodTable) SlotKcal {
	return SlotKcal{
		Breakfast: KcalForSlot(meals, foods, model.SlotBreakfast),
		Lunch:     KcalForSlot(meals, foods, model.SlotLunch),
		Dinner:    KcalForSlot(meals, foods, model.SlotDinner),
		Snack:     KcalForSlot(meals, foods, model.SlotSnack),
	}
}

type PortionLine struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Calorie float64 `json:"calorie"`
}

func PortionLines(m model.MealLog, foods FoodTable) []PortionLine {
	lines := make([]PortionLine, 0, len(m.Portions))
	for _, p := range m.Portions {
		kcal, name := PortionKcal(p, foods)
		lines = append(lines, PortionLine{ID: p.ID, Name: name, Amount: p.Grams, Calorie: Round(kcal, 2)})
	}
	return lines
}

type DayMeals struct {
	Breakfast []PortionLine `json:"breakfast"`
	Lunch     []PortionLine `json:"lunch"`
	Dinner    []PortionLine `json:"dinner"`
	Snack     []PortionLine `json:"snack"`
}

// MealsBySlot lists the portions of one day per slot. Several logs in the
// same slot are concatenated in input order.
func MealsBySlot(meals []model.MealLog, foods FoodTable) DayMeals {
	out := DayMeals{
		Breakfast: []PortionLine{},
		Lunch:     []PortionLine{},
		Dinner:    []PortionLine{},
		Snack:     []PortionLine{},
	}
	for _, m := range meals {
		lines := PortionLines(m, foods)
		switch m.Slot {
		case model.SlotBreakfast:
			out.Breakfast = append(out.Breakfast, lines...)
		case model.SlotLunch:
			out.Lunch = append(out.Lunch, lines...)
		case model.SlotDinner:
			out.Dinner = append(out.Dinner, lines...)
		case model.SlotSnack:
			out.Snack = append(out.Snack, lines...)
		}
	}
	return out
}

type MealGroup struct {
	Type  model.Slot    `json:"type"`
	Items []PortionLine `json:"items"`
}

type MealDay struct {
	Date  string      `json:"date"`
	Meals []MealGroup `json:"meals"`
}

// MealDays turns day groups of meal logs into their displayed form, one
// MealGroup per log in the order of the group.
func MealDays(groups []DayGroup[model.MealLog], foods FoodTable) []MealDay {
	out := make([]MealDay, 0, len(groups))
	for _, g := range groups {
		day := MealDay{Date: g.Date, Meals: make([]MealGroup, 0, len(g.Records))}
		for _, m := range g.Records {
			day.Meals = append(day.Meals, MealGroup{Type: m.Slot, Items: PortionLines(m, foods)})
		}
		out = append(out, day)
	}
	return out
}
