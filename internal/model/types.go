package model

import "time"

type Slot string

const (
	SlotBreakfast Slot = "breakfast"
	SlotLunch     Slot = "lunch"
	SlotDinner    Slot = "dinner"
	SlotSnack     Slot = "snack"
	SlotOther     Slot = "other"
)

// DaySlots are the slots surfaced in per-day summaries. SlotOther is
// classified but never reported on its own.
var DaySlots = []Slot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

type UserProfile struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Age             *int      `json:"age"`
	Gender          string    `json:"gender"`
	HeightCm        *float64  `json:"height_cm"`
	InitialWeightKg *float64  `json:"initial_weight_kg"`
	TargetWeightKg  *float64  `json:"target_weight_kg"`
	CreatedAt       time.Time `json:"created_at"`
}

type FoodReference struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	Source          string  `json:"source"`
	SourceRef       string  `json:"source_ref,omitempty"`
}

type MealLog struct {
	ID       int64         `json:"id"`
	UserID   int64         `json:"user_id"`
	Date     string        `json:"date"`
	Slot     Slot          `json:"meal_type"`
	Portions []MealPortion `json:"portions"`
}

type MealPortion struct {
	ID     int64   `json:"id"`
	MealID int64   `json:"meal_id"`
	FoodID int64   `json:"food_id"`
	Grams  float64 `json:"grams"`
}

type WeightRecord struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Date       string    `json:"date"`
	TimeOfDay  string    `json:"time,omitempty"`
	WeightKg   float64   `json:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat"`
	WrittenAt  time.Time `json:"written_at"`
}

type WaterRecord struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Date      string  `json:"date"`
	TimeOfDay string  `json:"time,omitempty"`
	Drink     string  `json:"drink"`
	AmountMl  float64 `json:"amount_ml"`
}

type ExerciseRecord struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Date          string  `json:"date"`
	ExerciseType  string  `json:"exercise_type"`
	TotalCalories float64 `json:"total_calories"`
	DurationMin   *int    `json:"duration_min,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

func (m MealLog) RecordDate() string      { return m.Date }
func (m MealLog) RecordTime() string      { return "" }
func (w WeightRecord) RecordDate() string { return w.Date }
func (w WeightRecord) RecordTime() string { return w.TimeOfDay }
func (w WaterRecord) RecordDate() string  { return w.Date }
func (w WaterRecord) RecordTime() string  { return w.TimeOfDay }
