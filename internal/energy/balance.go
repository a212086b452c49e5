package energy

import (
	"context"
	"errors"
	"fmt"

	"github.com/saadjs/healthy-cli/internal/model"
)

// Source is the read side of the log store. UserProfile and Food return an
// error wrapping ErrNotFound for unknown ids.
type Source interface {
	UserProfile(ctx context.Context, userID int64) (model.UserProfile, error)
	WeightRecords(ctx context.Context, userID int64, date string) ([]model.WeightRecord, error)
	ExerciseRecords(ctx context.Context, userID int64, date string) ([]model.ExerciseRecord, error)
	MealLogs(ctx context.Context, userID int64, date string) ([]model.MealLog, error)
	Food(ctx context.Context, id int64) (model.FoodReference, error)
}

// Snapshot holds everything needed to summarize one user's day.
type Snapshot struct {
	Date      string
	Profile   model.UserProfile
	Weights   []model.WeightRecord
	Exercises []model.ExerciseRecord
	Meals     []model.MealLog
	Foods     FoodMap
}

type Summary struct {
	Date          string  `json:"date"`
	RemainCalorie float64 `json:"remain_calorie"`
	BreakfastKcal float64 `json:"breakfast_kcal"`
	LunchKcal     float64 `json:"lunch_kcal"`
	DinnerKcal    float64 `json:"dinner_kcal"`
	SnackKcal     float64 `json:"snack_kcal"`
	// NetCalorie is TDEE minus intake without the floor, so a surplus shows
	// up as a negative number.
	NetCalorie   float64 `json:"net_calorie"`
	TDEE         float64 `json:"tdee"`
	ExerciseKcal float64 `json:"exercise_kcal"`
}

// LoadSnapshot reads one day of logs for userID. Foods are only resolved
// when meals were logged; unknown foods are left out of the table.
func LoadSnapshot(ctx context.Context, src Source, userID int64, date string) (Snapshot, error) {
	profile, err := src.UserProfile(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	s := Snapshot{Date: date, Profile: profile, Foods: FoodMap{}}
	if s.Weights, err = src.WeightRecords(ctx, userID, date); err != nil {
		return Snapshot{}, fmt.Errorf("load weight records: %w", err)
	}
	if s.Exercises, err = src.ExerciseRecords(ctx, userID, date); err != nil {
		return Snapshot{}, fmt.Errorf("load exercise records: %w", err)
	}
	if s.Meals, err = src.MealLogs(ctx, userID, date); err != nil {
		return Snapshot{}, fmt.Errorf("load meal logs: %w", err)
	}
	for _, m := range s.Meals {
		for _, p := range m.Portions {
			if _, seen := s.Foods[p.FoodID]; seen {
				continue
			}
			food, err := src.Food(ctx, p.FoodID)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return Snapshot{}, fmt.Errorf("resolve food %d: %w", p.FoodID, err)
			}
			s.Foods[p.FoodID] = food
		}
	}
	return s, nil
}

// TDEE is BMR scaled by ActivityMultiplier plus logged exercise.
func TDEE(bmr, exerciseKcal float64) float64 {
	return bmr*ActivityMultiplier + exerciseKcal
}

func ExerciseKcal(records []model.ExerciseRecord, date string) float64 {
	total := 0.0
	for _, r := range records {
		if r.Date == date {
			total += r.TotalCalories
		}
	}
	return total
}

// Summarize computes the energy balance of s.Date. The remaining budget is
// floored at 0; NetCalorie keeps the sign.
func Summarize(s Snapshot) Summary {
	p := ResolveProfile(s.Profile)
	weight := p.InitialWeightKg
	if latest := LatestWeight(s.Weights, s.Date); latest != nil {
		weight = latest.WeightKg
	}
	exercise := ExerciseKcal(s.Exercises, s.Date)
	tdee := TDEE(p.BMR(weight), exercise)

	out := Summary{
		Date:         s.Date,
		TDEE:         Round(tdee, 0),
		ExerciseKcal: Round(exercise, 0),
	}

	meals := make([]model.MealLog, 0, len(s.Meals))
	for _, m := range s.Meals {
		if m.Date == s.Date {
			meals = append(meals, m)
		}
	}
	if len(meals) == 0 {
		out.RemainCalorie = Round(tdee, 0)
		out.NetCalorie = out.RemainCalorie
		return out
	}

	slots := KcalForDay(meals, s.Foods)
	net := tdee - slots.Total()
	remain := net
	if remain < 0 {
		remain = 0
	}
	out.RemainCalorie = Round(remain, 0)
	out.NetCalorie = Round(net, 0)
	out.BreakfastKcal = Round(slots.Breakfast, 0)
	out.LunchKcal = Round(slots.Lunch, 0)
	out.DinnerKcal = Round(slots.Dinner, 0)
	out.SnackKcal = Round(slots.Snack, 0)
	return out
}

// DailyEnergySummary loads and summarizes one day. An unknown user is
// returned as an error wrapping ErrNotFound.
func DailyEnergySummary(ctx context.Context, src Source, userID int64, date string) (Summary, error) {
	s, err := LoadSnapshot(ctx, src, userID, date)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(s), nil
}

// DailyBodyInfo reports body metrics for date using that day's latest
// weight record when there is one.
func DailyBodyInfo(ctx context.Context, src Source, userID int64, date string) (BodyInfo, error) {
	profile, err := src.UserProfile(ctx, userID)
	if err != nil {
		return BodyInfo{}, err
	}
	weights, err := src.WeightRecords(ctx, userID, date)
	if err != nil {
		return BodyInfo{}, fmt.Errorf("load weight records: %w", err)
	}
	return ComputeBodyInfo(ResolveProfile(profile), LatestWeight(weights, date)), nil
}
