// Package energy turns logged meals, exercise and weight measurements into
// the body metrics and daily calorie budget shown to a user.
package energy

import (
	"math"

	"github.com/saadjs/healthy-cli/internal/model"
)

const (
	// ActivityMultiplier scales BMR to a sedentary-to-light TDEE before
	// logged exercise is added.
	ActivityMultiplier = 1.2
	// DefaultAge is used whenever a profile carries no age.
	DefaultAge = 25
	// MaleBodyFatOffset is subtracted from the body-fat estimate for "M".
	MaleBodyFatOffset = 10.8
)

type Sex string

const (
	Male   Sex = "M"
	Female Sex = "F"
)

// Profile is a user profile with every default applied. Formulas only ever
// see a Profile, never the raw optional fields.
type Profile struct {
	Age             int
	Sex             Sex
	HeightCm        float64
	InitialWeightKg float64
}

func ResolveProfile(u model.UserProfile) Profile {
	p := Profile{Age: DefaultAge, Sex: Sex(u.Gender)}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.HeightCm != nil {
		p.HeightCm = *u.HeightCm
	}
	if u.InitialWeightKg != nil {
		p.InitialWeightKg = *u.InitialWeightKg
	}
	return p
}

// BMI returns weight over height squared, or 0 when height is not positive.
// Callers must read 0 as "unavailable".
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// BodyFat is the Deurenberg estimate rounded to 2 decimals. Only the exact
// value "M" selects the male branch.
func BodyFat(bmi float64, age int, sex Sex) float64 {
	pct := 1.2*bmi + 0.23*float64(age) - 5.4
	if sex == Male {
		pct -= MaleBodyFatOffset
	}
	return Round(pct, 2)
}

// BMR is the Mifflin-St Jeor estimate, unrounded.
func BMR(weightKg, heightCm float64, age int, sex Sex) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == Male {
		return base + 5
	}
	return base - 161
}

func (p Profile) BMR(weightKg float64) float64 {
	return BMR(weightKg, p.HeightCm, p.Age, p.Sex)
}

// BodyFat returns nil when the profile has no usable height.
func (p Profile) BodyFat(weightKg float64) *float64 {
	if p.HeightCm <= 0 {
		return nil
	}
	v := BodyFat(BMI(weightKg, p.HeightCm), p.Age, p.Sex)
	return &v
}

// Round rounds half to even, matching the rounding existing clients expect.
func Round(v float64, places int) float64 {
	if places <= 0 {
		return math.RoundToEven(v)
	}
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}

type BodyInfo struct {
	WeightKg   float64  `json:"weight"`
	HeightCm   float64  `json:"height"`
	BMR        float64  `json:"bmr"`
	BodyFatPct *float64 `json:"body_fat"`
	BMI        float64  `json:"bmi"`
}

// ComputeBodyInfo reports the display metrics for a day. latest is the
// winning weight record of that day, or nil to fall back to the initial
// weight. Body fat is taken from the stored record, never recomputed.
func ComputeBodyInfo(p Profile, latest *model.WeightRecord) BodyInfo {
	weight := p.InitialWeightKg
	var bodyFat *float64
	if latest != nil {
		weight = latest.WeightKg
		bodyFat = latest.BodyFatPct
	}
	return BodyInfo{
		WeightKg:   Round(weight, 1),
		HeightCm:   p.HeightCm,
		BMR:        Round(p.BMR(weight), 0),
		BodyFatPct: bodyFat,
		BMI:        Round(BMI(weight, p.HeightCm), 1),
	}
}

// LatestWeight picks the most recently written record dated date. Ties on
// the write time go to the higher id.
func LatestWeight(records []model.WeightRecord, date string) *model.WeightRecord {
	var best *model.WeightRecord
	for i := range records {
		r := &records[i]
		if r.Date != date {
			continue
		}
		if best == nil || r.WrittenAt.After(best.WrittenAt) ||
			(r.WrittenAt.Equal(best.WrittenAt) && r.ID > best.ID) {
			best = r
		}
	}
	return best
}
