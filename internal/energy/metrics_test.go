package energy_test

import (
	"testing"
	"time"

	"github.com/saadjs/healthy-cli/internal/energy"
	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestBMI(t *testing.T) {
	assert.InDelta(t, 70/(1.75*1.75), energy.BMI(70, 175), 1e-9)
	assert.Equal(t, 22.9, energy.Round(energy.BMI(70, 175), 1))
	assert.Equal(t, 0.0, energy.BMI(70, 0))
	assert.Equal(t, 0.0, energy.BMI(70, -180))
}

func TestBMR(t *testing.T) {
	assert.Equal(t, 1673.75, energy.BMR(70, 175, 25, energy.Male))
	assert.Equal(t, 1674.0, energy.Round(energy.BMR(70, 175, 25, energy.Male), 0))
	assert.Equal(t, 1507.75, energy.BMR(70, 175, 25, energy.Female))
	assert.Equal(t, 1507.75, energy.BMR(70, 175, 25, ""))

	// linear in weight and height
	assert.Equal(t, 10.0, energy.BMR(71, 175, 25, energy.Male)-energy.BMR(70, 175, 25, energy.Male))
	assert.Equal(t, 6.25, energy.BMR(70, 176, 25, energy.Female)-energy.BMR(70, 175, 25, energy.Female))
}

func TestBodyFat(t *testing.T) {
	// 1.2*22.86 + 0.23*30 - 5.4 = 28.932
	assert.Equal(t, 28.93, energy.BodyFat(22.86, 30, energy.Female))
	assert.Equal(t, 18.13, energy.BodyFat(22.86, 30, energy.Male))
	assert.Equal(t, 28.93, energy.BodyFat(22.86, 30, "m"), "only uppercase M selects the male branch")
}

func TestResolveProfileDefaults(t *testing.T) {
	p := energy.ResolveProfile(model.UserProfile{ID: 1})
	assert.Equal(t, energy.DefaultAge, p.Age)
	assert.Equal(t, 0.0, p.HeightCm)
	assert.Equal(t, 0.0, p.InitialWeightKg)
	assert.Nil(t, p.BodyFat(80))

	p = energy.ResolveProfile(model.UserProfile{ID: 1, Age: intPtr(40), Gender: "M", HeightCm: floatPtr(180), InitialWeightKg: floatPtr(90)})
	assert.Equal(t, 40, p.Age)
	assert.Equal(t, energy.Male, p.Sex)
	bf := p.BodyFat(81)
	if assert.NotNil(t, bf) {
		assert.Equal(t, energy.BodyFat(25, 40, energy.Male), *bf)
	}
}

func TestComputeBodyInfo(t *testing.T) {
	p := energy.Profile{Age: 30, Sex: energy.Female, HeightCm: 160, InitialWeightKg: 60.04}

	info := energy.ComputeBodyInfo(p, nil)
	assert.Equal(t, 60.0, info.WeightKg)
	assert.Equal(t, 23.5, info.BMI)
	assert.Equal(t, energy.Round(energy.BMR(60.04, 160, 30, energy.Female), 0), info.BMR)
	assert.Nil(t, info.BodyFatPct)

	info = energy.ComputeBodyInfo(p, &model.WeightRecord{WeightKg: 58, BodyFatPct: floatPtr(27.1)})
	assert.Equal(t, 58.0, info.WeightKg)
	if assert.NotNil(t, info.BodyFatPct) {
		assert.Equal(t, 27.1, *info.BodyFatPct)
	}
}

func TestLatestWeightPrefersLatestWrite(t *testing.T) {
	base := time.Date(2025, 10, 25, 8, 0, 0, 0, time.UTC)
	records := []model.WeightRecord{
		{ID: 1, Date: "2025-10-25", WeightKg: 70, WrittenAt: base},
		{ID: 5, Date: "2025-10-25", WeightKg: 71, WrittenAt: base.Add(time.Hour)},
		{ID: 3, Date: "2025-10-25", WeightKg: 72, WrittenAt: base.Add(time.Hour)},
		{ID: 9, Date: "2025-10-26", WeightKg: 73, WrittenAt: base.Add(48 * time.Hour)},
	}
	got := energy.LatestWeight(records, "2025-10-25")
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(5), got.ID)
	}
	assert.Nil(t, energy.LatestWeight(records, "2025-10-20"))
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2025-10-25", " 2025-10-25 ", "2025-10-25T13:00:00Z", "2025-10-25 07:30:00", "2025/10/25"} {
		got, err := energy.ParseDate(in)
		assert.NoError(t, err, in)
		assert.Equal(t, "2025-10-25", got, in)
	}
	_, err := energy.ParseDate("25th of October")
	assert.ErrorIs(t, err, energy.ErrInvalidInput)
}
