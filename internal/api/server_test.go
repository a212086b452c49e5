package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/healthy-cli/internal/api"
	"github.com/saadjs/healthy-cli/internal/db"
	"github.com/saadjs/healthy-cli/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db     *sql.DB
	server *httptest.Server
	user   int64
	rice   int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sqldb, err := db.OpenMigrated(filepath.Join(t.TempDir(), "healthy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })

	age, height, weight := 25, 175.0, 70.0
	user, err := service.CreateUser(sqldb, service.UserInput{Username: "ann", Age: &age, Gender: "M", HeightCm: &height, InitialWeightKg: &weight})
	require.NoError(t, err)
	rice, err := service.AddFood(sqldb, service.FoodInput{Name: "rice", Category: "grains", CaloriesPer100g: 130})
	require.NoError(t, err)

	now := time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)
	srv := &api.Server{DB: sqldb, Loc: time.UTC, Now: func() time.Time { return now }}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return &fixture{db: sqldb, server: ts, user: user, rice: rice}
}

func (f *fixture) get(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := f.server.Client().Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	var body map[string]any
	assert.Equal(t, http.StatusOK, f.get(t, "/healthz", &body))
	assert.Equal(t, true, body["ok"])
}

func TestDailyCalorieEndpoint(t *testing.T) {
	f := newFixture(t)
	_, err := service.AddMealRecord(f.db, service.MealInput{
		UserID: f.user, Date: "2025-10-25", MealType: "lunch",
		Portions: []service.PortionInput{{FoodID: f.rice, Grams: 300}},
	})
	require.NoError(t, err)

	var body map[string]float64
	require.Equal(t, http.StatusOK, f.get(t, "/api/weight/daily-calorie?user_id=1", &body))
	assert.Equal(t, 390.0, body["lunch_kcal"])
	assert.Equal(t, 0.0, body["breakfast_kcal"])
	// 2008.5 - 390
	assert.Equal(t, 1618.0, body["remain_calorie"])
}

func TestErrorMapping(t *testing.T) {
	f := newFixture(t)
	var body map[string]string

	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/weight/daily-calorie?user_id=42&date=2025-10-25", &body))
	assert.Contains(t, body["error"], "not found")

	assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/weight/daily-calorie?user_id=1&date=garbage", &body))
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/weight/records?user_id=abc", &body))
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/users/9", &body))
}

func TestUserAndBodyInfo(t *testing.T) {
	f := newFixture(t)
	var user map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/users/1", &user))
	assert.Equal(t, "ann", user["username"])

	_, err := service.AddWeightRecord(f.db, service.WeightInput{UserID: f.user, Weight: 72.26, Date: "2025-10-25"})
	require.NoError(t, err)

	var info map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/weight/body-info?user_id=1", &info))
	assert.Equal(t, 72.3, info["weight"])
	assert.Equal(t, 23.6, info["bmi"])
	assert.NotNil(t, info["body_fat"])
}

func TestWeightRecordsEndpointRollingWeek(t *testing.T) {
	f := newFixture(t)
	for _, date := range []string{"2025-10-01", "2025-10-20"} {
		_, err := service.AddWeightRecord(f.db, service.WeightInput{UserID: f.user, Weight: 70, Date: date})
		require.NoError(t, err)
	}
	var days []service.WeightDay
	require.Equal(t, http.StatusOK, f.get(t, "/api/weight/records?user_id=1&mode=week", &days))
	require.Len(t, days, 1)
	assert.Equal(t, "2025-10-20", days[0].Date)
	assert.Equal(t, "10.20", days[0].Records[0].Date)
	assert.Equal(t, "--", days[0].Records[0].Time)
}

func TestMealAndWaterRecordsEndpoints(t *testing.T) {
	f := newFixture(t)
	_, err := service.AddMealRecord(f.db, service.MealInput{
		UserID: f.user, Date: "2025-10-25", MealType: "晚餐",
		Portions: []service.PortionInput{{FoodID: f.rice, Grams: 100}},
	})
	require.NoError(t, err)
	_, err = service.AddWaterRecord(f.db, service.WaterInput{UserID: f.user, Date: "2025-10-25", TimeOfDay: "08:00", AmountMl: 250})
	require.NoError(t, err)

	var today map[string][]map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/meals/records?user_id=1&mode=today", &today))
	require.Len(t, today["dinner"], 1)
	assert.Equal(t, "rice", today["dinner"][0]["name"])
	assert.Equal(t, 130.0, today["dinner"][0]["calorie"])
	assert.Empty(t, today["breakfast"])

	var days []map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/meals/records?user_id=1&mode=all", &days))
	require.Len(t, days, 1)

	var water []map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/water/records?user_id=1&mode=today", &water))
	require.Len(t, water, 1)
	assert.Equal(t, "2025-10-25", water[0]["date"])
}

func TestFoodEndpoints(t *testing.T) {
	f := newFixture(t)
	var items []map[string]any
	require.Equal(t, http.StatusOK, f.get(t, "/api/foods/search?keyword=ric", &items))
	require.Len(t, items, 1)
	assert.Equal(t, "rice", items[0]["name"])

	require.Equal(t, http.StatusOK, f.get(t, "/api/foods/search?keyword=", &items))
	assert.Empty(t, items)

	require.Equal(t, http.StatusOK, f.get(t, "/api/foods?category=grains", &items))
	assert.Len(t, items, 1)

	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/foods/search?keyword=x&limit=-2", &body))
}
