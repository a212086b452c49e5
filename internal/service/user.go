package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saadjs/healthy-cli/internal/model"
)

type UserInput struct {
	Username        string
	Age             *int
	Gender          string
	HeightCm        *float64
	InitialWeightKg *float64
	TargetWeightKg  *float64
}

func CreateUser(db *sql.DB, in UserInput) (int64, error) {
	normalized, err := normalizeUserInput(in)
	if err != nil {
		return 0, err
	}
	if normalized.Username == "" {
		return 0, invalidf("username is required")
	}
	var taken int
	err = db.QueryRow(`SELECT 1 FROM users WHERE username = ?`, normalized.Username).Scan(&taken)
	if err == nil {
		return 0, invalidf("username %q already exists", normalized.Username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("check username %q: %w", normalized.Username, err)
	}
	res, err := db.Exec(`
INSERT INTO users(username, age, gender, height_cm, initial_weight_kg, target_weight_kg)
VALUES(?, ?, ?, ?, ?, ?)
`, normalized.Username, normalized.Age, nullableString(normalized.Gender), normalized.HeightCm, normalized.InitialWeightKg, normalized.TargetWeightKg)
	if err != nil {
		return 0, fmt.Errorf("add user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve user id: %w", err)
	}
	return id, nil
}

// UpdateUser overwrites the profile fields of a user. Nil fields are left
// unchanged; a blank username keeps the current one.
func UpdateUser(db *sql.DB, id int64, in UserInput) error {
	if err := requireUser(db, id); err != nil {
		return err
	}
	normalized, err := normalizeUserInput(in)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
UPDATE users SET
  username = COALESCE(?, username),
  age = COALESCE(?, age),
  gender = COALESCE(?, gender),
  height_cm = COALESCE(?, height_cm),
  initial_weight_kg = COALESCE(?, initial_weight_kg),
  target_weight_kg = COALESCE(?, target_weight_kg)
WHERE id = ?
`, nullableString(normalized.Username), normalized.Age, nullableString(normalized.Gender), normalized.HeightCm, normalized.InitialWeightKg, normalized.TargetWeightKg, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return invalidf("username %q already exists", normalized.Username)
		}
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

func GetUser(db *sql.DB, id int64) (model.UserProfile, error) {
	return getUser(db, id)
}

func getUser(q queryer, id int64) (model.UserProfile, error) {
	if err := validateID("user id", id); err != nil {
		return model.UserProfile{}, err
	}
	var u model.UserProfile
	var age sql.NullInt64
	var gender sql.NullString
	var height, initial, target sql.NullFloat64
	var createdRaw string
	err := q.QueryRow(`
SELECT id, username, age, gender, height_cm, initial_weight_kg, target_weight_kg, created_at
FROM users WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &age, &gender, &height, &initial, &target, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, notFoundf("user %d", id)
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("get user %d: %w", id, err)
	}
	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	u.Gender = gender.String
	u.HeightCm = floatOrNil(height)
	u.InitialWeightKg = floatOrNil(initial)
	u.TargetWeightKg = floatOrNil(target)
	u.CreatedAt = parseStoredTime(createdRaw)
	return u, nil
}

func normalizeUserInput(in UserInput) (UserInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Gender = normalizeGender(in.Gender)
	if in.Age != nil && *in.Age < 0 {
		return UserInput{}, invalidf("age must be >= 0")
	}
	for name, v := range map[string]*float64{
		"height":         in.HeightCm,
		"initial weight": in.InitialWeightKg,
		"target weight":  in.TargetWeightKg,
	} {
		if v != nil {
			if err := validateNonNegativeFloat(name, *v); err != nil {
				return UserInput{}, err
			}
		}
	}
	return in, nil
}

// normalizeGender folds the common spellings onto M and F. Other values are
// kept as typed and fall into the non-male formulas.
func normalizeGender(value string) string {
	switch normalizeName(value) {
	case "m", "male", "man":
		return "M"
	case "f", "female", "woman":
		return "F"
	default:
		return strings.TrimSpace(value)
	}
}

func floatOrNil(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}
