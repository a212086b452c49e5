package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saadjs/healthy-cli/internal/model"
	"github.com/saadjs/healthy-cli/internal/provider/openfoodfacts"
)

const (
	FoodSourceManual        = "manual"
	FoodSourceOpenFoodFacts = "openfoodfacts"
)

type FoodInput struct {
	Name            string
	Category        string
	CaloriesPer100g float64
	CarbsPer100g    float64
	ProteinPer100g  float64
	FatPer100g      float64
	Source          string
	SourceRef       string
}

// FoodProvider looks foods up in an external product database.
type FoodProvider interface {
	LookupBarcode(ctx context.Context, barcode string) (openfoodfacts.Product, error)
	Search(ctx context.Context, query string, limit int) ([]openfoodfacts.Product, error)
}

const foodColumns = `id, name, category, calories_per_100g, carbs_per_100g, protein_per_100g, fat_per_100g, source, source_ref`

func AddFood(db *sql.DB, in FoodInput) (int64, error) {
	in, err := normalizeFoodInput(in)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO foods(name, category, calories_per_100g, carbs_per_100g, protein_per_100g, fat_per_100g, source, source_ref)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Category, in.CaloriesPer100g, in.CarbsPer100g, in.ProteinPer100g, in.FatPer100g, in.Source, in.SourceRef)
	if err != nil {
		return 0, fmt.Errorf("add food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve food id: %w", err)
	}
	return id, nil
}

func GetFood(db *sql.DB, id int64) (model.FoodReference, error) {
	return getFood(db, id)
}

func getFood(q queryer, id int64) (model.FoodReference, error) {
	f, err := scanFood(q.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.FoodReference{}, notFoundf("food %d", id)
	}
	if err != nil {
		return model.FoodReference{}, fmt.Errorf("get food %d: %w", id, err)
	}
	return f, nil
}

// SearchFoods matches keyword as a substring of the food name. A blank
// keyword yields an empty list.
func SearchFoods(db *sql.DB, keyword string, limit int) ([]model.FoodReference, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []model.FoodReference{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return listFoods(db, `SELECT `+foodColumns+` FROM foods WHERE name LIKE ? ESCAPE '\' ORDER BY name ASC, id ASC LIMIT ?`,
		"%"+escapeLike(keyword)+"%", limit)
}

// ListFoodsByCategory lists the foods of one category. A blank category
// yields an empty list.
func ListFoodsByCategory(db *sql.DB, category string) ([]model.FoodReference, error) {
	category = normalizeName(category)
	if category == "" {
		return []model.FoodReference{}, nil
	}
	return listFoods(db, `SELECT `+foodColumns+` FROM foods WHERE category = ? ORDER BY name ASC, id ASC`, category)
}

// ImportFoods fetches foods from p by barcode, or by search query when
// barcode is blank, and upserts them keyed on their product code.
func ImportFoods(ctx context.Context, db *sql.DB, p FoodProvider, barcode, query string, limit int) ([]model.FoodReference, error) {
	var products []openfoodfacts.Product
	switch {
	case strings.TrimSpace(barcode) != "":
		item, err := p.LookupBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		products = []openfoodfacts.Product{item}
	case strings.TrimSpace(query) != "":
		items, err := p.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		products = items
	default:
		return nil, invalidf("either a barcode or a search query is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import tx: %w", err)
	}
	out := make([]model.FoodReference, 0, len(products))
	for _, item := range products {
		food, err := upsertImportedFood(tx, item)
		if err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		out = append(out, food)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return out, nil
}

func upsertImportedFood(tx *sql.Tx, item openfoodfacts.Product) (model.FoodReference, error) {
	name := item.Name
	if item.Brand != "" {
		name = fmt.Sprintf("%s (%s)", item.Name, item.Brand)
	}
	in, err := normalizeFoodInput(FoodInput{
		Name:            name,
		Category:        item.Category,
		CaloriesPer100g: item.KcalPer100g,
		CarbsPer100g:    item.CarbsPer100g,
		ProteinPer100g:  item.ProteinPer100g,
		FatPer100g:      item.FatPer100g,
		Source:          FoodSourceOpenFoodFacts,
		SourceRef:       item.Code,
	})
	if err != nil {
		return model.FoodReference{}, err
	}

	var id int64
	err = tx.QueryRow(`SELECT id FROM foods WHERE source = ? AND source_ref = ? AND source_ref <> ''`, in.Source, in.SourceRef).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.Exec(`
INSERT INTO foods(name, category, calories_per_100g, carbs_per_100g, protein_per_100g, fat_per_100g, source, source_ref)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Category, in.CaloriesPer100g, in.CarbsPer100g, in.ProteinPer100g, in.FatPer100g, in.Source, in.SourceRef)
		if err != nil {
			return model.FoodReference{}, fmt.Errorf("insert imported food %q: %w", in.SourceRef, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return model.FoodReference{}, fmt.Errorf("resolve food id: %w", err)
		}
	case err != nil:
		return model.FoodReference{}, fmt.Errorf("lookup imported food %q: %w", in.SourceRef, err)
	default:
		if _, err := tx.Exec(`
UPDATE foods SET name = ?, category = ?, calories_per_100g = ?, carbs_per_100g = ?, protein_per_100g = ?, fat_per_100g = ?
WHERE id = ?
`, in.Name, in.Category, in.CaloriesPer100g, in.CarbsPer100g, in.ProteinPer100g, in.FatPer100g, id); err != nil {
			return model.FoodReference{}, fmt.Errorf("update imported food %d: %w", id, err)
		}
	}
	return getFood(tx, id)
}

func normalizeFoodInput(in FoodInput) (FoodInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return FoodInput{}, invalidf("food name is required")
	}
	in.Category = normalizeName(in.Category)
	if err := validateNonNegativeFloat("calories per 100g", in.CaloriesPer100g); err != nil {
		return FoodInput{}, err
	}
	if err := validateNonNegativeFloat("carbs per 100g", in.CarbsPer100g); err != nil {
		return FoodInput{}, err
	}
	if err := validateNonNegativeFloat("protein per 100g", in.ProteinPer100g); err != nil {
		return FoodInput{}, err
	}
	if err := validateNonNegativeFloat("fat per 100g", in.FatPer100g); err != nil {
		return FoodInput{}, err
	}
	in.Source = normalizeName(in.Source)
	if in.Source == "" {
		in.Source = FoodSourceManual
	}
	in.SourceRef = strings.TrimSpace(in.SourceRef)
	return in, nil
}

func listFoods(q queryer, query string, args ...any) ([]model.FoodReference, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()
	items := make([]model.FoodReference, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(r rowScanner) (model.FoodReference, error) {
	var f model.FoodReference
	err := r.Scan(&f.ID, &f.Name, &f.Category, &f.CaloriesPer100g, &f.CarbsPer100g, &f.ProteinPer100g, &f.FatPer100g, &f.Source, &f.SourceRef)
	return f, err
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
