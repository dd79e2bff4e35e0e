package usecase

import (
	"math"
	"sort"

	"github.com/skinmatch/backend/internal/domain"
)

// BuildFeatureMatrix encodes every product as one row of
// [ingredient indicators | condition indicators | category indicators | price z-score].
//
// Each indicator group is ordered lexicographically so the same catalog always
// yields the same columns. Price is standardized with the catalog mean and the
// population standard deviation; a zero deviation is replaced by 1.
func BuildFeatureMatrix(products []domain.Product) *domain.FeatureMatrix {
	ingredients := distinctSorted(products, func(p domain.Product) []string { return p.Ingredients })
	conditions := distinctSorted(products, func(p domain.Product) []string { return p.Conditions })
	categories := distinctSorted(products, func(p domain.Product) []string { return []string{p.Category} })

	ingredientOffset := 0
	conditionOffset := ingredientOffset + len(ingredients)
	categoryOffset := conditionOffset + len(conditions)
	priceColumn := categoryOffset + len(categories)
	width := priceColumn + 1

	columns := make([]string, 0, width)
	columns = appendPrefixed(columns, domain.IngredientColumnPrefix, ingredients)
	columns = appendPrefixed(columns, domain.ConditionColumnPrefix, conditions)
	columns = appendPrefixed(columns, domain.CategoryColumnPrefix, categories)
	columns = append(columns, domain.PriceColumn)

	ingredientIndex := indexOf(ingredients)
	conditionIndex := indexOf(conditions)
	categoryIndex := indexOf(categories)

	mean, scale := priceStandardization(products)

	rows := make([][]float64, len(products))
	ids := make([]int, len(products))
	for i, p := range products {
		row := make([]float64, width)
		for _, ing := range p.Ingredients {
			row[ingredientOffset+ingredientIndex[ing]] = 1
		}
		for _, cond := range p.Conditions {
			row[conditionOffset+conditionIndex[cond]] = 1
		}
		row[categoryOffset+categoryIndex[p.Category]] = 1
		row[priceColumn] = (p.Price - mean) / scale

		rows[i] = row
		ids[i] = p.ID
	}

	return &domain.FeatureMatrix{
		Columns:    columns,
		Rows:       rows,
		ProductIDs: ids,
		PriceMean:  mean,
		PriceScale: scale,
	}
}

// priceStandardization returns the mean and population standard deviation of
// catalog prices. The deviation falls back to 1 when it is zero, which covers
// catalogs with fewer than two products.
func priceStandardization(products []domain.Product) (mean, scale float64) {
	if len(products) == 0 {
		return 0, 1
	}

	var sum float64
	for _, p := range products {
		sum += p.Price
	}
	mean = sum / float64(len(products))

	var squares float64
	for _, p := range products {
		d := p.Price - mean
		squares += d * d
	}
	scale = math.Sqrt(squares / float64(len(products)))

	if scale == 0 || math.IsNaN(scale) {
		scale = 1
	}
	return mean, scale
}

// distinctSorted collects the distinct tokens selected from every product
func distinctSorted(products []domain.Product, tokens func(domain.Product) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		for _, t := range tokens(p) {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

func indexOf(tokens []string) map[string]int {
	index := make(map[string]int, len(tokens))
	for i, t := range tokens {
		index[t] = i
	}
	return index
}

func appendPrefixed(dst []string, prefix string, tokens []string) []string {
	for _, t := range tokens {
		dst = append(dst, prefix+t)
	}
	return dst
}

// copyFeatureMatrix returns a deep copy so callers cannot mutate service state
func copyFeatureMatrix(m *domain.FeatureMatrix) *domain.FeatureMatrix {
	if m == nil {
		return nil
	}
	rows := make([][]float64, len(m.Rows))
	for i, r := range m.Rows {
		rows[i] = append([]float64(nil), r...)
	}
	return &domain.FeatureMatrix{
		Columns:    append([]string(nil), m.Columns...),
		Rows:       rows,
		ProductIDs: append([]int(nil), m.ProductIDs...),
		PriceMean:  m.PriceMean,
		PriceScale: m.PriceScale,
	}
}
