package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/skinmatch/backend/internal/domain"
)

var separator = strings.Repeat("-", 50)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// printRecommendations prints ranked rows, or a placeholder for an empty result
func printRecommendations(out io.Writer, recs []domain.Recommendation) error {
	if len(recs) == 0 {
		fmt.Fprintln(out, "  (none)")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSCORE")
	for _, r := range recs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.4f\n", r.ProductID, r.Name, r.Category, r.Price, r.RelevanceScore)
	}
	return w.Flush()
}

func printProducts(out io.Writer, products []domain.Product) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tCONDITIONS\tINGREDIENTS")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
			p.ID, p.Name, p.Category, p.Price,
			strings.Join(p.Conditions, ", "),
			strings.Join(p.Ingredients, ", "))
	}
	return w.Flush()
}

// printColumns lists feature columns grouped by kind, in matrix order
func printColumns(out io.Writer, columns []string) {
	groups := []struct {
		title  string
		prefix string
	}{
		{"Ingredients", domain.IngredientColumnPrefix},
		{"Conditions", domain.ConditionColumnPrefix},
		{"Categories", domain.CategoryColumnPrefix},
	}

	for _, g := range groups {
		var names []string
		for _, c := range columns {
			if strings.HasPrefix(c, g.prefix) {
				names = append(names, strings.TrimPrefix(c, g.prefix))
			}
		}
		fmt.Fprintf(out, "%s (%d): %s\n", g.title, len(names), strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "Numeric: %s (standardized)\n", domain.PriceColumn)
}

// printFeatureRows prints the set indicators and price z-score of each row
func printFeatureRows(out io.Writer, features *domain.FeatureMatrix) error {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tPRICE Z\tFEATURES")
	last := len(features.Columns) - 1
	for i, row := range features.Rows {
		var set []string
		for j := 0; j < last; j++ {
			if row[j] != 0 {
				set = append(set, features.Columns[j])
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			features.ProductIDs[i],
			strconv.FormatFloat(row[last], 'f', 4, 64),
			strings.Join(set, " "))
	}
	return w.Flush()
}
