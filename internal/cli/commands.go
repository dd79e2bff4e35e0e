package cli

import (
	"fmt"
	"strings"

	"github.com/skinmatch/backend/internal/domain"
	"github.com/spf13/cobra"
)

func newRecommendCommand() *cobra.Command {
	var (
		limit    int
		maxPrice float64
	)

	cmd := &cobra.Command{
		Use:   "recommend <condition>",
		Short: "Recommend products for a skin condition",
		Example: `  skinmatch recommend acne
  skinmatch recommend "fungal infection" --limit 2 --max-price 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			req := &domain.RecommendRequest{
				// multi-word conditions may be passed unquoted
				Condition: strings.Join(args, " "),
				Limit:     domain.IntPtr(limit),
			}
			if cmd.Flags().Changed("max-price") {
				req.MaxPrice = domain.Float64Ptr(maxPrice)
			}

			return runRecommend(cmd.Context(), cmd.OutOrStdout(), svc, req)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", domain.DefaultRecommendationLimit, "Maximum number of products to return")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Only include products at or below this price")

	return cmd
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			products, err := svc.Products(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog (%d products):\n\n", len(products))
			return printProducts(out, products)
		},
	}
}

func newFeaturesCommand() *cobra.Command {
	var showRows bool

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show the feature matrix derived from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			features := svc.Features()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Feature matrix: %d rows x %d columns\n", len(features.Rows), len(features.Columns))
			fmt.Fprintf(out, "Price mean: %.4f  scale: %.4f\n\n", features.PriceMean, features.PriceScale)
			printColumns(out, features.Columns)

			if showRows {
				fmt.Fprintln(out)
				return printFeatureRows(out, features)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showRows, "rows", false, "Also print the encoded row of every product")

	return cmd
}
