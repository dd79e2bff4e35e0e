// Package cli implements the skinmatch command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/skinmatch/backend/internal/domain"
	"github.com/skinmatch/backend/internal/infrastructure/catalog"
	"github.com/skinmatch/backend/internal/logging"
	"github.com/skinmatch/backend/internal/usecase"
	"github.com/spf13/cobra"
)

// Demo query run when skinmatch is invoked without a subcommand
const (
	demoCondition = "ringworm"
	demoLimit     = 3
	demoMaxPrice  = 30.0
)

type options struct {
	logLevel string
}

// NewRootCommand builds the skinmatch command tree. Every invocation runs
// against a fresh seed catalog.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "skinmatch",
		Short:        "SkinMatch recommends skincare products for a skin condition",
		SilenceUsage: true, // don't print usage on operational errors
		Long: `SkinMatch ranks catalog products tagged with a skin condition by how
similar they are to the other matching products.

Run without a subcommand to see recommendations for ringworm under $30.`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return runRecommend(cmd.Context(), cmd.OutOrStdout(), svc, &domain.RecommendRequest{
				Condition: demoCondition,
				Limit:     domain.IntPtr(demoLimit),
				MaxPrice:  domain.Float64Ptr(demoMaxPrice),
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newRecommendCommand())
	root.AddCommand(newCatalogCommand())
	root.AddCommand(newFeaturesCommand())

	return root
}

// Execute is called by main.go.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService creates a recommender over the seed catalog without result caching
func newService() (*usecase.RecommenderService, error) {
	return usecase.NewRecommenderService(catalog.NewMemoryCatalog(), nil, usecase.RecommenderConfig{})
}

// runRecommend prints the query header, outcome message and result table
func runRecommend(ctx context.Context, out io.Writer, svc *usecase.RecommenderService, req *domain.RecommendRequest) error {
	fmt.Fprintf(out, "\nGetting recommendations for: %s\n", req.Condition)
	fmt.Fprintln(out, separator)

	result, err := svc.Recommend(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Message: %s\n", result.Message)
	fmt.Fprintln(out, "\nRecommended Products:")
	return printRecommendations(out, result.Recommendations)
}
