package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/payplan/backend/internal/models"
	"github.com/payplan/backend/internal/planner"
	"github.com/payplan/backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPreviewCommand() *cobra.Command {
	var user, amount string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show how an amount would be allocated with the current rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("parsing user: %w", err)
			}

			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			return withPlanner(cmd, func(ctx context.Context, s *planner.Service) (any, error) {
				return s.Preview(ctx, userID, value)
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "ID of the user (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&amount, "amount", "", "amount of the hypothetical income (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newForecastCommand() *cobra.Command {
	var user string
	var months int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show income and allocations per month, starting with the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("parsing user: %w", err)
			}

			return withPlanner(cmd, func(ctx context.Context, s *planner.Service) (any, error) {
				return s.MonthlyForecast(ctx, userID, months)
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "ID of the user (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().IntVar(&months, "months", planner.DefaultForecastMonths, fmt.Sprintf("number of months, at most %d", planner.MaxForecastMonths))

	return cmd
}

func newRunCommand() *cobra.Command {
	var user, plan string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute and store the allocations of an income plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("parsing user: %w", err)
			}

			planID, err := uuid.Parse(plan)
			if err != nil {
				return fmt.Errorf("parsing plan: %w", err)
			}

			return withPlanner(cmd, func(ctx context.Context, s *planner.Service) (any, error) {
				return s.RunAllocations(ctx, userID, planID)
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "ID of the user (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&plan, "plan", "", "ID of the income plan (required)")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

// withPlanner connects to the database, calls fn with a planner service
// and prints its result as JSON.
//
// Logs are written to stderr so that the output can be piped.
func withPlanner(cmd *cobra.Command, fn func(context.Context, *planner.Service) (any, error)) error {
	setupLogging(cmd.ErrOrStderr())

	disconnect, err := connect()
	if err != nil {
		return err
	}
	defer disconnect()

	result, err := fn(cmd.Context(), planner.New(store.NewGorm(models.DB), nil))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
