package cmd

import (
	"context"
	"fmt"

	"github.com/nzoschke/healthmate/internal/app"
	"github.com/nzoschke/healthmate/internal/config"
	"github.com/spf13/cobra"
)

func PurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Bulk delete a record family",
	}

	cmd.AddCommand(purgeCmd("meals", "Delete all meal logs and their photos", func(ctx context.Context, a *app.App) (int64, error) {
		return a.MealService.DeleteAll(ctx)
	}))
	cmd.AddCommand(purgeCmd("bmi", "Delete the whole BMI history", func(ctx context.Context, a *app.App) (int64, error) {
		return a.BMIService.DeleteAll()
	}))
	cmd.AddCommand(purgeCmd("todos", "Delete completed to-dos", func(ctx context.Context, a *app.App) (int64, error) {
		return a.TodoService.PurgeCompleted()
	}))

	return cmd
}

func purgeCmd(use, short string, purge func(context.Context, *app.App) (int64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := app.New(ctx, config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			n, err := purge(ctx, a)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d %s\n", n, use)
			return nil
		},
	}
}
