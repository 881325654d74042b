package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/predict"
	"placementhub/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDatabase(true); err != nil {
				return err
			}
			logger.L.Info("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var students int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo accounts and a synthetic student cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDatabase(true); err != nil {
				return err
			}
			sum, err := seed.Run(db.DB, students, time.Now())
			if errors.Is(err, seed.ErrAlreadySeeded) {
				logger.L.Info("demo data already present, nothing to do")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d students, %d placements (password %q)\n",
				sum.Users, sum.Students, sum.Placements, seed.DemoPassword)
			return nil
		},
	}
	cmd.Flags().IntVar(&students, "students", 200, "synthetic students to add to the demo college")
	return cmd
}

func trainCmd() *cobra.Command {
	var (
		collegeID uint
		opts      predict.Options
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the placement predictor for a college, or the sample model",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			closeCache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			var rows []predict.Row
			if collegeID == predict.SampleModelID {
				rows = predict.SampleDataset(predict.SampleSize, 42)
			} else {
				if err := openDatabase(false); err != nil {
					return err
				}
				var students []models.Student
				if err := db.DB.Where("college_id = ?", collegeID).Find(&students).Error; err != nil {
					return err
				}
				rows = predict.RowsFromStudents(students)
			}
			m, err := predict.Train(rows, opts)
			if err != nil {
				return err
			}
			if err := predict.Save(ctx, cache.Default, collegeID, m); err != nil {
				return err
			}
			logger.L.Info("model trained",
				zap.Uint("college_id", collegeID),
				zap.Int("rows", len(rows)),
				zap.Float64("train_accuracy", m.TrainAccuracy),
				zap.Float64("test_accuracy", m.TestAccuracy))
			fmt.Fprintf(cmd.OutOrStdout(), "train accuracy %.3f, test accuracy %.3f\n", m.TrainAccuracy, m.TestAccuracy)
			return nil
		},
	}
	cmd.Flags().UintVar(&collegeID, "college", 0, "college id to train for (0 trains the sample model)")
	cmd.Flags().Float64Var(&opts.TestSize, "test-size", 0.2, "held-out share of rows")
	cmd.Flags().IntVar(&opts.Epochs, "epochs", 1000, "gradient descent epochs")
	cmd.Flags().Float64Var(&opts.LearningRate, "learning-rate", 0.1, "gradient descent step size")
	return cmd
}
