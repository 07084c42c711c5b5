package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"kbd/internal/interaction/moex"
	"kbd/internal/repository/bonds"
	"kbd/internal/repository/curves"
	"kbd/internal/scheduler"
	"kbd/internal/storage"
	"kbd/internal/usecases"
)

var serveCmd = &cobra.Command{
	Use: "serve",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")
		ctx := cmd.Context()

		// Initialize database connection
		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		// Initialize repositories
		curvesRepository := curves.NewRepository(postgresConnection.DB)
		bondsRepository := bonds.NewRepository(postgresConnection.DB)

		// Initialize HTTP client
		moexClient := &http.Client{Timeout: time.Minute}

		// Initialize interactions
		moexInteractor := moex.NewInteraction(logger, moexClient)

		// Initialize usecases
		updateCurveUC := usecases.NewUpdateCurveUseCase(logger, curvesRepository, moexInteractor)
		updateBondsUC := usecases.NewUpdateBondsUseCase(logger, bondsRepository, moexInteractor)

		// Initialize scheduler
		loc := time.FixedZone("Europe/Moscow", 3*3600)
		sched := scheduler.New(ctx, loc)

		sched.Add(cnf.Schedule.Curve, func(ctx context.Context) {
			log.Info("running curve update")
			updateCurveUC.UpdateCurve(ctx)
		})

		sched.Add(cnf.Schedule.Bonds, func(ctx context.Context) {
			log.Info("running bonds update")
			updateBondsUC.UpdateBonds(ctx)
		})

		log.Info("starting scheduler")
		sched.Start()
	},
}
