package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"kbd/internal/interaction/moex"
	"kbd/internal/repository/curves"
	"kbd/internal/storage"
	"kbd/internal/usecases"
)

var importFromYear int

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Backfill yield curve history from the yearly ISS archives",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")
		ctx := cmd.Context()

		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		curvesRepository := curves.NewRepository(postgresConnection.DB)
		moexInteractor := moex.NewInteraction(logger, &http.Client{Timeout: 5 * time.Minute})

		updateCurveUC := usecases.NewUpdateCurveUseCase(logger, curvesRepository, moexInteractor)

		log.Info("importing curve history", "from_year", importFromYear)
		updateCurveUC.ImportHistory(ctx, importFromYear)
	},
}

func init() {
	importCmd.Flags().IntVar(&importFromYear, "from-year", usecases.FirstArchiveYear, "first archive year to import")
}
