package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"kbd/internal/curve"
	"kbd/internal/interaction/moex"
	"kbd/internal/repository/bonds"
	"kbd/internal/repository/curves"
	"kbd/internal/storage"
	"kbd/internal/usecases"
)

var (
	screenCouponMin   float64
	screenCouponMax   float64
	screenMatDateFrom string
	screenMatDateTo   string
	screenListLevels  []int
	screenFaceUnits   []string
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen stored bonds against the latest yield curve",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		curvesRepository := curves.NewRepository(postgresConnection.DB)
		bondsRepository := bonds.NewRepository(postgresConnection.DB)

		screenUC := usecases.NewScreenBondsUseCase(logger, bondsRepository, curvesRepository)

		filters, err := buildFilters(cmd)
		cobra.CheckErr(err)

		screened, err := screenUC.Screen(ctx, filters)
		cobra.CheckErr(err)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "SECID\tNAME\tMATDATE\tYTM\tCURVE\tSPREAD")
		for _, row := range screened {
			_, _ = fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Bond.SecID,
				row.Bond.ShortName,
				formatDate(row.Bond.MatDate),
				formatPercent(row.Bond.YTM),
				formatPercent(row.CurveYield),
				row.SpreadText,
			)
		}
		_ = w.Flush()
	},
}

func init() {
	screenCmd.Flags().Float64Var(&screenCouponMin, "coupon-min", 0, "minimum coupon rate, percent")
	screenCmd.Flags().Float64Var(&screenCouponMax, "coupon-max", 0, "maximum coupon rate, percent")
	screenCmd.Flags().StringVar(&screenMatDateFrom, "matdate-from", "", "earliest maturity date, YYYY-MM-DD")
	screenCmd.Flags().StringVar(&screenMatDateTo, "matdate-to", "", "latest maturity date, YYYY-MM-DD")
	screenCmd.Flags().IntSliceVar(&screenListLevels, "list-level", nil, "listing levels to include")
	screenCmd.Flags().StringSliceVar(&screenFaceUnits, "face-unit", nil, "face-value currencies to include, ex: SUR,USD")
}

func buildFilters(cmd *cobra.Command) (usecases.Filters, error) {
	filters := usecases.Filters{ListLevels: screenListLevels, FaceUnits: screenFaceUnits}

	if cmd.Flags().Changed("coupon-min") {
		filters.CouponMin = &screenCouponMin
	}
	if cmd.Flags().Changed("coupon-max") {
		filters.CouponMax = &screenCouponMax
	}

	if screenMatDateFrom != "" {
		from, err := time.Parse(moex.MatDateLayout, screenMatDateFrom)
		if err != nil {
			return filters, fmt.Errorf("parse matdate-from: %w", err)
		}
		filters.MatDateFrom = &from
	}
	if screenMatDateTo != "" {
		to, err := time.Parse(moex.MatDateLayout, screenMatDateTo)
		if err != nil {
			return filters, fmt.Errorf("parse matdate-to: %w", err)
		}
		filters.MatDateTo = &to
	}

	return filters, nil
}

func formatDate(date *time.Time) string {
	if date == nil {
		return curve.NoValue
	}
	return date.Format(moex.MatDateLayout)
}

func formatPercent(value *float64) string {
	if value == nil {
		return curve.NoValue
	}
	return fmt.Sprintf("%.2f%%", *value)
}
