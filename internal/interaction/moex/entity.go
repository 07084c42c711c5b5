package moex

// MatDateLayout is the maturity date layout used by ISS.
const MatDateLayout = "2006-01-02"

// Bond describes one row of the ISS bond board snapshot. Optional ISS cells
// stay nil, they are never defaulted to zero.
type Bond struct {
	SecID         string   // ex: SU26238RMFS4
	BoardID       string   // ex: TQOB
	ShortName     string   // ex: ОФЗ 26238
	CouponPercent *float64 // percent, ex: 7.1
	MatDate       string   // ex: 2041-05-15, may be empty or 0000-00-00
	FaceValue     *float64 // ex: 1000
	FaceUnit      string   // ex: SUR
	ListLevel     *int     // ex: 1
	YTM           *float64 // effective yield when traded, percent
	DurationDays  *float64 // duration in days from marketdata_yields
}
