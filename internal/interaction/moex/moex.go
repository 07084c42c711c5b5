package moex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"kbd/internal/curve"
)

const (
	// curveTableURL is the market-data page with the current G-curve table.
	curveTableURL = "https://www.moex.com/ru/marketdata/indices/state/g-curve/"
	// archiveURLTemplate points at the yearly ZCYC history archives on ISS.
	archiveURLTemplate = "https://iss.moex.com/iss/downloads/engines/stock/zcyc/zcyc_%d.csv.zip"
	// bondsURL is the ISS bond board snapshot, securities and yields blocks only.
	bondsURL = "https://iss.moex.com/iss/engines/stock/markets/bonds/securities.json?iss.meta=off&iss.only=securities,marketdata_yields"
)

type Interaction struct {
	logger *slog.Logger
	client *http.Client
}

// NewInteraction creates a new instance of Interaction with MOEX.
func NewInteraction(logger *slog.Logger, client *http.Client) *Interaction {
	return &Interaction{
		logger: logger.With("component", "moex"),
		client: client,
	}
}

// GetYieldCurve returns the zero-coupon yield curve records published on the
// G-curve market-data page.
func (that *Interaction) GetYieldCurve(ctx context.Context) ([]curve.Record, error) {
	body, err := that.get(ctx, curveTableURL)
	if err != nil {
		return nil, err
	}

	return ParseYieldCurveTable(string(body))
}

// GetYieldCurveArchive returns the curve records of one yearly ZCYC archive.
func (that *Interaction) GetYieldCurveArchive(ctx context.Context, year int) ([]curve.Record, error) {
	body, err := that.get(ctx, fmt.Sprintf(archiveURLTemplate, year))
	if err != nil {
		return nil, err
	}

	return ParseArchive(body)
}

// GetBonds returns the current bond board snapshot.
func (that *Interaction) GetBonds(ctx context.Context) ([]Bond, error) {
	body, err := that.get(ctx, bondsURL)
	if err != nil {
		return nil, err
	}

	return ParseBonds(body)
}

func (that *Interaction) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
