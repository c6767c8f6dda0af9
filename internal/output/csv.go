package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/wealthpath/planner/internal/domain"
)

// CSVFormatter exports one row per simulated year in nominal dollars.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Year", "InflationFactor", "FreeCash", "AnnualIncome", "AnnualSpending", "Retired", "TaxableIncome", "NetTaxableIncome", "TaxPaid", "WithdrawalShortfall", "TotalInvestments", "NetWorth"}
	for _, id := range result.AccountIDs {
		header = append(header, "Balance_"+id)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, snap := range result.Snapshots {
		row := []string{
			strconv.Itoa(snap.Year),
			snap.InflationFactor.StringFixed(6),
			snap.FreeCash.StringFixed(2),
			snap.AnnualIncome.StringFixed(2),
			snap.AnnualSpending.StringFixed(2),
			strconv.FormatBool(snap.Retired),
			snap.TaxableIncome.StringFixed(2),
			snap.NetTaxableIncome.StringFixed(2),
			snap.TaxPaid.StringFixed(2),
			snap.WithdrawalShortfall.StringFixed(2),
			snap.TotalInvestments.StringFixed(2),
			snap.NetWorth.StringFixed(2),
		}
		for _, id := range result.AccountIDs {
			row = append(row, snap.AccountBalances[id].StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
