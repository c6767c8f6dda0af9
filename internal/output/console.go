package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/internal/domain"
	"github.com/wealthpath/planner/pkg/money"
)

// ConsoleFormatter renders the year-by-year table. By default values are
// deflated to year-zero dollars so a multi-decade run stays comparable;
// Nominal switches to raw nominal dollars.
type ConsoleFormatter struct {
	Nominal bool
}

func (c ConsoleFormatter) Name() string {
	if c.Nominal {
		return "console-nominal"
	}
	return "console"
}

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	headers := []string{"Age", "Net Worth", "Free Cash", "Investments", "Income", "Spending", "Tax"}
	headers = append(headers, accountHeaders(result.AccountIDs)...)

	rows := make([][]string, 0, len(result.Snapshots))
	for _, snap := range result.Snapshots {
		display := func(amount decimal.Decimal) string {
			if !c.Nominal {
				amount = money.DeflateToYearZero(amount, snap.InflationFactor)
			}
			return money.FormatCurrency(amount)
		}
		row := []string{
			fmt.Sprintf("%d", snap.Year),
			display(snap.NetWorth),
			display(snap.FreeCash),
			display(snap.TotalInvestments),
			display(snap.AnnualIncome),
			display(snap.AnnualSpending),
			display(snap.TaxPaid),
		}
		for _, id := range result.AccountIDs {
			row = append(row, display(snap.AccountBalances[id]))
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	writeTable(&buf, headers, rows)
	return buf.Bytes(), nil
}

func accountHeaders(ids []string) []string {
	headers := make([]string, 0, len(ids))
	for _, id := range ids {
		headers = append(headers, strings.ToUpper(id[:1])+id[1:])
	}
	return headers
}

// writeTable renders a pipe-delimited table with aligned columns.
func writeTable(buf *bytes.Buffer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			fmt.Fprintf(buf, "| %-*s ", widths[i], cell)
		}
		buf.WriteString("|\n")
	}
	writeRow(headers)
	for i := range headers {
		fmt.Fprintf(buf, "|%s", strings.Repeat("-", widths[i]+2))
	}
	buf.WriteString("|\n")
	for _, row := range rows {
		writeRow(row)
	}
}
