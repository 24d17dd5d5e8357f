package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// writeHistory renders records as an aligned table.
func writeHistory(w io.Writer, records []domain.IntakeRecord, unit string) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no drinks logged yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tAMOUNT\tTYPE")
	for _, r := range records {
		drink := "-"
		if r.DrinkType != nil && *r.DrinkType != "" {
			drink = *r.DrinkType
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s\t%s\n", r.ID, r.Date, r.Time, formatAmount(r.Amount), unit, drink)
	}
	return tw.Flush()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
