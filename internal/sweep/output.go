package sweep

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVHeader is the header row written by WriteCSV.
var CSVHeader = []string{
	"needle_length", "line_distance", "short_needle", "runs", "undefined",
	"mean", "stddev", "mean_abs_error", "within_tolerance",
}

// WriteCSV writes one row per cell.
func WriteCSV(w io.Writer, results []CellResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			formatFloat(r.NeedleLength),
			formatFloat(r.LineDistance),
			strconv.FormatBool(r.ShortNeedle),
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.Undefined),
			formatFloat(r.Mean),
			formatFloat(r.StdDev),
			formatFloat(r.MeanAbsError),
			formatFloat(r.WithinTol),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
