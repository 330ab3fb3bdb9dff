package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/efield/internal/trace"
)

var csvHeader = []string{"line", "charge", "stop", "point", "x", "y"}

// WriteLinesCSV writes one row per traced point. Lines without points still
// get no rows; their stop reasons are only visible in the summary.
func WriteLinesCSV(w io.Writer, lines []trace.Line) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, l := range lines {
		line := strconv.Itoa(i)
		charge := strconv.Itoa(l.Charge + 1)
		stop := l.Stop.String()
		for j, p := range l.Points {
			row := []string{
				line,
				charge,
				stop,
				strconv.Itoa(j),
				strconv.FormatFloat(p.X, 'f', 4, 64),
				strconv.FormatFloat(p.Y, 'f', 4, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
