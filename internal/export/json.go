package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/trace"
)

type LineData struct {
	Charge int          `json:"charge"`
	Stop   string       `json:"stop"`
	Points [][2]float64 `json:"points"`
	Arrows [][3]float64 `json:"arrows,omitempty"`
}

// ExportData is a traced frame: the counts of what was traced and every line.
type ExportData struct {
	Method      string         `json:"method"`
	Charges     int            `json:"charges"`
	Dielectrics int            `json:"dielectrics"`
	Shields     int            `json:"shields"`
	Lines       []LineData     `json:"lines"`
	Stops       map[string]int `json:"stops"`
	Points      int            `json:"points"`
}

// NewExportData collects lines traced on snap. Charge numbers are 1-based;
// arrows are [x, y, angle].
func NewExportData(snap scene.Snapshot, lines []trace.Line, method trace.Method) ExportData {
	stats := trace.Summarize(lines)
	data := ExportData{
		Method:      string(method),
		Charges:     len(snap.Charges),
		Dielectrics: len(snap.Dielectrics),
		Shields:     len(snap.Shields),
		Lines:       make([]LineData, len(lines)),
		Stops:       make(map[string]int, len(stats.ByStop)),
		Points:      stats.Points,
	}
	for r, n := range stats.ByStop {
		data.Stops[r.String()] = n
	}
	for i, l := range lines {
		ld := LineData{
			Charge: l.Charge + 1,
			Stop:   l.Stop.String(),
			Points: make([][2]float64, len(l.Points)),
		}
		for j, p := range l.Points {
			ld.Points[j] = [2]float64{p.X, p.Y}
		}
		for _, a := range l.Arrows {
			ld.Arrows = append(ld.Arrows, [3]float64{a.Pos.X, a.Pos.Y, a.Angle})
		}
		data.Lines[i] = ld
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
