package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CalmWindCode is the telegram wind group for calm air.
const CalmWindCode = "00000"

// Report is a single weather telegram for one settlement.
type Report struct {
	Settlement  string     `json:"settlement"`
	Time        ReportTime `json:"time"`
	Temperature int        `json:"temperature"`
	WindCode    string     `json:"wind_code"`
}

// IsSettlement reports whether the report belongs to the given settlement code.
func (r Report) IsSettlement(code string) bool {
	return r.Settlement == code
}

// IsCalm reports whether the wind group is CalmWindCode.
func (r Report) IsCalm() bool {
	return r.WindCode == CalmWindCode
}

// IsReportHour reports whether the report was taken at one of ReportHours.
func (r Report) IsReportHour() bool {
	return r.Time.IsReportHour()
}

// WindDirection returns the three-character direction part of the wind group,
// either degrees ("320") or "VRB" for variable wind.
func (r Report) WindDirection() string {
	if len(r.WindCode) < 3 {
		return ""
	}
	return r.WindCode[:3]
}

// WindForce returns the last two digits of the wind group. Malformed groups
// yield 0.
func (r Report) WindForce() int {
	if len(r.WindCode) != len(CalmWindCode) {
		return 0
	}
	force, err := strconv.Atoi(r.WindCode[3:])
	if err != nil || force < 0 {
		return 0
	}
	return force
}

// SettlementWithTime renders "<code> <HH:MM>".
func (r Report) SettlementWithTime() string {
	return r.Settlement + " " + r.Time.String()
}

// WindForceByTime renders "<HH:MM> " followed by one '#' per unit of wind force.
func (r Report) WindForceByTime() string {
	return r.Time.String() + " " + strings.Repeat("#", r.WindForce())
}

// String renders settlement, time and temperature, e.g. "BP 03:00 21 fok".
func (r Report) String() string {
	return fmt.Sprintf("%s %s %d fok", r.Settlement, r.Time, r.Temperature)
}
