package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// windCodeRe matches a wind group: three direction digits or "VRB", then two
// force digits.
var windCodeRe = regexp.MustCompile(`^(\d{3}|VRB)\d{2}$`)

// ParseError describes a telegram line that could not be turned into a Report.
type ParseError struct {
	Line    int
	Field   string
	Value   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
}

// ParseTelegram parses one "<code> <HHMM> <wind> <temp>" line,
// e.g. "BP 0300 32007 21".
func ParseTelegram(line string) (Report, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Report{}, &ParseError{Field: "telegram", Value: line, Message: "expected 4 fields"}
	}

	t, err := ParseHHMM(fields[1])
	if err != nil {
		return Report{}, &ParseError{Field: "time", Value: fields[1], Message: err.Error()}
	}

	wind := fields[2]
	if !windCodeRe.MatchString(wind) {
		return Report{}, &ParseError{Field: "wind", Value: wind, Message: "expected dddff or VRBff"}
	}

	temp, err := strconv.Atoi(fields[3])
	if err != nil {
		return Report{}, &ParseError{Field: "temperature", Value: fields[3], Message: "not an integer"}
	}

	return Report{
		Settlement:  fields[0],
		Time:        t,
		Temperature: temp,
		WindCode:    wind,
	}, nil
}

// FormatTelegram renders a report back into its telegram line.
func FormatTelegram(r Report) string {
	return fmt.Sprintf("%s %s %s %d", r.Settlement, r.Time.HHMM(), r.WindCode, r.Temperature)
}
