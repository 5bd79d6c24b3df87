// Package domain models synoptic weather telegrams reported by settlements
// over a single day.
//
// # Telegram Format
//
// Each line of the daily telegram file is one report:
//
//	"<code> <HHMM> <wind> <temp>"  →  e.g. "BP 0300 32007 21"
//	settlement BP, 03:00, wind from 320° at force 07, 21 °C.
//
// Settlement codes are short identifiers (usually two letters) and are compared
// by exact string match.
//
// Time format:
//
//	HHMM in 24-hour notation, e.g. "1910" = 19:10.
//	Three-digit values are zero-padded: "930" → "0930".
//
// Wind group (five characters, "dddff"):
//
//	ddd  direction in degrees, or "VRB" for variable wind.
//	ff   wind force, rendered as that many '#' characters in wind reports.
//	"00000" is the calm sentinel (no wind at all).
//
// Temperature is a signed integer in degrees Celsius.
//
// # Report Hours
//
// The daily mean temperature of a settlement is computed from readings taken
// at 01, 07, 13 and 19 o'clock ([ReportHours]). Every reading at those hours
// counts with equal weight, and the mean is only meaningful when all four hours
// are present. Means are rounded half-up (10.5 → 11, -2.5 → -2).
package domain
