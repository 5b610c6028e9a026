package variant

import (
	"fmt"
	"strconv"
)

// Gregorian calendar arithmetic on a day count where day 0 is 0001-01-01.

const (
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461

	// MinYear and MaxYear bound the supported calendar.
	MinYear = 1
	MaxYear = 9999

	// MaxDays is the day count of 9999-12-31.
	MaxDays = 3652058
)

var daysBeforeMonth = [2][13]int32{
	{0, 0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334},
	{0, 0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335},
}

var monthLengths = [2][13]int{
	{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// Weekday is a day of the week.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// String returns the name of the weekday.
func (d Weekday) String() string {
	if d >= Monday && d <= Sunday {
		return weekdayNames[d]
	}
	return "Unknown"
}

func leapIndex(year int) int {
	if IsLeapYear(year) {
		return 1
	}
	return 0
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return monthLengths[leapIndex(year)][month]
}

// CheckDate validates a calendar date.
func CheckDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return &RangeError{Component: "year", Value: int64(year), Min: MinYear, Max: MaxYear}
	}
	if month < 1 || month > 12 {
		return &RangeError{Component: "month", Value: int64(month), Min: 1, Max: 12}
	}
	if n := DaysInMonth(year, month); day < 1 || day > n {
		return &RangeError{Component: "day", Value: int64(day), Min: 1, Max: int64(n)}
	}
	return nil
}

// DaysFromDate converts a calendar date to its day count.
func DaysFromDate(year, month, day int) (int32, error) {
	if err := CheckDate(year, month, day); err != nil {
		return 0, err
	}
	return daysFrom(year, month, day), nil
}

func daysFrom(year, month, day int) int32 {
	y := year - 1
	n400, y := y/400, y%400
	n100, y := y/100, y%100
	n4, n1 := y/4, y%4
	days := n400*daysPer400Years + n100*daysPer100Years + n4*daysPer4Years + n1*365
	return int32(days) + daysBeforeMonth[leapIndex(year)][month] + int32(day-1)
}

// DateFromDays converts a day count back to a calendar date.
func DateFromDays(days int32) (year, month, day int, err error) {
	if days < 0 || days > MaxDays {
		return 0, 0, 0, &RangeError{Component: "days", Value: int64(days), Min: 0, Max: MaxDays}
	}
	year, month, day = dateFrom(days)
	return year, month, day, nil
}

func dateFrom(days int32) (year, month, day int) {
	d := int(days)
	n400, d := d/daysPer400Years, d%daysPer400Years
	n100, d := d/daysPer100Years, d%daysPer100Years
	if n100 == 4 {
		// last day of a 400-year block
		n100, d = 3, d+daysPer100Years
	}
	n4, d := d/daysPer4Years, d%daysPer4Years
	n1, d := d/365, d%365
	if n1 == 4 {
		n1, d = 3, d+365
	}
	year = n400*400 + n100*100 + n4*4 + n1 + 1
	table := &daysBeforeMonth[leapIndex(year)]
	month = 12
	for month > 1 && int32(d) < table[month] {
		month--
	}
	day = d - int(table[month]) + 1
	return year, month, day
}

// DayOfWeekOf returns the weekday of a calendar date using Zeller's
// congruence.
func DayOfWeekOf(year, month, day int) Weekday {
	m, y := month, year
	if m < 3 {
		m += 12
		y--
	}
	k, j := y%100, y/100
	h := (day + 13*(m+1)/5 + k + k/4 + j/4 + 5*j) % 7
	// h: 0=Saturday, 1=Sunday, 2=Monday, ...
	return Weekday((h+5)%7 + 1)
}

// DayOfYearOf returns the 1-based ordinal of a date within its year.
func DayOfYearOf(year, month, day int) int {
	return int(daysBeforeMonth[leapIndex(year)][month]) + day
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ParseDate parses YYYY-MM-DD or YYYYMMDD.
func ParseDate(s string) (year, month, day int, err error) {
	var ys, ms, ds string
	switch len(s) {
	case 10:
		if s[4] != '-' || s[7] != '-' {
			return 0, 0, 0, &FormatError{What: "date", Input: s, Reason: "expected YYYY-MM-DD or YYYYMMDD"}
		}
		ys, ms, ds = s[0:4], s[5:7], s[8:10]
	case 8:
		ys, ms, ds = s[0:4], s[4:6], s[6:8]
	default:
		return 0, 0, 0, &FormatError{What: "date", Input: s, Reason: "expected YYYY-MM-DD or YYYYMMDD"}
	}
	if year, err = parseDigits("date", "year", ys, s); err != nil {
		return 0, 0, 0, err
	}
	if month, err = parseDigits("date", "month", ms, s); err != nil {
		return 0, 0, 0, err
	}
	if day, err = parseDigits("date", "day", ds, s); err != nil {
		return 0, 0, 0, err
	}
	if err := CheckDate(year, month, day); err != nil {
		return 0, 0, 0, err
	}
	return year, month, day, nil
}

// parseDigits parses an unsigned decimal field, rejecting signs and spaces
// that strconv would otherwise accept.
func parseDigits(what, field, sub, input string) (int, error) {
	if sub == "" {
		return 0, &FormatError{What: what, Substring: sub, Input: input, Reason: "empty " + field}
	}
	for i := 0; i < len(sub); i++ {
		if sub[i] < '0' || sub[i] > '9' {
			return 0, &FormatError{What: what, Substring: sub, Input: input, Reason: "non-numeric " + field}
		}
	}
	n, err := strconv.Atoi(sub)
	if err != nil {
		return 0, &FormatError{What: what, Substring: sub, Input: input, Reason: "invalid " + field}
	}
	return n, nil
}
