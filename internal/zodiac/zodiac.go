// Package zodiac derives the zodiac sign and age from a birth date.
package zodiac

import (
	"fmt"
	"strings"
	"time"

	"github.com/KarinTingtingYang/Zodiac-Aura-Portrait-Generator/internal/domain"
)

// BirthDateLayout is the format produced by HTML date inputs
const BirthDateLayout = "2006-01-02"

type monthDay struct {
	month time.Month
	day   int
}

type signRange struct {
	sign       domain.ZodiacSign
	start, end monthDay
}

// Both ends inclusive. Capricorn wraps the year boundary.
var signRanges = []signRange{
	{domain.Aquarius, monthDay{time.January, 20}, monthDay{time.February, 18}},
	{domain.Pisces, monthDay{time.February, 19}, monthDay{time.March, 20}},
	{domain.Aries, monthDay{time.March, 21}, monthDay{time.April, 19}},
	{domain.Taurus, monthDay{time.April, 20}, monthDay{time.May, 20}},
	{domain.Gemini, monthDay{time.May, 21}, monthDay{time.June, 20}},
	{domain.Cancer, monthDay{time.June, 21}, monthDay{time.July, 22}},
	{domain.Leo, monthDay{time.July, 23}, monthDay{time.August, 22}},
	{domain.Virgo, monthDay{time.August, 23}, monthDay{time.September, 22}},
	{domain.Libra, monthDay{time.September, 23}, monthDay{time.October, 22}},
	{domain.Scorpio, monthDay{time.October, 23}, monthDay{time.November, 21}},
	{domain.Sagittarius, monthDay{time.November, 22}, monthDay{time.December, 21}},
	{domain.Capricorn, monthDay{time.December, 22}, monthDay{time.January, 19}},
}

func (r signRange) contains(month time.Month, day int) bool {
	if month == r.start.month && day >= r.start.day {
		return true
	}
	return month == r.end.month && day <= r.end.day
}

// SignFor returns the zodiac sign of a birth date
func SignFor(birth time.Time) domain.ZodiacSign {
	return SignForMonthDay(birth.Month(), birth.Day())
}

// SignForMonthDay returns the sign whose range contains month/day,
// or domain.UnknownZodiac when no range does.
func SignForMonthDay(month time.Month, day int) domain.ZodiacSign {
	if day < 1 || day > 31 {
		return domain.UnknownZodiac
	}
	for _, r := range signRanges {
		if r.contains(month, day) {
			return r.sign
		}
	}
	return domain.UnknownZodiac
}

// Age returns completed years between birth and today. The birthday itself counts as reached.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// IsFuture reports whether birth falls after the calendar date of now in now's own location
func IsFuture(birth, now time.Time) bool {
	y, m, d := now.Date()
	return birth.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseBirthDate parses a YYYY-MM-DD date. Times, offsets and impossible dates are rejected.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("birth date is empty")
	}
	t, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q: %w", s, err)
	}
	return t, nil
}
