package decision

import (
	"fmt"
	"time"
)

// AdultAge is the minimum age in full years.
const AdultAge = 18

const birthDateLayout = "2006-01-02"

// ParseBirthDate parses an ISO calendar date.
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q: %w", s, err)
	}
	return t, nil
}

// AgeOn returns the number of full calendar years between birth and today.
// Only the calendar dates matter; today is read in its own location.
func AgeOn(birth, today time.Time) int {
	ty, tm, td := today.Date()
	by, bm, bd := birth.Date()
	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// IsAdult reports whether a client born on birthDate is at least AdultAge
// on today. A client whose 18th birthday is today is an adult.
func IsAdult(birthDate string, today time.Time) (bool, error) {
	birth, err := ParseBirthDate(birthDate)
	if err != nil {
		return false, err
	}
	return AgeOn(birth, today) >= AdultAge, nil
}

// EvaluateEligibility applies the eligibility rule. Both reasons are
// collected independently.
func EvaluateEligibility(hasAccount, adult bool) Outcome {
	reasons := []Reason{}
	if !hasAccount {
		reasons = append(reasons, ReasonNoAccount)
	}
	if !adult {
		reasons = append(reasons, ReasonNoAdult)
	}
	return Outcome{Eligible: len(reasons) == 0, Reasons: reasons}
}
