package utils

import (
	"math"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses a yyyy-mm-dd date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// RentalDays is the number of started days between pickup and return, never less than one.
func RentalDays(pickup, dropoff time.Time) int {
	days := int(math.Ceil(dropoff.Sub(pickup).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
