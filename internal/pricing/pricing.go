// Package pricing computes the total price of a stay.
package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyStay    = errors.New("check-out must be after check-in")
	ErrNegativeRate = errors.New("rate per night must not be negative")
)

// Nights returns the number of whole calendar days between checkIn and checkOut.
// Both are expected to be dates (midnight UTC).
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// Price returns ratePerNight x nights, rounded to cents.
func Price(ratePerNight decimal.Decimal, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	if ratePerNight.IsNegative() {
		return decimal.Zero, ErrNegativeRate
	}

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return decimal.Zero, ErrEmptyStay
	}

	return ratePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(2), nil
}
