// Package pricing computes reservation totals from nightly rates.
package pricing

import (
	"errors"
	"math"
	"time"
)

// TaxRate applied on top of the room subtotal.
const TaxRate = 0.16

var ErrInvalidStay = errors.New("check-out must be after check-in")

type Quote struct {
	PricePerNight float64 `json:"price_per_night"`
	Nights        int     `json:"nights"`
	Subtotal      float64 `json:"subtotal"`
	Taxes         float64 `json:"taxes"`
	Total         float64 `json:"total"`
}

// Nights counts whole nights between check-in and check-out dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// ForStay prices a stay at a flat nightly rate.
func ForStay(pricePerNight float64, checkIn, checkOut time.Time) (*Quote, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, ErrInvalidStay
	}
	subtotal := pricePerNight * float64(nights)
	taxes := subtotal * TaxRate
	return &Quote{
		PricePerNight: round2(pricePerNight),
		Nights:        nights,
		Subtotal:      round2(subtotal),
		Taxes:         round2(taxes),
		Total:         round2(subtotal + taxes),
	}, nil
}

// ForNightlyRates prices a stay where each night may carry its own rate,
// e.g. availability rows with price overrides.
func ForNightlyRates(rates []float64) (*Quote, error) {
	if len(rates) == 0 {
		return nil, ErrInvalidStay
	}
	var subtotal float64
	for _, r := range rates {
		subtotal += r
	}
	taxes := subtotal * TaxRate
	return &Quote{
		PricePerNight: round2(subtotal / float64(len(rates))),
		Nights:        len(rates),
		Subtotal:      round2(subtotal),
		Taxes:         round2(taxes),
		Total:         round2(subtotal + taxes),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
