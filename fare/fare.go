// Package fare derives ticket prices from travel distance and a coach
// type's base price via a fixed band table.
package fare

import "math"

type band struct {
	maxKm      float64
	multiplier float64
}

// Band table applied in ascending order. The jump from the 120km band to
// the per-km regime is discontinuous; the published tariff works that way.
var bands = []band{
	{maxKm: 40, multiplier: 1},
	{maxKm: 50, multiplier: 1.075},
	{maxKm: 60, multiplier: 1.2},
	{maxKm: 80, multiplier: 1.4},
	{maxKm: 100, multiplier: 2.675},
	{maxKm: 120, multiplier: 3.075},
}

// Per-km tariff beyond the last band, rounded to the nearest 1000
// currency units.
const (
	perKmRate     = 605
	longHaulRound = 1000
)

// PriceFor maps a travel distance and a coach type's base price to a
// ticket price in integer currency units.
func PriceFor(distanceKm float64, basePrice int) int {
	if distanceKm <= 0 {
		return 0
	}
	for _, b := range bands {
		if distanceKm <= b.maxKm {
			return int(math.Round(float64(basePrice) * b.multiplier))
		}
	}
	return int(math.Round((float64(basePrice)+distanceKm*perKmRate)/longHaulRound)) * longHaulRound
}
