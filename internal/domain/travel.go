package domain

import "github.com/shopspring/decimal"

// TravelEdge is the cost of travelling from the origin to one destination
// with one profile.
type TravelEdge struct {
	DurationMinutes    float64
	DistanceKilometers float64
}

// TravelRow carries the edges of every profile for one destination.
type TravelRow struct {
	Destination Destination
	Edges       map[TransportProfile]TravelEdge
}

// TravelMatrix holds one row per destination, in destination order.
type TravelMatrix struct {
	Rows []TravelRow
}

var (
	metersPerKilometer = decimal.NewFromInt(1000)
	secondsPerMinute   = decimal.NewFromInt(60)
)

// Round2 rounds the shortest decimal form of v to two places, half away
// from zero, so 0.145 becomes 0.15 even though its binary value is below the half.
func Round2(v float64) float64 {
	return round2(decimal.NewFromFloat(v))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// MetersToKilometers divides in decimal before rounding.
func MetersToKilometers(meters float64) float64 {
	return round2(decimal.NewFromFloat(meters).Div(metersPerKilometer))
}

func SecondsToMinutes(seconds float64) float64 {
	return round2(decimal.NewFromFloat(seconds).Div(secondsPerMinute))
}
