package domain

// TransportProfile identifies a travel mode and the strategy used to compute it.
type TransportProfile int

const (
	Bike TransportProfile = iota + 1
	Car
	Transit
)

// Strategy describes how travel costs for a profile are obtained.
type Strategy int

const (
	// One batched one-to-many call with coordinates.
	MatrixStrategy Strategy = iota + 1
	// One call per origin-destination pair with text addresses.
	PairwiseStrategy
)

// Profiles is the fixed set of profiles computed for every request.
var Profiles = []TransportProfile{Bike, Car, Transit}

func (p TransportProfile) Strategy() Strategy {
	switch p {
	case Bike, Car:
		return MatrixStrategy
	case Transit:
		return PairwiseStrategy
	default:
		return 0
	}
}

func (p TransportProfile) String() string {
	switch p {
	case Bike:
		return "bike"
	case Car:
		return "car"
	case Transit:
		return "transit"
	default:
		return "unknown"
	}
}
