package config

// Fixed-point scaling factors used by drift market fields.
const (
	PricePrecision       = 1_000_000
	QuotePrecision       = 1_000_000
	BasePrecision        = 1_000_000_000
	SpotBalancePrecision = 1_000_000_000
)
