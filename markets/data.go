package markets

import (
	_ "embed"
)

// Market metadata dumped from the on-chain program, bundled at build time.
// The dumps are read-only and carry the malformations normalizeMarketJSON
// handles; they are never reloaded at runtime.

//go:embed data/mainnet_spot_markets.json
var mainnetSpotMarkets string

//go:embed data/mainnet_perp_markets.json
var mainnetPerpMarkets string

//go:embed data/devnet_spot_markets.json
var devnetSpotMarkets string

//go:embed data/devnet_perp_markets.json
var devnetPerpMarkets string
