package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarketLookupTable(t *testing.T) {
	devnet, err := MarketLookupTable(NetworkDevnet)
	require.NoError(t, err)
	require.Equal(t, "FaMS3U4uBojvGn5FSDEPimddcXsCfwkKsFgMVVnDdxGb", devnet.String())

	mainnet, err := MarketLookupTable(NetworkMainnet)
	require.NoError(t, err)
	require.Equal(t, "D9cnvzswDikQDf53k4HpQ3KJ9y1Fv3HGGDFYMXnK5T6c", mainnet.String())
}

func TestMarketLookupTableUnknownNetwork(t *testing.T) {
	_, err := MarketLookupTable(Network("testnet"))
	require.ErrorIs(t, err, ErrUnknownNetwork)
}
