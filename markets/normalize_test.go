package markets

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesEmptyObject(t *testing.T) {
	require.Equal(t, `"foo"`, normalizeMarketJSON(`{"foo": {}}`))
	require.Equal(t, `"foo"`, normalizeMarketJSON(`{ "foo" : { } }`))

	// only the exact single-key empty-object shape collapses
	require.Equal(t,
		`{"outer": {"inner": 26}}`,
		normalizeMarketJSON(`{"outer": {"inner": "1a"}}`),
	)
}

func TestNormalizeHexLiterals(t *testing.T) {
	require.Equal(t, `26`, normalizeMarketJSON(`"1a"`))
	require.Equal(t, `-300`, normalizeMarketJSON(`"-12c"`))

	// odd-length positives are not a valid hex byte string and stay text;
	// the sign check lets odd-length negatives through
	require.Equal(t, `"abc"`, normalizeMarketJSON(`"abc"`))
	require.Equal(t, `-2748`, normalizeMarketJSON(`"-abc"`))

	// values beyond 128 bits fall through to the text branch
	bigHex := strings.Repeat("ff", 17)
	require.Equal(t, `"`+bigHex+`"`, normalizeMarketJSON(`"`+bigHex+`"`))
}

// Any even-length hex digit run is converted, even when it reads as text or
// as a base58 address. The bundle was produced under this precedence and
// decoding depends on it; a collision in real data is a data bug upstream,
// not something to special-case here.
func TestNormalizeHexPrecedesTextAndBase58(t *testing.T) {
	require.Equal(t, `48879`, normalizeMarketJSON(`"beef"`))

	systemProgram := strings.Repeat("1", 32)
	expected, ok := new(big.Int).SetString(systemProgram, 16)
	require.True(t, ok)
	require.Equal(t, expected.String(), normalizeMarketJSON(`"`+systemProgram+`"`))
}

func TestNormalizeBase58RoundTrip(t *testing.T) {
	const address = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	key := solana.MustPublicKeyFromBase58(address)

	out := normalizeMarketJSON(`"` + address + `"`)

	var decoded [32]byte
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, key, solana.PublicKeyFromBytes(decoded[:]))
}

func TestNormalizeCasingFixes(t *testing.T) {
	require.Equal(t,
		`"last_5min_and_24h_window"`,
		normalizeMarketJSON(`"last_5Min_and_24H_window"`),
	)

	// everything else in the literal is untouched
	require.Equal(t,
		`"Last_Oracle_Price_Twap_5min"`,
		normalizeMarketJSON(`"Last_Oracle_Price_Twap_5Min"`),
	)
}

func TestNormalizeBundledBlobsAreStrictJSON(t *testing.T) {
	for name, blob := range map[string]string{
		"mainnet spot": mainnetSpotMarkets,
		"mainnet perp": mainnetPerpMarkets,
		"devnet spot":  devnetSpotMarkets,
		"devnet perp":  devnetPerpMarkets,
	} {
		require.True(t, json.Valid([]byte(normalizeMarketJSON(blob))), name)
	}
}
