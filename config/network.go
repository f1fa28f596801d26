package config

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var ErrUnknownNetwork = errors.New("no market lookup table for network")

// Network selects which bundled market metadata and which on-chain lookup
// table the client uses. Chosen once at startup.
type Network string

const (
	NetworkDevnet  Network = "devnet"
	NetworkMainnet Network = "mainnet-beta"
)

var (
	// ProgramID is the drift v2 program.
	ProgramID = solana.MustPublicKeyFromBase58("dRiftyHA39MWEi3m9aunc5MzRF1JYuBsbn6VPcn33UH")

	// TokenProgramID is the SPL token program.
	TokenProgramID = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

var marketLookupTables = map[Network]solana.PublicKey{
	NetworkDevnet:  solana.MustPublicKeyFromBase58("FaMS3U4uBojvGn5FSDEPimddcXsCfwkKsFgMVVnDdxGb"),
	NetworkMainnet: solana.MustPublicKeyFromBase58("D9cnvzswDikQDf53k4HpQ3KJ9y1Fv3HGGDFYMXnK5T6c"),
}

// MarketLookupTable returns the address of the market lookup table for the
// given network. Every known network has a mapping; an unknown value is an
// error, never a silent default.
func MarketLookupTable(network Network) (solana.PublicKey, error) {
	table, ok := marketLookupTables[network]
	if !ok {
		return solana.PublicKey{}, ErrUnknownNetwork
	}
	return table, nil
}
