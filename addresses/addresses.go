package addresses

import (
	"encoding/binary"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gopartyparrot/driftmeta/config"
)

var (
	stateOnce    sync.Once
	stateAccount solana.PublicKey
)

// StateAccount returns the drift state account. Computed once, every caller
// observes the same value.
func StateAccount() solana.PublicKey {
	stateOnce.Do(func() {
		account, _, err := solana.FindProgramAddress(
			[][]byte{[]byte("drift_state")},
			config.ProgramID,
		)
		if err != nil {
			// fixed seed against a fixed program id, cannot fail
			panic(err)
		}
		stateAccount = account
	})
	return stateAccount
}

// DeriveSpotMarketAccount calculates the PDA of a drift spot market given index
func DeriveSpotMarketAccount(marketIndex uint16) (solana.PublicKey, error) {
	account, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("spot_market"), marketIndexSeed(marketIndex)},
		config.ProgramID,
	)
	return account, err
}

// DeriveSpotMarketVault calculates the PDA of a drift spot market vault given index
func DeriveSpotMarketVault(marketIndex uint16) (solana.PublicKey, error) {
	account, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("spot_market_vault"), marketIndexSeed(marketIndex)},
		config.ProgramID,
	)
	return account, err
}

// DeriveDriftSigner calculates the PDA of the drift signer
func DeriveDriftSigner() (solana.PublicKey, error) {
	account, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("drift_signer")},
		config.ProgramID,
	)
	return account, err
}

func marketIndexSeed(marketIndex uint16) []byte {
	seed := make([]byte, 2)
	binary.LittleEndian.PutUint16(seed, marketIndex)
	return seed
}
