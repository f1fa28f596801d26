package addresses

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var (
	ErrLookupTableNotFound = errors.New("lookup table account not found")
	ErrNotALookupTable     = errors.New("account is not an address lookup table")
)

// lookupTableMeta is the serialized header of an address lookup table
// account. Addresses follow from byte 56 in 32-byte chunks.
type lookupTableMeta struct {
	TypeIndex                  uint32
	DeactivationSlot           uint64
	LastExtendedSlot           uint64
	LastExtendedSlotStartIndex uint8
	HasAuthority               uint8
	Authority                  [32]byte
	Padding                    uint16
}

const (
	lookupTableMetaSize  = 56
	lookupTableTypeIndex = 1
)

// AddressLookupTableAccount is the decoded content of an on-chain address
// lookup table: the table's own address plus the addresses it holds.
type AddressLookupTableAccount struct {
	Key       solana.PublicKey
	Addresses []solana.PublicKey
}

// FetchLookupTableAccount loads and decodes the lookup table at key.
func FetchLookupTableAccount(
	ctx context.Context,
	clientRPC *rpc.Client,
	key solana.PublicKey,
) (AddressLookupTableAccount, error) {
	res, err := clientRPC.GetAccountInfo(ctx, key)
	if err != nil {
		return AddressLookupTableAccount{}, fmt.Errorf("get lookup table account: %w", err)
	}
	if res == nil || res.Value == nil {
		return AddressLookupTableAccount{}, ErrLookupTableNotFound
	}
	addresses, err := decodeLookupTable(res.Value.Data.GetBinary())
	if err != nil {
		return AddressLookupTableAccount{}, err
	}
	return AddressLookupTableAccount{
		Key:       key,
		Addresses: addresses,
	}, nil
}

func decodeLookupTable(data []byte) ([]solana.PublicKey, error) {
	if len(data) < lookupTableMetaSize {
		return nil, ErrNotALookupTable
	}

	var meta lookupTableMeta
	err := bin.NewBinDecoder(data[:lookupTableMetaSize]).Decode(&meta)
	if err != nil {
		return nil, fmt.Errorf("decode lookup table meta: %w", err)
	}
	if meta.TypeIndex != lookupTableTypeIndex {
		return nil, ErrNotALookupTable
	}

	raw := data[lookupTableMetaSize:]
	if len(raw)%solana.PublicKeyLength != 0 {
		return nil, ErrNotALookupTable
	}

	addresses := make([]solana.PublicKey, 0, len(raw)/solana.PublicKeyLength)
	for off := 0; off < len(raw); off += solana.PublicKeyLength {
		addresses = append(addresses, solana.PublicKeyFromBytes(raw[off:off+solana.PublicKeyLength]))
	}
	return addresses, nil
}
