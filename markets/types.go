package markets

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrInvalidMarketName  = errors.New("market name is not valid utf-8")
	ErrMissingMarketField = errors.New("market record missing required field")
)

// ByteAddress is an account address in the raw 32-byte array form the
// normalizer emits into the market bundle.
type ByteAddress [32]byte

func (a ByteAddress) PublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(a[:])
}

func (a ByteAddress) String() string {
	return a.PublicKey().String()
}

// HistoricalOracleData mirrors the oracle price history block shared by spot
// and perp markets.
type HistoricalOracleData struct {
	LastOraclePrice         *big.Int `json:"last_oracle_price"`
	LastOracleConf          *big.Int `json:"last_oracle_conf"`
	LastOraclePriceTwap     *big.Int `json:"last_oracle_price_twap"`
	LastOraclePriceTwap5Min *big.Int `json:"last_oracle_price_twap_5min"`
	LastOraclePriceTwapTs   int64    `json:"last_oracle_price_twap_ts"`
}

// SpotMarket is the config of one drift spot market. MarketIndex is not part
// of the bundle; it is the record's position in the decoded sequence.
type SpotMarket struct {
	Pubkey                    ByteAddress          `json:"pubkey"`
	Oracle                    ByteAddress          `json:"oracle"`
	Mint                      ByteAddress          `json:"mint"`
	Vault                     ByteAddress          `json:"vault"`
	Name                      [32]byte             `json:"name"`
	HistoricalOracleData      HistoricalOracleData `json:"historical_oracle_data"`
	DepositBalance            *big.Int             `json:"deposit_balance"`
	BorrowBalance             *big.Int             `json:"borrow_balance"`
	CumulativeDepositInterest *big.Int             `json:"cumulative_deposit_interest"`
	CumulativeBorrowInterest  *big.Int             `json:"cumulative_borrow_interest"`
	Decimals                  uint32               `json:"decimals"`
	OracleSource              string               `json:"oracle_source"`
	Status                    string               `json:"status"`
	AssetTier                 string               `json:"asset_tier"`
	MarketIndex               uint16               `json:"-"`
}

func (m *SpotMarket) MarketType() string {
	return "spot"
}

// Symbol returns the market name trimmed of trailing padding.
func (m *SpotMarket) Symbol() (string, error) {
	return symbolFromName(m.Name)
}

// AMM is the perp market's virtual AMM state.
type AMM struct {
	Oracle               ByteAddress          `json:"oracle"`
	HistoricalOracleData HistoricalOracleData `json:"historical_oracle_data"`
	BaseAssetReserve     *big.Int             `json:"base_asset_reserve"`
	QuoteAssetReserve    *big.Int             `json:"quote_asset_reserve"`
	SqrtK                *big.Int             `json:"sqrt_k"`
	PegMultiplier        *big.Int             `json:"peg_multiplier"`
	Volume24H            *big.Int             `json:"volume_24h"`
	LastFundingRate      *big.Int             `json:"last_funding_rate"`
	FundingPeriod        int64                `json:"funding_period"`
	OracleSource         string               `json:"oracle_source"`
}

// PerpMarket is the config of one drift perp market. MarketIndex is not part
// of the bundle; it is the record's position in the decoded sequence.
type PerpMarket struct {
	Pubkey       ByteAddress `json:"pubkey"`
	Amm          AMM         `json:"amm"`
	Name         [32]byte    `json:"name"`
	ExpiryPrice  int64       `json:"expiry_price"`
	Status       string      `json:"status"`
	ContractType string      `json:"contract_type"`
	ContractTier string      `json:"contract_tier"`
	MarketIndex  uint16      `json:"-"`
}

func (m *PerpMarket) MarketType() string {
	return "perp"
}

// Symbol returns the market name trimmed of trailing padding.
func (m *PerpMarket) Symbol() (string, error) {
	return symbolFromName(m.Name)
}

func symbolFromName(name [32]byte) (string, error) {
	if !utf8.Valid(name[:]) {
		return "", ErrInvalidMarketName
	}
	return strings.TrimRightFunc(string(name[:]), unicode.IsSpace), nil
}

// The bundle schema has no optional fields; a record decoding to zero values
// means the dump dropped a field, which is a bundle defect, not data.

func (h *HistoricalOracleData) validate() error {
	switch {
	case h.LastOraclePrice == nil:
		return fmt.Errorf("%w: last_oracle_price", ErrMissingMarketField)
	case h.LastOracleConf == nil:
		return fmt.Errorf("%w: last_oracle_conf", ErrMissingMarketField)
	case h.LastOraclePriceTwap == nil:
		return fmt.Errorf("%w: last_oracle_price_twap", ErrMissingMarketField)
	case h.LastOraclePriceTwap5Min == nil:
		return fmt.Errorf("%w: last_oracle_price_twap_5min", ErrMissingMarketField)
	}
	return nil
}

func (m *SpotMarket) validate() error {
	if _, err := m.Symbol(); err != nil {
		return err
	}
	switch {
	case m.Name == ([32]byte{}):
		return fmt.Errorf("%w: name", ErrMissingMarketField)
	case m.Pubkey == (ByteAddress{}):
		return fmt.Errorf("%w: pubkey", ErrMissingMarketField)
	case m.Oracle == (ByteAddress{}):
		return fmt.Errorf("%w: oracle", ErrMissingMarketField)
	case m.Mint == (ByteAddress{}):
		return fmt.Errorf("%w: mint", ErrMissingMarketField)
	case m.Vault == (ByteAddress{}):
		return fmt.Errorf("%w: vault", ErrMissingMarketField)
	case m.DepositBalance == nil:
		return fmt.Errorf("%w: deposit_balance", ErrMissingMarketField)
	case m.BorrowBalance == nil:
		return fmt.Errorf("%w: borrow_balance", ErrMissingMarketField)
	case m.CumulativeDepositInterest == nil:
		return fmt.Errorf("%w: cumulative_deposit_interest", ErrMissingMarketField)
	case m.CumulativeBorrowInterest == nil:
		return fmt.Errorf("%w: cumulative_borrow_interest", ErrMissingMarketField)
	case m.OracleSource == "":
		return fmt.Errorf("%w: oracle_source", ErrMissingMarketField)
	case m.Status == "":
		return fmt.Errorf("%w: status", ErrMissingMarketField)
	case m.AssetTier == "":
		return fmt.Errorf("%w: asset_tier", ErrMissingMarketField)
	}
	return m.HistoricalOracleData.validate()
}

func (m *PerpMarket) validate() error {
	if _, err := m.Symbol(); err != nil {
		return err
	}
	switch {
	case m.Name == ([32]byte{}):
		return fmt.Errorf("%w: name", ErrMissingMarketField)
	case m.Pubkey == (ByteAddress{}):
		return fmt.Errorf("%w: pubkey", ErrMissingMarketField)
	case m.Status == "":
		return fmt.Errorf("%w: status", ErrMissingMarketField)
	case m.ContractType == "":
		return fmt.Errorf("%w: contract_type", ErrMissingMarketField)
	case m.ContractTier == "":
		return fmt.Errorf("%w: contract_tier", ErrMissingMarketField)
	case m.Amm.Oracle == (ByteAddress{}):
		return fmt.Errorf("%w: amm.oracle", ErrMissingMarketField)
	case m.Amm.BaseAssetReserve == nil:
		return fmt.Errorf("%w: amm.base_asset_reserve", ErrMissingMarketField)
	case m.Amm.QuoteAssetReserve == nil:
		return fmt.Errorf("%w: amm.quote_asset_reserve", ErrMissingMarketField)
	case m.Amm.SqrtK == nil:
		return fmt.Errorf("%w: amm.sqrt_k", ErrMissingMarketField)
	case m.Amm.PegMultiplier == nil:
		return fmt.Errorf("%w: amm.peg_multiplier", ErrMissingMarketField)
	case m.Amm.Volume24H == nil:
		return fmt.Errorf("%w: amm.volume_24h", ErrMissingMarketField)
	case m.Amm.LastFundingRate == nil:
		return fmt.Errorf("%w: amm.last_funding_rate", ErrMissingMarketField)
	case m.Amm.OracleSource == "":
		return fmt.Errorf("%w: amm.oracle_source", ErrMissingMarketField)
	}
	return m.Amm.HistoricalOracleData.validate()
}
