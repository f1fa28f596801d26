package markets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gopartyparrot/driftmeta/addresses"
	"github.com/gopartyparrot/driftmeta/config"
)

// ProgramData is the static-ish metadata of the drift program: the bundled
// market configs plus the network's market lookup table. Immutable after
// construction, safe to share across readers.
type ProgramData struct {
	spotMarkets []SpotMarket
	perpMarkets []PerpMarket
	LookupTable addresses.AddressLookupTableAccount
}

// Uninitialized returns an empty ProgramData, useful for bootstrapping. It
// answers every query with an absent result and must not be treated as
// authoritative market data.
func Uninitialized() *ProgramData {
	return &ProgramData{}
}

// NewProgramData normalizes and decodes the bundled market dumps for the
// given network. Construction is all-or-nothing: a decode failure means the
// compiled-in bundle is defective and no partial registry is returned.
func NewProgramData(network config.Network, lookupTable addresses.AddressLookupTableAccount) (*ProgramData, error) {
	var spotJSON, perpJSON string
	switch network {
	case config.NetworkMainnet:
		spotJSON = normalizeMarketJSON(mainnetSpotMarkets)
		perpJSON = normalizeMarketJSON(mainnetPerpMarkets)
	case config.NetworkDevnet:
		spotJSON = normalizeMarketJSON(devnetSpotMarkets)
		perpJSON = normalizeMarketJSON(devnetPerpMarkets)
	default:
		return nil, config.ErrUnknownNetwork
	}

	spotMarkets, err := decodeSpotMarkets(spotJSON)
	if err != nil {
		return nil, fmt.Errorf("decode %s spot markets: %w", network, err)
	}
	perpMarkets, err := decodePerpMarkets(perpJSON)
	if err != nil {
		return nil, fmt.Errorf("decode %s perp markets: %w", network, err)
	}

	return &ProgramData{
		spotMarkets: spotMarkets,
		perpMarkets: perpMarkets,
		LookupTable: lookupTable,
	}, nil
}

// SpotMarketConfigs returns the known spot markets in bundle order.
func (d *ProgramData) SpotMarketConfigs() []SpotMarket {
	return d.spotMarkets
}

// PerpMarketConfigs returns the known perp markets in bundle order.
func (d *ProgramData) PerpMarketConfigs() []PerpMarket {
	return d.perpMarkets
}

// SpotMarketConfigByIndex returns the spot market at marketIndex, or false
// when the index is unknown.
func (d *ProgramData) SpotMarketConfigByIndex(marketIndex uint16) (*SpotMarket, bool) {
	if int(marketIndex) >= len(d.spotMarkets) {
		return nil, false
	}
	return &d.spotMarkets[marketIndex], true
}

// PerpMarketConfigByIndex returns the perp market at marketIndex, or false
// when the index is unknown.
func (d *ProgramData) PerpMarketConfigByIndex(marketIndex uint16) (*PerpMarket, bool) {
	if int(marketIndex) >= len(d.perpMarkets) {
		return nil, false
	}
	return &d.perpMarkets[marketIndex], true
}

// The bundle nests every market under a single-field wrapper object.
type spotWrapper struct {
	Account SpotMarket `json:"account"`
}

type perpWrapper struct {
	Account PerpMarket `json:"account"`
}

func decodeSpotMarkets(normalized string) ([]SpotMarket, error) {
	dec := json.NewDecoder(strings.NewReader(normalized))
	dec.DisallowUnknownFields()

	var wrappers []spotWrapper
	if err := dec.Decode(&wrappers); err != nil {
		return nil, err
	}

	markets := make([]SpotMarket, 0, len(wrappers))
	for i, w := range wrappers {
		m := w.Account
		// position in the dump is the market index, the dump has no index field
		m.MarketIndex = uint16(i)
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("spot market %d: %w", i, err)
		}
		markets = append(markets, m)
	}
	return markets, nil
}

func decodePerpMarkets(normalized string) ([]PerpMarket, error) {
	dec := json.NewDecoder(strings.NewReader(normalized))
	dec.DisallowUnknownFields()

	var wrappers []perpWrapper
	if err := dec.Decode(&wrappers); err != nil {
		return nil, err
	}

	markets := make([]PerpMarket, 0, len(wrappers))
	for i, w := range wrappers {
		m := w.Account
		m.MarketIndex = uint16(i)
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("perp market %d: %w", i, err)
		}
		markets = append(markets, m)
	}
	return markets, nil
}
