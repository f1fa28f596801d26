package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-co-op/gocron"
	"github.com/gopartyparrot/driftmeta/addresses"
	"github.com/gopartyparrot/driftmeta/config"
	"github.com/gopartyparrot/driftmeta/markets"
	"github.com/gopartyparrot/driftmeta/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CliArgs struct {
	RPCUrl      string `arg:"required,env" help:"rpc url"`
	Network     string `arg:"env,--network" help:"devnet or mainnet-beta" default:"mainnet-beta"`
	MarketIndex uint16 `arg:"--marketIndex" help:"spot market index to derive accounts for" default:"0"`
	StorePath   string `arg:"env" help:"store lookup table snapshots" default:"./logs/lookup_tables.json"`
	Interval    string `arg:"--interval" help:"re-fetch the lookup table on this interval (s, m, h)"`
}

func run() error {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("loading environment: %w", err)
		}
	}

	var args CliArgs
	arg.MustParse(&args)

	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	defer logger.Sync()
	logger.Info("using RPC",
		zap.String("http", args.RPCUrl),
	)

	network := config.Network(args.Network)
	tableKey, err := config.MarketLookupTable(network)
	if err != nil {
		logger.Fatal("select lookup table", zap.String("network", args.Network), zap.Error(err))
		return err
	}

	clientRPC := rpc.New(args.RPCUrl)

	snapshots, err := store.OpenSnapshotStore(args.StorePath)
	if err != nil {
		logger.Fatal("open snapshot store", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lookupTable, err := addresses.FetchLookupTableAccount(ctx, clientRPC, tableKey)
	if err != nil {
		logger.Fatal("fetch lookup table", zap.Error(err))
		return err
	}

	programData, err := markets.NewProgramData(network, lookupTable)
	if err != nil {
		// the bundle is compiled in, a decode failure is a build defect
		logger.Fatal("load market metadata", zap.Error(err))
		return err
	}

	logger.Info("market metadata loaded",
		zap.String("network", args.Network),
		zap.Int("spotMarkets", len(programData.SpotMarketConfigs())),
		zap.Int("perpMarkets", len(programData.PerpMarketConfigs())),
		zap.Int("lookupTableAddresses", len(lookupTable.Addresses)),
	)

	for _, m := range programData.SpotMarketConfigs() {
		symbol, err := m.Symbol()
		if err != nil {
			logger.Fatal("market name", zap.Uint16("marketIndex", m.MarketIndex), zap.Error(err))
			return err
		}
		logger.Info("spot market",
			zap.Uint16("marketIndex", m.MarketIndex),
			zap.String("symbol", symbol),
			zap.String("mint", m.Mint.String()),
		)
	}
	for _, m := range programData.PerpMarketConfigs() {
		symbol, err := m.Symbol()
		if err != nil {
			logger.Fatal("market name", zap.Uint16("marketIndex", m.MarketIndex), zap.Error(err))
			return err
		}
		logger.Info("perp market",
			zap.Uint16("marketIndex", m.MarketIndex),
			zap.String("symbol", symbol),
			zap.String("oracle", m.Amm.Oracle.String()),
		)
	}

	spotMarket, err := addresses.DeriveSpotMarketAccount(args.MarketIndex)
	if err != nil {
		return err
	}
	spotVault, err := addresses.DeriveSpotMarketVault(args.MarketIndex)
	if err != nil {
		return err
	}
	driftSigner, err := addresses.DeriveDriftSigner()
	if err != nil {
		return err
	}
	logger.Info("derived accounts",
		zap.Uint16("marketIndex", args.MarketIndex),
		zap.String("state", addresses.StateAccount().String()),
		zap.String("spotMarket", spotMarket.String()),
		zap.String("spotMarketVault", spotVault.String()),
		zap.String("driftSigner", driftSigner.String()),
	)

	recordSnapshot := func(table addresses.AddressLookupTableAccount) {
		date := time.Now().UTC().Format(time.UnixDate)
		key := fmt.Sprintf("%s_%s", args.Network, date)
		if err := snapshots.Record(key, network, table, date); err != nil {
			logger.Warn("record snapshot", zap.Error(err))
		}
	}
	recordSnapshot(lookupTable)

	if args.Interval == "" {
		return nil
	}

	// lookup table contents live on chain and can grow, poll them; the
	// bundled market metadata itself is fixed at build time
	s := gocron.NewScheduler(time.UTC)
	s.Every(args.Interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		table, err := addresses.FetchLookupTableAccount(ctx, clientRPC, tableKey)
		if err != nil {
			logger.Warn("refresh lookup table", zap.Error(err))
			return
		}
		logger.Info("lookup table refreshed",
			zap.String("key", table.Key.String()),
			zap.Int("addresses", len(table.Addresses)),
		)
		recordSnapshot(table)
	})
	s.StartBlocking()

	return nil
}

func main() {
	err := run()
	if err != nil {
		log.Fatalln("run error %w", err)
	}
}
