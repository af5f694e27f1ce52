package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/satswatch/walletd/config"
	"github.com/satswatch/walletd/internal/core/application"
	walletstore "github.com/satswatch/walletd/internal/infrastructure/storage/badger"
	"github.com/satswatch/walletd/pkg/keygen"
	"github.com/satswatch/walletd/pkg/stats"
	"github.com/satswatch/walletd/pkg/streamer"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "walletd"
	app.Usage = "Bitcoin wallet tracking daemon backed by a block explorer"
	app.Commands = append(
		app.Commands,
		&runCommand,
		&keygenCommand,
	)

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("exiting")
	}
}

var runCommand = cli.Command{
	Name:   "run",
	Usage:  "start the wallet tracking daemon",
	Action: runAction,
}

var keygenCommand = cli.Command{
	Name:   "keygen",
	Usage:  "generate a demo keypair and its mainnet address",
	Action: keygenAction,
}

func runAction(ctx *cli.Context) error {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	store, err := walletstore.NewWalletStore(config.GetDbDir(), nil)
	if err != nil {
		return fmt.Errorf("opening wallet store: %w", err)
	}
	defer store.Close()

	explorerSvc, err := config.GetExplorer()
	if err != nil {
		return fmt.Errorf("creating explorer client: %w", err)
	}

	streamerSvc := streamer.NewService(streamer.Opts{
		URL:                  config.GetString(config.StreamEndpointKey),
		MaxReconnectAttempts: config.GetInt(config.MaxReconnectAttemptsKey),
	})

	walletSvc := application.NewWalletService(
		store, explorerSvc, streamerSvc, application.Opts{
			RefreshInterval:  config.GetDuration(config.RefreshIntervalKey),
			TxsPerPage:       config.GetInt(config.TxsPerPageKey),
			MempoolViewLimit: config.GetInt(config.MempoolViewLimitKey),
		},
	)

	log.Debug("starting daemon")
	walletSvc.Start()
	defer walletSvc.Stop()

	statsCtx, stopStats := context.WithCancel(context.Background())
	defer stopStats()
	stats.EnableMemoryStatistics(statsCtx, time.Minute, config.GetDatadir())

	summaryTicker := time.NewTicker(config.GetDuration(config.RefreshIntervalKey))
	defer summaryTicker.Stop()
	go func() {
		for range summaryTicker.C {
			status := walletSvc.Status()
			log.Infof(
				"tracking %d wallet(s), total balance %.8f BTC, stream %s",
				status.WalletCount, status.TotalBalance, status.StreamStatus,
			)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
	return nil
}

func keygenAction(ctx *cli.Context) error {
	pair, err := keygen.New(func(stage keygen.Stage, percent int) {
		log.Debugf("%s (%d%%)", stage, percent)
	})
	if err != nil {
		return err
	}

	fmt.Println("address:    ", pair.Address)
	fmt.Println("public key: ", pair.PublicKey)
	fmt.Println("private key:", pair.PrivateKey)
	fmt.Println("wif:        ", pair.WIF)
	return nil
}
