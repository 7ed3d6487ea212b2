package main

import (
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/pkg/cache"
	"wallet_transfer_back/pkg/config"
	"wallet_transfer_back/pkg/environment"
	"wallet_transfer_back/pkg/ethprovider"
	"wallet_transfer_back/pkg/exporter"
	"wallet_transfer_back/pkg/handler"
	"wallet_transfer_back/pkg/hub"
	"wallet_transfer_back/pkg/quote"
	"wallet_transfer_back/pkg/service"
	"wallet_transfer_back/pkg/status"
	"wallet_transfer_back/pkg/transfer"
)

func defaultDependencyInject(cfg *config.Config, log *logrus.Logger) *handler.Handler {
	exporter.Init()

	messenger := status.NewMessenger()
	feed := hub.NewHub(messenger.Current, log.WithField("component", "hub"))
	messenger.Subscribe(feed.OnStatus)

	provider := ethprovider.NewProvider(cfg.RPCURL, cfg.ReadPrivateKey, ethprovider.DialRPC, log.WithField("component", "ethprovider"))

	deps := service.Deps{
		Provider:    provider,
		Messenger:   messenger,
		Environment: environment.NewBrowserReload(feed, log.WithField("component", "environment")),
		Log:         log,
		Messages: transfer.Messages{
			Success:       cfg.Messages.Success,
			Failure:       cfg.Messages.Failure,
			InvalidFields: cfg.Messages.InvalidFields,
		},
		Disconnected: cfg.Messages.Disconnected,
		Coin:         cfg.QuoteCoin,
		Fiat:         cfg.QuoteFiat,
	}
	if cfg.QuoteEnabled {
		rates := cache.NewRateCache(cfg.QuoteTTL, log.WithField("component", "cache"))
		deps.Quote = quote.NewQuoter(cfg.QuoteURL, cfg.QuoteAPIKey, rates, log.WithField("component", "quote"))
	}

	return handler.NewHandler(service.NewService(deps), feed.ServeWS, cfg.AllowOrigin, log.WithField("component", "http"))
}
