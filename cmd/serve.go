package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	walletback "wallet_transfer_back"
	"wallet_transfer_back/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the HTTP and websocket server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.Infoln("Запуск сервера")

		cfg, err := config.Load(configPath)
		if err != nil {
			logrus.Errorf("Ошибка при инициализации конфига: %s", err)
			return err
		}
		logrus.SetLevel(cfg.LogLevel)
		logrus.Infoln("Конфиг инициализирован")

		h := defaultDependencyInject(cfg, logrus.StandardLogger())

		srv := new(walletback.Server)
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run(cfg.Port, h.InitRoute())
		}()
		logrus.WithField("port", cfg.Port).Info("Сервер запущен")

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if err != nil {
				logrus.Errorf("Ошибка при запуске сервера: %s", err)
			}
			return err
		case s := <-stop:
			logrus.Infof("Got signal '%v', stopping", s)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
