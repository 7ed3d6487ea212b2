package environment

import "github.com/sirupsen/logrus"

// Resetter перезагружает среду, в которой открыт кошелёк (страницу в браузере),
// чтобы провайдер сбросил собственное состояние UI.
type Resetter interface {
	Reload()
}

type Broadcaster interface {
	BroadcastReload()
}

// BrowserReload asks every connected page to reload itself.
type BrowserReload struct {
	hub Broadcaster
	log logrus.FieldLogger
}

func NewBrowserReload(hub Broadcaster, log logrus.FieldLogger) *BrowserReload {
	return &BrowserReload{hub: hub, log: log}
}

func (r *BrowserReload) Reload() {
	r.log.Info("Перезагрузка страницы для сброса кошелька")
	r.hub.BroadcastReload()
}
