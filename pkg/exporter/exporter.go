package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	METRIC_CONNECT_COUNT  = "connect_count"
	METRIC_TRANSFER_COUNT = "transfer_count"
	METRIC_REJECT_COUNT   = "reject_count"
	METRIC_PROVIDER_ERROR = "provider_error_count"
)

var (
	counters = map[string]*prometheus.CounterVec{
		METRIC_CONNECT_COUNT: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Subsystem: "session",
			Name:      METRIC_CONNECT_COUNT,
			Help:      "Counts wallet connection attempts by result",
		}, []string{"result"}),
		METRIC_TRANSFER_COUNT: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Subsystem: "transfer",
			Name:      METRIC_TRANSFER_COUNT,
			Help:      "Counts submitted transfers by result",
		}, []string{"result"}),
		METRIC_REJECT_COUNT: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Subsystem: "transfer",
			Name:      METRIC_REJECT_COUNT,
			Help:      "Counts submissions rejected before reaching the provider",
		}, []string{"reason"}),
		METRIC_PROVIDER_ERROR: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet",
			Subsystem: "provider",
			Name:      METRIC_PROVIDER_ERROR,
			Help:      "Counts failed provider calls by operation",
		}, []string{"op"}),
	}

	registerOnce sync.Once
)

// Init регистрирует метрики в реестре по умолчанию
func Init() {
	registerOnce.Do(func() {
		for _, c := range counters {
			prometheus.MustRegister(c)
		}
	})
}

func GetCounter(name string) *prometheus.CounterVec {
	return counters[name]
}

func IncConnect(result string) {
	counters[METRIC_CONNECT_COUNT].WithLabelValues(result).Inc()
}

func IncTransfer(result string) {
	counters[METRIC_TRANSFER_COUNT].WithLabelValues(result).Inc()
}

func IncReject(reason string) {
	counters[METRIC_REJECT_COUNT].WithLabelValues(reason).Inc()
}

func IncProviderError(op string) {
	counters[METRIC_PROVIDER_ERROR].WithLabelValues(op).Inc()
}
