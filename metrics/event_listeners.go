package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trustdns/anchord/evt"
	"github.com/trustdns/anchord/log"
)

// registerEventListeners registers all metric handlers by the event bus
func registerEventListeners() {
	registerAnchorEventListeners()
}

func registerAnchorEventListeners() {
	positiveGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "anchord_positive_anchors",
		Help: "Number of positive trust anchor keys in the store",
	})

	negativeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "anchord_negative_anchors",
		Help: "Number of negative trust anchor names in the store",
	})

	skippedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "anchord_skipped_lines_total",
		Help: "Number of anchor file lines that could not be parsed",
	})

	RegisterMetric(positiveGauge)
	RegisterMetric(negativeGauge)
	RegisterMetric(skippedCounter)

	subscribe(evt.AnchorStoreLoaded, func(positives, negatives, skipped int) {
		positiveGauge.Set(float64(positives))
		negativeGauge.Set(float64(negatives))
	})

	subscribe(evt.AnchorLineSkipped, func(path, reason string) {
		skippedCounter.Inc()
	})
}

func subscribe(topic string, fn interface{}) {
	if err := evt.Bus().Subscribe(topic, fn); err != nil {
		log.Log().Fatalf("could not register event listener for topic '%s': %v", topic, err)
	}
}
