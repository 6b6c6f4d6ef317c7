package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instruments mirroring the global stats accumulators.
var (
	metricBets = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_bets_total",
		Help: "Number of wagers placed, by game.",
	}, []string{"game"})

	metricWagered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_wagered_total",
		Help: "Total amount wagered.",
	})

	metricWon = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_won_total",
		Help: "Total winnings paid out.",
	})

	metricJackpot = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casino_jackpot_pool",
		Help: "Current jackpot pool.",
	})
)

func observeWager(game string, stake, payout float64) {
	metricBets.WithLabelValues(game).Inc()
	metricWagered.Add(stake)
	if payout > 0 {
		metricWon.Add(payout)
	}
}

// SetJackpotGauge mirrors the pool into the jackpot gauge.
func SetJackpotGauge(pool float64) {
	metricJackpot.Set(pool)
}
