package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	ShopPurchases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_purchases_total",
			Help: "Shop purchase attempts by outcome",
		},
		[]string{"outcome"},
	)
	ShopEquips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_equips_total",
			Help: "Shop equip attempts by outcome",
		},
		[]string{"outcome"},
	)
	StudyGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_generations_total",
			Help: "Study content generations by requested type",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(ShopPurchases)
	prometheus.MustRegister(ShopEquips)
	prometheus.MustRegister(StudyGenerations)
}
