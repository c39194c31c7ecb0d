package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	groupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbboxes_groups_created_total",
		Help: "Groups created.",
	})

	squaresPurchased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbboxes_squares_purchased_total",
		Help: "Squares successfully assigned to a buyer.",
	})

	resultsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbboxes_quarter_results_recorded_total",
		Help: "Quarter results recorded, including overwrites.",
	})

	payoutsMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sbboxes_payouts_marked_total",
		Help: "Quarter prizes marked as paid out.",
	})
)
