// Package metrics defines and registers all custom Prometheus metrics for
// the recipe catalog API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto at package load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipes"

// RecipesCreatedTotal counts newly created recipes.
// Label:
//   - author_role: the creating user's role ("Chef" or "Administrateur")
var RecipesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of recipes created, by author role.",
	},
	[]string{"author_role"},
)

// RecipesDeletedTotal counts admin deletions.
var RecipesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of recipes deleted.",
	},
)

// StatusUpdatesTotal counts editorial status changes.
// Label:
//   - status: "terminée" or "publiée"
var StatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_updates_total",
		Help:      "Total number of recipe status changes, by new status.",
	},
	[]string{"status"},
)

// LikesTotal counts like operations across all recipes.
var LikesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "likes_total",
		Help:      "Total number of likes recorded.",
	},
)

// TranslationOutcomesTotal counts per-field translation merge outcomes.
// Labels:
//   - field: "nameFR", "stepsFR" or "ingredientsFR"
//   - outcome: "merged", "empty", "already_translated", "missing_source",
//     "length_mismatch"
var TranslationOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translation_outcomes_total",
		Help:      "Total number of translation merge outcomes, by field and result.",
	},
	[]string{"field", "outcome"},
)

// RoleRequestsTotal counts self-service role elevation requests.
// Label:
//   - requested: "chef" or "trad"
var RoleRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_requests_total",
		Help:      "Total number of role elevation requests, by requested role.",
	},
	[]string{"requested"},
)
