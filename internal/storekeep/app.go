// Package storekeep wires the application together: configuration, the
// request pipeline, the gateway client, and the shared busy/notification
// state. Commands and the TUI consume App instead of cherry-picking raw
// dependencies.
package storekeep

import (
	"net/http"
	"time"

	"github.com/colonyops/storekeep/internal/core/busy"
	"github.com/colonyops/storekeep/internal/core/config"
	"github.com/colonyops/storekeep/internal/core/notify"
	"github.com/colonyops/storekeep/internal/gateway"
	"github.com/colonyops/storekeep/internal/gateway/pipeline"
)

// App is the central entry point for all storekeep operations.
type App struct {
	Config        *config.Config
	Gateway       *gateway.Client
	Notifications *notify.Store
	Busy          *busy.Tracker
}

// NewApp constructs the process-wide application state. The pipeline is
// composed here, once, so every outbound request shares the same busy
// tracker and notification store.
func NewApp(cfg *config.Config) *App {
	tracker := busy.NewTracker()
	store := notify.NewStore()

	rules := make([]pipeline.TTLRule, 0, len(cfg.Notifications.Rules))
	for _, rule := range cfg.Notifications.Rules {
		rules = append(rules, pipeline.TTLRule{
			Pattern: rule.Pattern,
			TTL:     time.Duration(rule.TTLMillis) * time.Millisecond,
		})
	}

	run := pipeline.Chain(
		pipeline.Busy(tracker),
		pipeline.Notify(store, pipeline.NotifyOptions{
			DefaultTTL: time.Duration(cfg.Notifications.ErrorTTLMillis) * time.Millisecond,
			Rules:      rules,
		}),
	)

	client := gateway.New(cfg.Gateway.URL, gateway.Endpoints{
		Customers: cfg.Gateway.Endpoints.Customers,
		Products:  cfg.Gateway.Endpoints.Products,
		Bills:     cfg.Gateway.Endpoints.Bills,
		Health:    cfg.Gateway.Endpoints.Health,
	}, http.DefaultClient, run)

	return &App{
		Config:        cfg,
		Gateway:       client,
		Notifications: store,
		Busy:          tracker,
	}
}
