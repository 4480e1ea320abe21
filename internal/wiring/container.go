// Package wiring assembles the application graph at start.
package wiring

import (
	"log"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/jask/studybunny/internal/collection"
	"github.com/jask/studybunny/internal/config"
	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/kv"
	"github.com/jask/studybunny/internal/listview"
	"github.com/jask/studybunny/internal/record"
	"github.com/jask/studybunny/internal/service"
)

// LoadConfigFunc supplies the configuration, config.Load in production.
type LoadConfigFunc func() (config.Config, error)

// App is everything the entry point needs.
type App struct {
	dig.In

	Config      config.Config
	Location    *time.Location
	Backend     kv.Backend
	Tracker     *service.Tracker
	Maintenance *service.MaintenanceService
}

func newLocation(cfg config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
	}
	return loc
}

func newBackend(cfg config.Config) (kv.Backend, error) {
	return kv.Open(cfg.Store.Driver, cfg.Store.Path)
}

func newViewOptions(loc *time.Location) listview.Options {
	return listview.Options{Location: loc, Now: time.Now}
}

func newView[R record.Record](kind record.Kind) func(kv.Backend, *delivery.Mailbox[R], *record.Validator, listview.Options) *listview.View[R] {
	return func(backend kv.Backend, inbox *delivery.Mailbox[R], v *record.Validator, opts listview.Options) *listview.View[R] {
		return listview.New(collection.Open[R](backend, kind), inbox, v, opts)
	}
}

func newMaintenance(tr *service.Tracker) *service.MaintenanceService {
	return &service.MaintenanceService{Tracker: tr}
}

// New returns a container providing the whole graph.
func New(load LoadConfigFunc) (*dig.Container, error) {
	c := dig.New()

	for _, ctor := range []any{
		load,
		newLocation,
		newBackend,
		record.NewValidator,
		newViewOptions,
		delivery.NewMailbox[record.Mark],
		delivery.NewMailbox[record.Homework],
		delivery.NewMailbox[record.Teacher],
		newView[record.Mark](record.KindMark),
		newView[record.Homework](record.KindHomework),
		newView[record.Teacher](record.KindTeacher),
		service.NewTracker,
		newMaintenance,
	} {
		if err := c.Provide(ctor); err != nil {
			return nil, errors.Wrap(err, "failed to provide dependency")
		}
	}
	return c, nil
}

// Build resolves the App from a fresh container.
func Build(load LoadConfigFunc) (App, error) {
	c, err := New(load)
	if err != nil {
		return App{}, err
	}
	var app App
	if err := c.Invoke(func(a App) { app = a }); err != nil {
		return App{}, errors.Wrap(err, "failed to build app")
	}
	return app, nil
}
