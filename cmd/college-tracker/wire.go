// cmd/college-tracker/wire.go
package main

import (
	"context"
	"fmt"
	"io"

	"college-tracker/internal/common/config"
	"college-tracker/internal/common/database"
	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/events"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/observability"
	"college-tracker/internal/store"
	collegelookup "college-tracker/internal/workers/ai-conversation/college-lookup"
	enrichwebsearch "college-tracker/internal/workers/ai-conversation/enrich-web-search"
	llmsynthesis "college-tracker/internal/workers/ai-conversation/llm-synthesis"
	processquery "college-tracker/internal/workers/ai-conversation/process-query"
)

type app struct {
	cfg       *config.Config
	log       logger.Logger
	errs      *errors.ErrorHandler
	kv        database.KV
	store     *store.Store
	bus       *events.Bus
	queryCfg  *processquery.Config
	searcher  *enrichwebsearch.Handler
	generator *llmsynthesis.Handler
	assistant *processquery.Handler
	lookup    *collegelookup.Handler
	out       io.Writer
}

func (a *app) wire(ctx context.Context, configPath string, out io.Writer) error {
	var err error
	if configPath != "" {
		a.cfg, err = config.LoadFromFile(configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	a.out = out
	a.log = logger.NewStructured(a.cfg.Logging.Level, a.cfg.Logging.Format, a.cfg.Logging.Output)
	a.errs = errors.NewErrorHandler(a.log)

	a.kv, err = database.Open(ctx, a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", backendName(a.cfg.Storage.Backend), err)
	}

	a.store = store.New(a.kv, a.log)
	if err := a.store.Load(ctx); err != nil {
		return err
	}

	a.bus = events.NewBus(a.log)
	a.bus.Subscribe(events.TopicOpenCollege, a.openCollege)

	a.queryCfg, err = processquery.FromAppConfig(a.cfg.Assistant)
	if err != nil {
		return err
	}
	a.searcher = enrichwebsearch.NewHandler(
		enrichwebsearch.FromAppConfig(a.cfg.APIs.WebSearch, a.queryCfg.Vocabulary.Domains), a.log)
	a.generator = llmsynthesis.NewHandler(llmsynthesis.FromAppConfig(a.cfg.APIs.GenAI), a.log)

	a.wireAssistant(observability.Noop())
	return nil
}

// wireAssistant (re)builds the query and lookup handlers around obs.
func (a *app) wireAssistant(obs *observability.Observability) {
	a.assistant = processquery.NewHandler(a.queryCfg, a.searcher, a.generator, a.log,
		processquery.WithObservability(obs))
	a.lookup = collegelookup.NewHandler(collegelookup.FromAppConfig(a.cfg.Assistant), a.assistant, a.store, a.bus, a.log,
		collegelookup.WithObservability(obs))
}

// openCollege is the open-college subscriber: it shows the named college.
func (a *app) openCollege(e events.Event) {
	c, ok := a.store.FindByName(e.Name())
	if !ok {
		a.log.Warn("open-college event for unknown college", map[string]interface{}{"name": e.Name()})
		return
	}
	printCollege(a.out, c)
}

func (a *app) close() error {
	var err error
	if a.kv != nil {
		err = a.kv.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}

func backendName(b string) string {
	if b == "" {
		return "file"
	}
	return b
}
