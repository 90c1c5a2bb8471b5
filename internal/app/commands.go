package app

import (
	"context"
	"fmt"

	"github.com/vk/seriesreg/internal/ctxlog"
	"github.com/vk/seriesreg/internal/query"
	"github.com/vk/seriesreg/internal/series"
	"github.com/vk/seriesreg/internal/server"
	"golang.org/x/sync/errgroup"
)

// Types writes the coefficient table of the named series kind.
func (a *App) Types(seriesName string) error {
	kind, err := series.ParseKind(seriesName)
	if err != nil {
		return err
	}
	cfTypes := a.registry.CfTypes(kind)
	a.logger.Debug("Coefficient types listed.", "series", kind, "count", len(cfTypes))
	return a.renderer.CoefficientTypes(kind, cfTypes)
}

// Resolve writes the series type registered for (seriesName, cfName).
func (a *App) Resolve(seriesName, cfName string) error {
	d, err := a.registry.ResolveByName(seriesName, cfName)
	if err != nil {
		return err
	}
	a.logger.Debug("Series type resolved.", "symbol", d.Symbol)
	return a.renderer.Resolution(d)
}

// List writes every registered series type matching the CEL filter. An empty
// filter matches everything.
func (a *App) List(filter string) error {
	f, err := query.NewFilter(filter)
	if err != nil {
		return err
	}
	matched, err := f.Apply(a.registry.Descriptors())
	if err != nil {
		return err
	}
	a.logger.Debug("Series types listed.", "filter", filter, "matched", len(matched))
	return a.renderer.SeriesTypes(matched)
}

// ShowSettings writes the current runtime settings.
func (a *App) ShowSettings() error {
	return a.renderer.Settings(a.settings.Snapshot())
}

// Serve runs the introspection server until ctx is cancelled or the server
// fails.
func (a *App) Serve(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	srv := server.New(ctx, fmt.Sprintf(":%d", a.config.Port), a.registry, a.settings)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.WithoutCancel(ctx))
	})
	return g.Wait()
}
