package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/n42/gewe-go/internal/callback"
	"github.com/n42/gewe-go/internal/metrics"
	"github.com/n42/gewe-go/internal/store"
	"github.com/n42/gewe-go/pkg/gewe"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		register bool
		appID    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive gateway callbacks and stream them to websocket subscribers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.serve(cmd.Context(), register, appID)
		},
	}
	cmd.Flags().BoolVar(&register, "register", false, "register callback.public_url with the gateway once listening")
	cmd.Flags().StringVar(&appID, "app-id", "", "device whose session records the registered callback URL")
	return cmd
}

func (g *globals) serve(ctx context.Context, register bool, appID string) error {
	log := g.log.With("component", "serve")

	db, err := g.openStore(ctx)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	hub := callback.NewHub(g.log.With("component", "hub"))
	sinks := []callback.Sink{hub}

	var (
		recorder       *metrics.Recorder
		metricsHandler http.Handler
		metricsSrv     *http.Server
	)
	if g.cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		if err := recorder.RegisterGauge("event_subscribers", "Connected event stream subscribers.",
			func() float64 { return float64(hub.Subscribers()) }); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		sinks = append(sinks, recorder)
		if g.cfg.Metrics.Listen == g.cfg.Callback.Listen {
			metricsHandler = recorder.Handler()
		} else {
			mux := http.NewServeMux()
			mux.Handle("GET /metrics", recorder.Handler())
			metricsSrv = &http.Server{Addr: g.cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		}
	}
	if db != nil {
		sinks = append(sinks, callbackLogSink(db.Callbacks))
	}

	handler := callback.NewHandler(g.log.With("component", "callback"), sinks...)
	srv := callback.NewServer(g.log.With("component", "callback"), g.cfg.Callback.Listen, g.cfg.Callback.Path,
		handler, hub, metricsHandler)

	ln, err := net.Listen("tcp", g.cfg.Callback.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", g.cfg.Callback.Listen, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Serve(ctx, ln) })

	if metricsSrv != nil {
		eg.Go(func() error {
			log.Info("metrics listening", "addr", metricsSrv.Addr)
			if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		})
	}

	if register {
		var obs gewe.Observer
		if recorder != nil {
			obs = recorder
		}
		if err := g.registerCallback(ctx, g.newClient(obs), db, appID); err != nil {
			log.Error("callback registration failed", "error", err)
			cancel()
			return errors.Join(err, eg.Wait())
		}
	}

	return eg.Wait()
}

func (g *globals) registerCallback(ctx context.Context, client *gewe.Client, db *store.Database, appID string) error {
	url := g.cfg.Callback.PublicURL
	if url == "" {
		return errors.New("--register needs callback.public_url")
	}

	resp, err := client.Invoke(ctx, gewe.SetCallback, client.Token(), url)
	if err != nil {
		return err
	}
	if err := checkOK(gewe.SetCallback.Route, resp); err != nil {
		return err
	}
	g.log.Info("callback registered", "url", url)

	id, err := g.resolveAppID(ctx, appID, db)
	if err != nil || id == "" || db == nil {
		return err
	}
	sess, err := db.Sessions.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = &store.Session{AppID: id, Token: client.Token()}
	}
	sess.CallbackURL = url
	return db.Sessions.Upsert(ctx, sess)
}

func callbackLogSink(logs *store.CallbackLogStore) callback.Sink {
	return callback.SinkFunc(func(ctx context.Context, evt *callback.Event) error {
		return logs.Insert(ctx, &store.CallbackLogEntry{
			AppID:    evt.Appid,
			Wxid:     evt.Wxid,
			TypeName: evt.TypeName,
			Payload:  evt.Raw,
		})
	})
}
