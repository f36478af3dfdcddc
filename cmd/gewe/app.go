package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/n42/gewe-go/internal/store"
	"github.com/n42/gewe-go/pkg/gewe"
)

func (g *globals) newClient(obs gewe.Observer) *gewe.Client {
	b := gewe.NewBuilder().
		WithToken(g.cfg.Gateway.Token).
		WithBaseURL(g.cfg.Gateway.BaseURL).
		WithLogger(g.log)
	if obs != nil {
		b.WithObserver(obs)
	}
	return b.Build()
}

// openStore connects to the configured database and migrates it. It returns
// nil, nil when persistence is disabled.
func (g *globals) openStore(ctx context.Context) (*store.Database, error) {
	if g.cfg.Database.URI == "" {
		return nil, nil
	}
	db, err := store.Open(ctx, g.cfg.Database.URI, g.cfg.Database.MaxOpenConns, g.cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// resolveAppID picks the device id to act on: an explicit value, then the
// config file, then the most recent stored session.
func (g *globals) resolveAppID(ctx context.Context, explicit string, db *store.Database) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if g.cfg.Gateway.AppID != "" {
		return g.cfg.Gateway.AppID, nil
	}
	if db == nil {
		return "", nil
	}
	sess, err := db.Sessions.Latest(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.AppID, nil
}

func printResponse(w io.Writer, resp *gewe.Response) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Raw(), "", "  "); err != nil {
		_, err = fmt.Fprintln(w, resp.String())
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// checkOK turns a non-200 ret into an error for commands that need the data.
func checkOK(route string, resp *gewe.Response) error {
	if resp.OK() {
		return nil
	}
	ret, _ := resp.Ret()
	return fmt.Errorf("%s: gateway returned ret=%d: %s", route, ret, resp.Msg())
}
