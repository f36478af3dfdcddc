package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/internal/config"
	"github.com/n42/gewe-go/internal/store"
	"github.com/n42/gewe-go/pkg/gewe"
)

// qrLifetime is how long the gateway keeps a login QR code valid.
const qrLifetime = 230 * time.Second

const loginStatusConfirmed = 2

type qrCodeData struct {
	AppID  string `json:"appId"`
	UUID   string `json:"uuid"`
	QRData string `json:"qrData"`
}

type checkLoginData struct {
	UUID      string `json:"uuid"`
	Nickname  string `json:"nickName"`
	Status    int    `json:"status"`
	LoginInfo *struct {
		Wxid     string `json:"wxid"`
		Nickname string `json:"nickName"`
	} `json:"loginInfo"`
}

func loginCmd(g *globals) *cobra.Command {
	var (
		appID    string
		wait     bool
		interval time.Duration
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Fetch a login QR code and wait for it to be scanned",
		Long: `Fetch a login QR code for the device. The first login of an account
uses an empty app id; the gateway allocates one which is remembered in the
session store (and with --save in the config file) and reused afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			db, err := g.openStore(ctx)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			id, err := g.resolveAppID(ctx, appID, db)
			if err != nil {
				return err
			}

			client := g.newClient(nil)
			resp, err := client.Invoke(ctx, gewe.GetLoginQrCode, id)
			if err != nil {
				return err
			}
			if err := checkOK(gewe.GetLoginQrCode.Route, resp); err != nil {
				return err
			}
			var qr qrCodeData
			if err := resp.DecodeData(&qr); err != nil {
				return fmt.Errorf("decode qr code: %w", err)
			}
			if qr.AppID == "" {
				qr.AppID = id
			}

			sess := &store.Session{AppID: qr.AppID, Token: client.Token(), UUID: qr.UUID}
			if err := saveSession(ctx, db, sess); err != nil {
				return err
			}
			if save && g.cfg.Gateway.AppID != qr.AppID {
				g.cfg.Gateway.AppID = qr.AppID
				if err := config.SetValue(g.configPath, "gateway", "app_id", qr.AppID); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, "app id: %s\nscan within %s: %s\n", qr.AppID, qrLifetime, qr.QRData)
			if !wait {
				return nil
			}

			info, err := waitForLogin(ctx, client, qr, interval, out)
			if err != nil {
				return err
			}
			if info.LoginInfo != nil {
				sess.Wxid = info.LoginInfo.Wxid
				sess.Nickname = info.LoginInfo.Nickname
			}
			if err := saveSession(ctx, db, sess); err != nil {
				return err
			}
			fmt.Fprintf(out, "logged in as %s (%s)\n", sess.Nickname, sess.Wxid)
			return nil
		},
	}
	cmd.Flags().StringVar(&appID, "app-id", "", "device id to log in (defaults to config, then latest session)")
	cmd.Flags().BoolVar(&wait, "wait", true, "poll until the QR code is confirmed or expires")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "poll interval")
	cmd.Flags().BoolVar(&save, "save", false, "write the allocated app id into the config file")
	return cmd
}

func saveSession(ctx context.Context, db *store.Database, sess *store.Session) error {
	if db == nil || sess.AppID == "" {
		return nil
	}
	return db.Sessions.Upsert(ctx, sess)
}

// waitForLogin polls CheckLogin until the login is confirmed or the QR code
// expires.
func waitForLogin(ctx context.Context, client *gewe.Client, qr qrCodeData, interval time.Duration, out io.Writer) (*checkLoginData, error) {
	ctx, cancel := context.WithTimeout(ctx, qrLifetime)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastStatus := -1
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("login not confirmed: %w", ctx.Err())
		case <-ticker.C:
		}

		resp, err := client.Invoke(ctx, gewe.CheckLogin, qr.AppID, qr.UUID, "")
		if err != nil {
			return nil, err
		}
		if err := checkOK(gewe.CheckLogin.Route, resp); err != nil {
			return nil, err
		}
		var data checkLoginData
		if err := resp.DecodeData(&data); err != nil {
			return nil, fmt.Errorf("decode login status: %w", err)
		}
		if data.Status != lastStatus {
			lastStatus = data.Status
			fmt.Fprintf(out, "status: %d %s\n", data.Status, data.Nickname)
		}
		if data.Status == loginStatusConfirmed {
			return &data, nil
		}
	}
}
