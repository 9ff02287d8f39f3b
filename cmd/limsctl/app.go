package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/terryfox-lims/limsclient/pkg/config"
	"github.com/terryfox-lims/limsclient/pkg/credential"
	"github.com/terryfox-lims/limsclient/pkg/httpclient"
	"github.com/terryfox-lims/limsclient/pkg/identity"
	"github.com/terryfox-lims/limsclient/pkg/logger"
	"github.com/terryfox-lims/limsclient/pkg/requestid"
	"github.com/terryfox-lims/limsclient/pkg/session"
)

// app holds the collaborators shared by all subcommands of one invocation.
type app struct {
	cfg     appConfig
	log     *slog.Logger
	api     *httpclient.Client
	mgr     *session.Manager
	closers []func() error

	// bootstrapErr is set when the persisted session was rejected at start.
	bootstrapErr error
}

type globalFlags struct {
	apiURL   string
	output   string
	envFiles []string
	verbose  bool
}

func newApp(ctx context.Context, flags globalFlags, stderr io.Writer) (*app, error) {
	var cfg appConfig
	if err := config.Load(&cfg, config.WithPrefix(envPrefix), config.WithEnvFiles(flags.envFiles...)); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	log := logger.New(
		logger.WithConfig(cfg.Log),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component("limsctl")),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	a := &app{cfg: cfg, log: log}

	creds, closeCreds, err := credential.Open(ctx, cfg.Credential)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}
	a.closers = append(a.closers, closeCreds)

	api, err := httpclient.NewFromConfig(cfg.API)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	api.UseRequest(requestid.Stamp)
	api.UseResponse(func(req *http.Request, resp *http.Response, err error) {
		if err != nil {
			log.DebugContext(req.Context(), "request failed", logger.Method(req.Method), logger.URL(req.URL.Redacted()), logger.Error(err))
			return
		}
		log.DebugContext(req.Context(), "request done", logger.Method(req.Method), logger.URL(req.URL.Redacted()), logger.StatusCode(resp.StatusCode))
	})
	a.api = api

	mgr, err := session.New(ctx, identity.NewClient(api), creds,
		session.WithConfig(cfg.Session),
		session.WithLogger(log),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.mgr = mgr
	a.closers = append(a.closers, mgr.Close)

	if err := mgr.Start(ctx, api); err != nil {
		if !errors.Is(err, session.ErrBootstrapFailed) {
			_ = a.Close()
			return nil, err
		}
		a.bootstrapErr = err
	}
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
