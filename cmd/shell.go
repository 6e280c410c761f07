// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"eventsops/cli/internal/auth"
	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/config"
	"eventsops/cli/internal/dashboard"
	apperrors "eventsops/cli/internal/errors"
	"eventsops/cli/internal/guard"
	"eventsops/cli/internal/httperrors"
	"eventsops/cli/internal/keychain"
	"eventsops/cli/internal/logging"
	"eventsops/cli/internal/manifest"
	"eventsops/cli/internal/query"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ErrNavigateLogin ends a command that needs the operator to sign in again.
// The notice has already been printed when it is returned.
var ErrNavigateLogin = errors.New("login required")

// settleTimeout bounds how long a finished command waits for a background
// session restore to persist its result.
const settleTimeout = 5 * time.Second

// shownError marks an error the operator has already seen.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error { return &shownError{err: err} }

// shell is the hosting side of the client: it owns the one credential store,
// HTTP client and session of the process, and turns their outcomes into
// what the operator sees.
type shell struct {
	cfg     config.Config
	log     zerolog.Logger
	baseURL string

	store   *auth.Store
	client  *backend.Client
	session *auth.Session

	events      *dashboard.Events
	assignments *dashboard.Assignments
	checkIns    *dashboard.CheckIns
	users       *dashboard.Users

	mu           sync.Mutex
	unauthorized []backend.UnauthorizedEvent
}

// settings loads the config and applies the persistent flags on top.
func settings() (config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, "", fmt.Errorf("load config: %w", err)
	}
	raw := cfg.APIURL
	if apiURLFlag != "" {
		raw = apiURLFlag
	}
	base, err := manifest.ResolveBaseURL(raw)
	if err != nil {
		return cfg, "", apperrors.Wrap(apperrors.Validation, "invalid API address", err)
	}
	return cfg, base, nil
}

func newShell(cmd *cobra.Command) (*shell, error) {
	cfg, base, err := settings()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verboseFlag || os.Getenv("EVENTSOPS_VERBOSE") == "1" {
		level = "debug"
	}
	log := logging.New(level, cfg.LogFormat, cmd.ErrOrStderr())
	applyTheme(cfg.Theme)

	sh := &shell{cfg: cfg, log: log, baseURL: base}

	var durable auth.Backend
	if km, err := keychain.NewManager(log); err != nil {
		log.Warn().Err(err).Msg("no credential store available, the session will not outlive this command")
	} else {
		durable = km
	}
	sh.store = auth.NewStore(durable, log)

	sh.client = backend.New(base,
		backend.WithTokenSource(sh.store),
		backend.WithUnauthorizedHandler(sh.onUnauthorized),
		backend.WithLogger(log),
	)

	opts := []auth.SessionOption{auth.WithLogger(log)}
	if cfg.StrictRestore {
		opts = append(opts, auth.WithStrictRestore())
	}
	sh.session = auth.NewSession(sh.client, sh.store, opts...)
	sh.session.Subscribe(func(s auth.Snapshot) {
		log.Debug().Stringer("state", s.State).Bool("loading", s.Loading).Msg("session changed")
	})

	cache := query.New(query.WithLogger(log))
	sh.events = dashboard.NewEvents(sh.client, cache)
	sh.assignments = dashboard.NewAssignments(sh.client, cache)
	sh.checkIns = dashboard.NewCheckIns(sh.client, cache)
	sh.users = dashboard.NewUsers(sh.client, cache)

	log.Debug().Str("api", base).Msg("shell ready")
	return sh, nil
}

// onUnauthorized runs after the client wiped the credentials on a 401.
func (sh *shell) onUnauthorized(ev backend.UnauthorizedEvent) {
	sh.mu.Lock()
	sh.unauthorized = append(sh.unauthorized, ev)
	sh.mu.Unlock()
	sh.log.Debug().Str("path", ev.Path).Str("request_id", ev.RequestID).Msg("credentials cleared after 401")
	// an anonymous 401 is a failed login, which leaves the session alone
	if ev.HadToken && sh.session != nil {
		sh.session.Expire()
	}
}

// sessionExpired reports whether a request carrying a token was rejected.
func (sh *shell) sessionExpired() bool {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	for _, ev := range sh.unauthorized {
		if ev.HadToken {
			return true
		}
	}
	return false
}

// navigate carries out an outcome.
func (sh *shell) navigate(out auth.Outcome) error {
	switch out.Navigate {
	case auth.RouteLogin:
		pterm.Warning.Println(loginNotice(sh.sessionExpired()))
		pterm.Println("   Run 'eventsops login' to sign in.")
		return ErrNavigateLogin
	case auth.RouteDashboard:
		snap := sh.session.Snapshot()
		if snap.User != nil {
			pterm.Info.Printf("Already logged in as %s\n", snap.User.DisplayName())
		}
		pterm.Println("   Run 'eventsops events list' to see your events.")
		return nil
	default:
		return nil
	}
}

func loginNotice(expired bool) string {
	if expired {
		return "Your session has expired."
	}
	return "You're not logged in."
}

// protect gates a screen that needs a session. It returns nil when the
// screen may render.
func (sh *shell) protect(ctx context.Context) error {
	sh.session.Start(ctx)
	return sh.decide(ctx, guard.Protect)
}

// publicOnly gates the login screen; redirected reports whether the operator
// was sent on to the dashboard instead.
func (sh *shell) publicOnly(ctx context.Context) (redirected bool, err error) {
	sh.session.Start(ctx)
	if err := sh.decide(ctx, guard.PublicOnly); err != nil {
		return false, err
	}
	return guard.PublicOnly(sh.session.Snapshot()).Action == guard.Redirect, nil
}

func (sh *shell) decide(ctx context.Context, rule func(auth.Snapshot) guard.Decision) error {
	d := rule(sh.session.Snapshot())
	if d.Action == guard.ShowLoading {
		stop := startSpinner(os.Stdout, "Restoring session")
		snap, err := guard.Wait(ctx, sh.session)
		stop()
		if err != nil {
			return err
		}
		d = rule(snap)
	}
	if d.Action == guard.Redirect {
		return sh.navigate(auth.Outcome{Navigate: d.Route})
	}
	return nil
}

// settle waits for a background restore so its result is persisted before
// the process exits.
func (sh *shell) settle() {
	select {
	case <-sh.session.Ready():
	case <-time.After(settleTimeout):
		sh.log.Debug().Msg("session restore still running at exit")
	}
}

// fail reports a failed read. Unauthorized responses send the operator to
// login; transport failures get troubleshooting help; backend errors show
// the backend message or fallback.
func (sh *shell) fail(err error, action, fallback string) error {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return sh.navigate(auth.Outcome{Navigate: auth.RouteLogin})
	case errors.Is(err, context.Canceled):
		return shown(err)
	}
	switch apperrors.KindOf(err) {
	case apperrors.Network:
		return shown(httperrors.FormatNetworkError(err, action, sh.baseURL))
	case apperrors.Validation:
		fmt.Fprint(os.Stderr, logging.FormatError(err))
		return shown(err)
	case apperrors.Backend:
		pterm.Error.Println(backend.MessageOf(err, fallback))
		return shown(err)
	default:
		sh.log.Debug().Err(err).Msg(action)
		if fallback == "" {
			pterm.Error.Println(logging.PresentError(action, err))
		} else {
			pterm.Error.Println(fallback)
		}
		return shown(err)
	}
}

// mutated reports the outcome of a mutation.
func (sh *shell) mutated(n dashboard.Notice, err error, action string) error {
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) || apperrors.KindOf(err) == apperrors.Network {
			return sh.fail(err, action, n.Text)
		}
		printNotice(n)
		return shown(err)
	}
	printNotice(n)
	return nil
}

func printNotice(n dashboard.Notice) {
	if n.Text == "" {
		return
	}
	switch n.Level {
	case dashboard.LevelError:
		pterm.Error.Println(n.Text)
	default:
		pterm.Success.Println(n.Text)
	}
}

// applyTheme tints table headers for the resolved color scheme.
func applyTheme(t config.Theme) {
	switch t.Resolve() {
	case config.ThemeDark:
		pterm.ThemeDefault.TableHeaderStyle = *pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	default:
		pterm.ThemeDefault.TableHeaderStyle = *pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	}
}
