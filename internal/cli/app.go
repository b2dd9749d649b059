package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/config"
	"github.com/roach88/bizdesk/internal/kv"
	"github.com/roach88/bizdesk/internal/logging"
	"github.com/roach88/bizdesk/internal/store"
	"github.com/roach88/bizdesk/internal/validate"
)

// app is everything one command invocation needs.
type app struct {
	opts      *RootOptions
	cfg       config.Config
	logger    *slog.Logger
	storage   kv.Storage
	store     *store.Store
	validator *validate.Validator
	out       *OutputFormatter

	logCloser io.Closer
}

// openApp loads the config, applies flag overrides, opens storage and
// initializes the store.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Storage.Path = opts.Database
	}
	if opts.Backend != "" {
		cfg.Storage.Backend = kv.Backend(opts.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger, logCloser, err := logging.New(cmd.ErrOrStderr(), cfg.Log, opts.Verbose)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to configure logging", err)
	}

	logger.Debug("opening storage", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	storage, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		logCloser.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}

	validator, err := validate.New()
	if err != nil {
		storage.Close()
		logCloser.Close()
		return nil, WrapExitError(ExitCommandError, "failed to load validation rules", err)
	}

	storeOpts := []store.Option{
		store.WithLogger(logger),
		store.WithTimeout(cfg.Storage.Timeout),
		store.WithSampleData(cfg.Seed.SampleData),
	}
	st := store.New(storage, append(storeOpts, opts.StoreOptions...)...)
	st.Init()
	logger.Debug("store ready", "products", len(st.Products()), "users", len(st.Users()))

	return &app{
		opts:      opts,
		cfg:       cfg,
		logger:    logger,
		storage:   storage,
		store:     st,
		validator: validator,
		out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		},
		logCloser: logCloser,
	}, nil
}

// Close releases storage and the log file.
func (a *app) Close() error {
	err := a.storage.Close()
	if closeErr := a.logCloser.Close(); err == nil {
		err = closeErr
	}
	return err
}

// withApp opens the app, checks capability (when set) and runs fn.
func withApp(opts *RootOptions, cmd *cobra.Command, capability string, fn func(a *app) error) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			a.logger.Error("error closing storage", "error", closeErr)
		}
	}()

	if capability != "" {
		if err := a.require(capability); err != nil {
			return err
		}
	}
	return fn(a)
}

// require fails unless the session grants capability.
func (a *app) require(capability string) error {
	if !a.store.IsLoggedIn() {
		return a.fail(ErrCodeNotLoggedIn, ExitFailure, "not logged in: run 'bizdesk login' first", nil)
	}
	if !a.store.HasPermission(capability) {
		return a.fail(ErrCodeForbidden, ExitFailure, "permission denied: "+capability, nil)
	}
	return nil
}

// fail reports an error in the configured format and returns the matching
// ExitError.
func (a *app) fail(code string, exit int, message string, cause error) error {
	if a.out.Format == "json" {
		var details any
		if cause != nil {
			details = cause.Error()
		}
		_ = a.out.Error(code, message, details)
	}
	if cause != nil {
		return WrapExitError(exit, message, cause)
	}
	return NewExitError(exit, message)
}

// invalid reports a validation failure with its field list.
func (a *app) invalid(err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) && a.out.Format == "json" {
		_ = a.out.Error(ErrCodeValidation, "validation failed", verr.Fields)
		return WrapExitError(ExitFailure, "validation failed", err)
	}
	return a.fail(ErrCodeValidation, ExitFailure, "validation failed", err)
}

// notFound reports an unknown record id.
func (a *app) notFound(kind, id string) error {
	return a.fail(ErrCodeNotFound, ExitFailure, fmt.Sprintf("%s not found: %s", kind, id), nil)
}

// saved fails when the last command could not be persisted. The store
// keeps the change in memory, but this process is about to exit.
func (a *app) saved() error {
	if a.store.ReadOnly() {
		return a.fail(ErrCodeReadOnly, ExitCommandError, "storage write failed: changes were not saved", nil)
	}
	return nil
}

// done checks persistence and renders data.
func (a *app) done(data any, text func(w io.Writer)) error {
	if err := a.saved(); err != nil {
		return err
	}
	return a.out.Render(data, text)
}
