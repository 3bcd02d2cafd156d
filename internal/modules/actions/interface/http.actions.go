package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/domain"
)

const adHocComponent = "adhoc"

// dispatcher resolves dispatch commands against the catalog and runs them behind the guard.
type dispatcher struct {
	deps Dependencies
}

func (d dispatcher) resolve(cmd domain.DispatchCommand) (string, domain.ActionDescriptor, error) {
	if name := strings.TrimSpace(cmd.Button); name != "" {
		button, err := d.deps.Catalog.Button(name)
		if err != nil {
			return "", domain.ActionDescriptor{}, err
		}
		if button.Inactive {
			return "", domain.ActionDescriptor{}, fmt.Errorf("button %q: %w", name, usecase.ErrComponentDisabled)
		}
		return button.Name, button.Action, nil
	}

	if len(cmd.Action) == 0 {
		return "", domain.ActionDescriptor{}, domain.NewConfigurationError("action", domain.ErrEmptyConfiguration)
	}
	if d.deps.ValidateAction != nil {
		if err := d.deps.ValidateAction(cmd.Action); err != nil {
			return "", domain.ActionDescriptor{}, err
		}
	}
	descriptor, err := domain.ParseActionDescriptor(string(cmd.Action))
	if err != nil {
		return "", domain.ActionDescriptor{}, err
	}
	component := strings.TrimSpace(cmd.Component)
	if component == "" {
		component = adHocComponent
	}
	return component, descriptor, nil
}

func (d dispatcher) run(ctx context.Context, cmd domain.DispatchCommand) (usecase.Outcome, error) {
	component, descriptor, err := d.resolve(cmd)
	if err != nil {
		return usecase.Outcome{}, err
	}
	return d.deps.Buttons.Trigger(ctx, usecase.InstanceFromContext(ctx, component), descriptor)
}

// NewDispatchButtonHandler exposes POST /api/actions/:button.
func NewDispatchButtonHandler(deps Dependencies) echo.HandlerFunc {
	d := dispatcher{deps: deps}
	return func(c echo.Context) error {
		cmd := domain.DispatchCommand{Button: c.Param("button")}
		outcome, err := d.run(c.Request().Context(), cmd)
		if err != nil {
			return httpError(c, err)
		}
		slog.Info("http dispatch button done", slog.String("button", cmd.Button), slog.String("outcome", string(outcome.Kind)))
		return c.JSON(http.StatusOK, outcome)
	}
}

// NewDispatchDescriptorHandler exposes POST /api/actions with a JSON descriptor body. The
// component query parameter scopes the in-flight guard.
func NewDispatchDescriptorHandler(deps Dependencies) echo.HandlerFunc {
	d := dispatcher{deps: deps}
	return func(c echo.Context) error {
		raw, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		cmd := domain.DispatchCommand{Action: raw, Component: c.QueryParam("component")}
		outcome, err := d.run(c.Request().Context(), cmd)
		if err != nil {
			return httpError(c, err)
		}
		slog.Info("http dispatch descriptor done", slog.String("component", cmd.Component), slog.String("outcome", string(outcome.Kind)))
		return c.JSON(http.StatusOK, outcome)
	}
}
