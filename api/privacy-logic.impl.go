/*
 * This file is part of privacy-logic.
 *
 * privacy-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * privacy-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with privacy-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/labstack/echo/v4"

	"github.com/voice4victims/privacy-logic/pkg"
)

// Wrapper binds the http handlers to the privacy logic client.
type Wrapper struct {
	Pl   pkg.PrivacyLogicClient
	Auth pkg.IdentityProvider
}

// RegisterHandlers adds the privacy routes to the router.
func RegisterHandlers(router runtime.EchoRouter, w *Wrapper) {
	router.GET("/privacy/:accountID/permissions", w.EffectivePermissions)
	router.POST("/privacy/:accountID/access/check", w.CheckAccess)
	router.PUT("/privacy/:accountID/settings", w.UpdateSettings)
	router.POST("/privacy/:accountID/deletion", w.RequestDeletion)
	router.POST("/privacy/:accountID/consent/revoke", w.RevokeConsent)
	router.GET("/privacy/:accountID/consent", w.ConsentHistory)
	router.POST("/privacy/:accountID/grants", w.CreateGrant)
	router.DELETE("/privacy/:accountID/grants/:grantID", w.RevokeGrant)
	router.GET("/privacy/:accountID/audit/report", w.AuditReport)
	router.POST("/privacy/:accountID/activity", w.RecordActivity)
}

// authenticate resolves the bearer token to a verified identity. Any failure
// is a 401; there is no anonymous access.
func (w *Wrapper) authenticate(ctx echo.Context) (*pkg.Identity, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	if w.Auth == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "no identity provider configured")
	}
	identity, err := w.Auth.Verify(ctx.Request().Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		ctx.Logger().Error("token verification failed: ", err)
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
	}
	return identity, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pkg.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, pkg.ErrAuthorizationDenied):
		return http.StatusForbidden
	case errors.Is(err, pkg.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pkg.ErrLegalHoldBlocked), errors.Is(err, pkg.ErrDeletionOutstanding):
		return http.StatusConflict
	case errors.Is(err, pkg.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, pkg.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func errorResponse(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// EffectivePermissions returns the authenticated caller's permission set on
// the account, optionally narrowed to one child.
func (w *Wrapper) EffectivePermissions(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	permissions, err := w.Pl.EffectivePermissions(ctx.Request().Context(),
		identity.UserID, ctx.Param("accountID"), ctx.QueryParam("childId"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, PermissionsResponse{Permissions: permissions})
}

// CheckAccess answers a single yes/no permission question. Denied decisions
// are a 200 with allowed=false; only pipeline failures map to error statuses.
func (w *Wrapper) CheckAccess(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	body := new(CheckAccessRequest)
	if err := ctx.Bind(body); err != nil {
		ctx.Logger().Error("could not unmarshall json body: ", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	decision, err := w.Pl.CheckAccess(ctx.Request().Context(), pkg.AccessRequest{
		RequesterID: identity.UserID,
		OwnerID:     ctx.Param("accountID"),
		Permission:  body.Permission,
		ChildID:     body.ChildID,
		IPAddress:   ctx.RealIP(),
		UserAgent:   ctx.Request().UserAgent(),
	})
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, decision)
}

func (w *Wrapper) UpdateSettings(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	update := new(pkg.SettingsUpdate)
	if err := ctx.Bind(update); err != nil {
		ctx.Logger().Error("could not unmarshall json body: ", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := w.Pl.UpdateSettings(ctx.Request().Context(), ctx.Param("accountID"), *update, *identity)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, settings)
}

// RequestDeletion opens the deletion workflow for the account. A request that
// collides with an outstanding one is a conflict, not a validation error.
func (w *Wrapper) RequestDeletion(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	body := new(DeletionRequestBody)
	if err := ctx.Bind(body); err != nil {
		ctx.Logger().Error("could not unmarshall json body: ", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := w.Pl.RequestDeletion(ctx.Request().Context(), ctx.Param("accountID"), body.Scope, body.Reason, *identity)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, request)
}

func (w *Wrapper) RevokeConsent(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	body := new(ConsentRevocationBody)
	if err := ctx.Bind(body); err != nil {
		ctx.Logger().Error("could not unmarshall json body: ", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := w.Pl.RevokeConsent(ctx.Request().Context(), ctx.Param("accountID"), body.ConsentType, *identity); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (w *Wrapper) ConsentHistory(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	history, err := w.Pl.ConsentHistory(ctx.Request().Context(), ctx.Param("accountID"), *identity)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, history)
}

func (w *Wrapper) CreateGrant(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	grant := new(pkg.AccessGrant)
	if err := ctx.Bind(grant); err != nil {
		ctx.Logger().Error("could not unmarshall json body: ", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	grant.OwnerID = ctx.Param("accountID")

	created, err := w.Pl.CreateGrant(ctx.Request().Context(), grant, *identity)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, created)
}

func (w *Wrapper) RevokeGrant(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	if err := w.Pl.RevokeGrant(ctx.Request().Context(), ctx.Param("accountID"), ctx.Param("grantID"), *identity); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AuditReport returns the ranged, filtered report. The range defaults to the
// trailing thirty days.
func (w *Wrapper) AuditReport(ctx echo.Context) error {
	identity, err := w.authenticate(ctx)
	if err != nil {
		return err
	}

	to := time.Now()
	if raw := ctx.QueryParam("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to: expected an RFC3339 timestamp")
		}
	}
	from := to.AddDate(0, 0, -30)
	if raw := ctx.QueryParam("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from: expected an RFC3339 timestamp")
		}
	}

	filters := pkg.ReportFilters{
		ActorID: ctx.QueryParam("actorId"),
		Action:  ctx.QueryParam("action"),
		ChildID: ctx.QueryParam("childId"),
	}

	report, err := w.Pl.GenerateAuditReport(ctx.Request().Context(), ctx.Param("accountID"), from, to, filters, *identity)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(http.StatusOK, report)
}

// RecordActivity marks the account as active, feeding the inactivity sweep.
func (w *Wrapper) RecordActivity(ctx echo.Context) error {
	if _, err := w.authenticate(ctx); err != nil {
		return err
	}

	if err := w.Pl.RecordActivity(ctx.Request().Context(), ctx.Param("accountID")); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
