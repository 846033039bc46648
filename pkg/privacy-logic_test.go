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

package pkg_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/voice4victims/privacy-logic/mock"
	"github.com/voice4victims/privacy-logic/pkg"
)

func newTestService(store pkg.GrantStore) *pkg.PrivacyLogic {
	service := &pkg.PrivacyLogic{Store: store, Config: pkg.DefaultConfig()}
	service.Auditor = newTestAuditor(store)
	service.Authz = newTestEngine(store)
	service.Lifecycle = newTestLifecycle(store)
	service.Limiter = pkg.NewFixedWindowLimiter(service.Config.RateLimit, service.Config.RateWindow)
	service.Limiter.Now = func() time.Time { return testClock }
	return service
}

func TestPrivacyLogic_CheckAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("the owner is allowed and exactly one audit entry is written", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Times(1).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		decision, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "parent-1",
			OwnerID:     "parent-1",
			Permission:  pkg.PermissionViewSymptoms,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, pkg.ResultAllowed, decision.Result)
		assert.Equal(t, pkg.ActionAccessCheck, logged.Action)
		assert.Equal(t, pkg.ResultAllowed, logged.Result)
		assert.Equal(t, pkg.ActorAccountHolder, logged.ActorType)
	})

	t.Run("a requester without a covering grant is denied and audited once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "uncle-1").Return(nil, nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Times(1).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		decision, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "uncle-1",
			OwnerID:     "parent-1",
			Permission:  pkg.PermissionViewSymptoms,
			IPAddress:   "203.0.113.7",
		})

		assert.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, pkg.ResultDenied, logged.Result)
		assert.Equal(t, "203.0.113.7", logged.IPAddress)
	})

	t.Run("an allowed decision advances temporary grant use counters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		grants := []pkg.AccessGrant{
			{ID: "grant-1", OwnerID: "parent-1", GranteeID: "sitter-1", Type: pkg.GrantTypeTemporary,
				Active: true, MaxAccessCount: 5, AccessCount: 2,
				Permissions: []pkg.Permission{pkg.PermissionViewMedications}},
		}
		// Read once for the decision and once for use accounting; the counter
		// itself advances atomically in the store.
		store.EXPECT().GrantsFor(ctx, "parent-1", "sitter-1").Times(2).Return(grants, nil)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(nil)
		store.EXPECT().IncrementGrantUse(ctx, "grant-1").Return(nil)

		service := newTestService(store)
		decision, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "sitter-1",
			OwnerID:     "parent-1",
			Permission:  pkg.PermissionViewMedications,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Allowed)
	})

	t.Run("a store failure fails closed with an error audit entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "uncle-1").Return(nil, errors.New("connection refused"))

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Times(1).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		decision, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "uncle-1",
			OwnerID:     "parent-1",
			Permission:  pkg.PermissionViewSymptoms,
		})

		assert.True(t, errors.Is(err, pkg.ErrStoreUnavailable))
		assert.False(t, decision.Allowed)
		assert.Equal(t, pkg.ResultError, decision.Result)
		assert.Equal(t, pkg.ResultError, logged.Result)
	})

	t.Run("exceeding the rate limit denies without an authorization lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		// Two audit entries, no grant lookups at all.
		entries := make([]pkg.AccessLog, 0, 2)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				entries = append(entries, entry)
				return nil
			})

		service := newTestService(store)
		service.Limiter = pkg.NewFixedWindowLimiter(1, time.Minute)
		service.Limiter.Now = func() time.Time { return testClock }

		first, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "parent-1", OwnerID: "parent-1", Permission: pkg.PermissionViewSymptoms,
		})
		assert.NoError(t, err)
		assert.True(t, first.Allowed)

		second, err := service.CheckAccess(ctx, pkg.AccessRequest{
			RequesterID: "parent-1", OwnerID: "parent-1", Permission: pkg.PermissionViewSymptoms,
		})
		assert.True(t, errors.Is(err, pkg.ErrRateLimited))
		assert.False(t, second.Allowed)
		if assert.Len(t, entries, 2) {
			assert.Equal(t, "rate limited", entries[1].Detail)
		}
	})
}

func TestPrivacyLogic_CreateGrant(t *testing.T) {
	ctx := context.Background()
	actor := pkg.Identity{UserID: "parent-1"}

	t.Run("a valid grant is stored active with a fresh id and audited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().PutGrant(ctx, gomock.Any()).Return(nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		grant, err := service.CreateGrant(ctx, &pkg.AccessGrant{
			OwnerID:     "parent-1",
			GranteeID:   "gran-1",
			Type:        pkg.GrantTypeFamilyMember,
			Permissions: []pkg.Permission{pkg.PermissionViewSymptoms},
		}, actor)

		assert.NoError(t, err)
		assert.NotEmpty(t, grant.ID)
		assert.True(t, grant.Active)
		assert.Equal(t, testClock, grant.CreatedAt)
		assert.Equal(t, pkg.ActionGrantCreated, logged.Action)
	})

	t.Run("a temporary grant needs an expiry or a use limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		service := newTestService(store)
		_, err := service.CreateGrant(ctx, &pkg.AccessGrant{
			OwnerID:     "parent-1",
			GranteeID:   "sitter-1",
			Type:        pkg.GrantTypeTemporary,
			Permissions: []pkg.Permission{pkg.PermissionViewMedications},
		}, actor)

		assert.True(t, errors.Is(err, pkg.ErrValidation))
	})

	t.Run("a self-grant is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		service := newTestService(store)
		_, err := service.CreateGrant(ctx, &pkg.AccessGrant{
			OwnerID:     "parent-1",
			GranteeID:   "parent-1",
			Type:        pkg.GrantTypeFamilyMember,
			Permissions: []pkg.Permission{pkg.PermissionViewSymptoms},
		}, actor)

		assert.True(t, errors.Is(err, pkg.ErrValidation))
	})

	t.Run("an unknown permission is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		service := newTestService(store)
		_, err := service.CreateGrant(ctx, &pkg.AccessGrant{
			OwnerID:     "parent-1",
			GranteeID:   "gran-1",
			Type:        pkg.GrantTypeFamilyMember,
			Permissions: []pkg.Permission{pkg.Permission("fly_helicopter")},
		}, actor)

		assert.True(t, errors.Is(err, pkg.ErrValidation))
	})
}

func TestPrivacyLogic_PrivacyOperationGate(t *testing.T) {
	ctx := context.Background()
	outsider := pkg.Identity{UserID: "mallory"}

	t.Run("an outsider cannot issue themselves a grant on another account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "mallory").Return(nil, nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		_, err := service.CreateGrant(ctx, &pkg.AccessGrant{
			OwnerID:     "parent-1",
			GranteeID:   "mallory",
			Type:        pkg.GrantTypeFamilyMember,
			Permissions: pkg.AllPermissions(),
		}, outsider)

		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))
		assert.Equal(t, pkg.ResultDenied, logged.Result)
		assert.Equal(t, pkg.ActionGrantCreated, logged.Action)
	})

	t.Run("an outsider cannot rewrite another account's settings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "mallory").Return(nil, nil)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(nil)

		service := newTestService(store)
		_, err := service.UpdateSettings(ctx, "parent-1", pkg.SettingsUpdate{}, outsider)

		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))
	})

	t.Run("deletion and consent revocation need manage_privacy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "mallory").Times(2).Return(nil, nil)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Times(2).Return(nil)

		service := newTestService(store)
		_, err := service.RequestDeletion(ctx, "parent-1", pkg.ScopeFullAccount, "", outsider)
		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))

		err = service.RevokeConsent(ctx, "parent-1", pkg.ConsentMarketing, outsider)
		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))
	})

	t.Run("exporting the audit trail needs export_data", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "mallory").Return(nil, nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		_, err := service.GenerateAuditReport(ctx, "parent-1",
			testClock.Add(-24*time.Hour), testClock, pkg.ReportFilters{}, outsider)

		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))
		assert.Equal(t, string(pkg.PermissionExportData), logged.ResourceID)
	})

	t.Run("a delegate holding manage_privacy may read consent history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GrantsFor(ctx, "parent-1", "gran-1").Return([]pkg.AccessGrant{
			{ID: "grant-1", OwnerID: "parent-1", GranteeID: "gran-1", Type: pkg.GrantTypeFamilyMember,
				Active: true, Permissions: []pkg.Permission{pkg.PermissionManagePrivacy}},
		}, nil)
		store.EXPECT().ConsentHistory(ctx, "parent-1").Return([]pkg.ConsentRecord{{ID: "consent-1"}}, nil)

		service := newTestService(store)
		history, err := service.ConsentHistory(ctx, "parent-1", pkg.Identity{UserID: "gran-1"})

		assert.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("the account holder passes without any grant lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().ConsentHistory(ctx, "parent-1").Return(nil, nil)

		service := newTestService(store)
		_, err := service.ConsentHistory(ctx, "parent-1", pkg.Identity{UserID: "parent-1"})

		assert.NoError(t, err)
	})
}

func TestPrivacyLogic_RevokeGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("the owner revokes and the grant becomes inactive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GetGrant(ctx, "grant-1").Return(&pkg.AccessGrant{
			ID: "grant-1", OwnerID: "parent-1", GranteeID: "gran-1", Type: pkg.GrantTypeFamilyMember, Active: true,
		}, nil)

		var stored pkg.AccessGrant
		store.EXPECT().PutGrant(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, grant *pkg.AccessGrant) error {
				stored = *grant
				return nil
			})
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(nil)

		service := newTestService(store)
		err := service.RevokeGrant(ctx, "parent-1", "grant-1", pkg.Identity{UserID: "parent-1"})

		assert.NoError(t, err)
		assert.False(t, stored.Active)
	})

	t.Run("anyone but the owner is denied and the attempt audited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GetGrant(ctx, "grant-1").Return(&pkg.AccessGrant{
			ID: "grant-1", OwnerID: "parent-1", GranteeID: "gran-1", Type: pkg.GrantTypeFamilyMember, Active: true,
		}, nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		service := newTestService(store)
		err := service.RevokeGrant(ctx, "uncle-1", "grant-1", pkg.Identity{UserID: "uncle-1"})

		assert.True(t, errors.Is(err, pkg.ErrAuthorizationDenied))
		assert.Equal(t, pkg.ResultDenied, logged.Result)
	})

	t.Run("revoking an unknown grant is a not-found error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().GetGrant(ctx, "missing").Return(nil, pkg.ErrNotFound)

		service := newTestService(store)
		err := service.RevokeGrant(ctx, "parent-1", "missing", pkg.Identity{UserID: "parent-1"})

		assert.True(t, errors.Is(err, pkg.ErrNotFound))
	})
}

func TestPrivacyLogic_RecordActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("activity touches the account's last-activity timestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().TouchAccountActivity(ctx, "parent-1", testClock).Return(nil)

		service := newTestService(store)
		assert.NoError(t, service.RecordActivity(ctx, "parent-1"))
	})
}

func TestPrivacyLogic_Start(t *testing.T) {
	t.Run("starting without a store is an error", func(t *testing.T) {
		service := &pkg.PrivacyLogic{Config: pkg.DefaultConfig()}

		assert.Error(t, service.Start())
	})

	t.Run("starting with a store wires every component", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		service := &pkg.PrivacyLogic{Store: store, Config: pkg.DefaultConfig()}
		assert.NoError(t, service.Configure())
		assert.NoError(t, service.Start())

		assert.NotNil(t, service.Authz)
		assert.NotNil(t, service.Lifecycle)
		assert.NotNil(t, service.Auditor)
		assert.NotNil(t, service.Limiter)
	})
}
