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

package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

type PrivacyLogicConfig struct {
	// RateLimit is the number of access checks allowed per account per window.
	RateLimit int
	// RateWindow is the fixed rate-limit window length.
	RateWindow time.Duration
	// DeletionSweepInterval spaces runs of the scheduled-deletion sweep.
	DeletionSweepInterval time.Duration
	// RetentionSweepInterval spaces runs of the automatic-retention sweep.
	RetentionSweepInterval time.Duration
}

// DefaultConfig returns the production sweep and rate-limit settings.
func DefaultConfig() PrivacyLogicConfig {
	return PrivacyLogicConfig{
		RateLimit:              60,
		RateWindow:             time.Minute,
		DeletionSweepInterval:  time.Hour,
		RetentionSweepInterval: 24 * time.Hour,
	}
}

// PrivacyLogicClient is the surface the API layer consumes.
type PrivacyLogicClient interface {
	CheckAccess(ctx context.Context, request AccessRequest) (*AccessDecision, error)
	EffectivePermissions(ctx context.Context, requesterID, ownerID, childID string) ([]Permission, error)
	UpdateSettings(ctx context.Context, accountID string, update SettingsUpdate, actor Identity) (*PrivacySettings, error)
	RequestDeletion(ctx context.Context, accountID string, scope DeletionScope, reason string, actor Identity) (*DeletionRequest, error)
	RevokeConsent(ctx context.Context, accountID string, consentType ConsentType, actor Identity) error
	ConsentHistory(ctx context.Context, accountID string, actor Identity) ([]ConsentRecord, error)
	CreateGrant(ctx context.Context, grant *AccessGrant, actor Identity) (*AccessGrant, error)
	RevokeGrant(ctx context.Context, ownerID, grantID string, actor Identity) error
	GenerateAuditReport(ctx context.Context, accountID string, from, to time.Time, filters ReportFilters, actor Identity) (*AuditReport, error)
	RecordActivity(ctx context.Context, accountID string) error
}

// PrivacyLogic composes the authorization engine, conflict resolver,
// lifecycle manager and auditor into the privacy governance service. All
// collaborators are constructor injected; there is no hidden shared state.
type PrivacyLogic struct {
	Store    GrantStore
	Identity IdentityProvider
	Notifier NotificationSink
	Config   PrivacyLogicConfig

	Authz     *AuthorizationEngine
	Lifecycle *LifecycleManager
	Auditor   *Auditor
	Limiter   *FixedWindowLimiter
}

var instance *PrivacyLogic
var oneEngine sync.Once

func logger() *logrus.Entry {
	return logrus.StandardLogger().WithField("module", "privacy-logic")
}

// PrivacyLogicInstance returns the engine-wide instance. Components are wired
// in Start; tests construct PrivacyLogic values directly instead.
func PrivacyLogicInstance() *PrivacyLogic {
	oneEngine.Do(func() {
		instance = &PrivacyLogic{Config: DefaultConfig()}
	})
	return instance
}

func (pl *PrivacyLogic) Configure() error {
	if pl.Config.RateWindow <= 0 {
		pl.Config.RateWindow = time.Minute
	}
	if pl.Config.DeletionSweepInterval <= 0 {
		pl.Config.DeletionSweepInterval = time.Hour
	}
	if pl.Config.RetentionSweepInterval <= 0 {
		pl.Config.RetentionSweepInterval = 24 * time.Hour
	}
	return nil
}

// Start wires the components around the already-injected collaborators.
func (pl *PrivacyLogic) Start() error {
	if pl.Store == nil {
		return errors.New("privacy-logic started without a grant store")
	}
	pl.Auditor = NewAuditor(pl.Store)
	pl.Authz = NewAuthorizationEngine(pl.Store)
	pl.Lifecycle = NewLifecycleManager(pl.Store, pl.Notifier, pl.Auditor)
	pl.Limiter = NewFixedWindowLimiter(pl.Config.RateLimit, pl.Config.RateWindow)
	return nil
}

func (pl *PrivacyLogic) Shutdown() error {
	return nil
}

// RunSweeps runs the periodic lifecycle sweeps until the context is
// cancelled. It blocks, so it should be launched in a separate goroutine. The
// sweeps are idempotent: overlapping or repeated runs reconcile to the same
// state.
func (pl *PrivacyLogic) RunSweeps(ctx context.Context) {
	deletionTicker := time.NewTicker(pl.Config.DeletionSweepInterval)
	defer deletionTicker.Stop()
	retentionTicker := time.NewTicker(pl.Config.RetentionSweepInterval)
	defer retentionTicker.Stop()

	logger().Info("lifecycle sweeps started")
	for {
		select {
		case <-ctx.Done():
			logger().Info("lifecycle sweeps stopped")
			return
		case <-deletionTicker.C:
			if err := pl.Lifecycle.ProcessScheduledDeletions(ctx); err != nil {
				logger().WithError(err).Error("scheduled-deletion sweep failed")
			}
			if err := pl.Lifecycle.SweepExpiredGrants(ctx); err != nil {
				logger().WithError(err).Error("grant-expiry sweep failed")
			}
		case <-retentionTicker.C:
			if err := pl.Lifecycle.RunRetentionSweep(ctx); err != nil {
				logger().WithError(err).Error("retention sweep failed")
			}
		}
	}
}

// AccessRequest describes one access decision to make.
type AccessRequest struct {
	RequesterID string     `json:"requesterId"`
	OwnerID     string     `json:"ownerId"`
	Permission  Permission `json:"permission"`
	ChildID     string     `json:"childId,omitempty"`
	IPAddress   string     `json:"ipAddress,omitempty"`
	UserAgent   string     `json:"userAgent,omitempty"`
}

// AccessDecision is the outcome of an access check.
type AccessDecision struct {
	Allowed     bool         `json:"allowed"`
	Result      AccessResult `json:"result"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// CheckAccess runs the full decision pipeline: rate limit, pure authorization
// decision, exactly one audit entry with the matching result, and temporary
// grant use accounting on allowed decisions. Store failures fail closed.
func (pl *PrivacyLogic) CheckAccess(ctx context.Context, request AccessRequest) (*AccessDecision, error) {
	entry := AccessLog{
		AccountID:    request.OwnerID,
		ActorID:      request.RequesterID,
		ActorType:    actorTypeFor(request.RequesterID, request.OwnerID),
		Action:       ActionAccessCheck,
		ResourceType: "permission",
		ResourceID:   string(request.Permission),
		ChildID:      request.ChildID,
		IPAddress:    request.IPAddress,
		UserAgent:    request.UserAgent,
	}

	if !pl.Limiter.Allow(request.OwnerID, ActionAccessCheck) {
		entry.Result = ResultDenied
		entry.Detail = "rate limited"
		pl.Auditor.LogAction(ctx, entry)
		accessDecisions.WithLabelValues(string(ResultDenied)).Inc()
		return &AccessDecision{Allowed: false, Result: ResultDenied},
			fmt.Errorf("%w: too many access checks for this account", ErrRateLimited)
	}

	permissions, err := pl.Authz.EffectivePermissions(ctx, request.RequesterID, request.OwnerID, request.ChildID)
	if err != nil {
		entry.Result = ResultError
		entry.Detail = err.Error()
		pl.Auditor.LogAction(ctx, entry)
		accessDecisions.WithLabelValues(string(ResultError)).Inc()
		return &AccessDecision{Allowed: false, Result: ResultError}, err
	}

	allowed := permissions.Has(request.Permission)
	result := ResultDenied
	if allowed {
		result = ResultAllowed
	}
	entry.Result = result
	pl.Auditor.LogAction(ctx, entry)
	accessDecisions.WithLabelValues(string(result)).Inc()

	if allowed && request.RequesterID != request.OwnerID {
		pl.recordTemporaryGrantUse(ctx, request.RequesterID, request.OwnerID)
	}

	return &AccessDecision{Allowed: allowed, Result: result, Permissions: permissions.List()}, nil
}

// recordTemporaryGrantUse advances the use counter of every valid temporary
// grant that backed an allowed decision. The increment is atomic in the store
// so concurrent allowed checks cannot push a counter past its limit. Best
// effort: a failed counter update never turns an allowed decision into an
// error.
func (pl *PrivacyLogic) recordTemporaryGrantUse(ctx context.Context, requesterID, ownerID string) {
	grants, err := pl.Authz.ValidTemporaryGrants(ctx, requesterID, ownerID)
	if err != nil {
		logger().WithError(err).Warn("could not list temporary grants for use accounting")
		return
	}
	for _, grant := range grants {
		if err := pl.Store.IncrementGrantUse(ctx, grant.ID); err != nil {
			logger().WithError(err).WithField("grant", grant.ID).Warn("could not advance temporary grant use count")
		}
	}
}

func actorTypeFor(requesterID, ownerID string) ActorType {
	if requesterID == ownerID {
		return ActorAccountHolder
	}
	return ActorFamilyMember
}

// requirePrivacyPermission gates privacy-sensitive operations on an account.
// The account holder always passes; anyone else needs the given effective
// permission. Denials are audited with the attempted action, and store
// failures fail closed.
func (pl *PrivacyLogic) requirePrivacyPermission(ctx context.Context, actor Identity, accountID string, required Permission, action string) error {
	if actor.UserID == accountID {
		return nil
	}
	permissions, err := pl.Authz.EffectivePermissions(ctx, actor.UserID, accountID, "")
	if err != nil {
		return err
	}
	if permissions.Has(required) {
		return nil
	}
	pl.Auditor.LogAction(ctx, AccessLog{
		AccountID:    accountID,
		ActorID:      actor.UserID,
		ActorType:    ActorFamilyMember,
		Action:       action,
		ResourceType: "permission",
		ResourceID:   string(required),
		Result:       ResultDenied,
		Detail:       fmt.Sprintf("missing %s", required),
	})
	return fmt.Errorf("%w: %s requires the %s permission on this account", ErrAuthorizationDenied, action, required)
}

// EffectivePermissions returns the sorted effective permission list.
func (pl *PrivacyLogic) EffectivePermissions(ctx context.Context, requesterID, ownerID, childID string) ([]Permission, error) {
	permissions, err := pl.Authz.EffectivePermissions(ctx, requesterID, ownerID, childID)
	if err != nil {
		return nil, err
	}
	return permissions.List(), nil
}

func (pl *PrivacyLogic) UpdateSettings(ctx context.Context, accountID string, update SettingsUpdate, actor Identity) (*PrivacySettings, error) {
	if err := pl.requirePrivacyPermission(ctx, actor, accountID, PermissionManagePrivacy, ActionSettingsUpdate); err != nil {
		return nil, err
	}
	return pl.Lifecycle.UpdateSettings(ctx, accountID, update, actor)
}

func (pl *PrivacyLogic) RequestDeletion(ctx context.Context, accountID string, scope DeletionScope, reason string, actor Identity) (*DeletionRequest, error) {
	if err := pl.requirePrivacyPermission(ctx, actor, accountID, PermissionManagePrivacy, ActionDeletionRequest); err != nil {
		return nil, err
	}
	return pl.Lifecycle.RequestDeletion(ctx, accountID, scope, reason, actor)
}

func (pl *PrivacyLogic) RevokeConsent(ctx context.Context, accountID string, consentType ConsentType, actor Identity) error {
	if err := pl.requirePrivacyPermission(ctx, actor, accountID, PermissionManagePrivacy, ActionConsentRevoked); err != nil {
		return err
	}
	return pl.Lifecycle.RevokeConsent(ctx, accountID, consentType, actor)
}

func (pl *PrivacyLogic) ConsentHistory(ctx context.Context, accountID string, actor Identity) ([]ConsentRecord, error) {
	if err := pl.requirePrivacyPermission(ctx, actor, accountID, PermissionManagePrivacy, ActionConsentViewed); err != nil {
		return nil, err
	}
	history, err := pl.Store.ConsentHistory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: reading consent history: %v", ErrStoreUnavailable, err)
	}
	return history, nil
}

func (pl *PrivacyLogic) GenerateAuditReport(ctx context.Context, accountID string, from, to time.Time, filters ReportFilters, actor Identity) (*AuditReport, error) {
	if err := pl.requirePrivacyPermission(ctx, actor, accountID, PermissionExportData, ActionExportData); err != nil {
		return nil, err
	}
	return pl.Auditor.GenerateAuditReport(ctx, accountID, from, to, filters, actor)
}

// CreateGrant validates and stores a new access grant and audits its creation.
// Only the account holder, or a delegate holding manage_privacy, may issue
// grants on the account.
func (pl *PrivacyLogic) CreateGrant(ctx context.Context, grant *AccessGrant, actor Identity) (*AccessGrant, error) {
	if grant.OwnerID == "" || grant.GranteeID == "" {
		return nil, fmt.Errorf("%w: grant requires owner and grantee", ErrValidation)
	}
	if err := pl.requirePrivacyPermission(ctx, actor, grant.OwnerID, PermissionManagePrivacy, ActionGrantCreated); err != nil {
		return nil, err
	}
	if grant.OwnerID == grant.GranteeID {
		return nil, fmt.Errorf("%w: the owner does not need a grant on their own data", ErrValidation)
	}
	switch grant.Type {
	case GrantTypeFamilyMember, GrantTypeProvider:
	case GrantTypeTemporary:
		if grant.MaxAccessCount <= 0 && grant.ExpiresAt == nil {
			return nil, fmt.Errorf("%w: a temporary grant needs an expiry or a use limit", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown grant type %q", ErrValidation, grant.Type)
	}
	if len(grant.Permissions) == 0 {
		return nil, fmt.Errorf("%w: grant carries no permissions", ErrValidation)
	}
	for _, p := range grant.Permissions {
		if !knownPermission(p) {
			return nil, fmt.Errorf("%w: unknown permission %q", ErrValidation, p)
		}
	}

	grant.ID = uuid.NewV4().String()
	grant.Active = true
	grant.AccessCount = 0
	grant.CreatedAt = time.Now()
	if pl.Authz != nil && pl.Authz.Now != nil {
		grant.CreatedAt = pl.Authz.Now()
	}

	if err := pl.Store.PutGrant(ctx, grant); err != nil {
		return nil, fmt.Errorf("%w: storing grant: %v", ErrStoreUnavailable, err)
	}

	pl.Auditor.LogAction(ctx, AccessLog{
		AccountID:    grant.OwnerID,
		ActorID:      actor.UserID,
		ActorType:    actorTypeFor(actor.UserID, grant.OwnerID),
		Action:       ActionGrantCreated,
		ResourceType: "access_grant",
		ResourceID:   grant.ID,
		Result:       ResultAllowed,
		Detail:       fmt.Sprintf("%s grant for %s", grant.Type, grant.GranteeID),
	})
	return grant, nil
}

// RevokeGrant deactivates a grant. Only the grant's owner may revoke it.
func (pl *PrivacyLogic) RevokeGrant(ctx context.Context, ownerID, grantID string, actor Identity) error {
	grant, err := pl.Store.GetGrant(ctx, grantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: loading grant: %v", ErrStoreUnavailable, err)
	}
	if grant.OwnerID != ownerID {
		pl.Auditor.LogAction(ctx, AccessLog{
			AccountID:    grant.OwnerID,
			ActorID:      actor.UserID,
			ActorType:    ActorFamilyMember,
			Action:       ActionGrantRevoked,
			ResourceType: "access_grant",
			ResourceID:   grantID,
			Result:       ResultDenied,
			Detail:       "revocation attempted by non-owner",
		})
		return fmt.Errorf("%w: only the owner can revoke a grant", ErrAuthorizationDenied)
	}

	grant.Active = false
	if err := pl.Store.PutGrant(ctx, grant); err != nil {
		return fmt.Errorf("%w: storing grant: %v", ErrStoreUnavailable, err)
	}

	pl.Auditor.LogAction(ctx, AccessLog{
		AccountID:    ownerID,
		ActorID:      actor.UserID,
		ActorType:    ActorAccountHolder,
		Action:       ActionGrantRevoked,
		ResourceType: "access_grant",
		ResourceID:   grantID,
		Result:       ResultAllowed,
	})
	return nil
}

// RecordActivity updates the account's last-activity timestamp, feeding the
// inactivity half of the retention sweep.
func (pl *PrivacyLogic) RecordActivity(ctx context.Context, accountID string) error {
	at := time.Now()
	if pl.Lifecycle != nil && pl.Lifecycle.Now != nil {
		at = pl.Lifecycle.Now()
	}
	if err := pl.Store.TouchAccountActivity(ctx, accountID, at); err != nil {
		return fmt.Errorf("%w: touching account activity: %v", ErrStoreUnavailable, err)
	}
	return nil
}
