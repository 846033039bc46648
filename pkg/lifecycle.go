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
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	uuid "github.com/satori/go.uuid"
)

const (
	// DeletionGracePeriod is the delay between a deletion request and its
	// execution, giving the account holder time to cancel.
	DeletionGracePeriod = 30 * 24 * time.Hour

	propagationAttempts = 3
	propagationBackoff  = 5 * time.Second
	propagationTimeout  = 30 * time.Second
)

// LifecycleManager governs deletion requests, retention sweeps, grant expiry
// and consent revocation. Its sweeps are idempotent and safe to run
// concurrently with live authorization checks: a request moving to
// in_progress is persisted before any purge starts.
type LifecycleManager struct {
	Store    GrantStore
	Notifier NotificationSink
	Auditor  *Auditor

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

func NewLifecycleManager(store GrantStore, notifier NotificationSink, auditor *Auditor) *LifecycleManager {
	return &LifecycleManager{Store: store, Notifier: notifier, Auditor: auditor, Now: time.Now}
}

func (m *LifecycleManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// activeHolds returns the holds currently in force for the account.
func (m *LifecycleManager) activeHolds(ctx context.Context, accountID string) ([]LegalHold, error) {
	holds, err := m.Store.ActiveLegalHolds(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing legal holds: %v", ErrStoreUnavailable, err)
	}
	now := m.now()
	inForce := holds[:0]
	for _, hold := range holds {
		if hold.InForce(now) {
			inForce = append(inForce, hold)
		}
	}
	return inForce, nil
}

// outstandingDeletion reports whether the account already has a deletion
// request that has not reached a terminal state.
func (m *LifecycleManager) outstandingDeletion(ctx context.Context, accountID string) (bool, error) {
	requests, err := m.Store.DeletionRequestsForAccount(ctx, accountID,
		DeletionPending, DeletionScheduled, DeletionInProgress, DeletionBlockedLegalHold)
	if err != nil {
		return false, fmt.Errorf("%w: listing deletion requests: %v", ErrStoreUnavailable, err)
	}
	return len(requests) > 0, nil
}

// RequestDeletion creates a deletion request for the account. With an active
// legal hold the request is created directly in blocked_legal_hold; otherwise
// it is scheduled for execution after the grace period. Only one outstanding
// request per account is allowed.
func (m *LifecycleManager) RequestDeletion(ctx context.Context, accountID string, scope DeletionScope, reason string, actor Identity) (*DeletionRequest, error) {
	if CollectionsForScope(scope) == nil {
		return nil, fmt.Errorf("%w: unknown deletion scope %q", ErrValidation, scope)
	}

	outstanding, err := m.outstandingDeletion(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if outstanding {
		m.auditDeletion(ctx, accountID, actor, "", ResultDenied, "deletion already outstanding")
		return nil, fmt.Errorf("%w for this account", ErrDeletionOutstanding)
	}

	holds, err := m.activeHolds(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	request := &DeletionRequest{
		ID:          uuid.NewV4().String(),
		AccountID:   accountID,
		Scope:       scope,
		Reason:      reason,
		RequestedAt: now,
		Automatic:   actor.UserID == "",
	}

	if len(holds) > 0 {
		request.Status = DeletionBlockedLegalHold
		request.LegalHoldBlocked = true
	} else {
		scheduledFor := now.Add(DeletionGracePeriod)
		request.Status = DeletionScheduled
		request.ScheduledFor = &scheduledFor
	}

	if err := m.Store.PutDeletionRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("%w: storing deletion request: %v", ErrStoreUnavailable, err)
	}

	m.auditDeletion(ctx, accountID, actor, request.ID, ResultAllowed, fmt.Sprintf("scope %s, status %s", scope, request.Status))
	return request, nil
}

func (m *LifecycleManager) auditDeletion(ctx context.Context, accountID string, actor Identity, requestID string, result AccessResult, detail string) {
	actorID, actorType := actor.UserID, ActorAccountHolder
	if actorID == "" {
		actorID, actorType = "retention-sweep", ActorSystem
	}
	m.Auditor.LogAction(ctx, AccessLog{
		AccountID:    accountID,
		ActorID:      actorID,
		ActorType:    actorType,
		Action:       ActionDeletionRequest,
		ResourceType: "deletion_request",
		ResourceID:   requestID,
		Result:       result,
		Detail:       detail,
	})
}

// ProcessScheduledDeletions is the periodic deletion sweep. It resumes blocked
// requests whose holds have cleared, re-blocks live requests the moment a hold
// is detected, and executes due requests: in_progress is persisted first so
// concurrent authorization checks never evaluate grants against data being
// purged, then the scope's collections are purged with every affected record
// identifier captured, and the request finalizes to completed or failed. A
// request is never left in_progress.
func (m *LifecycleManager) ProcessScheduledDeletions(ctx context.Context) error {
	sweepRuns.WithLabelValues("scheduled_deletions").Inc()

	requests, err := m.Store.DeletionRequestsByStatus(ctx, DeletionPending, DeletionScheduled, DeletionBlockedLegalHold)
	if err != nil {
		return fmt.Errorf("%w: listing deletion requests: %v", ErrStoreUnavailable, err)
	}

	var sweepErr *multierror.Error
	now := m.now()
	for i := range requests {
		request := requests[i]
		if err := m.reconcileDeletion(ctx, &request, now); err != nil {
			sweepErr = multierror.Append(sweepErr, fmt.Errorf("request %s: %w", request.ID, err))
		}
	}
	return sweepErr.ErrorOrNil()
}

func (m *LifecycleManager) reconcileDeletion(ctx context.Context, request *DeletionRequest, now time.Time) error {
	holds, err := m.activeHolds(ctx, request.AccountID)
	if err != nil {
		return err
	}

	switch {
	case len(holds) > 0 && request.Status != DeletionBlockedLegalHold:
		request.Status = DeletionBlockedLegalHold
		request.LegalHoldBlocked = true
		return m.Store.PutDeletionRequest(ctx, request)

	case len(holds) == 0 && request.Status == DeletionBlockedLegalHold:
		// Holds cleared: resume from scheduled.
		request.Status = DeletionScheduled
		request.LegalHoldBlocked = false
		if request.ScheduledFor == nil {
			scheduledFor := now.Add(DeletionGracePeriod)
			request.ScheduledFor = &scheduledFor
		}
		return m.Store.PutDeletionRequest(ctx, request)

	case len(holds) > 0:
		return nil

	case request.Status == DeletionPending:
		request.Status = DeletionScheduled
		if request.ScheduledFor == nil {
			scheduledFor := now.Add(DeletionGracePeriod)
			request.ScheduledFor = &scheduledFor
		}
		return m.Store.PutDeletionRequest(ctx, request)

	case request.Status == DeletionScheduled && request.ScheduledFor != nil && !request.ScheduledFor.After(now):
		return m.executeDeletion(ctx, request, now)
	}

	return nil
}

func (m *LifecycleManager) executeDeletion(ctx context.Context, request *DeletionRequest, now time.Time) error {
	request.Status = DeletionInProgress
	if err := m.Store.PutDeletionRequest(ctx, request); err != nil {
		return fmt.Errorf("%w: marking request in progress: %v", ErrStoreUnavailable, err)
	}

	var purgeErr *multierror.Error
	var affected []string
	for _, collection := range CollectionsForScope(request.Scope) {
		ids, err := m.Store.PurgeCollection(ctx, request.AccountID, collection)
		affected = append(affected, ids...)
		if err != nil {
			purgeErr = multierror.Append(purgeErr, fmt.Errorf("purging %s: %w", collection, err))
		}
	}

	request.AffectedRecords = affected
	completedAt := m.now()
	request.CompletedAt = &completedAt

	result := ResultAllowed
	if err := purgeErr.ErrorOrNil(); err != nil {
		request.Status = DeletionFailed
		request.Error = err.Error()
		result = ResultError
	} else {
		request.Status = DeletionCompleted
	}

	if err := m.Store.PutDeletionRequest(ctx, request); err != nil {
		return fmt.Errorf("%w: finalizing request: %v", ErrStoreUnavailable, err)
	}

	m.Auditor.LogAction(ctx, AccessLog{
		AccountID:    request.AccountID,
		ActorID:      "deletion-sweep",
		ActorType:    ActorSystem,
		Action:       ActionDeletionExecuted,
		ResourceType: "deletion_request",
		ResourceID:   request.ID,
		Result:       result,
		Detail:       fmt.Sprintf("scope %s, %d records affected", request.Scope, len(affected)),
	})

	return purgeErr.ErrorOrNil()
}

// RunRetentionSweep evaluates automatic retention for every account: with
// automaticDeletion enabled, exceeding the retention period since account
// creation or, when enabled, the inactivity period since last activity
// triggers a machine-generated deletion request, subject to the same
// legal-hold gate as manual requests.
func (m *LifecycleManager) RunRetentionSweep(ctx context.Context) error {
	sweepRuns.WithLabelValues("retention").Inc()

	accounts, err := m.Store.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing accounts: %v", ErrStoreUnavailable, err)
	}

	var sweepErr *multierror.Error
	now := m.now()
	for _, account := range accounts {
		settings, err := m.Store.GetPrivacySettings(ctx, account.AccountID)
		if err != nil {
			sweepErr = multierror.Append(sweepErr, fmt.Errorf("account %s: loading settings: %w", account.AccountID, err))
			continue
		}

		reason := retentionReason(account, settings.DataRetention, now)
		if reason == "" {
			continue
		}

		outstanding, err := m.outstandingDeletion(ctx, account.AccountID)
		if err != nil {
			sweepErr = multierror.Append(sweepErr, fmt.Errorf("account %s: %w", account.AccountID, err))
			continue
		}
		if outstanding {
			continue
		}

		if _, err := m.RequestDeletion(ctx, account.AccountID, ScopeFullAccount, reason, Identity{}); err != nil {
			sweepErr = multierror.Append(sweepErr, fmt.Errorf("account %s: %w", account.AccountID, err))
		}
	}
	return sweepErr.ErrorOrNil()
}

// retentionReason returns the machine-generated deletion reason when either
// retention condition fires, or "" when the account is kept.
func retentionReason(account AccountMeta, retention DataRetentionSettings, now time.Time) string {
	if !retention.AutomaticDeletion {
		return ""
	}
	if retention.RetentionPeriodMonths > 0 &&
		account.CreatedAt.AddDate(0, retention.RetentionPeriodMonths, 0).Before(now) {
		return fmt.Sprintf("automatic: retention period of %d months expired", retention.RetentionPeriodMonths)
	}
	if retention.DeleteAfterInactivity && retention.InactivityPeriodMonths > 0 &&
		account.LastActivityAt.AddDate(0, retention.InactivityPeriodMonths, 0).Before(now) {
		return fmt.Sprintf("automatic: inactive for more than %d months", retention.InactivityPeriodMonths)
	}
	return ""
}

// SweepExpiredGrants marks expired grants inactive and logs each automatic
// revocation. Expiry is already enforced at read time; this sweep exists so
// the revocation shows up in the audit trail.
func (m *LifecycleManager) SweepExpiredGrants(ctx context.Context) error {
	sweepRuns.WithLabelValues("grant_expiry").Inc()

	grants, err := m.Store.ExpiredActiveGrants(ctx, m.now())
	if err != nil {
		return fmt.Errorf("%w: listing expired grants: %v", ErrStoreUnavailable, err)
	}

	var sweepErr *multierror.Error
	for i := range grants {
		grant := grants[i]
		grant.Active = false
		if err := m.Store.PutGrant(ctx, &grant); err != nil {
			sweepErr = multierror.Append(sweepErr, fmt.Errorf("grant %s: %w", grant.ID, err))
			continue
		}
		m.Auditor.LogAction(ctx, AccessLog{
			AccountID:    grant.OwnerID,
			ActorID:      "grant-expiry-sweep",
			ActorType:    ActorSystem,
			Action:       ActionGrantRevoked,
			ResourceType: "access_grant",
			ResourceID:   grant.ID,
			Result:       ResultAllowed,
			Detail:       "grant expired",
		})
	}
	return sweepErr.ErrorOrNil()
}

// RevokeConsent appends a consent record and performs the immediate cessation
// the consent class requires: the matching settings switches are turned off
// synchronously before this call returns, so no further non-essential
// communications of that class are sent afterwards. Propagation to secondary
// systems is fire-and-forget with bounded retry and never blocks the caller.
func (m *LifecycleManager) RevokeConsent(ctx context.Context, accountID string, consentType ConsentType, actor Identity) error {
	record := ConsentRecord{
		ID:          uuid.NewV4().String(),
		AccountID:   accountID,
		ConsentType: consentType,
		Granted:     false,
		Timestamp:   m.now(),
		ActorID:     actor.UserID,
		ActorType:   ActorAccountHolder,
	}
	if err := m.Store.AppendConsent(ctx, record); err != nil {
		return fmt.Errorf("%w: appending consent record: %v", ErrStoreUnavailable, err)
	}

	if err := m.applyConsentCessation(ctx, accountID, consentType); err != nil {
		return err
	}

	m.Auditor.LogAction(ctx, AccessLog{
		AccountID:    accountID,
		ActorID:      actor.UserID,
		ActorType:    ActorAccountHolder,
		Action:       ActionConsentRevoked,
		ResourceType: "consent",
		ResourceID:   record.ID,
		Result:       ResultAllowed,
		Detail:       string(consentType),
	})

	go m.propagateConsentRevocation(accountID, consentType)
	return nil
}

// applyConsentCessation flips the settings switches governed by the consent
// class so the primary system stops immediately.
func (m *LifecycleManager) applyConsentCessation(ctx context.Context, accountID string, consentType ConsentType) error {
	settings, err := m.Store.GetPrivacySettings(ctx, accountID)
	if err != nil {
		return fmt.Errorf("%w: loading privacy settings: %v", ErrStoreUnavailable, err)
	}

	switch consentType {
	case ConsentMarketing:
		if settings.Communications == nil {
			settings.Communications = CommunicationSettings{}
		}
		settings.Communications[CommunicationMarketing] = false
		settings.Communications[CommunicationNewsletter] = false
		settings.Communications[CommunicationProductUpdates] = false
	case ConsentDataSharing:
		settings.DataSharing.ShareWithProviders = false
	case ConsentResearch:
		settings.DataSharing.ShareForResearch = false
	case ConsentAnalytics:
		settings.DataSharing.AnonymizedAnalytics = false
	default:
		return fmt.Errorf("%w: unknown consent type %q", ErrValidation, consentType)
	}

	settings.Version++
	settings.LastUpdated = m.now()
	if err := m.Store.PutPrivacySettings(ctx, settings); err != nil {
		return fmt.Errorf("%w: storing privacy settings: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// propagateConsentRevocation notifies downstream systems that cannot be
// updated synchronously. Failures after the retry budget are logged, not
// escalated; secondary systems reconcile within their bounded window.
func (m *LifecycleManager) propagateConsentRevocation(accountID string, consentType ConsentType) {
	if m.Notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"accountId":   accountID,
		"consentType": string(consentType),
		"revokedAt":   m.now().Format(time.RFC3339),
	}

	var err error
	for attempt := 0; attempt < propagationAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(propagationBackoff)
		}
		ctx, cancel := context.WithTimeout(context.Background(), propagationTimeout)
		err = m.Notifier.Send(ctx, "consent_revoked", payload)
		cancel()
		if err == nil {
			return
		}
	}
	logger().WithError(err).
		WithField("account", accountID).
		WithField("consentType", consentType).
		Error("consent revocation propagation exhausted retries")
}

// UpdateSettings validates and merges a settings update, returning the stored
// document. Nothing is mutated when validation fails.
func (m *LifecycleManager) UpdateSettings(ctx context.Context, accountID string, update SettingsUpdate, actor Identity) (*PrivacySettings, error) {
	if err := update.Validate(); err != nil {
		m.Auditor.LogAction(ctx, AccessLog{
			AccountID:    accountID,
			ActorID:      actor.UserID,
			ActorType:    ActorAccountHolder,
			Action:       ActionSettingsUpdate,
			ResourceType: "privacy_settings",
			Result:       ResultDenied,
			Detail:       err.Error(),
		})
		return nil, err
	}

	settings, err := m.Store.GetPrivacySettings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading privacy settings: %v", ErrStoreUnavailable, err)
	}

	update.ApplyTo(settings, m.now())
	if err := m.Store.PutPrivacySettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("%w: storing privacy settings: %v", ErrStoreUnavailable, err)
	}

	m.Auditor.LogAction(ctx, AccessLog{
		AccountID:    accountID,
		ActorID:      actor.UserID,
		ActorType:    ActorAccountHolder,
		Action:       ActionSettingsUpdate,
		ResourceType: "privacy_settings",
		Result:       ResultAllowed,
		Detail:       fmt.Sprintf("version %d", settings.Version),
	})

	return settings, nil
}
