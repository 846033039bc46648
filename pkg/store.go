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
	"time"
)

// Error taxonomy. Callers match with errors.Is; everything store-shaped wraps
// ErrStoreUnavailable so authorization can fail closed on it.
var (
	// ErrAuthorizationDenied means the requester lacks permission. Never retried.
	ErrAuthorizationDenied = errors.New("authorization denied")
	// ErrValidation means a malformed or illegal settings update was rejected
	// before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrLegalHoldBlocked means the operation is refused while a hold is active.
	ErrLegalHoldBlocked = errors.New("blocked by legal hold")
	// ErrNotFound means the referenced grant, request or account is absent.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable means a collaborator failed. Authorization treats it
	// as deny, deletion sweeps mark the affected request failed.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrRateLimited means the fixed-window limit for the action class was
	// exceeded. The request is rejected, never delayed.
	ErrRateLimited = errors.New("rate limited")
	// ErrDeletionOutstanding rejects a new deletion request while another one
	// is still pending, scheduled, blocked or running for the account.
	ErrDeletionOutstanding = errors.New("deletion request already outstanding")
)

// GrantStore is the durable document store holding grants, settings, consent
// history, deletion requests, legal holds, audit entries, and account
// metadata. It is assumed eventually consistent but read-your-writes for the
// acting process.
type GrantStore interface {
	GetPrivacySettings(ctx context.Context, accountID string) (*PrivacySettings, error)
	PutPrivacySettings(ctx context.Context, settings *PrivacySettings) error

	GetGrant(ctx context.Context, id string) (*AccessGrant, error)
	PutGrant(ctx context.Context, grant *AccessGrant) error
	// IncrementGrantUse atomically advances the grant's use counter, but never
	// past its use limit. Incrementing an exhausted or inactive grant is a
	// no-op, not an error.
	IncrementGrantUse(ctx context.Context, id string) error
	// GrantsFor returns all grants (valid or not) from ownerID to granteeID.
	GrantsFor(ctx context.Context, ownerID, granteeID string) ([]AccessGrant, error)
	GrantsByOwner(ctx context.Context, ownerID string) ([]AccessGrant, error)
	// ExpiredActiveGrants returns grants still marked active whose expiry lies
	// at or before asOf, across all accounts. Feeds the mark-inactive sweep.
	ExpiredActiveGrants(ctx context.Context, asOf time.Time) ([]AccessGrant, error)

	AppendConsent(ctx context.Context, record ConsentRecord) error
	ConsentHistory(ctx context.Context, accountID string) ([]ConsentRecord, error)

	PutDeletionRequest(ctx context.Context, request *DeletionRequest) error
	// DeletionRequestsByStatus returns requests in any of the given statuses
	// across all accounts.
	DeletionRequestsByStatus(ctx context.Context, statuses ...DeletionStatus) ([]DeletionRequest, error)
	DeletionRequestsForAccount(ctx context.Context, accountID string, statuses ...DeletionStatus) ([]DeletionRequest, error)

	ActiveLegalHolds(ctx context.Context, accountID string) ([]LegalHold, error)

	AppendAccessLog(ctx context.Context, entry AccessLog) error
	AccessLogs(ctx context.Context, accountID string, from, to time.Time) ([]AccessLog, error)

	Accounts(ctx context.Context) ([]AccountMeta, error)
	TouchAccountActivity(ctx context.Context, accountID string, at time.Time) error

	// PurgeCollection deletes all of the account's documents in the collection
	// and returns the identifiers of the removed records.
	PurgeCollection(ctx context.Context, accountID string, collection Collection) ([]string, error)
}

// IdentityProvider verifies bearer tokens into identities.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NotificationSink is the fire-and-forget propagation channel used by consent
// revocation. Failures are logged by the caller, never escalated.
type NotificationSink interface {
	Send(ctx context.Context, notificationType string, payload map[string]interface{}) error
}
