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
)

// AuthorizationEngine computes effective permission sets and yes/no access
// decisions. Decision computation is pure: no audit entries are written here,
// callers record the outcome themselves.
type AuthorizationEngine struct {
	Store    GrantStore
	Resolver ConflictResolver

	// Now is the clock used for expiry checks; defaults to time.Now.
	Now func() time.Time
}

func NewAuthorizationEngine(store GrantStore) *AuthorizationEngine {
	return &AuthorizationEngine{Store: store, Now: time.Now}
}

func (e *AuthorizationEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// EffectivePermissions returns the permission set requesterID holds on
// ownerID's data. Grants are additive: permissions from every currently valid
// grant are unioned, not first-matched. When childID is given the unioned set
// is passed through the child conflict resolver, and an empty result there
// denies access even if family-level grants allowed it.
//
// Any store failure fails closed: the empty set is returned together with an
// error wrapping ErrStoreUnavailable.
func (e *AuthorizationEngine) EffectivePermissions(ctx context.Context, requesterID, ownerID, childID string) (PermissionSet, error) {
	// The account owner always holds every permission on their own data.
	if requesterID == ownerID {
		return NewPermissionSet(AllPermissions()...), nil
	}

	grants, err := e.Store.GrantsFor(ctx, ownerID, requesterID)
	if err != nil {
		return NewPermissionSet(), fmt.Errorf("%w: listing grants: %v", ErrStoreUnavailable, err)
	}

	now := e.now()
	permissions := NewPermissionSet()
	for _, grant := range grants {
		if grant.Valid(now) {
			permissions = permissions.Union(NewPermissionSet(grant.Permissions...))
		}
	}

	if childID != "" && !permissions.Empty() {
		settings, err := e.Store.GetPrivacySettings(ctx, ownerID)
		if err != nil {
			return NewPermissionSet(), fmt.Errorf("%w: loading privacy settings: %v", ErrStoreUnavailable, err)
		}
		if child, ok := settings.ChildSpecific[childID]; ok {
			permissions = e.Resolver.ResolveChildAccess(child, requesterID, permissions)
		}
	}

	return permissions, nil
}

// HasPermission reports whether requesterID holds the given permission on
// ownerID's data, optionally narrowed to a single child.
func (e *AuthorizationEngine) HasPermission(ctx context.Context, requesterID, ownerID string, permission Permission, childID string) (bool, error) {
	permissions, err := e.EffectivePermissions(ctx, requesterID, ownerID, childID)
	if err != nil {
		return false, err
	}
	return permissions.Has(permission), nil
}

// ValidTemporaryGrants returns the requester's currently valid temporary
// grants on the owner's data. Callers use it to advance use counters after an
// allowed decision.
func (e *AuthorizationEngine) ValidTemporaryGrants(ctx context.Context, requesterID, ownerID string) ([]AccessGrant, error) {
	grants, err := e.Store.GrantsFor(ctx, ownerID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing grants: %v", ErrStoreUnavailable, err)
	}
	now := e.now()
	var temporary []AccessGrant
	for _, grant := range grants {
		if grant.Type == GrantTypeTemporary && grant.Valid(now) {
			temporary = append(temporary, grant)
		}
	}
	return temporary, nil
}
