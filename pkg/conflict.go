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
	"sort"

	"github.com/samber/lo"
)

// ConflictResolver merges family-wide privacy settings with per-child
// overrides. Every merge rule is a commutative fold (intersection, minimum,
// OR), so the outcome does not depend on child iteration order.
type ConflictResolver struct{}

// ResolveChildAccess narrows a requested permission set against one child's
// settings:
//  1. inheritFromParent: family settings are already authoritative, the set
//     passes through unchanged.
//  2. restrictedAccess without the requester on the allow list: empty set.
//  3. customPermissions for the requester: intersection with that list.
//  4. otherwise: unchanged.
func (ConflictResolver) ResolveChildAccess(child ChildPrivacySettings, requesterID string, requested PermissionSet) PermissionSet {
	if child.InheritFromParent {
		return requested
	}
	if child.RestrictedAccess && !child.AllowsUser(requesterID) {
		return NewPermissionSet()
	}
	if custom, ok := child.CustomPermissions[requesterID]; ok {
		return requested.Intersect(NewPermissionSet(custom...))
	}
	return requested
}

// MultiChildResolution is the most-restrictive merge of several children's
// settings for one operation.
type MultiChildResolution struct {
	Permissions           PermissionSet
	Retention             DataRetentionSettings
	BlockedCommunications []CommunicationType
}

// CommunicationBlocked reports whether the merged result blocks the category.
func (r MultiChildResolution) CommunicationBlocked(t CommunicationType) bool {
	return lo.Contains(r.BlockedCommunications, t)
}

// ResolveMultiChild applies single-child resolution independently per child
// and merges most-restrictive-wins: permission sets intersect, retention and
// inactivity periods take the numeric minimum, deletion flags OR together, and
// a communication type restricted by any non-inheriting child is blocked for
// the whole operation. Children without stored settings inherit from the
// parent and restrict nothing.
func (cr ConflictResolver) ResolveMultiChild(settings PrivacySettings, childIDs []string, requesterID string, requested PermissionSet) MultiChildResolution {
	resolution := MultiChildResolution{
		Permissions: requested,
		Retention:   settings.DataRetention,
	}

	var blocked []CommunicationType
	for _, childID := range lo.Uniq(childIDs) {
		child, ok := settings.ChildSpecific[childID]
		if !ok {
			continue
		}

		resolution.Permissions = resolution.Permissions.Intersect(cr.ResolveChildAccess(child, requesterID, requested))

		if child.InheritFromParent {
			continue
		}
		blocked = append(blocked, child.CommunicationRestrictions...)
		if child.DataRetentionOverride != nil {
			resolution.Retention = mergeRetention(resolution.Retention, *child.DataRetentionOverride)
		}
	}

	blocked = lo.Uniq(blocked)
	sort.Slice(blocked, func(i, j int) bool { return blocked[i] < blocked[j] })
	resolution.BlockedCommunications = blocked

	return resolution
}

// mergeRetention folds two retention policies into the more restrictive one:
// minimum periods, OR'd deletion flags. Zero-valued periods mean "unset" and
// never win the minimum.
func mergeRetention(a, b DataRetentionSettings) DataRetentionSettings {
	return DataRetentionSettings{
		RetentionPeriodMonths:  minPositive(a.RetentionPeriodMonths, b.RetentionPeriodMonths),
		AutomaticDeletion:      a.AutomaticDeletion || b.AutomaticDeletion,
		DeleteAfterInactivity:  a.DeleteAfterInactivity || b.DeleteAfterInactivity,
		InactivityPeriodMonths: minPositive(a.InactivityPeriodMonths, b.InactivityPeriodMonths),
	}
}

func minPositive(a, b int) int {
	if a <= 0 {
		return b
	}
	if b <= 0 {
		return a
	}
	if a < b {
		return a
	}
	return b
}
