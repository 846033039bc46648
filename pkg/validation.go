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
	"fmt"
	"time"
)

// Retention periods are bounded in months.
const (
	MinRetentionMonths = 12
	MaxRetentionMonths = 84
)

// SettingsUpdate is a closed, exhaustively validated settings change. Only the
// categories that are set are merged; nil categories stay untouched. It is
// validated in full before any mutation.
type SettingsUpdate struct {
	DataSharing    *DataSharingSettings            `json:"dataSharing,omitempty"`
	AccessControl  *AccessControlSettings          `json:"accessControl,omitempty"`
	DataRetention  *DataRetentionSettings          `json:"dataRetention,omitempty"`
	Communications CommunicationSettings           `json:"communications,omitempty"`
	ChildSpecific  map[string]ChildPrivacySettings `json:"childSpecific,omitempty"`
}

// Validate rejects illegal updates before merge. Essential communications can
// never be set to false; attempts are rejected, not silently coerced.
func (u SettingsUpdate) Validate() error {
	for commType, enabled := range u.Communications {
		if !knownCommunicationType(commType) {
			return fmt.Errorf("%w: unknown communication type %q", ErrValidation, commType)
		}
		if !enabled && IsEssentialCommunication(commType) {
			return fmt.Errorf("%w: %s is essential and cannot be disabled", ErrValidation, commType)
		}
	}

	if u.DataRetention != nil {
		if err := ValidateRetention(*u.DataRetention); err != nil {
			return err
		}
	}

	for childID, child := range u.ChildSpecific {
		if child.ChildID != "" && child.ChildID != childID {
			return fmt.Errorf("%w: child settings keyed by %q carry childId %q", ErrValidation, childID, child.ChildID)
		}
		for _, commType := range child.CommunicationRestrictions {
			if IsEssentialCommunication(commType) {
				return fmt.Errorf("%w: %s is essential and cannot be restricted for a child", ErrValidation, commType)
			}
		}
		for userID, permissions := range child.CustomPermissions {
			for _, p := range permissions {
				if !knownPermission(p) {
					return fmt.Errorf("%w: unknown permission %q for user %s", ErrValidation, p, userID)
				}
			}
		}
		if child.DataRetentionOverride != nil {
			if err := ValidateRetention(*child.DataRetentionOverride); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateRetention enforces the retention bounds: a period within
// [MinRetentionMonths, MaxRetentionMonths] and a positive inactivity period
// whenever inactivity deletion is enabled.
func ValidateRetention(r DataRetentionSettings) error {
	if r.RetentionPeriodMonths < MinRetentionMonths || r.RetentionPeriodMonths > MaxRetentionMonths {
		return fmt.Errorf("%w: retention period must be between %d and %d months, got %d",
			ErrValidation, MinRetentionMonths, MaxRetentionMonths, r.RetentionPeriodMonths)
	}
	if r.DeleteAfterInactivity && r.InactivityPeriodMonths <= 0 {
		return fmt.Errorf("%w: inactivity deletion enabled without an inactivity period", ErrValidation)
	}
	return nil
}

// ApplyTo merges the update into the settings document and bumps its version.
// The update must have been validated first.
func (u SettingsUpdate) ApplyTo(settings *PrivacySettings, now time.Time) {
	if u.DataSharing != nil {
		settings.DataSharing = *u.DataSharing
	}
	if u.AccessControl != nil {
		settings.AccessControl = *u.AccessControl
	}
	if u.DataRetention != nil {
		settings.DataRetention = *u.DataRetention
	}
	if len(u.Communications) > 0 {
		if settings.Communications == nil {
			settings.Communications = CommunicationSettings{}
		}
		for commType, enabled := range u.Communications {
			settings.Communications[commType] = enabled
		}
	}
	if len(u.ChildSpecific) > 0 {
		if settings.ChildSpecific == nil {
			settings.ChildSpecific = map[string]ChildPrivacySettings{}
		}
		for childID, child := range u.ChildSpecific {
			child.ChildID = childID
			settings.ChildSpecific[childID] = child
		}
	}
	settings.Version++
	settings.LastUpdated = now
}

func knownCommunicationType(t CommunicationType) bool {
	switch t {
	case CommunicationSecurityAlerts, CommunicationMedicalReminders,
		CommunicationAppointmentReminders, CommunicationMarketing,
		CommunicationNewsletter, CommunicationProductUpdates:
		return true
	}
	return false
}

func knownPermission(p Permission) bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}
