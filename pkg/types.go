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
	"time"
)

// Permission enumerates every action a grantee can be allowed on an owner's data.
type Permission string

const (
	PermissionViewSymptoms     Permission = "view_symptoms"
	PermissionEditSymptoms     Permission = "edit_symptoms"
	PermissionViewMedications  Permission = "view_medications"
	PermissionEditMedications  Permission = "edit_medications"
	PermissionViewDocuments    Permission = "view_documents"
	PermissionUploadDocuments  Permission = "upload_documents"
	PermissionViewAppointments Permission = "view_appointments"
	PermissionEditAppointments Permission = "edit_appointments"
	PermissionExportData       Permission = "export_data"
	PermissionManagePrivacy    Permission = "manage_privacy"
)

// AllPermissions returns every known permission. The account owner holds all of
// them on their own data.
func AllPermissions() []Permission {
	return []Permission{
		PermissionViewSymptoms,
		PermissionEditSymptoms,
		PermissionViewMedications,
		PermissionEditMedications,
		PermissionViewDocuments,
		PermissionUploadDocuments,
		PermissionViewAppointments,
		PermissionEditAppointments,
		PermissionExportData,
		PermissionManagePrivacy,
	}
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(permissions ...Permission) PermissionSet {
	set := PermissionSet{}
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func (s PermissionSet) Empty() bool {
	return len(s) == 0
}

// Union returns a new set containing the permissions of both sets.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	result := PermissionSet{}
	for p := range s {
		result[p] = struct{}{}
	}
	for p := range other {
		result[p] = struct{}{}
	}
	return result
}

// Intersect returns a new set containing only permissions present in both sets.
func (s PermissionSet) Intersect(other PermissionSet) PermissionSet {
	result := PermissionSet{}
	for p := range s {
		if other.Has(p) {
			result[p] = struct{}{}
		}
	}
	return result
}

// List returns the permissions sorted lexicographically so callers get a
// deterministic order regardless of map iteration.
func (s PermissionSet) List() []Permission {
	list := make([]Permission, 0, len(s))
	for p := range s {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// CommunicationType enumerates the communication categories an account can receive.
type CommunicationType string

const (
	CommunicationSecurityAlerts       CommunicationType = "security_alerts"
	CommunicationMedicalReminders     CommunicationType = "medical_reminders"
	CommunicationAppointmentReminders CommunicationType = "appointment_reminders"
	CommunicationMarketing            CommunicationType = "marketing"
	CommunicationNewsletter           CommunicationType = "newsletter"
	CommunicationProductUpdates       CommunicationType = "product_updates"
)

// EssentialCommunications lists the categories that can never be disabled by
// user preference.
func EssentialCommunications() []CommunicationType {
	return []CommunicationType{CommunicationSecurityAlerts, CommunicationMedicalReminders}
}

// IsEssentialCommunication reports whether t may never be turned off.
func IsEssentialCommunication(t CommunicationType) bool {
	for _, essential := range EssentialCommunications() {
		if t == essential {
			return true
		}
	}
	return false
}

// DataSharingSettings controls who the account's medical data may be shared with.
type DataSharingSettings struct {
	ShareWithProviders  bool `json:"shareWithProviders"`
	ShareForResearch    bool `json:"shareForResearch"`
	AnonymizedAnalytics bool `json:"anonymizedAnalytics"`
}

// AccessControlSettings controls how access to sensitive records is mediated.
type AccessControlSettings struct {
	RequireReauthForSensitive bool `json:"requireReauthForSensitive"`
	SessionTimeoutMinutes     int  `json:"sessionTimeoutMinutes"`
}

// DataRetentionSettings controls how long data is kept. RetentionPeriodMonths
// must stay within [12,84] months.
type DataRetentionSettings struct {
	RetentionPeriodMonths  int  `json:"retentionPeriodMonths"`
	AutomaticDeletion      bool `json:"automaticDeletion"`
	DeleteAfterInactivity  bool `json:"deleteAfterInactivity"`
	InactivityPeriodMonths int  `json:"inactivityPeriodMonths"`
}

// CommunicationSettings maps each communication category to whether it is enabled.
type CommunicationSettings map[CommunicationType]bool

// DefaultCommunicationSettings enables the essential categories and appointment
// reminders, everything else off.
func DefaultCommunicationSettings() CommunicationSettings {
	return CommunicationSettings{
		CommunicationSecurityAlerts:       true,
		CommunicationMedicalReminders:     true,
		CommunicationAppointmentReminders: true,
		CommunicationMarketing:            false,
		CommunicationNewsletter:           false,
		CommunicationProductUpdates:       false,
	}
}

// PrivacySettings is the single per-account privacy document. It is mutated
// only through validated settings updates, never directly.
type PrivacySettings struct {
	AccountID      string                          `json:"accountId"`
	DataSharing    DataSharingSettings             `json:"dataSharing"`
	AccessControl  AccessControlSettings           `json:"accessControl"`
	DataRetention  DataRetentionSettings           `json:"dataRetention"`
	Communications CommunicationSettings           `json:"communications"`
	ChildSpecific  map[string]ChildPrivacySettings `json:"childSpecific,omitempty"`
	Version        int                             `json:"version"`
	LastUpdated    time.Time                       `json:"lastUpdated"`
}

// DefaultPrivacySettings returns the settings a new account starts with.
func DefaultPrivacySettings(accountID string, now time.Time) *PrivacySettings {
	return &PrivacySettings{
		AccountID: accountID,
		DataSharing: DataSharingSettings{
			ShareWithProviders: true,
		},
		AccessControl: AccessControlSettings{
			RequireReauthForSensitive: true,
			SessionTimeoutMinutes:     30,
		},
		DataRetention: DataRetentionSettings{
			RetentionPeriodMonths:  84,
			InactivityPeriodMonths: 24,
		},
		Communications: DefaultCommunicationSettings(),
		ChildSpecific:  map[string]ChildPrivacySettings{},
		Version:        1,
		LastUpdated:    now,
	}
}

// ChildPrivacySettings holds per-child overrides of the account-wide settings.
// When InheritFromParent is true all other fields are ignored and the account
// settings are authoritative in full.
type ChildPrivacySettings struct {
	ChildID                   string                  `json:"childId"`
	InheritFromParent         bool                    `json:"inheritFromParent"`
	RestrictedAccess          bool                    `json:"restrictedAccess"`
	AllowedUsers              []string                `json:"allowedUsers,omitempty"`
	CommunicationRestrictions []CommunicationType     `json:"communicationRestrictions,omitempty"`
	CustomPermissions         map[string][]Permission `json:"customPermissions,omitempty"`
	DataRetentionOverride     *DataRetentionSettings  `json:"dataRetentionOverride,omitempty"`
}

// AllowsUser reports whether userID is on the child's allow list.
func (c ChildPrivacySettings) AllowsUser(userID string) bool {
	for _, allowed := range c.AllowedUsers {
		if allowed == userID {
			return true
		}
	}
	return false
}

// RestrictsCommunication reports whether the child blocks the given category.
func (c ChildPrivacySettings) RestrictsCommunication(t CommunicationType) bool {
	for _, restricted := range c.CommunicationRestrictions {
		if restricted == t {
			return true
		}
	}
	return false
}

// GrantType tags the three access grant variants.
type GrantType string

const (
	GrantTypeFamilyMember GrantType = "family_member"
	GrantTypeProvider     GrantType = "provider"
	GrantTypeTemporary    GrantType = "temporary"
)

// AccessGrant authorizes a specific grantee a permission set over an owner's
// data, optionally time- or use-bounded depending on the grant type.
type AccessGrant struct {
	ID             string       `json:"id"`
	OwnerID        string       `json:"ownerId"`
	GranteeID      string       `json:"granteeId"`
	Type           GrantType    `json:"type"`
	Permissions    []Permission `json:"permissions"`
	Active         bool         `json:"active"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
	AccessCount    int          `json:"accessCount,omitempty"`
	MaxAccessCount int          `json:"maxAccessCount,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// Expired reports whether the grant has an expiry in the past.
func (g AccessGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}

// Valid reports whether the grant contributes permissions at the given moment.
// An inactive or expired grant contributes nothing regardless of its listed
// permission set, and a temporary grant stops contributing once it has been
// used MaxAccessCount times.
func (g AccessGrant) Valid(now time.Time) bool {
	if !g.Active {
		return false
	}
	switch g.Type {
	case GrantTypeFamilyMember:
		return true
	case GrantTypeProvider:
		return !g.Expired(now)
	case GrantTypeTemporary:
		if g.Expired(now) {
			return false
		}
		return g.MaxAccessCount <= 0 || g.AccessCount < g.MaxAccessCount
	}
	return false
}

// ConsentType enumerates the consent categories an account holder can grant or revoke.
type ConsentType string

const (
	ConsentDataSharing ConsentType = "data_sharing"
	ConsentResearch    ConsentType = "research_participation"
	ConsentMarketing   ConsentType = "marketing"
	ConsentAnalytics   ConsentType = "analytics"
)

// ConsentRecord is an immutable, append-only entry in the consent history.
type ConsentRecord struct {
	ID          string      `json:"id"`
	AccountID   string      `json:"accountId"`
	ConsentType ConsentType `json:"consentType"`
	Granted     bool        `json:"granted"`
	Timestamp   time.Time   `json:"timestamp"`
	ActorID     string      `json:"actorId"`
	ActorType   ActorType   `json:"actorType"`
}

// DeletionScope selects which data a deletion request covers.
type DeletionScope string

const (
	ScopeFullAccount    DeletionScope = "full_account"
	ScopeMedicalRecords DeletionScope = "medical_records"
	ScopeDocuments      DeletionScope = "documents"
	ScopeAuditTrail     DeletionScope = "audit_trail"
)

// Collection names a purgeable group of documents in the store.
type Collection string

const (
	CollectionSettings       Collection = "privacy_settings"
	CollectionGrants         Collection = "access_grants"
	CollectionConsents       Collection = "consent_records"
	CollectionMedicalRecords Collection = "medical_records"
	CollectionDocuments      Collection = "documents"
	CollectionAccessLogs     Collection = "access_logs"
)

// CollectionsForScope maps a deletion scope onto the store collections it purges.
func CollectionsForScope(scope DeletionScope) []Collection {
	switch scope {
	case ScopeFullAccount:
		return []Collection{
			CollectionMedicalRecords,
			CollectionDocuments,
			CollectionGrants,
			CollectionConsents,
			CollectionSettings,
		}
	case ScopeMedicalRecords:
		return []Collection{CollectionMedicalRecords}
	case ScopeDocuments:
		return []Collection{CollectionDocuments}
	case ScopeAuditTrail:
		return []Collection{CollectionAccessLogs}
	}
	return nil
}

// DeletionStatus is the deletion request state machine:
// pending -> scheduled -> in_progress -> completed | failed, with
// blocked_legal_hold reachable from any non-terminal state.
type DeletionStatus string

const (
	DeletionPending          DeletionStatus = "pending"
	DeletionScheduled        DeletionStatus = "scheduled"
	DeletionInProgress       DeletionStatus = "in_progress"
	DeletionCompleted        DeletionStatus = "completed"
	DeletionFailed           DeletionStatus = "failed"
	DeletionBlockedLegalHold DeletionStatus = "blocked_legal_hold"
)

// Terminal reports whether the status can no longer change.
func (s DeletionStatus) Terminal() bool {
	return s == DeletionCompleted || s == DeletionFailed
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (s DeletionStatus) CanTransitionTo(next DeletionStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == DeletionBlockedLegalHold {
		return true
	}
	switch s {
	case DeletionPending:
		return next == DeletionScheduled
	case DeletionScheduled:
		return next == DeletionInProgress
	case DeletionInProgress:
		return next == DeletionCompleted || next == DeletionFailed
	case DeletionBlockedLegalHold:
		return next == DeletionScheduled
	}
	return false
}

// DeletionRequest tracks a (possibly automatic) request to delete account data.
type DeletionRequest struct {
	ID               string         `json:"id"`
	AccountID        string         `json:"accountId"`
	Scope            DeletionScope  `json:"scope"`
	Status           DeletionStatus `json:"status"`
	Reason           string         `json:"reason"`
	RequestedAt      time.Time      `json:"requestedAt"`
	ScheduledFor     *time.Time     `json:"scheduledFor,omitempty"`
	CompletedAt      *time.Time     `json:"completedAt,omitempty"`
	LegalHoldBlocked bool           `json:"legalHoldBlocked"`
	AffectedRecords  []string       `json:"affectedRecords,omitempty"`
	Error            string         `json:"error,omitempty"`
	Automatic        bool           `json:"automatic"`
}

// LegalHold suspends all deletion for an account while active.
type LegalHold struct {
	ID                string     `json:"id"`
	AccountID         string     `json:"accountId"`
	Reason            string     `json:"reason"`
	AppliedAt         time.Time  `json:"appliedAt"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
	IsActive          bool       `json:"isActive"`
	AffectedDataTypes []string   `json:"affectedDataTypes,omitempty"`
}

// InForce reports whether the hold blocks deletion at the given moment.
func (h LegalHold) InForce(now time.Time) bool {
	if !h.IsActive {
		return false
	}
	return h.ExpiresAt == nil || h.ExpiresAt.After(now)
}

// ActorType classifies who performed a privacy-relevant action.
type ActorType string

const (
	ActorAccountHolder ActorType = "account_holder"
	ActorFamilyMember  ActorType = "family_member"
	ActorProvider      ActorType = "provider"
	ActorSystem        ActorType = "system"
)

// AccessResult records the outcome of a privacy-relevant action.
type AccessResult string

const (
	ResultAllowed AccessResult = "allowed"
	ResultDenied  AccessResult = "denied"
	ResultError   AccessResult = "error"
)

// Privacy-relevant action names as they appear in the audit trail.
const (
	ActionAccessCheck      = "access_check"
	ActionSettingsUpdate   = "settings_update"
	ActionGrantCreated     = "grant_created"
	ActionGrantRevoked     = "grant_revoked"
	ActionConsentRevoked   = "consent_revoked"
	ActionConsentViewed    = "consent_viewed"
	ActionDeletionRequest  = "deletion_requested"
	ActionDeletionExecuted = "deletion_executed"
	ActionExportData       = "export_data"
)

// AccessLog is an immutable append-only audit entry.
type AccessLog struct {
	ID           string       `json:"id"`
	AccountID    string       `json:"accountId"`
	ActorID      string       `json:"actorId"`
	ActorType    ActorType    `json:"actorType"`
	Action       string       `json:"action"`
	ResourceType string       `json:"resourceType"`
	ResourceID   string       `json:"resourceId,omitempty"`
	ChildID      string       `json:"childId,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	Result       AccessResult `json:"result"`
	IPAddress    string       `json:"ipAddress,omitempty"`
	UserAgent    string       `json:"userAgent,omitempty"`
	Detail       string       `json:"detail,omitempty"`
}

// AccountMeta is the account-level metadata the retention sweep evaluates.
type AccountMeta struct {
	AccountID      string    `json:"accountId"`
	CreatedAt      time.Time `json:"createdAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// Identity is a verified user identity as supplied by the identity provider.
type Identity struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}
