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

	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// Suspicious-activity heuristics over a trailing window.
const (
	// DefaultDetectionWindow is the trailing period a scan covers.
	DefaultDetectionWindow = 7 * 24 * time.Hour

	failedAttemptsThreshold     = 6
	failedAttemptsHighThreshold = 10
	offHoursThreshold           = 3
	bulkExportThreshold         = 3
	sharedAddressThreshold      = 3

	offHoursMorning = 6
	offHoursEvening = 22
)

// FindingType names a suspicious-activity pattern.
type FindingType string

const (
	FindingMultipleFailedAttempts FindingType = "multiple_failed_attempts"
	FindingOffHoursAccess         FindingType = "off_hours_access"
	FindingBulkDataAccess         FindingType = "bulk_data_access"
	FindingUnusualAccessPattern   FindingType = "unusual_access_pattern"
)

// Severity grades a finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding is one detected suspicious pattern, referencing the audit entries
// that contributed to it.
type Finding struct {
	Type        FindingType `json:"type"`
	Severity    Severity    `json:"severity"`
	AccountID   string      `json:"accountId"`
	Description string      `json:"description"`
	EntryIDs    []string    `json:"entryIds"`
	DetectedAt  time.Time   `json:"detectedAt"`
}

// ReportFilters narrows an audit report to matching entries. Empty fields match everything.
type ReportFilters struct {
	ActorID string `json:"actorId,omitempty"`
	Action  string `json:"action,omitempty"`
	ChildID string `json:"childId,omitempty"`
}

// ReportSummary aggregates a report's log slice.
type ReportSummary struct {
	TotalActions         int            `json:"totalActions"`
	UniqueActors         int            `json:"uniqueActors"`
	MostAccessedResource string         `json:"mostAccessedResource,omitempty"`
	ActionCounts         map[string]int `json:"actionCounts"`
	Findings             []Finding      `json:"findings,omitempty"`
}

// AuditReport is a filtered log slice plus its summary. Rendering it into a
// downloadable artifact is someone else's job.
type AuditReport struct {
	AccountID   string        `json:"accountId"`
	From        time.Time     `json:"from"`
	To          time.Time     `json:"to"`
	Filters     ReportFilters `json:"filters"`
	Entries     []AccessLog   `json:"entries"`
	Summary     ReportSummary `json:"summary"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// Auditor appends the tamper-evident access trail and scans it for anomalous
// patterns.
type Auditor struct {
	Store GrantStore

	// Window is the trailing period DetectSuspiciousActivity covers; defaults
	// to DefaultDetectionWindow.
	Window time.Duration
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

func NewAuditor(store GrantStore) *Auditor {
	return &Auditor{Store: store, Window: DefaultDetectionWindow, Now: time.Now}
}

func (a *Auditor) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Auditor) window() time.Duration {
	if a.Window > 0 {
		return a.Window
	}
	return DefaultDetectionWindow
}

func auditFailureLogger() *logrus.Entry {
	return logrus.StandardLogger().WithFields(logrus.Fields{
		"module":  "privacy-logic",
		"channel": "audit-failure",
	})
}

// LogAction appends an access log entry, assigning its id and timestamp when
// absent. An append failure never aborts the triggering operation: it is
// swallowed here and escalated to the audit-failure channel and the failure
// counter instead. Audit failures are never silent.
func (a *Auditor) LogAction(ctx context.Context, entry AccessLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewV4().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = a.now()
	}
	if entry.ActorType == "" {
		entry.ActorType = ActorSystem
	}

	if err := a.Store.AppendAccessLog(ctx, entry); err != nil {
		auditAppendFailures.Inc()
		auditFailureLogger().WithError(err).
			WithField("action", entry.Action).
			WithField("account", entry.AccountID).
			Error("could not append access log entry")
		return
	}
	auditEntriesAppended.Inc()
}

// DetectSuspiciousActivity scans the account's trailing window and reports
// findings, each referencing the contributing entries.
func (a *Auditor) DetectSuspiciousActivity(ctx context.Context, accountID string) ([]Finding, error) {
	now := a.now()
	entries, err := a.Store.AccessLogs(ctx, accountID, now.Add(-a.window()), now)
	if err != nil {
		return nil, fmt.Errorf("%w: reading access logs: %v", ErrStoreUnavailable, err)
	}

	var findings []Finding

	if f := a.detectFailedAttempts(accountID, entries, now); f != nil {
		findings = append(findings, *f)
	}
	if f := a.detectOffHoursAccess(accountID, entries, now); f != nil {
		findings = append(findings, *f)
	}
	if f := a.detectBulkExports(accountID, entries, now); f != nil {
		findings = append(findings, *f)
	}
	findings = append(findings, a.detectSharedAddresses(accountID, entries, now)...)

	suspiciousFindings.Add(float64(len(findings)))
	return findings, nil
}

func (a *Auditor) detectFailedAttempts(accountID string, entries []AccessLog, now time.Time) *Finding {
	var denied []string
	for _, entry := range entries {
		if entry.Result == ResultDenied {
			denied = append(denied, entry.ID)
		}
	}
	if len(denied) < failedAttemptsThreshold {
		return nil
	}
	severity := SeverityMedium
	if len(denied) > failedAttemptsHighThreshold {
		severity = SeverityHigh
	}
	return &Finding{
		Type:        FindingMultipleFailedAttempts,
		Severity:    severity,
		AccountID:   accountID,
		Description: fmt.Sprintf("%d denied access attempts in the last %s", len(denied), a.window()),
		EntryIDs:    denied,
		DetectedAt:  now,
	}
}

func (a *Auditor) detectOffHoursAccess(accountID string, entries []AccessLog, now time.Time) *Finding {
	var offHours []string
	for _, entry := range entries {
		hour := entry.Timestamp.Local().Hour()
		if hour < offHoursMorning || hour > offHoursEvening {
			offHours = append(offHours, entry.ID)
		}
	}
	if len(offHours) <= offHoursThreshold {
		return nil
	}
	return &Finding{
		Type:        FindingOffHoursAccess,
		Severity:    SeverityMedium,
		AccountID:   accountID,
		Description: fmt.Sprintf("%d accesses outside %02d:00-%02d:00", len(offHours), offHoursMorning, offHoursEvening),
		EntryIDs:    offHours,
		DetectedAt:  now,
	}
}

func (a *Auditor) detectBulkExports(accountID string, entries []AccessLog, now time.Time) *Finding {
	var exports []string
	for _, entry := range entries {
		if entry.Action == ActionExportData {
			exports = append(exports, entry.ID)
		}
	}
	if len(exports) <= bulkExportThreshold {
		return nil
	}
	return &Finding{
		Type:        FindingBulkDataAccess,
		Severity:    SeverityHigh,
		AccountID:   accountID,
		Description: fmt.Sprintf("%d data exports in the last %s", len(exports), a.window()),
		EntryIDs:    exports,
		DetectedAt:  now,
	}
}

// detectSharedAddresses flags originating addresses used across more distinct
// actor identities than plausible for one household.
func (a *Auditor) detectSharedAddresses(accountID string, entries []AccessLog, now time.Time) []Finding {
	actorsByIP := map[string]map[string]struct{}{}
	entriesByIP := map[string][]string{}
	for _, entry := range entries {
		if entry.IPAddress == "" {
			continue
		}
		if actorsByIP[entry.IPAddress] == nil {
			actorsByIP[entry.IPAddress] = map[string]struct{}{}
		}
		actorsByIP[entry.IPAddress][entry.ActorID] = struct{}{}
		entriesByIP[entry.IPAddress] = append(entriesByIP[entry.IPAddress], entry.ID)
	}

	var findings []Finding
	for ip, actors := range actorsByIP {
		if len(actors) <= sharedAddressThreshold {
			continue
		}
		findings = append(findings, Finding{
			Type:        FindingUnusualAccessPattern,
			Severity:    SeverityHigh,
			AccountID:   accountID,
			Description: fmt.Sprintf("address %s used by %d distinct identities", ip, len(actors)),
			EntryIDs:    entriesByIP[ip],
			DetectedAt:  now,
		})
	}
	return findings
}

// GenerateAuditReport composes a filtered log slice with its summary. Report
// generation is itself privacy relevant and is recorded as an export_data
// action in the account's own trail.
func (a *Auditor) GenerateAuditReport(ctx context.Context, accountID string, from, to time.Time, filters ReportFilters, actor Identity) (*AuditReport, error) {
	entries, err := a.Store.AccessLogs(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: reading access logs: %v", ErrStoreUnavailable, err)
	}

	filtered := make([]AccessLog, 0, len(entries))
	for _, entry := range entries {
		if filters.ActorID != "" && entry.ActorID != filters.ActorID {
			continue
		}
		if filters.Action != "" && entry.Action != filters.Action {
			continue
		}
		if filters.ChildID != "" && entry.ChildID != filters.ChildID {
			continue
		}
		filtered = append(filtered, entry)
	}

	findings, err := a.DetectSuspiciousActivity(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		AccountID:   accountID,
		From:        from,
		To:          to,
		Filters:     filters,
		Entries:     filtered,
		Summary:     summarize(filtered, findings),
		GeneratedAt: a.now(),
	}

	a.LogAction(ctx, AccessLog{
		AccountID:    accountID,
		ActorID:      actor.UserID,
		ActorType:    ActorAccountHolder,
		Action:       ActionExportData,
		ResourceType: "audit_report",
		Result:       ResultAllowed,
		Detail:       fmt.Sprintf("audit report covering %s to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
	})

	return report, nil
}

func summarize(entries []AccessLog, findings []Finding) ReportSummary {
	actors := map[string]struct{}{}
	actionCounts := map[string]int{}
	resourceCounts := map[string]int{}
	for _, entry := range entries {
		actors[entry.ActorID] = struct{}{}
		actionCounts[entry.Action]++
		if entry.ResourceType != "" {
			resourceCounts[entry.ResourceType]++
		}
	}

	var mostAccessed string
	var max int
	for resource, count := range resourceCounts {
		// Tie-break lexicographically so the summary is deterministic.
		if count > max || (count == max && resource < mostAccessed) {
			mostAccessed = resource
			max = count
		}
	}

	return ReportSummary{
		TotalActions:         len(entries),
		UniqueActors:         len(actors),
		MostAccessedResource: mostAccessed,
		ActionCounts:         actionCounts,
		Findings:             findings,
	}
}
