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
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/voice4victims/privacy-logic/mock"
	"github.com/voice4victims/privacy-logic/pkg"
)

func newTestAuditor(store pkg.GrantStore) *pkg.Auditor {
	auditor := pkg.NewAuditor(store)
	auditor.Now = func() time.Time { return testClock }
	return auditor
}

// deniedEntries returns n denied access_check entries inside business hours.
func deniedEntries(n int) []pkg.AccessLog {
	entries := make([]pkg.AccessLog, n)
	for i := range entries {
		entries[i] = pkg.AccessLog{
			ID:        fmt.Sprintf("denied-%d", i),
			AccountID: "parent-1",
			ActorID:   "uncle-1",
			Action:    pkg.ActionAccessCheck,
			Result:    pkg.ResultDenied,
			Timestamp: testClock.Add(-time.Hour),
		}
	}
	return entries
}

func TestAuditor_LogAction(t *testing.T) {
	ctx := context.Background()

	t.Run("missing id, timestamp and actor type are filled in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		var stored pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				stored = entry
				return nil
			})

		auditor := newTestAuditor(store)
		auditor.LogAction(ctx, pkg.AccessLog{AccountID: "parent-1", Action: pkg.ActionSettingsUpdate, Result: pkg.ResultAllowed})

		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, testClock, stored.Timestamp)
		assert.Equal(t, pkg.ActorSystem, stored.ActorType)
	})

	t.Run("an append failure never reaches the caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(errors.New("disk full"))

		auditor := newTestAuditor(store)
		// Must not panic or error; the failure goes to the audit-failure channel.
		auditor.LogAction(ctx, pkg.AccessLog{AccountID: "parent-1", Action: pkg.ActionAccessCheck, Result: pkg.ResultDenied})
	})
}

func TestAuditor_DetectSuspiciousActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("a clean trail yields no findings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(deniedEntries(2), nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		assert.Empty(t, findings)
	})

	t.Run("six denied attempts raise a medium finding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(deniedEntries(6), nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		if assert.Len(t, findings, 1) {
			assert.Equal(t, pkg.FindingMultipleFailedAttempts, findings[0].Type)
			assert.Equal(t, pkg.SeverityMedium, findings[0].Severity)
			assert.Len(t, findings[0].EntryIDs, 6)
		}
	})

	t.Run("eleven denied attempts raise a high finding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(deniedEntries(11), nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		if assert.Len(t, findings, 1) {
			assert.Equal(t, pkg.SeverityHigh, findings[0].Severity)
		}
	})

	t.Run("more than three off-hours accesses raise a finding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		night := time.Date(2024, 5, 14, 2, 30, 0, 0, time.Local)
		entries := make([]pkg.AccessLog, 4)
		for i := range entries {
			entries[i] = pkg.AccessLog{
				ID:        fmt.Sprintf("night-%d", i),
				AccountID: "parent-1",
				ActorID:   "uncle-1",
				Action:    pkg.ActionAccessCheck,
				Result:    pkg.ResultAllowed,
				Timestamp: night.Add(time.Duration(i) * time.Minute),
			}
		}
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(entries, nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		if assert.Len(t, findings, 1) {
			assert.Equal(t, pkg.FindingOffHoursAccess, findings[0].Type)
		}
	})

	t.Run("more than three exports raise a high bulk finding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		entries := make([]pkg.AccessLog, 4)
		for i := range entries {
			entries[i] = pkg.AccessLog{
				ID:        fmt.Sprintf("export-%d", i),
				AccountID: "parent-1",
				ActorID:   "uncle-1",
				Action:    pkg.ActionExportData,
				Result:    pkg.ResultAllowed,
				Timestamp: testClock.Add(-time.Hour),
			}
		}
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(entries, nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		if assert.Len(t, findings, 1) {
			assert.Equal(t, pkg.FindingBulkDataAccess, findings[0].Type)
			assert.Equal(t, pkg.SeverityHigh, findings[0].Severity)
		}
	})

	t.Run("one address used by more than three identities raises a finding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)

		entries := make([]pkg.AccessLog, 4)
		for i := range entries {
			entries[i] = pkg.AccessLog{
				ID:        fmt.Sprintf("ip-%d", i),
				AccountID: "parent-1",
				ActorID:   fmt.Sprintf("actor-%d", i),
				Action:    pkg.ActionAccessCheck,
				Result:    pkg.ResultAllowed,
				IPAddress: "203.0.113.7",
				Timestamp: testClock.Add(-time.Hour),
			}
		}
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(entries, nil)

		auditor := newTestAuditor(store)
		findings, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.NoError(t, err)
		if assert.Len(t, findings, 1) {
			assert.Equal(t, pkg.FindingUnusualAccessPattern, findings[0].Type)
			assert.Contains(t, findings[0].Description, "203.0.113.7")
		}
	})

	t.Run("an unreadable trail surfaces a store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		auditor := newTestAuditor(store)
		_, err := auditor.DetectSuspiciousActivity(ctx, "parent-1")

		assert.True(t, errors.Is(err, pkg.ErrStoreUnavailable))
	})
}

func TestAuditor_GenerateAuditReport(t *testing.T) {
	ctx := context.Background()
	from := testClock.Add(-24 * time.Hour)
	actor := pkg.Identity{UserID: "parent-1"}

	entries := []pkg.AccessLog{
		{ID: "e1", ActorID: "gran-1", Action: pkg.ActionAccessCheck, ResourceType: "permission", Result: pkg.ResultAllowed, Timestamp: testClock.Add(-2 * time.Hour)},
		{ID: "e2", ActorID: "uncle-1", Action: pkg.ActionAccessCheck, ResourceType: "permission", Result: pkg.ResultDenied, ChildID: "child-1", Timestamp: testClock.Add(-3 * time.Hour)},
		{ID: "e3", ActorID: "gran-1", Action: pkg.ActionSettingsUpdate, ResourceType: "privacy_settings", Result: pkg.ResultAllowed, Timestamp: testClock.Add(-4 * time.Hour)},
	}

	t.Run("filters narrow the entries and the summary counts the remainder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", from, testClock).Return(entries, nil)
		// The detection scan reads its own trailing window.
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(entries, nil)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(nil)

		auditor := newTestAuditor(store)
		report, err := auditor.GenerateAuditReport(ctx, "parent-1", from, testClock, pkg.ReportFilters{ActorID: "gran-1"}, actor)

		assert.NoError(t, err)
		assert.Len(t, report.Entries, 2)
		assert.Equal(t, 2, report.Summary.TotalActions)
		assert.Equal(t, 1, report.Summary.UniqueActors)
		assert.Equal(t, 1, report.Summary.ActionCounts[pkg.ActionAccessCheck])
	})

	t.Run("generating a report is itself recorded as a data export", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		store.EXPECT().AccessLogs(ctx, "parent-1", from, testClock).Return(entries, nil)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(entries, nil)

		var logged pkg.AccessLog
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, entry pkg.AccessLog) error {
				logged = entry
				return nil
			})

		auditor := newTestAuditor(store)
		_, err := auditor.GenerateAuditReport(ctx, "parent-1", from, testClock, pkg.ReportFilters{}, actor)

		assert.NoError(t, err)
		assert.Equal(t, pkg.ActionExportData, logged.Action)
		assert.Equal(t, "audit_report", logged.ResourceType)
		assert.Equal(t, "parent-1", logged.ActorID)
	})

	t.Run("the most accessed resource tie-breaks deterministically", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock.NewMockGrantStore(ctrl)
		tied := []pkg.AccessLog{
			{ID: "t1", ActorID: "gran-1", Action: pkg.ActionAccessCheck, ResourceType: "permission", Timestamp: testClock.Add(-time.Hour)},
			{ID: "t2", ActorID: "gran-1", Action: pkg.ActionSettingsUpdate, ResourceType: "privacy_settings", Timestamp: testClock.Add(-time.Hour)},
		}
		store.EXPECT().AccessLogs(ctx, "parent-1", from, testClock).Return(tied, nil)
		store.EXPECT().AccessLogs(ctx, "parent-1", gomock.Any(), gomock.Any()).Return(tied, nil)
		store.EXPECT().AppendAccessLog(ctx, gomock.Any()).Return(nil)

		auditor := newTestAuditor(store)
		report, err := auditor.GenerateAuditReport(ctx, "parent-1", from, testClock, pkg.ReportFilters{}, actor)

		assert.NoError(t, err)
		assert.Equal(t, "permission", report.Summary.MostAccessedResource)
	})
}
