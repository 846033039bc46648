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

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/voice4victims/privacy-logic/pkg"
)

func (s *Store) AppendConsent(ctx context.Context, record pkg.ConsentRecord) error {
	query := `INSERT INTO consent_records (id, account_id, consent_type, granted, recorded_at, actor_id, actor_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.db.ExecContext(ctx, query,
		record.ID, record.AccountID, record.ConsentType, record.Granted,
		record.Timestamp, record.ActorID, record.ActorType,
	); err != nil {
		return fmt.Errorf("failed to append consent record: %w", err)
	}
	return nil
}

func (s *Store) ConsentHistory(ctx context.Context, accountID string) ([]pkg.ConsentRecord, error) {
	query := `SELECT id, account_id, consent_type, granted, recorded_at, actor_id, actor_type
		FROM consent_records WHERE account_id = $1 ORDER BY recorded_at`
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query consent records: %w", err)
	}
	defer rows.Close()

	var records []pkg.ConsentRecord
	for rows.Next() {
		record := pkg.ConsentRecord{}
		if err := rows.Scan(
			&record.ID, &record.AccountID, &record.ConsentType, &record.Granted,
			&record.Timestamp, &record.ActorID, &record.ActorType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan consent record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const deletionColumns = `id, account_id, scope, status, reason, requested_at, scheduled_for, completed_at, legal_hold_blocked, affected_records, error_detail, automatic`

func scanDeletionRequest(scan func(dest ...interface{}) error) (*pkg.DeletionRequest, error) {
	request := &pkg.DeletionRequest{}
	var scheduledFor, completedAt sql.NullTime
	var affected []byte
	var errDetail sql.NullString
	if err := scan(
		&request.ID, &request.AccountID, &request.Scope, &request.Status, &request.Reason,
		&request.RequestedAt, &scheduledFor, &completedAt, &request.LegalHoldBlocked,
		&affected, &errDetail, &request.Automatic,
	); err != nil {
		return nil, err
	}
	if scheduledFor.Valid {
		request.ScheduledFor = &scheduledFor.Time
	}
	if completedAt.Valid {
		request.CompletedAt = &completedAt.Time
	}
	if len(affected) > 0 {
		if err := json.Unmarshal(affected, &request.AffectedRecords); err != nil {
			return nil, fmt.Errorf("failed to decode affected records: %w", err)
		}
	}
	request.Error = errDetail.String
	return request, nil
}

func (s *Store) PutDeletionRequest(ctx context.Context, request *pkg.DeletionRequest) error {
	affected, err := json.Marshal(request.AffectedRecords)
	if err != nil {
		return fmt.Errorf("failed to encode affected records: %w", err)
	}

	query := `INSERT INTO deletion_requests (` + deletionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = $4, scheduled_for = $7, completed_at = $8,
			legal_hold_blocked = $9, affected_records = $10, error_detail = $11`
	if _, err := s.db.ExecContext(ctx, query,
		request.ID, request.AccountID, request.Scope, request.Status, request.Reason,
		request.RequestedAt, request.ScheduledFor, request.CompletedAt,
		request.LegalHoldBlocked, affected, request.Error, request.Automatic,
	); err != nil {
		return fmt.Errorf("failed to store deletion request: %w", err)
	}
	return nil
}

func (s *Store) queryDeletionRequests(ctx context.Context, query string, args ...interface{}) ([]pkg.DeletionRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deletion requests: %w", err)
	}
	defer rows.Close()

	var requests []pkg.DeletionRequest
	for rows.Next() {
		request, err := scanDeletionRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deletion request: %w", err)
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

func statusStrings(statuses []pkg.DeletionStatus) []string {
	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}
	return out
}

func (s *Store) DeletionRequestsByStatus(ctx context.Context, statuses ...pkg.DeletionStatus) ([]pkg.DeletionRequest, error) {
	query := `SELECT ` + deletionColumns + ` FROM deletion_requests
		WHERE status = ANY($1) ORDER BY requested_at`
	return s.queryDeletionRequests(ctx, query, pq.Array(statusStrings(statuses)))
}

func (s *Store) DeletionRequestsForAccount(ctx context.Context, accountID string, statuses ...pkg.DeletionStatus) ([]pkg.DeletionRequest, error) {
	query := `SELECT ` + deletionColumns + ` FROM deletion_requests
		WHERE account_id = $1 AND status = ANY($2) ORDER BY requested_at`
	return s.queryDeletionRequests(ctx, query, accountID, pq.Array(statusStrings(statuses)))
}

// ActiveLegalHolds lists holds flagged active; the in-force check against the
// expiry belongs to the caller's clock.
func (s *Store) ActiveLegalHolds(ctx context.Context, accountID string) ([]pkg.LegalHold, error) {
	query := `SELECT id, account_id, reason, applied_at, expires_at, is_active, affected_data_types
		FROM legal_holds WHERE account_id = $1 AND is_active ORDER BY applied_at`
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal holds: %w", err)
	}
	defer rows.Close()

	var holds []pkg.LegalHold
	for rows.Next() {
		hold := pkg.LegalHold{}
		var expiresAt sql.NullTime
		var dataTypes []byte
		if err := rows.Scan(
			&hold.ID, &hold.AccountID, &hold.Reason, &hold.AppliedAt,
			&expiresAt, &hold.IsActive, &dataTypes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan legal hold: %w", err)
		}
		if expiresAt.Valid {
			hold.ExpiresAt = &expiresAt.Time
		}
		if len(dataTypes) > 0 {
			if err := json.Unmarshal(dataTypes, &hold.AffectedDataTypes); err != nil {
				return nil, fmt.Errorf("failed to decode affected data types: %w", err)
			}
		}
		holds = append(holds, hold)
	}
	return holds, rows.Err()
}
