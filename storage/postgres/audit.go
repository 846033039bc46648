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
	"fmt"
	"time"

	"github.com/voice4victims/privacy-logic/pkg"
)

// AppendAccessLog inserts one audit entry. Entries are never updated or
// deleted outside an audit_trail purge.
func (s *Store) AppendAccessLog(ctx context.Context, entry pkg.AccessLog) error {
	query := `INSERT INTO access_logs
		(id, account_id, actor_id, actor_type, action, resource_type, resource_id, child_id, occurred_at, result, ip_address, user_agent, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.AccountID, entry.ActorID, entry.ActorType, entry.Action,
		entry.ResourceType, entry.ResourceID, entry.ChildID, entry.Timestamp,
		entry.Result, entry.IPAddress, entry.UserAgent, entry.Detail,
	); err != nil {
		return fmt.Errorf("failed to append access log: %w", err)
	}
	return nil
}

func (s *Store) AccessLogs(ctx context.Context, accountID string, from, to time.Time) ([]pkg.AccessLog, error) {
	query := `SELECT id, account_id, actor_id, actor_type, action, resource_type, resource_id, child_id, occurred_at, result, ip_address, user_agent, detail
		FROM access_logs
		WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at`
	rows, err := s.db.QueryContext(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query access logs: %w", err)
	}
	defer rows.Close()

	var entries []pkg.AccessLog
	for rows.Next() {
		entry := pkg.AccessLog{}
		if err := rows.Scan(
			&entry.ID, &entry.AccountID, &entry.ActorID, &entry.ActorType, &entry.Action,
			&entry.ResourceType, &entry.ResourceID, &entry.ChildID, &entry.Timestamp,
			&entry.Result, &entry.IPAddress, &entry.UserAgent, &entry.Detail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan access log: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// purgeTables maps each purgeable collection to its table and account column.
var purgeTables = map[pkg.Collection]struct {
	table  string
	column string
}{
	pkg.CollectionSettings:       {"privacy_settings", "account_id"},
	pkg.CollectionGrants:         {"access_grants", "owner_id"},
	pkg.CollectionConsents:       {"consent_records", "account_id"},
	pkg.CollectionMedicalRecords: {"medical_records", "account_id"},
	pkg.CollectionDocuments:      {"documents", "account_id"},
	pkg.CollectionAccessLogs:     {"access_logs", "account_id"},
}

// PurgeCollection deletes the account's rows from the collection and returns
// the identifiers of everything removed.
func (s *Store) PurgeCollection(ctx context.Context, accountID string, collection pkg.Collection) ([]string, error) {
	target, ok := purgeTables[collection]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", pkg.ErrValidation, collection)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING id`, target.table, target.column)
	if collection == pkg.CollectionSettings {
		query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING account_id`, target.table, target.column)
	}

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to purge %s: %w", collection, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return ids, fmt.Errorf("failed to scan purged id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
