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
	"time"

	"github.com/voice4victims/privacy-logic/pkg"
)

const grantColumns = `id, owner_id, grantee_id, grant_type, permissions, active, expires_at, access_count, max_access_count, created_at`

func scanGrant(scan func(dest ...interface{}) error) (*pkg.AccessGrant, error) {
	grant := &pkg.AccessGrant{}
	var permissions []byte
	var expiresAt sql.NullTime
	if err := scan(
		&grant.ID, &grant.OwnerID, &grant.GranteeID, &grant.Type, &permissions,
		&grant.Active, &expiresAt, &grant.AccessCount, &grant.MaxAccessCount, &grant.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(permissions, &grant.Permissions); err != nil {
		return nil, fmt.Errorf("failed to decode grant permissions: %w", err)
	}
	if expiresAt.Valid {
		grant.ExpiresAt = &expiresAt.Time
	}
	return grant, nil
}

func (s *Store) GetGrant(ctx context.Context, id string) (*pkg.AccessGrant, error) {
	query := `SELECT ` + grantColumns + ` FROM access_grants WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, id)
	grant, err := scanGrant(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, pkg.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return grant, nil
}

func (s *Store) PutGrant(ctx context.Context, grant *pkg.AccessGrant) error {
	permissions, err := json.Marshal(grant.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode grant permissions: %w", err)
	}

	query := `INSERT INTO access_grants (` + grantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			permissions = $5, active = $6, expires_at = $7, access_count = $8, max_access_count = $9`
	if _, err := s.db.ExecContext(ctx, query,
		grant.ID, grant.OwnerID, grant.GranteeID, grant.Type, permissions,
		grant.Active, grant.ExpiresAt, grant.AccessCount, grant.MaxAccessCount, grant.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to store grant: %w", err)
	}
	return nil
}

// IncrementGrantUse advances the use counter in a single conditional update,
// so concurrent allowed decisions cannot push it past the use limit.
func (s *Store) IncrementGrantUse(ctx context.Context, id string) error {
	query := `UPDATE access_grants SET access_count = access_count + 1
		WHERE id = $1 AND active AND (max_access_count <= 0 OR access_count < max_access_count)`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment grant use count: %w", err)
	}
	return nil
}

func (s *Store) queryGrants(ctx context.Context, query string, args ...interface{}) ([]pkg.AccessGrant, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	var grants []pkg.AccessGrant
	for rows.Next() {
		grant, err := scanGrant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, *grant)
	}
	return grants, rows.Err()
}

// GrantsFor lists every grant the owner issued to the grantee, regardless of
// validity; validity is decided at read time by the caller.
func (s *Store) GrantsFor(ctx context.Context, ownerID, granteeID string) ([]pkg.AccessGrant, error) {
	query := `SELECT ` + grantColumns + ` FROM access_grants
		WHERE owner_id = $1 AND grantee_id = $2 ORDER BY created_at`
	return s.queryGrants(ctx, query, ownerID, granteeID)
}

func (s *Store) GrantsByOwner(ctx context.Context, ownerID string) ([]pkg.AccessGrant, error) {
	query := `SELECT ` + grantColumns + ` FROM access_grants
		WHERE owner_id = $1 ORDER BY created_at`
	return s.queryGrants(ctx, query, ownerID)
}

// ExpiredActiveGrants lists grants that are still marked active but whose
// expiry has passed, for the expiry sweep.
func (s *Store) ExpiredActiveGrants(ctx context.Context, asOf time.Time) ([]pkg.AccessGrant, error) {
	query := `SELECT ` + grantColumns + ` FROM access_grants
		WHERE active AND expires_at IS NOT NULL AND expires_at <= $1 ORDER BY created_at`
	return s.queryGrants(ctx, query, asOf)
}
