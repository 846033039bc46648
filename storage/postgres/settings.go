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

// GetPrivacySettings returns the account's settings document; new accounts
// that have never stored one get the defaults.
func (s *Store) GetPrivacySettings(ctx context.Context, accountID string) (*pkg.PrivacySettings, error) {
	query := `SELECT document FROM privacy_settings WHERE account_id = $1`
	var document []byte
	err := s.db.QueryRowContext(ctx, query, accountID).Scan(&document)
	if err != nil {
		if err == sql.ErrNoRows {
			return pkg.DefaultPrivacySettings(accountID, time.Now()), nil
		}
		return nil, fmt.Errorf("failed to get privacy settings: %w", err)
	}

	settings := &pkg.PrivacySettings{}
	if err := json.Unmarshal(document, settings); err != nil {
		return nil, fmt.Errorf("failed to decode privacy settings: %w", err)
	}
	return settings, nil
}

// PutPrivacySettings stores the settings document, replacing any previous
// version.
func (s *Store) PutPrivacySettings(ctx context.Context, settings *pkg.PrivacySettings) error {
	document, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode privacy settings: %w", err)
	}

	query := `INSERT INTO privacy_settings (account_id, document, version, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE SET document = $2, version = $3, last_updated = $4`
	if _, err := s.db.ExecContext(ctx, query, settings.AccountID, document, settings.Version, settings.LastUpdated); err != nil {
		return fmt.Errorf("failed to store privacy settings: %w", err)
	}
	return nil
}

// Accounts lists every account's retention-relevant metadata.
func (s *Store) Accounts(ctx context.Context) ([]pkg.AccountMeta, error) {
	query := `SELECT account_id, created_at, last_activity_at FROM accounts ORDER BY account_id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []pkg.AccountMeta
	for rows.Next() {
		account := pkg.AccountMeta{}
		if err := rows.Scan(&account.AccountID, &account.CreatedAt, &account.LastActivityAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// TouchAccountActivity moves the account's last-activity timestamp forward,
// creating the account row if it does not exist yet.
func (s *Store) TouchAccountActivity(ctx context.Context, accountID string, at time.Time) error {
	query := `INSERT INTO accounts (account_id, created_at, last_activity_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (account_id) DO UPDATE SET last_activity_at = GREATEST(accounts.last_activity_at, $2)`
	if _, err := s.db.ExecContext(ctx, query, accountID, at); err != nil {
		return fmt.Errorf("failed to touch account activity: %w", err)
	}
	return nil
}
