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
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// BearerIdentityProvider verifies bearer tokens against an external
// introspection endpoint. The endpoint receives the token in the
// Authorization header and answers with the identity document, or a
// non-200 status for unknown and revoked tokens.
type BearerIdentityProvider struct {
	Endpoint string
	Client   *http.Client
}

func NewBearerIdentityProvider(endpoint string) *BearerIdentityProvider {
	return &BearerIdentityProvider{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Verify implements IdentityProvider. Any transport or decode failure is
// returned as an error so callers refuse access rather than guessing.
func (p *BearerIdentityProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrAuthorizationDenied)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build introspection request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token rejected by identity provider (status %d)", ErrAuthorizationDenied, resp.StatusCode)
	}

	identity := &Identity{}
	if err := json.NewDecoder(resp.Body).Decode(identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity document: %w", err)
	}
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: identity document without userId", ErrAuthorizationDenied)
	}
	return identity, nil
}
