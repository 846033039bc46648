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

package api

import "github.com/voice4victims/privacy-logic/pkg"

// CheckAccessRequest asks whether the authenticated caller holds one
// permission on the account's data.
type CheckAccessRequest struct {
	Permission pkg.Permission `json:"permission"`
	ChildID    string         `json:"childId,omitempty"`
}

// PermissionsResponse lists the caller's effective permissions.
type PermissionsResponse struct {
	Permissions []pkg.Permission `json:"permissions"`
}

// DeletionRequestBody opens a deletion request.
type DeletionRequestBody struct {
	Scope  pkg.DeletionScope `json:"scope"`
	Reason string            `json:"reason,omitempty"`
}

// ConsentRevocationBody revokes one consent category.
type ConsentRevocationBody struct {
	ConsentType pkg.ConsentType `json:"consentType"`
}

// ErrorResponse carries an error message to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}
