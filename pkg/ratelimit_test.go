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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/voice4victims/privacy-logic/pkg"
)

func TestFixedWindowLimiter_Allow(t *testing.T) {
	t.Run("requests within the limit pass, the next one is rejected", func(t *testing.T) {
		limiter := pkg.NewFixedWindowLimiter(3, time.Minute)
		now := testClock
		limiter.Now = func() time.Time { return now }

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		}
		assert.False(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
	})

	t.Run("accounts are limited independently", func(t *testing.T) {
		limiter := pkg.NewFixedWindowLimiter(1, time.Minute)
		now := testClock
		limiter.Now = func() time.Time { return now }

		assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		assert.False(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		assert.True(t, limiter.Allow("parent-2", pkg.ActionAccessCheck))
	})

	t.Run("action classes are limited independently", func(t *testing.T) {
		limiter := pkg.NewFixedWindowLimiter(1, time.Minute)
		now := testClock
		limiter.Now = func() time.Time { return now }

		assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		assert.True(t, limiter.Allow("parent-1", pkg.ActionExportData))
	})

	t.Run("the counter resets when the window rolls over", func(t *testing.T) {
		limiter := pkg.NewFixedWindowLimiter(1, time.Minute)
		now := testClock
		limiter.Now = func() time.Time { return now }

		assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		assert.False(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))

		now = now.Add(2 * time.Minute)
		assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
	})

	t.Run("a non-positive limit disables limiting", func(t *testing.T) {
		limiter := pkg.NewFixedWindowLimiter(0, time.Minute)

		for i := 0; i < 100; i++ {
			assert.True(t, limiter.Allow("parent-1", pkg.ActionAccessCheck))
		}
	})
}
