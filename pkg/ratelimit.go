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
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// FixedWindowLimiter counts actions per (account, action class) key in fixed
// windows. Exceeding the limit yields a rejection, never a delayed success.
// Counters expire with the window, so the cache stays bounded.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	counters *cache.Cache

	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:    limit,
		window:   window,
		counters: cache.New(window, 2*window),
		Now:      time.Now,
	}
}

// Allow records one action for the key and reports whether it stays within
// the window's limit.
func (l *FixedWindowLimiter) Allow(accountID, actionClass string) bool {
	if l.limit <= 0 {
		return true
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	bucket := now.UnixNano() / int64(l.window)
	key := fmt.Sprintf("%s|%s|%d", accountID, actionClass, bucket)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.counters.Add(key, 1, l.window); err == nil {
		return l.limit >= 1
	}
	count, err := l.counters.IncrementInt(key, 1)
	if err != nil {
		// Counter expired between Add and Increment; start a fresh window.
		l.counters.Set(key, 1, l.window)
		return l.limit >= 1
	}
	return count <= l.limit
}
