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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	accessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "privacy_logic",
		Name:      "access_decisions_total",
		Help:      "Authorization decisions by result.",
	}, []string{"result"})

	auditEntriesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "privacy_logic",
		Name:      "audit_entries_total",
		Help:      "Access log entries appended.",
	})

	auditAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "privacy_logic",
		Name:      "audit_append_failures_total",
		Help:      "Access log appends that failed and were escalated.",
	})

	suspiciousFindings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "privacy_logic",
		Name:      "suspicious_findings_total",
		Help:      "Suspicious activity findings raised.",
	})

	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "privacy_logic",
		Name:      "sweep_runs_total",
		Help:      "Lifecycle sweep executions by sweep name.",
	}, []string{"sweep"})
)
