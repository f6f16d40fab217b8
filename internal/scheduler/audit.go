// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"time"
)

// AuditPruneJob is the name of the audit retention job.
const AuditPruneJob = "audit_prune"

// AuditPruner deletes audit entries older than a duration.
type AuditPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// AddAuditPrune schedules a daily prune of audit entries older than
// retention. A non-positive retention registers nothing.
func (s *Scheduler) AddAuditPrune(p AuditPruner, retention time.Duration) error {
	if retention <= 0 {
		s.logger.Info("audit log retention disabled")
		return nil
	}
	return s.Add(AuditPruneJob, "@daily", func(ctx context.Context) error {
		n, err := p.Prune(ctx, retention)
		if err != nil {
			return err
		}
		if n > 0 {
			s.logger.Info("audit log pruned", "removed", n, "retention", retention)
		}
		return nil
	})
}
