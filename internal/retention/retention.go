// Package retention runs the scheduled purge of old audit log rows.
package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/scim-provision/internal/metrics"
	"github.com/crucial707/scim-provision/internal/repo"
	"github.com/robfig/cron/v3"
)

// purgeSchedule runs the purge daily at 03:00 server time.
const purgeSchedule = "0 3 * * *"

// Run starts a background cron that deletes request_log rows older than
// retentionDays. It returns the cron so callers can Stop it on shutdown;
// when retentionDays <= 0 no cron is started and nil is returned.
func Run(auditRepo *repo.AuditRepo, retentionDays int) *cron.Cron {
	if retentionDays <= 0 {
		return nil
	}

	purge := func() {
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		n, err := auditRepo.PurgeOlderThan(context.Background(), cutoff)
		if err != nil {
			slog.Error("retention: purge audit log", "error", err)
			return
		}
		metrics.AddAuditRecordsPurged(n)
		slog.Info("retention: purged audit log", "removed", n, "cutoff", cutoff)
	}

	c := cron.New()
	if _, err := c.AddFunc(purgeSchedule, purge); err != nil {
		slog.Error("retention: schedule purge", "error", err)
		return nil
	}
	c.Start()

	// One pass at startup so a long-stopped server catches up immediately.
	go purge()

	return c
}
