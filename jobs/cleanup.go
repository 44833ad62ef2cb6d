package jobs

import (
	"time"

	tasks "chipsplit/task"
)

func StartCleanupScheduler() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-ticker.C
			tasks.VoidAbandonedSessions()
			tasks.PruneDiscardedPlans()
		}
	}()
}
