package cronjobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"go-aware/db"
	"go-aware/sensors"
)

// InitCronJobs schedules the calendar jobs: a nightly visitor-login rollup
// and a periodic check that a running simulator is still producing data.
func InitCronJobs(store *db.Store, sim *sensors.Simulator) *cron.Cron {
	log.Println("Starting cron jobs")
	c := cron.New()

	// Visitor rollup: shortly after midnight, count yesterday's logins.
	_, err := c.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		count, err := store.CountVisitorLoginsSince(ctx, midnight.AddDate(0, 0, -1))
		if err != nil {
			log.Printf("CronJob: visitor rollup failed: %v", err)
			return
		}
		log.Printf("CronJob: %d visitor logins on %s", count, midnight.AddDate(0, 0, -1).Format("2006-01-02"))
	})
	if err != nil {
		log.Println("Error scheduling visitor rollup:", err)
	}

	// Stale-sensor check: a running simulator should have fresh readings.
	_, err = c.AddFunc("*/5 * * * *", func() {
		if !sim.Running() {
			return
		}
		latest := sim.Latest(1)
		if len(latest) == 0 {
			log.Println("CronJob: simulator running but produced no readings yet")
			return
		}
		ts, err := time.Parse(time.RFC3339, latest[0].Timestamp)
		if err == nil && time.Since(ts) > time.Minute {
			log.Printf("CronJob: last sensor reading is stale (%s)", latest[0].Timestamp)
		}
	})
	if err != nil {
		log.Println("Error scheduling stale-sensor check:", err)
	}

	c.Start()
	return c
}
