package discord

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// startSweeper runs periodic housekeeping: keyword sets that outgrew the
// configured cap are reset, and the awake-channel set is snapshotted so a
// restart picks up where the bot left off.
func (b *Bot) startSweeper() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(10).Minutes().Do(b.sweep); err != nil {
		log.Println("[ERR] Scheduling sweeper:", err)
	}
	scheduler.StartAsync()
	return scheduler
}

func (b *Bot) sweep() {
	if pruned := b.sessions.PruneKeywords(b.cfg.KeywordCap); pruned > 0 {
		log.Printf("[INFO] Sweeper reset keyword sets in %d channel(s)", pruned)
	}
	b.snapshotAwake()
}

func (b *Bot) snapshotAwake() {
	if err := b.storage.SetAwakeChannels(b.sessions.AwakeChannels()); err != nil {
		log.Println("[ERR] Persisting awake channels:", err)
	}
}
