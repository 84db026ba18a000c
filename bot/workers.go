package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const offerExpiryInterval = 1 * time.Minute

// OfferReaper removes offers that were never resolved
type OfferReaper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartOfferExpiryWorker sweeps expired three-card offers every interval.
// Returns a cleanup function to stop the worker gracefully.
func StartOfferExpiryWorker(ctx context.Context, reaper OfferReaper, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})
	done := make(chan struct{})

	sweep := func() {
		removed, err := reaper.DeleteExpired(ctx)
		if err != nil {
			log.Errorf("Error deleting expired three-card offers: %v", err)
			return
		}
		if removed > 0 {
			log.WithField("removed", removed).Info("Expired three-card offers removed")
		}
	}

	go func() {
		defer close(done)
		log.Info("Offer expiry worker started")

		sweep()

		for {
			select {
			case <-ctx.Done():
				log.Info("Offer expiry worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Offer expiry worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
		<-done
	}
}
