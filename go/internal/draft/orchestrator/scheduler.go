package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	idlePollDuration = 5 * time.Second
	maxFetchRetries  = 3
)

// RunScheduler loops forever, sleeping until the next deadline and firing
// timeouts. A single timer is reused across iterations and the wake channel
// cuts any sleep short when a deadline moves.
func (o *Orchestrator) RunScheduler(ctx context.Context) error {
	log.Info().Str("instance", o.instanceID).Int("workers", o.numWorkers).Msg("scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.numWorkers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}

	defer func() {
		log.Info().Str("instance", o.instanceID).Msg("shutting down workers")
		cancelWorkers()
		close(o.workCh)
		wg.Wait()
		log.Info().Str("instance", o.instanceID).Msg("all workers shut down")
	}()

	timer := o.clock.NewTimer(0)
	defer timer.Stop()

	retryCount := 0

	for {
		select {
		case <-o.wakeCh:
			log.Debug().Str("instance", o.instanceID).Msg("drained wake channel")
		default:
		}

		if err := o.startDueDrafts(ctx); err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error starting due drafts")
		}

		deadline, err := o.pickRepo.NextDeadline(ctx)
		if err != nil {
			retryCount++
			if retryCount <= maxFetchRetries {
				log.Error().
					Err(err).
					Int("retry", retryCount).
					Str("instance", o.instanceID).
					Msg("error fetching next deadline, retrying")
				timer.Reset(time.Second * time.Duration(retryCount))
				select {
				case <-timer.Chan():
					continue
				case <-ctx.Done():
					return nil
				}
			}
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching next deadline after retries")
			return err
		}
		retryCount = 0

		if deadline == nil {
			log.Debug().Str("instance", o.instanceID).Msg("no running clocks; polling again in 5s")
			timer.Reset(idlePollDuration)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				log.Info().Str("instance", o.instanceID).Msg("shutdown during idle")
				return nil
			case <-o.wakeCh:
				log.Debug().Str("instance", o.instanceID).Msg("woken up from idle")
				continue
			}
		}

		wait := deadline.Sub(o.clock.Now())
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.Chan():
				log.Debug().Str("instance", o.instanceID).Msg("timer fired, fetching due picks")
			case <-ctx.Done():
				log.Info().Str("instance", o.instanceID).Msg("shutdown during wait")
				return nil
			case <-o.wakeCh:
				log.Debug().Str("instance", o.instanceID).Msg("woken up early, new deadline")
				continue
			}
		}

		due, err := o.pickRepo.ListDueEntries(ctx, o.clock.Now())
		if err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching due picks")
			timer.Reset(time.Second)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}

		if len(due) == 0 {
			continue
		}

		log.Info().
			Int("count_due", len(due)).
			Str("instance", o.instanceID).
			Msg("processing due picks")

		queued := 0
		for _, d := range due {
			o.inFlightMu.Lock()
			if o.inFlight[d.LeagueID] {
				o.inFlightMu.Unlock()
				log.Debug().Str("league_id", d.LeagueID.String()).Msg("league already in flight, skipping")
				continue
			}
			o.inFlight[d.LeagueID] = true
			o.inFlightMu.Unlock()

			select {
			case <-ctx.Done():
				o.inFlightMu.Lock()
				delete(o.inFlight, d.LeagueID)
				o.inFlightMu.Unlock()
				log.Info().Str("instance", o.instanceID).Msg("shutdown while queueing timeouts")
				return nil
			case o.workCh <- d.LeagueID:
				queued++
				log.Debug().
					Str("league_id", d.LeagueID.String()).
					Int("pick_number", d.PickNumber).
					Msg("queued timeout for worker")
			}
		}

		// Everything due is already with a worker. Back off briefly so the
		// loop does not spin on the unchanged deadline.
		if queued == 0 {
			timer.Reset(100 * time.Millisecond)
			select {
			case <-timer.Chan():
			case <-ctx.Done():
				return nil
			case <-o.wakeCh:
			}
		}
	}
}

// worker processes league timeouts from the work channel.
func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	log.Debug().Str("instance", o.instanceID).Int("worker_id", workerID).Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("instance", o.instanceID).Int("worker_id", workerID).Msg("worker shutting down")
			return
		case leagueID, ok := <-o.workCh:
			if !ok {
				log.Debug().Str("instance", o.instanceID).Int("worker_id", workerID).Msg("work channel closed")
				return
			}

			if err := o.ExecutePickForLeague(ctx, leagueID, "time_expired"); err != nil {
				log.Error().
					Err(err).
					Str("league_id", leagueID.String()).
					Int("worker_id", workerID).
					Msg("timeout handling failed")
			}

			o.inFlightMu.Lock()
			delete(o.inFlight, leagueID)
			o.inFlightMu.Unlock()
		}
	}
}
