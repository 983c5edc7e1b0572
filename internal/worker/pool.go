package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers groups the per-job-type workers wired at the composition root.
type Handlers struct {
	Receipt *ReceiptWorker
}

// StartPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueReceipts}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				log.Error().Err(err).Int("worker", id).Msg("queue pop failed")
				time.Sleep(time.Second)
				continue
			}
			if len(result) != 2 {
				continue
			}
			handleJob(ctx, handlers, id, result[1])
		}
	}
}

func handleJob(ctx context.Context, handlers *Handlers, id int, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Int("worker", id).Msg("malformed job discarded")
		return
	}

	switch job.Type {
	case "receipt":
		var payload ReceiptJob
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Int("worker", id).Msg("malformed receipt payload discarded")
			return
		}
		if handlers.Receipt == nil {
			return
		}
		if err := handlers.Receipt.Process(ctx, payload); err != nil {
			// Receipts are best-effort: the sale is already committed, so a
			// failed render is logged and dropped, never retried into the sale.
			log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt generation failed")
		}
	default:
		log.Warn().Str("type", job.Type).Int("worker", id).Msg("unknown job type discarded")
	}
}
