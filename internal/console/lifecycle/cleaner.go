// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// cleanupTimeout bounds a single delete request to the asset host.
const cleanupTimeout = 30 * time.Second

// AssetDeleter removes one hosted asset.
type AssetDeleter interface {
	DeleteAsset(context context.Context, publicID string, kind assetstore.Kind) error
}

/*
Cleaner deletes orphaned media in the background.

One worker goroutine drains an unbounded queue of URL batches. URLs are sent
to the host one at a time, [Cleaner.Delay] apart. A URL that cannot be parsed
or whose delete fails is logged as a [CleanupError] and dropped; the rest of
the batch still runs.
*/
type Cleaner struct {
	deleter AssetDeleter
	locator assetstore.Locator
	delay   time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	queue  [][]string
	closed bool

	// outstanding counts batches enqueued but not yet attempted; idle is
	// signalled on mu whenever it drops to zero.
	outstanding int
	idle        *sync.Cond

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	// sent counts requests so the delay only applies between them.
	sent int
}

// NewCleaner starts the worker. A negative delay means
// [constants.AssetCleanupDelay].
func NewCleaner(deleter AssetDeleter, locator assetstore.Locator, delay time.Duration, logger *slog.Logger) *Cleaner {
	if delay < 0 {
		delay = constants.AssetCleanupDelay
	}

	cleaner := &Cleaner{
		deleter: deleter,
		locator: locator,
		delay:   delay,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	cleaner.idle = sync.NewCond(&cleaner.mu)
	go cleaner.run()
	return cleaner
}

// Enqueue schedules URLs for deletion and returns at once.
func (cleaner *Cleaner) Enqueue(urls ...string) {
	if len(urls) == 0 {
		return
	}

	cleaner.mu.Lock()
	if cleaner.closed {
		cleaner.mu.Unlock()
		cleaner.logger.Warn("asset_cleanup_dropped", slog.Int("count", len(urls)))
		return
	}
	cleaner.queue = append(cleaner.queue, append([]string(nil), urls...))
	cleaner.outstanding++
	cleaner.mu.Unlock()

	select {
	case cleaner.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until the queue is empty and no batch is in flight. It may be
// called concurrently with Enqueue; batches added meanwhile are waited for too.
func (cleaner *Cleaner) Wait() {
	cleaner.mu.Lock()
	defer cleaner.mu.Unlock()
	for cleaner.outstanding > 0 {
		cleaner.idle.Wait()
	}
}

// Close stops accepting work, finishes the queue and stops the worker.
func (cleaner *Cleaner) Close() {
	cleaner.mu.Lock()
	if cleaner.closed {
		cleaner.mu.Unlock()
		<-cleaner.done
		return
	}
	cleaner.closed = true
	cleaner.mu.Unlock()

	close(cleaner.stop)
	<-cleaner.done
}

func (cleaner *Cleaner) run() {
	defer close(cleaner.done)

	for {
		if batch, ok := cleaner.next(); ok {
			cleaner.process(batch)
			cleaner.finish()
			continue
		}

		select {
		case <-cleaner.wake:
		case <-cleaner.stop:
			if batch, ok := cleaner.next(); ok {
				cleaner.process(batch)
				cleaner.finish()
				continue
			}
			return
		}
	}
}

func (cleaner *Cleaner) next() ([]string, bool) {
	cleaner.mu.Lock()
	defer cleaner.mu.Unlock()
	if len(cleaner.queue) == 0 {
		return nil, false
	}
	batch := cleaner.queue[0]
	cleaner.queue = cleaner.queue[1:]
	return batch, true
}

// finish marks one batch attempted and wakes waiters once none remain.
func (cleaner *Cleaner) finish() {
	cleaner.mu.Lock()
	cleaner.outstanding--
	if cleaner.outstanding == 0 {
		cleaner.idle.Broadcast()
	}
	cleaner.mu.Unlock()
}

func (cleaner *Cleaner) process(urls []string) {
	for _, url := range urls {
		asset, ok := cleaner.locator.Parse(url)
		if !ok {
			cleaner.report(&CleanupError{URL: url, Err: errors.New("not a hosted asset URL")})
			continue
		}

		if cleaner.sent > 0 && cleaner.delay > 0 {
			time.Sleep(cleaner.delay)
		}
		cleaner.sent++

		requestContext, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		err := cleaner.deleter.DeleteAsset(requestContext, asset.PublicID, asset.Kind)
		cancel()

		if err != nil {
			cleaner.report(&CleanupError{URL: url, Err: err})
			continue
		}
		cleaner.logger.Debug("asset_cleaned_up", slog.String("public_id", asset.PublicID), slog.String("kind", string(asset.Kind)))
	}
}

func (cleaner *Cleaner) report(err *CleanupError) {
	cleaner.logger.Warn("asset_cleanup_failed", slog.String("url", err.URL), slog.Any("error", err.Err))
}
