// Copyright 2019 Richard Hartmann
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package glog rate limits repeated error logs, e.g. a tester that stays
// unreachable across many scrapes.
package glog

import (
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultInterval is the window in which an identical error is logged once.
const DefaultInterval = 5 * time.Minute

// Deduper logs errors at error level, dropping an error if the same error
// text has been logged within the interval.
type Deduper struct {
	logger   log.Logger
	interval time.Duration
	now      func() time.Time

	mtx       sync.Mutex
	trackLogs map[string]time.Time
}

// New returns a Deduper writing to logger.
func New(logger log.Logger, interval time.Duration) *Deduper {
	return &Deduper{
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		trackLogs: make(map[string]time.Time),
	}
}

// Log logs err with the given key/value context unless it was logged
// recently. It reports whether the error was written.
func (d *Deduper) Log(err error, keyvals ...interface{}) bool {
	if err == nil {
		return false
	}

	key := err.Error()
	now := d.now()

	d.mtx.Lock()
	t, ok := d.trackLogs[key]
	// logs the error if it has not been logged yet or
	// if it was last logged before the interval
	logIt := !ok || now.Sub(t) >= d.interval
	if logIt {
		d.prune(now)
		d.trackLogs[key] = now
	}
	d.mtx.Unlock()

	if logIt {
		kv := make([]interface{}, 0, len(keyvals)+2)
		kv = append(kv, keyvals...)
		kv = append(kv, "err", err)
		level.Error(d.logger).Log(kv...)
	}

	return logIt
}

// prune drops errors last logged before the interval. d.mtx must be held.
func (d *Deduper) prune(now time.Time) {
	for k, t := range d.trackLogs {
		if now.Sub(t) >= d.interval {
			delete(d.trackLogs, k)
		}
	}
}
