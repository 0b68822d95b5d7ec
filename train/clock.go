// Copyright 2025 descent Project Authors
//
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

package train

import (
	"time"
)

// Clock produces the tickers that drive a training run. Injecting it keeps
// the session testable without wall-clock timers: tests tick a ManualClock
// by hand, interactive consumers use the WallClock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers tick events until stopped.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// WallClock is the real-time Clock.
type WallClock struct{}

func (WallClock) NewTicker(d time.Duration) Ticker {
	return wallTicker{time.NewTicker(d)}
}

type wallTicker struct {
	*time.Ticker
}

func (t wallTicker) Chan() <-chan time.Time {
	return t.C
}

// ManualClock is a Clock advanced explicitly by calling Tick. All tickers
// it creates share one unbuffered channel, so Tick blocks until the
// training loop has accepted the tick.
type ManualClock struct {
	ch chan time.Time
}

// NewManualClock creates a ManualClock.
func NewManualClock() *ManualClock {
	return &ManualClock{ch: make(chan time.Time)}
}

func (c *ManualClock) NewTicker(time.Duration) Ticker {
	return manualTicker{c.ch}
}

// Tick delivers one tick, blocking until it is consumed.
func (c *ManualClock) Tick() {
	c.ch <- time.Now()
}

type manualTicker struct {
	ch chan time.Time
}

func (t manualTicker) Chan() <-chan time.Time {
	return t.ch
}

func (t manualTicker) Stop() {}
