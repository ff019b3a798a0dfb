// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dhall

import "github.com/dhall-go/dhall/internal/core/adt"

// DefaultFuel is the step budget (§5) applied when no WithFuel option is
// given: generous enough for any well-typed input this package's own
// tests exercise, small enough to turn a pathological ill-typed input
// into a StepBudgetExceeded error rather than a multi-minute hang.
const DefaultFuel = 1_000_000

// Option configures Normalize, TypeOf, Equivalent, and Substitute.
type Option func(*config)

type config struct {
	fuel int
}

func newConfig(opts []Option) config {
	cfg := config{fuel: DefaultFuel}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFuel overrides the step budget threaded through evaluation and type
// inference. n <= 0 disables the budget (unbounded recursion), matching
// adt.Fuel's nil-receiver no-op contract — intended for tests and tooling
// operating on trusted input only.
func WithFuel(n int) Option {
	return func(cfg *config) { cfg.fuel = n }
}

func (cfg config) newFuel() *adt.Fuel {
	if cfg.fuel <= 0 {
		return nil
	}
	return adt.NewFuel(cfg.fuel)
}
