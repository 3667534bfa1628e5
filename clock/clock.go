// Copyright 2025 Google LLC
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

package clock

import "time"

// Clock is the source of time used wherever a component waits. Production
// code uses RealClock; tests use SimulatedClock to control the passage of time.
type Clock interface {
	// Now returns the current time according to the clock.
	Now() time.Time

	// After waits for the duration to elapse and then sends the clock's
	// current time on the returned channel.
	After(d time.Duration) <-chan time.Time
}
