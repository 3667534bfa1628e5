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

// blssim generates synthetic records, checks them concurrently and
// simulates bookings.
//
// Usage:
//
//	blssim generate [--count N] [--start-year YYYY]
//	blssim simulate-check [--input FILE] [--threads N]
//	blssim attempt-book [--input FILE] [--attempts N] [--use-real]
package main

import "github.com/blssim/blssim/cmd"

func main() {
	cmd.Execute()
}
