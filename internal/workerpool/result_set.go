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

package workerpool

import "sync"

// ResultSet accumulates success lines from concurrent workers in the order
// they were appended.
type ResultSet struct {
	mu    sync.Mutex
	items []string // GUARDED_BY(mu)
}

func NewResultSet() *ResultSet {
	return &ResultSet{items: []string{}}
}

func (rs *ResultSet) Append(item string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.items = append(rs.items, item)
}

func (rs *ResultSet) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.items)
}

// Items returns a copy of the accumulated lines.
func (rs *ResultSet) Items() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]string, len(rs.items))
	copy(out, rs.items)
	return out
}
