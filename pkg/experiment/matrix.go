// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package experiment

import (
	"sort"

	"github.com/samber/lo"
)

// Matrix maps a parameter name to the ordered list of its values.
type Matrix map[string][]interface{}

// Keys returns the parameter names in lexical order.
func (m Matrix) Keys() []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// Product returns a lazy iterator over the cartesian product of the lists named by keys.
// The first key varies slowest. Without keys the product holds a single empty tuple.
func (m Matrix) Product(keys ...string) (*Iterator, error) {
	lists := make([][]interface{}, 0, len(keys))
	for _, key := range keys {
		values, ok := m[key]
		if !ok {
			return nil, MissingParameterError{Component: "matrix", Key: key}
		}
		lists = append(lists, values)
	}

	it := &Iterator{lists: lists, index: make([]int, len(lists))}
	for _, list := range lists {
		if len(list) == 0 {
			it.done = true
		}
	}
	return it, nil
}

// Size returns the number of tuples in the product of keys, or 0 for unknown keys.
func (m Matrix) Size(keys ...string) int {
	size := 1
	for _, key := range keys {
		values, ok := m[key]
		if !ok {
			return 0
		}
		size *= len(values)
	}
	return size
}

// Iterator walks a cartesian product like an odometer.
type Iterator struct {
	lists [][]interface{}
	index []int
	done  bool
}

// Next returns the next tuple. The second result is false once the product is exhausted.
func (it *Iterator) Next() ([]interface{}, bool) {
	if it.done {
		return nil, false
	}

	tuple := make([]interface{}, len(it.lists))
	for i, list := range it.lists {
		tuple[i] = list[it.index[i]]
	}

	it.advance()
	return tuple, true
}

func (it *Iterator) advance() {
	for i := len(it.index) - 1; i >= 0; i-- {
		it.index[i]++
		if it.index[i] < len(it.lists[i]) {
			return
		}
		it.index[i] = 0
	}
	it.done = true
}
