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

package result

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Node is a read only view of a subtree of a result document.
type Node struct {
	value interface{}
}

// Match is a node found by Find. Path leads from the searched node to the object holding the key.
type Match struct {
	Path  []string
	Value Node
}

// Name joins the path with underscores. The empty path is named after fallback.
func (m Match) Name(fallback string) string {
	if len(m.Path) == 0 {
		return fallback
	}
	return strings.Join(m.Path, "_")
}

// Lookup descends along path. The second result is false when any step is absent or not an object.
func (n Node) Lookup(path ...string) (Node, bool) {
	current := n.value
	for _, key := range path {
		object, ok := current.(map[string]interface{})
		if !ok {
			return Node{}, false
		}
		if current, ok = object[key]; !ok {
			return Node{}, false
		}
	}
	return Node{value: current}, true
}

// Int returns the integer at path. Floats are accepted when they hold an integral value.
func (n Node) Int(path ...string) (int64, bool) {
	node, ok := n.Lookup(path...)
	if !ok {
		return 0, false
	}

	switch v := node.value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool {
	_, ok := n.value.(map[string]interface{})
	return ok
}

// Keys returns the sorted keys of an object node, or nil.
func (n Node) Keys() []string {
	object, ok := n.value.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := lo.Keys(object)
	sort.Strings(keys)
	return keys
}

// Find returns every object in the subtree, including n itself, that holds key.
// Objects are visited depth first in key order, so results are deterministic.
func (n Node) Find(key string) []Match {
	matches := []Match{}
	n.find(key, nil, &matches)
	return matches
}

func (n Node) find(key string, path []string, matches *[]Match) {
	object, ok := n.value.(map[string]interface{})
	if !ok {
		return
	}

	if value, ok := object[key]; ok {
		*matches = append(*matches, Match{Path: append([]string{}, path...), Value: Node{value: value}})
	}

	for _, child := range n.Keys() {
		Node{value: object[child]}.find(key, append(path, child), matches)
	}
}
