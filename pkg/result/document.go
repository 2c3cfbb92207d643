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

// Package result reads the per rank JSON documents written by the benchmark binaries.
package result

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

var rankKey = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

// Document is a decoded result with one tree per rank. Ranks[i] belongs to rank i.
type Document struct {
	Ranks []Node
}

// NP returns the number of ranks.
func (d *Document) NP() int {
	return len(d.Ranks)
}

// Decode reads a result document and checks that its ranks are exactly 0..np-1.
// Top level keys that are not rank indices are ignored.
func Decode(r io.Reader, np int) (*Document, error) {
	if np <= 0 {
		return nil, CorruptResultError{Reason: fmt.Sprintf("declared process count %d is not positive", np)}
	}

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, CorruptResultError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	ranks := map[int]map[string]interface{}{}
	for key, value := range raw {
		if !rankKey.MatchString(key) {
			continue
		}
		rank, err := strconv.Atoi(key)
		if err != nil {
			return nil, CorruptResultError{Reason: fmt.Sprintf("rank key %q out of range", key)}
		}
		tree, ok := value.(map[string]interface{})
		if !ok {
			return nil, CorruptResultError{Reason: fmt.Sprintf("rank %d is not an object", rank)}
		}
		ranks[rank] = tree
	}

	if len(ranks) != np {
		return nil, CorruptResultError{Reason: fmt.Sprintf("document has %d ranks, expected %d", len(ranks), np)}
	}

	document := &Document{Ranks: make([]Node, np)}
	for rank := 0; rank < np; rank++ {
		tree, ok := ranks[rank]
		if !ok {
			return nil, CorruptResultError{Reason: fmt.Sprintf("rank %d is missing", rank)}
		}
		document.Ranks[rank] = Node{value: tree}
	}
	return document, nil
}

// Load opens and decodes the result document at path.
func Load(path string, np int) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open result %q", path)
	}
	defer file.Close()

	document, err := Decode(file, np)
	if corrupt, ok := err.(CorruptResultError); ok {
		corrupt.File = path
		return nil, corrupt
	}
	return document, err
}
