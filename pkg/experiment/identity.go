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
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const maxSeed = 99999999

// Experiment identifies one composer invocation and owns its output directory.
type Experiment struct {
	ID   string
	Dir  string
	Seed int64
}

// NewID returns "<now>_<salt>": the low three bytes of the unix time and two random bytes, hex encoded.
func NewID() string {
	return newID(time.Now(), rand.Uint32)
}

func newID(now time.Time, random func() uint32) string {
	return fmt.Sprintf("%06x_%04x", uint64(now.Unix())%(1<<24), random()&0xffff)
}

// RandomSeed returns a generator seed in [0, 99999999].
func RandomSeed() int64 {
	return rand.Int63n(maxSeed + 1)
}

// New creates a fresh experiment directory below dataDir.
func New(dataDir string) (Experiment, error) {
	id := NewID()
	dir, err := CreateExperimentDir(dataDir, id)
	if err != nil {
		return Experiment{}, err
	}
	return Experiment{ID: id, Dir: dir, Seed: RandomSeed()}, nil
}

// CreateExperimentDir creates dataDir/id. It fails if that directory already exists.
func CreateExperimentDir(dataDir, id string) (string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", errors.Wrapf(err, "could not create experiment data directory %q", dataDir)
	}

	dir := filepath.Join(dataDir, id)
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "could not create experiment directory %q", dir)
	}
	return dir, nil
}

// BaseConfig returns the identity part every run of the experiment starts from.
func (e Experiment) BaseConfig() RunConfig {
	return RunConfig{
		KeyExperiment:    e.ID,
		KeyExperimentDir: e.Dir,
		KeySeed:          e.Seed,
	}
}
