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
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Matrix keys produced by MatrixFile.Matrix.
const (
	MatrixScaling = "scaling"
	MatrixProgram = "program"
	MatrixGraph   = "graph"
	MatrixN       = "N"
	MatrixD       = "d"
	MatrixNP      = "NP"
)

// MatrixOrder is the order in which the composer expands the matrix.
var MatrixOrder = []string{MatrixScaling, MatrixN, MatrixD, MatrixNP, MatrixProgram, MatrixGraph}

// MatrixFile is the on disk description of a sweep.
type MatrixFile struct {
	Scaling  []string      `yaml:"scaling"`
	Programs []string      `yaml:"programs"`
	Graphs   []string      `yaml:"graphs"`
	N        []int         `yaml:"N"`
	D        []float64     `yaml:"d"`
	NP       []int         `yaml:"NP"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultMatrixFile returns the HoreKa weak scaling sweep over the gnm generator.
func DefaultMatrixFile() MatrixFile {
	return MatrixFile{
		Scaling:  []string{string(Weak)},
		Programs: []string{"kaspan", "kaspan_async", "kaspan_async_indirect", "ispan"},
		Graphs:   []string{"gnm_directed"},
		N:        []int{16, 18, 20},
		D:        []float64{0.5, 1, 2, 4, 8, 16},
		NP:       []int{6, 8, 10, 12},
		Timeout:  30 * time.Minute,
	}
}

// LoadMatrixFile reads a YAML matrix file. Missing keys keep their default values.
func LoadMatrixFile(path string) (MatrixFile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return MatrixFile{}, errors.Wrapf(err, "could not read matrix file %q", path)
	}
	return ParseMatrixFile(data)
}

// ParseMatrixFile decodes YAML matrix data over the defaults.
func ParseMatrixFile(data []byte) (MatrixFile, error) {
	file := DefaultMatrixFile()
	if err := yaml.Unmarshal(data, &file); err != nil {
		return MatrixFile{}, errors.Wrap(err, "could not decode matrix file")
	}

	for _, scaling := range file.Scaling {
		if _, err := ParseScaling(scaling); err != nil {
			return MatrixFile{}, err
		}
	}
	if file.Timeout < 0 {
		return MatrixFile{}, errors.Errorf("timeout must not be negative, got %s", file.Timeout)
	}
	return file, nil
}

// Matrix converts the file into a Matrix keyed by the Matrix* constants.
func (f MatrixFile) Matrix() Matrix {
	return Matrix{
		MatrixScaling: toValues(lo.Uniq(f.Scaling)),
		MatrixProgram: toValues(lo.Uniq(f.Programs)),
		MatrixGraph:   toValues(lo.Uniq(f.Graphs)),
		MatrixN:       toValues(lo.Uniq(f.N)),
		MatrixD:       toValues(lo.Uniq(f.D)),
		MatrixNP:      toValues(lo.Uniq(f.NP)),
	}
}

func toValues[T any](values []T) []interface{} {
	return lo.Map(values, func(value T, _ int) interface{} { return value })
}
