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

package slurm

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rawbby/kaspan-bench/pkg/experiment"
	"github.com/rawbby/kaspan-bench/pkg/topo"
	. "github.com/smartystreets/goconvey/convey"
)

func runConfig(dir string) experiment.RunConfig {
	return experiment.RunConfig{
		experiment.KeyExperiment: "0a1b2c_3d4e",
		experiment.KeyRun:        "kaspan_np100_gnm_directed_n10_m20_s1",
		experiment.KeyNP:         100,
		experiment.KeyTimeout:    10*time.Minute + time.Second,
		experiment.KeyJob:        filepath.Join(dir, "run.sh"),
		experiment.KeyErr:        filepath.Join(dir, "run.err"),
		experiment.KeyOut:        filepath.Join(dir, "run.out"),
		experiment.KeyExe:        "/opt/bin/bench_kaspan",
		experiment.KeyOptions:    []string{"--kagen_option_string", "gnm-directed;n=10;m=20;seed=1", "--output_file", "/tmp/r.json"},
	}
}

var horekaConfig = Config{
	Partition:  "cpuonly",
	Memory:     "230gb",
	Modules:    []string{"compiler/gnu/14", "mpi/impi/2021.11", "devel/cmake/3.30"},
	Launcher:   "mpiexec.hydra",
	MinTimeout: DefaultBounds.Min,
	MaxTimeout: DefaultBounds.Max,
}

func TestSynthesizer(t *testing.T) {
	Convey("While synthesizing job scripts for the HoreKa layout", t, func() {
		synthesizer := NewSynthesizer(horekaConfig, topo.Horeka)
		config := runConfig("/data/0a1b2c_3d4e")

		Convey("One rank per core should spread the ranks over nodes", func() {
			script, err := synthesizer.Synthesize(config, topo.OneRankPerCore, 0)
			So(err, ShouldBeNil)
			So(script.Path, ShouldEqual, "/data/0a1b2c_3d4e/run.sh")

			lines := strings.Split(script.Body, "\n")
			So(lines[0], ShouldEqual, "#!/bin/bash")
			So(lines, ShouldContain, "#SBATCH --nodes=2")
			So(lines, ShouldContain, "#SBATCH --ntasks=100")
			So(lines, ShouldContain, "#SBATCH --cpus-per-task=1")
			So(lines, ShouldContain, "#SBATCH --ntasks-per-socket=38")
			So(lines, ShouldContain, "#SBATCH --ntasks-per-node=76")
			So(lines, ShouldContain, "#SBATCH -o /data/0a1b2c_3d4e/run.out")
			So(lines, ShouldContain, "#SBATCH -e /data/0a1b2c_3d4e/run.err")
			So(lines, ShouldContain, "#SBATCH -J 0a1b2c_3d4e_kaspan_np100_gnm_directed_n10_m20_s1")
			So(lines, ShouldContain, "#SBATCH --partition=cpuonly")
			So(lines, ShouldContain, "#SBATCH --time=0-00:12:00")
			So(lines, ShouldContain, "#SBATCH --export=ALL")
			So(lines, ShouldContain, "#SBATCH --mem=230gb")
			So(lines, ShouldContain, "module purge")
			So(lines, ShouldContain, "module load mpi/impi/2021.11")
			So(script.Body, ShouldNotContainSubstring, "OMP_NUM_THREADS")
			So(script.Body, ShouldEndWith, "I_MPI_PIN=1 I_MPI_PIN_DOMAIN=core I_MPI_PIN_ORDER=compact I_MPI_JOB_TIMEOUT=602 "+
				"mpiexec.hydra -n 100 -bootstrap slurm /opt/bin/bench_kaspan --kagen_option_string "+
				"'gnm-directed;n=10;m=20;seed=1' --output_file /tmp/r.json\n")
		})

		Convey("One rank per node should reserve whole nodes", func() {
			config[experiment.KeyNP] = 4
			script, err := synthesizer.Synthesize(config, topo.OneRankPerNode, 0)
			So(err, ShouldBeNil)
			So(script.Body, ShouldContainSubstring, "#SBATCH --nodes=4\n")
			So(script.Body, ShouldContainSubstring, "#SBATCH --ntasks-per-node=1\n")
			So(script.Body, ShouldContainSubstring, "#SBATCH --cpus-per-task=76\n")
			So(script.Body, ShouldContainSubstring, "export OMP_NUM_THREADS=76\n")
			So(script.Body, ShouldContainSubstring, "I_MPI_PIN_DOMAIN=node")
		})

		Convey("Optional directives should be left out when unset", func() {
			synthesizer.Config.Memory = ""
			synthesizer.Config.Modules = nil
			script, err := synthesizer.Synthesize(config, topo.OneRankPerCore, 0)
			So(err, ShouldBeNil)
			So(script.Body, ShouldNotContainSubstring, "--mem")
			So(script.Body, ShouldNotContainSubstring, "module")
			So(script.Body, ShouldContainSubstring, "#SBATCH --export=ALL\n\nI_MPI_PIN=1")
		})

		Convey("Missing keys should fail with MissingParameterError", func() {
			delete(config, experiment.KeyTimeout)
			_, err := synthesizer.Synthesize(config, topo.OneRankPerCore, 0)
			So(err, ShouldResemble, experiment.MissingParameterError{Component: "slurm script", Key: experiment.KeyTimeout})
		})

		Convey("Invalid timeouts should fail with InvalidTimeoutError", func() {
			config[experiment.KeyTimeout] = "later"
			_, err := synthesizer.Synthesize(config, topo.OneRankPerCore, 0)
			So(err, ShouldHaveSameTypeAs, InvalidTimeoutError{})
		})

		Convey("Non-positive process counts should be rejected", func() {
			config[experiment.KeyNP] = 0
			_, err := synthesizer.Synthesize(config, topo.OneRankPerCore, 0)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("While writing job scripts", t, func() {
		dir, err := ioutil.TempDir("", "slurm")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		script := Script{Path: filepath.Join(dir, "experiment", "run.sh"), Body: "#!/bin/bash\n"}
		So(WriteScript(script), ShouldBeNil)

		info, err := os.Stat(script.Path)
		So(err, ShouldBeNil)
		So(info.Mode().Perm(), ShouldEqual, os.FileMode(0755))

		Convey("A script should be written only once", func() {
			So(WriteScript(script), ShouldNotBeNil)
		})
	})
}
