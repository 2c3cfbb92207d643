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

package fs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteExclusive writes data to a new file at path with given permissions.
// It fails when the file already exists, so earlier artifacts are never overwritten.
func WriteExclusive(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "could not create directory for %q", path)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrapf(err, "could not create %q", path)
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		return errors.Wrapf(err, "could not write %q", path)
	}

	if err = file.Close(); err != nil {
		return errors.Wrapf(err, "could not close %q", path)
	}

	// umask may have masked the requested bits.
	return errors.Wrapf(os.Chmod(path, perm), "could not chmod %q", path)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
