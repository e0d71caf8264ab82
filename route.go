// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spafallback

import (
	"io/fs"
	"strings"
)

// EffectivePath returns the path to hand to the static file server for the
// specified request path, given the serving root fsys and the rooted path of
// the fallback document (such as "/index.html").
//
// Request paths whose final element contains a "." are considered to be
// explicit static asset requests and are passed through unchanged, without
// checking for their existence. Any other path is passed through only if it
// names a regular file in fsys; otherwise, the fallback document is returned.
// A single trailing slash is stripped from any path except "/" before
// deciding.
func EffectivePath(fsys fs.FS, reqPath string, fallback string) string {
	if reqPath != "/" {
		reqPath = strings.TrimSuffix(reqPath, "/")
	}
	if strings.Contains(basename(reqPath), ".") {
		return reqPath
	}
	if isRegularFile(fsys, strings.TrimPrefix(reqPath, "/")) {
		return reqPath
	}
	return fallback
}

// basename returns the final element of the slash-separated path p, which is
// empty for "/" as well as for any path ending in a slash. Unlike path.Base it
// neither strips trailing slashes nor returns "." for an empty path.
func basename(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// isRegularFile returns true if name is non-empty and refers to a plain file
// (not a directory, device, et cetera) in fsys. name must be unrooted, as
// fs.FS implementations don't accept rooted paths.
func isRegularFile(fsys fs.FS, name string) bool {
	if name == "" {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}
