// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

package spafallback

import (
	"io/fs"
	"os"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const fallback = "/index.html"

// countingFS counts all attempts to access the underlying fs.FS.
type countingFS struct {
	fs.FS
	accesses int
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.accesses++
	return c.FS.Open(name)
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	c.accesses++
	return fs.Stat(c.FS, name)
}

var _ = Describe("effective request paths", func() {

	DescribeTable("basenames",
		func(p string, expected string) {
			Expect(basename(p)).To(Equal(expected))
		},
		Entry(nil, "", ""),
		Entry(nil, "/", ""),
		Entry(nil, "/foo", "foo"),
		Entry(nil, "/foo/", ""),
		Entry(nil, "/foo/bar.js", "bar.js"),
		Entry(nil, "/v1.2/bar", "bar"),
	)

	DescribeTable("routing scenarios",
		func(fsys fs.FS) {
			Expect(EffectivePath(fsys, "/", fallback)).To(Equal(fallback))
			Expect(EffectivePath(fsys, "/singer1", fallback)).To(Equal(fallback))
			Expect(EffectivePath(fsys, "/app.js", fallback)).To(Equal("/app.js"))
			Expect(EffectivePath(fsys, "/missing.js", fallback)).To(Equal("/missing.js"))
			Expect(EffectivePath(fsys, "/gavriel/", fallback)).To(Equal(fallback))
		},
		Entry("from embedded fs", embStaticFs),
		Entry("from test dir fs", os.DirFS("./test")),
	)

	DescribeTable("routes paths",
		func(p string, expected string) {
			Expect(EffectivePath(embStaticFs, p, fallback)).To(Equal(expected))
		},
		Entry("empty path", "", fallback),
		Entry("double slash root", "//", fallback),
		Entry("existing extensionless file", "/LICENSE", "/LICENSE"),
		Entry("existing extensionless file with trailing slash", "/LICENSE/", "/LICENSE"),
		Entry("nested asset", "/static/js/some.js", "/static/js/some.js"),
		Entry("nested asset with trailing slash", "/static/js/some.js/", "/static/js/some.js"),
		Entry("extensionless directory", "/public", fallback),
		Entry("extensionless directory with trailing slash", "/static/js/", fallback),
		Entry("extensioned directory", "/v1.2", "/v1.2"),
		Entry("extensionless name below extensioned directory", "/v1.2/notes", fallback),
		Entry("dot file", "/.env", "/.env"),
		Entry("fallback document itself", fallback, fallback),
		Entry("nested route", "/singer1/track/42", fallback),
		Entry("only a single trailing slash gets stripped", "/LICENSE//", fallback),
	)

	DescribeTable("treats paths with and without a trailing slash the same",
		func(p string) {
			Expect(EffectivePath(embStaticFs, p+"/", fallback)).To(
				Equal(EffectivePath(embStaticFs, p, fallback)))
		},
		Entry(nil, "/singer1"),
		Entry(nil, "/app.js"),
		Entry(nil, "/missing.js"),
		Entry(nil, "/LICENSE"),
		Entry(nil, "/public"),
		Entry(nil, "/v1.2"),
		Entry(nil, "/static/js/some.js"),
	)

	DescribeTable("never checks the existence of extensioned paths",
		func(p string) {
			fsys := &countingFS{FS: embStaticFs}
			Expect(EffectivePath(fsys, p, fallback)).To(Equal(p))
			Expect(fsys.accesses).To(BeZero())
		},
		Entry(nil, "/app.js"),
		Entry(nil, "/missing.js"),
		Entry(nil, "/no/such/dir/style.css"),
		Entry(nil, "/v1.2"),
	)

	It("checks the existence of extensionless paths in the serving root", func() {
		fsys := fstest.MapFS{
			"index.html": &fstest.MapFile{Data: []byte("<html></html>")},
			"CHANGES":    &fstest.MapFile{Data: []byte("v1")},
			"docs/FAQ":   &fstest.MapFile{Data: []byte("?")},
			"link":       &fstest.MapFile{Mode: fs.ModeSymlink},
		}
		Expect(EffectivePath(fsys, "/CHANGES", fallback)).To(Equal("/CHANGES"))
		Expect(EffectivePath(fsys, "/docs/FAQ", fallback)).To(Equal("/docs/FAQ"))
		Expect(EffectivePath(fsys, "/docs", fallback)).To(Equal(fallback))
		Expect(EffectivePath(fsys, "/link", fallback)).To(Equal(fallback))

		delete(fsys, "CHANGES")
		Expect(EffectivePath(fsys, "/CHANGES", fallback)).To(Equal(fallback))
	})

	DescribeTable("is idempotent",
		func(p string) {
			effective := EffectivePath(embStaticFs, p, fallback)
			Expect(EffectivePath(embStaticFs, effective, fallback)).To(Equal(effective))
		},
		Entry(nil, "/"),
		Entry(nil, ""),
		Entry(nil, "/singer1"),
		Entry(nil, "/gavriel/"),
		Entry(nil, "/app.js/"),
		Entry(nil, "/missing.js"),
		Entry(nil, "/LICENSE/"),
		Entry(nil, "/public/"),
		Entry(nil, "/v1.2/"),
	)

})
