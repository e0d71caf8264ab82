// Copyright 2022, 2026 Harald Albrecht.
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
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// DefaultIndex is the name of the fallback document served for all client-side
// routes.
const DefaultIndex = "index.html"

// SPAHandler implements an http.Handler that serves static assets from an fs.FS
// and the Index file for all other request paths, so that client-side DOM
// routers see the original URL. See EffectivePath for the routing rules.
type SPAHandler struct {
	fs                fs.FS         // the FS to serve static resources from.
	index             string        // (unrooted) path and name of the index/SPA file inside fs.
	staticfileHandler http.Handler  // FS adapted to http's file serving handler needs.
	indexRewriter     IndexRewriter // optional user function to rewrite the index/SPA file as necessary.
}

// NewSPAHandler returns a new HTTP handler serving static resources from the
// specified fs. It serves the index resource instead whenever a request path
// without a file extension doesn't match a regular file on the specified fs.
// The index resource should be specified as an unrooted, slash-separated
// path+name to be servable from the given fs; but NewSPAHandler will sanitize
// the index path anyway. An empty index defaults to DefaultIndex.
//
// In order to serve the static resources from a directory on the OS file
// system, use os.DirFS:
//
//	h := NewSPAHandler(os.DirFS("/home/dev/myspa"), "index.html")
func NewSPAHandler(fsys fs.FS, index string, opts ...SPAHandlerOption) *SPAHandler {
	if index == "" {
		index = DefaultIndex
	}
	h := &SPAHandler{
		fs:                fsys,
		staticfileHandler: http.FileServer(http.FS(filesOnlyFS{fsys})),
		index:             path.Clean("/" + index)[1:],
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SPAHandlerOption sets optional properties at the time of creating an
// SPAHandler.
type SPAHandlerOption func(*SPAHandler)

// IndexRewriter rewrites (parts) of an index/SPA file contents to be delivered
// to a requesting client. It can be optionally activated using the
// WithIndexRewriter option when creating a new SPAHandler.
type IndexRewriter func(r *http.Request, index string) string

// WithIndexRewriter sets the specified IndexRewriter that gets called before
// delivering the index/SPA file contents to requesting clients, allowing for
// application-specific changes.
func WithIndexRewriter(rewriter IndexRewriter) SPAHandlerOption {
	return func(h *SPAHandler) {
		h.indexRewriter = rewriter
	}
}

// Index returns the unrooted path of the index/SPA file inside the served fs.
func (h *SPAHandler) Index() string { return h.index }

// ServeHTTP either hands the request to a plain file server or serves the index
// file, depending on the request's effective path. Only GET and HEAD requests
// are accepted.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// Slapping "/" ensures that path.Clean does NOT use the current working
	// dir for resolving the request path, and that no parent directory
	// traversal can escape the served fs.
	effective := EffectivePath(h.fs, path.Clean("/"+r.URL.Path), "/"+h.index)
	switch {
	case effective == "/"+h.index:
		h.serveFile(w, r, h.index, h.indexRewriter)
	case path.Base(effective) == "index.html":
		h.serveFile(w, r, effective[1:], nil)
	default:
		h.staticfileHandler.ServeHTTP(w, withPath(r, effective))
	}
}

// serveFile serves the regular file name (unrooted) from the SPAHandler's fs,
// passing its contents through the optional rewriter first. It doesn't use the
// file server, as that redirects any ".../index.html" request to its directory,
// which in turn would get the fallback document.
func (h *SPAHandler) serveFile(w http.ResponseWriter, r *http.Request, name string, rewriter IndexRewriter) {
	var err error
	defer func() {
		if err != nil {
			NormalizedHttpError(w, err)
		}
	}()
	f, err := h.fs.Open(name)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()
	fileInfo, err := f.Stat()
	if err != nil {
		return
	}
	if !fileInfo.Mode().IsRegular() {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		return
	}
	base := path.Base(name)
	if rewriter == nil {
		if rs, ok := f.(io.ReadSeeker); ok {
			http.ServeContent(w, r, base, fileInfo.ModTime(), rs)
			return
		}
	}
	contents, err := io.ReadAll(f)
	if err != nil {
		return
	}
	doc := string(contents)
	if rewriter != nil {
		doc = rewriter(r, doc)
	}
	http.ServeContent(w, r, base, fileInfo.ModTime(), strings.NewReader(doc))
}

// withPath returns a shallow copy of r with its URL path replaced by the
// specified (rooted and clean) path.
func withPath(r *http.Request, p string) *http.Request {
	if r.URL.Path == p {
		return r
	}
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = p
	r2.URL.RawPath = ""
	return r2
}

// filesOnlyFS hides all directories from the file server, so
// that it neither lists directory contents nor redirects directory paths to
// their trailing-slash form, which EffectivePath would strip again.
type filesOnlyFS struct {
	fs.FS
}

// Open implements fs.FS, reporting directories as non-existing.
func (f filesOnlyFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return file, nil
}
