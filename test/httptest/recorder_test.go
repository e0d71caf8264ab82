// Copyright 2023, 2026 Harald Albrecht.
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

package httptest

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("wrapped HTTP response recorder", Ordered, func() {

	var msg string

	BeforeEach(func() {
		msg = ""
		RegisterFailHandler(func(message string, callerSkip ...int) {
			msg = message
			RegisterFailHandler(Fail) // reset
		})
	})

	AfterEach(func() {
		RegisterFailHandler(Fail)
	})

	It("passes single use of WriteHeader", func() {
		rr := NewRecorder()
		rr.WriteHeader(200)
		Expect(msg).To(BeEmpty())
	})

	It("fails on superfluous WriteHeader call", func() {
		rr := NewRecorder()
		rr.WriteHeader(200)
		rr.WriteHeader(666)
		Expect(msg).To(ContainSubstring("superfluous response.WriteHeader call"))
	})

})

var _ = Describe("serving test requests", func() {

	It("serves a single request", func() {
		var method, path string
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method, path = r.Method, r.URL.Path
			w.WriteHeader(http.StatusTeapot)
		})
		rr := Get(h, "/foo/bar?baz=42")
		Expect(method).To(Equal(http.MethodGet))
		Expect(path).To(Equal("/foo/bar"))
		Expect(rr.Code).To(Equal(http.StatusTeapot))

		Expect(Serve(h, http.MethodHead, "http://localhost:8000/").Code).To(Equal(http.StatusTeapot))
		Expect(method).To(Equal(http.MethodHead))
		Expect(path).To(Equal("/"))
	})

})
