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

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	headline = color.New(color.FgGreen, color.Bold)
	hint     = color.New(color.Faint)
)

// printBanner tells the user where to point their browser to.
func printBanner(w io.Writer, port int, root string) {
	url := fmt.Sprintf("http://localhost:%d", port)
	headline.Fprintf(w, "✨ SPA server running at %s\n", url)
	fmt.Fprintf(w, "📁 Serving from: %s\n", root)
	fmt.Fprintf(w, "\n🧭 Client-side routes such as %s/some/route serve the index document\n", url)
	hint.Fprintf(w, "\n⏹️  Press Ctrl+C to stop\n\n")
}

func printStopped(w io.Writer) {
	headline.Fprintf(w, "\n👋 Server stopped\n")
}
