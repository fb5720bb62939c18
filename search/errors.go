// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import "errors"

var (
	// ErrStoreRequired is returned when an object store is not provided.
	ErrStoreRequired = errors.New("object store required")

	// ErrExtractorRequired is returned when a nil extractor is configured.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrMatcherRequired is returned when a nil matcher is configured.
	ErrMatcherRequired = errors.New("matcher required")

	// ErrSnippetBuilderRequired is returned when a nil snippet builder is configured.
	ErrSnippetBuilderRequired = errors.New("snippet builder required")

	// ErrHighlighterRequired is returned when a nil highlighter is configured.
	ErrHighlighterRequired = errors.New("highlighter required")
)
