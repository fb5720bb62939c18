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

// Package search runs a query over every document in the corpus.
//
// A Searcher lists the corpus, fetches and extracts each document on a
// worker pool, applies the exact and fuzzy matching rules, and assembles
// highlighted snippets in corpus listing order. Documents that cannot be
// fetched or decoded are skipped; only a listing failure aborts a search.
package search
