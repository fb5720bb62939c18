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

// Package extract turns raw document bytes into the flat line model used by
// the matcher.
//
// Each supported format has a LineExtractor:
//   - PDF: one entry per page in page order, split on newlines
//   - XLSX / XLS: one line per non-empty row, sheets in order, cells joined by
//     two spaces
//
// The Registry dispatches on the key suffix and always returns a
// core.Document. Decode errors and decoder panics become a failed document
// rather than an error, so one malformed file never aborts a corpus scan.
package extract
