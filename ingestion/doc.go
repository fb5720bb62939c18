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

// Package ingestion loads local documents into an object store.
//
// The Pipeline walks a directory, keeps the files the search corpus can
// read, and uploads them concurrently under a key prefix. Uploads are
// retried with exponential backoff; files that still fail are reported
// without aborting the rest of the import.
package ingestion
