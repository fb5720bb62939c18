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

package config

import "errors"

var (
	// ErrUnknownBackend is returned when the storage backend is not recognized.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrBucketRequired is returned when the s3 backend has no bucket.
	ErrBucketRequired = errors.New("bucket required")

	// ErrRegionRequired is returned when the s3 backend has no region.
	ErrRegionRequired = errors.New("region required")

	// ErrDBPathRequired is returned when the badger backend has no database path.
	ErrDBPathRequired = errors.New("database path required")

	// ErrInvalidPoolSize is returned when the pool size is negative.
	ErrInvalidPoolSize = errors.New("pool size must not be negative")
)
