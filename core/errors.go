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

package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyQuery indicates the query has no non-whitespace characters.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidObject indicates an ObjectInfo failed validation.
	ErrInvalidObject = errors.New("invalid object")

	// ErrEmptyKey indicates an object key is empty.
	ErrEmptyKey = errors.New("key cannot be empty")

	// ErrNegativeSize indicates an object reports a negative size.
	ErrNegativeSize = errors.New("size cannot be negative")
)
