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

import (
	"fmt"
	"strings"
)

// ValidateKey checks that an object key can be stored.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// ValidateObjectInfo validates object metadata before it is persisted.
//
// Validation rules:
//   - Key must not be blank
//   - Size must not be negative
//
// NOT validated:
//   - ETag (backends without content hashes leave it empty)
//   - ModifiedAt (zero when the backend does not report it)
func ValidateObjectInfo(info *ObjectInfo) error {
	if info == nil {
		return fmt.Errorf("%w: object is nil", ErrInvalidObject)
	}

	if err := ValidateKey(info.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidObject, err)
	}

	if info.Size < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidObject, ErrNegativeSize)
	}

	return nil
}
