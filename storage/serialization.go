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

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/sift/core"
)

// MarshalObjectInfo serializes object metadata to bytes.
// ModifiedAt is stored with microsecond precision.
func MarshalObjectInfo(info core.ObjectInfo) []byte {
	modified := modifiedMicros(info.ModifiedAt)
	size := ord.String.Size(info.Key) +
		varint.Int64.Size(info.Size) +
		ord.String.Size(info.ETag) +
		varint.Int64.Size(modified)

	buf := make([]byte, size)
	n := ord.String.Marshal(info.Key, buf)
	n += varint.Int64.Marshal(info.Size, buf[n:])
	n += ord.String.Marshal(info.ETag, buf[n:])
	varint.Int64.Marshal(modified, buf[n:])
	return buf
}

// UnmarshalObjectInfo deserializes object metadata from bytes.
func UnmarshalObjectInfo(data []byte) (core.ObjectInfo, error) {
	var info core.ObjectInfo

	key, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return info, fmt.Errorf("%w: key: %w", ErrSerializationFailed, err)
	}
	offset := n

	size, n, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return info, fmt.Errorf("%w: size: %w", ErrSerializationFailed, err)
	}
	offset += n

	etag, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return info, fmt.Errorf("%w: etag: %w", ErrSerializationFailed, err)
	}
	offset += n

	modified, n, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return info, fmt.Errorf("%w: modified: %w", ErrSerializationFailed, err)
	}
	offset += n

	if offset != len(data) {
		return info, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-offset)
	}

	info.Key = key
	info.Size = size
	info.ETag = etag
	if modified != 0 {
		info.ModifiedAt = time.UnixMicro(modified).UTC()
	}
	return info, nil
}

func modifiedMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}
