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

	"github.com/poiesic/orgdir/core"
)

// MarshalCompanyRecord serializes a CompanyRecord to bytes.
func MarshalCompanyRecord(record *core.CompanyRecord) []byte {
	buf := make([]byte, core.CompanyRecordMUS.Size(*record))
	core.CompanyRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalCompanyRecord deserializes a CompanyRecord from bytes.
func UnmarshalCompanyRecord(data []byte) (*core.CompanyRecord, error) {
	record, _, err := core.CompanyRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}
