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

import "fmt"

// ValidateCompanyRecord validates a CompanyRecord according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - NormalizedName must not be empty
//   - NormalizedName must equal NormalizeName(Name) exactly
//
// NOT validated:
//   - Industry, EmployeeSize, LogoURL (free text, optional)
//   - CreatedAt/UpdatedAt (stamped by whoever writes the record)
func ValidateCompanyRecord(record *CompanyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCompanyRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, ErrEmptyName)
	}

	if record.NormalizedName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCompanyRecord, ErrEmptyNormalizedName)
	}

	if want := NormalizeName(record.Name); record.NormalizedName != want {
		return fmt.Errorf("%w: %w: got %q, want %q",
			ErrInvalidCompanyRecord, ErrNormalizedNameMismatch, record.NormalizedName, want)
	}

	return nil
}
