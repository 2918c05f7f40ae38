// Copyright 2025 The Cooking Voice Assistant Authors
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

// Domain errors
var (
	// ErrInvalidSourceType indicates an unknown source type name or value.
	ErrInvalidSourceType = errors.New("invalid source type")

	// ErrInvalidTransition indicates a status transition that would move an
	// item backwards or out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrEmptyContent indicates the RawText field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingPayload indicates an item lacks the payload its source type requires.
	ErrMissingPayload = errors.New("missing variant payload")
)
