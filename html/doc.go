// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package html implements a small DOM-like tree used as the lowering
// target for the markdown package: elements, text, and comments, with
// attribute normalization, serialization, a tag-and-attribute
// allowlist sanitizer, and a micro-parser for inline and block HTML
// fragments.
//
// The tree has no identity beyond its structural contents: nodes are
// built with factories, mutated through builder-style methods, and
// can be serialized at any point.
package html
