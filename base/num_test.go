// Copyright 2025 descent Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, Clip(0.5, 1, 2))
	assert.Equal(t, 2.0, Clip(2.5, 1, 2))
	assert.Equal(t, 1.5, Clip(1.5, 1, 2))
}

func TestClipInt(t *testing.T) {
	assert.Equal(t, 2, ClipInt(1, 2, 10))
	assert.Equal(t, 10, ClipInt(11, 2, 10))
	assert.Equal(t, 5, ClipInt(5, 2, 10))
}

func TestLinSpace(t *testing.T) {
	vec := LinSpace(-5, 5, 11)
	assert.Equal(t, 11, len(vec))
	assert.Equal(t, -5.0, vec[0])
	assert.Equal(t, 5.0, vec[10])
	assert.InDelta(t, -4.0, vec[1], 1e-12)
	assert.Panics(t, func() { LinSpace(0, 1, 1) })
}
