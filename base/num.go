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

// Clip limits a value into [low, high].
func Clip(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// ClipInt limits an integer into [low, high].
func ClipInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// LinSpace makes a vec of size evenly spaced values spanning [low, high]
// inclusive at both ends. Panic if size is less than 2.
func LinSpace(low, high float64, size int) []float64 {
	if size < 2 {
		panic("LinSpace requires at least 2 values")
	}
	ret := make([]float64, size)
	step := (high - low) / float64(size-1)
	for i := range ret {
		ret[i] = low + float64(i)*step
	}
	// avoid rounding drift at the right end
	ret[size-1] = high
	return ret
}
