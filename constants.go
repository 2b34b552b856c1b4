// seehuhn.de/go/segnet - segment network preparation for network analysis
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package segnet

// Default values for the pipeline parameters.
const (
	// DefaultTolerance is the snapping grid size used by DefaultOptions.
	DefaultTolerance = 0.001

	// defaultFlatness is the maximum distance between a freeform curve
	// and the chords which replace it.
	defaultFlatness = 0.01

	// defaultAngleTolerance is the largest deviation from a straight
	// angle, in radians, at which CollinearMerger joins two edges.
	// About 0.057 degrees.
	defaultAngleTolerance = 1e-3

	// defaultMergePasses bounds the number of sweeps of CollinearMerger.
	defaultMergePasses = 16
)

// Numerical limits.
const (
	// maxChords is the largest number of chords used for one Bézier
	// segment.
	maxChords = 1 << 16

	// maxGridIndex is the largest grid index.  All integers up to this
	// size are exactly representable as float64.
	maxGridIndex = 1 << 52

	// hashChunk is the number of 8-byte words hashed at a time.
	hashChunk = 512
)
