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

import "errors"

// Errors returned by Prepare.  All of them are terminal for the call; the
// computation is deterministic, so retrying with the same input gives the
// same result.
var (
	// ErrInvalidTolerance indicates a tolerance which is not a positive,
	// finite number.  No curve is processed in this case.
	ErrInvalidTolerance = errors.New("segnet: tolerance must be positive and finite")

	// ErrInputEmpty indicates that no edge survived snapping, filtering
	// and deduplication.
	ErrInputEmpty = errors.New("segnet: no edges left after cleaning")

	// ErrCancelled indicates that the context was cancelled while the
	// pipeline was running.  The returned error also wraps the context
	// error.
	ErrCancelled = errors.New("segnet: cancelled")
)
