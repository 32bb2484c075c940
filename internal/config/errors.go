// Package config provides layered configuration and CLI options for cascaler.
package config

import "errors"

// Sentinel errors for configuration and option validation.
var (
	// ErrMutuallyExclusiveDims indicates both percent and width/height were given.
	ErrMutuallyExclusiveDims = errors.New("cannot specify both width/height and percent")

	// ErrMutuallyExclusiveStartDims indicates both start-percent and start-width/height were given.
	ErrMutuallyExclusiveStartDims = errors.New("cannot specify both start-width/start-height and start-percent")

	// ErrMutuallyExclusiveWindow indicates both end and duration were given.
	ErrMutuallyExclusiveWindow = errors.New("cannot specify both end and duration")

	// ErrInvalidFPS indicates a non-positive FPS value.
	ErrInvalidFPS = errors.New("fps must be greater than 0")

	// ErrInvalidWindow indicates start >= end for the trim window.
	ErrInvalidWindow = errors.New("start must be before end")

	// ErrInvalidDeltaX indicates a deltaX value outside 0..1.
	ErrInvalidDeltaX = errors.New("deltaX must be between 0 and 1")

	// ErrInvalidRigidity indicates a rigidity value outside 0..10.
	ErrInvalidRigidity = errors.New("rigidity must be between 0 and 10")

	// ErrInvalidCRF indicates a CRF value outside 0..51.
	ErrInvalidCRF = errors.New("CRF value must be between 0 and 51")

	// ErrInputNotFound indicates the input path does not exist.
	ErrInputNotFound = errors.New("input path does not exist")

	// ErrUnsupportedOutputExt indicates an output video extension that isn't .mp4 or .mkv.
	ErrUnsupportedOutputExt = errors.New("output video extension must be .mp4 or .mkv")
)
