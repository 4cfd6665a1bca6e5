// ABOUTME: Sentinel errors for the geo package
// ABOUTME: Callers match these with errors.Is to detect bad input

package geo

import "errors"

// ErrInvalidCoordinate is returned when a latitude or longitude is
// out of range or not a finite number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrInvalidDistance is returned by Classify for a negative or
// non-finite distance.
var ErrInvalidDistance = errors.New("invalid distance")
