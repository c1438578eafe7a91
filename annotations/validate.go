package annotations

import (
	"errors"

	"annotation-playground/datastructures"
)

// ErrInvalidBoundingBox is returned when a submitted bounding box has a
// minimum coordinate that isn't strictly below its maximum on both axes.
var ErrInvalidBoundingBox = errors.New("invalid bounding box coordinates")

// Validate checks the bounding boxes in submission order and bails out on
// the first invalid one. A request is accepted or rejected as a whole.
func Validate(bboxes []datastructures.BoundingBox) error {
	for _, bbox := range bboxes {
		if bbox.XMin >= bbox.XMax || bbox.YMin >= bbox.YMax {
			return ErrInvalidBoundingBox
		}
	}

	return nil
}
