package datastructures

type BoundingBox struct {
	XMin  int    `json:"x_min"`
	YMin  int    `json:"y_min"`
	XMax  int    `json:"x_max"`
	YMax  int    `json:"y_max"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

type BoundingBoxRequest struct {
	ImageId string        `json:"image_id"`
	BBoxes  []BoundingBox `json:"bboxes"`
}

type BoundingBoxResponse struct {
	Message string        `json:"message"`
	ImageId string        `json:"image_id"`
	BBoxes  []BoundingBox `json:"bboxes"`
}
