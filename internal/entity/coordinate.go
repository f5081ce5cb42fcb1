package entity

import (
	"errors"
	"fmt"
)

// BoardSize is the side length of the square board; valid coordinates are 0..BoardSize-1.
const BoardSize = 10

var ErrOutOfBoard = errors.New("coordinate is out of board")

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coordinate) Validate() error {
	if that.X < 0 || that.X >= BoardSize || that.Y < 0 || that.Y >= BoardSize {
		return fmt.Errorf("%w: %s", ErrOutOfBoard, that)
	}

	return nil
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", that.X, that.Y)
}
