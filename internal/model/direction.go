package model

import "fmt"

// Direction names one step a piece can take from a square.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
	LongLeftUp
	LongUpLeft
	LongUpRight
	LongRightUp
	LongRightDown
	LongDownRight
	LongDownLeft
	LongLeftDown
	CastleShort
	CastleLong
)

// Transform maps a square to its neighbor along one direction. The result
// may be off the board; callers check Position.OnBoard.
type Transform func(Position) Position

type offset struct{ file, rank int }

var directionOffsets = [...]offset{
	Up:            {0, 1},
	Down:          {0, -1},
	Left:          {-1, 0},
	Right:         {1, 0},
	UpLeft:        {-1, 1},
	UpRight:       {1, 1},
	DownLeft:      {-1, -1},
	DownRight:     {1, -1},
	LongLeftUp:    {-2, 1},
	LongUpLeft:    {-1, 2},
	LongUpRight:   {1, 2},
	LongRightUp:   {2, 1},
	LongRightDown: {2, -1},
	LongDownRight: {1, -2},
	LongDownLeft:  {-1, -2},
	LongLeftDown:  {-2, -1},
	CastleShort:   {2, 0},
	CastleLong:    {-2, 0},
}

var directionNames = [...]string{
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
	UpLeft:        "up_left",
	UpRight:       "up_right",
	DownLeft:      "down_left",
	DownRight:     "down_right",
	LongLeftUp:    "long_left_up",
	LongUpLeft:    "long_up_left",
	LongUpRight:   "long_up_right",
	LongRightUp:   "long_right_up",
	LongRightDown: "long_right_down",
	LongDownRight: "long_down_right",
	LongDownLeft:  "long_down_left",
	LongLeftDown:  "long_left_down",
	CastleShort:   "castle_short",
	CastleLong:    "castle_long",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Apply steps once from p along d.
func (d Direction) Apply(p Position) Position {
	o := directionOffsets[d]
	return Position{File: p.File + o.file, Rank: p.Rank + o.rank}
}

// Transform returns d as a standalone transform.
func (d Direction) Transform() Transform {
	return d.Apply
}

// ParseDirection resolves a direction by name, e.g. "long_down_right".
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}

// Transforms resolves dirs to their transforms in the same order. The order
// matters: it is the order rays are walked in.
func Transforms(dirs []Direction) []Transform {
	out := make([]Transform, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, d.Transform())
	}
	return out
}
