package geo

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal grid directions, used both for
// tile connectivity and for grid adjacency.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists all four directions in canonical order.
var Directions = [4]Direction{North, South, East, West}

var directionNames = [4]string{"north", "south", "east", "west"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Offset returns the grid delta of one step in direction d.
// North is -Y (up on screen), south is +Y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

// ParseDirection converts a lowercase direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, nil
	case "south":
		return South, nil
	case "east":
		return East, nil
	case "west":
		return West, nil
	}
	return North, fmt.Errorf("geo: unknown direction %q", s)
}

// DirSet is a set of directions packed into a bitmask. The zero value
// is the empty set.
type DirSet uint8

// NewDirSet builds a set from the given directions.
func NewDirSet(dirs ...Direction) DirSet {
	var s DirSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// ParseDirSet builds a set from direction names, as they appear in
// catalog files.
func ParseDirSet(names []string) (DirSet, error) {
	var s DirSet
	for _, n := range names {
		d, err := ParseDirection(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(d)
	}
	return s, nil
}

// Add returns the set with d included.
func (s DirSet) Add(d Direction) DirSet {
	return s | 1<<d
}

// Has reports whether d is in the set.
func (s DirSet) Has(d Direction) bool {
	return s&(1<<d) != 0
}

// Union returns the set of directions in either s or t.
func (s DirSet) Union(t DirSet) DirSet {
	return s | t
}

// Count returns the number of directions in the set.
func (s DirSet) Count() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Directions returns the members in canonical order.
func (s DirSet) Directions() []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Names returns the member names in canonical order, for serialization.
func (s DirSet) Names() []string {
	out := make([]string, 0, 4)
	for _, d := range s.Directions() {
		out = append(out, d.String())
	}
	return out
}

func (s DirSet) String() string {
	if s == 0 {
		return "{}"
	}
	return "{" + strings.Join(s.Names(), ",") + "}"
}
