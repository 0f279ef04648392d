package hacker

import (
	"errors"
	"fmt"
)

// Entity is one of the four things that can occupy a cell.
// Entities carry no state; identity is the kind alone.
type Entity uint8

const (
	Player Entity = iota + 1
	Destroyable
	Collectable
	Blocker
)

// Display tags.
const (
	TagPlayer      = 'P'
	TagDestroyable = 'D'
	TagCollectable = 'C'
	TagBlocker     = 'B'
)

// ErrUnknownEntityKind is returned when a display tag does not name an entity.
var ErrUnknownEntityKind = errors.New("hacker: unknown entity kind")

// UnknownEntityKindError carries the tag that failed to parse.
type UnknownEntityKindError struct {
	Tag rune
}

func (e *UnknownEntityKindError) Error() string {
	return fmt.Sprintf("hacker: unknown entity kind %q", e.Tag)
}

// Is reports ErrUnknownEntityKind as a match.
func (e *UnknownEntityKindError) Is(target error) bool {
	return target == ErrUnknownEntityKind
}

// Display returns the single-character tag for the entity.
func (e Entity) Display() rune {
	switch e {
	case Player:
		return TagPlayer
	case Destroyable:
		return TagDestroyable
	case Collectable:
		return TagCollectable
	case Blocker:
		return TagBlocker
	default:
		return '?'
	}
}

// String returns the entity name.
func (e Entity) String() string {
	switch e {
	case Player:
		return "Player"
	case Destroyable:
		return "Destroyable"
	case Collectable:
		return "Collectable"
	case Blocker:
		return "Blocker"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is one of the four kinds.
func (e Entity) Valid() bool {
	return e >= Player && e <= Blocker
}

// ParseEntity returns the entity for a display tag.
func ParseEntity(tag rune) (Entity, error) {
	switch tag {
	case TagPlayer:
		return Player, nil
	case TagDestroyable:
		return Destroyable, nil
	case TagCollectable:
		return Collectable, nil
	case TagBlocker:
		return Blocker, nil
	default:
		return 0, &UnknownEntityKindError{Tag: tag}
	}
}

// MustParseEntity is like ParseEntity but panics on an unknown tag.
// Only used where the tag alphabet is fixed by this package.
func MustParseEntity(tag rune) Entity {
	e, err := ParseEntity(tag)
	if err != nil {
		panic(err)
	}
	return e
}
