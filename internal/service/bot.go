package service

import (
	"math/rand"
	"time"

	"github.com/rocketscienceinc/battleships-bot/internal/entity"
)

// Shooter picks the next cell to fire at.
type Shooter interface {
	NextShot() entity.Coordinate
}

type randomShooter struct {
	rnd *rand.Rand
}

// NewRandomShooter - fires at uniformly random cells. Replace with a real strategy.
func NewRandomShooter() Shooter {
	return NewRandomShooterWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewRandomShooterWithSource(src rand.Source) Shooter {
	return &randomShooter{
		rnd: rand.New(src), //nolint: gosec // it's ok
	}
}

func (that *randomShooter) NextShot() entity.Coordinate {
	return entity.Coordinate{
		X: that.rnd.Intn(entity.BoardSize),
		Y: that.rnd.Intn(entity.BoardSize),
	}
}
