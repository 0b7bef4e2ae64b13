// Package domain holds the records the sandbox keeps about finished runs.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/mazebot/robot"
	"github.com/beka-birhanu/mazebot/simulation"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned when no stored run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// Engine names a decider a learner can run.
type Engine string

const (
	EngineTremaux      Engine = "tremaux"
	EngineWallFollower Engine = "wallfollower"
)

// Valid reports whether e names a known engine.
func (e Engine) Valid() bool {
	return e == EngineTremaux || e == EngineWallFollower
}

// Run is one finished attempt of a learner on a named board.
type Run struct {
	ID        uuid.UUID          `bson:"_id" json:"id"`
	LearnerID uuid.UUID          `bson:"learnerId" json:"learner_id"`
	Learner   string             `bson:"learner" json:"learner"`
	Board     string             `bson:"board" json:"board"`
	Engine    Engine             `bson:"engine" json:"engine"`
	Rotation  string             `bson:"rotation" json:"rotation"`
	Outcome   simulation.Outcome `bson:"outcome" json:"outcome"`
	Steps     int                `bson:"steps" json:"steps"`
	Bumps     int                `bson:"bumps" json:"bumps"`
	Moves     []robot.Move       `bson:"moves" json:"moves"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Duration  time.Duration      `bson:"duration" json:"duration"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// Reached reports whether the run ended on the exit.
func (r *Run) Reached() bool {
	return r.Outcome == simulation.OutcomeReached
}

// Standing is one leaderboard entry: a learner's fewest steps on a board.
type Standing struct {
	Learner string `json:"learner"`
	Steps   int    `json:"steps"`
}
