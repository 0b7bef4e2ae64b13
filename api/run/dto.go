// Package runapi exposes sandbox runs and leaderboards over HTTP.
package runapi

import (
	dmn "github.com/beka-birhanu/mazebot/domain"
)

// RunRequest submits a board for a run.
type RunRequest struct {
	Name       string     `json:"name" binding:"required"`
	Board      string     `json:"board" binding:"required"`
	Engine     dmn.Engine `json:"engine"`
	Rotation   string     `json:"rotation"`
	StepBudget int        `json:"step_budget"`
}

// LeaderboardResponse lists the best standings on a board.
type LeaderboardResponse struct {
	Board     string         `json:"board"`
	Standings []dmn.Standing `json:"standings"`
}

// HistoryResponse lists a learner's latest runs.
type HistoryResponse struct {
	Runs []*dmn.Run `json:"runs"`
}
