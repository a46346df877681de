// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync/atomic"
	"time"
)

// ServerStats tracks usage counters for the lifetime of the server.
type ServerStats struct {
	StartTime time.Time

	sessionsCreated atomic.Int64
	submissions     atomic.Int64
	rejected        atomic.Int64
	resets          atomic.Int64
}

// NewServerStats creates zeroed counters starting now.
func NewServerStats() *ServerStats {
	return &ServerStats{StartTime: time.Now()}
}

// StatsResponse is the JSON form of ServerStats.
type StatsResponse struct {
	SessionsCreated int64  `json:"sessions_created"`
	SessionsLive    int    `json:"sessions_live"`
	Submissions     int64  `json:"submissions"`
	Rejected        int64  `json:"rejected"`
	Resets          int64  `json:"resets"`
	Uptime          string `json:"uptime"`
}

// Snapshot returns the current counter values.
func (s *ServerStats) Snapshot(live int) StatsResponse {
	return StatsResponse{
		SessionsCreated: s.sessionsCreated.Load(),
		SessionsLive:    live,
		Submissions:     s.submissions.Load(),
		Rejected:        s.rejected.Load(),
		Resets:          s.resets.Load(),
		Uptime:          s.Uptime().Round(time.Second).String(),
	}
}

// Uptime returns how long the server has been running.
func (s *ServerStats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}
