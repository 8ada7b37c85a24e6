package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/service/match"
)

// SnapshotSource is satisfied by the websocket hub.
type SnapshotSource interface {
	Latest() (match.Snapshot, bool)
}

// ScoreSource is satisfied by the scoreboard service.
type ScoreSource interface {
	Totals(ctx context.Context) (map[domain.PlayerID]int64, error)
}

type WatchHandler struct {
	Snapshots SnapshotSource
	Scores    ScoreSource
}

func NewWatchHandler(snapshots SnapshotSource, scores ScoreSource) *WatchHandler {
	return &WatchHandler{Snapshots: snapshots, Scores: scores}
}

type scoreResponse struct {
	Player string `json:"player"`
	Wins   int64  `json:"wins"`
}

// GetMatch returns the latest snapshot of the round being played.
func (h *WatchHandler) GetMatch(c *gin.Context) {
	snap, ok := h.Snapshots.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No round has started yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetScores returns the stored win totals of both players.
func (h *WatchHandler) GetScores(c *gin.Context) {
	totals, err := h.Scores.Totals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scores"})
		return
	}

	response := []scoreResponse{
		{Player: domain.PlayerA.String(), Wins: totals[domain.PlayerA]},
		{Player: domain.PlayerB.String(), Wins: totals[domain.PlayerB]},
	}
	c.JSON(http.StatusOK, response)
}
