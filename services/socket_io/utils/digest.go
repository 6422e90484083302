package socketio_utils

import (
	"fmt"
	"hash/fnv"

	"shapekeeper/services/game"
)

// StateDigest produces a short fingerprint of the parts of room state clients
// render: status, whose turn it is, board progress and scores. Broadcast with
// every game_updated so clients can skip redundant re-renders.
func StateDigest(st *game.RoomState) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d", st.Status, st.CurrentPlayerIndex,
		st.Direction, len(st.Lines), len(st.Squares))
	for _, p := range st.Players {
		fmt.Fprintf(h, "|%s:%d:%t", p.ID, p.Score, p.IsConnected)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
