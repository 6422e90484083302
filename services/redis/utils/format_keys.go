package utils

import (
	"fmt"
	"strings"
)

// FormatRoomKey returns the Redis key for a room's full state.
// Key format: "room:{id}:state"
func FormatRoomKey(roomID string) string {
	return fmt.Sprintf("room:%s:state", roomID)
}

// FormatRoomCodeKey returns the Redis key for the join-code index entry.
// Key format: "roomcode:{CODE}" (codes are case-insensitive, stored upper)
func FormatRoomCodeKey(code string) string {
	return fmt.Sprintf("roomcode:%s", strings.ToUpper(code))
}
