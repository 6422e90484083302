package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shapekeeper/services/game"
	redis_utils "shapekeeper/services/redis/utils"
)

// Room state TTL. Refreshed on every save, so only abandoned rooms expire.
const roomTTL = 24 * time.Hour

// GameStore adapts the Redis client to the engine's store interface. State is
// stored as one JSON blob per room plus a code index entry; the engine
// serializes writers per room, so plain SET/GET is enough.
type GameStore struct {
	rc *RedisClient
}

func NewGameStore(rc *RedisClient) *GameStore {
	return &GameStore{rc: rc}
}

// SaveRoom stores the room state and refreshes the code index entry.
// Key format: "room:{id}:state" and "roomcode:{CODE}"
func (s *GameStore) SaveRoom(st *game.RoomState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("error marshaling room state: %v", err)
	}

	pipe := s.rc.Client.Pipeline()
	pipe.Set(s.rc.Ctx, redis_utils.FormatRoomKey(st.ID), data, roomTTL)
	pipe.Set(s.rc.Ctx, redis_utils.FormatRoomCodeKey(st.Code), st.ID, roomTTL)
	if _, err := pipe.Exec(s.rc.Ctx); err != nil {
		return fmt.Errorf("error saving room state: %v", err)
	}
	return nil
}

// GetRoom retrieves a room's state.
// Key format: "room:{id}:state"
func (s *GameStore) GetRoom(roomID string) (*game.RoomState, error) {
	data, err := s.rc.Client.Get(s.rc.Ctx, redis_utils.FormatRoomKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, game.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error getting room state: %v", err)
	}

	var st game.RoomState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("error unmarshaling room state: %v", err)
	}
	return &st, nil
}

// GetRoomIDByCode resolves a join code to a room id.
// Key format: "roomcode:{CODE}"
func (s *GameStore) GetRoomIDByCode(code string) (string, error) {
	id, err := s.rc.Client.Get(s.rc.Ctx, redis_utils.FormatRoomCodeKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", game.ErrRoomNotFound
		}
		return "", fmt.Errorf("error resolving room code: %v", err)
	}
	return id, nil
}

// DeleteRoom removes the room state and its code index entry.
func (s *GameStore) DeleteRoom(st *game.RoomState) error {
	pipe := s.rc.Client.Pipeline()
	pipe.Del(s.rc.Ctx, redis_utils.FormatRoomKey(st.ID))
	pipe.Del(s.rc.Ctx, redis_utils.FormatRoomCodeKey(st.Code))
	if _, err := pipe.Exec(s.rc.Ctx); err != nil {
		return fmt.Errorf("error deleting room state: %v", err)
	}
	return nil
}
