package world

import (
	"encoding/binary"

	"github.com/l1jgo/ticksim/internal/core/ecs"
	"golang.org/x/crypto/blake2b"
)

// deriveSeed gives every actor an independent RNG stream per purpose,
// stable for a given world seed and spawn order.
func deriveSeed(worldSeed uint64, id ecs.EntityID, purpose string) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], worldSeed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(id))
	sum := blake2b.Sum256(append(buf[:], purpose...))
	return int64(binary.LittleEndian.Uint64(sum[:8]) & (1<<63 - 1))
}
