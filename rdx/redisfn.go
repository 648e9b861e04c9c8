package rdx

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"wayfare/db"
	"wayfare/globals"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSetWithTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}

// IncrementPlaceViews bumps the Redis-side view counter for a place.
func IncrementPlaceViews(placeID string) {
	if err := Conn.Incr(globals.Ctx, "views:place:"+placeID).Err(); err != nil {
		log.Println("Redis view incr error:", err)
	}
}

// FlushPlaceViews drains accumulated view counters from Redis into the
// places collection in bulk. Runs as a background goroutine.
func FlushPlaceViews() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "views:place:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			placeID, ok := placeIDFromViewKey(key)
			if !ok {
				log.Println("Invalid Redis view key format:", key)
				continue
			}

			// Atomic read-and-clear so increments landing mid-flush
			// stay in a fresh counter instead of being dropped.
			countStr, err := Conn.GetDel(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis GetDel error for key", key, ":", err)
				continue
			}

			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse view count:", countStr)
				continue
			}
			if count == 0 {
				continue
			}

			_, err = db.PlacesCollection.UpdateOne(globals.Ctx,
				bson.M{"placeid": placeID},
				bson.M{"$inc": bson.M{"views": count}},
			)
			if err != nil {
				log.Println("MongoDB update error for place", placeID, ":", err)
				// Put the drained count back so it is retried next tick.
				if rerr := Conn.IncrBy(globals.Ctx, key, count).Err(); rerr != nil {
					log.Println("Failed to restore view count for", placeID, ":", rerr)
				}
				continue
			}
		}
	}
}

func placeIDFromViewKey(key string) (string, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != "views" || parts[1] != "place" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
