package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serviclima/scheduling/models"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// slotTTL keeps availability responses fresh enough that a booking made
// elsewhere shows up within a minute.
const slotTTL = 60 * time.Second

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		fmt.Println("REDIS_ADDR not set, slot caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func slotKey(date string, serviceType models.ServiceType) string {
	return fmt.Sprintf("slots:%s:%s", date, serviceType)
}

// CacheSlots stores a computed slot list for one date/service-type query.
func CacheSlots(date string, serviceType models.ServiceType, slots []models.TimeSlot) {
	if Client == nil {
		return
	}
	payload, err := json.Marshal(slots)
	if err != nil {
		return
	}
	Client.Set(Ctx, slotKey(date, serviceType), payload, slotTTL)
}

// GetCachedSlots returns a cached slot list, or ok=false on miss or when
// Redis is not configured.
func GetCachedSlots(date string, serviceType models.ServiceType) ([]models.TimeSlot, bool) {
	if Client == nil {
		return nil, false
	}
	payload, err := Client.Get(Ctx, slotKey(date, serviceType)).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []models.TimeSlot
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// InvalidateSlots drops every cached slot list. Mutations call this so the
// next availability query recomputes against current bookings.
func InvalidateSlots() {
	if Client == nil {
		return
	}
	iter := Client.Scan(Ctx, 0, "slots:*", 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
