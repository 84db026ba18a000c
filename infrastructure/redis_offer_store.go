package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"coinbot/domain/entities"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	offerKeyPrefix   = "coinbot:offer:"
	notOwnerSentinel = "__not_owner__"
)

// claimOfferScript deletes the offer only when the caller owns it.
// Returns nil when the key is gone, the sentinel for another owner, else the payload.
var claimOfferScript = redis.NewScript(`
local owner = redis.call('HGET', KEYS[1], 'owner')
if not owner then
	return false
end
if owner ~= ARGV[1] then
	return '` + notOwnerSentinel + `'
end
local payload = redis.call('HGET', KEYS[1], 'payload')
redis.call('DEL', KEYS[1])
return payload
`)

// RedisOfferStore keeps three-card offers in redis so any bot instance can resolve them.
// Abandoned offers disappear with the key TTL.
type RedisOfferStore struct {
	client *redis.Client
}

// NewRedisOfferStore creates an offer store on client
func NewRedisOfferStore(client *redis.Client) *RedisOfferStore {
	return &RedisOfferStore{client: client}
}

func offerKey(offerID string) string {
	return offerKeyPrefix + offerID
}

// Save stores the offer until its ExpiresAt
func (s *RedisOfferStore) Save(ctx context.Context, wager *entities.PendingWager) error {
	payload, err := json.Marshal(wager)
	if err != nil {
		return fmt.Errorf("failed to marshal offer %s: %w", wager.OfferID, err)
	}

	key := offerKey(wager.OfferID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "owner", strconv.FormatInt(wager.DiscordID, 10), "payload", string(payload))
		pipe.ExpireAt(ctx, key, wager.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save offer %s: %w", wager.OfferID, err)
	}
	return nil
}

// Claim consumes the offer if callerID placed it
func (s *RedisOfferStore) Claim(ctx context.Context, offerID string, callerID int64) (*entities.PendingWager, error) {
	result, err := claimOfferScript.Run(ctx, s.client, []string{offerKey(offerID)}, strconv.FormatInt(callerID, 10)).Text()
	if errors.Is(err, redis.Nil) {
		return nil, entities.ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim offer %s: %w", offerID, err)
	}
	if result == notOwnerSentinel {
		return nil, entities.ErrNotOwner
	}

	var wager entities.PendingWager
	if err := json.Unmarshal([]byte(result), &wager); err != nil {
		// The offer is already gone; nothing can settle it now
		log.WithFields(log.Fields{
			"offerID": offerID,
			"error":   err,
		}).Error("Dropping unreadable offer payload")
		return nil, fmt.Errorf("failed to decode offer %s: %w", offerID, err)
	}
	if !wager.IsOwnedBy(callerID) {
		return nil, fmt.Errorf("offer %s payload names bettor %d: %w", offerID, wager.DiscordID, entities.ErrNotOwner)
	}
	return &wager, nil
}

// Ping checks the redis connection for the health endpoint
func (s *RedisOfferStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
