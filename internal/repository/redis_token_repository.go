package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mood-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ TokenRepository = (*redisTokenRepository)(nil)

type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed TokenRepository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func accessKey(id string) string        { return "access_uuid:" + id }
func refreshKey(id string) string       { return "refresh_uuid:" + id }
func userTokensKey(id uuid.UUID) string { return "user_tokens:" + id.String() }

// SetToken stores access_uuid:{id} and refresh_uuid:{id} -> userID with their
// token TTLs, and records both in the user_tokens:{userID} set.
func (r *redisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *models.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	userIDStr := userID.String()
	setKey := userTokensKey(userID)

	pipe := r.client.Pipeline()
	pipe.Set(ctx, accessKey(td.AccessUUID), userIDStr, accessTTL)
	pipe.Set(ctx, refreshKey(td.RefreshUUID), userIDStr, refreshTTL)
	pipe.SAdd(ctx, setKey, "access:"+td.AccessUUID, "refresh:"+td.RefreshUUID)
	pipe.Expire(ctx, setKey, refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to set token details in redis", zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to set token details in redis: %w", err)
	}
	return nil
}

func (r *redisTokenRepository) DeleteTokens(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) (int64, error) {
	var keys []string
	var members []interface{}
	if accessUUID != "" {
		keys = append(keys, accessKey(accessUUID))
		members = append(members, "access:"+accessUUID)
	}
	if refreshUUID != "" {
		keys = append(keys, refreshKey(refreshUUID))
		members = append(members, "refresh:"+refreshUUID)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	delCmd := pipe.Del(ctx, keys...)
	pipe.SRem(ctx, userTokensKey(userID), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete tokens", zap.Error(err), zap.String("userID", userID.String()))
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}
	deleted, _ := delCmd.Result()
	r.logger.Debug("Tokens deleted from Redis", zap.String("userID", userID.String()), zap.Int64("deletedCount", deleted))
	return deleted, nil
}

func (r *redisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.lookup(ctx, accessKey(accessUUID))
}

func (r *redisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.lookup(ctx, refreshKey(refreshUUID))
}

func (r *redisTokenRepository) lookup(ctx context.Context, key string) (uuid.UUID, error) {
	userIDStr, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("key", key))
		return uuid.Nil, fmt.Errorf("failed to get token from redis: %w", err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		r.logger.Error("Corrupted userID in redis", zap.Error(err), zap.String("key", key), zap.String("value", userIDStr))
		return uuid.Nil, fmt.Errorf("corrupted userID data in redis for %s: %w", key, err)
	}
	return userID, nil
}

// DeleteTokensByUserID revokes every token listed in the user's set.
func (r *redisTokenRepository) DeleteTokensByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := r.logger.With(zap.String("userID", userID.String()))
	setKey := userTokensKey(userID)

	identifiers, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error("Failed to get token identifiers from user set", zap.Error(err))
		return 0, fmt.Errorf("failed to retrieve token identifiers: %w", err)
	}

	keys := make([]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		kind, id, ok := strings.Cut(identifier, ":")
		if !ok {
			log.Warn("Malformed token identifier found in user set", zap.String("identifier", identifier))
			continue
		}
		switch kind {
		case "access":
			keys = append(keys, accessKey(id))
		case "refresh":
			keys = append(keys, refreshKey(id))
		default:
			log.Warn("Unknown token type in user set", zap.String("identifier", identifier))
		}
	}

	pipe := r.client.Pipeline()
	var delCmd *redis.IntCmd
	if len(keys) > 0 {
		delCmd = pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error("Failed to delete tokens for user", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens for user: %w", err)
	}

	var deleted int64
	if delCmd != nil {
		deleted, _ = delCmd.Result()
	}
	log.Info("Deleted tokens for user", zap.Int64("deletedTokenKeys", deleted))
	return deleted, nil
}
