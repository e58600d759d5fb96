package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions connexion Redis
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore conserve les exports déjà sérialisés, partagés entre instances du serveur.
// Toutes les clés sont préfixées par prefix.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore ouvre la connexion et vérifie qu'elle répond
func NewRedisStore(ctx context.Context, opts RedisOptions, prefix string, ttl time.Duration, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr), zap.String("prefix", prefix))
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}, nil
}

// Get retourne l'export stocké sous key; found vaut false si la clé est absente ou expirée
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stocke body sous key pour la durée du TTL
func (s *RedisStore) Set(ctx context.Context, key string, body []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, body, s.ttl).Err()
}

// Clear supprime toutes les clés du préfixe
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	s.logger.Debug("clearing redis exports", zap.Int("keys", len(keys)))
	return s.rdb.Del(ctx, keys...).Err()
}

// Close ferme la connexion
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
