package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-crm-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	leadStatsKey           = "leads:stats"
	leadStatsGenerationKey = "leads:stats:gen"
)

// ErrStaleStatistics indica que houve invalidação depois que o cálculo começou
var ErrStaleStatistics = errors.New("estatísticas calculadas antes da última invalidação")

// StatsCache guarda o último cálculo de estatísticas de leads. Cada Invalidate avança a
// geração; Set só grava quando a geração lida antes do cálculo ainda é a atual.
type StatsCache interface {
	Get(ctx context.Context) (*domain.LeadStatistics, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, stats *domain.LeadStatistics, generation int64) error
	Invalidate(ctx context.Context) error
}

// NewRedisClient cria o cliente a partir de REDIS_URL e valida a conexão.
// Retorna nil quando a URL está vazia ou o Redis não responde, e o serviço segue sem cache.
func NewRedisClient(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		logrus.Warnf("REDIS_URL inválida, seguindo sem cache: %v", err)
		return nil
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("Falha ao conectar no Redis, seguindo sem cache: %v", err)
		_ = client.Close()
		return nil
	}

	logrus.Infof("Redis conectado em %s", options.Addr)
	return client
}

type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache retorna um cache em Redis ou um cache vazio quando não há cliente
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if client == nil {
		return noopStatsCache{}
	}

	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisStatsCache) Get(ctx context.Context) (*domain.LeadStatistics, error) {
	val, err := c.client.Get(ctx, leadStatsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler estatísticas do redis: %w", err)
	}

	var stats domain.LeadStatistics
	if err := json.Unmarshal(val, &stats); err != nil {
		return nil, fmt.Errorf("erro ao decodificar estatísticas: %w", err)
	}

	return &stats, nil
}

func (c *redisStatsCache) Generation(ctx context.Context) (int64, error) {
	return readGeneration(ctx, c.client)
}

func readGeneration(ctx context.Context, cmd redis.Cmdable) (int64, error) {
	gen, err := cmd.Get(ctx, leadStatsGenerationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("erro ao ler geração das estatísticas: %w", err)
	}
	return gen, nil
}

// Set grava dentro de WATCH na chave de geração, então um Invalidate concorrente
// descarta a escrita
func (c *redisStatsCache) Set(ctx context.Context, stats *domain.LeadStatistics, generation int64) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("erro ao codificar estatísticas: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStaleStatistics
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, leadStatsKey, data, c.ttl)
			return nil
		})
		return err
	}, leadStatsGenerationKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleStatistics), errors.Is(err, redis.TxFailedErr):
		return ErrStaleStatistics
	default:
		return fmt.Errorf("erro ao gravar estatísticas no redis: %w", err)
	}
}

func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, leadStatsGenerationKey)
		pipe.Del(ctx, leadStatsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao invalidar estatísticas no redis: %w", err)
	}
	return nil
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context) (*domain.LeadStatistics, error) { return nil, nil }

func (noopStatsCache) Generation(context.Context) (int64, error) { return 0, nil }

func (noopStatsCache) Set(context.Context, *domain.LeadStatistics, int64) error { return nil }

func (noopStatsCache) Invalidate(context.Context) error { return nil }
