package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"RiskDesk/internal/domain/repository"
	pkgcache "RiskDesk/pkg/cache"
)

// livePriceTTL ages out symbols that stop trading so the heat aggregator
// falls back to avg cost instead of using a stale print.
const livePriceTTL = 24 * time.Hour

// RedisLivePrices keeps the latest trade price per symbol in Redis, written
// by the stream collector and read by the heat and exit paths.
type RedisLivePrices struct {
	cache *pkgcache.RedisCache
}

func NewRedisLivePrices(cache *pkgcache.RedisCache) repository.LivePriceCache {
	return &RedisLivePrices{cache: cache}
}

func (r *RedisLivePrices) SetPrice(ctx context.Context, symbol string, price float64) error {
	key := priceKey(symbol)
	return r.cache.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), livePriceTTL)
}

// Prices returns the subset of symbols present in the cache. Missing symbols
// are simply absent from the result, never an error.
func (r *RedisLivePrices) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	keys := make([]string, len(symbols))
	for i, s := range symbols {
		keys[i] = priceKey(s)
	}
	raw, err := r.cache.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("mget live prices: %w", err)
	}

	out := make(map[string]float64, len(raw))
	for i, s := range symbols {
		v, ok := raw[keys[i]]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price <= 0 {
			continue
		}
		out[s] = price
	}
	return out, nil
}

func priceKey(symbol string) string {
	return "price:last:" + symbol
}
