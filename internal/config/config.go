// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Typesense
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//
// ## Trending
//   - TRENDING_HLL_PRECISION: Precisão do HyperLogLog, 4-16 (default: 14, erro ~0.81%)
//   - TRENDING_COUNTER_RETENTION_HOURS: Retenção dos contadores por hora (default: 48)
//   - TRENDING_SEARCH_RETENTION_HOURS: Retenção dos agregados de busca (default: 24)
//   - TRENDING_SHORT_WINDOW_HOURS: Janela curta do score (default: 2)
//   - TRENDING_LONG_WINDOW_HOURS: Janela longa do score (default: 24)
//   - TRENDING_SHORT_WINDOW_WEIGHT: Peso da janela curta (default: 5)
//   - TRENDING_LONG_WINDOW_WEIGHT: Peso da janela longa (default: 2)
//   - TRENDING_DECAY_HOURS: Constante de decaimento exponencial em horas (default: 24)
//   - TRENDING_RANKED_TTL_MINUTES: TTL do ranking publicado (default: 10)
//   - TRENDING_RECOMPUTE_INTERVAL_MINUTES: Intervalo do loop de recompute (default: 2)
//   - TRENDING_RECOMPUTE_TIMEOUT_SECONDS: Timeout por ciclo de recompute (default: 60)
//   - TRENDING_CLEANUP_INTERVAL_MINUTES: Intervalo da varredura de limpeza (default: 60)
//   - TRENDING_EVICT_THRESHOLD: Peso acumulado máximo para evicção de candidatos (default: 2)
//   - TRENDING_MIN_UID_LENGTH: Tamanho mínimo do identificador de visitante (default: 8)
//
// ## Metadados
//   - METADATA_COLLECTIONS: Lista de coleções Typesense consultadas para created_at (obrigatória)
//   - METADATA_CACHE_TTL_MINUTES: TTL do cache de metadados (default: 30)
//   - METADATA_CACHE_MAX_SIZE: Tamanho máximo do cache de metadados (default: 10000)
//   - METADATA_LOOKUP_TIMEOUT_SECONDS: Timeout por lookup de metadados (default: 3)
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TypesenseHost     string
	TypesensePort     string
	TypesenseAPIKey   string
	TypesenseProtocol string

	ServerPort string

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string

	// Collections consulted when resolving document metadata
	MetadataCollections []string

	Trending TrendingConfig
	Metadata MetadataConfig
}

// TrendingConfig contém os parâmetros do motor de trending
type TrendingConfig struct {
	// HyperLogLog precision (4-16, default 14)
	HLLPrecision uint8

	// Retention of per-hour unique-visitor counters (default 48h)
	CounterRetention time.Duration

	// Retention of per-hour search aggregates (default 24h)
	SearchRetention time.Duration

	// Score windows in hours (default 2 / 24)
	ShortWindowHours int
	LongWindowHours  int

	// Score weights (default 5 / 2)
	ShortWindowWeight float64
	LongWindowWeight  float64

	// Exponential decay constant in hours (default 24)
	DecayHours float64

	// TTL of the published ranking (default 10m)
	RankedTTL time.Duration

	// Recompute loop interval and per-cycle timeout
	RecomputeInterval time.Duration
	RecomputeTimeout  time.Duration

	// Cleanup sweep interval and candidate eviction threshold
	CleanupInterval time.Duration
	EvictThreshold  int64

	// Minimum visitor identifier length accepted at ingestion
	MinUIDLength int
}

// MetadataConfig contém os parâmetros do resolvedor de metadados
type MetadataConfig struct {
	CacheTTL      time.Duration
	CacheMaxSize  int64
	LookupTimeout time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		TypesenseHost:     getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:     getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:   getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol: getEnv("TYPESENSE_PROTOCOL", "http"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		// Tracing configuration
		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		Trending: TrendingConfig{
			HLLPrecision:      uint8(getEnvInt("TRENDING_HLL_PRECISION", 14)),
			CounterRetention:  time.Duration(getEnvInt("TRENDING_COUNTER_RETENTION_HOURS", 48)) * time.Hour,
			SearchRetention:   time.Duration(getEnvInt("TRENDING_SEARCH_RETENTION_HOURS", 24)) * time.Hour,
			ShortWindowHours:  getEnvInt("TRENDING_SHORT_WINDOW_HOURS", 2),
			LongWindowHours:   getEnvInt("TRENDING_LONG_WINDOW_HOURS", 24),
			ShortWindowWeight: getEnvFloat("TRENDING_SHORT_WINDOW_WEIGHT", 5),
			LongWindowWeight:  getEnvFloat("TRENDING_LONG_WINDOW_WEIGHT", 2),
			DecayHours:        getEnvFloat("TRENDING_DECAY_HOURS", 24),
			RankedTTL:         time.Duration(getEnvInt("TRENDING_RANKED_TTL_MINUTES", 10)) * time.Minute,
			RecomputeInterval: time.Duration(getEnvInt("TRENDING_RECOMPUTE_INTERVAL_MINUTES", 2)) * time.Minute,
			RecomputeTimeout:  time.Duration(getEnvInt("TRENDING_RECOMPUTE_TIMEOUT_SECONDS", 60)) * time.Second,
			CleanupInterval:   time.Duration(getEnvInt("TRENDING_CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
			EvictThreshold:    int64(getEnvInt("TRENDING_EVICT_THRESHOLD", 2)),
			MinUIDLength:      getEnvInt("TRENDING_MIN_UID_LENGTH", 8),
		},

		Metadata: MetadataConfig{
			CacheTTL:      time.Duration(getEnvInt("METADATA_CACHE_TTL_MINUTES", 30)) * time.Minute,
			CacheMaxSize:  int64(getEnvInt("METADATA_CACHE_MAX_SIZE", 10000)),
			LookupTimeout: time.Duration(getEnvInt("METADATA_LOOKUP_TIMEOUT_SECONDS", 3)) * time.Second,
		},
	}

	// Parse metadata collections (REQUIRED)
	collectionsCSV := os.Getenv("METADATA_COLLECTIONS")
	if collectionsCSV == "" {
		log.Fatal("METADATA_COLLECTIONS environment variable is required but not set")
	}
	cfg.MetadataCollections = strings.Split(collectionsCSV, ",")
	for i := range cfg.MetadataCollections {
		cfg.MetadataCollections[i] = strings.TrimSpace(cfg.MetadataCollections[i])
	}

	if cfg.Trending.HLLPrecision < 4 || cfg.Trending.HLLPrecision > 16 {
		log.Fatalf("TRENDING_HLL_PRECISION inválida: %d (esperado 4-16)", cfg.Trending.HLLPrecision)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
