package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/config"
	"github.com/prefeitura-rio/app-busca-trends/internal/typesense"
	cache "github.com/unkn0wn-root/kioshun"
)

var ErrCreatedAtDesconhecido = errors.New("created_at desconhecido para o documento")

// CreatedAtResolver resolve a data de criação de um documento de conteúdo.
// Retorna ErrCreatedAtDesconhecido quando o documento não existe em
// nenhuma coleção configurada ou não carrega um campo de data utilizável.
type CreatedAtResolver interface {
	CreatedAt(ctx context.Context, documentoID string) (time.Time, error)
}

// MetadataService resolve created_at via Typesense, com cache em memória
// para não bater no índice a cada ciclo de recompute.
type MetadataService struct {
	client        *typesense.Client
	colecoes      []string
	cache         *cache.InMemoryCache[string, time.Time]
	lookupTimeout time.Duration
}

// NewMetadataService cria o resolvedor de metadados sobre as coleções
// configuradas.
func NewMetadataService(client *typesense.Client, colecoes []string, cfg config.MetadataConfig) *MetadataService {
	c := cache.New[string, time.Time](cache.Config{
		MaxSize:         cfg.CacheMaxSize,
		ShardCount:      0, // auto
		CleanupInterval: 5 * time.Minute,
		DefaultTTL:      cfg.CacheTTL,
		EvictionPolicy:  cache.LRU,
	})
	return &MetadataService{
		client:        client,
		colecoes:      colecoes,
		cache:         c,
		lookupTimeout: cfg.LookupTimeout,
	}
}

// CreatedAt devolve a data de criação do documento. Documentos
// desconhecidos são cacheados negativamente (time zero) para não repetir
// lookups a cada ciclo; falhas transitórias de rede não entram no cache.
func (s *MetadataService) CreatedAt(ctx context.Context, documentoID string) (time.Time, error) {
	if cached, ok := s.cache.Get(documentoID); ok {
		if cached.IsZero() {
			return time.Time{}, ErrCreatedAtDesconhecido
		}
		return cached, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	for _, colecao := range s.colecoes {
		doc, err := s.client.RetrieveDocument(lookupCtx, colecao, documentoID)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return time.Time{}, fmt.Errorf("erro ao buscar metadados em %s: %w", colecao, err)
		}

		if createdAt, ok := parseCreatedAt(doc); ok {
			_ = s.cache.Set(documentoID, createdAt, cache.DefaultExpiration)
			return createdAt, nil
		}
		// documento existe mas sem campo de data utilizável
		break
	}

	_ = s.cache.Set(documentoID, time.Time{}, cache.DefaultExpiration)
	return time.Time{}, ErrCreatedAtDesconhecido
}

// Close libera o cache de metadados.
func (s *MetadataService) Close() error {
	return s.cache.Close()
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "Not Found")
}

// parseCreatedAt extrai a data de criação dos campos crus do documento.
// Coleções diferentes usam nomes e formatos diferentes (epoch ou RFC3339).
func parseCreatedAt(doc map[string]interface{}) (time.Time, bool) {
	for _, campo := range []string{"created_at", "data_publicacao", "published_at"} {
		v, ok := doc[campo]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case float64:
			if val > 0 {
				return time.Unix(int64(val), 0).UTC(), true
			}
		case string:
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				return t.UTC(), true
			}
			if t, err := time.Parse("2006-01-02", val); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
