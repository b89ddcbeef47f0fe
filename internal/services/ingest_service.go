package services

import (
	"context"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/models"
	"github.com/prefeitura-rio/app-busca-trends/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Pesos de rastreio de candidatos: todo evento de documento vale 1;
// leitura completa e compartilhamento valem +2 de bônus.
const (
	pesoBase        = 1
	pesoEngajamento = 2
)

// IngestResult distingue eventos processados de eventos descartados.
// Descartes são informativos (fire-and-forget), nunca erros: falhas de
// rastreio não podem quebrar a requisição principal do chamador.
type IngestResult struct {
	Processed bool
	Reason    string
}

func ingestOk() IngestResult {
	return IngestResult{Processed: true}
}

func ingestSkipped(reason string) IngestResult {
	return IngestResult{Processed: false, Reason: reason}
}

// IngestService valida e roteia eventos de engajamento para os contadores
// aproximados e o rastreador de candidatos, e eventos de busca para o
// agregado de termos.
type IngestService struct {
	counters   *analytics.CounterStore
	candidates *analytics.CandidateTracker
	searches   *analytics.SearchTermStore
}

func NewIngestService(
	counters *analytics.CounterStore,
	candidates *analytics.CandidateTracker,
	searches *analytics.SearchTermStore,
) *IngestService {
	return &IngestService{
		counters:   counters,
		candidates: candidates,
		searches:   searches,
	}
}

// Ingest processa um evento já validado na borda HTTP. Somente os stores
// de contadores/candidatos são escritos pelo caminho de documento, e
// somente o agregado de termos pelo caminho de busca.
func (s *IngestService) Ingest(ctx context.Context, evento *models.Evento) IngestResult {
	_, span := otel.Tracer("trends").Start(ctx, "trends.ingest")
	defer span.End()

	span.SetAttributes(
		attribute.String("evento.type", evento.Type),
	)

	eventTime := evento.EventTime(time.Now().UTC())

	switch evento.Type {
	case models.EventoOpen, models.EventoReadComplete, models.EventoShare:
		if evento.DocumentID == "" {
			span.SetAttributes(attribute.String("evento.skipped", "document_id ausente"))
			return ingestSkipped("document_id ausente")
		}

		s.counters.Record(evento.DocumentID, evento.UID, eventTime)
		s.candidates.Touch(evento.DocumentID, pesoBase)
		if evento.IsEngagement() {
			s.candidates.Touch(evento.DocumentID, pesoEngajamento)
		}

		span.SetAttributes(attribute.String("evento.document_id", evento.DocumentID))
		return ingestOk()

	case models.EventoSearch:
		if evento.Query == "" {
			span.SetAttributes(attribute.String("evento.skipped", "query ausente"))
			return ingestSkipped("query ausente")
		}

		query := utils.NormalizarQuery(evento.Query)
		if query == "" {
			span.SetAttributes(attribute.String("evento.skipped", "query vazia após normalização"))
			return ingestSkipped("query vazia após normalização")
		}

		s.searches.Increment(query, eventTime)
		if evento.ResultCount != nil {
			span.SetAttributes(attribute.Int("evento.result_count", *evento.ResultCount))
		}
		return ingestOk()
	}

	span.SetAttributes(attribute.String("evento.skipped", "tipo desconhecido"))
	return ingestSkipped("tipo desconhecido")
}
