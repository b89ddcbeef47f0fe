package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-busca-trends/internal/models"
	"github.com/prefeitura-rio/app-busca-trends/internal/services"
)

// EventosHandler recebe eventos de engajamento e de busca.
type EventosHandler struct {
	ingestService *services.IngestService
	minUIDLength  int
}

func NewEventosHandler(ingestService *services.IngestService, minUIDLength int) *EventosHandler {
	return &EventosHandler{
		ingestService: ingestService,
		minUIDLength:  minUIDLength,
	}
}

// IngerirEvento godoc
// @Summary Ingere um evento de engajamento
// @Description Registra um evento de interação (open, read_complete, share, search) para o motor de trending. A ingestão é fire-and-forget: falhas internas de rastreio nunca são propagadas ao chamador.
// @Tags eventos
// @Accept json
// @Produce json
// @Param evento body models.Evento true "Evento de interação"
// @Success 204 "Evento aceito"
// @Failure 400 {object} map[string]string
// @Router /api/v1/eventos [post]
func (h *EventosHandler) IngerirEvento(c *gin.Context) {
	var evento models.Evento
	if err := c.ShouldBindJSON(&evento); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evento malformado: " + err.Error()})
		return
	}

	if len(evento.UID) < h.minUIDLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid abaixo do tamanho mínimo"})
		return
	}

	// Falhas transitórias e descartes não chegam ao chamador: sempre 204
	h.ingestService.Ingest(c.Request.Context(), &evento)

	c.Status(http.StatusNoContent)
}
