package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-busca-trends/internal/typesense"
)

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	typesenseClient *typesense.Client
}

// NewHealthHandler cria um novo handler de health check
func NewHealthHandler(client *typesense.Client) *HealthHandler {
	return &HealthHandler{
		typesenseClient: client,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	// Liveness apenas confirma que o app está rodando
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego. O Typesense é checado mas não bloqueia: o motor de trending degrada para respostas vazias quando os metadados estão indisponíveis.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	// Typesense é colaborador de metadados, não dependência dura: a
	// ingestão e o ranking continuam funcionando sem ele
	if h.typesenseClient.Health(ctx, 2*time.Second) {
		response.Checks["typesense"] = "ok"
	} else {
		response.Checks["typesense"] = "degraded"
	}

	c.JSON(http.StatusOK, response)
}
