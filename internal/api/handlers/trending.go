package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/services"
)

const (
	defaultTopLimit      = 10
	maxTopLimit          = 100
	defaultTrendingHours = 24
	trendingTermsLimit   = 20
)

// TrendingHandler serve o ranking de documentos e os termos de busca em
// alta.
type TrendingHandler struct {
	hotScoreService *services.HotScoreService
	ranked          *analytics.RankedSet
	searches        *analytics.SearchTermStore
	searchWindowMax int
}

func NewTrendingHandler(
	hotScoreService *services.HotScoreService,
	ranked *analytics.RankedSet,
	searches *analytics.SearchTermStore,
	searchRetention time.Duration,
) *TrendingHandler {
	return &TrendingHandler{
		hotScoreService: hotScoreService,
		ranked:          ranked,
		searches:        searches,
		searchWindowMax: int(searchRetention / time.Hour),
	}
}

// TopDocumentos godoc
// @Summary Documentos em alta
// @Description Retorna os documentos mais quentes do ranking corrente, em ordem decrescente de score. Lista vazia significa "sem dados de trending" (ranking ausente ou expirado), nunca erro.
// @Tags trending
// @Produce json
// @Param limit query int false "Número máximo de documentos" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/trending/documentos [get]
func (h *TrendingHandler) TopDocumentos(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTopLimit)))
	if err != nil || limit < 1 || limit > maxTopLimit {
		limit = defaultTopLimit
	}

	documentos := h.ranked.Top(limit)

	c.JSON(http.StatusOK, gin.H{
		"documentos": documentos,
		"count":      len(documentos),
	})
}

// TrendingBuscas godoc
// @Summary Termos de busca em alta
// @Description Agrega os termos de busca normalizados das últimas N horas e retorna os 20 mais buscados, por contagem bruta (sem decaimento).
// @Tags trending
// @Produce json
// @Param hours query int false "Janela em horas" default(24)
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/trending/buscas [get]
func (h *TrendingHandler) TrendingBuscas(c *gin.Context) {
	hours, err := strconv.Atoi(c.DefaultQuery("hours", strconv.Itoa(defaultTrendingHours)))
	if err != nil || hours < 1 || hours > h.searchWindowMax {
		hours = defaultTrendingHours
	}

	buscas := h.searches.Trending(hours, time.Now().UTC(), trendingTermsLimit)

	c.JSON(http.StatusOK, gin.H{
		"buscas": buscas,
		"count":  len(buscas),
	})
}

// RecomputeHotScores godoc
// @Summary Recalcula os hot scores
// @Description Dispara um ciclo de recompute manualmente. Idempotente: gatilhos concorrentes colapsam em um único ciclo; o gatilho é seguro mesmo com o loop periódico rodando.
// @Tags trending
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/trending/recompute [post]
func (h *TrendingHandler) RecomputeHotScores(c *gin.Context) {
	stats, err := h.hotScoreService.Recompute(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrRecomputeEmAndamento) {
			c.JSON(http.StatusOK, gin.H{"status": "em_andamento"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"cycle_id":   stats.CycleID,
		"computed":   stats.Computed,
		"skipped":    stats.Skipped,
		"top_scores": stats.TopScores,
	})
}
