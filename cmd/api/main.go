package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/prefeitura-rio/app-busca-trends/docs"
	"github.com/prefeitura-rio/app-busca-trends/internal/analytics"
	"github.com/prefeitura-rio/app-busca-trends/internal/api/routes"
	"github.com/prefeitura-rio/app-busca-trends/internal/config"
	"github.com/prefeitura-rio/app-busca-trends/internal/observability"
	"github.com/prefeitura-rio/app-busca-trends/internal/services"
	"github.com/prefeitura-rio/app-busca-trends/internal/typesense"
)

// @title           Trending de Conteúdo API
// @version         1.0
// @description     Motor de trending: ingestão de eventos de engajamento, contagem aproximada de visitantes únicos (HyperLogLog) e ranking de documentos com decaimento temporal
// @termsOfService  http://swagger.io/terms/

// @contact.name   Prefeitura do Rio de Janeiro
// @contact.url    https://prefeitura.rio
// @contact.email  contato@prefeitura.rio

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      services.staging.app.dados.rio/app-busca-trends

func main() {
	cfg := config.LoadConfig()

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring explícito: os stores e serviços são construídos aqui e
	// injetados; nenhum componente guarda estado global ambiente.
	typesenseClient := typesense.NewClient(cfg)

	counters := analytics.NewCounterStore(cfg.Trending.HLLPrecision, cfg.Trending.CounterRetention)
	candidates := analytics.NewCandidateTracker()
	searches := analytics.NewSearchTermStore(cfg.Trending.SearchRetention)
	ranked := analytics.NewRankedSet(cfg.Trending.RankedTTL)
	defer ranked.Close()

	metadataService := services.NewMetadataService(typesenseClient, cfg.MetadataCollections, cfg.Metadata)
	defer metadataService.Close()

	ingestService := services.NewIngestService(counters, candidates, searches)
	hotScoreService := services.NewHotScoreService(counters, candidates, ranked, metadataService, cfg.Trending)
	cleanupService := services.NewCleanupService(counters, searches, candidates, cfg.Trending)

	go hotScoreService.Run(ctx)
	go cleanupService.Run(ctx)

	r := routes.SetupRouter(&routes.Dependencies{
		Config:          cfg,
		TypesenseClient: typesenseClient,
		IngestService:   ingestService,
		HotScoreService: hotScoreService,
		Ranked:          ranked,
		Searches:        searches,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Servidor iniciado na porta %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Erro no shutdown do servidor: %v", err)
	}
}
