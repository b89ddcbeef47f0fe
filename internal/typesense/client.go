package typesense

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-busca-trends/internal/config"
	"github.com/typesense/typesense-go/v3/typesense"
)

// Client é um cliente Typesense somente leitura: o conteúdo pertence ao
// app-busca-search; este serviço apenas resolve metadados de documentos.
type Client struct {
	client *typesense.Client
}

func NewClient(cfg *config.Config) *Client {
	typesenseClient := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("%s://%s:%s", cfg.TypesenseProtocol, cfg.TypesenseHost, cfg.TypesensePort)),
		typesense.WithAPIKey(cfg.TypesenseAPIKey),
	)

	return &Client{
		client: typesenseClient,
	}
}

// RetrieveDocument busca um documento por ID em uma coleção e devolve os
// campos crus. Erros de "não encontrado" são repassados ao chamador, que
// decide se tenta a próxima coleção.
func (c *Client) RetrieveDocument(ctx context.Context, colecao string, documentoID string) (map[string]interface{}, error) {
	document, err := c.client.Collection(colecao).Document(documentoID).Retrieve(ctx)
	if err != nil {
		return nil, err
	}

	var resultMap map[string]interface{}
	jsonData, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar resultado: %v", err)
	}

	if err := json.Unmarshal(jsonData, &resultMap); err != nil {
		return nil, fmt.Errorf("erro ao deserializar resultado: %v", err)
	}

	return resultMap, nil
}

// Health verifica a conectividade com o Typesense.
func (c *Client) Health(ctx context.Context, timeout time.Duration) bool {
	_, err := c.client.Health(ctx, timeout)
	return err == nil
}
