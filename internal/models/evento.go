package models

import "time"

// Tipos de evento de engajamento aceitos pela ingestão
const (
	EventoOpen         = "open"
	EventoReadComplete = "read_complete"
	EventoShare        = "share"
	EventoSearch       = "search"
)

// Evento representa uma interação de usuário com um documento ou com a
// busca. O uid identifica o visitante (anônimo, mas estável); ts é
// opcional e assume o horário do servidor quando ausente.
type Evento struct {
	Type        string     `json:"type" binding:"required,oneof=open read_complete share search"`
	DocumentID  string     `json:"document_id"`
	UID         string     `json:"uid" binding:"required"`
	Timestamp   *time.Time `json:"ts"`
	Query       string     `json:"query"`
	ResultCount *int       `json:"result_count"`
}

// IsEngagement informa se o evento é um sinal forte (leitura completa ou
// compartilhamento), que recebe peso extra no rastreio de candidatos.
func (e *Evento) IsEngagement() bool {
	return e.Type == EventoReadComplete || e.Type == EventoShare
}

// EventTime devolve o timestamp do evento, ou now quando não informado.
func (e *Evento) EventTime(now time.Time) time.Time {
	if e.Timestamp != nil && !e.Timestamp.IsZero() {
		return e.Timestamp.UTC()
	}
	return now
}
