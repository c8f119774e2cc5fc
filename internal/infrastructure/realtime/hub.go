// Package realtime mantém as inscrições de mudanças de mesas por código de
// acesso e propaga sinais entre instâncias via uma ponte pub/sub opcional.
package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/comanda-app/comanda-api/pkg/logger"
)

// Bridge propaga sinais de mudança entre instâncias (Redis em produção).
// nil desliga a propagação: o hub segue funcionando só localmente.
type Bridge interface {
	Publish(code string) error
	Subscribe(code string, handler func()) (cancel func(), err error)
}

// Hub registro de inscrições locais: code -> subID -> handler.
// A primeira inscrição de um código abre a inscrição na ponte; a última a
// sair fecha.
type Hub struct {
	mu      sync.RWMutex
	subs    map[string]map[string]func()
	cancels map[string]func()
	bridge  Bridge
	log     *logger.Logger
}

// NewHub constrói o hub. bridge pode ser nil.
func NewHub(log *logger.Logger, bridge Bridge) *Hub {
	return &Hub{
		subs:    make(map[string]map[string]func()),
		cancels: make(map[string]func()),
		bridge:  bridge,
		log:     log,
	}
}

// Subscribe registra handler para o código e devolve o cancelamento.
// Síncrono: não faz I/O bloqueante além do registro na ponte.
func (h *Hub) Subscribe(code string, handler func()) func() {
	id := uuid.New().String()

	h.mu.Lock()
	if h.subs[code] == nil {
		h.subs[code] = make(map[string]func())
		if h.bridge != nil {
			cancel, err := h.bridge.Subscribe(code, func() { h.dispatch(code) })
			if err != nil {
				h.log.Warn().Err(err).Str("code", code).Msg("inscrição na ponte falhou; feed local apenas")
			} else {
				h.cancels[code] = cancel
			}
		}
	}
	h.subs[code][id] = handler
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if m, ok := h.subs[code]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(h.subs, code)
				if cancel, ok := h.cancels[code]; ok {
					cancel()
					delete(h.cancels, code)
				}
			}
		}
	}
}

// Notify sinaliza mudança nas mesas do código: dispara os handlers locais e
// publica para as outras instâncias.
func (h *Hub) Notify(code string) {
	h.dispatch(code)
	if h.bridge != nil {
		if err := h.bridge.Publish(code); err != nil {
			h.log.Warn().Err(err).Str("code", code).Msg("publicação na ponte falhou")
		}
	}
}

// dispatch invoca só os handlers locais (chamado também pela ponte, para não
// republicar em loop).
func (h *Hub) dispatch(code string) {
	h.mu.RLock()
	handlers := make([]func(), 0, len(h.subs[code]))
	for _, fn := range h.subs[code] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}
