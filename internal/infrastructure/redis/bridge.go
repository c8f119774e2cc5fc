package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tableChannelPrefix = "tables:"
	publishTimeout     = 5 * time.Second
)

// bridgePayload mensagem publicada no canal do tenant. Só carrega o instante:
// quem recebe relê a lista fresca do banco.
type bridgePayload struct {
	At int64 `json:"at"`
}

// TableBridge propaga sinais de mudança de mesas entre instâncias via Redis
// pub/sub. Implementa realtime.Bridge.
type TableBridge struct {
	client *redis.Client
}

// NewTableBridge constrói a ponte.
func NewTableBridge(client *redis.Client) *TableBridge {
	return &TableBridge{client: client}
}

// Publish sinaliza mudança nas mesas do código para as outras instâncias.
func (b *TableBridge) Publish(code string) error {
	body, err := json.Marshal(bridgePayload{At: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return b.client.Publish(ctx, tableChannelPrefix+code, body).Err()
}

// Subscribe escuta o canal do código e chama handler a cada mensagem.
// Devolve a função de cancelamento da escuta.
func (b *TableBridge) Subscribe(code string, handler func()) (cancel func(), err error) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	pubsub := b.client.Subscribe(ctx, tableChannelPrefix+code)
	if _, err := pubsub.Receive(ctx); err != nil {
		cancelCtx()
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				handler()
			}
		}
	}()
	return func() { cancelCtx() }, nil
}
