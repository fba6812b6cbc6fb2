// Package chat maintains an ordered local message log per two-party
// conversation, with optimistic local echoes and id-based de-duplication
// against messages arriving from the backend.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
)

// Transport is the backend surface the adapter needs. *httpapi.Client
// satisfies it.
type Transport interface {
	ChatHistory(ctx context.Context, key model.ConversationKey) ([]model.ChatMessage, error)
	ChatSend(ctx context.Context, key model.ConversationKey, msg model.ChatMessage) (model.ChatMessage, error)
}

// State is the conversation lifecycle phase.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateSending
	StateErrored
)

// Conversation serializes load and send per conversation: an operation
// issued while another is in flight queues behind it instead of racing,
// so a stale full reload can never overwrite an optimistic append.
type Conversation struct {
	key     model.ConversationKey
	tr      Transport
	maxBody int

	opMu sync.Mutex // serializes Load/Send/Poll end to end

	mu    sync.Mutex // guards state, log, seen
	state State
	log   []model.ChatMessage
	seen  map[string]struct{}
}

// NewConversation creates an adapter for one conversation. maxBody bounds
// outgoing message length; zero means unbounded.
func NewConversation(key model.ConversationKey, tr Transport, maxBody int) *Conversation {
	return &Conversation{
		key:     key,
		tr:      tr,
		maxBody: maxBody,
		seen:    make(map[string]struct{}),
	}
}

// State returns the current lifecycle phase.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a snapshot of the log in display order.
func (c *Conversation) Messages() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ChatMessage, len(c.log))
	copy(out, c.log)
	return out
}

// Load fetches the full history and replaces the local log, sorted ascending
// by timestamp. On failure an existing log is kept as-is: stale-but-present
// beats a wiped screen when the network is down. Callable again from any
// state as the retry affordance.
func (c *Conversation) Load(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setState(StateLoading)

	msgs, err := c.tr.ChatHistory(ctx, c.key)
	if err != nil {
		c.mu.Lock()
		if len(c.log) > 0 {
			c.state = StateReady
		} else {
			c.state = StateErrored
		}
		c.mu.Unlock()
		return err
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].SentAt.Before(msgs[j].SentAt) })

	c.mu.Lock()
	c.log = msgs
	c.seen = make(map[string]struct{}, len(msgs))
	for _, m := range msgs {
		c.seen[m.ID] = struct{}{}
	}
	c.state = StateReady
	c.mu.Unlock()
	return nil
}

// Send appends an optimistic local echo with a client-generated id, then
// dispatches to the backend. On failure the echo stays in the log (user
// input is never silently dropped) and the error is returned for display.
// On success the echo takes the server-assigned id so the next history
// fetch de-duplicates against the confirmed copy.
func (c *Conversation) Send(ctx context.Context, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("%w: empty message", errs.ErrValidation)
	}
	if c.maxBody > 0 && len(body) > c.maxBody {
		return fmt.Errorf("%w: message exceeds %d bytes", errs.ErrValidation, c.maxBody)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	if st := c.State(); st != StateReady {
		return fmt.Errorf("%w: conversation not loaded", errs.ErrValidation)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	msg := model.ChatMessage{
		ID:     id.String(),
		Sender: model.SenderLocal,
		Body:   body,
		SentAt: time.Now(),
	}

	c.mu.Lock()
	c.log = append(c.log, msg)
	c.seen[msg.ID] = struct{}{}
	c.state = StateSending
	c.mu.Unlock()

	echo, sendErr := c.tr.ChatSend(ctx, c.key, msg)

	c.mu.Lock()
	c.state = StateReady
	if sendErr == nil && echo.ID != "" && echo.ID != msg.ID {
		c.seen[echo.ID] = struct{}{}
		for i := len(c.log) - 1; i >= 0; i-- {
			if c.log[i].ID == msg.ID {
				c.log[i].ID = echo.ID
				break
			}
		}
	}
	c.mu.Unlock()
	return sendErr
}

// Ingest merges messages arriving from a push channel or poll. Unknown ids
// are inserted at their timestamp position; already-displayed messages are
// never moved, the log only grows between explicit Loads.
func (c *Conversation) Ingest(msgs ...model.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		if _, ok := c.seen[m.ID]; ok {
			continue
		}
		i := len(c.log)
		for i > 0 && c.log[i-1].SentAt.After(m.SentAt) {
			i--
		}
		c.log = append(c.log, model.ChatMessage{})
		copy(c.log[i+1:], c.log[i:])
		c.log[i] = m
		c.seen[m.ID] = struct{}{}
	}
}

// Poll fetches the history once and merges unseen messages through Ingest,
// leaving displayed entries untouched. Serialized with Load and Send.
func (c *Conversation) Poll(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	msgs, err := c.tr.ChatHistory(ctx, c.key)
	if err != nil {
		return err
	}
	c.Ingest(msgs...)
	return nil
}

func (c *Conversation) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
