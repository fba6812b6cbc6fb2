// Package httpapi is a thin JSON client for the ferry backend REST API.
//
// Every method maps transport outcomes onto the errs sentinels: connection
// failures become ErrTransport, non-JSON or malformed bodies become
// ErrProtocol, and explicit rejections become ErrAuthentication. Technical
// detail goes to the logger; callers only see the mapped class. Nothing here
// retries: every failure is terminal for the call and resubmission stays an
// explicit user action.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
	"github.com/seaquill/ferrylink/internal/session"
)

// loginPaths binds each login channel to its fixed backend endpoint.
var loginPaths = map[model.Channel]string{
	model.ChannelPassenger: "/api/login",
	model.ChannelSupplier:  "/api/supplier/login",
	model.ChannelInventory: "/api/inventory/login",
	model.ChannelFinance:   "/api/finance/login",
	model.ChannelStaff:     "/api/staff/login",
}

// Client talks to the backend. Protected calls read the bearer token from the
// session store; a 401 on a protected call clears the store so the embedder
// falls back to the login flow.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     *zap.Logger
}

// New constructs a Client. A zero timeout keeps net/http's default behavior.
func New(baseURL string, timeout time.Duration, store session.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Category string `json:"category"`
	} `json:"user"`
}

// Login authenticates against the endpoint bound to ch.
func (c *Client) Login(ctx context.Context, ch model.Channel, email, password string) (model.AuthResult, error) {
	path, ok := loginPaths[ch]
	if !ok {
		return model.AuthResult{}, fmt.Errorf("%w: unknown channel %q", errs.ErrValidation, ch)
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, path, loginRequest{Email: email, Password: password}, &resp, false); err != nil {
		return model.AuthResult{}, err
	}
	if resp.Token == "" || resp.User == nil {
		return model.AuthResult{}, fmt.Errorf("%w: incomplete login response", errs.ErrAuthentication)
	}

	name := resp.User.FullName
	if name == "" {
		name = resp.User.Name
	}
	return model.AuthResult{
		Token:       resp.Token,
		DisplayName: name,
		RawRole:     resp.User.Role,
		RawCategory: resp.User.Category,
	}, nil
}

// Inventory fetches the raw stock listing. Rows the backend sends as null
// survive decoding as nil pointers; the reconciler skips them.
func (c *Client) Inventory(ctx context.Context) ([]*model.InventoryItem, error) {
	var items []*model.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/inventory/items", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

// ChatHistory fetches the full message log for one conversation.
func (c *Client) ChatHistory(ctx context.Context, key model.ConversationKey) ([]model.ChatMessage, error) {
	path := "/api/chats/" + url.PathEscape(key.String()) + "/messages"
	var msgs []model.ChatMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &msgs, true); err != nil {
		return nil, err
	}
	return msgs, nil
}

type sendRequest struct {
	ConversationKey string       `json:"conversation_key"`
	ID              string       `json:"id"`
	Body            string       `json:"body"`
	Sender          model.Sender `json:"sender"`
}

// ChatSend posts one message and returns the server's persisted copy,
// including the server-assigned id.
func (c *Client) ChatSend(ctx context.Context, key model.ConversationKey, msg model.ChatMessage) (model.ChatMessage, error) {
	req := sendRequest{
		ConversationKey: key.String(),
		ID:              msg.ID,
		Body:            msg.Body,
		Sender:          msg.Sender,
	}
	var echo model.ChatMessage
	if err := c.do(ctx, http.MethodPost, "/api/chats/messages", req, &echo, true); err != nil {
		return model.ChatMessage{}, err
	}
	return echo, nil
}

// do runs one JSON round trip. Unauthenticated calls are login submissions,
// so a JSON rejection there is an authentication verdict; on protected calls
// only 401/403 are, and a 401 additionally clears the stored session.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if authed {
		s, err := c.store.Get(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+s.BearerToken())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s", errs.ErrTransport, method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("read body", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %s %s", errs.ErrTransport, method, path)
	}

	isJSON := jsonContentType(resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := backendMessage(raw, isJSON)
		c.log.Warn("backend rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		switch {
		case !authed && !isJSON:
			// an HTML error page is not a credential verdict
			return fmt.Errorf("%w: non-JSON error response", errs.ErrProtocol)
		case !authed:
			if msg != "" {
				return fmt.Errorf("%w: %s", errs.ErrAuthentication, msg)
			}
			return errs.ErrAuthentication
		case resp.StatusCode == http.StatusUnauthorized:
			// The session is dead; drop it so the next action re-authenticates.
			if cerr := c.store.Clear(ctx); cerr != nil {
				c.log.Warn("clear session", zap.Error(cerr))
			}
			return fmt.Errorf("%w: session rejected", errs.ErrAuthentication)
		case resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: forbidden", errs.ErrAuthentication)
		default:
			return fmt.Errorf("%w: status %d", errs.ErrProtocol, resp.StatusCode)
		}
	}

	if out == nil {
		return nil
	}
	if !isJSON {
		c.log.Warn("non-JSON response", zap.String("path", path),
			zap.String("content_type", resp.Header.Get("Content-Type")))
		return fmt.Errorf("%w: non-JSON content type", errs.ErrProtocol)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: malformed body", errs.ErrProtocol)
	}
	return nil
}

func jsonContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// backendMessage extracts the backend's {message} from an error body, if any.
func backendMessage(raw []byte, isJSON bool) string {
	if !isJSON {
		return ""
	}
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return ""
	}
	return e.Message
}
