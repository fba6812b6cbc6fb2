// Command ferrycli is a terminal client for the ferry booking backend.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/seaquill/ferrylink/internal/chat"
	"github.com/seaquill/ferrylink/internal/config"
	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/httpapi"
	"github.com/seaquill/ferrylink/internal/inventory"
	"github.com/seaquill/ferrylink/internal/model"
	"github.com/seaquill/ferrylink/internal/service"
	"github.com/seaquill/ferrylink/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func usage() {
	fmt.Fprintf(os.Stderr, `ferrycli
Usage:
  ferrycli [-api URL] [-v] <cmd> [args]

Commands:
  version
  login        -channel passenger|supplier|inventory|finance|staff -email <e> -p <password>
  logout
  whoami
  inventory                                  (merged stock listing)
  chat-history -peer <name>
  chat-send    -peer <name> -m <body>
  chat-watch   -peer <name>                  (poll until interrupted)
`)
	os.Exit(2)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// newStore picks Redis when configured, otherwise the per-user session file.
func newStore(cfg config.Config) session.Store {
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return session.NewRedis(rdb, "", cfg.SessionTTL)
	}
	return session.NewFile("")
}

// main dispatches subcommands against the configured backend.
func main() {
	cfg := config.Load()

	api := flag.String("api", cfg.APIBaseURL, "backend base URL")
	verbose := flag.Bool("v", false, "verbose diagnostics")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() { _ = logger.Sync() }()

	store := newStore(cfg)
	client := httpapi.New(*api, cfg.HTTPTimeout, store, logger)
	login := service.NewLoginService(client, store)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("ferrycli %s (%s)\n", version, buildDate)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		ch := fs.String("channel", "passenger", "login channel")
		email := fs.String("email", "", "email")
		pwd := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])

		target, err := login.Login(ctx, model.Channel(*ch), *email, *pwd)
		if err != nil {
			fail(err)
		}
		sess, err := login.Current(ctx)
		if err != nil {
			fail(err)
		}
		fmt.Printf("logged in as %s (%s), home: %s\n", sess.DisplayName, sess.Role, target)
		if exp, ok := session.TokenExpiry(sess.BearerToken()); ok {
			fmt.Printf("token valid until %s\n", exp.Format(time.RFC3339))
		}

	case "logout":
		if err := login.Logout(ctx); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "whoami":
		sess, err := login.Current(ctx)
		if err != nil {
			fail(err)
		}
		out := map[string]any{
			"name": sess.DisplayName,
			"role": sess.Role,
		}
		if exp, ok := session.TokenExpiry(sess.BearerToken()); ok {
			out["token_expires"] = exp.Format(time.RFC3339)
		}
		printJSON(out)

	case "inventory":
		raw, err := client.Inventory(ctx)
		if err != nil {
			fail(err)
		}
		rows, skipped := inventory.Reconcile(raw)
		if skipped > 0 {
			logger.Warn("skipped malformed inventory rows", zap.Int("count", skipped))
		}
		printJSON(rows)

	case "chat-history":
		conv := mustConversation(ctx, login, client, cfg, flag.Args()[1:], "")
		printJSON(conv.Messages())

	case "chat-send":
		fs := flag.NewFlagSet("chat-send", flag.ExitOnError)
		peer := fs.String("peer", "", "remote party")
		body := fs.String("m", "", "message body")
		_ = fs.Parse(flag.Args()[1:])

		conv := conversation(ctx, login, client, cfg, *peer)
		if err := conv.Load(ctx); err != nil {
			fail(err)
		}
		if err := conv.Send(ctx, *body); err != nil {
			fail(err)
		}
		fmt.Println("sent")

	case "chat-watch":
		conv := mustConversation(ctx, login, client, cfg, flag.Args()[1:], "")
		watch(conv, cfg, logger)

	default:
		usage()
	}
}

// mustConversation parses -peer from args and returns a loaded conversation.
func mustConversation(ctx context.Context, login service.LoginService, tr chat.Transport, cfg config.Config, args []string, name string) *chat.Conversation {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	peer := fs.String("peer", "", "remote party")
	_ = fs.Parse(args)

	conv := conversation(ctx, login, tr, cfg, *peer)
	if err := conv.Load(ctx); err != nil {
		fail(err)
	}
	return conv
}

func conversation(ctx context.Context, login service.LoginService, tr chat.Transport, cfg config.Config, peer string) *chat.Conversation {
	if peer == "" {
		fail(fmt.Errorf("%w: -peer is required", errs.ErrValidation))
	}
	sess, err := login.Current(ctx)
	if err != nil {
		fail(err)
	}
	key := model.ConversationKey{Local: sess.DisplayName, Remote: peer}
	return chat.NewConversation(key, tr, cfg.MaxMessageLen)
}

// watch polls the conversation and prints messages as they arrive, until
// interrupted.
func watch(conv *chat.Conversation, cfg config.Config, logger *zap.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printed := make(map[string]struct{})
	flush := func() {
		for _, m := range conv.Messages() {
			if _, ok := printed[m.ID]; ok {
				continue
			}
			printed[m.ID] = struct{}{}
			printMessage(m)
		}
	}
	flush()

	go chat.NewPoller(conv, cfg.PollInterval, logger).Run(ctx)

	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				fail(ctx.Err())
			}
			return
		case <-t.C:
			flush()
		}
	}
}

func printMessage(m model.ChatMessage) {
	who := "them"
	if m.Sender == model.SenderLocal {
		who = "me"
	}
	fmt.Printf("[%s] %s: %s\n", m.SentAt.Format("15:04:05"), who, m.Body)
}
