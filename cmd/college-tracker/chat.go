// cmd/college-tracker/chat.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"college-tracker/internal/common/events"
	"college-tracker/internal/common/observability"
	"college-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const chatHelp = `Commands:
  /search on|off   toggle web search for following questions
  /open <name>     show a tracked college
  /history         show the conversation so far
  /clear           forget the conversation
  /exit            leave the chat`

func newChatCmd(a *app) *cobra.Command {
	var noSearch, plain, withMetrics bool
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive assistant session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if withMetrics && metricsAddr == "" {
				metricsAddr = a.cfg.Metrics.Address
			}
			if metricsAddr != "" && !a.cfg.Metrics.Enabled {
				a.log.Warn("metrics are disabled in the configuration", map[string]interface{}{"address": metricsAddr})
				metricsAddr = ""
			}
			if metricsAddr != "" {
				stop, err := a.serveMetrics(metricsAddr, out)
				if err != nil {
					return err
				}
				defer stop()
			}

			s := &chatSession{
				app:         a,
				allowSearch: !noSearch && a.cfg.Assistant.AllowSearch,
				plain:       plain,
				out:         out,
				now:         time.Now,
			}
			return s.run(ctx, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&noSearch, "no-search", false, "start with web search off")
	cmd.Flags().BoolVar(&plain, "plain", false, "print answers without markdown rendering")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "serve Prometheus metrics on metrics.address during the session")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the session")
	return cmd
}

// serveMetrics exposes /metrics for the lifetime of the chat session.
func (a *app) serveMetrics(addr string, out io.Writer) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	obs := observability.New(a.cfg.Metrics.Namespace, a.log)
	a.wireAssistant(obs)

	mux := http.NewServeMux()
	mux.Handle("/metrics", obs.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			a.log.Error("metrics server stopped", map[string]interface{}{"error": err})
		}
	}()
	_, _ = fmt.Fprintf(out, "Serving metrics on http://%s/metrics\n", ln.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		obs.Shutdown()
	}, nil
}

// chatSession owns the conversation history; the store stays the source of
// truth for colleges and profile.
type chatSession struct {
	app         *app
	allowSearch bool
	plain       bool
	out         io.Writer
	now         func() time.Time
	history     []models.AIMessage
}

func (s *chatSession) run(ctx context.Context, in io.Reader) error {
	_, _ = fmt.Fprintln(s.out, assistantStyle.Render("Hi! Ask me about deadlines, requirements or scholarships. Type /help for commands."))

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := s.command(line); quit {
				return nil
			}
			continue
		}
		s.ask(ctx, line)
	}
}

func (s *chatSession) command(line string) (quit bool) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/exit", "/quit":
		return true
	case "/help":
		_, _ = fmt.Fprintln(s.out, chatHelp)
	case "/search":
		switch arg {
		case "on":
			s.allowSearch = true
		case "off":
			s.allowSearch = false
		}
		_, _ = fmt.Fprintf(s.out, "Web search is %s\n", onOff(s.allowSearch))
	case "/open":
		if s.app.bus.Publish(events.OpenCollege(arg)) == 0 {
			_, _ = fmt.Fprintln(s.out, "Nothing to open")
		}
	case "/history":
		for _, m := range s.history {
			label := userStyle.Render("You")
			if m.Role == models.RoleAssistant {
				label = assistantStyle.Render("Assistant")
			}
			_, _ = fmt.Fprintf(s.out, "%s [%s]: %s\n", label, m.Timestamp, firstLine(m.Content))
		}
	case "/clear":
		s.history = nil
		_, _ = fmt.Fprintln(s.out, "Conversation cleared")
	default:
		_, _ = fmt.Fprintf(s.out, "Unknown command %s\n", name)
	}
	return false
}

func (s *chatSession) ask(ctx context.Context, query string) {
	s.history = append(s.history, s.message(models.RoleUser, query))

	pending := s.message(models.RoleAssistant, "")
	pending.IsSearching = s.allowSearch && s.app.queryCfg.Vocabulary.NeedsSearch(query)
	if pending.IsSearching {
		_, _ = fmt.Fprintln(s.out, labelStyle.Render("Searching the web..."))
	}

	resp := s.app.assistant.ProcessQuery(ctx, query, s.app.store.Colleges(), s.allowSearch, s.app.store.Profile())

	pending.IsSearching = false
	pending.Content = resp.Content
	if len(resp.SearchResults) > 0 {
		sources := make([]string, len(resp.SearchResults))
		for i, r := range resp.SearchResults {
			sources[i] = r.URL
		}
		pending.Metadata = &models.MessageMetadata{SearchQuery: query, Sources: sources}
	}
	s.history = append(s.history, pending)

	_, _ = fmt.Fprintln(s.out, assistantStyle.Render("Assistant"))
	printAnswer(s.out, resp, s.plain)
}

func (s *chatSession) message(role models.MessageRole, content string) models.AIMessage {
	return models.AIMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: s.now().Format(time.Kitchen),
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
