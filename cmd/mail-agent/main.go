// mail-agent turns free-text requests into emails: it extracts the
// recipient and subject, generates body content with Gemini, and hands
// the result to an n8n webhook (or the Gmail API) for delivery. It runs
// as an interactive prompt by default and as an MCP server with -stdio
// or -http-addr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/hal9000y/mail-agent/internal/agent"
	"github.com/hal9000y/mail-agent/internal/auth"
	"github.com/hal9000y/mail-agent/internal/config"
	"github.com/hal9000y/mail-agent/internal/delivery"
	"github.com/hal9000y/mail-agent/internal/llm"
	"github.com/hal9000y/mail-agent/internal/tool"
)

// agentService bundles the orchestrator and the interpreter for the
// MCP tool server.
type agentService struct {
	*agent.Agent
	*agent.Interpreter
}

func main() {
	envFile := flag.String("env-file", "", "Path to env file")
	httpAddr := flag.String("http-addr", "", "HTTP listen addr for MCP and OAuth (empty to disable unless the gmail provider needs it)")
	oauthTokenFile := flag.String("oauth-token-file", "./data/mail-agent-token.json", "Path to cache the Gmail OAuth token, empty to avoid storing")
	enableStdio := flag.Bool("stdio", false, "Serve MCP over stdio instead of the interactive prompt (disables stdout logging)")
	logFile := flag.String("log-file", "", "Path to log file (only used with stdio transport, otherwise logs to stdout)")

	flag.Parse()

	persistLogs := setupLogger(enableStdio, logFile)
	defer persistLogs()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(fmt.Errorf("config.Load failed: %w", err))
	}

	gemini := llm.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	interp := agent.NewInterpreter(agent.NewContentGenerator(gemini))

	var ln net.Listener
	mux := http.NewServeMux()

	needHTTP := *httpAddr != "" || cfg.DeliveryProvider == config.ProviderGmail
	if needHTTP {
		addr := *httpAddr
		if addr == "" {
			addr = "localhost:0"
		}
		ln = mustListen(addr)
	}

	var sender interface {
		Send(ctx context.Context, req *agent.EmailRequest) error
	}

	switch cfg.DeliveryProvider {
	case config.ProviderGmail:
		oauthCfg := gmailOAuthConfig(cfg, fmt.Sprintf("http://%s/oauth", ln.Addr().String()))

		tok, err := auth.NewToken(oauthCfg, *oauthTokenFile)
		if err != nil {
			panic(fmt.Errorf("auth.NewToken failed: %w", err))
		}
		defer func() {
			log.Println("Persisting token if exists")
			if err := tok.Persist(); err != nil {
				log.Println(fmt.Errorf("tok.Persist failed: %w", err))
			}
		}()

		mux.Handle("/oauth", auth.NewHTTPHandler(tok))

		if _, err := tok.OAuthToken(); errors.Is(err, auth.ErrTokenNotSet) {
			openBrowser(fmt.Sprintf("http://%s/oauth", ln.Addr().String()))
		}

		sender = delivery.NewGmail(oauthCfg, tok, cfg.GmailFrom)
	default:
		sender = delivery.NewWebhook(cfg.WebhookURL, cfg.WebhookAPIKey)
	}

	a := agent.New(interp, sender)
	mcpServer := tool.NewServer(&agentService{Agent: a, Interpreter: interp})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	var errHTTPCh <-chan error
	if ln != nil {
		mcpHTTP := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return mcpServer }, nil)
		mux.Handle("/mcp", mcpHTTP)

		var stopHTTP func()
		stopHTTP, errHTTPCh = serveHTTP(&http.Server{Handler: mux}, ln)
		defer stopHTTP()
	}

	if !*enableStdio {
		runInteractive(a, shutdown)
		return
	}

	stopStdio, errStdioCh := serveStdio(mcpServer)
	defer stopStdio()

	select {
	case err := <-errHTTPCh:
		log.Println("Error http server", err)
	case err := <-errStdioCh:
		log.Println("Error stdio", err)
	case <-shutdown:
		log.Println("Shutdown signal received")
	}
}

// runInteractive runs the prompt loop in the foreground until the user
// exits or a shutdown signal arrives.
func runInteractive(a *agent.Agent, shutdown <-chan os.Signal) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := runPrompt(context.Background(), os.Stdin, os.Stdout, a); err != nil {
			log.Println(fmt.Errorf("runPrompt failed: %w", err))
		}
	}()

	select {
	case <-done:
	case <-shutdown:
		log.Println("Shutdown signal received")
	}
}

func serveStdio(srv *mcp.Server) (func(), <-chan error) {
	errStdioCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(errStdioCh)
		log.Println("Starting stdio transport")

		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			err = fmt.Errorf("srv.Run failed: %w", err)
			errStdioCh <- err
		}
	}()

	return func() {
		cancel()

		<-errStdioCh
		log.Println("Stdio transport stopped")
	}, errStdioCh
}

func serveHTTP(srv *http.Server, ln net.Listener) (func(), <-chan error) {
	errHTTPCh := make(chan error, 1)
	go func() {
		defer close(errHTTPCh)

		log.Println("Starting http server on", ln.Addr().String())

		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("srv.Serve failed: %w", err)
			log.Println(err)
			errHTTPCh <- err
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println(fmt.Errorf("srv.Shutdown failed: %w", err))
		}

		<-errHTTPCh
		log.Println("HTTP server stopped")
	}, errHTTPCh
}

func mustListen(httpAddr string) net.Listener {
	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		panic(fmt.Errorf("net.Listen failed: %w", err))
	}

	return ln
}

func gmailOAuthConfig(cfg *config.Config, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{gmail.GmailSendScope},
		Endpoint:     google.Endpoint,
	}
}

func setupLogger(enableStdio *bool, logFile *string) func() {
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}
		log.SetOutput(f)

		return func() {
			if err := f.Close(); err != nil {
				log.Println(fmt.Errorf("f.Close failed: %w", err))
			}
		}
	}

	if *enableStdio {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stdout)
	}

	return func() {}
}

func openBrowser(url string) {
	url = fmt.Sprintf("%s?redirect=1", url)
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	if err != nil {
		log.Printf("Could not open browser automatically: %v; please copy and open link in the browser: %s\n", err, url)
	}
}
