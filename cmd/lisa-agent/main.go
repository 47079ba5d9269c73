// Lisa is a voice assistant backend: it serves the assistant's tool set
// to the reasoning runtime over MCP and bridges the realtime room's text
// side-channel.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/humate-ai/lisa-agent/internal/auth"
	"github.com/humate-ai/lisa-agent/internal/config"
	"github.com/humate-ai/lisa-agent/internal/gservice"
	"github.com/humate-ai/lisa-agent/internal/prompt"
	"github.com/humate-ai/lisa-agent/internal/roomio"
	"github.com/humate-ai/lisa-agent/internal/session"
	"github.com/humate-ai/lisa-agent/internal/tool"
	"github.com/humate-ai/lisa-agent/internal/weather"
)

func main() {
	httpAddr := flag.String("http-addr", "localhost:0", "HTTP server listen addr")
	tokenFile := flag.String("token-file", "./token.json", "Path to the OAuth token bundle read by calendar/mail tools")
	envFileParam := flag.String("env-file", "", "Path to env file")
	roomName := flag.String("room", "", "Realtime room to join; empty disables the room bridge")
	enableStdio := flag.Bool("stdio", false, "Enable stdio transport for MCP (disables stdout logging)")
	logFile := flag.String("log-file", "", "Path to log file (only used with stdio transport, otherwise logs to stdout)")

	flag.Parse()

	persistLogs := setupLogger(enableStdio, logFile)
	defer persistLogs()

	if *envFileParam != "" {
		if err := godotenv.Load(*envFileParam); err != nil {
			panic(fmt.Errorf("godotenv.Load failed: %w", err))
		}
	}
	cfg := config.Load()

	zone, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		panic(fmt.Errorf("time.LoadLocation(%s) failed: %w", cfg.Timezone, err))
	}

	oauthCfg := mustCreateOauthCfg()

	tok, err := auth.NewToken(*tokenFile)
	if err != nil {
		panic(fmt.Errorf("auth.NewToken failed: %w", err))
	}

	defer func() {
		log.Println("Persisting token if exists")
		if err := tok.Persist(); err != nil {
			log.Println(fmt.Errorf("tok.Persist failed: %w", err))
		}
	}()

	sess := session.New()
	log.Printf("conversation session %s", sess.ID())

	srv := tool.NewServer(tool.Deps{
		Weather:  weather.NewClient(cfg.OpenWeatherAPIKey),
		Calendar: gservice.NewCalendar(oauthCfg, tok),
		Gmail:    gservice.NewGmail(oauthCfg, tok),
		Session:  sess,
		Clock:    time.Now,
		Zone:     zone,
	})

	ln := mustListen(httpAddr)

	mux := http.NewServeMux()
	mcpHTTP := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return srv }, nil)
	mux.Handle("/mcp", mcpHTTP)

	httpSrv := &http.Server{
		Handler: mux,
	}

	shutdown := make(chan os.Signal, 1)

	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	stopHTTP, errHTTPCh := serveHTTP(httpSrv, ln)
	defer stopHTTP()

	var errStdioCh <-chan error
	if *enableStdio {
		var stopStdio func()
		stopStdio, errStdioCh = serveStdio(srv)
		defer stopStdio()
	}

	if *roomName != "" {
		bridge, err := connectRoom(cfg, *roomName, zone)
		if err != nil {
			panic(fmt.Errorf("connectRoom failed: %w", err))
		}
		defer bridge.Close()

		if err := bridge.Say(prompt.Greeting); err != nil {
			log.Println(fmt.Errorf("bridge.Say failed: %w", err))
		}
	}

	select {
	case err := <-errHTTPCh:
		log.Println("Error http server", err)
	case err := <-errStdioCh:
		log.Println("Error stdio", err)
	case <-shutdown:
		log.Println("Shutdown signal received")
	}
}

func connectRoom(cfg *config.Config, roomName string, zone *time.Location) (*roomio.Bridge, error) {
	selector := prompt.NewSelector(prompt.DefaultRules()...)
	base := prompt.BaseInstructions(tool.SpokenDate(time.Now().In(zone)))

	metadata, err := json.Marshal(map[string]string{
		"stt_model":      cfg.DeepgramModel,
		"stt_language":   cfg.DeepgramLanguage,
		"tts_voice_id":   cfg.ElevenVoiceID,
		"tts_model_id":   cfg.ElevenModelID,
		"llm_deployment": cfg.AzureDeployment,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal failed: %w", err)
	}

	return roomio.Connect(roomio.Config{
		URL:          cfg.LiveKitURL,
		APIKey:       cfg.LiveKitAPIKey,
		APISecret:    cfg.LiveKitAPISecret,
		RoomName:     roomName,
		Identity:     cfg.AgentIdentity,
		Metadata:     string(metadata),
		ChatTopic:    cfg.ChatTopic,
		ContextTopic: cfg.ContextTopic,
	}, func(_ context.Context, utterance string) (string, error) {
		turn, err := json.Marshal(map[string]string{
			"instructions": selector.Augment(base, utterance),
			"message":      utterance,
		})
		if err != nil {
			return "", fmt.Errorf("json.Marshal failed: %w", err)
		}

		return string(turn), nil
	})
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
			err = fmt.Errorf("srv.ListenAndServe failed: %w", err)
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

func mustListen(httpAddr *string) net.Listener {
	if httpAddr == nil {
		panic("-http-addr must be provided")
	}

	ln, err := net.Listen("tcp", *httpAddr)
	if err != nil {
		panic(fmt.Errorf("net.Listen failed: %w", err))
	}

	return ln
}

func mustCreateOauthCfg() *oauth2.Config {
	oauthClientID := os.Getenv("OAUTH_GOOGLE_CLIENT_ID")
	oauthClientSec := os.Getenv("OAUTH_GOOGLE_CLIENT_SECRET")

	if oauthClientID == "" || oauthClientSec == "" {
		panic("Env variables OAUTH_GOOGLE_CLIENT_ID and OAUTH_GOOGLE_CLIENT_SECRET must be set")
	}

	return &oauth2.Config{
		ClientID:     oauthClientID,
		ClientSecret: oauthClientSec,
		Scopes:       gservice.Scopes,
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
