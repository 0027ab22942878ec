package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hanpama/gqlcore/internal/eventbus"
	"github.com/hanpama/gqlcore/internal/executor"
	"github.com/hanpama/gqlcore/internal/introspection"
	"github.com/hanpama/gqlcore/internal/logging"
	"github.com/hanpama/gqlcore/internal/otel"
	"github.com/hanpama/gqlcore/internal/render"
	"github.com/hanpama/gqlcore/internal/schema"
	"github.com/hanpama/gqlcore/internal/server"
)

const rootUsage = `gqlcore — GraphQL schema tools & HTTP server

USAGE:
  gqlcore <command> [flags]

COMMANDS:
  serve                Run the HTTP GraphQL endpoint over an SDL schema
  print-sdl            Validate an SDL schema and print its canonical form
  print-introspection  Print the introspection portion of the schema as SDL
  help                 Show help for any command
`

const serveUsage = `serve FLAGS:
  -schema <file>                  GraphQL SDL schema file (required)
  -data <file>                    JSON document resolved as the root value
  -server.addr <addr>             HTTP listen address (default: :8080)
  -server.pretty                  Pretty-print JSON responses
  -server.timeout <duration>      Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>        Max request body size (default: unlimited)
  -server.cors-origin <origin>    Allowed CORS origin. Repeatable
  -server.metadata-header <name>  Forward HTTP header to gRPC metadata. Repeatable
  -graphql.introspection <bool>   Enable GraphQL introspection (default: true)
  -graphiql <bool>                Serve the GraphiQL IDE (default: true)
  -otel.endpoint <addr>           OTLP collector endpoint
  -otel.service <name>            OpenTelemetry service name (default: gqlcore)
  -log.level <level>              Log level (default: info)
  -log.dev                        Human-readable console logging
`

const printSDLUsage = `print-sdl FLAGS:
  -schema <file>  GraphQL SDL schema file (required)
  -out <file>     Write canonical SDL to file (default: stdout)
  (Validation always runs; exits non-zero on errors)
`

const printIntrospectionUsage = `print-introspection FLAGS:
  -schema <file>  GraphQL SDL schema file (required)
  -out <file>     Write introspection SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlcore", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return errors.New("missing command")
	}

	cmd, cmdArgs := remaining[0], remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "print-sdl":
		return cmdPrintSDL(cmdArgs)
	case "print-introspection":
		return cmdPrintIntrospection(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "print-sdl":
		fmt.Print(printSDLUsage)
	case "print-introspection":
		fmt.Print(printIntrospectionUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// stringListFlag collects repeatable string flags.
type stringListFlag []string

func (s *stringListFlag) String() string     { return "" }
func (s *stringListFlag) Set(v string) error { *s = append(*s, v); return nil }

func loadSchemaFile(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, errors.New("-schema is required")
	}
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sch, err := schema.BuildFromSDL(path, string(sdl))
	if err != nil {
		return nil, err
	}
	if errs := schema.Validate(sch); len(errs) > 0 {
		return nil, errs
	}
	return sch, nil
}

func writeOutput(out, content string) error {
	if out == "" {
		_, err := fmt.Print(content)
		return err
	}
	return os.WriteFile(out, []byte(content), 0o644)
}

func cmdPrintSDL(args []string) error {
	fs := flag.NewFlagSet("print-sdl", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "")
	out := fs.String("out", "", "")
	fs.Usage = func() { fmt.Fprint(os.Stderr, printSDLUsage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	sch, err := loadSchemaFile(*schemaPath)
	if err != nil {
		return err
	}
	return writeOutput(*out, render.Schema(sch))
}

func cmdPrintIntrospection(args []string) error {
	fs := flag.NewFlagSet("print-introspection", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "")
	out := fs.String("out", "", "")
	fs.Usage = func() { fmt.Fprint(os.Stderr, printIntrospectionUsage) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	sch, err := loadSchemaFile(*schemaPath)
	if err != nil {
		return err
	}
	return writeOutput(*out, render.IntrospectionSchema(introspection.Extend(sch)))
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	schemaPath := fs.String("schema", "", "")
	dataPath := fs.String("data", "", "")
	addr := fs.String("server.addr", ":8080", "")
	pretty := fs.Bool("server.pretty", false, "")
	timeout := fs.Duration("server.timeout", 10*time.Second, "")
	maxBody := fs.Int64("server.max-body", 0, "")
	var corsOrigins stringListFlag
	fs.Var(&corsOrigins, "server.cors-origin", "")
	var metadataHeaders stringListFlag
	fs.Var(&metadataHeaders, "server.metadata-header", "")
	introspect := fs.Bool("graphql.introspection", true, "")
	graphiql := fs.Bool("graphiql", true, "")
	otelEndpoint := fs.String("otel.endpoint", "", "")
	otelService := fs.String("otel.service", "gqlcore", "")
	logLevel := fs.String("log.level", "info", "")
	logDev := fs.Bool("log.dev", false, "")
	fs.Usage = func() { fmt.Fprint(os.Stderr, serveUsage) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(*logLevel, *logDev)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	eventbus.Use(eventbus.New())
	detach := logging.Attach(logger)
	defer detach()

	shutdownTraces, err := otel.Setup(*otelEndpoint, *otelService)
	if err != nil {
		return err
	}

	sch, err := loadSchemaFile(*schemaPath)
	if err != nil {
		return err
	}

	root := map[string]any{}
	if *dataPath != "" {
		raw, err := os.ReadFile(*dataPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &root); err != nil {
			return fmt.Errorf("parsing %s: %w", *dataPath, err)
		}
	}

	opts := []server.Option{
		server.WithTimeout(*timeout),
		server.WithIntrospection(*introspect),
		server.WithGraphiQL(*graphiql),
	}
	if *pretty {
		opts = append(opts, server.WithPretty())
	}
	if *maxBody > 0 {
		opts = append(opts, server.WithMaxBodyBytes(*maxBody))
	}
	if len(corsOrigins) > 0 {
		opts = append(opts, server.WithCORS(corsOrigins...))
	}
	if len(metadataHeaders) > 0 {
		opts = append(opts, server.WithMetadataHeaders(metadataHeaders...))
	}

	handler, err := server.New(executor.NewMapRuntime(root), sch, opts...)
	if err != nil {
		return err
	}

	srv := &http.Server{Addr: *addr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return shutdownTraces(shutdownCtx)
}
