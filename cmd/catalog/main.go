package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/commands"
	httpapi "github.com/goliatone/go-catalog/internal/http"
	"github.com/goliatone/go-catalog/internal/products"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/joho/godotenv"
)

const usage = `catalog <command> [flags]

COMMANDS:
  serve    Start the HTTP API
  seed     Load products and home content from a JSON file

Configuration is read from CATALOG_* environment variables and an optional .env file.`

var moduleBuilder = func(cfg catalog.Config) (*catalog.Module, error) {
	return catalog.New(cfg)
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("catalog: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usage)
		return errors.New("command required")
	}

	cfg, err := catalog.LoadConfig(nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch args[0] {
	case "serve":
		return runServe(ctx, cfg, args[1:])
	case "seed":
		return runSeed(ctx, cfg, args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		fmt.Fprintln(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runServe(ctx context.Context, cfg catalog.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.HTTP.Addr, "Listen address")
	basePath := fs.String("base-path", "/api", "Route prefix for the API")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler, err := module.API(httpapi.WithBasePath(*basePath)).Handler()
	if err != nil {
		return err
	}
	if cfg.HTTP.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.HTTP.RequestTimeout, `{"error":"STORAGE_ERROR","message":"request timed out"}`)
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("catalog: listening on %s", *addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

type seedFile struct {
	Products []commands.CreateProductCommand `json:"products"`
	Home     []commands.UpsertHomeCommand    `json:"home"`
}

func runSeed(ctx context.Context, cfg catalog.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := fs.String("file", "", "Path to the JSON seed file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" && fs.NArg() > 0 {
		*file = fs.Arg(0)
	}
	if *file == "" {
		return errors.New("seed file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}

	module, err := moduleBuilder(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	registration, err := commands.RegisterContainerCommands(module.Container(), commands.RegistrationOptions{
		Dispatcher: commands.GoCommandDispatcher{},
		ProductWritten: func(p *products.Product) {
			fmt.Fprintf(out, "product %s %s\n", p.Slug, p.ID)
		},
	})
	defer registration.Unsubscribe()
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	var errs error
	for i, msg := range seed.Products {
		if err := dispatcher.Dispatch(ctx, msg); err != nil {
			errs = errors.Join(errs, fmt.Errorf("product %d: %w", i, err))
		}
	}
	for i, msg := range seed.Home {
		if err := dispatcher.Dispatch(ctx, msg); err != nil {
			errs = errors.Join(errs, fmt.Errorf("home %d: %w", i, err))
			continue
		}
		fmt.Fprintf(out, "home %s\n", displayKey(msg.Key))
	}
	return errs
}

func displayKey(key string) string {
	if key == "" {
		return "home"
	}
	return key
}
