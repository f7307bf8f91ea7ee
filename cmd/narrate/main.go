// Command narrate is the kiosk companion of the catalog server: it fetches
// one plant and reads it aloud, toggling between speaking and stopped on
// every Enter key press. Type q to quit.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/logging"
	"github.com/hkbk-garden/plant-catalog/pkg/speech"
)

// narrateConfig is read from the environment only.
type narrateConfig struct {
	CatalogURL string        `env:"CATALOG_URL" env-default:"http://localhost:8080" env-description:"catalog server base URL"`
	Program    string        `env:"SPEECH_PROGRAM" env-default:"espeak-ng" env-description:"espeak-compatible speech program"`
	Timeout    time.Duration `env:"CATALOG_TIMEOUT" env-default:"10s" env-description:"request timeout"`
	LogLevel   string        `env:"LOG_LEVEL" env-default:"warn"`
	Env        string        `env:"ENVIRONMENT" env-default:"local"`
}

func main() {
	var cfg narrateConfig
	fs := flag.NewFlagSet("narrate", flag.ExitOnError)
	id := fs.String("id", "", "plant id to read aloud")
	fs.Usage = cleanenv.FUsage(fs.Output(), &cfg, nil, fs.Usage)
	_ = fs.Parse(os.Args[1:])

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}
	if *id == "" && fs.NArg() > 0 {
		*id = fs.Arg(0)
	}
	if *id == "" {
		fs.Usage()
		os.Exit(2)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := newCatalogClient(cfg.CatalogURL, cfg.Timeout)
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	detail, err := client.Detail(ctx, *id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	narrator := speech.NewNarrator(speech.ExecSynthesizer{Program: cfg.Program}, logger)
	fmt.Println(detail.Plant.Heading)
	runToggleLoop(ctx, narrator, detail.Utterance, os.Stdin, os.Stdout)
}

// runToggleLoop toggles the narrator on every input line until q, EOF or
// ctx is done. The active utterance is always stopped on return.
func runToggleLoop(ctx context.Context, n *speech.Narrator, u speech.Utterance, in io.Reader, out io.Writer) {
	defer n.Stop()

	// The hook runs on the narrator's goroutine; only this loop writes to out.
	finished := make(chan struct{}, 1)
	n.OnFinish(func(speech.State) {
		select {
		case finished <- struct{}{}:
		default:
		}
	})
	defer n.OnFinish(nil)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Fprintf(out, "[%s] ", n.Label())
	for {
		select {
		case <-ctx.Done():
			return
		case <-finished:
			if n.State() == speech.Idle {
				fmt.Fprintf(out, "[%s] ", speech.LabelIdle)
			}
		case line, ok := <-lines:
			if !ok || strings.EqualFold(strings.TrimSpace(line), "q") {
				return
			}
			n.Toggle(ctx, u)
			fmt.Fprintf(out, "[%s] ", n.Label())
		}
	}
}
