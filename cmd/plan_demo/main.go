package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"wanderlust/internal/app"
	"wanderlust/internal/config"
	"wanderlust/internal/infra"
	"wanderlust/internal/service"
)

func main() {
	prompt := flag.String("prompt", "A 5-day trip to Kyoto to see temples and gardens", "travel request")
	preferences := flag.String("preferences", "", "comma-separated preferences")
	interests := flag.String("interests", "", "comma-separated interests")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := infra.NewLogger(cfg.Log.Level, true)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	fmt.Printf("Prompt: %s\n", *prompt)
	res, err := application.Pipeline.Generate(ctx, service.GenerateRequest{
		Prompt:      *prompt,
		Preferences: splitFlag(*preferences),
		Interests:   splitFlag(*interests),
	})
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	if res.Existing {
		fmt.Println("Found existing travel plan")
	} else {
		fmt.Println("Travel plan generated successfully")
	}
	out, err := json.MarshalIndent(res.Plan, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

func splitFlag(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
