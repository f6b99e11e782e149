package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/lshigami/placement/internal/logger"
	"github.com/lshigami/placement/internal/quizclient"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	logger.Init()

	viper.SetDefault("QUIZ_API_BASE", "http://localhost:8080")
	viper.AutomaticEnv()

	apiBase := flag.String("api", viper.GetString("QUIZ_API_BASE"), "base URL of the placement quiz API")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := quizclient.New(*apiBase, nil)
	if err := client.Health(ctx); err != nil {
		log.Fatal().Err(err).Str("api", *apiBase).Msg("Quiz API is not reachable")
	}

	if _, err := quizclient.RunConsole(ctx, client, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, quizclient.ErrNoQuestions) {
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Quiz aborted")
	}
}
