package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/storage"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// initialUtterance seeds the conversation so the assistant speaks first.
const initialUtterance = "Hello"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening conversation with a candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("candidates-dir", "c", "", "directory for candidate snapshot files. Default is 'candidates'.")
	runCmd.Flags().BoolP("secure", "s", false, "redact contact details in stored snapshots")
	runCmd.Flags().IntP("questions", "q", 0, "number of technical questions to ask. Default is 3.")

	viper.BindPFlag("storage.dir", runCmd.Flags().Lookup("candidates-dir"))
	viper.BindPFlag("storage.secure", runCmd.Flags().Lookup("secure"))
	viper.BindPFlag("interview.total-questions", runCmd.Flags().Lookup("questions"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talentscout screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	responder, err := newResponder(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building the response generator",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	session := interview.New(
		&interview.Config{TotalQuestions: viper.GetInt("interview.total-questions")},
		&interview.Deps{
			Responder: responder,
			Store:     newStore(logger),
			Logger:    logger,
		},
	)

	reply := session.Turn(ctx, initialUtterance)
	fmt.Printf("\nAssistant: %s\n\n", reply)

	prompt := promptui.Prompt{Label: "You"}
	for !session.Terminated() {
		input, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", "input closed"))
				break
			}
			logger.Fatal("reading input", zap.Error(err))
		}

		reply := session.Turn(ctx, extract.Sanitize(input))
		fmt.Printf("\nAssistant: %s\n\n", reply)
	}

	profile := session.Profile()
	logger.Info("screening finished",
		zap.String("stage", string(session.State().Stage)),
		zap.String("candidate", profile.FullName),
		zap.Int("fields_collected", len(session.State().Collected)),
		zap.Int("technical_responses", len(profile.TechnicalResponses)),
	)
}

func newStore(zlog *zap.Logger) interview.Store {
	dir := viper.GetString("storage.dir")
	if viper.GetBool("storage.secure") {
		return storage.NewSecureStore(dir, zlog)
	}
	return storage.NewFileStore(dir, zlog)
}

func newResponder(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Responder, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithCommonFields(zlog, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewResponder(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}
