package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"seedline/internal/config"
	"seedline/internal/content"
	"seedline/internal/db"
	"seedline/internal/gen"
	"seedline/internal/logging"
	"seedline/internal/migrate"
	"seedline/internal/server"
	"seedline/internal/sink"
)

var rootCmd = &cobra.Command{
	Use:   "seedline",
	Short: "Seedline CLI",
	Long: `Seedline generates realistic project-management seed data into SQLite.
A run builds one workspace: users, teams, projects, tasks, comments, tags,
attachments and custom fields, with timestamps shaped like real activity.
The same seed and scenario always reproduce the same database.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SEEDLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().StringP("config", "c", "", "scenario config file (YAML)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(serveCmd())
}

func loadScenario() (*config.Config, error) {
	if path := viper.GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.Default(), nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Logging.Level, cfg.Logging.Environment)
}

// textSource wires the LLM content source with template fallback when the
// scenario enables it; otherwise the generator defaults to templates.
func textSource(cfg *config.Config, log *zap.Logger) content.Source {
	if !cfg.LLM.Enabled {
		return nil
	}
	llm := content.NewLLMSource(content.LLMConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      os.Getenv("SEEDLINE_API_KEY"),
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Retries:     cfg.LLM.Retries,
		RetryDelay:  cfg.RetryDelay(),
	}, log)
	templates := &content.TemplateSource{
		TaskTemplates:    cfg.Content.TaskNameTemplates,
		CommentTemplates: cfg.Content.CommentTemplates,
	}
	return content.WithFallback(llm, templates, log)
}

func generateCmd() *cobra.Command {
	var seed int64
	var reset bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			workspace := viper.GetString("workspace")
			if reset {
				if err := db.Remove(workspace); err != nil {
					return err
				}
			}

			g, err := gen.New(cfg, seed, textSource(cfg, log), log)
			if err != nil {
				return err
			}
			ds, err := g.Run(cmd.Context())
			if err != nil {
				return err
			}

			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			if err := (sink.Store{DB: conn}).Write(cmd.Context(), ds); err != nil {
				return fmt.Errorf("persist dataset: %w (use --reset to replace existing data)", err)
			}

			log.Info("database written",
				zap.String("path", db.Path(workspace)),
				zap.Int64("seed", seed))
			return printCounts(ds.Counts())
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed (defaults to wall clock)")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete an existing database first")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-table row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(db.Config{Workspace: viper.GetString("workspace")})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			stats, err := sink.Store{DB: conn}.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(stats)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Table", "Rows"})
			for _, tc := range stats {
				tw.AppendRow(table.Row{tc.Table, tc.Rows})
			}
			tw.Render()
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Inspect scenario configuration"}
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario()
			if err != nil {
				return err
			}
			return printJSON(scenario)
		},
	})
	return cfg
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			secret := os.Getenv("SEEDLINE_JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("SEEDLINE_JWT_SECRET is required for bearer auth")
			}
			handler, err := server.New(server.Config{
				Workspace: viper.GetString("workspace"),
				Scenario:  cfg,
				BasePath:  basePath,
				Auth:      server.AuthConfig{JWTSecret: secret},
				Log:       log,
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Seedline API on http://%s%s (OpenAPI at %s/openapi.json)\n", addr, basePath, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "/v0", "API base path")
	return cmd
}

func printCounts(counts map[string]int) error {
	if viper.GetBool("json") {
		return printJSON(counts)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Table", "Rows"})
	for _, name := range sink.Tables {
		tw.AppendRow(table.Row{name, counts[name]})
	}
	tw.Render()
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
