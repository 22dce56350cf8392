package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"chef-express/internal/client"
	"chef-express/internal/core/pantry"
	"chef-express/internal/infrastructure/config"
	"chef-express/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
)

// app 指令共用的依賴
type app struct {
	cfg        *config.Config
	out        io.Writer
	loadConfig func() (*config.Config, error)
	openPantry func(ctx context.Context, cfg *config.Config) (pantry.Store, error)
	newClient  func(cfg *config.Config) *client.Client

	apiURL  string
	timeout time.Duration
}

func newApp() *app {
	return &app{
		out:        os.Stdout,
		loadConfig: config.LoadConfig,
		openPantry: openPantryStore,
		newClient: func(cfg *config.Config) *client.Client {
			return client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "chefctl",
		Short: "Find recipes you can cook with what's in your pantry",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			common.Sync()
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "chef-express API base URL (overrides CHEF_API_URL)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "API request timeout")

	root.AddCommand(newPantryCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newImportCmd(a))
	return root
}

// init 載入設定並初始化日誌
func (a *app) init() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.apiURL != "" {
		cfg.Client.BaseURL = a.apiURL
	}
	if a.timeout > 0 {
		cfg.Client.Timeout = a.timeout
	}
	a.cfg = cfg

	// CLI 只在終端輸出警告以上的日誌
	level := "warn"
	if common.ParseLevel(cfg.LogLevel) > common.ParseLevel(level) {
		level = cfg.LogLevel
	}
	return common.InitLogger(common.LoggerOptions{Level: level, Service: "chefctl"})
}

// openPantryStore 依設定選擇清單儲存後端
func openPantryStore(ctx context.Context, cfg *config.Config) (pantry.Store, error) {
	if cfg.Pantry.Backend == "redis" {
		store, err := pantry.NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Pantry.Key)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := pantry.OpenSQLite(cfg.Pantry.Path, cfg.Pantry.Key)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// withPantry 開啟並載入清單後執行 fn
func (a *app) withPantry(ctx context.Context, fn func(list *pantry.List) error) error {
	store, err := a.openPantry(ctx, a.cfg)
	if err != nil {
		return fmt.Errorf("opening pantry: %w", err)
	}
	defer store.Close()

	list := pantry.NewList(store)
	if err := list.Load(ctx); err != nil {
		return fmt.Errorf("loading pantry: %w", err)
	}
	return fn(list)
}
