// Package main API Server 入口
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts-auth/internal/apiserver/auth"
	"accounts-auth/internal/apiserver/server"
	"accounts-auth/internal/config"
	"accounts-auth/internal/shared/infra"
)

func main() {
	configDir := flag.String("config", "", "config directory (overrides CONFIG_DIR)")
	flag.Parse()
	if *configDir != "" {
		config.SetConfigDir(*configDir)
	}

	// 加载配置（自动加载 .env，按 APP_ENV 选择 YAML）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting API Server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	// 初始化账号存储与事件总线
	in, err := infra.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init infrastructure: %v", err)
	}
	defer in.Close()
	log.Printf("Connected to %s", cfg.DatabaseDriver)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to init token issuer: %v", err)
	}
	svc := auth.NewService(in.Store, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, in.EventBus)

	h := server.NewHandler(svc, tokens)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("API Server listening on :%s", cfg.APIPort)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped")
}
