/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/sessions"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"webchat/internal/chat"
	"webchat/internal/config"
	"webchat/internal/handler"
	"webchat/internal/middleware"
	"webchat/internal/repository"
	"webchat/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle and
// centralizes error reporting, so deferred cleanups always execute.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	// Account directory (SQLite).
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	// Message store (BadgerDB).
	messageDB, err := badger.Open(badger.DefaultOptions(cfg.BadgerPath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("message store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing message store...")
		_ = messageDB.Close()
	}()

	userRepository := repository.NewSQLiteUserRepository(db)
	messageRepository := repository.NewBadgerMessageRepository(messageDB, log, cfg.ChatHistoryLimit)
	presence := chat.NewPresenceTracker(cfg.PresenceWindow)

	authService := service.NewAuthService(userRepository, presence, log)
	userService := service.NewUserService(userRepository)
	chatService := service.NewChatService(userRepository, messageRepository, presence, log)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	limiter := middleware.NewLimiterStore(cfg.SendLimitPerMinute, cfg.SendBurst, time.Minute)
	defer limiter.Stop()

	router := handler.NewRouter(
		handler.NewAuthHandler(authService, chatService, cookieStore),
		handler.NewUserHandler(userService, authService, cookieStore),
		handler.NewChatHandler(chatService),
		cookieStore,
		limiter,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	log.Info("Program stopped cleanly")
	return nil
}
