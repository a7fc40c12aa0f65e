package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mytime/internal/api"
	"mytime/internal/bot"
	"mytime/internal/config"
	"mytime/internal/repository"
	"mytime/internal/service"
	"mytime/internal/suggest"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	if err := categoryRepo.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed categories: %v", err)
	}

	loc := time.Local

	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, sessionRepo, loc)
	sessionSvc := service.NewSessionService(sessionRepo, taskRepo, loc)
	moodSvc := service.NewMoodService(moodRepo)
	breakdownSvc := service.NewBreakdownService(docRepo, categoryRepo, taskSvc)
	reminderSvc := service.NewReminderService(taskRepo, categoryRepo, moodRepo, loc)

	var suggestClient *suggest.Client
	if cfg.OpenAIKey != "" {
		suggestClient = suggest.New(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		log.Println("[info] OPENAI_API_KEY not set; suggestion endpoints disabled")
	}

	scheduler := service.NewSchedulerService(loc)

	// The 1-second tick is the only autonomous process: it auto-ends
	// expired sessions.
	if _, err := scheduler.ScheduleInterval(time.Second, func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sessionSvc.Advance(tickCtx, time.Now().In(loc)); err != nil {
			log.Printf("session tick: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule session tick: %v", err)
	}

	if cfg.DigestEnabled() {
		notifier, err := bot.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			digest, err := reminderSvc.DailyDigest(jobCtx, time.Now().In(loc))
			if err != nil {
				log.Printf("digest: %v", err)
				return
			}
			if err := notifier.SendDigest(jobCtx, digest); err != nil {
				log.Printf("digest: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule digest: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	server := api.New(cfg.Addr, loc, categorySvc, taskSvc, sessionSvc, moodSvc, breakdownSvc, docRepo, suggestClient)

	log.Println("mytime planner started.")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
