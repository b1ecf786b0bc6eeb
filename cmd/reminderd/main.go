package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reminder-engine/internal/config"
	"reminder-engine/internal/notify"
	"reminder-engine/internal/repository"
	"reminder-engine/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	reminderRepo := repository.NewReminderRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	var mailer notify.Mailer
	if cfg.SMTP.Host != "" {
		smtp, err := notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		if err != nil {
			log.Fatalf("smtp: %v", err)
		}
		mailer = smtp
	} else {
		log.Println("No SMTP host configured, email delivery disabled.")
	}

	var pusher notify.Pusher
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegramPusher(cfg.Telegram.Token)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		pusher = tg
	}

	deliverySvc := service.NewDeliveryService(reminderRepo, taskRepo, userRepo, notificationRepo, mailer, pusher)
	escalationSvc := service.NewEscalationService(reminderRepo, taskRepo, projectRepo, cfg.Escalation.Days)

	scheduler := service.NewSchedulerService(time.Local)

	if _, err := scheduler.ScheduleInterval(cfg.Delivery.Interval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		res, err := deliverySvc.ProcessBatch(jobCtx, time.Now(), cfg.Delivery.BatchSize)
		if err != nil {
			log.Printf("delivery pass: %v", err)
			return
		}
		if res.Processed > 0 || len(res.Errors) > 0 {
			log.Printf("delivery pass: processed=%d sent=%d failed=%d", res.Processed, res.Sent, res.Failed)
			for _, e := range res.Errors {
				log.Printf("delivery pass: %s", e)
			}
		}
	}); err != nil {
		log.Fatalf("schedule delivery: %v", err)
	}

	if _, err := scheduler.ScheduleInterval(cfg.Escalation.Interval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		created, err := escalationSvc.ScanAndEscalate(jobCtx, time.Now())
		if err != nil {
			log.Printf("escalation pass: %v", err)
			return
		}
		if created > 0 {
			log.Printf("escalation pass: created=%d", created)
		}
	}); err != nil {
		log.Fatalf("schedule escalation: %v", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Reminder engine started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
