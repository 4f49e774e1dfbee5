package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"sparklean/config"
	"sparklean/models"
	"sparklean/services/notification"
	"sparklean/services/promo"
	"sparklean/services/tasks"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWorker runs the async worker in background: confirmation emails plus the
// periodic expired-claim sweep.
func InitWorker(notifSvc notification.NotificationService, promoSvc promo.PromoService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(notifSvc))
	mux.HandleFunc(tasks.TypePromoSweep, handlePromoSweep(promoSvc))

	go func() {
		log.Println("[Worker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runPromoSweepScheduler()
}

// runPromoSweepScheduler enqueues the claim sweep every 15 minutes.
func runPromoSweepScheduler() {
	scheduler := asynq.NewScheduler(redisOpts(), nil)
	if _, err := scheduler.Register("@every 15m", tasks.NewPromoSweepTask()); err != nil {
		log.Printf("[Worker] ❌ Failed to register promo sweep: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[Worker] ❌ Promo sweep scheduler stopped: %v", err)
	}
}

// NewEmailEnqueuer returns the closure the booking flow uses to hand a
// confirmation email to the worker.
func NewEmailEnqueuer() func(booking *models.Booking) error {
	client := asynq.NewClient(redisOpts())
	return func(booking *models.Booking) error {
		task, opts, err := tasks.NewConfirmationEmailTask(booking)
		if err != nil {
			return err
		}
		_, err = client.Enqueue(task, opts...)
		return err
	}
}

func handleEmailTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var b models.Booking
		if err := json.Unmarshal(task.Payload(), &b); err != nil {
			log.Printf("[EmailHandler] 🔴 Invalid payload: %v", err)
			return err
		}
		if b.Email == "" {
			return nil
		}

		log.Printf("[EmailHandler] ✉️ Sending confirmation for booking %s to %s", b.Reference, b.Email)
		if err := notifSvc.SendBookingConfirmation(ctx, b.Email, &b); err != nil {
			log.Printf("[EmailHandler] ❌ Failed to send confirmation: %v", err)
			return err
		}
		return nil
	}
}

func handlePromoSweep(promoSvc promo.PromoService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := promoSvc.ExpireLapsed(ctx)
		if err != nil {
			log.Printf("[PromoSweep] ❌ Sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[PromoSweep] ⏰ Expired %d lapsed claims", n)
		}
		return nil
	}
}
