// File: njeyali/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"njeyali/config"
	"njeyali/cron"
	"njeyali/database"
	bookingRepo "njeyali/database/repository/booking"
	"njeyali/handlers"
	"njeyali/middleware"
	"njeyali/routes"
	"njeyali/services/booking"
	"njeyali/services/notification"
	"njeyali/services/payment"
	"njeyali/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitPaymentCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create booking indexes: %v", err)
	}
	counters := bookingRepo.NewMongoCounterRepo()

	// notification: handlers enqueue, the mail worker drains the queue.
	mailQueue := notification.NewQueueSender()
	defer mailQueue.Close()
	cron.InitMailWorker(notification.NewMailer())

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:     bookings,
		RefGen:   booking.NewReferenceGenerator(counters, config.AppConfig.ReferencePrefix),
		Notifier: mailQueue,
		Logger:   logger,
	}

	reconciler := payment.NewReconciler(bookingService, logger,
		payment.NewStripeGateway(config.AppConfig.StripeWebhookSecret),
		payment.NewPaystackGateway(config.AppConfig.PaystackSecretKey),
	)
	intentService := &payment.IntentService{
		Bookings: bookingService,
		Paystack: payment.NewPaystackClient(config.AppConfig.PaystackSecretKey, config.AppConfig.PaystackBaseURL),
		Cache:    utils.GetPaymentCacheClient(),
		Logger:   logger,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(intentService, reconciler, bookingService, logger)

	routes.SetupRoutes(router, bookingHandler, paymentHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
}
