package main

import (
	"coursehub/config"
	controllers "coursehub/controllers/payment"
	"coursehub/database"
	"coursehub/metrics"
	paymentRoutes "coursehub/routers/paymentRoutes"
	"coursehub/services/enrollment"
	"coursehub/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db := database.ConnectDb()

	sender, err := utils.NewSender(config.AppConfig)
	if err != nil {
		zapLogger.Fatal("mail sender", zap.Error(err))
	}

	authorizer, err := enrollment.NewAuthorizer(config.AppConfig.PaymentMode)
	if err != nil {
		zapLogger.Fatal("payment authorizer", zap.Error(err))
	}

	svc := enrollment.NewService(enrollment.NewGormStore(db), sender, authorizer, zapLogger.Named("enrollment"))

	scheduler, err := utils.InitializeEmailRetryScheduler(config.AppConfig.EmailRetryCron, &utils.EmailRetrier{
		DB:          db,
		Sender:      sender,
		Logger:      zapLogger.Named("email-retry"),
		MaxAttempts: config.AppConfig.EmailMaxAttempts,
	})
	if err != nil {
		zapLogger.Fatal("email retry scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	paymentRoutes.SetupPaymentRoutes(app, controllers.NewHandler(svc))

	zapLogger.Info("server starting", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
