package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"schoolhealth/config"
	"schoolhealth/domain"
	"schoolhealth/middleware"
	"schoolhealth/services/health/delivery"
	"schoolhealth/services/health/repository"
	"schoolhealth/services/health/usecase"
)

var log *logrus.Logger
var wg sync.WaitGroup

const usecaseTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Fatalf("Error loading .env file")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	notifier := buildNotifier()

	authRequired := middleware.AuthRequired(db)

	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	profileRepo := repository.NewHealthProfileRepository(db)
	eventRepo := repository.NewMedicalEventRepository(db)
	medicineRepo := repository.NewMedicineRequestRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)

	authUC := usecase.NewAuthUseCase(authRepo, usecaseTimeout)
	userUC := usecase.NewUserUseCase(userRepo, usecaseTimeout)
	relationUC := usecase.NewRelationUseCase(relationRepo, userRepo, usecaseTimeout)
	profileUC := usecase.NewHealthProfileUseCase(profileRepo, relationRepo, userRepo, usecaseTimeout)
	eventUC := usecase.NewMedicalEventUseCase(eventRepo, relationRepo, userRepo, notifier, usecaseTimeout)
	medicineUC := usecase.NewMedicineRequestUseCase(medicineRepo, relationRepo, usecaseTimeout)
	campaignUC := usecase.NewCampaignUseCase(campaignRepo, relationRepo, userRepo, usecaseTimeout)
	consultationUC := usecase.NewConsultationUseCase(consultationRepo, campaignRepo, relationRepo, usecaseTimeout)

	delivery.NewAuthHandler(app, authUC, authRequired)
	delivery.NewUserHandler(app, userUC, authRequired)
	delivery.NewRelationHandler(app, relationUC, authRequired)
	delivery.NewHealthProfileHandler(app, profileUC, authRequired)
	delivery.NewMedicalEventHandler(app, eventUC, authRequired)
	delivery.NewMedicineRequestHandler(app, medicineUC, authRequired)
	delivery.NewCampaignHandler(app, campaignUC, authRequired)
	delivery.NewConsultationHandler(app, consultationUC, authRequired)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}

// buildNotifier assembles the WhatsApp and email channels. Both are optional:
// a missing channel degrades to the other, and with the notifier disabled the
// notify-parent endpoint still records a failed attempt instead of crashing.
func buildNotifier() domain.Notifier {
	if !config.NotifierEnabled() {
		log.Info("Parent notifier disabled")
		return repository.NewNotifierRepository(nil, nil, "", config.GetSchoolPhone())
	}

	meow, err := config.InitMeow(context.Background())
	if err != nil {
		log.Warnf("WhatsApp client unavailable: %v", err)
		meow = nil
	}

	mailer, sender, err := config.InitMailer()
	if err != nil {
		log.Warnf("Mailer unavailable: %v", err)
		mailer = nil
	}

	return repository.NewNotifierRepository(meow, mailer, sender, config.GetSchoolPhone())
}
