package api

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/placementcell/placement_service/config"
	"github.com/placementcell/placement_service/infra/queue"
	"github.com/placementcell/placement_service/internal/api/rest/handlers"
	"github.com/placementcell/placement_service/internal/api/rest/middleware"
	"github.com/placementcell/placement_service/internal/domain"
	"github.com/placementcell/placement_service/internal/helper"
	"github.com/placementcell/placement_service/internal/logger"
	"github.com/placementcell/placement_service/internal/repository"
	"github.com/placementcell/placement_service/internal/services"
	"github.com/placementcell/placement_service/internal/worker"
	cldpkg "github.com/placementcell/placement_service/pkg/cloudinary"
)

// migrateLockID serialises schema migration when several instances
// start against the same database.
const migrateLockID int64 = 815042023

func StartServer(cfg config.Config) {
	log := logger.Get()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	seedAdmin(db, cfg)

	producer := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)

	cloud, err := cldpkg.New()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot init cloudinary")
	}
	uploader := cldpkg.NewCloudinaryUploader(cloud)

	auth := helper.SetupAuth(cfg.AccessSecret)

	studentRepo := repository.NewStudentRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(2)
	pool.Start(ctx)

	notificationSvc := services.NewNotificationService(notificationRepo, producer, pool, cfg.AdminEmail, cfg.MailDomain)
	studentSvc := services.NewStudentService(studentRepo, activityRepo, auth)
	placementSvc := services.NewPlacementService(placementRepo, studentRepo, activityRepo, notificationSvc)
	companySvc := services.NewCompanyService(companyRepo, activityRepo, cfg.LogoDir)
	reportSvc := services.NewReportService(studentRepo, placementRepo, companyRepo)

	// In-process mail worker: consumes the notification topic and sends
	// email so API requests never wait on SMTP.
	if cfg.KafkaBroker != "" {
		mailSvc := services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName)
		consumer := queue.NewKafkaConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaUsername, cfg.KafkaPassword, handlers.NewMailHandler(mailSvc))
		go func() {
			defer consumer.Close()
			consumer.Listen(ctx)
		}()
	}

	runStartupTasks(companySvc, studentSvc)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	authMw := middleware.AuthMiddleware(auth)
	adminMw := middleware.AdminOnly(studentSvc)

	rest := app.Group("/api")
	handlers.NewStudentHandler(studentSvc).SetupRoutes(rest, authMw, adminMw)
	handlers.NewPlacementHandler(placementSvc).SetupRoutes(rest, authMw, adminMw)
	handlers.NewNotificationHandler(notificationSvc).SetupRoutes(rest, authMw)
	handlers.NewReportHandler(reportSvc).SetupRoutes(rest, authMw, adminMw)
	handlers.NewCompanyHandler(companySvc).SetupRoutes(rest, authMw, adminMw)
	handlers.NewUploadHandler(uploader, studentSvc).SetupRoutes(rest, authMw)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.ServerPort); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}

	cancel()
	pool.Stop()
	if err := producer.Close(); err != nil {
		log.Error().Err(err).Msg("closing producer")
	}
}

func migrate(db *gorm.DB) error {
	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		return err
	}
	defer db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID)

	return db.AutoMigrate(
		&domain.Student{},
		&domain.Placement{},
		&domain.Company{},
		&domain.Notification{},
		&domain.ActivityLog{},
	)
}

func seedAdmin(db *gorm.DB, cfg config.Config) {
	log := logger.Get()

	if cfg.AdminID == "" || cfg.AdminPassword == "" {
		return
	}
	adminID := repository.CanonicalStudentID(cfg.AdminID)

	var existing domain.Student
	err := db.Where("student_id = ?", adminID).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Error().Err(err).Msg("admin seed lookup failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("cannot hash admin password")
		return
	}

	admin := domain.Student{
		StudentID:          adminID,
		Name:               "Placement Cell Admin",
		PasswordHash:       string(hash),
		Role:               domain.RoleAdmin,
		VerificationStatus: domain.VerifyVerified,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("cannot seed admin account")
		return
	}
	log.Info().Str("student_id", adminID).Msg("seeded admin account")
}

// runStartupTasks reconciles persisted state with the environment:
// logo assets on disk, duplicate company rows, students whose photo
// went missing. Failures are logged and do not block startup.
func runStartupTasks(companySvc services.CompanyService, studentSvc services.StudentService) {
	log := logger.Get()

	if err := companySvc.SyncLogoAssets(); err != nil {
		log.Error().Err(err).Msg("logo asset sync failed")
	}
	if err := companySvc.MergeDuplicates(); err != nil {
		log.Error().Err(err).Msg("company merge failed")
	}
	if err := studentSvc.SweepPhotoVerification(); err != nil {
		log.Error().Err(err).Msg("photo verification sweep failed")
	}
}
