package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"eldercare-assist-be/internal/config"
	"eldercare-assist-be/internal/controller"
	"eldercare-assist-be/internal/handler"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/pkg/mailer"
	"eldercare-assist-be/internal/repository/memory"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/internal/service"
	"eldercare-assist-be/internal/websocket"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/companion/confirm"
	"eldercare-assist-be/pkg/companion/crisis"
	"eldercare-assist-be/pkg/companion/dispatch"
	"eldercare-assist-be/pkg/companion/emotion"
	"eldercare-assist-be/pkg/companion/pipeline"
	"eldercare-assist-be/pkg/speech"

	pktNats "eldercare-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	VoiceController     controller.IVoiceController
	CompanionController controller.ICompanionController
	MoodController      controller.IMoodController
	AlertController     controller.IAlertController
	NoteController      controller.INoteController
	ReminderController  controller.IReminderController
	TimelineController  controller.ITimelineController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	Scheduler       *cron.Cron

	// WebSockets & Notification
	AlertStreamHandler *handler.AlertStreamHandler
	WebSocketHub       *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Conversation Pipeline
	// Speech provider is pluggable; "simulated" is the only built-in.
	var speechProvider speech.Provider
	switch cfg.Companion.SpeechProvider {
	case "simulated":
		speechProvider = speech.NewSimulatedProvider()
		log.Printf("[INFO] Using Speech Provider: SIMULATED")
	default:
		speechProvider = speech.NewSimulatedProvider()
		log.Printf("[WARN] Unknown speech provider %q, falling back to SIMULATED", cfg.Companion.SpeechProvider)
	}

	pipelineLogger := log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)

	classifier := classify.New()
	crisisFilter := crisis.NewFilter()
	arbiter := emotion.NewArbiter(classifier, speechProvider, pipelineLogger)
	machine := confirm.NewMachine(time.Duration(cfg.Companion.ConfirmationTTLSeconds)*time.Second, pipelineLogger)
	cooldowns := dispatch.NewMemoryCooldownStore()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Companion.TimelineTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Companion.TimelineTopic, uowFactory)

	authService := service.NewAuthService(uowFactory)
	alertService := service.NewAlertService(uowFactory, publisherService, natsPub)
	noteService := service.NewNoteService(uowFactory)
	conversationService := service.NewConversationService(uowFactory)
	moodService := service.NewMoodService(uowFactory, publisherService, natsPub)
	timelineService := service.NewTimelineService(uowFactory)

	dispatcher := dispatch.NewDispatcher(cooldowns, alertService, pipelineLogger)
	engine := pipeline.NewEngine(
		classifier,
		crisisFilter,
		arbiter,
		machine,
		dispatcher,
		noteService,
		conversationService,
		pipelineLogger,
	)

	sessionRepo := memory.NewSessionRepository()
	voiceService := service.NewVoiceService(engine, speechProvider, sessionRepo, uowFactory, sysLogger)
	companionService := service.NewCompanionService(engine, crisisFilter, conversationService, sessionRepo, sysLogger)
	reminderService := service.NewReminderService(uowFactory, dispatcher, natsPub, sysLogger)
	reportService := service.NewReportService(uowFactory, emailService, sysLogger)

	// 5. Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, emailService, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	alertStreamHandler := handler.NewAlertStreamHandler(wsHub, wsLogger)

	// 6. Cron Jobs
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Companion.ReminderSweepCron, func() {
		if err := reminderService.SweepOverdue(context.Background()); err != nil {
			sysLogger.Error("cron", "Reminder sweep failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		log.Fatalf("[FATAL] Invalid reminder sweep schedule: %v", err)
	}
	if _, err := scheduler.AddFunc(cfg.Companion.DailyReportCron, func() {
		if err := reportService.SendDailyReports(context.Background()); err != nil {
			sysLogger.Error("cron", "Daily report run failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		log.Fatalf("[FATAL] Invalid daily report schedule: %v", err)
	}

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		VoiceController:     controller.NewVoiceController(voiceService),
		CompanionController: controller.NewCompanionController(companionService),
		MoodController:      controller.NewMoodController(moodService),
		AlertController:     controller.NewAlertController(alertService),
		NoteController:      controller.NewNoteController(noteService),
		ReminderController:  controller.NewReminderController(reminderService),
		TimelineController:  controller.NewTimelineController(timelineService),

		ConsumerService: consumerService,
		Scheduler:       scheduler,

		AlertStreamHandler: alertStreamHandler,
		WebSocketHub:       wsHub,
	}
}
