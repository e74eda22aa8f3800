package bootstrap

import (
	"context"
	"log"

	"homestay-be/internal/config"
	"homestay-be/internal/controller"
	"homestay-be/internal/handler"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/pkg/mailer"
	"homestay-be/internal/repository/implementation"
	"homestay-be/internal/repository/memory"
	"homestay-be/internal/repository/unitofwork"
	"homestay-be/internal/scheduler"
	"homestay-be/internal/service"
	"homestay-be/internal/websocket"
	"homestay-be/pkg/admin/dashboard"
	adminEvents "homestay-be/pkg/admin/events"
	"homestay-be/pkg/admin/refund"
	"homestay-be/pkg/payment"

	pktNats "homestay-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// mailTopic is the watermill channel between the services that want an
// email sent and the consumer that talks to SMTP.
const mailTopic = "SEND_BOOKING_EMAIL"

type Container struct {
	// Controllers
	AuthController          controller.IAuthController
	AccommodationController controller.IAccommodationController
	BookingController       controller.IBookingController
	PaymentController       controller.IPaymentController
	RefundController        controller.IRefundController
	TestimonialController   controller.ITestimonialController
	AdminController         controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	Sweeper         *scheduler.Sweeper

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
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

	// 2.5 Infrastructure
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
	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Payment Gateway
	gateway := payment.NewRazorpayGateway(
		cfg.Razorpay.KeyId,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
	)

	// Checkout cache keeps the pending order -> booking mapping until
	// the webhook lands or the TTL expires.
	checkoutCache := memory.NewCheckoutCache(cfg.Booking.CacheTTL)

	// 3. Services
	mailPublisher := service.NewMailPublisher(mailTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		mailTopic,
		uowFactory,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, cfg.JWT)
	accommodationService := service.NewAccommodationService(uowFactory)
	bookingService := service.NewBookingService(
		uowFactory,
		gateway,
		checkoutCache,
		natsPub,
		cfg.Booking,
		cfg.Razorpay.KeyId,
		sysLogger,
	)
	paymentService := service.NewPaymentService(
		uowFactory,
		gateway,
		checkoutCache,
		natsPub,
		mailPublisher,
		sysLogger,
	)
	refundService := service.NewRefundService(uowFactory)
	testimonialService := service.NewTestimonialService(uowFactory)

	// Admin Domain Components
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	refundProcessor := refund.NewProcessor(sysLogger, adminEventPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	adminService := service.NewAdminService(
		uowFactory,
		refundProcessor,
		dashboardAggregator,
		adminEventPublisher,
		mailPublisher,
		sysLogger,
	)

	// Nightly sweep
	sweeper := scheduler.NewSweeper(uowFactory, natsPub, sysLogger)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:          controller.NewAuthController(authService),
		AccommodationController: controller.NewAccommodationController(accommodationService),
		BookingController:       controller.NewBookingController(bookingService, paymentService),
		PaymentController:       controller.NewPaymentController(paymentService),
		RefundController:        controller.NewRefundController(refundService),
		TestimonialController:   controller.NewTestimonialController(testimonialService),
		AdminController:         controller.NewAdminController(adminService, testimonialService),

		ConsumerService: consumerService,
		Sweeper:         sweeper,
	}
}
