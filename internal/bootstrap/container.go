package bootstrap

import (
	"log"
	"os"
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/config"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/controller"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/pkg/logger"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/implementation"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/memory"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/service"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/catalog"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/intent"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/resolver"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/response"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/summary"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/dedupe"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm/factory"

	pktNats "github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Components
	// Detector and responder share one provider; the model is picked per
	// call through options, which keeps a single HTTP client around.
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.DetectorModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (detector=%s responder=%s)",
		cfg.Ai.LLMProvider, cfg.Ai.DetectorModel, cfg.Ai.ResponderModel)

	llmLogger := service.InitLLMLogger()

	storeInfo := ""
	if raw, err := os.ReadFile(cfg.Assistant.StoreInfoPath); err != nil {
		log.Printf("[WARN] Store info file %s not readable: %v", cfg.Assistant.StoreInfoPath, err)
	} else {
		storeInfo = string(raw)
	}

	// 4. Infrastructure
	// NATS down at boot degrades instead of refusing to serve: finalize
	// attempts fail, the cart survives and the customer is asked to
	// confirm again once the bus is back.
	var orderPublisher service.OrderPublisher
	if natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Order submission degraded", err)
		orderPublisher = offlineOrderPublisher{}
	} else {
		orderPublisher = natsPub
	}

	deduper, err := dedupe.New(cfg.App.RedisURL, 24*time.Hour)
	if err != nil {
		log.Printf("[WARN] Failed to initialize Redis deduper: %v. Duplicate deliveries will be answered twice", err)
	}

	// 5. Repositories
	sessionTTL := time.Duration(cfg.Assistant.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionRepository(sessionTTL, cfg.Assistant.SummaryWindow)
	cartRepo := memory.NewCartRepository(sessionTTL)
	productRepo := implementation.NewProductRepository(db)
	logRepo := implementation.NewConversationLogRepository(db)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Assistant.TurnLogTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Assistant.TurnLogTopic,
		logRepo,
	)

	productCatalog := catalog.NewCatalog(productRepo, llmLogger)
	assistantService := service.NewAssistantService(
		sessionRepo,
		cartRepo,
		logRepo,
		intent.NewDetector(llmProvider, cfg.Ai.DetectorModel, llmLogger),
		resolver.NewResolver(productCatalog, llmProvider, cfg.Ai.DetectorModel, llmLogger),
		response.NewSynthesizer(llmProvider, cfg.Ai.ResponderModel, storeInfo, llmLogger),
		summary.NewSummarizer(llmProvider, cfg.Ai.DetectorModel, llmLogger),
		publisherService,
		orderPublisher,
		cfg.Assistant.ConfidenceThreshold,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		WebhookController: controller.NewWebhookController(assistantService, deduper),
		ConsumerService:   consumerService,
	}
}
