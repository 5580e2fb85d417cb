package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"memo-drafting-be/internal/config"
	"memo-drafting-be/internal/constant"
	"memo-drafting-be/internal/controller"
	"memo-drafting-be/internal/handler"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/pkg/mailer"
	"memo-drafting-be/internal/pkg/serverutils"
	"memo-drafting-be/internal/repository/memory"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/internal/service"
	"memo-drafting-be/internal/websocket"
	"memo-drafting-be/pkg/corpus"
	"memo-drafting-be/pkg/embedding"
	"memo-drafting-be/pkg/llm/factory"
	"memo-drafting-be/pkg/memo/extract"
	"memo-drafting-be/pkg/memo/gap"
	"memo-drafting-be/pkg/memo/synthesis"
	"memo-drafting-be/pkg/memo/template"
	pkgNats "memo-drafting-be/pkg/nats"
	"memo-drafting-be/pkg/retrieval"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	SessionController   controller.ISessionController
	AgreementController controller.IAgreementController
	ChatController      controller.IChatController
	MemoController      controller.IMemoController

	// Background services (exposed for main.go to run)
	EventStreamService service.IEventStreamService

	// WebSockets
	EventHandler *handler.EventHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	serverutils.ConfigureJwt(cfg.App.JwtSecret)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider = embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Memo engine components
	templates, err := template.LoadDir(cfg.Memo.TemplateDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load memo templates: %v", err)
	}

	retriever := retrieval.NewPgVectorRetriever(uowFactory, embeddingProvider)
	synthesizer := synthesis.NewSynthesizer(retriever, llmProvider, synthesis.Config{
		StandardTopK:  cfg.Memo.StandardTopK,
		AgreementTopK: cfg.Memo.AgreementTopK,
		MergedTopN:    cfg.Memo.MergedTopN,
		Timeout:       cfg.Memo.SynthesisTimeout,
	})
	analyzer := gap.NewAnalyzer(gap.Config{
		CompletenessFraction: cfg.Memo.CompletenessFraction,
	})
	extractor := extract.NewExtractor(llmProvider, cfg.Memo.ExtractionTimeout)
	corpusBuilder := corpus.NewBuilder(embeddingProvider)

	// 5. Live session storage
	sessionRepo := memory.NewSessionRepository()

	// 6. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 7. Services
	publisherService := service.NewPublisherService(constant.SessionEventsTopic, pubSub)
	eventStreamService := service.NewEventStreamService(pubSub, constant.SessionEventsTopic, wsHub)

	authService := service.NewAuthService(uowFactory, sessionRepo, cfg.App.JwtSecret, sysLogger)
	sessionService := service.NewSessionService(uowFactory, sessionRepo, templates, natsPub, sysLogger)
	agreementService := service.NewAgreementService(sessionService, uowFactory, corpusBuilder, publisherService, natsPub, sysLogger)
	memoService := service.NewMemoService(
		sessionService,
		uowFactory,
		templates,
		synthesizer,
		analyzer,
		publisherService,
		natsPub,
		emailService,
		sysLogger,
	)
	chatService := service.NewChatService(
		sessionService,
		memoService,
		uowFactory,
		extractor,
		retriever,
		llmProvider,
		cfg.Memo.ChatReplyTimeout,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		SessionController:   controller.NewSessionController(sessionService),
		AgreementController: controller.NewAgreementController(agreementService),
		ChatController:      controller.NewChatController(chatService),
		MemoController:      controller.NewMemoController(memoService),

		EventStreamService: eventStreamService,

		EventHandler: handler.NewEventHandler(wsHub, sysLogger),
		WebSocketHub: wsHub,
	}
}
