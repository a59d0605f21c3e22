package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskhive/internal/authz"
	"taskhive/internal/config"
	"taskhive/internal/handler"
	"taskhive/internal/middleware"
	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/service/wikirev"
	"taskhive/internal/storage"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	logger := cfg.Logger()

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	logger.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("connected to database")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	blobs, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	r := gin.Default()

	gate := authz.AllowAll{}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	recurringRepo := repository.NewRecurringTaskRepository(db)
	wikiRepo := repository.NewWikiRepository(db, wikirev.NewService())
	formRepo := repository.NewFormRepository(db)
	fieldRepo := repository.NewCustomFieldRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)
	deliveryRepo := repository.NewWebhookDeliveryRepository(db)
	timeLogRepo := repository.NewTimeLogRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db, blobs, logger)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceRepo)
	projectHandler := handler.NewProjectHandler(projectRepo)
	statusHandler := handler.NewStatusHandler(statusRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo)
	milestoneHandler := handler.NewMilestoneHandler(milestoneRepo)
	recurringHandler := handler.NewRecurringTaskHandler(recurringRepo, taskRepo)
	wikiHandler := handler.NewWikiHandler(wikiRepo)
	formHandler := handler.NewFormHandler(formRepo)
	fieldHandler := handler.NewCustomFieldHandler(fieldRepo, gate)
	webhookHandler := handler.NewWebhookHandler(webhookRepo, deliveryRepo, gate)
	timeLogHandler := handler.NewTimeLogHandler(timeLogRepo, taskRepo)
	conversationHandler := handler.NewConversationHandler(conversationRepo, messageRepo)
	attachmentHandler := handler.NewAttachmentHandler(attachmentRepo, blobs)
	settingHandler := handler.NewSettingHandler(settingRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Workspace routes
		authorized.POST("/workspaces", workspaceHandler.Create)
		authorized.GET("/workspaces", workspaceHandler.GetAll)
		authorized.GET("/workspaces/:id", workspaceHandler.GetByID)
		authorized.PUT("/workspaces/:id", workspaceHandler.Update)

		// Project routes
		authorized.GET("/projects", projectHandler.List)
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.POST("/projects/:id/members", projectHandler.AddMember)
		authorized.DELETE("/projects/:id/members/:user_id", projectHandler.RemoveMember)

		// Status and pipeline routes
		authorized.GET("/statuses", statusHandler.List)
		authorized.POST("/statuses", statusHandler.Create)
		authorized.PUT("/statuses/:id", statusHandler.Update)
		authorized.DELETE("/statuses/:id", statusHandler.Delete)
		authorized.GET("/pipelines", statusHandler.ListPipelines)
		authorized.POST("/pipelines", statusHandler.CreatePipeline)
		authorized.GET("/pipelines/:id/statuses", statusHandler.GetPipelineStatuses)
		authorized.POST("/pipelines/:id/reorder", statusHandler.ReorderPipeline)
		authorized.DELETE("/pipelines/:id", statusHandler.DeletePipeline)

		// Task routes
		authorized.GET("/tasks", taskHandler.List)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.GET("/tasks/:id/subtasks", taskHandler.GetSubtasks)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)

		// Milestone routes
		authorized.GET("/milestones", milestoneHandler.List)
		authorized.POST("/milestones", milestoneHandler.Create)
		authorized.GET("/milestones/:id", milestoneHandler.GetByID)
		authorized.PUT("/milestones/:id", milestoneHandler.Update)
		authorized.DELETE("/milestones/:id", milestoneHandler.Delete)

		// Recurring schedule routes
		authorized.GET("/recurring-tasks", recurringHandler.List)
		authorized.GET("/recurring-tasks/due", recurringHandler.GetDue)
		authorized.POST("/recurring-tasks", recurringHandler.Create)
		authorized.GET("/recurring-tasks/:id", recurringHandler.GetByID)
		authorized.PUT("/recurring-tasks/:id", recurringHandler.Update)
		authorized.DELETE("/recurring-tasks/:id", recurringHandler.Delete)

		// Wiki routes
		authorized.GET("/wikis", wikiHandler.List)
		authorized.POST("/wikis", wikiHandler.Create)
		authorized.GET("/wikis/:id", wikiHandler.GetByID)
		authorized.PUT("/wikis/:id", wikiHandler.Update)
		authorized.DELETE("/wikis/:id", wikiHandler.Delete)
		authorized.GET("/wikis/:id/revisions", wikiHandler.GetRevisions)

		// Form routes
		authorized.GET("/forms", formHandler.List)
		authorized.POST("/forms", formHandler.Create)
		authorized.GET("/forms/:id", formHandler.GetByID)
		authorized.PUT("/forms/:id", formHandler.Update)
		authorized.DELETE("/forms/:id", formHandler.Delete)
		authorized.POST("/forms/:id/responses", formHandler.SubmitResponse)
		authorized.GET("/forms/:id/responses", formHandler.ListResponses)
		authorized.PUT("/form-responses/:id", formHandler.UpdateResponse)

		// Custom field routes
		authorized.GET("/custom-fields", fieldHandler.List)
		authorized.POST("/custom-fields", fieldHandler.Create)
		authorized.PUT("/custom-fields/:id", fieldHandler.Update)
		authorized.DELETE("/custom-fields/:id", fieldHandler.Delete)
		authorized.POST("/custom-field-values", fieldHandler.SetValue)
		authorized.GET("/custom-field-values/:entity_type/:entity_id", fieldHandler.GetValues)
		authorized.DELETE("/custom-field-values/:id", fieldHandler.DeleteValue)

		// Webhook routes
		authorized.GET("/webhooks", webhookHandler.List)
		authorized.POST("/webhooks", webhookHandler.Create)
		authorized.GET("/webhooks/:id", webhookHandler.GetByID)
		authorized.PUT("/webhooks/:id", webhookHandler.Update)
		authorized.DELETE("/webhooks/:id", webhookHandler.Delete)
		authorized.GET("/webhooks/:id/deliveries", webhookHandler.ListDeliveries)
		authorized.GET("/webhook-deliveries/retryable", webhookHandler.ListRetryable)

		// Time log routes
		authorized.GET("/time-logs", timeLogHandler.List)
		authorized.POST("/time-logs", timeLogHandler.Create)
		authorized.GET("/time-logs/running", timeLogHandler.GetRunning)
		authorized.POST("/time-logs/stop", timeLogHandler.Stop)
		authorized.GET("/time-logs/:id", timeLogHandler.GetByID)
		authorized.PUT("/time-logs/:id", timeLogHandler.Update)
		authorized.DELETE("/time-logs/:id", timeLogHandler.Delete)

		// Conversation routes
		authorized.GET("/conversations", conversationHandler.List)
		authorized.POST("/conversations", conversationHandler.Create)
		authorized.POST("/conversations/direct", conversationHandler.Direct)
		authorized.GET("/conversations/:id", conversationHandler.GetByID)
		authorized.POST("/conversations/:id/users", conversationHandler.AddUsers)
		authorized.DELETE("/conversations/:id/users", conversationHandler.RemoveUsers)
		authorized.POST("/conversations/:id/read", conversationHandler.MarkRead)
		authorized.GET("/conversations/:id/messages", conversationHandler.ListMessages)
		authorized.POST("/conversations/:id/messages", conversationHandler.SendMessage)

		// Attachment routes
		authorized.GET("/attachments", attachmentHandler.List)
		authorized.POST("/attachments", attachmentHandler.Upload)
		authorized.GET("/attachments/:id/download", attachmentHandler.Download)
		authorized.DELETE("/attachments/:id", attachmentHandler.Delete)

		// Setting routes
		authorized.GET("/settings/:key", settingHandler.Get)
		authorized.PUT("/settings", settingHandler.Set)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    logger,
	}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.Project{},
		&model.Status{},
		&model.Pipeline{},
		&model.PipelineStatus{},
		&model.Task{},
		&model.TaskDependency{},
		&model.Milestone{},
		&model.RecurringTask{},
		&model.Wiki{},
		&model.WikiRevision{},
		&model.Form{},
		&model.FormField{},
		&model.FormResponse{},
		&model.CustomField{},
		&model.CustomFieldValue{},
		&model.Webhook{},
		&model.WebhookDelivery{},
		&model.TimeLog{},
		&model.Conversation{},
		&model.ConversationUser{},
		&model.Message{},
		&model.Attachment{},
		&model.Setting{},
	)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info().Str("port", s.Config.ServerPort).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal().Err(err).Msg("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	s.Log.Info().Msg("server exited properly")
}
