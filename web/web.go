// Package web provides the HTTP server of the medblog platform: routing,
// middleware and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"medblog/config"
	"medblog/logger"
	"medblog/util/common"
	"medblog/web/controller"
	"medblog/web/entity"
	"medblog/web/job"
	"medblog/web/middleware"
	"medblog/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server is the medblog web server with its controllers, shared services
// and cron scheduler.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth        *controller.AuthController
	posts       *controller.PostController
	feedback    *controller.FeedbackController
	subscribers *controller.SubscriberController
	settings    *controller.SettingController
	media       *controller.MediaController
	admin       *controller.ServerController

	settingService service.SettingService
	mailerService  *service.MailerService
	mediaService   *service.MediaService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		mailerService: service.NewMailerService(),
		mediaService:  service.NewMediaService(),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidator(webDomain))
	}

	engine.Use(middleware.Cors(config.GetAllowedOrigins()))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	s.auth = controller.NewAuthController(engine.Group("/admin"))
	s.posts = controller.NewPostController(engine.Group("/api/posts"), s.mailerService, s.mediaService)
	s.feedback = controller.NewFeedbackController(engine.Group("/api/feedback"))
	s.subscribers = controller.NewSubscriberController(engine.Group("/api/subscribers"), s.mailerService)
	s.settings = controller.NewSettingController(engine.Group("/api/settings"))
	s.media = controller.NewMediaController(engine.Group("/api/media"), s.mediaService)
	s.admin = controller.NewServerController(engine.Group("/api/admin"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Not found"})
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewClearLogsJob())

	if digestEnabled, err := s.settingService.GetDigestEnable(); err == nil && digestEnabled {
		runtime, err := s.settingService.GetDigestCron()
		if err != nil || runtime == "" {
			runtime = "@daily"
		}
		if _, err := s.cron.AddJob(runtime, job.NewDigestJob(s.mailerService)); err != nil {
			logger.Warning("add digest job error:", err)
		}
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	locStr, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(locStr)
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc))
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
