package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/config"
	"github.com/rushteam/actireco/recommender"
)

// Server 装配 HTTP 路由与中间件。
type Server struct {
	app     config.App
	rec     *recommender.Recommender
	metrics *Metrics
	engine  *gin.Engine
}

func New(app config.App, rec *recommender.Recommender) *Server {
	if !app.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		app:     app,
		rec:     rec,
		metrics: NewMetrics(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.metrics.Middleware())
	engine.Use(requestLogger())

	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", s.metrics.Handler())
	engine.POST("/sentiment", s.handleSentiment)
	engine.POST("/recommend", s.handleRecommend(false))
	engine.POST("/recommend_with_mood", s.handleRecommend(true))
	engine.POST("/log_interaction", s.handleLogInteraction)

	admin := engine.Group("/admin", s.adminAuth())
	admin.POST("/retrain_cf", s.handleRetrainCF)

	s.engine = engine
	return s
}

// Engine 暴露底层 gin 引擎（测试用）。
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run 启动 HTTP 服务，阻塞直到出错。
func (s *Server) Run() error {
	logrus.WithField("addr", s.app.Addr()).Info("http server listening")
	return s.engine.Run(s.app.Addr())
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})
		if status >= 500 {
			entry.Error("request")
		} else {
			entry.Info("request")
		}
	}
}
