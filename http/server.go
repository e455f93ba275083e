// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxBodyBytes bounds form and JSON submissions.
const maxBodyBytes = 64 << 10

// Server HTTP服务器
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port              int
	Timeout           time.Duration
	AllowedOrigins    []string
	RequestsPerMinute int
	MaxClients        int
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:              8080,
		Timeout:           30 * time.Second,
		AllowedOrigins:    []string{"*"},
		RequestsPerMinute: 120,
		MaxClients:        1024,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, handler *Handler, logger *zap.Logger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("handler is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	rateLimit, err := RateLimitMiddleware(config.RequestsPerMinute, config.MaxClients)
	if err != nil {
		return nil, err
	}

	chain := Chain(
		RecoveryMiddleware(logger),            // 1. 恢复中间件（最先执行，捕获panic）
		LoggerMiddleware(logger),              // 2. 日志中间件
		SecurityHeadersMiddleware,             // 3. 安全头中间件
		CORSMiddleware(config.AllowedOrigins), // 4. CORS中间件
		rateLimit,                             // 5. 限流中间件
		RequestSizeMiddleware(maxBodyBytes),   // 6. 请求大小限制
		TimeoutMiddleware(config.Timeout),     // 7. 超时中间件
	)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      chain(mux),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout + 5*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}, nil
}

// Handler 返回包装后的处理器
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// Addr 返回服务器地址
func (s *Server) Addr() string {
	return s.server.Addr
}
