package grpc

import (
	"context"
	"errors"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/service"
	"github.com/Manifold-MEV/friendtech-presale/internal/storage/history"
)

// LedgerServiceInterface is the slice of *service.Service the gRPC
// handlers depend on.
type LedgerServiceInterface interface {
	Submit(ctx context.Context, txJSON []byte) (*service.SubmitResult, error)
	Balance(subject, holder string) (uint64, error)
	TotalShares(subject string) (uint64, error)
	Allowance(subject, owner, spender string) (uint64, error)
	KeyPrice(subject string) (string, error)
	WhitelistCap(subject, account string) (uint64, error)
	Contribution(subject, account string) (uint64, error)
	ContributionLog(subject string) ([]service.ContributionEntry, error)
	Proceeds(subject string) (string, error)
	CustodyBalance(subject string) (uint64, error)
	Transaction(ctx context.Context, hashHex string) (*history.Record, error)
	AccountTransactions(ctx context.Context, account string, limit int) ([]*history.Record, error)
	ServerInfo() service.ServerInfo
}

// Server serves ledger queries over gRPC.
type Server struct {
	mu sync.RWMutex

	grpcServer    *grpc.Server
	ledgerService LedgerServiceInterface
	config        *ServerConfig
	listener      net.Listener
	running       bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLedgerService sets the ledger service for the server.
func WithLedgerService(svc LedgerServiceInterface) ServerOption {
	return func(s *Server) {
		s.ledgerService = svc
	}
}

// WithConfig sets the configuration for the server.
func WithConfig(cfg *ServerConfig) ServerOption {
	return func(s *Server) {
		s.config = cfg
	}
}

// NewServer creates a gRPC server with the given configuration.
func NewServer(cfg *ServerConfig, ledgerSvc LedgerServiceInterface) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
	}

	return &Server{
		grpcServer:    grpc.NewServer(opts...),
		ledgerService: ledgerSvc,
		config:        cfg,
	}, nil
}

// Start begins accepting connections. Blocks until the server stops.
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	return s.grpcServer.Serve(listener)
}

// StartAsync starts serving in a goroutine and returns once the
// listener is bound.
func (s *Server) StartAsync() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	go func() {
		_ = s.grpcServer.Serve(listener)
	}()
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, errors.New("server is already running")
	}
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	s.running = true
	return listener, nil
}

// Stop drains in-flight calls and stops the server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.grpcServer.GracefulStop()
	s.running = false
}

// StopNow stops the server without waiting for in-flight calls.
func (s *Server) StopNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.grpcServer.Stop()
	s.running = false
}

// IsRunning reports whether the server is accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the bound listen address, useful when the config
// requested port 0.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return s.config.Address
	}
	return s.listener.Addr().String()
}
