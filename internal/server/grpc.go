package server

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-form-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
)

const healthCheckInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	address         string
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer()
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  s,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	l, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}
	g.gRPCNetListener = l
	return nil
}

func (g *grpcServer) run() error {
	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("launching gRPC server")
	return g.server.Serve(g.gRPCNetListener)
}

// watchHealth keeps the health service in sync with storage reachability.
func (g *grpcServer) watchHealth(ctx context.Context) {
	g.handler.WatchHealth(ctx, healthCheckInterval)
}

func (g *grpcServer) shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.server.GracefulStop()
}
