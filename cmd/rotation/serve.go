package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/xtding233/hoops-rotation/internal/config"
	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/server"
)

const shutdownGrace = 5 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var httpAddr, grpcAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("http") {
				httpAddr = a.settings.HTTPAddr
			}
			if !cmd.Flags().Changed("grpc") {
				grpcAddr = a.settings.GRPCAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, httpAddr, grpcAddr)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "HTTP listen address (default from config)")
	cmd.Flags().StringVar(&grpcAddr, "grpc", "", "gRPC listen address (default from config)")
	return cmd
}

func (a *app) serve(ctx context.Context, httpAddr, grpcAddr string) error {
	watcher := config.NewWatcher(a.loader.Paths(), 250*time.Millisecond, a.reloadConfig, a.logger)
	if err := watcher.Start(ctx); err != nil {
		a.logger.Warn("config watcher disabled", zap.Error(err))
	}
	defer watcher.Stop()

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           server.NewHTTPHandler(a.planner, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := server.NewGRPCServer(a.planner, a.logger)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("http listening", zap.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		a.logger.Info("grpc listening", zap.String("addr", lis.Addr().String()))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// reloadConfig drops cached config and applies the settings that can change
// while serving (log level). Roster and store changes take effect on restart.
func (a *app) reloadConfig(path string) {
	a.loader.Invalidate()
	_, s, err := a.loader.Resolve(a.team, config.Overrides{})
	if err != nil {
		a.logger.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
		return
	}
	if !a.verbose {
		if err := a.level.UnmarshalText([]byte(s.LogLevel)); err != nil {
			a.logger.Warn("bad log level", zap.String("level", s.LogLevel), zap.Error(err))
			return
		}
	}
	a.logger.Info("config reloaded", zap.String("path", path), zap.String("version", s.Version), zap.String("level", a.level.String()))
}

func (a *app) remoteCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "remote <show|next|prev|toggle <player>|regen|new-game>",
		Short: "Drive a running server over gRPC",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.GRPCAddr
			}
			conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return fmt.Errorf("dial %s: %w", addr, err)
			}
			defer conn.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			return runRemote(ctx, server.NewClient(conn), cmd, args)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "gRPC address of the server (default from config)")
	return cmd
}

func runRemote(ctx context.Context, c *server.Client, cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	var out planner.Outcome
	var err error
	switch args[0] {
	case "show":
		snap, err := c.GetState(ctx)
		if err != nil {
			return err
		}
		printSnapshot(w, snap)
		return nil
	case "next":
		out, err = c.Advance(ctx, 1)
	case "prev":
		out, err = c.Advance(ctx, -1)
	case "toggle":
		if len(args) != 2 {
			return errors.New("toggle needs a player number")
		}
		snap, serr := c.GetState(ctx)
		if serr != nil {
			return serr
		}
		if len(snap.Order) == 0 {
			return errors.New("remote roster is empty")
		}
		pos, perr := parseNumber(args[1], "player", len(snap.Order))
		if perr != nil {
			return perr
		}
		out, err = c.Toggle(ctx, snap.Order[pos])
	case "regen":
		out, err = c.Regenerate(ctx)
	case "new-game":
		out, err = c.NewGame(ctx)
	default:
		return fmt.Errorf("unknown remote action %q", args[0])
	}
	if err != nil {
		return err
	}
	printOutcome(w, out)
	return nil
}
