package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/rotation"
	"github.com/xtding233/hoops-rotation/internal/store"
)

// ServiceName is the fully qualified gRPC service name. Requests and
// responses are google.protobuf.Struct values carrying the same JSON the
// HTTP API speaks.
const ServiceName = "rotation.v1.Planner"

// PlannerServer is the server API for rotation.v1.Planner.
type PlannerServer interface {
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Advance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Toggle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Regenerate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	NewGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type plannerCall func(PlannerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call plannerCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlannerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PlannerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetState", Handler: unaryHandler("GetState", PlannerServer.GetState)},
		{MethodName: "Advance", Handler: unaryHandler("Advance", PlannerServer.Advance)},
		{MethodName: "Toggle", Handler: unaryHandler("Toggle", PlannerServer.Toggle)},
		{MethodName: "Regenerate", Handler: unaryHandler("Regenerate", PlannerServer.Regenerate)},
		{MethodName: "NewGame", Handler: unaryHandler("NewGame", PlannerServer.NewGame)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterPlannerServer attaches srv to s.
func RegisterPlannerServer(s grpc.ServiceRegistrar, srv PlannerServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

type grpcPlanner struct {
	planner *planner.Planner
}

func (g *grpcPlanner) GetState(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(g.planner.Snapshot())
}

func (g *grpcPlanner) Advance(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	delta := 1
	if v, ok := in.GetFields()["delta"]; ok {
		n, err := intValue("delta", v)
		if err != nil {
			return nil, err
		}
		delta = n
	}
	return outcome(g.planner.Advance(ctx, delta))
}

func (g *grpcPlanner) Toggle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	v, ok := in.GetFields()["player"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing field player")
	}
	slot, err := intValue("player", v)
	if err != nil {
		return nil, err
	}
	return outcome(g.planner.Toggle(ctx, slot))
}

func (g *grpcPlanner) Regenerate(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return outcome(g.planner.Regenerate(ctx))
}

func (g *grpcPlanner) NewGame(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return outcome(g.planner.NewGame(ctx))
}

func intValue(field string, v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", field)
	}
	return int(n.NumberValue), nil
}

func outcome(out planner.Outcome, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, grpcError(err)
	}
	return toStruct(out)
}

func grpcError(err error) error {
	switch {
	case errors.Is(err, rotation.ErrNotEnoughActive):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, rotation.ErrPlayerRange),
		errors.Is(err, rotation.ErrPeriodRange),
		errors.Is(err, rotation.ErrEmptyRoster),
		errors.Is(err, rotation.ErrInvalidCursor):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// toStruct converts v through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

// FromStruct decodes a response struct into v (a *planner.Snapshot or
// *planner.Outcome).
func FromStruct(s *structpb.Struct, v any) error {
	b, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			logger.Warn("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("grpc call", fields...)
		}
		return resp, err
	}
}

// NewGRPCServer builds a server exposing the planner and the standard health
// service.
func NewGRPCServer(p *planner.Planner, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor(logger))}, opts...)
	s := grpc.NewServer(opts...)
	RegisterPlannerServer(s, &grpcPlanner{planner: p})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s
}

// Client calls rotation.v1.Planner over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, method string, in map[string]any, out any) error {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, resp); err != nil {
		return err
	}
	if err := FromStruct(resp, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) GetState(ctx context.Context) (planner.Snapshot, error) {
	var snap planner.Snapshot
	err := c.call(ctx, "GetState", nil, &snap)
	return snap, err
}

func (c *Client) Advance(ctx context.Context, delta int) (planner.Outcome, error) {
	var out planner.Outcome
	err := c.call(ctx, "Advance", map[string]any{"delta": delta}, &out)
	return out, err
}

func (c *Client) Toggle(ctx context.Context, slot int) (planner.Outcome, error) {
	var out planner.Outcome
	err := c.call(ctx, "Toggle", map[string]any{"player": slot}, &out)
	return out, err
}

func (c *Client) Regenerate(ctx context.Context) (planner.Outcome, error) {
	var out planner.Outcome
	err := c.call(ctx, "Regenerate", nil, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context) (planner.Outcome, error) {
	var out planner.Outcome
	err := c.call(ctx, "NewGame", nil, &out)
	return out, err
}
