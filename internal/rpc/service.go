// Package rpc exposes a pager.Manager over a hand-rolled gRPC service —
// manual grpc.ServiceDesc registration and a JSON wire codec, no protoc
// step required. It is a thin remote-control surface over the manager:
// it drives the five public pager operations plus a read-only Stats
// snapshot, and nothing else.
package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pagevm/pagevm/internal/pager"
)

// jsonCodec is a minimal encoding.Codec implementation so the service can
// be driven without a .proto/protoc toolchain.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Wire request/response shapes.

type CreateProcessRequest struct{ Pid int32 `json:"pid"` }
type CreateProcessResponse struct{}

type ExtendRequest struct{ Pid int32 `json:"pid"` }
type ExtendResponse struct {
	Vaddr uint64 `json:"vaddr"`
}

type FaultRequest struct {
	Pid  int32  `json:"pid"`
	Addr uint64 `json:"addr"`
}
type FaultResponse struct{}

type SyslogRequest struct {
	Pid  int32  `json:"pid"`
	Addr uint64 `json:"addr"`
	Len  int32  `json:"len"`
}
type SyslogResponse struct {
	// Hex is the %02x-per-byte encoding of the bytes read, with no
	// separators — the caller appends a single trailing newline when
	// printing a non-empty result.
	Hex string `json:"hex"`
}

type DestroyProcessRequest struct{ Pid int32 `json:"pid"` }
type DestroyProcessResponse struct{}

type StatsRequest struct{}
type StatsResponse struct {
	FramesInUse int32 `json:"frames_in_use"`
	FramesTotal int32 `json:"frames_total"`
	BlocksInUse int32 `json:"blocks_in_use"`
	BlocksTotal int32 `json:"blocks_total"`
	Processes   int32 `json:"processes"`
	Evictions   int64 `json:"evictions"`
	WriteBacks  int64 `json:"write_backs"`
}

// PagerServer is the RPC-facing surface over a pager.Manager.
type PagerServer interface {
	CreateProcess(context.Context, *CreateProcessRequest) (*CreateProcessResponse, error)
	Extend(context.Context, *ExtendRequest) (*ExtendResponse, error)
	Fault(context.Context, *FaultRequest) (*FaultResponse, error)
	Syslog(context.Context, *SyslogRequest) (*SyslogResponse, error)
	DestroyProcess(context.Context, *DestroyProcessRequest) (*DestroyProcessResponse, error)
	Stats(context.Context, *StatsRequest) (*StatsResponse, error)
}

// RegisterPagerServer wires srv into s using a manually built ServiceDesc —
// no generated stub, since there is no .proto source to generate one from.
func RegisterPagerServer(s *grpc.Server, srv PagerServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: "pagevm.Pager",
		HandlerType: (*PagerServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "CreateProcess", Handler: _Pager_CreateProcess_Handler},
			{MethodName: "Extend", Handler: _Pager_Extend_Handler},
			{MethodName: "Fault", Handler: _Pager_Fault_Handler},
			{MethodName: "Syslog", Handler: _Pager_Syslog_Handler},
			{MethodName: "DestroyProcess", Handler: _Pager_DestroyProcess_Handler},
			{MethodName: "Stats", Handler: _Pager_Stats_Handler},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "pagevm",
	}, srv)
}

func _Pager_CreateProcess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateProcessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).CreateProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/CreateProcess"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).CreateProcess(ctx, req.(*CreateProcessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Pager_Extend_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExtendRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).Extend(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/Extend"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).Extend(ctx, req.(*ExtendRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Pager_Fault_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FaultRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).Fault(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/Fault"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).Fault(ctx, req.(*FaultRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Pager_Syslog_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SyslogRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).Syslog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/Syslog"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).Syslog(ctx, req.(*SyslogRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Pager_DestroyProcess_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DestroyProcessRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).DestroyProcess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/DestroyProcess"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).DestroyProcess(ctx, req.(*DestroyProcessRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Pager_Stats_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PagerServer).Stats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pagevm.Pager/Stats"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PagerServer).Stats(ctx, req.(*StatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Service adapts a *pager.Manager to PagerServer. It holds no state of
// its own — the manager itself is the only thing that actually locks.
type Service struct {
	mgr *pager.Manager
}

// NewService wraps mgr for RPC exposure.
func NewService(mgr *pager.Manager) *Service { return &Service{mgr: mgr} }

func (s *Service) CreateProcess(_ context.Context, req *CreateProcessRequest) (*CreateProcessResponse, error) {
	if err := s.mgr.CreateProcess(int(req.Pid)); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &CreateProcessResponse{}, nil
}

func (s *Service) Extend(_ context.Context, req *ExtendRequest) (*ExtendResponse, error) {
	vaddr, err := s.mgr.Extend(int(req.Pid))
	if err != nil {
		return nil, toStatus(err)
	}
	return &ExtendResponse{Vaddr: uint64(vaddr)}, nil
}

func (s *Service) Fault(_ context.Context, req *FaultRequest) (*FaultResponse, error) {
	s.mgr.Fault(int(req.Pid), uintptr(req.Addr))
	return &FaultResponse{}, nil
}

func (s *Service) Syslog(_ context.Context, req *SyslogRequest) (*SyslogResponse, error) {
	buf, err := s.mgr.Syslog(int(req.Pid), uintptr(req.Addr), int(req.Len))
	if err != nil {
		return nil, toStatus(err)
	}
	return &SyslogResponse{Hex: hex.EncodeToString(buf)}, nil
}

func (s *Service) DestroyProcess(_ context.Context, req *DestroyProcessRequest) (*DestroyProcessResponse, error) {
	s.mgr.DestroyProcess(int(req.Pid))
	return &DestroyProcessResponse{}, nil
}

func (s *Service) Stats(_ context.Context, _ *StatsRequest) (*StatsResponse, error) {
	st := s.mgr.Stats()
	return &StatsResponse{
		FramesInUse: int32(st.FramesInUse),
		FramesTotal: int32(st.FramesTotal),
		BlocksInUse: int32(st.BlocksInUse),
		BlocksTotal: int32(st.BlocksTotal),
		Processes:   int32(st.Processes),
		Evictions:   st.Evictions,
		WriteBacks:  st.WriteBacks,
	}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, pager.ErrOutOfSpace):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, pager.ErrInvalidArgument), errors.Is(err, pager.ErrUnknownProcess):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
