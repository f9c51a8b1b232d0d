// Package records は records.v1 の gRPC サービス定義です。
// メッセージはすべて google.protobuf.Struct で表現します。
package records

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	AgencyServiceName     = "records.v1.AgencyService"
	WorkerServiceName     = "records.v1.WorkerService"
	EmploymentServiceName = "records.v1.EmploymentService"

	metadataFile = "records/v1/records.proto"
)

// AgencyServer は records.v1.AgencyService のサーバー実装です。
type AgencyServer interface {
	CreateAgency(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetAgency(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAgencies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAgency(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAgency(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// WorkerServer は records.v1.WorkerService のサーバー実装です。
type WorkerServer interface {
	CreateWorker(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWorker(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListWorkers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateWorker(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteWorker(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmploymentStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReviewProbation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmPermanent(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// EmploymentServer は records.v1.EmploymentService のサーバー実装です。
type EmploymentServer interface {
	Compute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FormatDuration(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AgencyServiceDesc は records.v1.AgencyService の grpc.ServiceDesc です。
var AgencyServiceDesc = grpc.ServiceDesc{
	ServiceName: AgencyServiceName,
	HandlerType: (*AgencyServer)(nil),
	Methods: []grpc.MethodDesc{
		method(AgencyServiceName, "CreateAgency", AgencyServer.CreateAgency),
		method(AgencyServiceName, "GetAgency", AgencyServer.GetAgency),
		method(AgencyServiceName, "ListAgencies", AgencyServer.ListAgencies),
		method(AgencyServiceName, "UpdateAgency", AgencyServer.UpdateAgency),
		method(AgencyServiceName, "DeleteAgency", AgencyServer.DeleteAgency),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// WorkerServiceDesc は records.v1.WorkerService の grpc.ServiceDesc です。
var WorkerServiceDesc = grpc.ServiceDesc{
	ServiceName: WorkerServiceName,
	HandlerType: (*WorkerServer)(nil),
	Methods: []grpc.MethodDesc{
		method(WorkerServiceName, "CreateWorker", WorkerServer.CreateWorker),
		method(WorkerServiceName, "GetWorker", WorkerServer.GetWorker),
		method(WorkerServiceName, "ListWorkers", WorkerServer.ListWorkers),
		method(WorkerServiceName, "UpdateWorker", WorkerServer.UpdateWorker),
		method(WorkerServiceName, "DeleteWorker", WorkerServer.DeleteWorker),
		method(WorkerServiceName, "GetEmploymentStatus", WorkerServer.GetEmploymentStatus),
		method(WorkerServiceName, "ReviewProbation", WorkerServer.ReviewProbation),
		method(WorkerServiceName, "ConfirmPermanent", WorkerServer.ConfirmPermanent),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

// EmploymentServiceDesc は records.v1.EmploymentService の grpc.ServiceDesc です。
var EmploymentServiceDesc = grpc.ServiceDesc{
	ServiceName: EmploymentServiceName,
	HandlerType: (*EmploymentServer)(nil),
	Methods: []grpc.MethodDesc{
		method(EmploymentServiceName, "Compute", EmploymentServer.Compute),
		method(EmploymentServiceName, "FormatDuration", EmploymentServer.FormatDuration),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

func RegisterAgencyServer(s grpc.ServiceRegistrar, srv AgencyServer) {
	s.RegisterService(&AgencyServiceDesc, srv)
}

func RegisterWorkerServer(s grpc.ServiceRegistrar, srv WorkerServer) {
	s.RegisterService(&WorkerServiceDesc, srv)
}

func RegisterEmploymentServer(s grpc.ServiceRegistrar, srv EmploymentServer) {
	s.RegisterService(&EmploymentServiceDesc, srv)
}

// FullMethod は "/<service>/<method>" 形式のメソッド名を返します。
func FullMethod(service, name string) string {
	return "/" + service + "/" + name
}

// Invoke はクライアント側から単項 RPC を呼び出します。
func Invoke(ctx context.Context, cc grpc.ClientConnInterface, service, name string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, FullMethod(service, name), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func method[S any](service, name string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := FullMethod(service, name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
