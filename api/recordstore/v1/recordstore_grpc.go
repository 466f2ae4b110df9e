package recordstorepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "recordstore.v1.RecordStore"

	RecordStore_GetRecord_FullMethodName           = "/recordstore.v1.RecordStore/GetRecord"
	RecordStore_CreateRecord_FullMethodName        = "/recordstore.v1.RecordStore/CreateRecord"
	RecordStore_ListRecords_FullMethodName         = "/recordstore.v1.RecordStore/ListRecords"
	RecordStore_BatchCreateRecords_FullMethodName  = "/recordstore.v1.RecordStore/BatchCreateRecords"
	RecordStore_StreamCreateRecords_FullMethodName = "/recordstore.v1.RecordStore/StreamCreateRecords"
)

// RecordStoreClient is the client API for the recordstore.v1.RecordStore service.
type RecordStoreClient interface {
	// GetRecord returns the record with the given id, or NotFound.
	GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*Record, error)
	// CreateRecord creates a single record and returns it with its assigned id.
	CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error)
	// ListRecords streams every record present at call start, in insertion order.
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (RecordStore_ListRecordsClient, error)
	// BatchCreateRecords consumes a stream of create requests and returns a
	// single response once the client half-closes.
	BatchCreateRecords(ctx context.Context, opts ...grpc.CallOption) (RecordStore_BatchCreateRecordsClient, error)
	// StreamCreateRecords creates a record per inbound request and echoes each
	// created record back on the outbound stream.
	StreamCreateRecords(ctx context.Context, opts ...grpc.CallOption) (RecordStore_StreamCreateRecordsClient, error)
}

type recordStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewRecordStoreClient returns a client for the RecordStore service.
func NewRecordStoreClient(cc grpc.ClientConnInterface) RecordStoreClient {
	return &recordStoreClient{cc}
}

func (c *recordStoreClient) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	out := new(Record)
	if err := c.cc.Invoke(ctx, RecordStore_GetRecord_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordStoreClient) CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	out := new(Record)
	if err := c.cc.Invoke(ctx, RecordStore_CreateRecord_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordStoreClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (RecordStore_ListRecordsClient, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &RecordStore_ServiceDesc.Streams[0], RecordStore_ListRecords_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &recordStoreListRecordsClient{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// RecordStore_ListRecordsClient is the client view of a ListRecords stream.
type RecordStore_ListRecordsClient interface {
	Recv() (*Record, error)
	grpc.ClientStream
}

type recordStoreListRecordsClient struct {
	grpc.ClientStream
}

func (x *recordStoreListRecordsClient) Recv() (*Record, error) {
	m := new(Record)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *recordStoreClient) BatchCreateRecords(ctx context.Context, opts ...grpc.CallOption) (RecordStore_BatchCreateRecordsClient, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &RecordStore_ServiceDesc.Streams[1], RecordStore_BatchCreateRecords_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &recordStoreBatchCreateRecordsClient{ClientStream: stream}, nil
}

// RecordStore_BatchCreateRecordsClient is the client view of a BatchCreateRecords stream.
type RecordStore_BatchCreateRecordsClient interface {
	Send(*CreateRecordRequest) error
	CloseAndRecv() (*BatchCreateRecordsResponse, error)
	grpc.ClientStream
}

type recordStoreBatchCreateRecordsClient struct {
	grpc.ClientStream
}

func (x *recordStoreBatchCreateRecordsClient) Send(m *CreateRecordRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *recordStoreBatchCreateRecordsClient) CloseAndRecv() (*BatchCreateRecordsResponse, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(BatchCreateRecordsResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *recordStoreClient) StreamCreateRecords(ctx context.Context, opts ...grpc.CallOption) (RecordStore_StreamCreateRecordsClient, error) {
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	stream, err := c.cc.NewStream(ctx, &RecordStore_ServiceDesc.Streams[2], RecordStore_StreamCreateRecords_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &recordStoreStreamCreateRecordsClient{ClientStream: stream}, nil
}

// RecordStore_StreamCreateRecordsClient is the client view of a StreamCreateRecords stream.
type RecordStore_StreamCreateRecordsClient interface {
	Send(*CreateRecordRequest) error
	Recv() (*Record, error)
	grpc.ClientStream
}

type recordStoreStreamCreateRecordsClient struct {
	grpc.ClientStream
}

func (x *recordStoreStreamCreateRecordsClient) Send(m *CreateRecordRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *recordStoreStreamCreateRecordsClient) Recv() (*Record, error) {
	m := new(Record)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordStoreServer is the server API for the recordstore.v1.RecordStore service.
type RecordStoreServer interface {
	GetRecord(context.Context, *GetRecordRequest) (*Record, error)
	CreateRecord(context.Context, *CreateRecordRequest) (*Record, error)
	ListRecords(*ListRecordsRequest, RecordStore_ListRecordsServer) error
	BatchCreateRecords(RecordStore_BatchCreateRecordsServer) error
	StreamCreateRecords(RecordStore_StreamCreateRecordsServer) error
}

// UnimplementedRecordStoreServer can be embedded for forward compatibility.
type UnimplementedRecordStoreServer struct{}

func (UnimplementedRecordStoreServer) GetRecord(context.Context, *GetRecordRequest) (*Record, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRecord not implemented")
}
func (UnimplementedRecordStoreServer) CreateRecord(context.Context, *CreateRecordRequest) (*Record, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateRecord not implemented")
}
func (UnimplementedRecordStoreServer) ListRecords(*ListRecordsRequest, RecordStore_ListRecordsServer) error {
	return status.Errorf(codes.Unimplemented, "method ListRecords not implemented")
}
func (UnimplementedRecordStoreServer) BatchCreateRecords(RecordStore_BatchCreateRecordsServer) error {
	return status.Errorf(codes.Unimplemented, "method BatchCreateRecords not implemented")
}
func (UnimplementedRecordStoreServer) StreamCreateRecords(RecordStore_StreamCreateRecordsServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamCreateRecords not implemented")
}

// RegisterRecordStoreServer registers the service implementation onto the gRPC server.
func RegisterRecordStoreServer(s grpc.ServiceRegistrar, srv RecordStoreServer) {
	s.RegisterService(&RecordStore_ServiceDesc, srv)
}

func _RecordStore_GetRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).GetRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RecordStore_GetRecord_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecordStoreServer).GetRecord(ctx, req.(*GetRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordStore_CreateRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordStoreServer).CreateRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RecordStore_CreateRecord_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RecordStoreServer).CreateRecord(ctx, req.(*CreateRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _RecordStore_ListRecords_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ListRecordsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(RecordStoreServer).ListRecords(m, &recordStoreListRecordsServer{ServerStream: stream})
}

// RecordStore_ListRecordsServer is the server view of a ListRecords stream.
type RecordStore_ListRecordsServer interface {
	Send(*Record) error
	grpc.ServerStream
}

type recordStoreListRecordsServer struct {
	grpc.ServerStream
}

func (x *recordStoreListRecordsServer) Send(m *Record) error {
	return x.ServerStream.SendMsg(m)
}

func _RecordStore_BatchCreateRecords_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(RecordStoreServer).BatchCreateRecords(&recordStoreBatchCreateRecordsServer{ServerStream: stream})
}

// RecordStore_BatchCreateRecordsServer is the server view of a BatchCreateRecords stream.
type RecordStore_BatchCreateRecordsServer interface {
	SendAndClose(*BatchCreateRecordsResponse) error
	Recv() (*CreateRecordRequest, error)
	grpc.ServerStream
}

type recordStoreBatchCreateRecordsServer struct {
	grpc.ServerStream
}

func (x *recordStoreBatchCreateRecordsServer) SendAndClose(m *BatchCreateRecordsResponse) error {
	return x.ServerStream.SendMsg(m)
}

func (x *recordStoreBatchCreateRecordsServer) Recv() (*CreateRecordRequest, error) {
	m := new(CreateRecordRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _RecordStore_StreamCreateRecords_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(RecordStoreServer).StreamCreateRecords(&recordStoreStreamCreateRecordsServer{ServerStream: stream})
}

// RecordStore_StreamCreateRecordsServer is the server view of a StreamCreateRecords stream.
type RecordStore_StreamCreateRecordsServer interface {
	Send(*Record) error
	Recv() (*CreateRecordRequest, error)
	grpc.ServerStream
}

type recordStoreStreamCreateRecordsServer struct {
	grpc.ServerStream
}

func (x *recordStoreStreamCreateRecordsServer) Send(m *Record) error {
	return x.ServerStream.SendMsg(m)
}

func (x *recordStoreStreamCreateRecordsServer) Recv() (*CreateRecordRequest, error) {
	m := new(CreateRecordRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordStore_ServiceDesc is the grpc.ServiceDesc for the RecordStore service.
// It is only intended for direct use with grpc.RegisterService.
var RecordStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RecordStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetRecord",
			Handler:    _RecordStore_GetRecord_Handler,
		},
		{
			MethodName: "CreateRecord",
			Handler:    _RecordStore_CreateRecord_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ListRecords",
			Handler:       _RecordStore_ListRecords_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "BatchCreateRecords",
			Handler:       _RecordStore_BatchCreateRecords_Handler,
			ClientStreams: true,
		},
		{
			StreamName:    "StreamCreateRecords",
			Handler:       _RecordStore_StreamCreateRecords_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "recordstore/v1/recordstore.go",
}
