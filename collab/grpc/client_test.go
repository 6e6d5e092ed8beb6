package dskgrpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/go-dsk/dsk"
)

type echoServer struct{}

func (echoServer) Unary(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return &wrapperspb.StringValue{Value: req.GetValue()}, nil
}

func (echoServer) ServerStream(req *wrapperspb.StringValue, stream grpc.ServerStream) error {
	for i := 0; i < 3; i++ {
		if err := stream.SendMsg(&wrapperspb.StringValue{Value: req.GetValue()}); err != nil {
			return err
		}
	}
	return nil
}

type echoService interface {
	Unary(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	ServerStream(*wrapperspb.StringValue, grpc.ServerStream) error
}

func unaryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	return srv.(echoService).Unary(ctx, in)
}

func serverStreamHandler(srv any, stream grpc.ServerStream) error {
	in := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(echoService).ServerStream(in, stream)
}

var echoServiceDesc = grpc.ServiceDesc{
	ServiceName: "dsktest.Echo",
	HandlerType: (*echoService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Unary", Handler: unaryHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "ServerStream", Handler: serverStreamHandler, ServerStreams: true},
	},
	Metadata: "dsktest.proto",
}

func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	srv.RegisterService(&echoServiceDesc, echoServer{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestUnary_EchoesRequest(t *testing.T) {
	conn := dial(t)
	ctx := dsk.Background()

	resp, err := dsk.SyncWait(ctx, Unary(conn, "/dsktest.Echo/Unary",
		&wrapperspb.StringValue{Value: "hello"},
		func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }))
	require.NoError(t, err)
	require.Equal(t, "hello", resp.GetValue())
}

func TestServerStream_YieldsEachMessageThenExhausts(t *testing.T) {
	conn := dial(t)
	ctx := dsk.Background()

	stream := NewServerStream(ctx, conn,
		&grpc.StreamDesc{StreamName: "ServerStream", ServerStreams: true},
		"/dsktest.Echo/ServerStream",
		&wrapperspb.StringValue{Value: "tick"},
		func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) })

	for i := 0; i < 3; i++ {
		m, err := dsk.SyncWait(ctx, stream.Next(ctx))
		require.NoError(t, err)
		require.True(t, m.Ok)
		require.Equal(t, "tick", m.Value.GetValue())
	}

	m, err := dsk.SyncWait(ctx, stream.Next(ctx))
	require.NoError(t, err)
	require.False(t, m.Ok)
}

func TestServerStream_AbandonedWithoutExhaustingDoesNotHang(t *testing.T) {
	conn := dial(t)
	ctx := dsk.Background()

	stream := NewServerStream(ctx, conn,
		&grpc.StreamDesc{StreamName: "ServerStream", ServerStreams: true},
		"/dsktest.Echo/ServerStream",
		&wrapperspb.StringValue{Value: "tick"},
		func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) })

	_, err := dsk.SyncWait(ctx, stream.Next(ctx))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = ctx.Cleanup().Unwind()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unwinding the cleanup stack did not abandon the in-flight stream")
	}
}

