package dskgrpc

import (
	"context"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"

	"github.com/go-dsk/dsk"
)

// Unary returns an Op that invokes method on conn with req, decoding the
// response into a freshly allocated Resp.
func Unary[Req, Resp proto.Message](conn *grpc.ClientConn, method string, req Req, newResp func() Resp) dsk.Op[Resp] {
	return dsk.BlockingCall(func(ctx context.Context) (Resp, error) {
		resp := newResp()
		if err := conn.Invoke(ctx, method, req, resp); err != nil {
			var zero Resp
			return zero, classifyError(err)
		}
		return resp, nil
	})
}

// ServerStream is a host-owned, unidirectional RPC stream wrapped as a
// dsk.Generator[Resp]: NewServerStream opens the RPC once Next is first
// called, and each subsequent Next decodes and yields the next message
// until the server half-closes or the owning context's stop token fires.
type ServerStream[Resp proto.Message] struct {
	*dsk.Generator[Resp]
}

// NewServerStream builds a generator wrapping a server-streaming RPC.
// newResp allocates a fresh Resp for each received message.
func NewServerStream[Req, Resp proto.Message](parentCtx dsk.Ctx, conn *grpc.ClientConn, desc *grpc.StreamDesc, method string, req Req, newResp func() Resp) *ServerStream[Resp] {
	g := dsk.NewGenerator(parentCtx, func(ctx dsk.Ctx, yield dsk.Yield[Resp]) error {
		stdCtx := dsk.StdContext(context.Background(), ctx.StopToken())
		stream, err := conn.NewStream(stdCtx, desc, method)
		if err != nil {
			return classifyError(err)
		}
		if err := stream.SendMsg(req); err != nil {
			return classifyError(err)
		}
		if err := stream.CloseSend(); err != nil {
			return classifyError(err)
		}

		for {
			resp := newResp()
			if err := stream.RecvMsg(resp); err != nil {
				if err == io.EOF {
					return nil
				}
				return classifyError(err)
			}
			if err := yield(resp); err != nil {
				return err
			}
		}
	})
	return &ServerStream[Resp]{Generator: g}
}
