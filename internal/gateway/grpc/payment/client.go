package payment

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const settleMethod = "/payments.v1.PaymentService/Settle"

// Client вызывает платёжный сервис без сгенерированных стабов,
// запрос и ответ передаются как google.protobuf.Struct.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Settle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, settleMethod, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
