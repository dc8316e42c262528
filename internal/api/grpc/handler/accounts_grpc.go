package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AccountsServiceName is the fully qualified name of the admin accounts service.
const AccountsServiceName = "identity.v1.Accounts"

const (
	AccountsMergeAccountsMethod        = "/" + AccountsServiceName + "/MergeAccounts"
	AccountsListEmailsMethod           = "/" + AccountsServiceName + "/ListEmails"
	AccountsResolveExternalLoginMethod = "/" + AccountsServiceName + "/ResolveExternalLogin"
)

// AccountsServer is the server API of the admin accounts service. Messages are
// google.protobuf.Struct values; their fields are documented on the handler.
type AccountsServer interface {
	MergeAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmails(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveExternalLogin(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedAccountsServer can be embedded to have forward compatible implementations.
type UnimplementedAccountsServer struct{}

func (UnimplementedAccountsServer) MergeAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method MergeAccounts not implemented")
}

func (UnimplementedAccountsServer) ListEmails(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEmails not implemented")
}

func (UnimplementedAccountsServer) ResolveExternalLogin(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ResolveExternalLogin not implemented")
}

// RegisterAccountsServer registers the accounts service on s.
func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&AccountsServiceDesc, srv)
}

type structMethod func(srv AccountsServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AccountsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AccountsServiceDesc is the grpc.ServiceDesc for the accounts service.
var AccountsServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountsServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "MergeAccounts",
			Handler: unaryHandler(AccountsMergeAccountsMethod, func(srv AccountsServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.MergeAccounts(ctx, in)
			}),
		},
		{
			MethodName: "ListEmails",
			Handler: unaryHandler(AccountsListEmailsMethod, func(srv AccountsServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListEmails(ctx, in)
			}),
		},
		{
			MethodName: "ResolveExternalLogin",
			Handler: unaryHandler(AccountsResolveExternalLoginMethod, func(srv AccountsServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ResolveExternalLogin(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "identity/v1/accounts.proto",
}

// AccountsClient is the client API of the admin accounts service.
type AccountsClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountsClient(cc grpc.ClientConnInterface) *AccountsClient {
	return &AccountsClient{cc: cc}
}

func (c *AccountsClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountsClient) MergeAccounts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AccountsMergeAccountsMethod, in, opts...)
}

func (c *AccountsClient) ListEmails(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AccountsListEmailsMethod, in, opts...)
}

func (c *AccountsClient) ResolveExternalLogin(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, AccountsResolveExternalLoginMethod, in, opts...)
}
