package stockv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	InventoryServiceName = "omnipos.stock.v1.InventoryService"
	OrderServiceName     = "omnipos.stock.v1.OrderService"
	CustomerServiceName  = "omnipos.stock.v1.CustomerService"
)

// unary adapts a typed server method to a grpc.MethodHandler, running the interceptor
// chain the same way generated code does.
func unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

// InventoryService

type InventoryServiceServer interface {
	CreateItem(context.Context, *CreateItemRequest) (*Item, error)
	GetItem(context.Context, *GetItemRequest) (*Item, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*Item, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
	ListItemMovements(context.Context, *ListItemMovementsRequest) (*ListMovementsResponse, error)
	GetMovement(context.Context, *GetMovementRequest) (*Movement, error)
}

type UnimplementedInventoryServiceServer struct{}

func (UnimplementedInventoryServiceServer) CreateItem(context.Context, *CreateItemRequest) (*Item, error) {
	return nil, unimplemented("CreateItem")
}
func (UnimplementedInventoryServiceServer) GetItem(context.Context, *GetItemRequest) (*Item, error) {
	return nil, unimplemented("GetItem")
}
func (UnimplementedInventoryServiceServer) UpdateItem(context.Context, *UpdateItemRequest) (*Item, error) {
	return nil, unimplemented("UpdateItem")
}
func (UnimplementedInventoryServiceServer) ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error) {
	return nil, unimplemented("ListItems")
}
func (UnimplementedInventoryServiceServer) AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error) {
	return nil, unimplemented("AdjustStock")
}
func (UnimplementedInventoryServiceServer) ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error) {
	return nil, unimplemented("ListMovements")
}
func (UnimplementedInventoryServiceServer) ListItemMovements(context.Context, *ListItemMovementsRequest) (*ListMovementsResponse, error) {
	return nil, unimplemented("ListItemMovements")
}
func (UnimplementedInventoryServiceServer) GetMovement(context.Context, *GetMovementRequest) (*Movement, error) {
	return nil, unimplemented("GetMovement")
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateItem", Handler: unary("/"+InventoryServiceName+"/CreateItem", InventoryServiceServer.CreateItem)},
		{MethodName: "GetItem", Handler: unary("/"+InventoryServiceName+"/GetItem", InventoryServiceServer.GetItem)},
		{MethodName: "UpdateItem", Handler: unary("/"+InventoryServiceName+"/UpdateItem", InventoryServiceServer.UpdateItem)},
		{MethodName: "ListItems", Handler: unary("/"+InventoryServiceName+"/ListItems", InventoryServiceServer.ListItems)},
		{MethodName: "AdjustStock", Handler: unary("/"+InventoryServiceName+"/AdjustStock", InventoryServiceServer.AdjustStock)},
		{MethodName: "ListMovements", Handler: unary("/"+InventoryServiceName+"/ListMovements", InventoryServiceServer.ListMovements)},
		{MethodName: "ListItemMovements", Handler: unary("/"+InventoryServiceName+"/ListItemMovements", InventoryServiceServer.ListItemMovements)},
		{MethodName: "GetMovement", Handler: unary("/"+InventoryServiceName+"/GetMovement", InventoryServiceServer.GetMovement)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/stock/v1/inventory.proto",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

type InventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) *InventoryServiceClient {
	return &InventoryServiceClient{cc: cc}
}

func (c *InventoryServiceClient) CreateItem(ctx context.Context, in *CreateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, "/"+InventoryServiceName+"/CreateItem", in, opts...)
}

func (c *InventoryServiceClient) GetItem(ctx context.Context, in *GetItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, "/"+InventoryServiceName+"/GetItem", in, opts...)
}

func (c *InventoryServiceClient) UpdateItem(ctx context.Context, in *UpdateItemRequest, opts ...grpc.CallOption) (*Item, error) {
	return invoke[Item](ctx, c.cc, "/"+InventoryServiceName+"/UpdateItem", in, opts...)
}

func (c *InventoryServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, "/"+InventoryServiceName+"/ListItems", in, opts...)
}

func (c *InventoryServiceClient) AdjustStock(ctx context.Context, in *AdjustStockRequest, opts ...grpc.CallOption) (*AdjustStockResponse, error) {
	return invoke[AdjustStockResponse](ctx, c.cc, "/"+InventoryServiceName+"/AdjustStock", in, opts...)
}

func (c *InventoryServiceClient) ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c.cc, "/"+InventoryServiceName+"/ListMovements", in, opts...)
}

func (c *InventoryServiceClient) ListItemMovements(ctx context.Context, in *ListItemMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c.cc, "/"+InventoryServiceName+"/ListItemMovements", in, opts...)
}

func (c *InventoryServiceClient) GetMovement(ctx context.Context, in *GetMovementRequest, opts ...grpc.CallOption) (*Movement, error) {
	return invoke[Movement](ctx, c.cc, "/"+InventoryServiceName+"/GetMovement", in, opts...)
}

// OrderService

type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*Order, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*Order, error)
}

type UnimplementedOrderServiceServer struct{}

func (UnimplementedOrderServiceServer) CreateOrder(context.Context, *CreateOrderRequest) (*Order, error) {
	return nil, unimplemented("CreateOrder")
}
func (UnimplementedOrderServiceServer) GetOrder(context.Context, *GetOrderRequest) (*Order, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedOrderServiceServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, unimplemented("ListOrders")
}
func (UnimplementedOrderServiceServer) UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*Order, error) {
	return nil, unimplemented("UpdateOrderStatus")
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateOrder", Handler: unary("/"+OrderServiceName+"/CreateOrder", OrderServiceServer.CreateOrder)},
		{MethodName: "GetOrder", Handler: unary("/"+OrderServiceName+"/GetOrder", OrderServiceServer.GetOrder)},
		{MethodName: "ListOrders", Handler: unary("/"+OrderServiceName+"/ListOrders", OrderServiceServer.ListOrders)},
		{MethodName: "UpdateOrderStatus", Handler: unary("/"+OrderServiceName+"/UpdateOrderStatus", OrderServiceServer.UpdateOrderStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/stock/v1/order.proto",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

type OrderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) *OrderServiceClient {
	return &OrderServiceClient{cc: cc}
}

func (c *OrderServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+OrderServiceName+"/CreateOrder", in, opts...)
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+OrderServiceName+"/GetOrder", in, opts...)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, "/"+OrderServiceName+"/ListOrders", in, opts...)
}

func (c *OrderServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+OrderServiceName+"/UpdateOrderStatus", in, opts...)
}

// CustomerService

type CustomerServiceServer interface {
	CreateCustomer(context.Context, *CreateCustomerRequest) (*Customer, error)
	GetCustomer(context.Context, *GetCustomerRequest) (*Customer, error)
	ListCustomers(context.Context, *ListCustomersRequest) (*ListCustomersResponse, error)
	UpdateCustomer(context.Context, *UpdateCustomerRequest) (*Customer, error)
}

type UnimplementedCustomerServiceServer struct{}

func (UnimplementedCustomerServiceServer) CreateCustomer(context.Context, *CreateCustomerRequest) (*Customer, error) {
	return nil, unimplemented("CreateCustomer")
}
func (UnimplementedCustomerServiceServer) GetCustomer(context.Context, *GetCustomerRequest) (*Customer, error) {
	return nil, unimplemented("GetCustomer")
}
func (UnimplementedCustomerServiceServer) ListCustomers(context.Context, *ListCustomersRequest) (*ListCustomersResponse, error) {
	return nil, unimplemented("ListCustomers")
}
func (UnimplementedCustomerServiceServer) UpdateCustomer(context.Context, *UpdateCustomerRequest) (*Customer, error) {
	return nil, unimplemented("UpdateCustomer")
}

var CustomerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CustomerServiceName,
	HandlerType: (*CustomerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateCustomer", Handler: unary("/"+CustomerServiceName+"/CreateCustomer", CustomerServiceServer.CreateCustomer)},
		{MethodName: "GetCustomer", Handler: unary("/"+CustomerServiceName+"/GetCustomer", CustomerServiceServer.GetCustomer)},
		{MethodName: "ListCustomers", Handler: unary("/"+CustomerServiceName+"/ListCustomers", CustomerServiceServer.ListCustomers)},
		{MethodName: "UpdateCustomer", Handler: unary("/"+CustomerServiceName+"/UpdateCustomer", CustomerServiceServer.UpdateCustomer)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/stock/v1/customer.proto",
}

func RegisterCustomerServiceServer(s grpc.ServiceRegistrar, srv CustomerServiceServer) {
	s.RegisterService(&CustomerService_ServiceDesc, srv)
}

type CustomerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCustomerServiceClient(cc grpc.ClientConnInterface) *CustomerServiceClient {
	return &CustomerServiceClient{cc: cc}
}

func (c *CustomerServiceClient) CreateCustomer(ctx context.Context, in *CreateCustomerRequest, opts ...grpc.CallOption) (*Customer, error) {
	return invoke[Customer](ctx, c.cc, "/"+CustomerServiceName+"/CreateCustomer", in, opts...)
}

func (c *CustomerServiceClient) GetCustomer(ctx context.Context, in *GetCustomerRequest, opts ...grpc.CallOption) (*Customer, error) {
	return invoke[Customer](ctx, c.cc, "/"+CustomerServiceName+"/GetCustomer", in, opts...)
}

func (c *CustomerServiceClient) ListCustomers(ctx context.Context, in *ListCustomersRequest, opts ...grpc.CallOption) (*ListCustomersResponse, error) {
	return invoke[ListCustomersResponse](ctx, c.cc, "/"+CustomerServiceName+"/ListCustomers", in, opts...)
}

func (c *CustomerServiceClient) UpdateCustomer(ctx context.Context, in *UpdateCustomerRequest, opts ...grpc.CallOption) (*Customer, error) {
	return invoke[Customer](ctx, c.cc, "/"+CustomerServiceName+"/UpdateCustomer", in, opts...)
}
