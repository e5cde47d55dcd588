package types

type ProviderType int32

const (
	ProviderTypeUnspecified ProviderType = 0
	ProviderTypeRevolut     ProviderType = 1
)

type OrderStatus int32

const (
	OrderStatusUnspecified OrderStatus = 0
	OrderStatusPending     OrderStatus = 1
	OrderStatusProcessing  OrderStatus = 2
	OrderStatusAuthorised  OrderStatus = 3
	OrderStatusCompleted   OrderStatus = 4
	OrderStatusCancelled   OrderStatus = 5
	OrderStatusFailed      OrderStatus = 6
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusProcessing:
		return "processing"
	case OrderStatusAuthorised:
		return "authorised"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusFailed:
		return "failed"
	default:
		return "unspecified"
	}
}

func (p ProviderType) String() string {
	switch p {
	case ProviderTypeRevolut:
		return "revolut"
	default:
		return "unspecified"
	}
}
