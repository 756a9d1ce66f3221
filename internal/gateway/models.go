package gateway

// Customer matches the customer-service entity exposed through the
// gateway. IDs are server-assigned.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerInput is the create/update payload for customers.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product matches the inventory-service entity. Product ids are
// caller-supplied strings, not server-generated.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// ProductInput is the create/update payload for products. ID may be empty
// on create; call sites derive one from the name.
type ProductInput struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// ProductItem is a single line on a bill. Product is a transient field the
// billing service populates from the inventory service.
type ProductItem struct {
	ID        int64    `json:"id"`
	ProductID string   `json:"productId"`
	Quantity  int64    `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	Product   *Product `json:"product,omitempty"`
}

// Bill matches the billing-service entity. Customer is transient, joined
// in by the billing service.
type Bill struct {
	ID           int64         `json:"id"`
	BillingDate  string        `json:"billingDate"`
	CustomerID   int64         `json:"customerId"`
	ProductItems []ProductItem `json:"productItems"`
	Customer     *Customer     `json:"customer,omitempty"`
}

// pagedModel is the Spring Data REST HATEOAS envelope. The embedded key is
// the resource's rel name ("customers", "products").
type pagedModel[T any] struct {
	Embedded map[string][]T `json:"_embedded"`
	Page     *pageMetadata  `json:"page"`
}

type pageMetadata struct {
	Size          int64 `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	Number        int64 `json:"number"`
}

// content unwraps the embedded collection regardless of rel name. An
// absent envelope yields an empty slice, never nil access.
func (p pagedModel[T]) content() []T {
	for _, items := range p.Embedded {
		if items != nil {
			return items
		}
	}
	return []T{}
}
