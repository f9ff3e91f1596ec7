package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/events"
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kopi() ProductInput {
	return ProductInput{
		Name:       "Kopi",
		CategoryID: "c1",
		Price:      decimal.RequireFromString("12.50"),
		Stock:      3,
	}
}

func TestGetProductsPassesFilter(t *testing.T) {
	gateway := &fakeGateway{products: []domain.Product{
		{ID: "p1", Name: "Kopi", CategoryID: "c1"},
		{ID: "p2", Name: "Roti", CategoryID: "c2"},
	}}

	res, err := NewGetProductsHandler(gateway).Handle(context.Background(), &GetProductsRequest{CategoryID: "c2"})

	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "p2", res.Products[0].ID)
	assert.Equal(t, []string{"c2"}, gateway.productFilters)
}

func TestCreateProduct(t *testing.T) {
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}

	res, err := NewCreateProductHandler(gateway, publisher).Handle(context.Background(), &CreateProductRequest{ProductInput: kopi()})

	require.NoError(t, err)
	require.Len(t, gateway.createdProducts, 1)
	assert.Equal(t, "Kopi", gateway.createdProducts[0].Name)
	assert.Empty(t, gateway.createdProducts[0].ID)
	assert.Equal(t, "Product added successfully", res.Notification)
	assert.Equal(t, []string{events.ProductCreatedEvent}, publisher.names())
}

func TestCreateProductRequiresNameAndCategory(t *testing.T) {
	gateway := &fakeGateway{}
	input := kopi()
	input.CategoryID = " "

	_, err := NewCreateProductHandler(gateway, nil).Handle(context.Background(), &CreateProductRequest{ProductInput: input})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Failed to add product", httpErr.Message)
	assert.Empty(t, gateway.createdProducts)
}

func TestCreateProductFailure(t *testing.T) {
	gateway := &fakeGateway{createProductErr: &domain.UpstreamError{StatusCode: http.StatusOK}}

	_, err := NewCreateProductHandler(gateway, nil).Handle(context.Background(), &CreateProductRequest{ProductInput: kopi()})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Equal(t, "Failed to add product", httpErr.Message)
}

func TestUpdateProductReturnsSubmittedProduct(t *testing.T) {
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}
	input := kopi()
	input.Stock = 9

	res, err := NewUpdateProductHandler(gateway, publisher).Handle(context.Background(), &UpdateProductRequest{ID: "p1", ProductInput: input})

	require.NoError(t, err)
	assert.Equal(t, "p1", res.Product.ID)
	assert.Equal(t, 9, res.Product.Stock)
	assert.Equal(t, "Product updated successfully", res.Notification)
	assert.Equal(t, []domain.Product{res.Product}, gateway.updatedProducts)
	assert.Equal(t, []string{events.ProductUpdatedEvent}, publisher.names())
}

func TestUpdateProductWithoutID(t *testing.T) {
	gateway := &fakeGateway{}

	_, err := NewUpdateProductHandler(gateway, nil).Handle(context.Background(), &UpdateProductRequest{ProductInput: kopi()})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, "Failed to update product", httpErr.Message)
	assert.Empty(t, gateway.updatedProducts)
}

func TestUpdateProductFailure(t *testing.T) {
	gateway := &fakeGateway{updateProductErr: &domain.UpstreamError{StatusCode: http.StatusUnprocessableEntity}}

	_, err := NewUpdateProductHandler(gateway, nil).Handle(context.Background(), &UpdateProductRequest{ID: "p1", ProductInput: kopi()})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Status)
	assert.Equal(t, "Failed to update product", httpErr.Message)
}

func TestDeleteProduct(t *testing.T) {
	gateway := &fakeGateway{}
	publisher := &fakePublisher{}

	res, err := NewDeleteProductHandler(gateway, publisher).Handle(context.Background(), &DeleteProductRequest{ID: "p1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, gateway.deletedProducts)
	assert.Equal(t, "Product deleted successfully", res.Notification)
	assert.Equal(t, []string{events.ProductDeletedEvent}, publisher.names())
}

func TestDeleteProductFailure(t *testing.T) {
	gateway := &fakeGateway{deleteProductErr: &domain.UpstreamError{StatusCode: http.StatusServiceUnavailable}}

	_, err := NewDeleteProductHandler(gateway, nil).Handle(context.Background(), &DeleteProductRequest{ID: "p1"})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Equal(t, "Failed to delete product", httpErr.Message)
}

func TestGetProduct(t *testing.T) {
	gateway := &fakeGateway{products: []domain.Product{{ID: "p1", Name: "Kopi"}, {ID: "p2", Name: "Roti"}}}

	res, err := NewGetProductHandler(gateway).Handle(context.Background(), &GetProductRequest{ID: "p2"})

	require.NoError(t, err)
	assert.Equal(t, "Roti", res.Product.Name)
	assert.Equal(t, []string{""}, gateway.productFilters)
}

func TestGetProductNotFound(t *testing.T) {
	gateway := &fakeGateway{products: []domain.Product{{ID: "p1", Name: "Kopi"}}}

	_, err := NewGetProductHandler(gateway).Handle(context.Background(), &GetProductRequest{ID: "nope"})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Product not found", httpErr.Message)
}
