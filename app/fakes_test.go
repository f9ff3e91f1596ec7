package app

import (
	"catalogconsole/domain"
	"catalogconsole/pkg/events"
	"context"
	"sync"
)

type fakeGateway struct {
	mu sync.Mutex

	categories []domain.Category
	products   []domain.Product

	listCategoriesErr error
	listProductsErr   error
	createCategoryErr error
	deleteCategoryErr error
	createProductErr  error
	updateProductErr  error
	deleteProductErr  error

	// bareCategoryResponse makes CreateCategory answer like a backend that sends an empty 201 body.
	bareCategoryResponse bool

	// failProducts makes CreateProduct fail for the named products.
	failProducts map[string]error

	createdCategories []string
	deletedCategories []string
	createdProducts   []domain.Product
	updatedProducts   []domain.Product
	deletedProducts   []string
	productFilters    []string
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if f.listCategoriesErr != nil {
		return nil, f.listCategoriesErr
	}
	return f.categories, nil
}

func (f *fakeGateway) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createCategoryErr != nil {
		return domain.Category{}, f.createCategoryErr
	}
	f.createdCategories = append(f.createdCategories, name)
	if f.bareCategoryResponse {
		return domain.Category{}, nil
	}
	return domain.Category{ID: "c-" + name, Name: name}, nil
}

func (f *fakeGateway) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteCategoryErr != nil {
		return f.deleteCategoryErr
	}
	f.deletedCategories = append(f.deletedCategories, id)
	return nil
}

func (f *fakeGateway) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	f.mu.Lock()
	f.productFilters = append(f.productFilters, categoryID)
	f.mu.Unlock()
	if f.listProductsErr != nil {
		return nil, f.listProductsErr
	}
	if categoryID == "" {
		return f.products, nil
	}
	filtered := []domain.Product{}
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (f *fakeGateway) CreateProduct(ctx context.Context, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failProducts[product.Name]; ok {
		return err
	}
	if f.createProductErr != nil {
		return f.createProductErr
	}
	f.createdProducts = append(f.createdProducts, product)
	return nil
}

func (f *fakeGateway) UpdateProduct(ctx context.Context, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateProductErr != nil {
		return f.updateProductErr
	}
	f.updatedProducts = append(f.updatedProducts, product)
	return nil
}

func (f *fakeGateway) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteProductErr != nil {
		return f.deleteProductErr
	}
	f.deletedProducts = append(f.deletedProducts, id)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*events.Event
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.published))
	for _, e := range p.published {
		names = append(names, e.Event)
	}
	return names
}

type fakeArchive struct {
	keys []string
	err  error
}

func (a *fakeArchive) Upload(key string, data []byte) error {
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}

type fakeActivityRepository struct {
	activities []domain.Activity
	err        error
	offsets    []int
}

func (r *fakeActivityRepository) Close() error { return nil }

func (r *fakeActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	r.activities = append(r.activities, activity)
	return r.err
}

func (r *fakeActivityRepository) GetActivities(ctx context.Context, limit, offset int) ([]domain.Activity, error) {
	r.offsets = append(r.offsets, offset)
	if r.err != nil {
		return nil, r.err
	}
	if offset >= len(r.activities) {
		return []domain.Activity{}, nil
	}
	end := min(offset+limit, len(r.activities))
	return r.activities[offset:end], nil
}

func (r *fakeActivityRepository) CountActivities(ctx context.Context) (int, error) {
	return len(r.activities), r.err
}
