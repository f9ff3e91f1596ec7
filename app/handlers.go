package app

import (
	"catalogconsole/app/auth"
	"catalogconsole/pkg/events"
)

// Dependencies are the collaborators of the use cases. Publisher, Activity and
// Archive are optional and must be left nil, not typed-nil, when unused.
type Dependencies struct {
	Gateway           CatalogGateway
	Authenticator     auth.Authenticator
	Publisher         events.Publisher
	Activity          ActivityRepository
	Archive           Archive
	LowStockThreshold int
	ImportConcurrency int
}

// Handlers groups every use case of the console, shared by the web pages and the JSON API.
type Handlers struct {
	GetCategories  *GetCategoriesHandler
	CreateCategory *CreateCategoryHandler
	DeleteCategory *DeleteCategoryHandler
	GetProducts    *GetProductsHandler
	GetProduct     *GetProductHandler
	CreateProduct  *CreateProductHandler
	UpdateProduct  *UpdateProductHandler
	DeleteProduct  *DeleteProductHandler
	GetDashboard   *GetDashboardHandler
	ExportProducts *ExportProductsHandler
	ImportProducts *ImportProductsHandler
	GetActivity    *GetActivityHandler
	Login          *auth.LoginHandler
}

func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		GetCategories:  NewGetCategoriesHandler(deps.Gateway),
		CreateCategory: NewCreateCategoryHandler(deps.Gateway, deps.Publisher),
		DeleteCategory: NewDeleteCategoryHandler(deps.Gateway, deps.Publisher),
		GetProducts:    NewGetProductsHandler(deps.Gateway),
		GetProduct:     NewGetProductHandler(deps.Gateway),
		CreateProduct:  NewCreateProductHandler(deps.Gateway, deps.Publisher),
		UpdateProduct:  NewUpdateProductHandler(deps.Gateway, deps.Publisher),
		DeleteProduct:  NewDeleteProductHandler(deps.Gateway, deps.Publisher),
		GetDashboard:   NewGetDashboardHandler(deps.Gateway, deps.LowStockThreshold),
		ExportProducts: NewExportProductsHandler(deps.Gateway, deps.Archive),
		ImportProducts: NewImportProductsHandler(deps.Gateway, deps.Publisher, deps.ImportConcurrency),
		GetActivity:    NewGetActivityHandler(deps.Activity),
		Login:          auth.NewLoginHandler(deps.Authenticator),
	}
}
