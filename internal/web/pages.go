package web

import (
	"catalogconsole/app"
	"catalogconsole/domain"
)

// Page is the part of every view the layout reads.
type Page struct {
	Title        string
	Active       string
	User         string
	Notification string
	Notices      []string
}

type loginPage struct {
	Page
	Username string
}

type productCard struct {
	domain.Product
	CategoryName string
	LowStock     bool
}

type dashboardPage struct {
	Page
	Categories       []domain.Category
	Products         []productCard
	SelectedCategory string
	Summary          domain.Summary
}

// productForm holds the raw form values so a rejected form comes back as typed.
type productForm struct {
	ID         string
	Name       string
	CategoryID string
	Price      string
	Stock      string
}

type productFormPage struct {
	Page
	Action     string
	Submit     string
	Product    productForm
	Categories []domain.Category
}

type confirmPage struct {
	Page
	Message string
	Name    string
	Action  string
	Cancel  string
}

type categoriesPage struct {
	Page
	Categories []domain.Category
}

type categoryFormPage struct {
	Page
	Name string
}

type importPage struct {
	Page
	Result *app.ImportProductsResponse
}

type activityPage struct {
	Page
	Activities  []domain.Activity
	Unavailable bool
	Current     int
	TotalPages  int
	PrevPage    int
	NextPage    int
}
