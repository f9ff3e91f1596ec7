package domain

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
