package viewmodels

import "github.com/google/uuid"

type SearchHit struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Title      string      `json:"title"`
	Department string      `json:"department"`
	Path       []uuid.UUID `json:"path"`
}

type Department struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}
