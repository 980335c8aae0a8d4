package response

import (
	"library-catalog/internal/data/entity"
)

type WriterResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func WriterToResponse(writer *entity.Writer) WriterResponse {
	return WriterResponse{
		ID:   writer.ID,
		Name: writer.Name,
	}
}
