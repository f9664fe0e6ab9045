package httpresp

import "github.com/gin-gonic/gin"

// Envelope is the success wrapper the availability and public endpoints use.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Success[T any](c *gin.Context, data T) {
	c.JSON(200, Envelope[T]{Success: true, Data: data})
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
