package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"go-table-insights/internal/api/handler"
	"go-table-insights/pkg/router"
)

// RegisterRoutes wires every API endpoint onto the router.
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/datasets", h.CreateDataset)
	r.GET("/api/v1/datasets", h.ListDatasets)
	// More specific routes first
	r.GET("/api/v1/datasets/*/records", h.GetDatasetRecords)
	r.GET("/api/v1/datasets/*", h.GetDataset)
	r.DELETE("/api/v1/datasets/*", h.DeleteDataset)

	r.POST("/api/v1/queries", h.CreateQuery)
	r.GET("/api/v1/queries", h.ListQueries)
	r.GET("/api/v1/queries/*/result", h.GetQueryResult)
	r.GET("/api/v1/queries/*/logs", h.GetQueryLogs)
	r.GET("/api/v1/queries/*/errors", h.GetQueryErrors)
	r.PATCH("/api/v1/queries/*/cancel", h.CancelQuery)
	// Generic query route last
	r.GET("/api/v1/queries/*", h.GetQuery)
	r.DELETE("/api/v1/queries/*", h.DeleteQuery)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
