package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, syncHandler *SyncHandler, inspectHandler *InspectHandler) {
	if syncHandler != nil {
		server.GET("/api/v1/sync", syncHandler.ListJobs)
		server.POST("/api/v1/sync/:job", syncHandler.RunSync)
	}
	if inspectHandler != nil {
		server.GET("/api/v1/inspect", inspectHandler.ListSources)
		server.GET("/api/v1/inspect/:source", inspectHandler.Inspect)
	}
}
