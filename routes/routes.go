package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"

	"go-aware/dashboard"
	"go-aware/db"
	"go-aware/handlers"
	"go-aware/predict"
	"go-aware/sensors"
)

// Deps bundles everything the HTTP layer needs; constructed once in main.
type Deps struct {
	Store      *db.Store
	Controller *dashboard.Controller
	Predictor  *predict.Client
	OpenAI     *openai.Client
	Simulator  *sensors.Simulator
	Grapher    *sensors.Grapher
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) { handlers.Root(c, deps.Predictor) })
	r.GET("/health", func(c *gin.Context) { handlers.Health(c, deps.Predictor) })

	api := r.Group("/api")
	{
		api.POST("/auth/login", func(c *gin.Context) { handlers.Login(c, deps.Controller, deps.Store) })
		api.POST("/auth/logout", func(c *gin.Context) { handlers.Logout(c, deps.Controller) })

		api.POST("/reports", func(c *gin.Context) { handlers.SubmitReport(c, deps.Controller) })
		api.GET("/reports", func(c *gin.Context) { handlers.ListReports(c, deps.Controller) })
		api.DELETE("/reports/:id", func(c *gin.Context) { handlers.DeleteReport(c, deps.Controller) })
		api.GET("/reports/:id/pdf", func(c *gin.Context) { handlers.ReportPDF(c, deps.Controller) })
		api.GET("/reports/history", func(c *gin.Context) { handlers.History(c, deps.Controller) })

		api.POST("/emergencies", func(c *gin.Context) { handlers.SubmitEmergency(c, deps.Controller) })
		api.GET("/emergencies", func(c *gin.Context) { handlers.ListEmergencies(c, deps.Controller) })
		api.DELETE("/emergencies/:id", func(c *gin.Context) { handlers.DeleteEmergency(c, deps.Controller) })
		api.GET("/emergencies/:id/pdf", func(c *gin.Context) { handlers.EmergencyPDF(c, deps.Controller) })

		api.GET("/dashboard", func(c *gin.Context) { handlers.Dashboard(c, deps.Controller) })
		api.GET("/dashboard/summary", func(c *gin.Context) { handlers.Summary(c, deps.Controller) })
		api.GET("/dashboard/map", func(c *gin.Context) { handlers.MapView(c, deps.Controller) })
		api.POST("/dashboard/table", func(c *gin.Context) { handlers.SetTableVisible(c, deps.Controller) })
		api.POST("/dashboard/archive", func(c *gin.Context) { handlers.SetArchiveVisible(c, deps.Controller) })
		api.POST("/dashboard/archive/next", func(c *gin.Context) { handlers.ArchiveNext(c, deps.Controller) })
		api.POST("/dashboard/archive/prev", func(c *gin.Context) { handlers.ArchivePrev(c, deps.Controller) })
		api.POST("/dashboard/detail/:id", func(c *gin.Context) { handlers.ShowDetail(c, deps.Controller) })
		api.DELETE("/dashboard/detail", func(c *gin.Context) { handlers.HideDetail(c, deps.Controller) })
		api.POST("/dashboard/emergency-detail/:id", func(c *gin.Context) { handlers.ShowEmergencyDetail(c, deps.Controller) })
		api.DELETE("/dashboard/emergency-detail", func(c *gin.Context) { handlers.HideEmergencyDetail(c, deps.Controller) })
		api.POST("/dashboard/error/dismiss", func(c *gin.Context) { handlers.DismissError(c, deps.Controller) })

		api.POST("/predict", func(c *gin.Context) { handlers.Predict(c, deps.Predictor) })
		api.POST("/narrative", func(c *gin.Context) { handlers.Narrative(c, deps.OpenAI) })

		api.POST("/sensors/start", func(c *gin.Context) { handlers.StartSensors(c, deps.Simulator) })
		api.POST("/sensors/stop", func(c *gin.Context) { handlers.StopSensors(c, deps.Simulator) })
		api.GET("/sensors/status", func(c *gin.Context) { handlers.SensorStatus(c, deps.Simulator) })
		api.GET("/sensor-data", func(c *gin.Context) { handlers.SensorData(c, deps.Simulator) })

		api.POST("/graph/start", func(c *gin.Context) { handlers.StartGraph(c, deps.Grapher) })
		api.POST("/graph/stop", func(c *gin.Context) { handlers.StopGraph(c, deps.Grapher) })
		api.GET("/graph/status", func(c *gin.Context) { handlers.GraphStatus(c, deps.Grapher) })
		api.GET("/graph/image", func(c *gin.Context) { handlers.GraphImage(c, deps.Grapher) })
	}

	return r
}
