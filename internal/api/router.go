package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with CORS open to any origin: the
// server only binds loopback, the clients are local desktop apps.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Disposition", FailedEntriesHeader},
		AllowCredentials: false,
	}))

	router.GET("/", h.Status)

	api := router.Group("/api")
	{
		api.POST("/video/info", h.VideoInfo)
		api.POST("/video/download-combined", h.DownloadCombined)
		api.POST("/audio/download", h.DownloadAudio)
		api.POST("/playlist/info", h.PlaylistInfo)
		api.POST("/playlist/download", h.DownloadPlaylist)
		api.GET("/health/ffmpeg", h.FFmpegHealth)
	}

	return router
}
