package router

import (
	"time"

	"catalogo/internal/app"
	"catalogo/internal/config"
	"catalogo/internal/handler"
	"catalogo/internal/middleware"

	"github.com/gin-gonic/gin"
)

// New returns a configured Gin engine serving the catalog over a.
// Dependency graph: Handler ← Service ← Store ← DB/Redis
func New(cfg *config.Config, a *app.App) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(a.Limites, cfg.RateLimitPerMinute, time.Minute))

	productosH := handler.NewProductosHandler(a.Catalogo, a.Productos, a.Codigos)
	codigosH := handler.NewCodigosHandler(a.Codigos)

	// A nil *CodigoCache must not reach the handler as a non-nil interface.
	var cache handler.Pinger
	if a.Cache != nil {
		cache = a.Cache
	}
	r.GET("/health", handler.Health(a, cache))

	v1 := r.Group("/v1")
	{
		prods := v1.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.GET("/:id/codigo", productosH.CodigoDeProducto)
		}

		cods := v1.Group("/codigos")
		{
			cods.GET("", codigosH.Listar)
			cods.POST("", codigosH.Crear)
			cods.GET("/valor/:valor", codigosH.PorValor)
			cods.GET("/:id", codigosH.ObtenerPorID)
			cods.PUT("/:id", codigosH.Actualizar)
			cods.DELETE("/:id", codigosH.Eliminar)
		}
	}

	return r
}
