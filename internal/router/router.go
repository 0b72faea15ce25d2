package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/response"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "TaskHub API is running!")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), revokedTokenGuard(tokenStore))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/me", authHandler.Me)

	// Project routes
	secured.POST("/projects", projectHandler.Create)
	secured.GET("/projects", projectHandler.List)
	secured.GET("/projects/:projectId", projectHandler.Get)
	secured.PATCH("/projects/:projectId", projectHandler.Update)
	secured.DELETE("/projects/:projectId", projectHandler.Delete)

	// Task routes nested under a project
	secured.POST("/projects/:projectId/tasks", taskHandler.Create)
	secured.GET("/projects/:projectId/tasks", taskHandler.List)
	secured.PATCH("/projects/:projectId/tasks/:taskId", taskHandler.Update)
	secured.DELETE("/projects/:projectId/tasks/:taskId", taskHandler.Delete)
}

// revokedTokenGuard rejects access tokens invalidated by logout.
func revokedTokenGuard(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := c.Get("user").(*jwt.Token); ok {
				if claims, ok := token.Claims.(*auth.Claims); ok && claims.ID != "" {
					revoked, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
					if revoked {
						return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
					}
				}
			}
			return next(c)
		}
	}
}

// errorHandler is the single boundary that shapes every error into the wire
// envelope. Domain errors keep their taxonomy; anything unrecognized becomes
// a generic server error without leaking internals.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var statusCode int
	var message string
	if he, ok := err.(*echo.HTTPError); ok {
		statusCode = he.Code
		message = fmt.Sprintf("%v", he.Message)
	} else {
		httpErr := apperrors.MapErrorToHTTP(err)
		statusCode = httpErr.StatusCode
		message = httpErr.Message
		if statusCode >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, response.Error(statusCode, message))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
