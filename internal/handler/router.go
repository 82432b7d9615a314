package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/notelog/backend/internal/service"
)

// Services - 라우터가 노출하는 서비스 묶음
type Services struct {
	Auth        *service.AuthService
	Notes       *service.NoteService
	Todos       *service.TodoService
	Contacts    *service.ContactService
	CustomNotes *service.CustomNoteService
}

// NewRouter - 전체 HTTP 표면을 구성한다.
//
//	GET  /ping, /, /api/openapi.json
//	POST /api/auth/register, /api/auth/login
//	GET  /api/auth/me                        (auth)
//	/api/notes, /api/todos, /api/contacts, /api/custom-notes (auth)
func NewRouter(svc Services, allowedOrigins []string, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(allowedOrigins, false))

	router.NoRoute(NoRoute)
	router.NoMethod(NoMethod)

	router.GET("/ping", Ping)
	router.GET("/", Root)

	api := router.Group("/api")
	api.GET("/openapi.json", OpenAPIDoc)

	requireAuth := AuthMiddleware(svc.Auth, log)

	authHandler := NewAuthHandler(svc.Auth, log)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	NewNoteHandler(svc.Notes, log).Register(api.Group("/notes", requireAuth))
	NewTodoHandler(svc.Todos, log).Register(api.Group("/todos", requireAuth))
	NewContactHandler(svc.Contacts, log).Register(api.Group("/contacts", requireAuth))
	NewCustomNoteHandler(svc.CustomNotes, log).Register(api.Group("/custom-notes", requireAuth))

	return router
}
