package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type registrarFunc func(rg *gin.RouterGroup)

func (f registrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Empty(t, r.public)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
	}))
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterAuthSplit(t *testing.T) {
	engine := gin.New()

	guard := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}

	r := NewRouter(engine, WithAuth(guard))
	r.RegisterPublic(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/health", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
	}))
	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/complaints", func(c *gin.Context) {
			c.String(http.StatusOK, "list")
		})
	}))
	r.Setup()

	t.Run("public route skips auth", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("protected route rejects anonymous requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/complaints", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route passes with credentials", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/complaints", nil)
		req.Header.Set("Authorization", "Bearer token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "list", w.Body.String())
	})
}

func TestMultipleRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/dues/summary", func(c *gin.Context) {
			c.String(http.StatusOK, "dues")
		})
	})).Register(registrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/room-switch/summary", func(c *gin.Context) {
			c.String(http.StatusOK, "switches")
		})
	}))
	r.Setup()

	req1 := httptest.NewRequest("GET", "/api/v1/dues/summary", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "dues", w1.Body.String())

	req2 := httptest.NewRequest("GET", "/api/v1/room-switch/summary", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "switches", w2.Body.String())
}
