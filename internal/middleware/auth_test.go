package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"memoria_backend/internal/repository"
	"memoria_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 活跃中间件依赖的仓储方法签名必须对得上
var _ UserActivityRepo = (*repository.UserRepository)(nil)

type stubActivityRepo struct {
	touched chan uint
}

func (s *stubActivityRepo) TouchLastActive(id uint) error {
	s.touched <- id
	return nil
}

func TestActivityMiddlewareTouchesAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubActivityRepo{touched: make(chan uint, 1)}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 42})
	})
	r.Use(ActivityMiddleware(repo))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	select {
	case id := <-repo.touched:
		if id != 42 {
			t.Errorf("touched user = %d, want 42", id)
		}
	case <-time.After(time.Second):
		t.Fatal("activity touch never happened")
	}
}

func TestActivityMiddlewareSkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubActivityRepo{touched: make(chan uint, 1)}

	r := gin.New()
	r.Use(ActivityMiddleware(repo))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	select {
	case id := <-repo.touched:
		t.Errorf("unexpected touch for user %d", id)
	case <-time.After(50 * time.Millisecond):
	}
}
