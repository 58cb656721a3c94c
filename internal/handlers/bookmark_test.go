package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookmarks-backend/internal/metadata"
	"bookmarks-backend/internal/models"
	"bookmarks-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubProber 可编程的抓取侧替身，记录调用次数
type stubProber struct {
	reachable    bool
	meta         *metadata.PageMetadata
	faviconData  string
	extractCalls int
	probeCalls   int
}

func (s *stubProber) Extract(ctx context.Context, pageURL string) *metadata.PageMetadata {
	s.extractCalls++
	return s.meta
}

func (s *stubProber) FetchFaviconAsBase64(ctx context.Context, faviconURL string) string {
	return s.faviconData
}

func (s *stubProber) ValidateURL(ctx context.Context, rawURL string) bool {
	s.probeCalls++
	return s.reachable
}

func setupBookmarkRouter(t *testing.T, prober *stubProber) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.SetupJoinTable(&models.Bookmark{}, "Tags", &models.BookmarkTag{}))
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Tag{}, &models.Bookmark{}))

	handler := NewBookmarkHandler(services.NewBookmarkService(db), prober)

	router := gin.New()
	router.POST("/api/bookmarks", handler.CreateBookmark)
	router.PATCH("/api/bookmarks/:id", handler.UpdateBookmark)
	router.DELETE("/api/bookmarks/:id", handler.DeleteBookmark)
	return router, db
}

func postBookmark(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookmarkSuccess(t *testing.T) {
	prober := &stubProber{
		reachable:   true,
		meta:        &metadata.PageMetadata{Title: "Fetched Title", Favicon: "https://example.com/fav.ico"},
		faviconData: "data:image/x-icon;base64,AAAA",
	}
	router, _ := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://www.example.com/article"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "收藏成功", resp.Message)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Fetched Title", data["title"])
	assert.Equal(t, "data:image/x-icon;base64,AAAA", data["image"])
	assert.Equal(t, "example.com", data["host"])
}

func TestCreateBookmarkProvidedTitleWins(t *testing.T) {
	prober := &stubProber{
		reachable: true,
		meta:      &metadata.PageMetadata{Title: "Fetched Title"},
	}
	router, _ := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://example.com/a","title":"My Title"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "My Title", data["title"])
}

func TestCreateBookmarkStripsQueryString(t *testing.T) {
	prober := &stubProber{reachable: true}
	router, db := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://example.com/a?utm_source=x&ref=y"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Bookmark
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "https://example.com/a", stored.URL)
}

func TestCreateBookmarkDuplicateConflict(t *testing.T) {
	prober := &stubProber{reachable: true}
	router, _ := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://example.com/a"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	probesBefore := prober.probeCalls
	// 查询串不同也算同一链接
	w = postBookmark(router, `{"url":"https://example.com/a?utm_source=x"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "该链接已被收藏", resp.Message)

	// 重复命中时不该再发起网络探测
	assert.Equal(t, probesBefore, prober.probeCalls)
	assert.Equal(t, 1, prober.extractCalls)
}

func TestCreateBookmarkUnreachable(t *testing.T) {
	prober := &stubProber{reachable: false}
	router, db := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://example.com/dead"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "链接无法访问", resp.Message)

	assert.Equal(t, 0, prober.extractCalls)
	var count int64
	require.NoError(t, db.Model(&models.Bookmark{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateBookmarkInvalidPayload(t *testing.T) {
	router, _ := setupBookmarkRouter(t, &stubProber{reachable: true})

	w := postBookmark(router, `{"url":"not-a-url"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postBookmark(router, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateBookmarkBlankTitleRejected(t *testing.T) {
	prober := &stubProber{reachable: true}
	router, db := setupBookmarkRouter(t, prober)

	w := postBookmark(router, `{"url":"https://example.com/a","title":"Original"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Bookmark
	require.NoError(t, db.First(&stored).Error)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookmarks/"+stored.ID, strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Original", stored.Title)
}

func TestUpdateBookmarkInvalidID(t *testing.T) {
	router, _ := setupBookmarkRouter(t, &stubProber{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookmarks/not-a-uuid", strings.NewReader(`{"read":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBookmarkNotFound(t *testing.T) {
	router, _ := setupBookmarkRouter(t, &stubProber{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/bookmarks/0d9aa7cc-3bd5-4b2f-9b3a-111111111111", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
