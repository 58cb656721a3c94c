package metadata

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExtractTitleOGWins(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<meta property="og:title" content=" OG Title ">
		<meta name="twitter:title" content="Twitter Title">
		<title>Plain Title</title>
	</head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "OG Title", meta.Title)
}

func TestExtractTitleAttributeOrderReversed(t *testing.T) {
	// content 在 property 前面也要能匹配
	server := htmlServer(t, `<html><head>
		<meta content="Reversed OG" property="og:title">
	</head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "Reversed OG", meta.Title)
}

func TestExtractTitleTwitterFallback(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<meta name="twitter:title" content="Twitter Title">
		<title>Plain Title</title>
	</head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "Twitter Title", meta.Title)
}

func TestExtractTitleElementFallback(t *testing.T) {
	server := htmlServer(t, `<html><head><title> Plain Title </title></head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "Plain Title", meta.Title)
}

func TestExtractFaviconRelativeResolved(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<link rel="icon" href="/static/icon.png">
	</head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL+"/some/page")
	require.NotNil(t, meta)
	assert.Equal(t, server.URL+"/static/icon.png", meta.Favicon)
}

func TestExtractFaviconShortcutIcon(t *testing.T) {
	server := htmlServer(t, `<html><head>
		<link href="https://cdn.example.com/fav.ico" rel="shortcut icon">
	</head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, "https://cdn.example.com/fav.ico", meta.Favicon)
}

func TestExtractFaviconDefaultsToOrigin(t *testing.T) {
	server := htmlServer(t, `<html><head><title>No Icon</title></head></html>`)

	meta := NewExtractor(0).Extract(context.Background(), server.URL)
	require.NotNil(t, meta)
	assert.Equal(t, server.URL+"/favicon.ico", meta.Favicon)
}

func TestExtractNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	assert.Nil(t, NewExtractor(0).Extract(context.Background(), server.URL))
}

func TestExtractUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assert.Nil(t, NewExtractor(0).Extract(context.Background(), server.URL))
}

func TestExtractTimeoutReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	start := time.Now()
	meta := NewExtractor(50 * time.Millisecond).Extract(context.Background(), server.URL)
	assert.Nil(t, meta)
	// 超时必须在限定时间内返回，不能一直挂着
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestFetchFaviconAsBase64(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	got := NewExtractor(0).FetchFaviconAsBase64(context.Background(), server.URL)
	expected := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Equal(t, expected, got)
}

func TestFetchFaviconDefaultContentType(t *testing.T) {
	payload := []byte{0x00, 0x01}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 抑制自动嗅探，模拟无 Content-Type 的响应
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	got := NewExtractor(0).FetchFaviconAsBase64(context.Background(), server.URL)
	expected := "data:image/x-icon;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Equal(t, expected, got)
}

func TestFetchFaviconFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	assert.Equal(t, "", NewExtractor(0).FetchFaviconAsBase64(context.Background(), server.URL))
}
