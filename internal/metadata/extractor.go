package metadata

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultFetchTimeout = 5 * time.Second

	botUserAgent       = "Mozilla/5.0 (compatible; BookmarksBot/1.0)"
	defaultFaviconType = "image/x-icon"
)

// PageMetadata 从页面提取的元信息，字段可能为空
type PageMetadata struct {
	Title   string
	Favicon string
}

type Extractor struct {
	client *http.Client
}

func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
	}
}

// 标题提取策略，按优先级依次尝试，先命中者生效
var titleStrategies = []func(doc *goquery.Document) string{
	func(doc *goquery.Document) string { return metaContent(doc, `meta[property="og:title"]`) },
	func(doc *goquery.Document) string { return metaContent(doc, `meta[name="twitter:title"]`) },
	func(doc *goquery.Document) string { return strings.TrimSpace(doc.Find("title").First().Text()) },
}

// Extract 抓取页面并解析标题和图标，任何失败返回 nil，不抛错
func (e *Extractor) Extract(ctx context.Context, pageURL string) *PageMetadata {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", botUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	return &PageMetadata{
		Title:   extractTitle(doc),
		Favicon: resolveFavicon(extractFaviconHref(doc), pageURL),
	}
}

// FetchFaviconAsBase64 下载图标并包装为 data URI，失败返回空串
func (e *Extractor) FetchFaviconAsBase64(ctx context.Context, faviconURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, faviconURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", botUserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultFaviconType
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func extractTitle(doc *goquery.Document) string {
	for _, strategy := range titleStrategies {
		if title := strategy(doc); title != "" {
			return title
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func extractFaviconHref(doc *goquery.Document) string {
	href, _ := doc.Find(`link[rel="icon"], link[rel="shortcut icon"]`).First().Attr("href")
	return strings.TrimSpace(href)
}

// resolveFavicon 相对地址解析为绝对地址，未声明时回退 {origin}/favicon.ico，
// 页面地址本身解析失败则原样保留
func resolveFavicon(href, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return href
	}

	if href == "" {
		return base.Scheme + "://" + base.Host + "/favicon.ico"
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
