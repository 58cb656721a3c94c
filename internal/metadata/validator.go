package metadata

import (
	"context"
	"net/http"
)

const (
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// ValidateURL 探测链接是否可达。先发 HEAD，部分站点屏蔽 HEAD，
// 失败时回退一次 GET。只返回布尔值，不抛错。
func (e *Extractor) ValidateURL(ctx context.Context, rawURL string) bool {
	if e.probe(ctx, http.MethodHead, rawURL) {
		return true
	}
	return e.probe(ctx, http.MethodGet, rawURL)
}

func (e *Extractor) probe(ctx context.Context, method, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
