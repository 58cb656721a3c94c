package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug 由名称生成 URL 安全的 slug，
// 无字母数字时返回空串，调用方视为校验失败
func GenerateSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GetHost 取主机名并去掉前缀 www.，解析失败时原样返回
func GetHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// RemoveQueryString 入库前去掉查询串，片段保留
func RemoveQueryString(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	return u.String(), nil
}
