package storage

import (
	"net/url"
	"strings"
)

const defaultHost = "s3.cloud.ru"

// BuildURL returns the public virtual-hosted URL of key in bucket. Each path
// segment of key is percent-encoded; slashes are kept.
func BuildURL(bucket, key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "https://" + bucket + "." + defaultHost + "/" + strings.Join(segments, "/")
}
