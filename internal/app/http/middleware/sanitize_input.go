package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizePasses bounds the unescape/sanitize loop for deeply entity-encoded input.
const maxSanitizePasses = 8

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON body,
// including strings nested in objects and arrays. Entities produced by the
// policy are decoded again so "&" and quotes survive as typed.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		// UseNumber keeps prices exact through the round trip.
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body interface{}
		if err := dec.Decode(&body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, _ := json.Marshal(sanitizeValue(policy, body))
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return sanitizeString(policy, t)
	case map[string]interface{}:
		for k, val := range t {
			t[k] = sanitizeValue(policy, val)
		}
		return t
	case []interface{}:
		for i, val := range t {
			t[i] = sanitizeValue(policy, val)
		}
		return t
	default:
		return v
	}
}

// sanitizeString repeats sanitize-then-unescape until the value is stable, so
// entity-encoded markup such as "&lt;script&gt;" cannot come back as a live tag.
// Input that never settles is returned in its escaped form.
func sanitizeString(policy *bluemonday.Policy, s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		clean := policy.Sanitize(s)
		next := html.UnescapeString(clean)
		if next == s {
			return next
		}
		s = next
	}
	return policy.Sanitize(s)
}
