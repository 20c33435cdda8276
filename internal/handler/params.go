package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/georgeji/change-bridge/internal/queue"
)

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %q is not a non-negative integer", e.name, e.value)
}

// queryUint reads the first present of names; def when none is given
func queryUint(c *gin.Context, def uint64, names ...string) (uint64, error) {
	for _, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, &paramError{name: name, value: raw}
		}
		return v, nil
	}
	return def, nil
}

// queryPageSize reads pageSize clamped to [1, queue.MaxPageSize]. Only
// non-numeric input is an error; out-of-range numbers are clamped.
func queryPageSize(c *gin.Context) (int, error) {
	raw := c.Query("pageSize")
	if raw == "" {
		return queue.DefaultPageSize, nil
	}
	// on ErrRange n holds the saturated value
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &paramError{name: "pageSize", value: raw}
	}
	switch {
	case n < 1:
		return 1, nil
	case n > queue.MaxPageSize:
		return queue.MaxPageSize, nil
	}
	return int(n), nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
