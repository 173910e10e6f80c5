package request

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive int64 path parameter.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// QueryInt reads an int query parameter, falling back to def when absent, malformed or below min.
func QueryInt(c *gin.Context, name string, def, min int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < min {
		return def
	}
	return v
}

// Offset is the number of rows before page (1-based) of size rows. It saturates instead of
// overflowing, so absurd page numbers simply land past the end.
func Offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}
