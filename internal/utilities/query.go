package utilities

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Paging reads page and limit from the query string.
// Missing or non-positive values fall back to page 1 and defaultLimit, limit is capped at maxLimit
// and page is capped so that the offset stays within an int32.
func Paging(c *gin.Context, defaultLimit, maxLimit int) (page, limit int) {
	page = positiveQuery(c, "page", 1)
	limit = min(positiveQuery(c, "limit", defaultLimit), maxLimit)
	page = min(page, math.MaxInt32/limit)
	return page, limit
}

func positiveQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns s into a LIKE/ILIKE pattern matching s literally anywhere in the value.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ParseAmount parses a positive, finite money amount.
func ParseAmount(s string) (float64, bool) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	return amount, true
}
