package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseUUIDParam reads a path parameter, writing 400 when it is not a UUID.
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD calendar day as UTC midnight.
func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	d, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseStayQuery reads check_in and check_out from the query string.
func parseStayQuery(c *gin.Context) (time.Time, time.Time, bool) {
	in, err := parseDate("check_in", c.Query("check_in"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}
	out, err := parseDate("check_out", c.Query("check_out"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}

func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return nil, false
	}
	return &id, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
