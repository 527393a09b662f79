package utils

import "github.com/labstack/echo/v4"

// GetSortParam returns the sort query parameter when it is one of the
// allowed values, otherwise the first allowed value.
func GetSortParam(c echo.Context, allowed ...string) string {
	sort := c.QueryParam("sort")
	for _, a := range allowed {
		if sort == a {
			return sort
		}
	}
	if len(allowed) > 0 {
		return allowed[0]
	}
	return ""
}

// GetQueryParam returns a query parameter or a default when absent.
func GetQueryParam(c echo.Context, name, defaultValue string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return defaultValue
}
