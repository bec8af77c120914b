// Package validation checks inbound gateway requests against the embedded
// OpenAPI document before they reach the handlers.
package validation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

var filterOptions = &openapi3filter.Options{
	AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
}

// New returns middleware answering requests that violate doc with
// 422 {"detail": ...}. Paths the document does not describe, such as
// /health, are not checked.
func New(doc []byte) (gin.HandlerFunc, error) {
	router, err := loadRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if err != nil {
			c.Next()
			return
		}

		err = openapi3filter.ValidateRequest(c.Request.Context(), &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    filterOptions,
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": detail(err)})
			return
		}
		c.Next()
	}, nil
}

func loadRouter(data []byte) (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return gorillamux.NewRouter(doc)
}

// detail shortens parameter failures to `query parameter "owner": <reason>`.
func detail(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) || reqErr.Parameter == nil {
		return err.Error()
	}
	reason := reqErr.Reason
	if reqErr.Err != nil {
		reason = reqErr.Err.Error()
	}
	return fmt.Sprintf("%s parameter %q: %s", reqErr.Parameter.In, reqErr.Parameter.Name, reason)
}
