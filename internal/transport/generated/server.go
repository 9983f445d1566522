// Package generated holds the HTTP surface in the layout oapi-codegen emits
// for chi: ServerInterface, the parameter-binding wrapper and wire types.
// It is maintained by hand.
package generated

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Per-signal score breakdown of one screenshot
	// (GET /api/v1/screenshots/{id}/explain)
	ExplainScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId, params ExplainScreenshotParams)
	// Get a screenshot with its features
	// (GET /api/v1/screenshots/{id})
	GetScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId)
	// Delete a screenshot and its score records
	// (DELETE /api/v1/screenshots/{id})
	DeleteScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId)
	// Download the stored image
	// (GET /api/v1/screenshots/{id}/image)
	GetScreenshotImage(w http.ResponseWriter, r *http.Request, id ScreenshotId)
	// Processing status summary
	// (GET /api/v1/status)
	GetStatus(w http.ResponseWriter, r *http.Request)
	// Liveness and dependency health
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// List the caller's screenshots
	// (GET /api/v1/screenshots)
	ListScreenshots(w http.ResponseWriter, r *http.Request)
	// Prometheus metrics
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
	// Store externally extracted features
	// (PUT /api/v1/screenshots/{id}/features)
	PutScreenshotFeatures(w http.ResponseWriter, r *http.Request, id ScreenshotId)
	// Reset a screenshot to pending and queue it again
	// (POST /api/v1/screenshots/{id}/reprocess)
	ReprocessScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId)
	// Requeue every failed screenshot
	// (POST /api/v1/screenshots/reprocess)
	ReprocessScreenshots(w http.ResponseWriter, r *http.Request, params ReprocessScreenshotsParams)
	// Search screenshots
	// (GET /api/v1/search)
	Search(w http.ResponseWriter, r *http.Request, params SearchParams)
	// Upload a screenshot
	// (POST /api/v1/screenshots)
	UploadScreenshot(w http.ResponseWriter, r *http.Request)
}

// Unimplemented server implementation that returns http.StatusNotImplemented for each endpoint.

type Unimplemented struct{}

// Per-signal score breakdown of one screenshot
// (GET /api/v1/screenshots/{id}/explain)
func (_ Unimplemented) ExplainScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId, params ExplainScreenshotParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Get a screenshot with its features
// (GET /api/v1/screenshots/{id})
func (_ Unimplemented) GetScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Delete a screenshot and its score records
// (DELETE /api/v1/screenshots/{id})
func (_ Unimplemented) DeleteScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Download the stored image
// (GET /api/v1/screenshots/{id}/image)
func (_ Unimplemented) GetScreenshotImage(w http.ResponseWriter, r *http.Request, id ScreenshotId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Processing status summary
// (GET /api/v1/status)
func (_ Unimplemented) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Liveness and dependency health
// (GET /health)
func (_ Unimplemented) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// List the caller's screenshots
// (GET /api/v1/screenshots)
func (_ Unimplemented) ListScreenshots(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Prometheus metrics
// (GET /metrics)
func (_ Unimplemented) Metrics(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Store externally extracted features
// (PUT /api/v1/screenshots/{id}/features)
func (_ Unimplemented) PutScreenshotFeatures(w http.ResponseWriter, r *http.Request, id ScreenshotId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Reset a screenshot to pending and queue it again
// (POST /api/v1/screenshots/{id}/reprocess)
func (_ Unimplemented) ReprocessScreenshot(w http.ResponseWriter, r *http.Request, id ScreenshotId) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Requeue every failed screenshot
// (POST /api/v1/screenshots/reprocess)
func (_ Unimplemented) ReprocessScreenshots(w http.ResponseWriter, r *http.Request, params ReprocessScreenshotsParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Search screenshots
// (GET /api/v1/search)
func (_ Unimplemented) Search(w http.ResponseWriter, r *http.Request, params SearchParams) {
	w.WriteHeader(http.StatusNotImplemented)
}

// Upload a screenshot
// (POST /api/v1/screenshots)
func (_ Unimplemented) UploadScreenshot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ExplainScreenshot operation middleware
func (siw *ServerInterfaceWrapper) ExplainScreenshot(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params ExplainScreenshotParams

	// ------------- Required query parameter "q" -------------

	if paramValue := r.URL.Query().Get("q"); paramValue != "" {

	} else {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "q"})
		return
	}

	err = runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &params.Q)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ExplainScreenshot(w, r, id, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetScreenshot operation middleware
func (siw *ServerInterfaceWrapper) GetScreenshot(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetScreenshot(w, r, id)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// DeleteScreenshot operation middleware
func (siw *ServerInterfaceWrapper) DeleteScreenshot(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteScreenshot(w, r, id)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetScreenshotImage operation middleware
func (siw *ServerInterfaceWrapper) GetScreenshotImage(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetScreenshotImage(w, r, id)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// GetStatus operation middleware
func (siw *ServerInterfaceWrapper) GetStatus(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetStatus(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// HealthCheck operation middleware
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.HealthCheck(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ListScreenshots operation middleware
func (siw *ServerInterfaceWrapper) ListScreenshots(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListScreenshots(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// Metrics operation middleware
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Metrics(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// PutScreenshotFeatures operation middleware
func (siw *ServerInterfaceWrapper) PutScreenshotFeatures(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.PutScreenshotFeatures(w, r, id)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ReprocessScreenshot operation middleware
func (siw *ServerInterfaceWrapper) ReprocessScreenshot(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id ScreenshotId

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ReprocessScreenshot(w, r, id)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// ReprocessScreenshots operation middleware
func (siw *ServerInterfaceWrapper) ReprocessScreenshots(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ReprocessScreenshotsParams

	// ------------- Optional query parameter "status" -------------

	err = runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "status", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ReprocessScreenshots(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// Search operation middleware
func (siw *ServerInterfaceWrapper) Search(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params SearchParams

	// ------------- Required query parameter "q" -------------

	if paramValue := r.URL.Query().Get("q"); paramValue != "" {

	} else {
		siw.ErrorHandlerFunc(w, r, &RequiredParamError{ParamName: "q"})
		return
	}

	err = runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &params.Q)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}

	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.Search(w, r, params)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

// UploadScreenshot operation middleware
func (siw *ServerInterfaceWrapper) UploadScreenshot(w http.ResponseWriter, r *http.Request) {

	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.UploadScreenshot(w, r)
	}))

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

type UnescapedCookieParamError struct {
	ParamName string
	Err       error
}

func (e *UnescapedCookieParamError) Error() string {
	return fmt.Sprintf("error unescaping cookie parameter '%s'", e.ParamName)
}

func (e *UnescapedCookieParamError) Unwrap() error {
	return e.Err
}

type UnmarshalingParamError struct {
	ParamName string
	Err       error
}

func (e *UnmarshalingParamError) Error() string {
	return fmt.Sprintf("Error unmarshaling parameter %s as JSON: %s", e.ParamName, e.Err.Error())
}

func (e *UnmarshalingParamError) Unwrap() error {
	return e.Err
}

type RequiredParamError struct {
	ParamName string
}

func (e *RequiredParamError) Error() string {
	return fmt.Sprintf("Query argument %s is required, but not found", e.ParamName)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching OpenAPI spec based on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/screenshots", wrapper.ListScreenshots)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/screenshots", wrapper.UploadScreenshot)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/screenshots/reprocess", wrapper.ReprocessScreenshots)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/screenshots/{id}", wrapper.GetScreenshot)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/api/v1/screenshots/{id}", wrapper.DeleteScreenshot)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/screenshots/{id}/explain", wrapper.ExplainScreenshot)
	})
	r.Group(func(r chi.Router) {
		r.Put(options.BaseURL+"/api/v1/screenshots/{id}/features", wrapper.PutScreenshotFeatures)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/screenshots/{id}/image", wrapper.GetScreenshotImage)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/api/v1/screenshots/{id}/reprocess", wrapper.ReprocessScreenshot)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/search", wrapper.Search)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/api/v1/status", wrapper.GetStatus)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}
