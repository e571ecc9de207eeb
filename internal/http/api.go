// Package http wires the versioned API onto gin. A single dispatch table
// maps (verb, resource) to a handler and its ordered required-parameter
// list; typed failures raised anywhere below are translated to status
// codes exactly once, at this boundary.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"kegwatch/internal/apierr"
	"kegwatch/internal/domain"
	"kegwatch/internal/service"
	"kegwatch/internal/validate"
)

const apiVersion = "1.0"

// API parameter names.
const (
	paramUsername     = "username"
	paramRealname     = "realname"
	paramPassword     = "password"
	paramPassword1    = "password1"
	paramPassword2    = "password2"
	paramSessionToken = "session_token"
	paramDeviceID     = "device_id"
	paramReading      = "reading"
	paramReadingTime  = "reading_time"
)

type params map[string]any

type resourceKey struct {
	verb     string
	resource string
}

type resource struct {
	// requires is checked in order; the first missing key fails the
	// request before the handler runs.
	requires []string
	handle   func(c *gin.Context, values params) (any, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	sessions  service.SessionService
	readings  service.ReadingService
	logger    *logrus.Logger
	resources map[resourceKey]resource
}

func NewHandler(users service.UserService, sessions service.SessionService, readings service.ReadingService, logger *logrus.Logger) *Handler {
	h := &Handler{
		users:    users,
		sessions: sessions,
		readings: readings,
		logger:   logger,
	}
	h.resources = map[resourceKey]resource{
		{http.MethodPost, "login"}: {
			requires: []string{paramUsername, paramPassword},
			handle:   h.apiLogin,
		},
		{http.MethodPost, "create_login"}: {
			requires: []string{paramUsername, paramRealname, paramPassword1, paramPassword2},
			handle:   h.apiCreateLogin,
		},
		{http.MethodGet, "login_status"}: {
			requires: []string{paramSessionToken},
			handle:   h.apiLoginStatus,
		},
		{http.MethodPost, "logout"}: {
			requires: []string{paramSessionToken},
			handle:   h.apiLogout,
		},
		{http.MethodGet, "device_status"}: {
			requires: []string{paramSessionToken, paramDeviceID},
			handle:   h.apiDeviceStatus,
		},
		{http.MethodPost, "register_device"}: {
			requires: []string{paramSessionToken},
			handle:   h.apiRegisterDevice,
		},
		{http.MethodPost, "update_device_status"}: {
			requires: []string{paramSessionToken, paramDeviceID, paramReading, paramReadingTime},
			handle:   h.apiUpdateDeviceStatus,
		},
	}
	return h
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/:version/:resource", h.api)
		api.POST("/:version/:resource", h.api)
		api.DELETE("/:version/:resource", h.api)
	}
}

// api is the single entry point for /api/<version>/<resource>. Processing
// order is fixed: parameter presence, shape validation, session check,
// business logic; the first failure short-circuits the rest.
func (h *Handler) api(c *gin.Context) {
	if c.Param("version") != apiVersion {
		c.Status(http.StatusBadRequest)
		return
	}
	name := strings.ToLower(c.Param("resource"))

	values, err := h.requestValues(c)
	if err != nil {
		h.fail(c, name, err)
		return
	}

	res, ok := h.resources[resourceKey{c.Request.Method, name}]
	if !ok {
		// Unrecognized (verb, resource) pairs are not handled, never a crash.
		c.Status(http.StatusBadRequest)
		return
	}

	for _, key := range res.requires {
		if _, present := values[key]; !present {
			h.fail(c, name, apierr.MalformedRequest(fmt.Sprintf("Parameter %q not specified.", key)))
			return
		}
	}

	result, err := res.handle(c, values)
	if err != nil {
		h.fail(c, name, err)
		return
	}
	if result == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, result)
}

// requestValues extracts the parameter bag: query parameters for GET and
// DELETE, a JSON object body for POST.
func (h *Handler) requestValues(c *gin.Context) (params, error) {
	values := params{}

	if c.Request.Method != http.MethodPost {
		for key, vals := range c.Request.URL.Query() {
			if len(vals) > 0 {
				values[key] = vals[0]
			}
		}
		return values, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(body, &values); err != nil {
		return nil, apierr.MalformedRequest("Request body is not a JSON object.").WithCause(err)
	}
	return values, nil
}

// fail translates a failure into a status code. Typed API errors keep
// their code; anything else is an unhandled internal error. The client
// body stays empty either way.
func (h *Handler) fail(c *gin.Context, name string, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		entry := h.logger.WithField("resource", name)
		if apiErr.Cause != nil {
			entry = entry.WithError(apiErr.Cause)
		}
		if apiErr.Status >= http.StatusInternalServerError {
			entry.Error(apiErr.Message)
		} else {
			entry.Warn(apiErr.Message)
		}
		c.Status(apiErr.Status)
		return
	}

	h.logger.WithField("resource", name).WithError(err).Error("unhandled error")
	c.Status(http.StatusInternalServerError)
}

type sessionResponse struct {
	SessionToken  string `json:"session_token"`
	SessionExpiry int64  `json:"session_expiry"`
}

func (h *Handler) apiLogin(c *gin.Context, values params) (any, error) {
	email := stringValue(values[paramUsername])
	if !validate.IsEmailAddress(email) {
		return nil, apierr.MalformedRequest("Invalid email address.")
	}
	password := stringValue(values[paramPassword])

	if _, err := h.users.Authenticate(c.Request.Context(), email, password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return nil, apierr.AuthenticationFailure("Authentication failed.")
		}
		return nil, apierr.Persistence(err)
	}

	return h.issueSession(c, email)
}

func (h *Handler) apiCreateLogin(c *gin.Context, values params) (any, error) {
	email := stringValue(values[paramUsername])
	if !validate.IsEmailAddress(email) {
		return nil, apierr.MalformedRequest("Invalid email address.")
	}
	realname := stringValue(values[paramRealname])
	if !validate.IsValidDecodedStr(realname) {
		return nil, apierr.MalformedRequest("Invalid name.")
	}
	password1 := stringValue(values[paramPassword1])
	password2 := stringValue(values[paramPassword2])

	if _, err := h.users.Register(c.Request.Context(), email, realname, password1, password2); err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			return nil, apierr.MalformedRequest("The user already exists.")
		case errors.Is(err, service.ErrPasswordMismatch):
			return nil, apierr.MalformedRequest("The passwords do not match.")
		case errors.Is(err, service.ErrWeakPassword):
			return nil, apierr.MalformedRequest("The password is too short.")
		}
		return nil, apierr.Persistence(err)
	}

	// A new user starts logged in.
	return h.issueSession(c, email)
}

func (h *Handler) apiLoginStatus(c *gin.Context, values params) (any, error) {
	if err := h.requireSession(c, values); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *Handler) apiLogout(c *gin.Context, values params) (any, error) {
	token := stringValue(values[paramSessionToken])
	if !validate.IsUUID(token) {
		return nil, apierr.AuthenticationFailure("Session token is invalid.")
	}
	// Idempotent: logging out an unknown token succeeds.
	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		return nil, apierr.Persistence(err)
	}
	return nil, nil
}

func (h *Handler) apiDeviceStatus(c *gin.Context, values params) (any, error) {
	deviceID := stringValue(values[paramDeviceID])
	if !validate.IsUUID(deviceID) {
		return nil, apierr.MalformedRequest("Device ID is invalid.")
	}
	if err := h.requireSession(c, values); err != nil {
		return nil, err
	}

	readings, err := h.readings.List(c.Request.Context(), deviceID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return readingPairs(readings), nil
}

func (h *Handler) apiRegisterDevice(c *gin.Context, values params) (any, error) {
	if err := h.requireSession(c, values); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *Handler) apiUpdateDeviceStatus(c *gin.Context, values params) (any, error) {
	deviceID := stringValue(values[paramDeviceID])
	if !validate.IsUUID(deviceID) {
		return nil, apierr.MalformedRequest("Device ID is invalid.")
	}
	reading, ok := floatValue(values[paramReading])
	if !ok {
		return nil, apierr.MalformedRequest("Reading is invalid.")
	}
	readingTime, ok := intValue(values[paramReadingTime])
	if !ok {
		return nil, apierr.MalformedRequest("Reading time is invalid.")
	}
	if err := h.requireSession(c, values); err != nil {
		return nil, err
	}

	if err := h.readings.Record(c.Request.Context(), deviceID, reading, readingTime); err != nil {
		return nil, apierr.Persistence(err)
	}
	return nil, nil
}

// issueSession creates a session for an authenticated user. A store
// failure here surfaces as an authentication failure, never as a partial
// login success.
func (h *Handler) issueSession(c *gin.Context, email string) (any, error) {
	session, err := h.sessions.Create(c.Request.Context(), email)
	if err != nil {
		return nil, apierr.AuthenticationFailure("Session token not generated.").WithCause(err)
	}
	return sessionResponse{
		SessionToken:  session.Token,
		SessionExpiry: session.Expiry,
	}, nil
}

// requireSession checks the token's shape and then validates it against
// the store. Invalid, expired, and unknown tokens all fail identically.
func (h *Handler) requireSession(c *gin.Context, values params) error {
	token := stringValue(values[paramSessionToken])
	if !validate.IsUUID(token) {
		return apierr.AuthenticationFailure("Session token is invalid.")
	}

	valid, err := h.sessions.Validate(c.Request.Context(), token)
	if err != nil {
		return apierr.Persistence(err)
	}
	if !valid {
		return apierr.AuthenticationFailure("Session is invalid or expired.")
	}
	return nil
}

// readingPairs renders readings as [reading, reading_time] pairs.
func readingPairs(readings []domain.Reading) [][]any {
	pairs := make([][]any, len(readings))
	for i, r := range readings {
		pairs[i] = []any{r.Reading, r.ReadingTime}
	}
	return pairs
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

func intValue(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}
