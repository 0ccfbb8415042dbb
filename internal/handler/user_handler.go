package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/eaglebank/mts/internal/message"
	"github.com/eaglebank/mts/internal/service"
	"github.com/eaglebank/mts/shared/middleware"
	"github.com/eaglebank/mts/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// UserService is the user persistence capability behind the resource.
// A (nil, nil) result means the request was rejected; service.ErrUserNotFound
// means the lookup found no such user.
type UserService interface {
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmailAddress(ctx context.Context, email string) (*models.UserDTO, error)
}

// MessageResolver resolves message keys for the locale negotiated from the request.
type MessageResolver interface {
	message.Resolver
	Match(acceptLanguage string) language.Tag
}

// OutcomeRecorder counts classified outcomes per operation.
type OutcomeRecorder interface {
	RecordUserOperation(operation, outcome string)
}

// UserHandler serves the /users resource and translates every service
// outcome into a BaseResponse envelope.
type UserHandler struct {
	users    UserService
	messages MessageResolver
	recorder OutcomeRecorder
}

// Route is one entry of the resource's routing table, relative to /users.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewUserHandler(users UserService, messages MessageResolver, recorder OutcomeRecorder) *UserHandler {
	return &UserHandler{users: users, messages: messages, recorder: recorder}
}

func (h *UserHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/add", Handler: h.CreateUser},
		{Method: http.MethodGet, Path: "", Handler: h.ListUsers},
		{Method: http.MethodGet, Path: "/user", Handler: h.GetUserByEmail},
		{Method: http.MethodGet, Path: "/:id", Handler: h.GetUser},
		{Method: http.MethodPut, Path: "/update", Handler: h.UpdateUser},
	}
}

// RegisterRoutes mounts the routing table under /users.
func (h *UserHandler) RegisterRoutes(r gin.IRouter) {
	users := r.Group("/users")
	for _, route := range h.Routes() {
		users.Handle(route.Method, route.Path, route.Handler)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.invalidRequest(c, opCreate, err)
		return
	}
	created, err := h.users.SaveUser(c.Request.Context(), &user)
	h.respond(c, opCreate, created != nil, created, err)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.invalidRequest(c, opGet, err)
		return
	}
	user, err := h.users.GetUserByID(c.Request.Context(), id)
	h.respond(c, opGet, user != nil, user, err)
}

// ListUsers answers 404 only for a nil list; an empty list is a success.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.GetUsers(c.Request.Context())
	h.respond(c, opList, users != nil, users, err)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.invalidRequest(c, opUpdate, err)
		return
	}
	updated, err := h.users.UpdateUser(c.Request.Context(), &user)
	h.respond(c, opUpdate, updated != nil, updated, err)
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	dto, err := h.users.FindByEmailAddress(c.Request.Context(), c.Query("email"))
	h.respond(c, opFindByEmail, dto != nil, dto, err)
}

// respond builds the envelope for a classified service outcome. present must
// report whether payload is non-nil; a typed nil pointer inside payload is not
// visible through the interface.
func (h *UserHandler) respond(c *gin.Context, op operation, present bool, payload any, err error) {
	policy := policies[op]
	locale := h.messages.Match(c.GetHeader("Accept-Language"))
	result := classify(present, err)
	h.record(op, result)

	switch result {
	case outcomeOK:
		reply(c, policy.successStatus, h.messages.Resolve(policy.successKey, locale), payload)
	case outcomeRejected:
		reply(c, policy.rejectedStatus, models.OperationFailed.Description(), nil)
	case outcomeNotFound:
		reply(c, http.StatusNotFound, models.OperationFailed.Description(),
			h.messages.Resolve(message.UserNotFoundKey, locale))
	default:
		logrus.WithFields(logrus.Fields{
			"operation":  policy.name,
			"request_id": middleware.GetRequestID(c),
		}).WithError(err).Error("User operation failed")
		reply(c, http.StatusInternalServerError, models.OperationFailed.Description(), nil)
	}
}

func (h *UserHandler) invalidRequest(c *gin.Context, op operation, err error) {
	h.record(op, outcomeInvalid)
	logrus.WithFields(logrus.Fields{
		"operation":  policies[op].name,
		"request_id": middleware.GetRequestID(c),
	}).WithError(err).Debug("Rejected malformed request")
	locale := h.messages.Match(c.GetHeader("Accept-Language"))
	reply(c, http.StatusBadRequest, h.messages.Resolve(message.InvalidRequestKey, locale), nil)
}

func (h *UserHandler) record(op operation, result outcome) {
	if h.recorder != nil {
		h.recorder.RecordUserOperation(policies[op].name, result.String())
	}
}

func reply(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, models.NewBaseResponse(status, msg, data))
}

// classify maps a service result onto the response channels. Errors win over
// the payload so a not-found condition is never reported as success.
func classify(present bool, err error) outcome {
	switch {
	case err != nil && errors.Is(err, service.ErrUserNotFound):
		return outcomeNotFound
	case err != nil:
		return outcomeFailed
	case !present:
		return outcomeRejected
	default:
		return outcomeOK
	}
}
