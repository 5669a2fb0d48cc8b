package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flowsynth/auth"
	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/server"
	"github.com/kbukum/flowsynth/server/middleware"
	"github.com/kbukum/flowsynth/synth"
	"github.com/kbukum/flowsynth/workflow"
)

// Route paths.
const (
	BasePath    = "/api/console/wizard"
	BuildPath   = BasePath + "/build"
	OptionsPath = BasePath + "/options"
)

// MsgBodyTooLarge is returned when the body exceeds the server limit.
const MsgBodyTooLarge = "Request body too large"

// Handler serves the wizard endpoints.
type Handler struct {
	svc     *synth.Service
	catalog workflow.Catalog
	log     *logger.Logger
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *synth.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		svc:     svc,
		catalog: workflow.DefaultCatalog(),
		log:     log.WithComponent("api"),
	}
}

// Register mounts the wizard routes on r. A nil verifier leaves build open.
func (h *Handler) Register(r gin.IRouter, verifier auth.SessionVerifier) {
	g := r.Group(BasePath)
	g.POST("/build", middleware.GinWrap(middleware.Auth(verifier)), h.Build)
	g.GET("/options", h.Options)
}

// Build decodes the request, runs the pipeline and writes
// {workflow, buildSteps, credentialQueue}.
func (h *Handler) Build(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			server.RespondWithError(c, errors.New(errors.ErrCodeInvalidInput, MsgBodyTooLarge, http.StatusRequestEntityTooLarge))
			return
		}
		server.RespondWithError(c, errors.Validation(workflow.MsgInvalidJSON).WithCause(err))
		return
	}

	resp, err := h.svc.BuildJSON(c.Request.Context(), body)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Debug("build request rejected", logger.Fields(logger.FieldError, err.Error()))
		server.RespondWithError(c, err)
		return
	}
	server.RespondJSON(c, resp)
}

// Options writes the wizard catalog.
func (h *Handler) Options(c *gin.Context) {
	server.RespondOK(c, h.catalog)
}
