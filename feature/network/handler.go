package network

import (
	"bytes"
	"encoding/json"
	"errors"

	"netviz/core/graph"
	"netviz/core/logger"
	"netviz/core/reconcile"
	"netviz/core/render"
	"netviz/feature/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the network.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the network routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/network")
	group.Post("/snapshot", h.HandleSnapshot)
	group.Get("/nodes", h.HandleNodes)
	group.Get("/edges", h.HandleEdges)
	group.Get("/options", h.HandleGetOptions)
	group.Put("/options", h.HandlePutOptions)
	group.Get("/events", h.HandleGetEvents)
	group.Put("/events", h.HandlePutEvents)
	group.Get("/stats", h.HandleStats)
	group.Post("/load", h.HandleLoad)
	group.Get("/objects", h.HandleObjects)
	group.Post("/save", h.HandleSave)
	group.Get("/export", h.HandleExport)
}

// HandleSnapshot reconciles a snapshot into the live network.
// @Summary Submit Snapshot
// @Description Reconciles the posted snapshot against the live network. With async=true the snapshot is queued and may be superseded by a newer one.
// @Tags network
// @Accept json
// @Produce json
// @Param async query bool false "Queue instead of applying synchronously"
// @Success 200 {object} ApplyResponse "Applied operations"
// @Success 202 {object} QueuedResponse "Queued"
// @Failure 400 {object} map[string]string "Malformed snapshot"
// @Failure 422 {object} map[string]string "Duplicate ids"
// @Router /network/snapshot [post]
func (h *Handler) HandleSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var snap graph.Snapshot
	if err := json.Unmarshal(c.Body(), &snap); err != nil {
		return fail(c, l, fiber.StatusBadRequest, err)
	}

	if c.QueryBool("async") {
		coalesced, err := h.service.Enqueue(snap)
		if err != nil {
			return fail(c, l, statusFor(err), err)
		}
		return c.Status(fiber.StatusAccepted).JSON(QueuedResponse{Queued: true, Coalesced: coalesced})
	}

	ops, err := h.service.Apply(snap)
	if err != nil {
		return fail(c, l, statusFor(err), err)
	}
	l.Debug("Snapshot applied", zap.Int("operations", ops.Total()))
	return c.JSON(ApplyResponse{Applied: ops, Total: ops.Total()})
}

// HandleNodes returns the live nodes.
// @Summary List Nodes
// @Tags network
// @Produce json
// @Success 200 {array} object "Nodes"
// @Router /network/nodes [get]
func (h *Handler) HandleNodes(c *fiber.Ctx) error {
	return c.JSON(nonNil(h.service.Nodes()))
}

// HandleEdges returns the live edges.
// @Summary List Edges
// @Tags network
// @Produce json
// @Success 200 {array} object "Edges"
// @Router /network/edges [get]
func (h *Handler) HandleEdges(c *fiber.Ctx) error {
	return c.JSON(nonNil(h.service.Edges()))
}

// HandleGetOptions returns the display options.
// @Summary Get Options
// @Tags network
// @Produce json
// @Success 200 {object} render.Options "Options"
// @Router /network/options [get]
func (h *Handler) HandleGetOptions(c *fiber.Ctx) error {
	return c.JSON(h.service.Options())
}

// HandlePutOptions replaces the display options.
// @Summary Replace Options
// @Description Replaces the display options wholesale. Rejected options leave the previous ones active.
// @Tags network
// @Accept json
// @Produce json
// @Success 200 {object} render.Options "Active options"
// @Failure 422 {object} map[string]string "Options rejected"
// @Router /network/options [put]
func (h *Handler) HandlePutOptions(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := h.service.Options()
	if err := json.Unmarshal(c.Body(), &opts); err != nil {
		return fail(c, l, fiber.StatusBadRequest, err)
	}
	if err := h.service.SetOptions(opts); err != nil {
		return fail(c, l, statusFor(err), err)
	}
	return c.JSON(h.service.Options())
}

// HandleGetEvents returns the bound events and recent interactions.
// @Summary Get Events
// @Tags network
// @Produce json
// @Success 200 {object} EventsResponse "Events"
// @Router /network/events [get]
func (h *Handler) HandleGetEvents(c *fiber.Ctx) error {
	return c.JSON(h.service.Events())
}

// HandlePutEvents replaces the set of bound events.
// @Summary Replace Events
// @Tags network
// @Accept json
// @Produce json
// @Param request body EventsRequest true "Event names"
// @Success 200 {object} EventsResponse "Events"
// @Failure 422 {object} map[string]string "Unknown event or rejected binding"
// @Router /network/events [put]
func (h *Handler) HandlePutEvents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req EventsRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, l, fiber.StatusBadRequest, err)
	}
	if err := h.service.SetEvents(req.Events); err != nil {
		return fail(c, l, statusFor(err), err)
	}
	return c.JSON(h.service.Events())
}

// HandleStats returns the host counters.
// @Summary Get Stats
// @Tags network
// @Produce json
// @Success 200 {object} render.Stats "Stats"
// @Router /network/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleLoad loads a snapshot from a source and reconciles it.
// @Summary Load Snapshot
// @Tags network
// @Accept json
// @Produce json
// @Param request body LoadRequest true "Source"
// @Success 200 {object} ApplyResponse "Applied operations"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Unknown query"
// @Failure 422 {object} map[string]string "Duplicate ids"
// @Failure 501 {object} map[string]string "Source not configured"
// @Router /network/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, l, fiber.StatusBadRequest, err)
	}
	ops, err := h.service.Load(c.Context(), req)
	if err != nil {
		return fail(c, l, statusFor(err), err)
	}
	l.Info("Snapshot loaded", zap.String("source", req.Source), zap.Int("operations", ops.Total()))
	return c.JSON(ApplyResponse{Applied: ops, Total: ops.Total()})
}

// HandleObjects lists snapshot documents in storage.
// @Summary List Stored Snapshots
// @Tags network
// @Produce json
// @Success 200 {array} string "Object keys"
// @Failure 501 {object} map[string]string "Storage not configured"
// @Router /network/objects [get]
func (h *Handler) HandleObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.Objects(c.Context())
	if err != nil {
		return fail(c, l, statusFor(err), err)
	}
	return c.JSON(nonNil(keys))
}

// HandleSave stores the live snapshot.
// @Summary Save Snapshot
// @Tags network
// @Accept json
// @Produce json
// @Param request body SaveRequest true "Object key"
// @Success 200 {object} map[string]string "Saved"
// @Failure 501 {object} map[string]string "Storage not configured"
// @Router /network/save [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil || req.Object == "" {
		if err == nil {
			err = errors.New("object is required")
		}
		return fail(c, l, fiber.StatusBadRequest, err)
	}
	if err := h.service.Save(c.Context(), req.Object); err != nil {
		return fail(c, l, statusFor(err), err)
	}
	return c.JSON(fiber.Map{"object": req.Object})
}

// HandleExport renders the live network as an HTML chart.
// @Summary Export Chart
// @Tags network
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /network/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var buf bytes.Buffer
	if err := h.service.Export(&buf); err != nil {
		return fail(c, l, fiber.StatusInternalServerError, err)
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

func fail(c *fiber.Ctx, l *zap.Logger, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		l.Error("Network request failed", zap.Error(err))
	} else {
		l.Warn("Network request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrInvalidModel),
		errors.Is(err, render.ErrConfigurationRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrUnknownSource):
		return fiber.StatusBadRequest
	case errors.Is(err, source.ErrUnknownQuery):
		return fiber.StatusNotFound
	case errors.Is(err, source.ErrNotConfigured):
		return fiber.StatusNotImplemented
	case errors.Is(err, render.ErrDisposed),
		errors.Is(err, render.ErrPumpClosed):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
