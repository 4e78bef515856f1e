package controllerImp

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"krishi/entities"
	"krishi/pkg/api"
	"krishi/pkg/faq"
	"krishi/pkg/i18n"
	"krishi/pkg/logger"
	"krishi/pkg/session"
	"krishi/pkg/view"
)

// WebappCtrl exposes one session over HTTP. The gateway serves a single
// farmer, so there is one controller per process.
type WebappCtrl struct {
	sess  *session.Controller
	inbox *session.Inbox
	faq   *faq.Accordion
	view  *view.Renderer
	log   *logger.Logger
}

func New(sess *session.Controller, inbox *session.Inbox, acc *faq.Accordion, r *view.Renderer, log *logger.Logger) *WebappCtrl {
	if acc == nil {
		acc = faq.NewAccordion()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &WebappCtrl{sess: sess, inbox: inbox, faq: acc, view: r, log: log.With("component", "webapp")}
}

func (h *WebappCtrl) snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sess.Snapshot())
}

// result maps an action error to a status code. Errors already produced a
// notice inside the session, so only the message is returned here.
func (h *WebappCtrl) result(c echo.Context, err error) error {
	if err == nil {
		return h.snapshot(c)
	}
	var pre *session.PreconditionError
	var appErr *api.ApplicationError
	var tErr *api.TransportError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrStale):
		status = http.StatusConflict
	case errors.As(err, &pre), errors.Is(err, session.ErrRegistrationRequired):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &appErr), errors.As(err, &tErr):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		h.log.Error("action failed", "path", c.Path(), "err", err)
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func (h *WebappCtrl) Page(c echo.Context) error {
	var buf bytes.Buffer
	if err := h.view.Render(&buf, h.sess.Snapshot(), h.faq.Items()); err != nil {
		h.log.Error("render failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *WebappCtrl) State(c echo.Context) error { return h.snapshot(c) }

func (h *WebappCtrl) Notices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.inbox.Drain())
}

func (h *WebappCtrl) Navigate(c echo.Context) error {
	v, err := session.ParseView(c.Param("view"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.result(c, h.sess.Navigate(c.Request().Context(), v))
}

func (h *WebappCtrl) SetLanguage(c echo.Context) error {
	lang, err := i18n.ParseLanguage(c.Param("lang"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	return h.result(c, h.sess.SetLanguage(c.Request().Context(), lang))
}

func (h *WebappCtrl) Logout(c echo.Context) error {
	h.sess.Logout()
	return h.snapshot(c)
}

type searchReq struct {
	Query string `json:"query"`
}

func (h *WebappCtrl) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad json")
	}
	h.sess.SetSearchQuery(req.Query)
	return h.snapshot(c)
}

// EditRegistration binds the body onto a copy of the current form, so only
// the fields sent change.
func (h *WebappCtrl) EditRegistration(c echo.Context) error {
	form := h.sess.Snapshot().Registration
	if err := c.Bind(&form); err != nil {
		return badRequest(c, "bad json")
	}
	h.sess.EditRegistration(func(f *entities.RegistrationForm) { *f = form })
	return h.snapshot(c)
}

// Register submits the form held by the session, overlaid with any fields
// in the request body.
func (h *WebappCtrl) Register(c echo.Context) error {
	form := h.sess.Snapshot().Registration
	if err := c.Bind(&form); err != nil {
		return badRequest(c, "bad json")
	}
	return h.result(c, h.sess.SubmitRegistration(c.Request().Context(), form))
}

func (h *WebappCtrl) EditSoil(c echo.Context) error {
	sample := h.sess.Snapshot().Soil
	if err := c.Bind(&sample); err != nil {
		return badRequest(c, "bad json")
	}
	h.sess.EditSoilSample(func(s *entities.SoilSample) { *s = sample })
	return h.snapshot(c)
}

func (h *WebappCtrl) AnalyzeSoil(c echo.Context) error {
	return h.result(c, h.sess.AnalyzeSoil(c.Request().Context()))
}

// RecommendCrops returns the recommendations themselves; they are not part
// of the session state.
func (h *WebappCtrl) RecommendCrops(c echo.Context) error {
	recs, err := h.sess.GetCropRecommendations(c.Request().Context())
	if err != nil {
		return h.result(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": recs})
}

type weatherReq struct {
	Location string `json:"location"`
}

func (h *WebappCtrl) FetchWeather(c echo.Context) error {
	var req weatherReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad json")
	}
	return h.result(c, h.sess.FetchWeather(c.Request().Context(), req.Location))
}

func (h *WebappCtrl) LoadPosts(c echo.Context) error {
	return h.result(c, h.sess.LoadCommunityPosts(c.Request().Context()))
}

func (h *WebappCtrl) EditDraft(c echo.Context) error {
	draft := h.sess.Snapshot().Draft
	if err := c.Bind(&draft); err != nil {
		return badRequest(c, "bad json")
	}
	h.sess.EditDraft(func(d *entities.DraftPost) { *d = draft })
	return h.snapshot(c)
}

func (h *WebappCtrl) SubmitPost(c echo.Context) error {
	return h.result(c, h.sess.SubmitPost(c.Request().Context()))
}

func (h *WebappCtrl) LikePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	return h.result(c, h.sess.LikePost(c.Request().Context(), id))
}

type cropReq struct {
	CropType string `json:"crop_type"`
}

func (h *WebappCtrl) SetDiseaseCrop(c echo.Context) error {
	var req cropReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad json")
	}
	h.sess.SetDiseaseCropType(req.CropType)
	return h.snapshot(c)
}

func (h *WebappCtrl) DetectDisease(c echo.Context) error {
	return h.result(c, h.sess.DetectDisease(c.Request().Context()))
}

func (h *WebappCtrl) FAQ(c echo.Context) error {
	return c.JSON(http.StatusOK, h.faq.Items())
}

func (h *WebappCtrl) ToggleFAQ(c echo.Context) error {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return badRequest(c, "invalid index")
	}
	if err := h.faq.Toggle(i); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusOK, h.faq.Items())
}
