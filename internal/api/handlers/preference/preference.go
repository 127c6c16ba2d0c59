package preference

import (
	"net/http"
	"sort"

	"canteen-finder/internal/api/handlers"
	"canteen-finder/internal/core/search"

	"github.com/gin-gonic/gin"
)

// Request 更新偏好
type Request struct {
	Selections []string `json:"selections"`
}

// Response 偏好內容
type Response struct {
	Owner             string   `json:"owner"`
	Selections        []string `json:"selections"`
	IgnoredCategories []string `json:"ignored_categories"`
}

// PresetResponse 飲食預設
type PresetResponse struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// Handler 飲食偏好處理程序
type Handler struct {
	service *search.Service
	debug   bool
}

// NewHandler 創建飲食偏好處理程序
func NewHandler(service *search.Service, debug bool) *Handler {
	return &Handler{service: service, debug: debug}
}

// HandleGet 取得偏好
func (h *Handler) HandleGet(c *gin.Context) {
	profile := h.service.Profile(handlers.Owner(c))

	selected, err := profile.SelectedPreferences(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	ignored, err := profile.IgnoredCategories(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, Response{
		Owner:             profile.Owner(),
		Selections:        selected.Sorted(),
		IgnoredCategories: ignored.Sorted(),
	})
}

// HandlePut 覆寫偏好
func (h *Handler) HandlePut(c *gin.Context) {
	var req Request
	if err := handlers.BindJSON(c, &req); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	profile := h.service.Profile(handlers.Owner(c))
	ignored, err := profile.SaveSelections(c.Request.Context(), req.Selections)
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	selected, err := profile.SelectedPreferences(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}

	c.JSON(http.StatusOK, Response{
		Owner:             profile.Owner(),
		Selections:        selected.Sorted(),
		IgnoredCategories: ignored.Sorted(),
	})
}

// HandleDelete 清除偏好
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Profile(handlers.Owner(c)).Clear(c.Request.Context()); err != nil {
		handlers.RespondError(c, err, h.debug)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlePresets 列出飲食預設
func (h *Handler) HandlePresets(c *gin.Context) {
	presets := h.service.Presets()
	out := make([]PresetResponse, 0, len(presets))
	for _, name := range presets.Names() {
		cats := make([]string, 0, len(presets[name]))
		for _, cat := range presets[name] {
			cats = append(cats, string(cat))
		}
		sort.Strings(cats)
		out = append(out, PresetResponse{Name: name, Categories: cats})
	}
	c.JSON(http.StatusOK, out)
}
