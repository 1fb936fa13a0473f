package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cs2-arena/services"
)

type DistributeGroupsInput struct {
	GroupCount int `json:"group_count"`
}

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(gs services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: gs}
}

// DistributeGroups godoc
// @Summary Разбить команды на группы
// @Tags groups
// @Description Команды без прямого посева случайно раскладываются по группам. Прежние группы, их матчи и таблицы сбрасываются.
// @Accept json
// @Produce json
// @Param input body DistributeGroupsInput true "Число групп"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Неверное число групп или мало команд"
// @Security BearerAuth
// @Router /groups/distribute [post]
func (h *GroupHandler) DistributeGroups(w http.ResponseWriter, r *http.Request) {
	var input DistributeGroupsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.groupService.DistributeGroups(r.Context(), input.GroupCount)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListGroups godoc
// @Summary Список групп
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /groups [get]
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.ListGroups(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetGroup godoc
// @Summary Состав группы
// @Tags groups
// @Produce json
// @Param group path string true "Group name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Группа не найдена"
// @Router /groups/{group} [get]
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupService.GetGroup(r.Context(), chi.URLParam(r, "group"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group": group}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GroupSchedule godoc
// @Summary Расписание группы по турам
// @Tags groups
// @Produce json
// @Param group path string true "Group name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Группа не найдена"
// @Router /groups/{group}/schedule [get]
func (h *GroupHandler) GroupSchedule(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	fixtures, err := h.groupService.GroupSchedule(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group_name": group, "fixtures": fixtures}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SwissPairings godoc
// @Summary Пары следующего швейцарского тура
// @Tags groups
// @Produce json
// @Param group path string true "Group name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Без повторных встреч пар не составить"
// @Failure 404 {object} map[string]string "Группа не найдена"
// @Router /groups/{group}/swiss-pairings [get]
func (h *GroupHandler) SwissPairings(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	round, err := h.groupService.SwissPairings(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group_name": group, "round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
