package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cs2-arena/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// SubmitMatch godoc
// @Summary Записать результат группового матча
// @Tags matches
// @Description Проверяет результат и обновляет таблицу группы. Возвращает таблицу после изменения.
// @Accept json
// @Produce json
// @Param input body services.MatchInput true "Результат матча"
// @Success 201 {object} map[string]interface{} "Матч записан"
// @Failure 400 {object} map[string]string "Некорректное тело запроса"
// @Failure 422 {object} map[string]string "Результат отклонен валидацией"
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	var input services.MatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.matchService.SubmitMatchResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"group_name": input.GroupName, "standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary Получить матч
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EditMatch godoc
// @Summary Исправить результат матча
// @Tags matches
// @Description Старый результат откатывается из таблицы, новый применяется. Группа матча не меняется.
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.EditMatchInput true "Новый результат"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 422 {object} map[string]string "Результат отклонен валидацией"
// @Security BearerAuth
// @Router /matches/{matchID} [put]
func (h *MatchHandler) EditMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.EditMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.matchService.EditMatchResult(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary Удалить результат матча
// @Tags matches
// @Param matchID path int true "Match ID"
// @Success 204 "Матч удален"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatchResult(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGroupMatches godoc
// @Summary Матчи группы
// @Tags groups
// @Produce json
// @Param group path string true "Group name"
// @Success 200 {object} map[string]interface{}
// @Router /groups/{group}/matches [get]
func (h *MatchHandler) ListGroupMatches(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	matches, err := h.matchService.ListMatches(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group_name": group, "matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStandings godoc
// @Summary Таблица группы
// @Tags groups
// @Produce json
// @Param group path string true "Group name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Группа не найдена"
// @Router /groups/{group}/standings [get]
func (h *MatchHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	standings, err := h.matchService.GetStandings(r.Context(), group)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"group_name": group, "standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListAllStandings godoc
// @Summary Таблицы всех групп
// @Tags groups
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /standings [get]
func (h *MatchHandler) ListAllStandings(w http.ResponseWriter, r *http.Request) {
	groups, err := h.matchService.ListAllStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
