package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/cs2-arena/services"
)

type RecordBracketResultInput struct {
	WinnerName string `json:"winner_name"`
}

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// GenerateStage godoc
// @Summary Построить сетку стадии
// @Tags brackets
// @Description Сетка строится по явному списку посева или по итогам групп. Существующая стадия с тем же именем заменяется.
// @Accept json
// @Produce json
// @Param input body services.GenerateStageInput true "Параметры стадии"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Размер сетки не подходит или мало команд"
// @Failure 422 {object} map[string]string "Неизвестная команда или формат"
// @Security BearerAuth
// @Router /brackets [post]
func (h *BracketHandler) GenerateStage(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateStageInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.bracketService.GenerateBracketStage(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"stage": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListStages godoc
// @Summary Список стадий плей-офф
// @Tags brackets
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /brackets [get]
func (h *BracketHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.bracketService.ListStages(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stages": stages}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStage godoc
// @Summary Сетка стадии
// @Tags brackets
// @Produce json
// @Param stage path string true "Stage name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Стадия не найдена"
// @Router /brackets/{stage} [get]
func (h *BracketHandler) GetStage(w http.ResponseWriter, r *http.Request) {
	view, err := h.bracketService.GetStage(r.Context(), chi.URLParam(r, "stage"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stage": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordResult godoc
// @Summary Записать победителя матча сетки
// @Tags brackets
// @Description Победитель и проигравший переходят в слоты следующих матчей.
// @Accept json
// @Produce json
// @Param matchID path int true "Bracket match ID"
// @Param input body RecordBracketResultInput true "Победитель"
// @Success 200 {object} map[string]interface{} "Измененные матчи сетки"
// @Failure 400 {object} map[string]string "Победитель не участник матча"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Failure 409 {object} map[string]string "Матч уже сыгран или ждет соперника"
// @Security BearerAuth
// @Router /brackets/matches/{matchID}/result [post]
func (h *BracketHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input RecordBracketResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	changed, err := h.bracketService.RecordBracketResult(r.Context(), matchID, input.WinnerName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": changed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
