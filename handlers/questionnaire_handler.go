package handlers

import (
	"net/http"

	"sop-manager/models"
	"sop-manager/services"

	"github.com/gin-gonic/gin"
)

type QuestionnaireHandler struct {
	questionnaireService services.QuestionnaireService
}

func NewQuestionnaireHandler(questionnaireService services.QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaireService: questionnaireService}
}

func (h *QuestionnaireHandler) GetQuestionnaires(c *gin.Context) {
	questionnaires, err := h.questionnaireService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaires)
}

func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	questionnaire, err := h.questionnaireService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaire)
}

func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	var questionnaire models.Questionnaire
	if err := c.ShouldBindJSON(&questionnaire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.questionnaireService.Create(&questionnaire)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *QuestionnaireHandler) UpdateQuestionnaire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var questionnaire models.Questionnaire
	if err := c.ShouldBindJSON(&questionnaire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.questionnaireService.Update(id, &questionnaire)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.questionnaireService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Questionnaire deleted"})
}
