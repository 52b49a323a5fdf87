package handlers

import (
	"fmt"
	"strings"

	"hospital-app-server/internal/models"
	"hospital-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// triageRule maps a symptom keyword to a canned drug suggestion and advice.
type triageRule struct {
	Keyword string
	Drug    string
	Advice  string
}

// Rules are evaluated in order; the first keyword found in the symptom text wins.
var triageRules = []triageRule{
	{"headache", "Paracetamol 500mg", "Stay hydrated and rest."},
	{"fever", "Ibuprofen 200mg", "Monitor temperature; see doctor if > 39°C."},
	{"cough", "Dextromethorphan syrup", "Keep warm, drink warm fluids."},
}

const (
	fallbackDrug   = "Paracetamol 500mg"
	fallbackAdvice = "Please see a doctor for a proper diagnosis."
)

// ChatbotHandler handles symptom-triage requests.
type ChatbotHandler struct {
	DB *gorm.DB
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(db *gorm.DB) *ChatbotHandler {
	return &ChatbotHandler{DB: db}
}

// TriageRequest represents the request body for a triage exchange.
type TriageRequest struct {
	Symptoms string `json:"symptoms" binding:"required"`
}

// Triage matches the patient's symptom text against the rule table and
// records the session together with its message pair.
func (h *ChatbotHandler) Triage(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}
	if actor.Patient == nil {
		utils.Forbidden(c, "Only patients can use chatbot.")
		return
	}

	var req TriageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	symptoms := strings.ToLower(req.Symptoms)

	drug, advice := fallbackDrug, fallbackAdvice
	for _, rule := range triageRules {
		if strings.Contains(symptoms, rule.Keyword) {
			drug, advice = rule.Drug, rule.Advice
			break
		}
	}

	session := models.ChatbotSession{
		PatientID:      actor.Patient.ID,
		Symptoms:       symptoms,
		SuggestedDrugs: drug,
		Recommendation: advice,
		Messages: []models.ChatMessage{
			{Sender: models.SenderPatient, Message: symptoms},
			{Sender: models.SenderBot, Message: fmt.Sprintf("Suggested: %s. %s", drug, advice)},
		},
	}

	if err := h.DB.Create(&session).Error; err != nil {
		utils.InternalServerError(c, "Failed to record chatbot session: "+err.Error())
		return
	}

	utils.Created(c, "Chatbot session created", session)
}

// GetSessions lists the authenticated patient's past triage sessions.
func (h *ChatbotHandler) GetSessions(c *gin.Context) {
	actor, ok := ResolveActor(h.DB, c)
	if !ok {
		return
	}
	if actor.Patient == nil {
		utils.Forbidden(c, "Only patients can use chatbot.")
		return
	}

	sessions := []models.ChatbotSession{}
	if err := h.DB.Preload("Messages").Where("patient_id = ?", actor.Patient.ID).
		Order("created_at asc").Find(&sessions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chatbot sessions: "+err.Error())
		return
	}

	utils.Success(c, "Chatbot sessions fetched successfully", sessions)
}
