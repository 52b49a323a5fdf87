package handlers_test

import (
	"net/http"
	"testing"

	"hospital-app-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatbotKeywordMatch(t *testing.T) {
	env := newTestEnv(t)
	patientUser := env.createUser(t, "patient@example.com", models.RolePatient)
	token := env.tokenFor(t, patientUser)

	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", token, map[string]interface{}{
		"symptoms": "I have a high FEVER since yesterday",
	})
	requireStatus(t, rec, http.StatusCreated)

	var session models.ChatbotSession
	decodeData(t, rec, &session)
	assert.Equal(t, "Ibuprofen 200mg", session.SuggestedDrugs)
	assert.Equal(t, "Monitor temperature; see doctor if > 39°C.", session.Recommendation)
	assert.Equal(t, "i have a high fever since yesterday", session.Symptoms)

	// Session stores the patient line and the bot reply
	require.Len(t, session.Messages, 2)
	assert.Equal(t, models.SenderPatient, session.Messages[0].Sender)
	assert.Equal(t, models.SenderBot, session.Messages[1].Sender)
	assert.Contains(t, session.Messages[1].Message, "Ibuprofen 200mg")
}

func TestChatbotFirstRuleWins(t *testing.T) {
	env := newTestEnv(t)
	patientUser := env.createUser(t, "patient@example.com", models.RolePatient)

	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, patientUser), map[string]interface{}{
		"symptoms": "headache and fever",
	})
	requireStatus(t, rec, http.StatusCreated)

	var session models.ChatbotSession
	decodeData(t, rec, &session)
	assert.Equal(t, "Paracetamol 500mg", session.SuggestedDrugs)
	assert.Equal(t, "Stay hydrated and rest.", session.Recommendation)
}

func TestChatbotFallback(t *testing.T) {
	env := newTestEnv(t)
	patientUser := env.createUser(t, "patient@example.com", models.RolePatient)

	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, patientUser), map[string]interface{}{
		"symptoms": "sore elbow",
	})
	requireStatus(t, rec, http.StatusCreated)

	var session models.ChatbotSession
	decodeData(t, rec, &session)
	assert.Equal(t, "Paracetamol 500mg", session.SuggestedDrugs)
	assert.Equal(t, "Please see a doctor for a proper diagnosis.", session.Recommendation)
}

func TestChatbotPatientOnly(t *testing.T) {
	env := newTestEnv(t)
	doctorUser := env.createUser(t, "doc@example.com", models.RoleDoctor)

	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, doctorUser), map[string]interface{}{
		"symptoms": "fever",
	})
	requireStatus(t, rec, http.StatusForbidden)
	assert.Equal(t, "Only patients can use chatbot.", decodeResponse(t, rec).Error)
}

func TestChatbotRequiresSymptoms(t *testing.T) {
	env := newTestEnv(t)
	patientUser := env.createUser(t, "patient@example.com", models.RolePatient)

	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, patientUser), map[string]interface{}{})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestChatbotSessionListing(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.createUser(t, "p1@example.com", models.RolePatient)
	p2 := env.createUser(t, "p2@example.com", models.RolePatient)

	for _, symptoms := range []string{"fever", "cough"} {
		rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, p1), map[string]interface{}{
			"symptoms": symptoms,
		})
		requireStatus(t, rec, http.StatusCreated)
	}
	rec := env.do(t, http.MethodPost, "/api/v1/chatbot", env.tokenFor(t, p2), map[string]interface{}{
		"symptoms": "headache",
	})
	requireStatus(t, rec, http.StatusCreated)

	rec = env.do(t, http.MethodGet, "/api/v1/chatbot/sessions", env.tokenFor(t, p1), nil)
	requireStatus(t, rec, http.StatusOK)

	var sessions []models.ChatbotSession
	decodeData(t, rec, &sessions)
	require.Len(t, sessions, 2)
	assert.Equal(t, "fever", sessions[0].Symptoms)
	assert.Equal(t, "cough", sessions[1].Symptoms)
	assert.Len(t, sessions[0].Messages, 2)
}
